package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/studybud-project/backend/internal/router"
)

var _ router.Controller = (*HealthController)(nil)

type HealthController struct {
	DB *bun.DB
}

func (c *HealthController) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := c.DB.PingContext(ctx); err != nil {
		zap.L().Warn("health check failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprintln(w, "database unavailable")
		return
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func (c *HealthController) Register(router *mux.Router) {
	router.HandleFunc("/healthz", c.handleHealthz).
		Methods(http.MethodGet)
}
