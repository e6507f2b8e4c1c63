package controllers

import (
	"net/http/pprof"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/studybud-project/backend/internal/router"
)

var _ router.Controller = (*GoDebugController)(nil)

// GoDebugController mounts the pprof handlers. Only enabled with --debug.
type GoDebugController struct {
}

func (c *GoDebugController) Register(router *mux.Router) {
	zap.L().Warn("enabling /debug/pprof endpoint")
	debug := router.PathPrefix("/debug/pprof").Subrouter()
	debug.HandleFunc("/", pprof.Index)
	debug.HandleFunc("/cmdline", pprof.Cmdline)
	debug.HandleFunc("/profile", pprof.Profile)
	debug.HandleFunc("/symbol", pprof.Symbol)
	debug.HandleFunc("/trace", pprof.Trace)
	for _, profile := range []string{"allocs", "block", "goroutine", "heap", "mutex", "threadcreate"} {
		debug.Handle("/"+profile, pprof.Handler(profile))
	}
}
