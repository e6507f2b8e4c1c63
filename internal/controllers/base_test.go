package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/studybud-project/backend/internal/cctx"
	"github.com/studybud-project/backend/internal/database/models"
)

func TestSafeNext(t *testing.T) {
	tests := map[string]string{
		"":                  "/",
		"/rooms/1":          "/rooms/1",
		"/activity?x=1":     "/activity?x=1",
		"//evil.test/":      "/",
		"/\\evil.test":      "/",
		"https://evil.test": "/",
		"rooms/1":           "/",
	}

	for next, want := range tests {
		assert.Equal(t, want, safeNext(next), next)
	}
}

func TestLoginRequired(t *testing.T) {
	var got models.User
	h := loginRequired(func(w http.ResponseWriter, r *http.Request, me models.User) {
		got = me
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/rooms/create?x=1", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login?next=%2Frooms%2Fcreate%3Fx%3D1", rec.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/rooms/create", nil)
	req = req.WithContext(cctx.WithValues(req.Context(), cctx.CurrentUser, &models.User{ID: 4, Username: "dana"}))
	rec = httptest.NewRecorder()
	h(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(4), got.ID)
}

func TestWithIdentityAnonymous(t *testing.T) {
	called := false
	h := withIdentity(func(w http.ResponseWriter, r *http.Request, me *models.User) {
		called = true
		assert.Nil(t, me)
	})

	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, called)
}

func TestPathID(t *testing.T) {
	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/rooms/12", nil), map[string]string{"id": "12"})
	id, ok := pathID(req)
	assert.True(t, ok)
	assert.Equal(t, int64(12), id)

	req = mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/rooms/x", nil), map[string]string{"id": "99999999999999999999"})
	_, ok = pathID(req)
	assert.False(t, ok)
}

func TestForbidden(t *testing.T) {
	rec := httptest.NewRecorder()
	forbidden(rec, "You can't delete someone else's room")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "You can't delete someone else's room\n", rec.Body.String())
}
