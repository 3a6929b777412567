package delivery

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Vovarama1992/reels-analyzer/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(secret, password string) chi.Router {
	auth := domain.NewAuthService(secret, password)
	log := testLogger()
	r := chi.NewRouter()
	r.Use(AuthMiddleware(auth))
	RegisterRoutes(r, auth,
		NewAuthHandler(auth, log),
		NewReelHandler(&fakeReels{}, log),
		NewHistoryHandler(&fakeJournal{}, log),
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("# metrics")) }),
	)
	return r
}

func TestAuthFlow(t *testing.T) {
	r := newAuthRouter("s3cret", "hunter2")

	rec, _ := do(t, r, http.MethodGet, "/api/history/alice", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = do(t, r, http.MethodPost, "/api/login", `{"password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, out := do(t, r, http.MethodPost, "/api/login", `{"password":"hunter2"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	token := out["token"].(string)

	req := httptest.NewRequest(http.MethodGet, "/api/history/alice", nil)
	req.Header.Set("X-Auth", token)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/history/alice?token="+token, nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(`{}`))
	req.Header.Set("X-Auth", "forged")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthPublicPaths(t *testing.T) {
	r := newAuthRouter("s3cret", "hunter2")

	for _, path := range []string{"/health", "/metrics"} {
		rec, _ := do(t, r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestAuthDisabledPassesThrough(t *testing.T) {
	r := newAuthRouter("", "")

	rec, _ := do(t, r, http.MethodGet, "/api/history/alice", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, r, http.MethodPost, "/api/login", `{"password":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
