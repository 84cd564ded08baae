package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"compass/internal/config"
	"compass/internal/db"
	"compass/internal/router"
	"compass/internal/services"
	"compass/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// identityStub fakes the external identity provider. Tokens map to
// identities; anything else is rejected. Calls counts every hit so tests
// can assert that anonymous requests never reach the provider.
type identityStub struct {
	server *httptest.Server
	tokens map[string]services.Identity
	calls  int32
}

func newIdentityStub(t *testing.T) *identityStub {
	t.Helper()
	stub := &identityStub{tokens: map[string]services.Identity{}}
	stub.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&stub.calls, 1)
		if r.URL.Path != "/auth/v1/user" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		auth := r.Header.Get("Authorization")
		for token, identity := range stub.tokens {
			if auth == "Bearer "+token {
				json.NewEncoder(w).Encode(identity)
				return
			}
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(stub.server.Close)
	return stub
}

func (s *identityStub) addToken(token string, identity services.Identity) {
	s.tokens[token] = identity
}

func (s *identityStub) callCount() int {
	return int(atomic.LoadInt32(&s.calls))
}

// setupTest wires an in-memory database, a stub identity provider and a
// fully routed engine. Each call starts from a clean slate.
func setupTest(t *testing.T) (*gin.Engine, *identityStub) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("failed to get sql handle: %v", err)
	}
	// A single connection keeps every goroutine on the same in-memory DB.
	sqlDB.SetMaxOpenConns(1)

	db.DB = gdb
	if err := db.Migrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	utils.GetCache().Purge()

	stub := newIdentityStub(t)

	cfg := config.Config{
		AuthBaseURL:     stub.server.URL,
		AllowOrigin:     "*",
		RateLimitMax:    5,
		RateLimitWindow: time.Hour,
	}
	r := gin.New()
	router.RegisterRoutes(r, cfg)
	return r, stub
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(out); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}

func TestPreflightAndCORSHeaders(t *testing.T) {
	r, _ := setupTest(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/homepage", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200 for preflight, got %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("Expected empty preflight body, got %q", w.Body.String())
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Expected Access-Control-Allow-Origin *, got %q", got)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	r, _ := setupTest(t)

	req := httptest.NewRequest(http.MethodPut, "/api/suggestions", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", w.Code)
	}
}
