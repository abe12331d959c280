package module_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/veridict/veridict/pkg/module"
)

func echoPath() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.URL.Path))
	})
}

func TestNewValidatesPrefix(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		panics bool
	}{
		{"valid", "/api", false},
		{"empty", "", true},
		{"no leading slash", "api", true},
		{"multi level", "/api/v1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				recovered := recover() != nil
				if recovered != tt.panics {
					t.Errorf("panic = %v, want %v", recovered, tt.panics)
				}
			}()
			module.New(tt.prefix, echoPath())
		})
	}
}

func TestModuleStripsPrefix(t *testing.T) {
	m := module.New("/api", echoPath())

	req := httptest.NewRequest("GET", "/api/analyses/abc", nil)
	rec := httptest.NewRecorder()
	m.Serve(rec, req)

	if rec.Body.String() != "/analyses/abc" {
		t.Errorf("inner path = %q, want %q", rec.Body.String(), "/analyses/abc")
	}
}

func TestModuleBareRoot(t *testing.T) {
	m := module.New("/api", echoPath())

	req := httptest.NewRequest("GET", "/api", nil)
	rec := httptest.NewRecorder()
	m.Serve(rec, req)

	if rec.Body.String() != "/" {
		t.Errorf("inner path = %q, want %q", rec.Body.String(), "/")
	}
}

func TestModuleMiddlewareApplied(t *testing.T) {
	m := module.New("/api", echoPath())
	m.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Test", "applied")
			next.ServeHTTP(w, r)
		})
	})

	req := httptest.NewRequest("GET", "/api/x", nil)
	rec := httptest.NewRecorder()
	m.Serve(rec, req)

	if rec.Header().Get("X-Test") != "applied" {
		t.Error("middleware not applied")
	}
}

func TestRouterDispatch(t *testing.T) {
	router := module.NewRouter()
	router.Mount(module.New("/api", echoPath()))
	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	tests := []struct {
		path string
		want string
	}{
		{"/api/analyses", "/analyses"},
		{"/healthz", "ok"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest("GET", tt.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Body.String() != tt.want {
			t.Errorf("GET %s = %q, want %q", tt.path, rec.Body.String(), tt.want)
		}
	}
}

func TestRouterTrailingSlash(t *testing.T) {
	router := module.NewRouter()
	router.Mount(module.New("/api", echoPath()))

	req := httptest.NewRequest("GET", "/api/analyses/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Body.String() != "/analyses" {
		t.Errorf("path = %q, want trailing slash trimmed", rec.Body.String())
	}
}

func TestRouterUnknownPath(t *testing.T) {
	router := module.NewRouter()
	router.Mount(module.New("/api", echoPath()))

	req := httptest.NewRequest("GET", "/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
