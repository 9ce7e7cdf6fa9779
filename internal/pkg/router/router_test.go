package router

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shandysiswandi/backlink/internal/pkg/config"
	"github.com/shandysiswandi/backlink/internal/pkg/goerror"
	"github.com/shandysiswandi/backlink/internal/pkg/jwt"
)

type staticID string

func (s staticID) Generate() string { return string(s) }

type fakeJWT struct{}

func (fakeJWT) Generate(jwt.Subject) (string, error) { return "token", nil }

func (fakeJWT) Verify(token string) (jwt.Claims, error) {
	if token != "good" {
		return jwt.Claims{}, jwt.ErrInvalidToken
	}
	return jwt.Claims{UserID: 7, Role: "buyer"}, nil
}

type greeting struct {
	Name string `json:"name"`
}

func (greeting) Message() string { return "hello" }

type created struct{}

func (created) StatusCode() int { return http.StatusCreated }

func newTestRouter(t *testing.T, yaml string) *Router {
	t.Helper()

	var cfg config.Config
	if yaml != "" {
		v, err := config.NewViperFromBytes("yaml", []byte(yaml))
		if err != nil {
			t.Fatalf("NewViperFromBytes() error = %v", err)
		}
		cfg = v
	}

	r := NewRouter(Config{
		Config:       cfg,
		UUID:         staticID("cid-generated"),
		JWT:          fakeJWT{},
		PublicRoutes: []string{"POST /public", "GET /panic", "post /created"},
	})

	r.POST("/public", func(req *Request) (any, error) {
		var body greeting
		if err := req.DecodeBody(&body); err != nil {
			return nil, err
		}
		return body, nil
	})
	r.POST("/created", func(*Request) (any, error) { return created{}, nil })
	r.GET("/private", func(req *Request) (any, error) {
		return map[string]int64{"user_id": jwt.GetAuth(req.Context()).UserID}, nil
	})
	r.GET("/panic", func(*Request) (any, error) { panic("boom") })

	return r
}

func do(t *testing.T, h http.Handler, method, path, body string, headers map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("response is not JSON: %v (%s)", err, rec.Body.String())
		}
	}
	return rec, out
}

func TestRouter_SuccessEnvelope(t *testing.T) {
	// Arrange
	r := newTestRouter(t, "")

	// Act
	rec, out := do(t, r, http.MethodPost, "/public", `{"name":"jane"}`, nil)

	// Assert
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if out["message"] != "hello" {
		t.Fatalf("message = %v", out["message"])
	}
	data, _ := out["data"].(map[string]any)
	if data["name"] != "jane" {
		t.Fatalf("data = %v", out["data"])
	}
	if got := rec.Header().Get(HeaderCorrelationID); got != "cid-generated" {
		t.Fatalf("correlation id = %q", got)
	}
}

func TestRouter_CustomStatusAndCorrelationHeader(t *testing.T) {
	r := newTestRouter(t, "")

	rec, _ := do(t, r, http.MethodPost, "/created", `{}`, map[string]string{HeaderRequestID: "from-proxy"})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if got := rec.Header().Get(HeaderCorrelationID); got != "from-proxy" {
		t.Fatalf("correlation id = %q", got)
	}
}

func TestRouter_InvalidBody(t *testing.T) {
	r := newTestRouter(t, "")

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed", body: `{"name":`},
		{name: "unknown field", body: `{"nick":"x"}`},
		{name: "trailing data", body: `{"name":"a"}{"name":"b"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, out := do(t, r, http.MethodPost, "/public", tt.body, nil)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if out["message"] != "Invalid request body" {
				t.Fatalf("message = %v", out["message"])
			}
		})
	}
}

func TestRouter_Authentication(t *testing.T) {
	r := newTestRouter(t, "")

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing", header: "", want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good", want: http.StatusUnauthorized},
		{name: "bad token", header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "good token", header: "Bearer good", want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.header != "" {
				headers["Authorization"] = tt.header
			}

			rec, out := do(t, r, http.MethodGet, "/private", "", headers)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
			if tt.want == http.StatusOK {
				data, _ := out["data"].(map[string]any)
				if data["user_id"] != float64(7) {
					t.Fatalf("data = %v", out["data"])
				}
			}
		})
	}
}

func TestRouter_PanicRecovered(t *testing.T) {
	r := newTestRouter(t, "")

	rec, out := do(t, r, http.MethodGet, "/panic", "", nil)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if out["message"] != "Internal server error" {
		t.Fatalf("message = %v", out["message"])
	}
}

func TestRouter_Maintenance(t *testing.T) {
	r := newTestRouter(t, "app:\n  maintenance:\n    endpoints: /public\n")

	rec, _ := do(t, r, http.MethodPost, "/public", `{"name":"x"}`, nil)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestRouter_NotFoundAndMethodNotAllowed(t *testing.T) {
	r := newTestRouter(t, "")

	if rec, _ := do(t, r, http.MethodGet, "/missing", "", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if rec, _ := do(t, r, http.MethodDelete, "/public", "", nil); rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantFields map[string]any
	}{
		{
			name:       "plain error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "business with fields",
			err:        goerror.NewBusiness("Invalid code", goerror.CodeBadRequest, "attempts_remaining", 2),
			wantStatus: http.StatusBadRequest,
			wantFields: map[string]any{"attempts_remaining": float64(2)},
		},
		{
			name:       "validation",
			err:        goerror.NewInvalidInput(nil, "password", "password is too long"),
			wantStatus: http.StatusUnprocessableEntity,
			wantFields: map[string]any{"password": "password is too long"},
		},
		{
			name:       "conflict",
			err:        goerror.NewBusiness("Phone already registered", goerror.CodeConflict),
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(t.Context(), rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var out struct {
				Error map[string]any `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
				t.Fatalf("decode: %v", err)
			}
			for k, v := range tt.wantFields {
				if out.Error[k] != v {
					t.Fatalf("error[%q] = %v (%T), want %v (%T)", k, out.Error[k], out.Error[k], v, v)
				}
			}
		})
	}
}

func TestChain_Order(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mw("a"), nil, mw("b"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if got := strings.Join(order, ","); got != "a,b,handler" {
		t.Fatalf("order = %s", got)
	}
}

func TestRealIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	if got := realIP(req); got != "203.0.113.7" {
		t.Fatalf("realIP() = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	if got := realIP(req); got != "192.0.2.1" {
		t.Fatalf("realIP() = %q", got)
	}
}
