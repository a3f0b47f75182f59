package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bitbucket.org/mahadgroup/erp_backend/config"
	"bitbucket.org/mahadgroup/erp_backend/middlewares"
	"bitbucket.org/mahadgroup/erp_backend/utils"
	"github.com/gin-gonic/gin"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := config.GetLogger()
	r := gin.New()
	r.Use(middlewares.CorrelationMiddleware())
	dash := r.Group("/api/dashboard", middlewares.AuthMiddleware())
	dash.GET("/", dashboardHandler(logger))
	dash.GET("/export", dashboardExportHandler(logger))
	dash.GET("/:slug", dashboardBySlugHandler(logger))
	return r
}

func doRequest(t *testing.T, r *gin.Engine, path string, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("response is not an error envelope: %s", body)
	}
	return envelope.Error.Code
}

func TestDashboard_RequiresAuth(t *testing.T) {
	r := newTestRouter()

	w := doRequest(t, r, "/api/dashboard/", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if code := errorCode(t, w.Body.Bytes()); code != "UNAUTHENTICATED" {
		t.Errorf("error code = %q, want UNAUTHENTICATED", code)
	}
}

func TestDashboard_RejectsMalformedToken(t *testing.T) {
	r := newTestRouter()

	w := doRequest(t, r, "/api/dashboard/", "not.a.token")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestDashboard_SlugMismatchIsForbidden(t *testing.T) {
	r := newTestRouter()
	token, err := utils.JwtGenerate(1, "ACCOUNTANT", 2, 0)
	if err != nil {
		t.Fatalf("JwtGenerate: %v", err)
	}

	w := doRequest(t, r, "/api/dashboard/hq-admin", token)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	if code := errorCode(t, w.Body.Bytes()); code != "UNAUTHORIZED" {
		t.Errorf("error code = %q, want UNAUTHORIZED", code)
	}
}

func TestDashboard_UnknownSlug(t *testing.T) {
	r := newTestRouter()
	token, err := utils.JwtGenerate(1, "ACCOUNTANT", 2, 0)
	if err != nil {
		t.Fatalf("JwtGenerate: %v", err)
	}

	w := doRequest(t, r, "/api/dashboard/super-admin", token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if code := errorCode(t, w.Body.Bytes()); code != "UNKNOWN_ROLE" {
		t.Errorf("error code = %q, want UNKNOWN_ROLE", code)
	}
}

func TestDashboard_UnknownRoleInToken(t *testing.T) {
	r := newTestRouter()
	token, err := utils.JwtGenerate(1, "MANAGER_X", 2, 0)
	if err != nil {
		t.Fatalf("JwtGenerate: %v", err)
	}

	w := doRequest(t, r, "/api/dashboard/", token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if code := errorCode(t, w.Body.Bytes()); code != "UNKNOWN_ROLE" {
		t.Errorf("error code = %q, want UNKNOWN_ROLE", code)
	}
}

func TestDashboard_InvalidAsOf(t *testing.T) {
	r := newTestRouter()
	token, err := utils.JwtGenerate(1, "ACCOUNTANT", 2, 0)
	if err != nil {
		t.Fatalf("JwtGenerate: %v", err)
	}

	w := doRequest(t, r, "/api/dashboard/?as_of=15-03-2024", token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if code := errorCode(t, w.Body.Bytes()); code != "INVALID_REQUEST" {
		t.Errorf("error code = %q, want INVALID_REQUEST", code)
	}
}

func TestCorrelationMiddleware_EchoesHeader(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/", nil)
	req.Header.Set("X-Correlation-Id", "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("X-Correlation-Id"); got != "req-123" {
		t.Errorf("X-Correlation-Id = %q, want req-123", got)
	}
}
