package health

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
)

func serve(t *testing.T, svc *Service) (int, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	svc.RegisterRoutes(r.Group("/api/v1"))

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	var body map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp.Code, body
}

func TestHealthWithoutDatabase(t *testing.T) {
	code, body := serve(t, NewService(nil))
	if code != http.StatusOK || body["ok"] != true {
		t.Fatalf("unexpected response %d %v", code, body)
	}
	checks := body["checks"].(map[string]any)
	if checks["database"] != "disabled" {
		t.Fatalf("expected database disabled, got %v", checks["database"])
	}
}

func TestHealthPingsDatabase(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectPing()
	code, body := serve(t, NewService(db))
	if code != http.StatusOK || body["checks"].(map[string]any)["database"] != "ok" {
		t.Fatalf("unexpected response %d %v", code, body)
	}

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	code, body = serve(t, NewService(db))
	if code != http.StatusServiceUnavailable || body["ok"] != false {
		t.Fatalf("expected 503, got %d %v", code, body)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
