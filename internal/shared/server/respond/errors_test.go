package respond

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-ats/internal/shared/telemetry"
)

func TestErrorWritesEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var logs bytes.Buffer
	restore := telemetry.SetOutput(&logs)
	defer restore()

	resp := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(resp)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/resumes/missing", nil)
	c.Set("requestId", "req-9")

	Error(c, http.StatusNotFound, "RESUME_NOT_FOUND", "Resume not found", map[string]string{"resumeId": "missing"})

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
	if !c.IsAborted() {
		t.Fatal("expected context to be aborted")
	}
	var body ErrorResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error.Code != "RESUME_NOT_FOUND" || body.Error.Message != "Resume not found" {
		t.Fatalf("unexpected body: %+v", body)
	}
	if !bytes.Contains(logs.Bytes(), []byte(`"request_id":"req-9"`)) {
		t.Fatalf("expected request id in log, got %s", logs.String())
	}
}
