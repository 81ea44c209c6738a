package http

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("content type: got %q", got)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func TestSuccessEnvelopeShape(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeSuccess(rec, 201, map[string]string{"username": "alice"})

	if rec.Code != 201 {
		t.Fatalf("status: got %d want 201", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if body["statusCode"] != float64(201) || body["success"] != true {
		t.Fatalf("envelope mismatch: %v", body)
	}
	if body["message"] != "Success" {
		t.Fatalf("message: got %v", body["message"])
	}
	data, ok := body["data"].(map[string]any)
	if !ok || data["username"] != "alice" {
		t.Fatalf("data: got %v", body["data"])
	}
	if _, present := body["code"]; present {
		t.Fatalf("success replies must not carry an error code: %v", body)
	}
}

func TestMessageEnvelopeOmitsData(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeMessage(rec, 200, "Logged out")

	body := decodeEnvelope(t, rec)
	if body["success"] != true || body["message"] != "Logged out" {
		t.Fatalf("envelope mismatch: %v", body)
	}
	if _, present := body["data"]; present {
		t.Fatalf("message replies must not carry data: %v", body)
	}
}

func TestErrorEnvelopeShape(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeError(rec, 404, "NOT_FOUND", "account not found")

	if rec.Code != 404 {
		t.Fatalf("status: got %d want 404", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if body["statusCode"] != float64(404) || body["success"] != false {
		t.Fatalf("envelope mismatch: %v", body)
	}
	if body["code"] != "NOT_FOUND" || body["message"] != "account not found" {
		t.Fatalf("error fields mismatch: %v", body)
	}
}
