package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/signalhub/internal/domain"
	"github.com/Vovarama1992/signalhub/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type fakeTranscription struct {
	text  string
	err   error
	calls int
}

func (f *fakeTranscription) Transcribe(ctx context.Context, audio []byte) (string, error) {
	f.calls++
	return f.text, f.err
}

type fakeInsight struct {
	summary string
	err     error
	calls   int
}

func (f *fakeInsight) Distill(ctx context.Context, text, label string) (string, error) {
	f.calls++
	return f.summary, f.err
}

func newTestRouter(t *testing.T, transcriber *fakeTranscription, insight *fakeInsight, uploadDir string) chi.Router {
	t.Helper()

	zl := logger.NewZapLogger(zap.NewNop().Sugar())
	h := NewProcessHandler(transcriber, insight, uploadDir, 50<<20, zl)

	r := chi.NewRouter()
	r.Post("/api/process-chat", h.ProcessChat)
	r.Post("/api/process-file", h.ProcessFile)
	r.Post("/api/process-call", h.ProcessCall)
	return r
}

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &body, mw.FormDataContentType()
}

func TestProcessChat(t *testing.T) {
	insight := &fakeInsight{summary: "customer reports an internet outage"}
	r := newTestRouter(t, &fakeTranscription{}, insight, t.TempDir())

	req := httptest.NewRequest("POST", "/api/process-chat",
		strings.NewReader(`{"text":"My internet is down"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var res models.ProcessResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if !res.Success || res.Type != "chat" {
		t.Errorf("envelope = %+v", res)
	}
	if res.OriginalText != "My internet is down" {
		t.Errorf("original_text = %q", res.OriginalText)
	}
	if res.Summary == "" {
		t.Error("empty summary on success")
	}
	if res.Timestamp == "" || !strings.HasSuffix(res.Timestamp, "Z") {
		t.Errorf("timestamp = %q, want UTC-suffixed", res.Timestamp)
	}
}

func TestProcessChatEmptyText(t *testing.T) {
	insight := &fakeInsight{summary: "unused"}
	r := newTestRouter(t, &fakeTranscription{}, insight, t.TempDir())

	req := httptest.NewRequest("POST", "/api/process-chat", strings.NewReader(`{"text":""}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if insight.calls != 0 {
		t.Error("distiller called for empty input")
	}
}

func TestProcessChatAllEnginesDown(t *testing.T) {
	insight := &fakeInsight{err: domain.ErrDistillationExhausted}
	r := newTestRouter(t, &fakeTranscription{}, insight, t.TempDir())

	req := httptest.NewRequest("POST", "/api/process-chat",
		strings.NewReader(`{"text":"anything"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if !strings.Contains(w.Body.String(), "all distillation engines") {
		t.Errorf("body = %s, want the aggregate failure message", w.Body.String())
	}
}

func TestProcessFile(t *testing.T) {
	insight := &fakeInsight{summary: "a short doc"}
	dir := t.TempDir()
	r := newTestRouter(t, &fakeTranscription{}, insight, dir)

	body, ctype := multipartBody(t, "file", "notes.txt", "meeting notes about the rollout")
	req := httptest.NewRequest("POST", "/api/process-file", body)
	req.Header.Set("Content-Type", ctype)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	var res models.ProcessResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.Type != "chat" || res.OriginalText != "meeting notes about the rollout" {
		t.Errorf("envelope = %+v", res)
	}

	assertDirEmpty(t, dir)
}

func TestProcessFileUnsupportedExtension(t *testing.T) {
	insight := &fakeInsight{summary: "unused"}
	r := newTestRouter(t, &fakeTranscription{}, insight, t.TempDir())

	body, ctype := multipartBody(t, "file", "malware.exe", "nope")
	req := httptest.NewRequest("POST", "/api/process-file", body)
	req.Header.Set("Content-Type", ctype)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if insight.calls != 0 {
		t.Error("distiller called for rejected upload")
	}
}

func TestProcessCall(t *testing.T) {
	transcriber := &fakeTranscription{text: "Speaker 0: Hello\n\nSpeaker 1: Hi there"}
	insight := &fakeInsight{summary: "two people greet each other"}
	dir := t.TempDir()
	r := newTestRouter(t, transcriber, insight, dir)

	body, ctype := multipartBody(t, "audio", "call.mp3", "fake-audio-bytes")
	req := httptest.NewRequest("POST", "/api/process-call", body)
	req.Header.Set("Content-Type", ctype)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	var res models.ProcessResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.Type != "call" || res.Transcription != transcriber.text {
		t.Errorf("envelope = %+v", res)
	}
	if res.Summary == "" {
		t.Error("empty summary on success")
	}

	assertDirEmpty(t, dir)
}

func TestProcessCallNoEnginesLeavesNoTempFile(t *testing.T) {
	transcriber := &fakeTranscription{err: domain.ErrTranscriptionExhausted}
	insight := &fakeInsight{summary: "unused"}
	dir := t.TempDir()
	r := newTestRouter(t, transcriber, insight, dir)

	body, ctype := multipartBody(t, "audio", "call.wav", "bytes")
	req := httptest.NewRequest("POST", "/api/process-call", body)
	req.Header.Set("Content-Type", ctype)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if !strings.Contains(w.Body.String(), "all transcription engines") {
		t.Errorf("body = %s, want the aggregate failure message", w.Body.String())
	}
	if insight.calls != 0 {
		t.Error("distiller called after transcription failure")
	}

	assertDirEmpty(t, dir)
}

func assertDirEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("temp files left behind: %d", len(entries))
	}
}
