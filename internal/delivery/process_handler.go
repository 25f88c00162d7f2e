package delivery

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/signalhub/internal/domain"
	"github.com/Vovarama1992/signalhub/internal/models"
	"github.com/Vovarama1992/signalhub/internal/ports"
)

var allowedUploadExts = map[string]bool{
	".txt": true, ".csv": true, ".json": true, ".md": true, ".log": true, ".pdf": true,
}

type ProcessHandler struct {
	transcriber ports.TranscriptionService
	insight     ports.InsightService

	uploadDir string
	maxBytes  int64
	log       *logger.ZapLogger
}

func NewProcessHandler(
	transcriber ports.TranscriptionService,
	insight ports.InsightService,
	uploadDir string,
	maxBytes int64,
	log *logger.ZapLogger,
) *ProcessHandler {
	return &ProcessHandler{
		transcriber: transcriber,
		insight:     insight,
		uploadDir:   uploadDir,
		maxBytes:    maxBytes,
		log:         log,
	}
}

// POST /api/process-chat
func (h *ProcessHandler) ProcessChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "No content provided")
		return
	}

	summary, err := h.insight.Distill(r.Context(), req.Text, "interaction")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "chat processed",
		Fields:  map[string]any{"chars": len(req.Text)},
	})

	writeJSON(w, http.StatusOK, models.ProcessResult{
		Success:      true,
		Type:         "chat",
		OriginalText: req.Text,
		Summary:      summary,
		Timestamp:    time.Now().UTC().Format(timestampLayout),
	})
}

// POST /api/process-file
func (h *ProcessHandler) ProcessFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		writeError(w, http.StatusBadRequest, "No file selected")
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedUploadExts[ext] {
		writeError(w, http.StatusBadRequest, "Unsupported format. Use: .txt, .csv, .json, .md, .log, .pdf")
		return
	}

	path, err := saveUpload(h.uploadDir, file, header.Filename)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store upload: "+err.Error())
		return
	}
	// working copy dies with the request, whatever extraction does
	defer func() { _ = os.Remove(path) }()

	text, err := domain.ExtractText(path, header.Filename)
	if err != nil || text == "" {
		if err != nil {
			h.log.Log(logger.LogEntry{
				Level:   "warn",
				Message: "file extraction failed",
				Fields:  map[string]any{"file": header.Filename},
				Error:   err,
			})
		}
		writeError(w, http.StatusBadRequest, "Could not extract text from file")
		return
	}

	summary, err := h.insight.Distill(r.Context(), text, "document")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "file processed",
		Fields:  map[string]any{"file": header.Filename, "chars": len(text)},
	})

	writeJSON(w, http.StatusOK, models.ProcessResult{
		Success:      true,
		Type:         "chat",
		OriginalText: text,
		Summary:      summary,
		Timestamp:    time.Now().UTC().Format(timestampLayout),
	})
}

// POST /api/process-call
func (h *ProcessHandler) ProcessCall(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	file, header, err := r.FormFile("audio")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No audio file provided")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		writeError(w, http.StatusBadRequest, "No file selected")
		return
	}

	audio, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read audio: "+err.Error())
		return
	}

	path, err := saveUpload(h.uploadDir, bytes.NewReader(audio), header.Filename)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store upload: "+err.Error())
		return
	}
	defer func() { _ = os.Remove(path) }()

	transcription, err := h.transcriber.Transcribe(r.Context(), audio)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	summary, err := h.insight.Distill(r.Context(), transcription, "voice capture")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "call processed",
		Fields: map[string]any{
			"file":        header.Filename,
			"audio_bytes": len(audio),
			"chars":       len(transcription),
		},
	})

	writeJSON(w, http.StatusOK, models.ProcessResult{
		Success:       true,
		Type:          "call",
		Transcription: transcription,
		Summary:       summary,
		Timestamp:     time.Now().UTC().Format(timestampLayout),
	})
}
