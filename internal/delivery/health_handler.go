package delivery

import (
	"net/http"

	"github.com/Vovarama1992/signalhub/internal/config"
)

type HealthHandler struct {
	cfg config.Config
}

func NewHealthHandler(cfg config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

// GET /api/health
//
// Purely descriptive: which engines carry a credential, which is primary
// per capability, whether diarization is on the table. No side effects.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	cfg := h.cfg

	var transcriptionPrimary any
	switch {
	case cfg.HasElevenLabs():
		transcriptionPrimary = "elevenlabs"
	case cfg.HasDeepgram():
		transcriptionPrimary = "deepgram"
	case cfg.HasGroq():
		transcriptionPrimary = "groq"
	}

	chain := []string{}
	if cfg.HasElevenLabs() {
		chain = append(chain, "elevenlabs")
	}
	if cfg.HasDeepgram() {
		chain = append(chain, "deepgram")
	}
	if cfg.HasGroq() {
		chain = append(chain, "groq")
	}

	var summaryPrimary, summaryFallback any
	switch {
	case cfg.HasGroq():
		summaryPrimary = "groq"
	case cfg.HasDeepgram():
		summaryPrimary = "deepgram"
	}
	if cfg.HasGroq() && cfg.HasDeepgram() {
		summaryFallback = "deepgram"
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "operational",
		"transcription": map[string]any{
			"primary":        transcriptionPrimary,
			"diarization":    cfg.HasElevenLabs() || cfg.HasDeepgram(),
			"fallback_chain": chain,
		},
		"summarization": map[string]any{
			"primary":  summaryPrimary,
			"fallback": summaryFallback,
		},
		"api_ready": cfg.HasElevenLabs() || cfg.HasDeepgram() || cfg.HasGroq(),
		"fallbacks": map[string]bool{
			"elevenlabs": cfg.HasElevenLabs(),
			"deepgram":   cfg.HasDeepgram(),
			"groq":       cfg.HasGroq(),
			"murf":       cfg.HasMurf(),
		},
	})
}
