package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/signalhub/internal/config"
	"github.com/Vovarama1992/signalhub/internal/delivery"
	"github.com/Vovarama1992/signalhub/internal/domain"
	"github.com/Vovarama1992/signalhub/internal/infra"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {

	// ENV
	if err := godotenv.Load(); err != nil {
		log.Println("WARN: no .env file loaded")
	}

	cfg := config.Load()

	// LOGGER
	zcore, _ := zap.NewProduction()
	zl := logger.NewZapLogger(zcore.Sugar())

	if err := os.MkdirAll(cfg.UploadDir, 0755); err != nil {
		panic("cannot create upload dir: " + err.Error())
	}

	// PROVIDER CLIENTS
	elevenlabs := infra.NewElevenLabsClient(cfg.ElevenLabsKey)
	deepgram := infra.NewDeepgramClient(cfg.DeepgramKey)
	groq := infra.NewGroqClient(cfg.GroqKey)

	// CHAINS
	chain := domain.NewTranscribeChain(elevenlabs, deepgram, groq)
	distiller := domain.NewInsightDistiller(groq, deepgram, cfg.ChunkSize, cfg.MinSummaryWords)

	// HANDLERS
	hProcess := delivery.NewProcessHandler(chain, distiller, cfg.UploadDir, cfg.MaxUploadBytes, zl)
	hHealth := delivery.NewHealthHandler(cfg)
	hToken := delivery.NewTokenHandler(elevenlabs, zl)
	hStatic := delivery.NewStaticHandler(cfg.StaticDir)

	// ROUTER
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}))

	delivery.RegisterRoutes(r, hProcess, hHealth, hToken, hStatic)

	// STARTUP REPORT
	transcriptionChain := []string{}
	if cfg.HasElevenLabs() {
		transcriptionChain = append(transcriptionChain, "elevenlabs")
	}
	if cfg.HasDeepgram() {
		transcriptionChain = append(transcriptionChain, "deepgram")
	}
	if cfg.HasGroq() {
		transcriptionChain = append(transcriptionChain, "groq")
	}

	switch {
	case len(transcriptionChain) == 0:
		zl.Log(logger.LogEntry{
			Level:   "warn",
			Message: "no transcription engines configured",
		})
	case !cfg.HasElevenLabs() && !cfg.HasDeepgram():
		zl.Log(logger.LogEntry{
			Level:   "warn",
			Message: "running in basic mode, no speaker diarization",
			Fields:  map[string]any{"chain": strings.Join(transcriptionChain, " -> ")},
		})
	default:
		zl.Log(logger.LogEntry{
			Level:   "info",
			Message: "transcription chain ready",
			Fields:  map[string]any{"chain": strings.Join(transcriptionChain, " -> ")},
		})
	}

	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "server started",
		Fields:  map[string]any{"port": cfg.Port},
	})

	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		zl.Log(logger.LogEntry{
			Level:   "error",
			Message: "server crashed",
			Error:   err,
		})
	}
}
