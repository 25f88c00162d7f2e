package config

import (
	"os"
	"strconv"
)

// Config is built once at startup from the environment and stays immutable
// for the process lifetime. Which providers carry a key here decides which
// engines the chains attempt and in what order.
type Config struct {
	Port string

	ElevenLabsKey string
	DeepgramKey   string
	GroqKey       string
	MurfKey       string // TTS, kept ready for future voice conveyance

	UploadDir string
	StaticDir string

	ChunkSize       int // char boundary for chunked summarization
	MinSummaryWords int // inputs shorter than this skip the fallback network call
	MaxUploadBytes  int64
}

func Load() Config {
	return Config{
		Port: getenv("PORT", "8080"),

		ElevenLabsKey: os.Getenv("ELEVENLABS_API_KEY"),
		DeepgramKey:   os.Getenv("DEEPGRAM_API_KEY"),
		GroqKey:       os.Getenv("GROQ_API_KEY"),
		MurfKey:       os.Getenv("MURF_API_KEY"),

		UploadDir: getenv("UPLOAD_DIR", "uploads"),
		StaticDir: getenv("STATIC_DIR", "."),

		ChunkSize:       getenvInt("SUMMARY_CHUNK_SIZE", 100000),
		MinSummaryWords: getenvInt("MIN_SUMMARY_WORDS", 10),
		MaxUploadBytes:  int64(getenvInt("MAX_UPLOAD_BYTES", 50<<20)),
	}
}

func (c Config) HasElevenLabs() bool { return c.ElevenLabsKey != "" }
func (c Config) HasDeepgram() bool   { return c.DeepgramKey != "" }
func (c Config) HasGroq() bool       { return c.GroqKey != "" }
func (c Config) HasMurf() bool       { return c.MurfKey != "" }

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
