package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/Vovarama1992/signalhub/internal/models"
)

const (
	groqBaseURL = "https://api.groq.com/openai/v1"

	groqWhisperModel = "whisper-large-v3"
	groqChatModel    = "llama-3.3-70b-versatile"
)

// GroqClient covers two capabilities on the OpenAI-compatible API: whisper
// transcription (final transcription fallback, no diarization) and llama
// chat completions (primary insight engine).
type GroqClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewGroqClient(apiKey string) *GroqClient {
	return &GroqClient{
		apiKey:  apiKey,
		baseURL: groqBaseURL,
		client:  http.DefaultClient,
	}
}

func (c *GroqClient) Name() string     { return "groq" }
func (c *GroqClient) Configured() bool { return c.apiKey != "" }

type groqTranscriptionResponse struct {
	Text string `json:"text"`
}

func (c *GroqClient) Transcribe(ctx context.Context, audio []byte) (models.Transcript, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("file", "audio")
	if err != nil {
		return models.Transcript{}, err
	}
	if _, err := fw.Write(audio); err != nil {
		return models.Transcript{}, err
	}
	_ = mw.WriteField("model", groqWhisperModel)
	_ = mw.WriteField("response_format", "verbose_json")
	_ = mw.WriteField("language", "en")
	_ = mw.WriteField("temperature", "0")
	if err := mw.Close(); err != nil {
		return models.Transcript{}, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/audio/transcriptions", &body)
	if err != nil {
		return models.Transcript{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return models.Transcript{}, fmt.Errorf("groq transcription request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != 200 {
		return models.Transcript{}, fmt.Errorf("groq transcription http %d: %s", resp.StatusCode, trimBody(raw))
	}

	var parsed groqTranscriptionResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return models.Transcript{Text: string(raw)}, nil
	}
	if parsed.Text == "" {
		return models.Transcript{Text: string(raw)}, nil
	}
	return models.Transcript{Text: parsed.Text}, nil
}

type groqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type groqChatRequest struct {
	Model       string        `json:"model"`
	Messages    []groqMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type groqChatResponse struct {
	Choices []struct {
		Message groqMessage `json:"message"`
	} `json:"choices"`
}

func (c *GroqClient) Complete(ctx context.Context, system, user string) (string, error) {
	body := groqChatRequest{
		Model:       groqChatModel,
		Temperature: 0.7,
		MaxTokens:   200,
		Messages: []groqMessage{
			{Role: "system", Content: sanitize(system)},
			{Role: "user", Content: sanitize(user)},
		},
	}

	j, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewReader(j))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("groq chat request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != 200 {
		return "", fmt.Errorf("groq chat http %d: %s", resp.StatusCode, trimBody(raw))
	}

	var parsed groqChatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("groq chat decode: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("groq chat: empty choices")
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

// sanitize drops broken UTF-8 before it reaches the wire.
func sanitize(s string) string {
	return strings.ToValidUTF8(s, "")
}
