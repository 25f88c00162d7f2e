package domain

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/Vovarama1992/signalhub/internal/ports"
)

const chunkFailedPlaceholder = "[Chunk processing failed]"

const (
	chunkSystemPrompt = "You are a helpful assistant that creates concise one-line summaries of customer interactions."
	finalSystemPrompt = "You are a helpful assistant that consolidates multiple summaries into one concise insight."
)

// InsightDistiller produces a one-line summary of a text. The primary LLM
// engine handles oversized input with chunk-and-reduce; the fallback text
// intelligence engine is attempted only when the whole primary attempt
// errors. Both failing is the only error the caller sees.
type InsightDistiller struct {
	primary  ports.ChatCompleter
	fallback ports.TextIntelligence

	chunkSize int
	minWords  int
}

func NewInsightDistiller(primary ports.ChatCompleter, fallback ports.TextIntelligence, chunkSize, minWords int) *InsightDistiller {
	return &InsightDistiller{
		primary:   primary,
		fallback:  fallback,
		chunkSize: chunkSize,
		minWords:  minWords,
	}
}

// Distill returns a single-line summary of text. The label is a free-form
// descriptor ("interaction", "document", "voice capture") injected into the
// prompt verbatim; it does not change control flow.
func (d *InsightDistiller) Distill(ctx context.Context, text, label string) (string, error) {
	if d.primary != nil && d.primary.Configured() {
		tag := strings.ToUpper(d.primary.Name())
		log.Printf("[DISTILL][%s][START] label=%s chars=%d", tag, label, len(text))

		out, err := d.distillPrimary(ctx, text, label)
		if err == nil && out != "" {
			log.Printf("[DISTILL][%s][OK]", tag)
			return out, nil
		}
		if err == nil {
			err = errors.New("empty output")
		}
		log.Printf("[DISTILL][%s][ERR] %v", tag, err)
	}

	if d.fallback != nil && d.fallback.Configured() {
		tag := strings.ToUpper(d.fallback.Name())

		// Near-trivial text: summarization is a no-op, skip the network call.
		if len(strings.Fields(text)) < d.minWords {
			log.Printf("[DISTILL][%s][SKIP] text below %d words", tag, d.minWords)
			return strings.TrimSpace(text), nil
		}

		log.Printf("[DISTILL][%s][START] chars=%d", tag, len(text))
		out, err := d.fallback.Summarize(ctx, text)
		if err == nil && out != "" {
			log.Printf("[DISTILL][%s][OK]", tag)
			return oneLine(out), nil
		}
		if err == nil {
			err = errors.New("empty output")
		}
		log.Printf("[DISTILL][%s][ERR] %v", tag, err)
	}

	return "", ErrDistillationExhausted
}

func (d *InsightDistiller) distillPrimary(ctx context.Context, text, label string) (string, error) {
	if len(text) <= d.chunkSize {
		out, err := d.primary.Complete(ctx, chunkSystemPrompt, chunkPrompt(label, text))
		if err != nil {
			return "", err
		}
		return oneLine(out), nil
	}

	chunks := splitChunks(text, d.chunkSize)
	log.Printf("[DISTILL][CHUNKED] chars=%d chunks=%d", len(text), len(chunks))

	// A failed chunk degrades to a placeholder so one bad chunk does not
	// abort the whole job. Chunk order is preserved through the synthesis.
	summaries := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		out, err := d.primary.Complete(ctx, chunkSystemPrompt, chunkPrompt(label, chunk))
		if err != nil {
			log.Printf("[DISTILL][CHUNK][ERR] chunk=%d/%d err=%v", i+1, len(chunks), err)
			summaries = append(summaries, chunkFailedPlaceholder)
			continue
		}
		summaries = append(summaries, oneLine(out))
	}

	out, err := d.primary.Complete(ctx, finalSystemPrompt, synthesisPrompt(label, strings.Join(summaries, "\n")))
	if err != nil {
		return "", err
	}
	return oneLine(out), nil
}

func chunkPrompt(label, text string) string {
	return fmt.Sprintf(`You are a customer service analyst. Provide a concise one-line summary of this %s.
Focus on the main topic, customer concern, or outcome.

%s: %s

One-line summary:`, label, capitalize(label), text)
}

func synthesisPrompt(label, partials string) string {
	return fmt.Sprintf(`You are a lead analyst. Below are summaries of different parts of a long %s.
Synthesize them into a single, cohesive one-line summary that captures the overall essence.

Partial Summaries:
%s

Final One-line summary:`, label, partials)
}

// splitChunks cuts text at fixed character boundaries, no semantic awareness.
// The final chunk may be shorter.
func splitChunks(text string, size int) []string {
	chunks := make([]string, 0, len(text)/size+1)
	for start := 0; start < len(text); start += size {
		end := start + size
		if end > len(text) {
			end = len(text)
		}
		chunks = append(chunks, text[start:end])
	}
	return chunks
}

// oneLine collapses whitespace runs so a successful result never carries an
// embedded newline.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
