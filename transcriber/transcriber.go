// Package transcriber turns captured audio into text. Backends are
// batch HTTP speech APIs: every call uploads the full sample buffer and
// returns the complete transcript.
package transcriber

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"
)

// Transcriber converts samples to text. Empty text and errors both mean
// "no result"; callers treat neither as fatal mid-session.
type Transcriber interface {
	Name() string
	SetLanguage(lang string)
	GetLanguage() string
	Transcribe(ctx context.Context, samples []float32, sampleRate int) (string, error)
}

type baseTranscriber struct {
	client *http.Client
	apiURL string
	model  string
	lang   string
}

func (b *baseTranscriber) SetLanguage(lang string) { b.lang = lang }

func (b *baseTranscriber) GetLanguage() string { return b.lang }

func newHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        4,
			MaxIdleConnsPerHost: 4,
			IdleConnTimeout:     90 * time.Second,
			ForceAttemptHTTP2:   true,
		},
	}
}

// New picks a backend from the environment. model overrides the
// backend's default model name when non-empty.
func New(model string) (Transcriber, error) {
	groqKey := os.Getenv("GROQ_API_KEY")
	openaiKey := os.Getenv("OPENAI_API_KEY")

	if groqKey != "" {
		return NewGroq(groqKey, model), nil
	}
	if openaiKey != "" {
		return NewOpenAI(openaiKey, model), nil
	}

	return nil, fmt.Errorf("set GROQ_API_KEY or OPENAI_API_KEY environment variable")
}

func firstNonEmpty(h http.Header, keys ...string) string {
	for _, k := range keys {
		if v := h.Get(k); v != "" {
			return v
		}
	}
	return "?"
}
