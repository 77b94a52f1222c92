package transcriber

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

var flacMagic = []byte("fLaC")

func testSamples(n int) []float32 {
	samples := make([]float32, n)
	for i := range samples {
		samples[i] = float32(i%100) / 200.0
	}
	return samples
}

type uploadCapture struct {
	model    string
	language string
	auth     string
	fileHead []byte
}

func captureHandler(t *testing.T, got *uploadCapture, respond string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Errorf("parsing multipart form: %v", err)
			http.Error(w, "bad form", 400)
			return
		}
		got.model = r.FormValue("model")
		got.language = r.FormValue("language")
		got.auth = r.Header.Get("Authorization")

		file, _, err := r.FormFile("file")
		if err != nil {
			t.Errorf("missing file part: %v", err)
			http.Error(w, "no file", 400)
			return
		}
		defer file.Close()
		head := make([]byte, 4)
		io.ReadFull(file, head)
		got.fileHead = head

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(respond))
	}
}

func TestGroqTranscribe(t *testing.T) {
	var got uploadCapture
	srv := httptest.NewServer(captureHandler(t, &got, `{"text":"hello from groq"}`))
	defer srv.Close()

	g := NewGroq("test-key", "")
	g.apiURL = srv.URL
	g.SetLanguage("en")

	text, err := g.Transcribe(context.Background(), testSamples(16000), 16000)
	if err != nil {
		t.Fatal(err)
	}
	if text != "hello from groq" {
		t.Errorf("text = %q", text)
	}
	if got.model != "whisper-large-v3-turbo" {
		t.Errorf("model = %q, want default", got.model)
	}
	if got.language != "en" {
		t.Errorf("language = %q, want en", got.language)
	}
	if got.auth != "Bearer test-key" {
		t.Errorf("auth = %q", got.auth)
	}
	if !bytes.Equal(got.fileHead, flacMagic) {
		t.Errorf("uploaded file does not start with fLaC: %q", got.fileHead)
	}
}

func TestOpenAITranscribe(t *testing.T) {
	var got uploadCapture
	srv := httptest.NewServer(captureHandler(t, &got, `{"text":"hello from openai"}`))
	defer srv.Close()

	o := NewOpenAI("test-key", "custom-model")
	o.apiURL = srv.URL

	text, err := o.Transcribe(context.Background(), testSamples(16000), 16000)
	if err != nil {
		t.Fatal(err)
	}
	if text != "hello from openai" {
		t.Errorf("text = %q", text)
	}
	if got.model != "custom-model" {
		t.Errorf("model = %q, want custom-model", got.model)
	}
}

func TestTranscribeAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, 429)
	}))
	defer srv.Close()

	g := NewGroq("test-key", "")
	g.apiURL = srv.URL

	if _, err := g.Transcribe(context.Background(), testSamples(16000), 16000); err == nil {
		t.Fatal("expected error on 429 response")
	}
}

func TestTranscribeEmptyBufferSkipsUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected request for empty buffer")
	}))
	defer srv.Close()

	g := NewGroq("test-key", "")
	g.apiURL = srv.URL

	text, err := g.Transcribe(context.Background(), nil, 16000)
	if err != nil {
		t.Fatal(err)
	}
	if text != "" {
		t.Errorf("text = %q, want empty", text)
	}
}

func TestNewPicksBackendFromEnv(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	if _, err := New(""); err == nil {
		t.Fatal("expected error with no API keys")
	}

	t.Setenv("GROQ_API_KEY", "g")
	tr, err := New("")
	if err != nil {
		t.Fatal(err)
	}
	if tr.Name() != "groq" {
		t.Errorf("Name() = %q, want groq", tr.Name())
	}

	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "o")
	tr, err = New("")
	if err != nil {
		t.Fatal(err)
	}
	if tr.Name() != "openai" {
		t.Errorf("Name() = %q, want openai", tr.Name())
	}
}

func TestFakeSequences(t *testing.T) {
	f := NewFake([]string{"a", "b"}, nil)
	for i, want := range []string{"a", "b", "b"} {
		got, err := f.Transcribe(context.Background(), nil, 16000)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("call %d = %q, want %q", i, got, want)
		}
	}
	if f.Calls() != 3 {
		t.Errorf("Calls() = %d, want 3", f.Calls())
	}
}
