package transcriber

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"dikt/encoder"
)

const openaiDefaultModel = "gpt-4o-transcribe"

type OpenAI struct {
	baseTranscriber
	apiKey string
}

func NewOpenAI(apiKey, model string) *OpenAI {
	if model == "" {
		model = openaiDefaultModel
	}
	return &OpenAI{
		baseTranscriber: baseTranscriber{
			client: newHTTPClient(),
			apiURL: "https://api.openai.com/v1/audio/transcriptions",
			model:  model,
		},
		apiKey: apiKey,
	}
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) Transcribe(ctx context.Context, samples []float32, sampleRate int) (string, error) {
	if len(samples) == 0 {
		return "", nil
	}

	flacEnc, err := encoder.NewFlac(sampleRate)
	if err != nil {
		return "", err
	}
	audioData, err := encoder.EncodeSamples(flacEnc, samples)
	if err != nil {
		return "", fmt.Errorf("encoding audio: %w", err)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", "audio.flac")
	if err != nil {
		return "", err
	}
	if _, err := part.Write(audioData); err != nil {
		return "", err
	}

	writer.WriteField("model", o.model)
	writer.WriteField("response_format", "json")
	if o.lang != "" {
		writer.WriteField("language", o.lang)
	}
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, "POST", o.apiURL, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+o.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := o.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != 200 {
		return "", fmt.Errorf("openai API error %d: %s", resp.StatusCode, string(respBody))
	}

	var oResp struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(respBody, &oResp); err != nil {
		return "", fmt.Errorf("openai response parse error: %w", err)
	}

	return oResp.Text, nil
}
