package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

type transcriptionResponse struct {
	Text string `json:"text"`
}

// Transcribe forwards an audio blob to the speech-to-text endpoint and
// returns the transcript.
func (c *Client) Transcribe(ctx context.Context, model, filename string, r io.Reader) (string, error) {
	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)
	go func() {
		err := writeTranscribeForm(form, model, filename, r)
		pw.CloseWithError(err)
	}()

	var out transcriptionResponse
	if err := c.do(ctx, "transcribe", http.MethodPost, "/audio/transcriptions", form.FormDataContentType(), pr, &out); err != nil {
		return "", err
	}
	if out.Text == "" {
		return "", fmt.Errorf("transcribe: response has no text")
	}
	return out.Text, nil
}

func writeTranscribeForm(form *multipart.Writer, model, filename string, r io.Reader) error {
	if err := form.WriteField("model", model); err != nil {
		return err
	}
	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, r); err != nil {
		return err
	}
	return form.Close()
}

type speechRequest struct {
	Model  string `json:"model"`
	Voice  string `json:"voice"`
	Input  string `json:"input"`
	Format string `json:"response_format,omitempty"`
}

// Speech synthesizes text and returns the raw audio bytes.
func (c *Client) Speech(ctx context.Context, model, voice, format, text string) ([]byte, error) {
	data, err := json.Marshal(speechRequest{Model: model, Voice: voice, Input: text, Format: format})
	if err != nil {
		return nil, err
	}
	return c.doRaw(ctx, "speech", http.MethodPost, "/audio/speech", "application/json", bytes.NewReader(data))
}
