package handler_test

import (
	"bytes"
	"encoding/base64"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSendMessageReturnsReplyAndReferences(t *testing.T) {
	router, _ := setupRouter(t)

	resp, env := doJSON(t, router, http.MethodPost, "/send-message", map[string]interface{}{
		"text": "Does the precedent support our motion?",
		"mode": "judge",
	})
	require.Equal(t, http.StatusOK, resp.Code)
	require.True(t, env.Success)
	require.Equal(t, "The precedent favors your motion.", env.Data["assistantResponse"])
	refs, ok := env.Data["references"].([]interface{})
	require.True(t, ok)
	require.Equal(t, []interface{}{"brief.pdf"}, refs)
	require.NotContains(t, env.Data, "assistantAudio")
}

func TestSendMessageAcceptsLegacyFields(t *testing.T) {
	router, _ := setupRouter(t)

	for _, body := range []map[string]interface{}{
		{"message": "Summarize the record."},
		{"prompt": "Summarize the record."},
	} {
		resp, env := doJSON(t, router, http.MethodPost, "/send-message", body)
		require.Equal(t, http.StatusOK, resp.Code)
		require.True(t, env.Success)
		require.NotEmpty(t, env.Data["assistantResponse"])
	}
}

func TestSendMessageWithAudioAttachesSpeech(t *testing.T) {
	router, _ := setupRouter(t)

	resp, env := doJSON(t, router, http.MethodPost, "/send-message", map[string]interface{}{
		"text":      "State the holding.",
		"withAudio": true,
	})
	require.Equal(t, http.StatusOK, resp.Code)
	require.True(t, env.Success)
	audio, ok := env.Data["assistantAudio"].(string)
	require.True(t, ok)
	raw, err := base64.StdEncoding.DecodeString(audio)
	require.NoError(t, err)
	require.Equal(t, []byte{0x49, 0x44, 0x33}, raw)
	require.Equal(t, "audio/mp3", env.Data["audioMime"])
}

func TestSendMessageRejectsEmptyInput(t *testing.T) {
	router, _ := setupRouter(t)

	resp, env := doJSON(t, router, http.MethodPost, "/send-message", map[string]interface{}{"text": "   "})
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.False(t, env.Success)
	require.Equal(t, "validation", env.Code)
}

func TestSendMessageRejectsUnknownMode(t *testing.T) {
	router, _ := setupRouter(t)

	resp, env := doJSON(t, router, http.MethodPost, "/send-message", map[string]interface{}{
		"text": "argue",
		"mode": "bailiff",
	})
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.False(t, env.Success)
	require.Equal(t, "validation", env.Code)
}

func TestTranscribeMultipart(t *testing.T) {
	router, _ := setupRouter(t)

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("audio", "argument.webm")
	require.NoError(t, err)
	_, err = part.Write([]byte("opus-bytes"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/transcribe", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), "may it please the court")
}

func TestTranscribeJSONDataURI(t *testing.T) {
	router, _ := setupRouter(t)

	payload := "data:audio/webm;base64," + base64.StdEncoding.EncodeToString([]byte("opus-bytes"))
	resp, env := doJSON(t, router, http.MethodPost, "/transcribe", map[string]interface{}{"audio": payload})
	require.Equal(t, http.StatusOK, resp.Code)
	require.True(t, env.Success)
	require.Equal(t, "may it please the court", env.Data["text"])
}

func TestTranscribeRejectsMissingAudio(t *testing.T) {
	router, _ := setupRouter(t)

	resp, env := doJSON(t, router, http.MethodPost, "/transcribe", map[string]interface{}{})
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.False(t, env.Success)
	require.Equal(t, "validation", env.Code)
}

func TestTTSReturnsEncodedAudio(t *testing.T) {
	router, _ := setupRouter(t)

	resp, env := doJSON(t, router, http.MethodPost, "/tts", map[string]interface{}{"text": "Counsel, proceed."})
	require.Equal(t, http.StatusOK, resp.Code)
	require.True(t, env.Success)
	audio, ok := env.Data["audio"].(string)
	require.True(t, ok)
	raw, err := base64.StdEncoding.DecodeString(audio)
	require.NoError(t, err)
	require.Equal(t, []byte{0x49, 0x44, 0x33}, raw)
	require.Equal(t, "audio/mp3", env.Data["mime"])
}

func TestTTSRejectsEmptyText(t *testing.T) {
	router, _ := setupRouter(t)

	resp, env := doJSON(t, router, http.MethodPost, "/tts", map[string]interface{}{"text": ""})
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.False(t, env.Success)
	require.Equal(t, "validation", env.Code)
}
