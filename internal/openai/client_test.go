package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	errs "github.com/krispatl/mootie/internal/pkg/errors"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Options{APIKey: "sk-test", BaseURL: server.URL, Timeout: 2 * time.Second})
}

func TestUploadFileSendsAssistantPurpose(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/files", r.URL.Path)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NotEmpty(t, r.Header.Get("X-Request-Id"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, "assistants", r.FormValue("purpose"))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "brief.pdf", header.Filename)

		_ = json.NewEncoder(w).Encode(File{ID: "file_abc", Filename: "brief.pdf", Bytes: 8})
	}))

	file, err := client.UploadFile(context.Background(), "brief.pdf", strings.NewReader("argument"))
	require.NoError(t, err)
	require.Equal(t, "file_abc", file.ID)
}

func TestDeleteFileNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"message":"No such file"}}`))
	}))

	err := client.DeleteFile(context.Background(), "file_missing")
	require.Error(t, err)
	require.True(t, errs.IsNotFound(err))
}

func TestUpstreamErrorBodyTruncated(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(strings.Repeat("x", 5000)))
	}))

	err := client.DeleteFile(context.Background(), "file_1")
	ue, ok := errs.AsUpstream(err)
	require.True(t, ok)
	require.Equal(t, http.StatusBadGateway, ue.Status)
	require.LessOrEqual(t, len(ue.Body), maxErrorBody)
}

func TestCallTimeoutIsClassified(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	t.Cleanup(server.Close)
	client := NewClient(Options{APIKey: "sk-test", BaseURL: server.URL, Timeout: 50 * time.Millisecond})

	err := client.DeleteFile(context.Background(), "file_1")
	require.Error(t, err)
	require.True(t, errs.IsTimeout(err), "expected timeout classification, got %v", err)
}

func TestMissingAPIKeyIsConfigError(t *testing.T) {
	client := NewClient(Options{APIKey: ""})
	err := client.DeleteFile(context.Background(), "file_1")
	require.ErrorIs(t, err, errs.ErrConfig)
}

func TestAttachAndListVectorFiles(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/vector_stores/vs_1/files":
			var req map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Equal(t, "file_abc", req["file_id"])
			_ = json.NewEncoder(w).Encode(VectorStoreEntry{ID: "file_abc", Status: "in_progress"})
		case r.Method == http.MethodGet && r.URL.Path == "/vector_stores/vs_1/files":
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"data": []VectorStoreEntry{{ID: "file_abc", Status: "completed"}},
			})
		default:
			t.Fatalf("unexpected call %s %s", r.Method, r.URL.Path)
		}
	}))

	entry, err := client.AttachFile(context.Background(), "vs_1", "file_abc")
	require.NoError(t, err)
	require.Equal(t, "in_progress", entry.Status)

	entries, err := client.ListVectorFiles(context.Background(), "vs_1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "completed", entries[0].Status)
}

func TestRespondCollectsCitations(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/responses", r.URL.Path)
		var req responsesRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "gpt-4o-mini", req.Model)
		require.Len(t, req.Tools, 1)
		require.Equal(t, "file_search", req.Tools[0].Type)
		require.Equal(t, []string{"vs_1"}, req.Tools[0].VectorStoreIDs)

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"output": []map[string]interface{}{
				{
					"type": "message",
					"content": []map[string]interface{}{
						{
							"type": "output_text",
							"text": "The statute controls.",
							"annotations": []map[string]string{
								{"type": "file_citation", "file_id": "file_abc", "filename": "brief.pdf"},
								{"type": "file_citation", "file_id": "file_abc", "filename": "brief.pdf"},
							},
						},
					},
				},
			},
		})
	}))

	reply, err := client.Respond(context.Background(), "gpt-4o-mini", "argue", "vs_1", 4)
	require.NoError(t, err)
	require.Equal(t, "The statute controls.", reply.Text)
	require.Equal(t, []string{"brief.pdf"}, reply.References, "duplicate citations must be deduplicated")
}

func TestRespondWithoutStoreSkipsTools(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req responsesRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Empty(t, req.Tools)
		_ = json.NewEncoder(w).Encode(map[string]string{"output_text": "Plain answer."})
	}))

	reply, err := client.Respond(context.Background(), "gpt-4o-mini", "argue", "", 0)
	require.NoError(t, err)
	require.Equal(t, "Plain answer.", reply.Text)
	require.Empty(t, reply.References)
}

func TestTranscribeAndSpeech(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/audio/transcriptions":
			require.NoError(t, r.ParseMultipartForm(1<<20))
			require.Equal(t, "whisper-1", r.FormValue("model"))
			_ = json.NewEncoder(w).Encode(map[string]string{"text": "may it please the court"})
		case "/audio/speech":
			var req speechRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Equal(t, "alloy", req.Voice)
			_, _ = w.Write([]byte{0x49, 0x44, 0x33})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))

	text, err := client.Transcribe(context.Background(), "whisper-1", "audio.webm", strings.NewReader("blob"))
	require.NoError(t, err)
	require.Equal(t, "may it please the court", text)

	audio, err := client.Speech(context.Background(), "tts-1", "alloy", "mp3", "hello")
	require.NoError(t, err)
	require.Equal(t, []byte{0x49, 0x44, 0x33}, audio)
}
