package handler

import (
	"bytes"
	"encoding/base64"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/krispatl/mootie/internal/pkg/response"
	"github.com/krispatl/mootie/internal/service"
)

type ChatHandler struct {
	chat *service.ChatService
}

func NewChatHandler(chat *service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

type sendMessageRequest struct {
	Text      string `json:"text"`
	Message   string `json:"message"`
	Prompt    string `json:"prompt"`
	Mode      string `json:"mode"`
	WithAudio bool   `json:"withAudio"`
}

// text, message and prompt were all in use across legacy clients.
func (r sendMessageRequest) input() string {
	for _, v := range []string{r.Text, r.Message, r.Prompt} {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "invalid request body")
		return
	}
	text := req.input()
	if text == "" {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "missing input text")
		return
	}
	result, err := h.chat.SendMessage(c.Request.Context(), text, req.Mode, req.WithAudio)
	if err != nil {
		handleError(c, err)
		return
	}
	data := gin.H{
		"assistantResponse": result.Text,
		"references":        result.References,
	}
	if len(result.Audio) > 0 {
		data["assistantAudio"] = base64.StdEncoding.EncodeToString(result.Audio)
		data["audioMime"] = result.Mime
	}
	response.Success(c, data)
}

type transcribeJSONRequest struct {
	Audio string `json:"audio"`
}

// Transcribe accepts either a multipart `audio` field or a JSON body
// with base64 audio (optionally a data URI), matching both client
// generations.
func (h *ChatHandler) Transcribe(c *gin.Context) {
	contentType := c.ContentType()
	if contentType == "application/json" {
		var req transcribeJSONRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Audio) == "" {
			response.Error(c, http.StatusBadRequest, response.CodeValidation, "missing audio data")
			return
		}
		payload := req.Audio
		if i := strings.IndexByte(payload, ','); i >= 0 {
			payload = payload[i+1:]
		}
		raw, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			response.Error(c, http.StatusBadRequest, response.CodeValidation, "invalid base64 audio")
			return
		}
		h.transcribe(c, "audio.webm", bytes.NewReader(raw))
		return
	}

	file := formFile(c, "audio", "file")
	if file == nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "no audio field found")
		return
	}
	opened, err := file.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "failed to open audio")
		return
	}
	defer opened.Close()
	h.transcribe(c, file.Filename, opened)
}

func (h *ChatHandler) transcribe(c *gin.Context, filename string, r io.Reader) {
	text, err := h.chat.Transcribe(c.Request.Context(), filename, r)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"text": text})
}

type ttsRequest struct {
	Text   string `json:"text"`
	Voice  string `json:"voice"`
	Format string `json:"format"`
}

func (h *ChatHandler) TTS(c *gin.Context) {
	var req ttsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "missing text for tts")
		return
	}
	audio, mime, err := h.chat.Synthesize(c.Request.Context(), req.Text, req.Voice, req.Format)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{
		"audio": base64.StdEncoding.EncodeToString(audio),
		"mime":  mime,
	})
}
