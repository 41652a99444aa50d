package handler

import (
	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	Documents *DocumentHandler
	Chat      *ChatHandler
	Score     *ScoreHandler

	// RateLimit guards the provider-backed endpoints when set.
	RateLimit gin.HandlerFunc
}

// RegisterRoutes keeps the paths the existing front end calls.
func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.GET("/health", Health)

	api.GET("/list-files", deps.Documents.List)
	api.GET("/vector-store", deps.Documents.List)
	api.POST("/upload-document", deps.Documents.Upload)
	api.DELETE("/delete-file", deps.Documents.Delete)

	api.POST("/score", deps.Score.Score)
	api.POST("/notes", deps.Score.Notes)

	limited := api.Group("")
	if deps.RateLimit != nil {
		limited.Use(deps.RateLimit)
	}
	limited.POST("/send-message", deps.Chat.SendMessage)
	limited.POST("/transcribe", deps.Chat.Transcribe)
	limited.POST("/tts", deps.Chat.TTS)
}
