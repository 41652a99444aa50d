package handler

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/krispatl/mootie/internal/pkg/response"
	"github.com/krispatl/mootie/internal/service"
)

type DocumentHandler struct {
	documents *service.DocumentService
	maxUpload int64
}

func NewDocumentHandler(documents *service.DocumentService, maxUpload int64) *DocumentHandler {
	if maxUpload <= 0 {
		maxUpload = 20 * 1024 * 1024
	}
	return &DocumentHandler{documents: documents, maxUpload: maxUpload}
}

// Upload accepts a multipart document and runs the two-step
// create+attach contract.
func (h *DocumentHandler) Upload(c *gin.Context) {
	file := formFile(c, "document", "file")
	if file == nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "no file uploaded")
		return
	}
	if file.Size > h.maxUpload {
		response.Error(c, http.StatusBadRequest, response.CodeValidation,
			"file exceeds upload limit of "+formatUploadLimit(h.maxUpload))
		return
	}
	opened, err := file.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "failed to open file")
		return
	}
	defer opened.Close()

	result, err := h.documents.Upload(c.Request.Context(), file.Filename, opened)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{
		"file_id":       result.FileID,
		"filename":      result.Filename,
		"vector_status": result.VectorStatus,
	})
}

// Delete removes the index entry and the file resource. Deleting an id
// that is already gone upstream still succeeds. With verify=true the
// handler polls the index until the entry disappears or the poll
// budget runs out, reporting the outcome in the verified flag.
func (h *DocumentHandler) Delete(c *gin.Context) {
	fileID := c.Query("fileId")
	if fileID == "" {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "fileId is required")
		return
	}
	if err := h.documents.Delete(c.Request.Context(), fileID); err != nil {
		handleError(c, err)
		return
	}
	data := gin.H{"deleted": true, "fileId": fileID}
	if verify, _ := strconv.ParseBool(c.Query("verify")); verify {
		verified, err := h.documents.VerifyDeleted(c.Request.Context(), fileID, 30*time.Second, 2*time.Second)
		if err != nil {
			handleError(c, err)
			return
		}
		data["verified"] = verified
	}
	response.Success(c, data)
}

func (h *DocumentHandler) List(c *gin.Context) {
	files, err := h.documents.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"files": files})
}

// formFile returns the first multipart file present under the given
// field names. The legacy clients disagreed on the field name.
func formFile(c *gin.Context, names ...string) *multipart.FileHeader {
	for _, name := range names {
		if file, err := c.FormFile(name); err == nil {
			return file
		}
	}
	return nil
}

func formatUploadLimit(bytes int64) string {
	const mb = 1024 * 1024
	if bytes <= 0 {
		return "0MB"
	}
	value := bytes / mb
	if value <= 0 {
		value = 1
	}
	return strconv.FormatInt(value, 10) + "MB"
}
