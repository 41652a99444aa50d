package openai

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// File is a provider file resource, referenced everywhere by its id.
type File struct {
	ID        string `json:"id"`
	Filename  string `json:"filename"`
	Bytes     int64  `json:"bytes"`
	CreatedAt int64  `json:"created_at"`
}

// UploadFile stores a document with the provider, tagged for assistant
// retrieval. It does not attach the file to any vector store.
func (c *Client) UploadFile(ctx context.Context, filename string, r io.Reader) (*File, error) {
	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)
	go func() {
		err := writeUploadForm(form, filename, r)
		pw.CloseWithError(err)
	}()

	var out File
	if err := c.do(ctx, "upload file", http.MethodPost, "/files", form.FormDataContentType(), pr, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, fmt.Errorf("upload file: response has no id")
	}
	return &out, nil
}

func writeUploadForm(form *multipart.Writer, filename string, r io.Reader) error {
	if err := form.WriteField("purpose", "assistants"); err != nil {
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

func (c *Client) GetFile(ctx context.Context, fileID string) (*File, error) {
	var out File
	if err := c.do(ctx, "get file", http.MethodGet, "/files/"+fileID, "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteFile removes the underlying file resource.
func (c *Client) DeleteFile(ctx context.Context, fileID string) error {
	return c.do(ctx, "delete file", http.MethodDelete, "/files/"+fileID, "", nil, nil)
}
