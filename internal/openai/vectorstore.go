package openai

import (
	"context"
	"net/http"
)

// VectorStoreEntry is one file attached to a vector store. The entry
// lifecycle (in_progress/completed/failed) is owned by the provider.
type VectorStoreEntry struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type vectorStoreFileList struct {
	Data []VectorStoreEntry `json:"data"`
}

type attachFileRequest struct {
	FileID string `json:"file_id"`
}

// AttachFile indexes an already-uploaded file into the vector store.
func (c *Client) AttachFile(ctx context.Context, storeID, fileID string) (*VectorStoreEntry, error) {
	var out VectorStoreEntry
	err := c.postJSON(ctx, "attach file", "/vector_stores/"+storeID+"/files", attachFileRequest{FileID: fileID}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DetachFile removes the index entry only; the file resource survives.
func (c *Client) DetachFile(ctx context.Context, storeID, fileID string) error {
	return c.do(ctx, "detach file", http.MethodDelete, "/vector_stores/"+storeID+"/files/"+fileID, "", nil, nil)
}

// ListVectorFiles reflects current provider state, no caching.
func (c *Client) ListVectorFiles(ctx context.Context, storeID string) ([]VectorStoreEntry, error) {
	var out vectorStoreFileList
	if err := c.do(ctx, "list vector files", http.MethodGet, "/vector_stores/"+storeID+"/files", "", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}
