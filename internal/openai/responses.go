package openai

import (
	"context"
	"fmt"
	"strings"
)

// Reply is the assistant output for one conversational turn, with any
// file citations surfaced by retrieval.
type Reply struct {
	Text       string
	References []string
}

type responsesRequest struct {
	Model   string          `json:"model"`
	Input   string          `json:"input"`
	Tools   []responsesTool `json:"tools,omitempty"`
	Include []string        `json:"include,omitempty"`
}

type responsesTool struct {
	Type           string   `json:"type"`
	VectorStoreIDs []string `json:"vector_store_ids,omitempty"`
	MaxNumResults  int      `json:"max_num_results,omitempty"`
}

type responsesResponse struct {
	OutputText string            `json:"output_text"`
	Output     []responsesOutput `json:"output"`
}

type responsesOutput struct {
	Type    string             `json:"type"`
	Content []responsesContent `json:"content"`
}

type responsesContent struct {
	Type        string                `json:"type"`
	Text        string                `json:"text"`
	Annotations []responsesAnnotation `json:"annotations"`
}

type responsesAnnotation struct {
	Type     string `json:"type"`
	FileID   string `json:"file_id"`
	Filename string `json:"filename"`
}

// Respond runs one turn through the responses API. When storeID is
// non-empty the model is given a file_search tool over that store and
// citation annotations are collected into References.
func (c *Client) Respond(ctx context.Context, model, input, storeID string, maxResults int) (*Reply, error) {
	req := responsesRequest{Model: model, Input: input}
	if storeID != "" {
		req.Tools = []responsesTool{{
			Type:           "file_search",
			VectorStoreIDs: []string{storeID},
			MaxNumResults:  maxResults,
		}}
		req.Include = []string{"file_search_call.results"}
	}
	var out responsesResponse
	if err := c.postJSON(ctx, "respond", "/responses", req, &out); err != nil {
		return nil, err
	}

	text := strings.TrimSpace(out.OutputText)
	refs := make([]string, 0, 4)
	seen := make(map[string]bool)
	for _, o := range out.Output {
		if o.Type != "message" {
			continue
		}
		for _, part := range o.Content {
			if text == "" && part.Type == "output_text" {
				text = strings.TrimSpace(part.Text)
			}
			for _, a := range part.Annotations {
				if a.Type != "file_citation" {
					continue
				}
				ref := a.Filename
				if ref == "" {
					ref = a.FileID
				}
				if ref == "" || seen[ref] {
					continue
				}
				seen[ref] = true
				refs = append(refs, ref)
			}
		}
	}
	if text == "" {
		return nil, fmt.Errorf("respond: response has no output text")
	}
	return &Reply{Text: text, References: refs}, nil
}
