// Package backend is the typed HTTP client for the external RAG backend.
// The backend owns the vector store, the moderation workflow and the LLM
// integration; this client only speaks its JSON API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/songminho/ragconsole/internal/domain"
)

// StatusError is a non-2xx backend response. Payload holds the decoded
// JSON body when the body was decodable, nil otherwise; callers normalize
// it with apierr at the point where a fallback message is known.
type StatusError struct {
	StatusCode int
	Payload    any
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// Client talks to the backend API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// New creates a backend client. baseURL must not have a trailing slash.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Collections fetches the capacity/usage snapshot.
func (c *Client) Collections(ctx context.Context) (domain.CollectionSnapshot, error) {
	var snap domain.CollectionSnapshot
	err := c.doJSON(ctx, http.MethodGet, "/collections", nil, nil, &snap)
	return snap, err
}

// UploadRequests fetches the moderation queue. Empty filter fields are
// left out of the query string.
func (c *Client) UploadRequests(ctx context.Context, filter domain.RequestFilter) (domain.UploadQueueSnapshot, error) {
	params := url.Values{}
	if filter.Status != "" {
		params.Set("status", filter.Status)
	}
	if strings.TrimSpace(filter.Reason) != "" {
		params.Set("reason", strings.TrimSpace(filter.Reason))
	}
	if strings.TrimSpace(filter.Search) != "" {
		params.Set("q", strings.TrimSpace(filter.Search))
	}

	var snap domain.UploadQueueSnapshot
	err := c.doJSON(ctx, http.MethodGet, "/upload-requests", params, nil, &snap)
	return snap, err
}

// ApproveUploadRequest approves a pending request with the admin code.
func (c *Client) ApproveUploadRequest(ctx context.Context, id, code string) error {
	path := "/upload-requests/" + url.PathEscape(id) + "/approve"
	return c.doJSON(ctx, http.MethodPost, path, nil, map[string]string{"code": code}, nil)
}

// RejectUploadRequest rejects a pending request with the admin code and a
// reason.
func (c *Client) RejectUploadRequest(ctx context.Context, id, code, reason string) error {
	path := "/upload-requests/" + url.PathEscape(id) + "/reject"
	body := map[string]string{"code": code, "reason": reason}
	return c.doJSON(ctx, http.MethodPost, path, nil, body, nil)
}

// CreateUploadRequest submits a new document for moderation.
func (c *Client) CreateUploadRequest(ctx context.Context, req domain.CreateUploadRequest) (domain.UploadReceipt, error) {
	var receipt domain.UploadReceipt
	err := c.doJSON(ctx, http.MethodPost, "/upload-requests", nil, req, &receipt)
	return receipt, err
}

// ListDocs lists the indexed documents.
func (c *Client) ListDocs(ctx context.Context) (domain.DocList, error) {
	var list domain.DocList
	err := c.doJSON(ctx, http.MethodGet, "/rag-docs", nil, nil, &list)
	return list, err
}

// GetDoc fetches the full Markdown content of one document.
func (c *Client) GetDoc(ctx context.Context, name string) (domain.DocContent, error) {
	var doc domain.DocContent
	err := c.doJSON(ctx, http.MethodGet, "/rag-docs/"+url.PathEscape(name), nil, nil, &doc)
	return doc, err
}

// Health probes backend liveness and the default collection state.
func (c *Client) Health(ctx context.Context) (domain.HealthStatus, error) {
	var health domain.HealthStatus
	err := c.doJSON(ctx, http.MethodGet, "/health", nil, nil, &health)
	return health, err
}

// Query asks a question against the selected collections.
func (c *Client) Query(ctx context.Context, req domain.QueryRequest) (domain.QueryResponse, error) {
	var resp domain.QueryResponse
	err := c.doJSON(ctx, http.MethodPost, "/query", nil, req, &resp)
	return resp, err
}

// Reindex rebuilds a collection's index. Empty collection lets the
// backend pick its default.
func (c *Client) Reindex(ctx context.Context, reset bool, collection string) (domain.ReindexResult, error) {
	req := domain.ReindexRequest{Reset: reset, Collection: collection}
	var result domain.ReindexResult
	err := c.doJSON(ctx, http.MethodPost, "/reindex", nil, req, &result)
	return result, err
}

func (c *Client) doJSON(ctx context.Context, method, path string, params url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.New().String())

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload any
		if err := json.Unmarshal(raw, &payload); err != nil {
			payload = nil
		}
		c.logger.Warn("backend call failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return &StatusError{StatusCode: resp.StatusCode, Payload: payload}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
