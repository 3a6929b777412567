package infra

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Vovarama1992/reels-analyzer/internal/models"
)

const DefaultParseClass = "aRM_ReelsData"

const maxParseResponseBytes = 1 << 20

// ParseClient talks to the Parse Server REST API. It serves both as the
// thumbnail file store and as the record store.
type ParseClient struct {
	baseURL string
	appID   string
	apiKey  string
	class   string
	client  *http.Client
}

func NewParseClient(baseURL, appID, apiKey, class string, client *http.Client) *ParseClient {
	if class == "" {
		class = DefaultParseClass
	}
	return &ParseClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		appID:   appID,
		apiKey:  apiKey,
		class:   class,
		client:  client,
	}
}

type parseFilePayload struct {
	Base64      string `json:"base64"`
	ContentType string `json:"contentType"`
	Name        string `json:"name"`
}

func (p *ParseClient) UploadFile(ctx context.Context, name, contentType string, data []byte) (*models.FileRef, error) {
	payload := parseFilePayload{
		Base64:      base64.StdEncoding.EncodeToString(data),
		ContentType: contentType,
		Name:        name,
	}

	status, body, err := p.post(ctx, "/files/"+url.PathEscape(name), payload)
	if err != nil {
		return nil, err
	}
	if status != http.StatusCreated {
		return nil, fmt.Errorf("parse file upload http %d: %s", status, trim(body, 300))
	}

	var ref models.FileRef
	if err := json.Unmarshal([]byte(body), &ref); err != nil {
		return nil, fmt.Errorf("decode file response: %w", err)
	}
	if ref.Name == "" {
		return nil, fmt.Errorf("parse file upload returned no name")
	}
	return &ref, nil
}

// CreateRecord relays the remote status and body verbatim. Only transport
// failures are errors.
func (p *ParseClient) CreateRecord(ctx context.Context, record *models.StoredRecord) (int, string, error) {
	return p.post(ctx, "/classes/"+url.PathEscape(p.class), record)
}

func (p *ParseClient) post(ctx context.Context, path string, payload any) (int, string, error) {
	j, err := json.Marshal(payload)
	if err != nil {
		return 0, "", fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(j))
	if err != nil {
		return 0, "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-Parse-Application-Id", p.appID)
	req.Header.Set("X-Parse-REST-API-Key", p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, "", fmt.Errorf("parse request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxParseResponseBytes))
	if err != nil {
		return resp.StatusCode, "", fmt.Errorf("read parse response: %w", err)
	}
	return resp.StatusCode, string(body), nil
}
