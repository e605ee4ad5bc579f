package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/vladcenuse/roster/pkg/characters"
)

const defaultTimeout = 8 * time.Second

// Client is an HTTP client for the character collection endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new API client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// ListCharacters fetches the full roster in server order.
func (c *Client) ListCharacters(ctx context.Context) ([]characters.Character, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/characters", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create list request: %v", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send list request: %v", err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, &ErrRequestFailed{Op: "fetch characters", Status: resp.Status}
	}

	var result []characters.Character
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode character list: %v", err)
	}

	return result, nil
}

// CreateCharacter submits a draft and returns the character with its
// server-assigned ID. The draft's placeholder ID is sent along and the
// server is expected to overwrite it.
func (c *Client) CreateCharacter(ctx context.Context, draft characters.Character) (*characters.Character, error) {
	resp, err := c.sendJSON(ctx, http.MethodPost, c.baseURL+"/characters", draft)
	if err != nil {
		return nil, fmt.Errorf("failed to send create request: %v", err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, &ErrRequestFailed{Op: "create character", Status: resp.Status}
	}

	created := &characters.Character{}
	if err := json.NewDecoder(resp.Body).Decode(created); err != nil {
		return nil, fmt.Errorf("failed to decode created character: %v", err)
	}

	return created, nil
}

// UpdateCharacter replaces the character with the matching ID and returns
// the server's view of it afterwards.
func (c *Client) UpdateCharacter(ctx context.Context, character characters.Character) (*characters.Character, error) {
	url := fmt.Sprintf("%s/characters/%d", c.baseURL, character.ID)
	resp, err := c.sendJSON(ctx, http.MethodPut, url, character)
	if err != nil {
		return nil, fmt.Errorf("failed to send update request: %v", err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, &ErrRequestFailed{Op: "update character", Status: resp.Status}
	}

	updated := &characters.Character{}
	if err := json.NewDecoder(resp.Body).Decode(updated); err != nil {
		return nil, fmt.Errorf("failed to decode updated character: %v", err)
	}

	return updated, nil
}

// DeleteCharacter removes the character with the given ID.
func (c *Client) DeleteCharacter(ctx context.Context, id int) error {
	url := fmt.Sprintf("%s/characters/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create delete request: %v", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send delete request: %v", err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return &ErrRequestFailed{Op: "delete character", Status: resp.Status}
	}

	return nil
}

func (c *Client) sendJSON(ctx context.Context, method, url string, body interface{}) (*http.Response, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}

func isSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
