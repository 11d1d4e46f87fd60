package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Rabee-Omran/Auto-Photo-Saver-App/internal/netstate"
)

// HTTPClient makes REST calls to the netmon host.
type HTTPClient struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHTTPClient creates a client targeting the given base URL (e.g. "http://127.0.0.1:8787").
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// GetNetworkType fetches /api/network.
func (c *HTTPClient) GetNetworkType() (netstate.Category, error) {
	var out struct {
		NetworkType netstate.Category `json:"networkType"`
	}
	if err := c.get("/api/network", &out); err != nil {
		return netstate.Offline, err
	}
	return out.NetworkType, nil
}

// GetStatus fetches /api/network/status.
func (c *HTTPClient) GetStatus() (*Status, error) {
	var s Status
	if err := c.get("/api/network/status", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *HTTPClient) get(path string, out interface{}) error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	c.setAuth(req)
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("GET %s: %d %s", path, resp.StatusCode, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *HTTPClient) setAuth(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
