package rpc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"mongo-keeper/internal/config"
	"mongo-keeper/internal/logger"
)

/**
 * HTTP client configuration for talking to a running mongo-keeper daemon
 * @property {string} baseURL - Daemon base URL (derived from server.address)
 * @property {time.Duration} timeout - Per-request timeout
 */
type HTTPConfig struct {
	BaseURL string
	Timeout time.Duration
}

func DefaultHTTPConfig() *HTTPConfig {
	return &HTTPConfig{
		BaseURL: fmt.Sprintf("http://%s", config.Config.Server.Address),
		Timeout: 5 * time.Second,
	}
}

type HTTPResponse struct {
	StatusCode int
	Body       []byte
}

func (r *HTTPResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

type HTTPClient struct {
	config *HTTPConfig
	client *http.Client
}

func NewHTTPClient(cfg *HTTPConfig) *HTTPClient {
	if cfg == nil {
		cfg = DefaultHTTPConfig()
	}
	return &HTTPClient{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

/**
 * Send GET request to the daemon
 * @param {string} path - API endpoint path
 * @returns {(*HTTPResponse, error)} Returns status and body, or transport error
 */
func (c *HTTPClient) Get(path string) (*HTTPResponse, error) {
	logger.Debugf("Sending GET request to %s%s", c.config.BaseURL, path)
	rsp, err := c.client.Get(c.config.BaseURL + path)
	if err != nil {
		return nil, err
	}
	return readResponse(rsp)
}

/**
 * Send POST request with an optional JSON body to the daemon
 * @param {string} path - API endpoint path
 * @param {interface{}} body - Request payload, nil for an empty body
 * @returns {(*HTTPResponse, error)} Returns status and body, or transport error
 */
func (c *HTTPClient) Post(path string, body interface{}) (*HTTPResponse, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	logger.Debugf("Sending POST request to %s%s", c.config.BaseURL, path)
	rsp, err := c.client.Post(c.config.BaseURL+path, "application/json", reader)
	if err != nil {
		return nil, err
	}
	return readResponse(rsp)
}

func readResponse(rsp *http.Response) (*HTTPResponse, error) {
	defer rsp.Body.Close()
	data, err := io.ReadAll(rsp.Body)
	if err != nil {
		return nil, err
	}
	return &HTTPResponse{StatusCode: rsp.StatusCode, Body: data}, nil
}
