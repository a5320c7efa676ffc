package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/anthanhphan/go-fileshare/internal/server/domain"
)

// UploaderHeader mirrors the server's owner header.
const UploaderHeader = "X-Uploader-Id"

var ErrNotFound = errors.New("file not found")

// APIError is a non-2xx response from the file-sharing API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// CreateFileRequest is the upload payload.
type CreateFileRequest struct {
	FileName   string `json:"fileName"`
	FileSize   int64  `json:"fileSize"`
	MimeType   string `json:"mimeType"`
	Content    string `json:"content"`
	UploaderID string `json:"uploaderId"`
	UploadTime string `json:"uploadTime"`
}

// Client talks to the file-sharing HTTP API.
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default HTTP client. Downloads stream for as long
// as they take, so the client should not set an overall Timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("server url %q must be http or https", baseURL)
	}

	c := &Client{
		baseURL: u,
		http: &http.Client{
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				ResponseHeaderTimeout: 30 * time.Second,
				IdleConnTimeout:       90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ShareURL is the link a recipient opens to download fileID.
func (c *Client) ShareURL(fileID string) string {
	return c.baseURL.JoinPath("download", fileID).String()
}

func (c *Client) CreateFile(ctx context.Context, req CreateFileRequest) (*domain.FileRecord, error) {
	var rec domain.FileRecord
	if err := c.doJSON(ctx, http.MethodPost, c.filesPath(), nil, req, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *Client) GetFile(ctx context.Context, fileID string) (*domain.FileRecord, error) {
	var rec domain.FileRecord
	if err := c.doJSON(ctx, http.MethodGet, c.filesPath(fileID), nil, nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *Client) NotifyDownloaded(ctx context.Context, fileID string) error {
	var resp struct {
		Success bool `json:"success"`
	}
	if err := c.doJSON(ctx, http.MethodPost, c.filesPath(fileID, "downloaded"), nil, nil, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return errors.New("downloaded notification not acknowledged")
	}
	return nil
}

func (c *Client) GetFileMetrics(ctx context.Context, fileID, uploaderID string) (*domain.FileMetrics, error) {
	var m domain.FileMetrics
	headers := map[string]string{UploaderHeader: uploaderID}
	if err := c.doJSON(ctx, http.MethodGet, c.filesPath(fileID, "metrics"), headers, nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// OpenContent starts streaming the decoded file bytes. The caller must close
// the body; cancelling ctx aborts the transfer.
func (c *Client) OpenContent(ctx context.Context, fileID string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.filesPath(fileID, "content"), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, decodeAPIError(resp)
	}
	return resp.Body, nil
}

func (c *Client) filesPath(elem ...string) string {
	return c.baseURL.JoinPath(append([]string{"api", "files"}, elem...)...).String()
}

func (c *Client) doJSON(ctx context.Context, method, target string, headers map[string]string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeAPIError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var body struct {
		Message string `json:"message"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if json.Unmarshal(data, &body) == nil {
		apiErr.Message = body.Message
	}
	return apiErr
}
