package repogen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/yanqian/commit-canvas/internal/domain/chart"
	"github.com/yanqian/commit-canvas/internal/domain/contrib"
	apperrors "github.com/yanqian/commit-canvas/pkg/errors"
)

const (
	// DefaultBaseURL is where the repository generator listens in local setups.
	DefaultBaseURL = "http://127.0.0.1:8000"
	generatePath   = "/generate-repo"
	failMessage    = "Failed to generate repository"
	maxErrorBody   = 16 << 10
)

// Client asks the repository generator to build a git archive from a set of
// contribution events.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a generator client. The timeout should be generous since
// the remote side creates one commit per contribution.
func NewClient(baseURL string, timeout time.Duration) *Client {
	url := strings.TrimSpace(baseURL)
	if url == "" {
		url = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &Client{
		baseURL: strings.TrimRight(url, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Generate posts the repository request and returns the archive bytes.
func (c *Client) Generate(ctx context.Context, req contrib.RepoRequest) (chart.Archive, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return chart.Archive{}, fmt.Errorf("encode repo request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+generatePath, bytes.NewReader(body))
	if err != nil {
		return chart.Archive{}, fmt.Errorf("build generate request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return chart.Archive{}, apperrors.Wrap(apperrors.CodeArchive, failMessage, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		cause := fmt.Errorf("generate request error: status=%d body=%s", resp.StatusCode, string(payload))
		return chart.Archive{}, apperrors.Wrap(apperrors.CodeArchive, detailMessage(payload), cause)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return chart.Archive{}, apperrors.Wrap(apperrors.CodeArchive, failMessage, fmt.Errorf("read archive: %w", err))
	}

	contentType := resp.Header.Get("Content-Type")
	return chart.Archive{
		Filename:    archiveFilename(req.RepoName, contentType),
		ContentType: normalizeContentType(contentType),
		Data:        data,
	}, nil
}

type errorResponse struct {
	Detail json.RawMessage `json:"detail"`
}

// detailMessage extracts the generator's detail field. A string detail is
// returned as is; a list of validation entries is joined by "; ".
func detailMessage(payload []byte) string {
	var resp errorResponse
	if err := json.Unmarshal(payload, &resp); err != nil || len(resp.Detail) == 0 {
		return failMessage
	}

	var text string
	if err := json.Unmarshal(resp.Detail, &text); err == nil {
		if strings.TrimSpace(text) == "" {
			return failMessage
		}
		return text
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(resp.Detail, &entries); err != nil {
		return failMessage
	}
	parts := make([]string, 0, len(entries))
	for _, raw := range entries {
		var s string
		if json.Unmarshal(raw, &s) == nil {
			parts = append(parts, s)
			continue
		}
		var entry struct {
			Msg string `json:"msg"`
		}
		if json.Unmarshal(raw, &entry) == nil && entry.Msg != "" {
			parts = append(parts, entry.Msg)
		}
	}
	if len(parts) == 0 {
		return failMessage
	}
	return strings.Join(parts, "; ")
}

func archiveFilename(repoName, contentType string) string {
	ext := ".zip"
	switch normalizeContentType(contentType) {
	case "application/gzip", "application/x-gzip", "application/x-tar", "application/x-gtar":
		ext = ".tar.gz"
	}
	return repoName + ext
}

func normalizeContentType(raw string) string {
	mediaType, _, err := mime.ParseMediaType(raw)
	if err != nil || mediaType == "" || mediaType == "application/octet-stream" {
		return "application/zip"
	}
	return mediaType
}

var _ chart.ArchiveClient = (*Client)(nil)
