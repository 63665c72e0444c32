// Package practicum implements the client for the Practicum homework status API.
package practicum

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"homework_status_bot/internal/domain/homework"

	"github.com/sirupsen/logrus"
)

// Request errors. Messages never include the from_date value, so the same
// failure repeated on later polls produces the same text.
var (
	ErrTransport        = errors.New("homework API request failed")
	ErrUnexpectedStatus = errors.New("homework API returned unexpected status code")
)

// maxResponseSize caps how much of a response body is read.
const maxResponseSize = 1 << 20

// ClientConfig contains configuration for the homework API client.
type ClientConfig struct {
	// Endpoint is the full homework_statuses URL
	Endpoint string

	// Token is the OAuth token of the student
	Token string

	// Timeout is the HTTP request timeout
	Timeout time.Duration
}

// Client is the homework API client.
type Client struct {
	config     ClientConfig
	httpClient *http.Client
	logger     *logrus.Entry
}

// NewClient creates a new homework API client.
func NewClient(config ClientConfig, logger *logrus.Entry) *Client {
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger: logger,
	}
}

// FetchUpdates requests the homework statuses changed since the given unix time.
// The decoded body is returned as is; checking its shape is homework.Validate's job.
func (c *Client) FetchUpdates(ctx context.Context, since int64) (any, error) {
	params := url.Values{}
	params.Set("from_date", strconv.FormatInt(since, 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.Endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "OAuth "+c.config.Token)
	req.Header.Set("Accept", "application/json")

	c.logger.WithField("from_date", since).Debug("Sending request to homework API")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", ErrTransport, c.config.Endpoint, unwrapURLError(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrTransport, err)
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode body: %v", homework.ErrShape, err)
	}

	c.logger.WithField("status_code", resp.StatusCode).Debug("Homework API responded")
	return payload, nil
}

// unwrapURLError drops the *url.Error wrapper, whose text repeats the request
// URL including the changing from_date value.
func unwrapURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
