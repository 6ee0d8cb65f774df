package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/BrunoKrugel/c2pafinder/internal/config"
	"github.com/BrunoKrugel/c2pafinder/internal/utils"
)

var (
	ErrBadStatus = errors.New("bad status")
	ErrEmptyBody = errors.New("empty body")
	ErrTooLarge  = errors.New("image too large")
)

// Client fetches complete image buffers for analysis
type Client struct {
	restyClient *resty.Client
	maxBytes    int64
}

func NewRestyClient(cfg *config.Config) *Client {

	restyClient := resty.New().
		SetTimeout(cfg.Fetch.Timeout).
		SetRetryCount(cfg.Fetch.Retries).
		SetRetryWaitTime(200*time.Millisecond).
		SetHeader("User-Agent", cfg.Fetch.UserAgent).
		SetHeader("Accept", "image/png,image/jpeg,image/*;q=0.8")

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 100,
		IdleConnTimeout:     90 * time.Second,
	}
	restyClient.SetTransport(transport)

	if cfg.Authorization.Token != "" {
		restyClient.SetHeader("Authorization", cfg.Authorization.Token)
	}

	cookieName, cookieValue := parseCookie(cfg.Authorization.Cookie)
	if cookieValue != "" {
		restyClient.SetCookie(&http.Cookie{
			Name:  cookieName,
			Value: cookieValue,
		})
	}

	return &Client{
		restyClient: restyClient,
		maxBytes:    cfg.Fetch.MaxBytes,
	}
}

// FetchImage downloads the full body at url. Bodies over the configured
// limit are rejected rather than truncated.
func (c *Client) FetchImage(ctx context.Context, url string) ([]byte, error) {
	if _, err := utils.ValidateImageURL(url); err != nil {
		return nil, err
	}

	resp, err := c.restyClient.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: %w: %s", url, ErrBadStatus, resp.Status())
	}

	limit := c.maxBytes
	if limit <= 0 {
		limit = 32 << 20
	}
	data, err := io.ReadAll(io.LimitReader(body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("fetch %s: %w: over %d bytes", url, ErrTooLarge, limit)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("fetch %s: %w", url, ErrEmptyBody)
	}
	return data, nil
}

func parseCookie(s string) (name, value string) {
	if s == "" {
		return "", ""
	}
	if strings.Contains(s, "=") {
		parts := strings.SplitN(s, "=", 2)
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	return "session", s
}
