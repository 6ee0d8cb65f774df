package utils

import (
	"errors"
	"net/url"
	"strings"
)

var ErrInvalidURL = errors.New("invalid image url")

// ValidateImageURL checks that raw is an absolute http(s) URL with a host
func ValidateImageURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrInvalidURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, errors.Join(ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, ErrInvalidURL
	}
	if u.Host == "" {
		return nil, ErrInvalidURL
	}
	return u, nil
}
