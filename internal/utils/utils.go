package utils

import (
	"net/url"
	"strings"
)

// MaskAPIKey masks the API key for display
func MaskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "****" + key[len(key)-4:]
}

// ValidateURL reports whether rawURL is an absolute http(s) URL with a host
func ValidateURL(rawURL string) bool {
	if rawURL == "" {
		return false
	}

	parsed, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return false
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}

	return parsed.Host != ""
}

// DisplayHost returns the host of rawURL, or rawURL itself when it has none
func DisplayHost(rawURL string) string {
	parsed, err := url.ParseRequestURI(rawURL)
	if err != nil || parsed.Host == "" {
		return strings.TrimSpace(rawURL)
	}
	return parsed.Host
}
