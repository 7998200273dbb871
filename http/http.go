// Package http wraps the standard HTTP client with the defaults shared by
// every service package in this module: a request timeout, non-200 statuses
// turned into errors, and optional gzip negotiation.
package http

import (
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const timeout = 120 * time.Second

func readBody(res *http.Response) ([]byte, error) {
	defer res.Body.Close()

	var reader io.Reader = res.Body
	if res.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(res.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip reader: %v", err)
		}
		defer gz.Close()
		reader = gz
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	if res.StatusCode != 200 {
		return body, fmt.Errorf("HTTP status code %d", res.StatusCode)
	}

	return body, nil
}

// Get performs a GET request and returns the response body.
func Get(rawURL string) ([]byte, error) {
	return get(rawURL, false)
}

// GetGzip performs a GET request advertising gzip encoding, decompressing
// the body if the server honored it. Some EBI endpoints (QuickGO) serve
// large annotation pages and compress only when asked.
func GetGzip(rawURL string) ([]byte, error) {
	return get(rawURL, true)
}

func get(rawURL string, acceptGzip bool) ([]byte, error) {
	client := http.Client{Timeout: timeout}

	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	if acceptGzip {
		// Setting the header manually disables the transport's transparent
		// decompression, so readBody handles the Content-Encoding itself.
		req.Header.Set("Accept-Encoding", "gzip")
	}

	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	return readBody(res)
}

// PostForm performs a POST of an URL-encoded form and returns the response
// body. The rawBody suffix, if not empty, is appended verbatim after the
// encoded values; services that expect repeated occurrences of the same key
// (the Job Dispatcher's database parameter) need this escape hatch.
func PostForm(rawURL string, values url.Values, rawBody string) ([]byte, error) {
	client := http.Client{Timeout: timeout}

	body := values.Encode() + rawBody

	req, err := http.NewRequest(http.MethodPost, rawURL, strings.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	return readBody(res)
}
