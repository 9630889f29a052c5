// Package fetch loads report pages from local files or HTTP(S) URLs.
package fetch

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html/charset"
)

// DefaultTimeout bounds a single report download.
const DefaultTimeout = 30 * time.Second

// FetchError reports a failure retrieving the input, local or remote.
// Distinct from tempest.ParseError so callers can tell "could not get the
// page" from "got the page but it isn't a report".
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Options control how remote sources are retrieved.
type Options struct {
	Timeout time.Duration
	// Insecure skips TLS verification. Tempest result pages often live on
	// lab hosts with self-signed certificates.
	Insecure bool
}

// IsURL reports whether source should be fetched over HTTP rather than
// read from disk.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Load retrieves the report page named by source: an HTTP(S) GET for URLs,
// a file read otherwise. Remote bodies are decoded to UTF-8 using the
// response headers and in-document charset declarations. Every failure is
// a *FetchError.
func Load(ctx context.Context, source string, opts Options) ([]byte, error) {
	if IsURL(source) {
		return loadURL(ctx, source, opts)
	}
	return loadFile(source)
}

func loadFile(path string) ([]byte, error) {
	logrus.WithField("path", path).Debug("reading local report")
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &FetchError{Source: path, Err: err}
	}
	// Saved pages carry no Content-Type; NewReader prescans the in-document
	// <meta> charset declaration.
	body, err := charset.NewReader(bytes.NewReader(raw), "")
	if err != nil {
		return nil, &FetchError{Source: path, Err: fmt.Errorf("determine charset: %w", err)}
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, &FetchError{Source: path, Err: err}
	}
	return data, nil
}

func loadURL(ctx context.Context, url string, opts Options) ([]byte, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"url":      url,
		"insecure": opts.Insecure,
	}).Debug("downloading report")

	client := &http.Client{}
	if opts.Insecure {
		client.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // opt-in via --insecure
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{Source: url, Err: err}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{Source: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Source: url, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	// Old subunit2html pages are not always UTF-8; honor the declared charset.
	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, &FetchError{Source: url, Err: fmt.Errorf("determine charset: %w", err)}
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, &FetchError{Source: url, Err: err}
	}
	logrus.WithField("bytes", len(data)).Debug("download complete")
	return data, nil
}
