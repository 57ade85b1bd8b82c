package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	neturl "net/url"
	"strings"

	"golang.org/x/net/html/charset"
)

// DefaultMaxChars is the number of characters of a document that are kept.
const DefaultMaxChars = 8000

type Reason string

const (
	ReasonRequest Reason = "request"
	ReasonStatus  Reason = "status"
	ReasonDecode  Reason = "decode"
)

// Error is returned by Fetch for every failure.
type Error struct {
	Reason Reason
	URL    string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	// Errors from the HTTP client already name the URL.
	var ue *neturl.Error
	if errors.As(e.Err, &ue) {
		return e.Err.Error()
	}
	return fmt.Sprintf("failed to fetch %q: %v", e.URL, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

type StatusError struct {
	StatusCode int
	Status     string
}

func (e StatusError) Error() string {
	return fmt.Sprintf("unexpected status %s", e.Status)
}

func New(client *http.Client, maxChars int) *Fetcher {
	if client == nil {
		client = &http.Client{}
	}
	return &Fetcher{
		client:   client,
		maxChars: maxChars,
	}
}

type Fetcher struct {
	client   *http.Client
	maxChars int
}

// Fetch downloads url and returns its body as UTF-8 text, truncated to the
// first maxChars characters.
func (f *Fetcher) Fetch(ctx context.Context, url string) (text string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &Error{Reason: ReasonRequest, URL: url, Err: err}
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", &Error{Reason: ReasonRequest, URL: url, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &Error{Reason: ReasonStatus, URL: url, Err: StatusError{StatusCode: resp.StatusCode, Status: resp.Status}}
	}

	r, err := utf8Reader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", &Error{Reason: ReasonDecode, URL: url, Err: err}
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return "", &Error{Reason: ReasonDecode, URL: url, Err: err}
	}
	return Truncate(strings.ToValidUTF8(string(body), "\uFFFD"), f.maxChars), nil
}

// utf8Reader converts body to UTF-8 when the Content-Type declares a charset.
// Bodies without a declared charset are assumed to be UTF-8 already.
func utf8Reader(body io.Reader, contentType string) (io.Reader, error) {
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil || params["charset"] == "" {
		return body, nil
	}
	return charset.NewReaderLabel(params["charset"], body)
}

// Truncate returns the first n characters of s. A negative n disables
// truncation.
func Truncate(s string, n int) string {
	if n < 0 {
		return s
	}
	var count int
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
