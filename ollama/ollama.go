package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/jsonapi"
)

const (
	DefaultURL     = "http://localhost:11434/api/generate"
	DefaultModel   = "phi"
	DefaultTimeout = 120 * time.Second
)

type Reason string

const (
	ReasonRequest Reason = "request"
	ReasonTimeout Reason = "timeout"
	ReasonStatus  Reason = "status"
	ReasonDecode  Reason = "decode"
)

// Error is returned by Generate for every failure to get a reply.
type Error struct {
	Reason Reason
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

type GenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type GenerateResponse struct {
	Response string `json:"response"`
}

func New(url, model string, timeout time.Duration) Client {
	return Client{
		url:     url,
		model:   model,
		timeout: timeout,
	}
}

type Client struct {
	url     string
	model   string
	timeout time.Duration
}

// Generate sends prompt to the model and waits for the complete reply.
func (c Client) Generate(ctx context.Context, prompt string) (reply string, err error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	buf, err := json.Marshal(GenerateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", &Error{Reason: ReasonRequest, Err: fmt.Errorf("failed to marshal request: %w", err)}
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(buf))
	if err != nil {
		return "", &Error{Reason: ReasonRequest, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	res, err := jsonapi.Raw(httpReq, jsonapi.WithRequestHeader("Content-Type", "application/json"))
	if err != nil {
		return "", &Error{Reason: failureReason(ctx, err), Err: err}
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		body, _ := io.ReadAll(res.Body)
		return "", &Error{Reason: ReasonStatus, Err: jsonapi.InvalidStatusError{
			Status: res.StatusCode,
			Body:   string(body),
		}}
	}

	var gr GenerateResponse
	if err = json.NewDecoder(res.Body).Decode(&gr); err != nil {
		return "", &Error{Reason: failureReason(ctx, err), Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return strings.TrimSpace(gr.Response), nil
}

func failureReason(ctx context.Context, err error) Reason {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return ReasonTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return ReasonTimeout
	}
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return ReasonDecode
	}
	return ReasonRequest
}
