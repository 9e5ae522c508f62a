// Package epdhttp implements the e-paper driver board's chunked HTTP upload
// protocol.
//
// The board exposes four plain-text POST endpoints. An upload selects the
// panel model (/EPD), streams the dark ink plane in chunks (/LOADA), streams
// the accent ink plane on color panels (/LOADB), and commits the loaded
// planes to the physical panel (/SHOW). The protocol carries no sequence
// numbers or offsets: ordering is implied purely by arrival order, so every
// request is awaited before the next one is sent and the first failure
// aborts the rest of the sequence.
package epdhttp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ChunkLimit is the maximum number of characters the controller accepts in
// a single load request.
const ChunkLimit = 30000

const (
	defaultTimeout      = 30 * time.Second
	maxResponseBodySize = 64 << 10
)

// Step identifies one request of the upload sequence.
type Step uint8

const (
	StepSelectModel Step = iota
	StepLoadDark
	StepLoadAccent
	StepShow
)

// String returns a string representation of the step.
func (s Step) String() string {
	switch s {
	case StepSelectModel:
		return "select-model"
	case StepLoadDark:
		return "load-dark"
	case StepLoadAccent:
		return "load-accent"
	case StepShow:
		return "show"
	default:
		return fmt.Sprintf("Step(%d)", uint8(s))
	}
}

// path returns the controller endpoint for the step.
func (s Step) path() string {
	switch s {
	case StepSelectModel:
		return "/EPD"
	case StepLoadDark:
		return "/LOADA"
	case StepLoadAccent:
		return "/LOADB"
	case StepShow:
		return "/SHOW"
	default:
		return ""
	}
}

// StatusError is returned when the controller answers a protocol step with a
// non-success HTTP status.
type StatusError struct {
	Step       Step
	StatusCode int
	// Body keeps the response body, if the controller sent one.
	Body string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s: controller returned status %d", e.Step, e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Client drives the upload sequence against a single driver board. The
// caller must not run more than one upload against the same board at a time;
// the board has no server-side concurrency control.
type Client struct {
	baseURL   string
	http      *http.Client
	timeout   time.Duration
	chunkSize int
}

// Option mutates the client during construction.
type Option func(*Client)

// WithHTTPClient installs a custom http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds each individual protocol request. It applies after all
// options, so it holds regardless of its order relative to WithHTTPClient.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithChunkSize overrides the load chunk size. Values above ChunkLimit are
// rejected by the controller; this is meant for tests.
func WithChunkSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.chunkSize = n
		}
	}
}

// NewClient creates a client for the driver board at the given address.
// A bare host or host:port is assumed to be plain HTTP.
func NewClient(address string, opts ...Option) *Client {
	if !strings.Contains(address, "://") {
		address = "http://" + address
	}
	c := &Client{
		baseURL:   strings.TrimRight(address, "/"),
		http:      &http.Client{Timeout: defaultTimeout},
		chunkSize: ChunkLimit,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		// Copy rather than mutate a client the caller may share.
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c
}

// Upload runs the full upload sequence for one frame. accent may be empty
// for monochrome renders, in which case the accent load step is skipped.
// The sequence is not resumable: on any error the caller must retry the
// whole upload.
func (c *Client) Upload(ctx context.Context, modelID, dark, accent string) error {
	if err := c.post(ctx, StepSelectModel, modelID); err != nil {
		return err
	}
	if err := c.load(ctx, StepLoadDark, dark); err != nil {
		return err
	}
	if accent != "" {
		if err := c.load(ctx, StepLoadAccent, accent); err != nil {
			return err
		}
	}
	return c.post(ctx, StepShow, modelID)
}

func (c *Client) load(ctx context.Context, step Step, frame string) error {
	for _, chunk := range Chunks(frame, c.chunkSize) {
		if err := c.post(ctx, step, chunk); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) post(ctx context.Context, step Step, body string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+step.path(), strings.NewReader(body))
	if err != nil {
		return errors.Wrapf(err, "%s: failed to build request", step)
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s: request failed", step)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{
			Step:       step,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	return nil
}

// Chunks splits a frame stream into successive slices of at most size
// characters. Concatenating the result reproduces the input.
func Chunks(s string, size int) []string {
	if s == "" {
		return nil
	}
	out := make([]string, 0, (len(s)+size-1)/size)
	for len(s) > size {
		out = append(out, s[:size])
		s = s[size:]
	}
	return append(out, s)
}

// NumChunks returns the number of load requests a stream of n characters
// needs at the controller's chunk limit.
func NumChunks(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + ChunkLimit - 1) / ChunkLimit
}
