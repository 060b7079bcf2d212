package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
)

// DefaultBaseURL is used when no API base is configured.
const DefaultBaseURL = "http://localhost:8000/api"

// CredentialSource supplies the current bearer credential. An empty
// string means unauthenticated.
type CredentialSource interface {
	Credential() string
}

// StaticCredential is a CredentialSource holding a fixed token. Useful
// in tests and for one-shot calls.
type StaticCredential string

func (s StaticCredential) Credential() string { return string(s) }

// Client executes requests against the EduSuite API. Every other
// component issues its calls through this one path: a single attempt,
// no retry, no timeout of its own.
type Client struct {
	baseURL  string
	http     *http.Client
	creds    CredentialSource
	recorder Recorder
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithCredentials attaches a credential source. Calls marked
// authenticated send its token when non-empty.
func WithCredentials(src CredentialSource) Option {
	return func(c *Client) { c.creds = src }
}

// WithRecorder records every executed request as an event.
func WithRecorder(r Recorder) Option {
	return func(c *Client) { c.recorder = r }
}

// New creates a Client for the given API base URL, e.g.
// "http://localhost:8000/api".
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured API base.
func (c *Client) BaseURL() string { return c.baseURL }

// SetCredentials replaces the credential source after construction.
func (c *Client) SetCredentials(src CredentialSource) { c.creds = src }

// call describes one request through the gateway.
type call struct {
	method      string
	path        string // e.g. "/quizzes/5/take/"
	query       url.Values
	body        io.Reader
	contentType string // empty when body is nil
	auth        bool   // attach the credential when one exists
	out         any    // decoded from a non-empty success body
}

// errDetail is the server's error envelope.
type errDetail struct {
	Detail string `json:"detail"`
}

// do executes one call. Single attempt; classification of the response
// is the only logic here.
func (c *Client) do(ctx context.Context, cl call) error {
	u := c.baseURL + cl.path
	if len(cl.query) > 0 {
		u += "?" + cl.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, u, cl.body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if cl.contentType != "" {
		req.Header.Set("Content-Type", cl.contentType)
	}
	if cl.auth && c.creds != nil {
		if tok := c.creds.Credential(); tok != "" {
			req.Header.Set("Authorization", "Token "+tok)
		}
	}

	resp, err := c.observe(req, cl)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ErrTransport{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return classifyError(resp.StatusCode, data)
	}

	if cl.out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, cl.out); err != nil {
		return &ErrMalformedResponse{Body: data, Err: err}
	}
	return nil
}

// classifyError maps a non-success status to a typed error carrying the
// server-declared detail, or the verbatim body when none is present.
func classifyError(status int, body []byte) error {
	var env errDetail
	detail := ""
	if json.Unmarshal(body, &env) == nil && env.Detail != "" {
		detail = env.Detail
	} else {
		detail = strings.TrimSpace(string(body))
	}

	switch status {
	case http.StatusBadRequest:
		return &ErrValidation{Detail: detail}
	case http.StatusUnauthorized, http.StatusForbidden:
		return &ErrUnauthorized{Detail: detail}
	case http.StatusNotFound:
		return &ErrNotFound{Detail: detail}
	default:
		return &APIError{StatusCode: status, Detail: detail}
	}
}

// getJSON issues a GET and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, auth bool, out any) error {
	return c.do(ctx, call{method: http.MethodGet, path: path, query: query, auth: auth, out: out})
}

// postJSON issues a POST with a JSON body and decodes the response into
// out (out may be nil).
func (c *Client) postJSON(ctx context.Context, path string, in any, auth bool, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode payload: %w", err)
		}
		body = bytes.NewReader(data)
	}
	return c.do(ctx, call{
		method:      http.MethodPost,
		path:        path,
		body:        body,
		contentType: "application/json",
		auth:        auth,
		out:         out,
	})
}

// delete issues a DELETE.
func (c *Client) delete(ctx context.Context, path string, auth bool) error {
	return c.do(ctx, call{method: http.MethodDelete, path: path, auth: auth})
}

// FilePayload is an opaque binary payload attached to a multipart call.
type FilePayload struct {
	Name   string
	Reader io.Reader
}

// postMultipart issues a POST carrying structured fields plus an
// optional binary payload in one request. The body passes through the
// gateway unchanged; only the multipart framing is added here.
func (c *Client) postMultipart(ctx context.Context, path string, fields map[string]string, file *FilePayload, auth bool, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("write field %q: %w", k, err)
		}
	}
	if file != nil {
		fw, err := w.CreateFormFile("file", file.Name)
		if err != nil {
			return fmt.Errorf("create form file: %w", err)
		}
		if _, err := io.Copy(fw, file.Reader); err != nil {
			return fmt.Errorf("copy file payload: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize multipart body: %w", err)
	}

	return c.do(ctx, call{
		method:      http.MethodPost,
		path:        path,
		body:        &buf,
		contentType: w.FormDataContentType(),
		auth:        auth,
		out:         out,
	})
}
