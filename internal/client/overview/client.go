package overviewclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/barbatoslupus21/unisync-overview/internal/errs"
)

const (
	serviceName = "overview-api"
	apiPrefix   = "/overview/api"

	DefaultTimeout = 15 * time.Second

	csrfCookie = "csrftoken"
	csrfHeader = "X-CSRFToken"
)

type Config struct {
	BaseURL string
	// Token is a Firebase ID token sent as a bearer credential.
	Token   string
	Timeout time.Duration
	// HTTPClient is optional; its Jar is replaced when nil.
	HTTPClient *http.Client
}

// Client talks to the overview HTTP API. It keeps the csrftoken cookie the
// API issues on safe requests and echoes it on writes.
type Client struct {
	base    *url.URL
	token   string
	timeout time.Duration
	http    *http.Client

	primeMu sync.Mutex
}

func New(cfg Config) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("api url %q must be absolute", cfg.BaseURL)
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	if hc.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		hc.Jar = jar
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{base: base, token: cfg.Token, timeout: timeout, http: hc}, nil
}

// StatusError is a non-2xx answer from the API.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api responded %d", e.Code)
	}
	return fmt.Sprintf("api responded %d: %s", e.Code, e.Message)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (c *Client) endpoint(path string) string {
	u := *c.base
	u.Path = c.base.Path + apiPrefix + path
	return u.String()
}

func (c *Client) csrfToken() string {
	for _, ck := range c.http.Jar.Cookies(c.base) {
		if ck.Name == csrfCookie {
			return ck.Value
		}
	}
	return ""
}

// primeCSRF makes a safe request so the API issues the csrftoken cookie.
func (c *Client) primeCSRF(ctx context.Context) error {
	c.primeMu.Lock()
	defer c.primeMu.Unlock()
	if c.csrfToken() != "" {
		return nil
	}
	if err := c.do(ctx, http.MethodGet, "/roles/", nil, nil); err != nil {
		return err
	}
	if c.csrfToken() == "" {
		return errs.NewExternalServiceError(serviceName, false, fmt.Errorf("no %s cookie issued", csrfCookie))
	}
	return nil
}

// call runs one request bounded by the client timeout. Unsafe methods carry
// the CSRF header.
func (c *Client) call(ctx context.Context, method, path string, in, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if method != http.MethodGet {
		if err := c.primeCSRF(ctx); err != nil {
			return err
		}
	}
	return c.do(ctx, method, path, in, out)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if method != http.MethodGet {
		if tok := c.csrfToken(); tok != "" {
			req.Header.Set(csrfHeader, tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errs.NewExternalServiceError(serviceName, true, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return errs.NewExternalServiceError(serviceName, true, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errs.NewExternalServiceError(serviceName, resp.StatusCode >= 500, &StatusError{
			Code:    resp.StatusCode,
			Message: errorMessage(raw),
		})
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errs.NewExternalServiceError(serviceName, false, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// enveloped runs a GET against an endpoint that wraps its payload in
// {success, data}.
func (c *Client) enveloped(ctx context.Context, path string, out any) error {
	var env envelope
	if err := c.call(ctx, http.MethodGet, path, nil, &env); err != nil {
		return err
	}
	if !env.Success || len(env.Data) == 0 {
		return errs.NewExternalServiceError(serviceName, false, fmt.Errorf("unsuccessful response from %s", path))
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return errs.NewExternalServiceError(serviceName, false, fmt.Errorf("decode %s: %w", path, err))
	}
	return nil
}

func errorMessage(raw []byte) string {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return body.Message
	}
	msg := strings.TrimSpace(string(raw))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}
