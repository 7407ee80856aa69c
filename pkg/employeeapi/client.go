package employeeapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/samvad-hq/employee-directory/internal/domain"
	"github.com/samvad-hq/employee-directory/internal/logger"
	"github.com/samvad-hq/employee-directory/pkg/async"
	"github.com/samvad-hq/employee-directory/pkg/httpclient"
)

// EmployeesPath is the fixed resource serving the employee list.
const EmployeesPath = "v1/1a44a28a-7c86-4738-8a03-1eafeffe38c8"

const maxSnippetLen = 512

// Client exposes the remote employee directory.
type Client interface {
	GetEmployees(ctx context.Context) *async.Handle[domain.EmployeeResponse]
}

// Options configures an HTTPClient.
type Options struct {
	BaseURL   string
	UserAgent string
	Accept    string
}

// HTTPClient implements Client over an httpclient.Client.
type HTTPClient struct {
	http    httpclient.Client
	url     string
	headers map[string]string
	log     logger.Logger
}

// NewHTTPClient builds a client for the given base URL.
func NewHTTPClient(client httpclient.Client, opts Options, log logger.Logger) (*HTTPClient, error) {
	if client == nil {
		return nil, fmt.Errorf("http client must not be nil")
	}
	base := strings.TrimSpace(opts.BaseURL)
	if base == "" {
		return nil, fmt.Errorf("base url is empty")
	}
	if log == nil {
		log = logger.NopLogger{}
	}

	headers := make(map[string]string, 2)
	if v := strings.TrimSpace(opts.UserAgent); v != "" {
		headers["User-Agent"] = v
	}
	if v := strings.TrimSpace(opts.Accept); v != "" {
		headers["Accept"] = v
	}

	return &HTTPClient{
		http:    client,
		url:     joinURL(base, EmployeesPath),
		headers: headers,
		log:     log,
	}, nil
}

// URL returns the resolved endpoint.
func (c *HTTPClient) URL() string { return c.url }

// GetEmployees issues the request asynchronously.
func (c *HTTPClient) GetEmployees(ctx context.Context) *async.Handle[domain.EmployeeResponse] {
	return async.Go(ctx, c.fetch)
}

func (c *HTTPClient) fetch(ctx context.Context) (domain.EmployeeResponse, error) {
	start := time.Now()
	resp, err := c.http.Get(ctx, c.url, c.headers)
	if err != nil {
		return domain.EmployeeResponse{}, &ConnectivityError{Err: err}
	}

	c.log.DebugObj("employees request completed", "employees_request", map[string]any{
		"url":         c.url,
		"status_code": resp.StatusCode(),
		"elapsed_ms":  time.Since(start).Milliseconds(),
	})

	body := resp.Body()
	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return domain.EmployeeResponse{}, &ApplicationError{
			StatusCode: resp.StatusCode(),
			Status:     resp.Status(),
			Body:       responseSnippet(body),
		}
	}

	out, err := domain.DecodeEmployeeResponse(body)
	if err != nil {
		return domain.EmployeeResponse{}, &ParseError{Err: err, Snippet: responseSnippet(body)}
	}
	return out, nil
}

func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

func responseSnippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxSnippetLen {
		cut := maxSnippetLen
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		return s[:cut] + "..."
	}
	return s
}
