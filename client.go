package intervals

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"

	"github.com/menmos/intervals-go/config"
	"github.com/menmos/intervals-go/payload"
)

const userAgent = "intervals-go"

// Version is the client version sent in the User-Agent header.
const Version = "1.0.0"

const defaultMaxRetryCount = 4

const (
	intervalsPath = "/api/intervals"
	healthPath    = "/api/health"
)

// RequestError is returned when the service answers with a non-success status.
type RequestError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string

	// Detail is the service's description of the failure, if it sent one.
	Detail string
}

func (e *RequestError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s %s - unexpected status '%s': %s", e.Method, e.URL, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s %s - unexpected status '%s'", e.Method, e.URL, e.Status)
}

// Client provides an API to interact with an interval service.
type Client struct {
	httpClient    *http.Client
	host          string
	maxRetryCount uint64
	newBackOff    func() backoff.BackOff
}

// New returns a client for the service at host, e.g. "http://localhost:3000".
func New(host string) *Client {
	return &Client{
		httpClient:    &http.Client{},
		host:          strings.TrimSuffix(host, "/"),
		maxRetryCount: defaultMaxRetryCount,
		newBackOff: func() backoff.BackOff {
			return backoff.NewExponentialBackOff()
		},
	}
}

// NewFromProfile initializes a new client from its profile name.
func NewFromProfile(profileName string) (*Client, error) {
	profile, err := config.LoadProfileByName(profileName)
	if err != nil {
		return nil, err
	}

	client := New(profile.Host)
	if profile.MaxRetries != 0 {
		client.maxRetryCount = profile.MaxRetries
	}
	return client, nil
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	c.httpClient = httpClient
	return c
}

// WithMaxRetries sets how many times a call failing with a transport error or a
// 5xx status is retried.
func (c *Client) WithMaxRetries(n uint64) *Client {
	c.maxRetryCount = n
	return c
}

// low-level wrapper function to create a request to the service.
func (c *Client) makeRequest(ctx context.Context, method string, path string, data io.Reader) (*http.Request, error) {
	request, err := http.NewRequestWithContext(ctx, method, c.host+path, data)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s - failed to create request", method, path)
	}

	request.Header.Add("User-Agent", fmt.Sprintf("%s/%s", userAgent, Version))
	request.Header.Add("Accept", "application/json")

	return request, nil
}

// Wrapper function to create a request that sends a JSON payload.
func (c *Client) makeJSONRequest(ctx context.Context, method string, path string, body []byte) (*http.Request, error) {
	var dataReader io.Reader
	if body != nil {
		dataReader = bytes.NewReader(body)
	}

	req, err := c.makeRequest(ctx, method, path, dataReader)
	if err != nil {
		return nil, err
	}

	if body != nil {
		req.Header.Add("Content-Type", "application/json")
	}

	return req, nil
}

func (c *Client) doJSONRequestOnce(ctx context.Context, method string, path string, body []byte, response interface{}) error {
	req, err := c.makeJSONRequest(ctx, method, path, body)
	if err != nil {
		return backoff.Permanent(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Transport failures are retried unless the caller gave up.
		if ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}
		return errors.Wrapf(err, "%s %s - request failed", req.Method, req.URL)
	}
	defer resp.Body.Close()

	if !isStatusSuccess(resp.StatusCode) {
		reqErr := &RequestError{Method: req.Method, URL: req.URL.String(), StatusCode: resp.StatusCode, Status: resp.Status}

		var errResponse payload.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&errResponse) == nil {
			reqErr.Detail = errResponse.Detail()
		}

		if isRetryable(resp.StatusCode) {
			return reqErr
		}
		return backoff.Permanent(reqErr)
	}

	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(response); err != nil {
		return backoff.Permanent(errors.Wrapf(err, "%s %s - failed to deserialize response", req.Method, req.URL))
	}

	return nil
}

func (c *Client) doJSONRequest(ctx context.Context, method string, path string, data interface{}, response interface{}) error {
	var body []byte
	if data != nil {
		var err error
		body, err = json.Marshal(data)
		if err != nil {
			return errors.Wrapf(err, "%s %s - failed to serialize body", method, path)
		}
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), c.maxRetryCount), ctx)
	return backoff.Retry(func() error {
		return c.doJSONRequestOnce(ctx, method, path, body, response)
	}, policy)
}

// IsHealthy returns whether the interval service reports itself healthy.
func (c *Client) IsHealthy(ctx context.Context) (bool, error) {
	var response payload.HealthResponse

	if err := c.doJSONRequest(ctx, http.MethodGet, healthPath, nil, &response); err != nil {
		return false, errors.Wrap(err, "healthcheck failed")
	}

	return response.Status == "healthy", nil
}

// Process asks the service for the integers covered by the request's includes
// and not by its excludes. Rejected input is reported as a *RequestError with
// status 400 and the service's explanation in Detail.
func (c *Client) Process(ctx context.Context, request *payload.IntervalRequest) (*payload.IntervalResponse, error) {
	if request == nil {
		request = payload.NewIntervalRequest()
	}

	var response payload.IntervalResponse
	if err := c.doJSONRequest(ctx, http.MethodPost, intervalsPath, request, &response); err != nil {
		return nil, err
	}

	return &response, nil
}

// ProcessRanges is Process returning parsed intervals instead of strings.
func (c *Client) ProcessRanges(ctx context.Context, request *payload.IntervalRequest) ([]Range, error) {
	response, err := c.Process(ctx, request)
	if err != nil {
		return nil, err
	}
	return ParseRanges(response.Result)
}
