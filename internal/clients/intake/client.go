package intake

import (
	"bytes"
	"context"
	"fmt"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
	"io"
	"mime/multipart"
	"net/http"
)

// ErrSubmission covers both transport failures and remote rejections; the
// portal does not distinguish them and never retries.
var ErrSubmission = errors.New("application submission failed")

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client forwards application payloads to the external intake endpoint with
// exactly one POST per submission.
type Client struct {
	url         string
	httpClient  HTTPClient
	rateLimiter *rate.Limiter
}

func NewClient(url string) *Client {
	return &Client{url: url, httpClient: &http.Client{}}
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

func (c *Client) SetRateLimit(maxRequestsPerSecond float32) {
	c.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1)
}

func (c *Client) Send(ctx context.Context, payload Payload) error {

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return err
		}
	}

	body, contentType, err := encodeMultipart(payload)
	if err != nil {
		return fmt.Errorf("error encoding payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, body)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSubmission, err)
	}
	defer resp.Body.Close()

	return c.handleResponse(resp)
}

func (c *Client) handleResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: status %v", ErrSubmission, resp.StatusCode)
	}
	return fmt.Errorf("%w: status %v, body: %v", ErrSubmission, resp.StatusCode, string(body))
}

func encodeMultipart(payload Payload) (*bytes.Buffer, string, error) {

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for field, value := range payload.formFields() {
		if err := writer.WriteField(field, value); err != nil {
			return nil, "", err
		}
	}

	part, err := writer.CreateFormFile("CV", payload.CVFileName)
	if err != nil {
		return nil, "", err
	}
	if _, err = io.Copy(part, payload.CV); err != nil {
		return nil, "", err
	}

	if err = writer.Close(); err != nil {
		return nil, "", err
	}

	return body, writer.FormDataContentType(), nil
}
