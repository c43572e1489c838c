package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"github.com/pkg/errors"
	"io"
	"net/http"
	"net/url"
)

// ErrUnauthorized means the provider rejected the presented session token.
var ErrUnauthorized = errors.New("session token rejected")

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type tokenInfo struct {
	Email string `json:"email"`
	Sub   string `json:"sub"`
}

// Client checks session tokens against the external identity provider. The
// portal has no role model: a token either belongs to an authenticated
// administrator or it does not.
type Client struct {
	verifyURL  string
	httpClient HTTPClient
}

func NewClient(verifyURL string) *Client {
	return &Client{verifyURL: verifyURL, httpClient: &http.Client{}}
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

// Verify returns the authenticated subject for a valid token.
func (c *Client) Verify(ctx context.Context, token string) (string, error) {

	params := url.Values{}
	params.Add("access_token", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.verifyURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", ErrUnauthorized
	}

	var info tokenInfo
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&info); err != nil {
		return "", fmt.Errorf("error decoding JSON response: %v", err)
	}

	subject := info.Email
	if subject == "" {
		subject = info.Sub
	}
	if subject == "" {
		return "", ErrUnauthorized
	}

	return subject, nil
}
