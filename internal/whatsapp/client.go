package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// Client talks to the storefront GraphQL endpoint that exposes the WhatsApp
// store configuration.
type Client struct {
	HTTP *http.Client
}

// NewClient builds a client. A zero timeout means requests wait for as long
// as the caller's context allows.
func NewClient(timeout time.Duration) *Client {
	return &Client{HTTP: &http.Client{Timeout: timeout}}
}

// --- GraphQL Structures ---

type graphQLRequest struct {
	Query string `json:"query"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors json.RawMessage `json:"errors"`
}

// GraphQLError is returned when the endpoint answers with an "errors" member.
type GraphQLError struct {
	Raw string
}

func (e *GraphQLError) Error() string {
	return "graphql errors: " + e.Raw
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Body)
}

// --- Helper Functions ---

func (c *Client) sendRequest(ctx context.Context, method, url string, body any, headers map[string]string) ([]byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "encode request")
		}
		bodyReader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if req.Header.Get("Content-Type") == "" && body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	// the request never carries cookies: credentials are omitted
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, url)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return respBody, &StatusError{Status: resp.StatusCode, Body: string(respBody)}
	}

	return respBody, nil
}

// --- Query Methods ---

// Query posts a GraphQL document to endpoint and decodes the "data" member
// into out.
func (c *Client) Query(ctx context.Context, endpoint, document string, out any) error {
	if endpoint == "" {
		return errors.New("graphql endpoint is not configured")
	}

	raw, err := c.sendRequest(ctx, http.MethodPost, endpoint, graphQLRequest{Query: document}, map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	})
	if err != nil {
		return err
	}

	var result graphQLResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return errors.Wrap(err, "decode graphql response")
	}
	if len(result.Errors) > 0 && string(result.Errors) != "null" {
		return &GraphQLError{Raw: string(result.Errors)}
	}
	if len(result.Data) == 0 || string(result.Data) == "null" {
		return errors.New("graphql response has no data")
	}

	return errors.Wrap(json.Unmarshal(result.Data, out), "decode graphql data")
}
