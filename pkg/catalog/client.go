package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Response is the outcome of a single catalog lookup: either a decoded
// JSON payload or a structured error. A non-2xx status or transport
// failure is represented here, never raised as a Go error. Callers store
// the Response per lookup key and move on.
type Response struct {
	Data any    // decoded payload on success
	Err  string // error description when the lookup failed
	Raw  string // raw body, kept when the service answered with an error status
}

// IsError reports whether the lookup failed.
func (r Response) IsError() bool {
	return r.Err != ""
}

// MarshalJSON renders a success as the payload itself and a failure as the
// {"error": ..., "response": ...} shape the response synthesizer embeds in
// its prompt.
func (r Response) MarshalJSON() ([]byte, error) {
	if r.Err == "" {
		return json.Marshal(r.Data)
	}
	out := map[string]string{"error": r.Err}
	if r.Raw != "" {
		out["response"] = r.Raw
	}
	return json.Marshal(out)
}

// Client is a keyed lookup service reachable by resource path.
type Client interface {
	Request(ctx context.Context, resourcePath, method string) Response
}

// HTTPClient implements Client against the live catalog API.
type HTTPClient struct {
	baseURL string
	client  *resty.Client
}

var _ Client = &HTTPClient{}

func NewHTTPClient(baseURL string) *HTTPClient {
	client := resty.New()
	client.SetTimeout(30 * time.Second)

	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// Request performs one lookup. The resource path is used as given: lookup
// keys are interpolated upstream without escaping, and a key the service
// cannot route simply comes back through the error shape.
func (c *HTTPClient) Request(ctx context.Context, resourcePath, method string) Response {
	url := c.baseURL + "/" + resourcePath

	var resp *resty.Response
	var err error

	switch strings.ToUpper(method) {
	case "GET":
		resp, err = c.client.R().SetContext(ctx).Get(url)
	case "DELETE":
		resp, err = c.client.R().SetContext(ctx).Delete(url)
	default:
		return Response{Err: fmt.Sprintf("unsupported HTTP method: %s", method)}
	}

	if err != nil {
		return Response{Err: fmt.Sprintf("an error occurred: %v", err)}
	}

	body := resp.String()
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return Response{
			Err: fmt.Sprintf("request failed with status code %d", resp.StatusCode()),
			Raw: body,
		}
	}

	return Response{Data: DecodeLenient(body)}
}
