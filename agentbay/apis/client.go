// Package apis provides primitives to interact with the AgentBay RPC API.
//
// Every operation is an RPC-style call: POST {server}/?Action=<name>&Version=<ver>
// with a form-encoded body. Responses share a common JSON envelope, see [Envelope].
package apis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/oapi-codegen/runtime"
)

// APIVersion 是请求时携带的 API 版本号。
const APIVersion = "2025-05-06"

// HttpRequestDoer performs HTTP requests.
//
// The standard http.Client implements this interface.
type HttpRequestDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RequestEditorFn is the function signature for the RequestEditor callback function
type RequestEditorFn func(ctx context.Context, req *http.Request) error

// ClientOption allows setting custom parameters during construction
type ClientOption func(*Client) error

// Client which conforms to the OpenAPI3 specification for this service.
type Client struct {
	// The endpoint of the server conforming to this interface, with scheme,
	// https://api.deepmap.com for example. This can contain a path relative
	// to the server, such as https://api.deepmap.com/dev-test, and all the
	// paths in the swagger spec will be appended to the server.
	Server string

	// Doer for performing requests, typically a *http.Client with any
	// customized settings, such as certificate chains.
	Client HttpRequestDoer

	// A list of callbacks for modifying requests which are generated before sending over
	// the network.
	RequestEditors []RequestEditorFn
}

// NewClient creates a new Client, with reasonable defaults
func NewClient(server string, opts ...ClientOption) (*Client, error) {
	client := Client{
		Server: server,
	}
	for _, o := range opts {
		if err := o(&client); err != nil {
			return nil, err
		}
	}
	if !strings.HasSuffix(client.Server, "/") {
		client.Server += "/"
	}
	if client.Client == nil {
		client.Client = &http.Client{}
	}
	return &client, nil
}

// WithHTTPClient allows overriding the default Doer, which is
// automatically created using http.Client. This is useful for tests.
func WithHTTPClient(doer HttpRequestDoer) ClientOption {
	return func(c *Client) error {
		c.Client = doer
		return nil
	}
}

// WithRequestEditorFn allows setting up a callback function, which will be
// called right before sending the request. This can be used to mutate the request.
func WithRequestEditorFn(fn RequestEditorFn) ClientOption {
	return func(c *Client) error {
		c.RequestEditors = append(c.RequestEditors, fn)
		return nil
	}
}

func (c *Client) applyEditors(ctx context.Context, req *http.Request, additionalEditors []RequestEditorFn) error {
	for _, r := range c.RequestEditors {
		if err := r(ctx, req); err != nil {
			return err
		}
	}
	for _, r := range additionalEditors {
		if err := r(ctx, req); err != nil {
			return err
		}
	}
	return nil
}

// ClientWithResponses builds on Client to offer response payloads
type ClientWithResponses struct {
	*Client
}

// NewClientWithResponses creates a new ClientWithResponses, which wraps
// Client with return type handling
func NewClientWithResponses(server string, opts ...ClientOption) (*ClientWithResponses, error) {
	client, err := NewClient(server, opts...)
	if err != nil {
		return nil, err
	}
	return &ClientWithResponses{client}, nil
}

// Envelope 是所有 API 响应共享的外层结构。
type Envelope[T any] struct {
	RequestID      string  `json:"RequestId"`
	Success        *bool   `json:"Success,omitempty"`
	Code           string  `json:"Code,omitempty"`
	Message        string  `json:"Message,omitempty"`
	HTTPStatusCode int32   `json:"HttpStatusCode,omitempty"`
	Data           T       `json:"Data"`
	NextToken      *string `json:"NextToken,omitempty"`
	MaxResults     *int32  `json:"MaxResults,omitempty"`
	TotalCount     *int32  `json:"TotalCount,omitempty"`
	Count          *int32  `json:"Count,omitempty"`
}

// Succeeded 报告信封是否表示业务成功。缺省的 Success 字段视为成功。
func (e *Envelope[T]) Succeeded() bool {
	return e.Success == nil || *e.Success
}

// Response 是带解析结果的 API 响应。
// JSON200 仅在 HTTP 200 且 body 可被解析时非空。
type Response[T any] struct {
	Body         []byte
	HTTPResponse *http.Response
	JSON200      *Envelope[T]
}

// Status returns HTTPResponse.Status
func (r Response[T]) Status() string {
	if r.HTTPResponse != nil {
		return r.HTTPResponse.Status
	}
	return http.StatusText(0)
}

// StatusCode returns HTTPResponse.StatusCode
func (r Response[T]) StatusCode() int {
	if r.HTTPResponse != nil {
		return r.HTTPResponse.StatusCode
	}
	return 0
}

// NewRPCRequest generates a POST request for the given action with a
// form-encoded body built from params.
func NewRPCRequest(server, action string, params url.Values) (*http.Request, error) {
	serverURL, err := url.Parse(server)
	if err != nil {
		return nil, err
	}

	queryValues := serverURL.Query()
	for _, kv := range []struct{ k, v string }{{"Action", action}, {"Version", APIVersion}} {
		queryFrag, err := runtime.StyleParamWithLocation("form", true, kv.k, runtime.ParamLocationQuery, kv.v)
		if err != nil {
			return nil, err
		}
		parsed, err := url.ParseQuery(queryFrag)
		if err != nil {
			return nil, err
		}
		for k, v := range parsed {
			for _, v2 := range v {
				queryValues.Add(k, v2)
			}
		}
	}
	serverURL.RawQuery = queryValues.Encode()

	var body io.Reader
	if len(params) > 0 {
		body = strings.NewReader(params.Encode())
	}
	req, err := http.NewRequest(http.MethodPost, serverURL.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Add("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Add("Accept", "application/json")
	return req, nil
}

// addFormParam styles value as a form parameter and merges it into values.
// Nil pointers are skipped.
func addFormParam(values url.Values, name string, value interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case *string:
		if v == nil {
			return nil
		}
		value = *v
	case *int32:
		if v == nil {
			return nil
		}
		value = *v
	case *bool:
		if v == nil {
			return nil
		}
		value = *v
	}
	frag, err := runtime.StyleParamWithLocation("form", true, name, runtime.ParamLocationQuery, value)
	if err != nil {
		return fmt.Errorf("encode parameter %s: %w", name, err)
	}
	parsed, err := url.ParseQuery(frag)
	if err != nil {
		return err
	}
	for k, vs := range parsed {
		for _, v2 := range vs {
			values.Add(k, v2)
		}
	}
	return nil
}

// addJSONParam JSON-encodes value and stores it as a single form parameter.
func addJSONParam(values url.Values, name string, value interface{}) error {
	if value == nil {
		return nil
	}
	buf, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode parameter %s: %w", name, err)
	}
	values.Set(name, string(buf))
	return nil
}

func (c *Client) do(ctx context.Context, action string, params url.Values, reqEditors []RequestEditorFn) (*http.Response, error) {
	req, err := NewRPCRequest(c.Server, action, params)
	if err != nil {
		return nil, err
	}
	req = req.WithContext(ctx)
	if err := c.applyEditors(ctx, req, reqEditors); err != nil {
		return nil, err
	}
	return c.Client.Do(req)
}

// parseResponse reads rsp and decodes the envelope when the status is 200.
func parseResponse[T any](rsp *http.Response) (*Response[T], error) {
	bodyBytes, err := io.ReadAll(rsp.Body)
	defer func() { _ = rsp.Body.Close() }()
	if err != nil {
		return nil, err
	}

	response := &Response[T]{
		Body:         bodyBytes,
		HTTPResponse: rsp,
	}

	if strings.Contains(rsp.Header.Get("Content-Type"), "json") && rsp.StatusCode == 200 {
		var dest Envelope[T]
		if err := json.Unmarshal(bytes.TrimSpace(bodyBytes), &dest); err != nil {
			return nil, err
		}
		response.JSON200 = &dest
	}
	return response, nil
}
