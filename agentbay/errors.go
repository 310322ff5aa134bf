package agentbay

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"connectrpc.com/connect"

	"github.com/yuebing-yb/wuying-agentbay-sdk-sub000/agentbay/apis"
)

// ErrInvalidParameter 表示本地参数校验失败，调用方可使用 errors.Is 判断。
var ErrInvalidParameter = errors.New("invalid parameter")

// invalidParameter 返回包装了 ErrInvalidParameter 的错误。
func invalidParameter(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}

// APIError 表示 API 返回的非预期 HTTP 响应或 Success=false 的响应信封。
type APIError struct {
	StatusCode int
	RequestID  string
	Body       []byte

	// Code 是服务端返回的错误码（如果有）。
	Code string
	// Message 是服务端返回的错误消息（如果有）。
	Message string
}

// Error 实现 error 接口。
func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" && e.Code == "" {
		msg = string(e.Body)
	}
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.RequestID != "" {
		return fmt.Sprintf("api error: status %d, request id %s: %s", e.StatusCode, e.RequestID, msg)
	}
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, msg)
}

// newAPIError 创建 APIError 并尝试从 JSON body 中解析响应信封字段。
func newAPIError(statusCode int, body []byte) *APIError {
	e := &APIError{StatusCode: statusCode, Body: body}
	var envelope apis.Envelope[json.RawMessage]
	if len(body) > 0 && json.Unmarshal(body, &envelope) == nil {
		e.RequestID = envelope.RequestID
		e.Code = envelope.Code
		e.Message = envelope.Message
	}
	return e
}

// envelopeOf 返回成功响应的信封，否则返回 *APIError。
func envelopeOf[T any](resp *apis.Response[T]) (*apis.Envelope[T], error) {
	if resp.JSON200 == nil {
		return nil, newAPIError(resp.StatusCode(), resp.Body)
	}
	if !resp.JSON200.Succeeded() {
		statusCode := resp.StatusCode()
		if resp.JSON200.HTTPStatusCode != 0 {
			statusCode = int(resp.JSON200.HTTPStatusCode)
		}
		return nil, &APIError{
			StatusCode: statusCode,
			RequestID:  resp.JSON200.RequestID,
			Body:       resp.Body,
			Code:       resp.JSON200.Code,
			Message:    resp.JSON200.Message,
		}
	}
	return resp.JSON200, nil
}

// ToolError 表示 MCP 工具调用返回了 isError=true。
type ToolError struct {
	Tool      string
	RequestID string
	Message   string
}

// Error 实现 error 接口。
func (e *ToolError) Error() string {
	return fmt.Sprintf("tool %s failed (request id %s): %s", e.Tool, e.RequestID, e.Message)
}

// IsNotFound 判断错误是否为"未找到"类型。
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound ||
			apiErr.Code == "InvalidMcpSession.NotFound" ||
			apiErr.Code == "InvalidContext.NotFound"
	}
	return connect.CodeOf(err) == connect.CodeNotFound
}
