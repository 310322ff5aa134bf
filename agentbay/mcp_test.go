package agentbay

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuebing-yb/wuying-agentbay-sdk-sub000/agentbay/apis"
)

const testToolList = `[{"name":"shell","description":"run shell","server":"wuying_shell","tool":"shell"},{"name":"read_file","server":"wuying_filesystem","tool":"read_file"}]`

func TestEncodeToolArgs(t *testing.T) {
	encoded, err := encodeToolArgs(map[string]interface{}{
		"command":    "ls",
		"timeout_ms": int64(1000),
		"paths":      []string{"/a", "/b"},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"command":"ls","timeout_ms":1000,"paths":["/a","/b"]}`, encoded)

	encoded, err = encodeToolArgs(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", encoded)

	encoded, err = encodeToolArgs(struct {
		Path string `json:"path"`
	}{Path: "/tmp"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"path":"/tmp"}`, encoded)

	_, err = encodeToolArgs([]string{"not", "an", "object"})
	assert.True(t, errors.Is(err, ErrInvalidParameter))
}

func TestUnquoteJSON(t *testing.T) {
	assert.Equal(t, `[1,2]`, string(unquoteJSON([]byte(`"[1,2]"`))))
	assert.Equal(t, `{"a":1}`, string(unquoteJSON([]byte(` {"a":1} `))))
	assert.Nil(t, unquoteJSON([]byte("null")))
}

func TestCallMcpTool(t *testing.T) {
	var got *apis.CallMcpToolRequest
	mock := &mockAPI{
		callMcpToolFn: func(ctx context.Context, body *apis.CallMcpToolRequest) (*apis.CallMcpToolResponse, error) {
			got = body
			return okResponse("req-1", toolData("hello", false)), nil
		},
	}
	result, err := newTestSession(mock).CallMcpTool(context.Background(), "shell", map[string]interface{}{"command": "echo hello"})
	require.NoError(t, err)
	assert.Equal(t, "req-1", result.RequestID)
	assert.Equal(t, "hello", result.Data)
	assert.Equal(t, "s-1", got.SessionID)
	assert.Equal(t, "shell", got.Name)
	assert.JSONEq(t, `{"command":"echo hello"}`, got.Args)
	assert.NotEmpty(t, result.Raw)
}

func TestCallMcpToolStringData(t *testing.T) {
	mock := &mockAPI{
		callMcpToolFn: func(ctx context.Context, body *apis.CallMcpToolRequest) (*apis.CallMcpToolResponse, error) {
			quoted, _ := json.Marshal(string(toolData("line1", false)))
			return okResponse[json.RawMessage]("req-1", quoted), nil
		},
	}
	result, err := newTestSession(mock).CallMcpTool(context.Background(), "shell", nil)
	require.NoError(t, err)
	assert.Equal(t, "line1", result.Data)
}

func TestCallMcpToolError(t *testing.T) {
	mock := &mockAPI{
		callMcpToolFn: func(ctx context.Context, body *apis.CallMcpToolRequest) (*apis.CallMcpToolResponse, error) {
			return okResponse("req-err", toolData("permission denied", true)), nil
		},
	}
	_, err := newTestSession(mock).CallMcpTool(context.Background(), "read_file", map[string]string{"path": "/root"})
	var toolErr *ToolError
	require.True(t, errors.As(err, &toolErr), "expected *ToolError, got %v", err)
	assert.Equal(t, "read_file", toolErr.Tool)
	assert.Equal(t, "req-err", toolErr.RequestID)
	assert.Equal(t, "permission denied", toolErr.Message)
}

func TestCallMcpToolAPIError(t *testing.T) {
	mock := &mockAPI{
		callMcpToolFn: func(ctx context.Context, body *apis.CallMcpToolRequest) (*apis.CallMcpToolResponse, error) {
			return failedResponse[json.RawMessage]("req-1", "InvalidMcpSession.NotFound", "session released"), nil
		},
	}
	_, err := newTestSession(mock).CallMcpTool(context.Background(), "shell", nil)
	assert.True(t, IsNotFound(err))

	_, err = newTestSession(mock).CallMcpTool(context.Background(), "", nil)
	assert.True(t, errors.Is(err, ErrInvalidParameter))
}

func TestListMcpToolsCached(t *testing.T) {
	var calls int32
	mock := &mockAPI{
		listMcpToolsFn: func(ctx context.Context, body *apis.ListMcpToolsRequest) (*apis.ListMcpToolsResponse, error) {
			atomic.AddInt32(&calls, 1)
			assert.Equal(t, DefaultImageID, body.ImageID)
			return okResponse("req-tools", testToolList), nil
		},
	}
	c := newTestClient(mock)

	first, err := c.NewSession("s-1").ListMcpTools(context.Background())
	require.NoError(t, err)
	require.Len(t, first.Tools, 2)
	assert.Equal(t, "wuying_shell", first.Tools[0].Server)
	assert.Equal(t, "req-tools", first.RequestID)

	second, err := c.NewSession("s-2").ListMcpTools(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.Tools, second.Tools)
	assert.Equal(t, "req-tools", second.RequestID)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestListMcpToolsSharedFetchIgnoresCallerCancel(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var calls int32
	mock := &mockAPI{
		listMcpToolsFn: func(ctx context.Context, body *apis.ListMcpToolsRequest) (*apis.ListMcpToolsResponse, error) {
			atomic.AddInt32(&calls, 1)
			close(started)
			<-release
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return okResponse("req-tools", testToolList), nil
		},
	}
	c := newTestClient(mock)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, errs[0] = c.NewSession("s-1").ListMcpTools(ctx)
	}()
	<-started
	cancel()
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, errs[1] = c.NewSession("s-2").ListMcpTools(context.Background())
	}()
	close(release)
	wg.Wait()

	assert.NoError(t, errs[0])
	assert.NoError(t, errs[1])
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestFindServer(t *testing.T) {
	mock := &mockAPI{
		listMcpToolsFn: func(ctx context.Context, body *apis.ListMcpToolsRequest) (*apis.ListMcpToolsResponse, error) {
			return okResponse("req-tools", testToolList), nil
		},
	}
	s := newTestSession(mock)
	server, err := s.findServer(context.Background(), "read_file")
	require.NoError(t, err)
	assert.Equal(t, "wuying_filesystem", server)

	_, err = s.findServer(context.Background(), "missing_tool")
	assert.True(t, errors.Is(err, ErrInvalidParameter))
}

// newVpcSession 启动一个 ConnectRPC 工具服务，并返回直连它的 VPC 会话。
func newVpcSession(t *testing.T, handle func(*vpcCallRequest) (*vpcCallResponse, error)) *Session {
	t.Helper()
	handler := connect.NewUnaryHandler(vpcCallToolProcedure,
		func(ctx context.Context, req *connect.Request[vpcCallRequest]) (*connect.Response[vpcCallResponse], error) {
			res, err := handle(req.Msg)
			if err != nil {
				return nil, err
			}
			return connect.NewResponse(res), nil
		},
		connect.WithCodec(jsonCodec{}),
	)
	mux := http.NewServeMux()
	mux.Handle(vpcCallToolProcedure, handler)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	u, err := url.Parse(server.URL)
	require.NoError(t, err)

	mock := &mockAPI{
		listMcpToolsFn: func(ctx context.Context, body *apis.ListMcpToolsRequest) (*apis.ListMcpToolsResponse, error) {
			return okResponse("req-tools", testToolList), nil
		},
	}
	s := newTestSession(mock)
	s.vpc = true
	s.networkInterfaceIP = u.Hostname()
	s.httpPort = u.Port()
	s.token = "vpc-token"
	return s
}

func TestCallMcpToolVPC(t *testing.T) {
	var got vpcCallRequest
	s := newVpcSession(t, func(req *vpcCallRequest) (*vpcCallResponse, error) {
		got = *req
		return &vpcCallResponse{Data: toolCallResult{Content: []toolContent{{Type: "text", Text: "from vpc"}}}}, nil
	})

	result, err := s.CallMcpTool(context.Background(), "shell", map[string]string{"command": "pwd"})
	require.NoError(t, err)
	assert.Equal(t, "from vpc", result.Data)
	assert.Equal(t, "wuying_shell", got.Server)
	assert.Equal(t, "shell", got.Tool)
	assert.Equal(t, "vpc-token", got.Token)
	assert.JSONEq(t, `{"command":"pwd"}`, got.Args)
	assert.Equal(t, got.RequestID, result.RequestID)
}

func TestCallMcpToolVPCErrors(t *testing.T) {
	s := newVpcSession(t, func(req *vpcCallRequest) (*vpcCallResponse, error) {
		if req.Tool == "read_file" {
			return nil, connect.NewError(connect.CodeNotFound, errors.New("no such file"))
		}
		return &vpcCallResponse{Data: toolCallResult{IsError: true, Content: []toolContent{{Type: "text", Text: "exit 1"}}}}, nil
	})

	_, err := s.CallMcpTool(context.Background(), "read_file", map[string]string{"path": "/x"})
	assert.True(t, IsNotFound(err), "expected connect not found, got %v", err)

	_, err = s.CallMcpTool(context.Background(), "shell", nil)
	var toolErr *ToolError
	require.True(t, errors.As(err, &toolErr))
	assert.Equal(t, "exit 1", toolErr.Message)
}

func TestVpcBaseURLMissingEndpoint(t *testing.T) {
	s := newTestSession(&mockAPI{})
	s.vpc = true
	_, err := s.vpcBaseURL()
	assert.True(t, errors.Is(err, ErrInvalidParameter))
}
