package agentbay

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/yuebing-yb/wuying-agentbay-sdk-sub000/agentbay/apis"
	"github.com/yuebing-yb/wuying-agentbay-sdk-sub000/internal/toolcache"
)

// mockAPI 实现 apis.ClientWithResponsesInterface 用于测试。
// 每个方法字段可按测试设置；未设置的方法会 panic。
type mockAPI struct {
	createMcpSessionFn     func(ctx context.Context, body *apis.CreateMcpSessionRequest) (*apis.CreateMcpSessionResponse, error)
	releaseMcpSessionFn    func(ctx context.Context, body *apis.ReleaseMcpSessionRequest) (*apis.ReleaseMcpSessionResponse, error)
	getSessionFn           func(ctx context.Context, body *apis.GetSessionRequest) (*apis.GetSessionResponse, error)
	listSessionFn          func(ctx context.Context, body *apis.ListSessionRequest) (*apis.ListSessionResponse, error)
	getLabelFn             func(ctx context.Context, body *apis.GetLabelRequest) (*apis.GetLabelResponse, error)
	setLabelFn             func(ctx context.Context, body *apis.SetLabelRequest) (*apis.SetLabelResponse, error)
	getLinkFn              func(ctx context.Context, body *apis.GetLinkRequest) (*apis.GetLinkResponse, error)
	getMcpResourceFn       func(ctx context.Context, body *apis.GetMcpResourceRequest) (*apis.GetMcpResourceResponse, error)
	callMcpToolFn          func(ctx context.Context, body *apis.CallMcpToolRequest) (*apis.CallMcpToolResponse, error)
	listMcpToolsFn         func(ctx context.Context, body *apis.ListMcpToolsRequest) (*apis.ListMcpToolsResponse, error)
	getContextFn           func(ctx context.Context, body *apis.GetContextRequest) (*apis.GetContextResponse, error)
	listContextsFn         func(ctx context.Context, body *apis.ListContextsRequest) (*apis.ListContextsResponse, error)
	modifyContextFn        func(ctx context.Context, body *apis.ModifyContextRequest) (*apis.ModifyContextResponse, error)
	deleteContextFn        func(ctx context.Context, body *apis.DeleteContextRequest) (*apis.DeleteContextResponse, error)
	syncContextFn          func(ctx context.Context, body *apis.SyncContextRequest) (*apis.SyncContextResponse, error)
	getContextInfoFn       func(ctx context.Context, body *apis.GetContextInfoRequest) (*apis.GetContextInfoResponse, error)
	getDownloadURLFn       func(ctx context.Context, body *apis.ContextFileRequest) (*apis.GetContextFileDownloadURLResponse, error)
	getUploadURLFn         func(ctx context.Context, body *apis.ContextFileRequest) (*apis.GetContextFileUploadURLResponse, error)
	describeContextFilesFn func(ctx context.Context, body *apis.DescribeContextFilesRequest) (*apis.DescribeContextFilesResponse, error)
	deleteContextFileFn    func(ctx context.Context, body *apis.ContextFileRequest) (*apis.DeleteContextFileResponse, error)
	initBrowserFn          func(ctx context.Context, body *apis.InitBrowserRequest) (*apis.InitBrowserResponse, error)
	getCdpLinkFn           func(ctx context.Context, body *apis.GetCdpLinkRequest) (*apis.GetCdpLinkResponse, error)
	getAdbLinkFn           func(ctx context.Context, body *apis.GetAdbLinkRequest) (*apis.GetAdbLinkResponse, error)
}

var _ apis.ClientWithResponsesInterface = (*mockAPI)(nil)

func (m *mockAPI) CreateMcpSessionWithResponse(ctx context.Context, body *apis.CreateMcpSessionRequest, _ ...apis.RequestEditorFn) (*apis.CreateMcpSessionResponse, error) {
	return m.createMcpSessionFn(ctx, body)
}

func (m *mockAPI) ReleaseMcpSessionWithResponse(ctx context.Context, body *apis.ReleaseMcpSessionRequest, _ ...apis.RequestEditorFn) (*apis.ReleaseMcpSessionResponse, error) {
	return m.releaseMcpSessionFn(ctx, body)
}

func (m *mockAPI) GetSessionWithResponse(ctx context.Context, body *apis.GetSessionRequest, _ ...apis.RequestEditorFn) (*apis.GetSessionResponse, error) {
	return m.getSessionFn(ctx, body)
}

func (m *mockAPI) ListSessionWithResponse(ctx context.Context, body *apis.ListSessionRequest, _ ...apis.RequestEditorFn) (*apis.ListSessionResponse, error) {
	return m.listSessionFn(ctx, body)
}

func (m *mockAPI) GetLabelWithResponse(ctx context.Context, body *apis.GetLabelRequest, _ ...apis.RequestEditorFn) (*apis.GetLabelResponse, error) {
	return m.getLabelFn(ctx, body)
}

func (m *mockAPI) SetLabelWithResponse(ctx context.Context, body *apis.SetLabelRequest, _ ...apis.RequestEditorFn) (*apis.SetLabelResponse, error) {
	return m.setLabelFn(ctx, body)
}

func (m *mockAPI) GetLinkWithResponse(ctx context.Context, body *apis.GetLinkRequest, _ ...apis.RequestEditorFn) (*apis.GetLinkResponse, error) {
	return m.getLinkFn(ctx, body)
}

func (m *mockAPI) GetMcpResourceWithResponse(ctx context.Context, body *apis.GetMcpResourceRequest, _ ...apis.RequestEditorFn) (*apis.GetMcpResourceResponse, error) {
	return m.getMcpResourceFn(ctx, body)
}

func (m *mockAPI) CallMcpToolWithResponse(ctx context.Context, body *apis.CallMcpToolRequest, _ ...apis.RequestEditorFn) (*apis.CallMcpToolResponse, error) {
	return m.callMcpToolFn(ctx, body)
}

func (m *mockAPI) ListMcpToolsWithResponse(ctx context.Context, body *apis.ListMcpToolsRequest, _ ...apis.RequestEditorFn) (*apis.ListMcpToolsResponse, error) {
	return m.listMcpToolsFn(ctx, body)
}

func (m *mockAPI) GetContextWithResponse(ctx context.Context, body *apis.GetContextRequest, _ ...apis.RequestEditorFn) (*apis.GetContextResponse, error) {
	return m.getContextFn(ctx, body)
}

func (m *mockAPI) ListContextsWithResponse(ctx context.Context, body *apis.ListContextsRequest, _ ...apis.RequestEditorFn) (*apis.ListContextsResponse, error) {
	return m.listContextsFn(ctx, body)
}

func (m *mockAPI) ModifyContextWithResponse(ctx context.Context, body *apis.ModifyContextRequest, _ ...apis.RequestEditorFn) (*apis.ModifyContextResponse, error) {
	return m.modifyContextFn(ctx, body)
}

func (m *mockAPI) DeleteContextWithResponse(ctx context.Context, body *apis.DeleteContextRequest, _ ...apis.RequestEditorFn) (*apis.DeleteContextResponse, error) {
	return m.deleteContextFn(ctx, body)
}

func (m *mockAPI) SyncContextWithResponse(ctx context.Context, body *apis.SyncContextRequest, _ ...apis.RequestEditorFn) (*apis.SyncContextResponse, error) {
	return m.syncContextFn(ctx, body)
}

func (m *mockAPI) GetContextInfoWithResponse(ctx context.Context, body *apis.GetContextInfoRequest, _ ...apis.RequestEditorFn) (*apis.GetContextInfoResponse, error) {
	return m.getContextInfoFn(ctx, body)
}

func (m *mockAPI) GetContextFileDownloadURLWithResponse(ctx context.Context, body *apis.ContextFileRequest, _ ...apis.RequestEditorFn) (*apis.GetContextFileDownloadURLResponse, error) {
	return m.getDownloadURLFn(ctx, body)
}

func (m *mockAPI) GetContextFileUploadURLWithResponse(ctx context.Context, body *apis.ContextFileRequest, _ ...apis.RequestEditorFn) (*apis.GetContextFileUploadURLResponse, error) {
	return m.getUploadURLFn(ctx, body)
}

func (m *mockAPI) DescribeContextFilesWithResponse(ctx context.Context, body *apis.DescribeContextFilesRequest, _ ...apis.RequestEditorFn) (*apis.DescribeContextFilesResponse, error) {
	return m.describeContextFilesFn(ctx, body)
}

func (m *mockAPI) DeleteContextFileWithResponse(ctx context.Context, body *apis.ContextFileRequest, _ ...apis.RequestEditorFn) (*apis.DeleteContextFileResponse, error) {
	return m.deleteContextFileFn(ctx, body)
}

func (m *mockAPI) InitBrowserWithResponse(ctx context.Context, body *apis.InitBrowserRequest, _ ...apis.RequestEditorFn) (*apis.InitBrowserResponse, error) {
	return m.initBrowserFn(ctx, body)
}

func (m *mockAPI) GetCdpLinkWithResponse(ctx context.Context, body *apis.GetCdpLinkRequest, _ ...apis.RequestEditorFn) (*apis.GetCdpLinkResponse, error) {
	return m.getCdpLinkFn(ctx, body)
}

func (m *mockAPI) GetAdbLinkWithResponse(ctx context.Context, body *apis.GetAdbLinkRequest, _ ...apis.RequestEditorFn) (*apis.GetAdbLinkResponse, error) {
	return m.getAdbLinkFn(ctx, body)
}

func httpResponse(statusCode int) *http.Response {
	return &http.Response{StatusCode: statusCode}
}

// okResponse 构造 Success=true 的响应。
func okResponse[T any](requestID string, data T) *apis.Response[T] {
	success := true
	return &apis.Response[T]{
		HTTPResponse: httpResponse(http.StatusOK),
		JSON200:      &apis.Envelope[T]{RequestID: requestID, Success: &success, Data: data},
	}
}

// failedResponse 构造 Success=false 的响应。
func failedResponse[T any](requestID, code, message string) *apis.Response[T] {
	success := false
	return &apis.Response[T]{
		HTTPResponse: httpResponse(http.StatusOK),
		JSON200:      &apis.Envelope[T]{RequestID: requestID, Success: &success, Code: code, Message: message},
	}
}

// toolData 构造 CallMcpTool 的 Data。
func toolData(text string, isError bool) json.RawMessage {
	buf, _ := json.Marshal(map[string]interface{}{
		"content": []map[string]string{{"type": "text", "text": text}},
		"isError": isError,
	})
	return buf
}

func newTestClient(api apis.ClientWithResponsesInterface) *Client {
	return newClient(&Config{
		APIKey:   "test-key",
		Endpoint: "https://example.invalid",
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, api, toolcache.New(0))
}

func newTestSession(api apis.ClientWithResponsesInterface) *Session {
	return newTestClient(api).NewSession("s-1")
}

// fastPoll 让轮询在测试中立即重试。
func fastPoll() []PollOption {
	return []PollOption{WithPollInterval(time.Millisecond)}
}
