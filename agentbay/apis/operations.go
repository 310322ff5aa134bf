package apis

import (
	"context"
	"encoding/json"
	"net/url"
)

// Response types for each operation.
type (
	CreateMcpSessionResponse          = Response[CreateMcpSessionData]
	ReleaseMcpSessionResponse         = Response[json.RawMessage]
	GetSessionResponse                = Response[GetSessionData]
	ListSessionResponse               = Response[[]ListedSession]
	GetLabelResponse                  = Response[GetLabelData]
	SetLabelResponse                  = Response[json.RawMessage]
	GetLinkResponse                   = Response[URLData]
	GetMcpResourceResponse            = Response[GetMcpResourceData]
	CallMcpToolResponse               = Response[json.RawMessage]
	ListMcpToolsResponse              = Response[string]
	GetContextResponse                = Response[ContextData]
	ListContextsResponse              = Response[[]ContextData]
	ModifyContextResponse             = Response[json.RawMessage]
	DeleteContextResponse             = Response[json.RawMessage]
	SyncContextResponse               = Response[json.RawMessage]
	GetContextInfoResponse            = Response[GetContextInfoData]
	GetContextFileDownloadURLResponse = Response[URLData]
	GetContextFileUploadURLResponse   = Response[URLData]
	DescribeContextFilesResponse      = Response[[]ContextFileData]
	DeleteContextFileResponse         = Response[json.RawMessage]
	InitBrowserResponse               = Response[InitBrowserData]
	GetCdpLinkResponse                = Response[URLData]
	GetAdbLinkResponse                = Response[URLData]
)

// Action names.
const (
	ActionCreateMcpSession          = "CreateMcpSession"
	ActionReleaseMcpSession         = "ReleaseMcpSession"
	ActionGetSession                = "GetSession"
	ActionListSession               = "ListSession"
	ActionGetLabel                  = "GetLabel"
	ActionSetLabel                  = "SetLabel"
	ActionGetLink                   = "GetLink"
	ActionGetMcpResource            = "GetMcpResource"
	ActionCallMcpTool               = "CallMcpTool"
	ActionListMcpTools              = "ListMcpTools"
	ActionGetContext                = "GetContext"
	ActionListContexts              = "ListContexts"
	ActionModifyContext             = "ModifyContext"
	ActionDeleteContext             = "DeleteContext"
	ActionSyncContext               = "SyncContext"
	ActionGetContextInfo            = "GetContextInfo"
	ActionGetContextFileDownloadURL = "GetContextFileDownloadUrl"
	ActionGetContextFileUploadURL   = "GetContextFileUploadUrl"
	ActionDescribeContextFiles      = "DescribeContextFiles"
	ActionDeleteContextFile         = "DeleteContextFile"
	ActionInitBrowser               = "InitBrowser"
	ActionGetCdpLink                = "GetCdpLink"
	ActionGetAdbLink                = "GetAdbLink"
)

// ClientWithResponsesInterface is the interface specification for the client with responses above.
type ClientWithResponsesInterface interface {
	CreateMcpSessionWithResponse(ctx context.Context, body *CreateMcpSessionRequest, reqEditors ...RequestEditorFn) (*CreateMcpSessionResponse, error)
	ReleaseMcpSessionWithResponse(ctx context.Context, body *ReleaseMcpSessionRequest, reqEditors ...RequestEditorFn) (*ReleaseMcpSessionResponse, error)
	GetSessionWithResponse(ctx context.Context, body *GetSessionRequest, reqEditors ...RequestEditorFn) (*GetSessionResponse, error)
	ListSessionWithResponse(ctx context.Context, body *ListSessionRequest, reqEditors ...RequestEditorFn) (*ListSessionResponse, error)
	GetLabelWithResponse(ctx context.Context, body *GetLabelRequest, reqEditors ...RequestEditorFn) (*GetLabelResponse, error)
	SetLabelWithResponse(ctx context.Context, body *SetLabelRequest, reqEditors ...RequestEditorFn) (*SetLabelResponse, error)
	GetLinkWithResponse(ctx context.Context, body *GetLinkRequest, reqEditors ...RequestEditorFn) (*GetLinkResponse, error)
	GetMcpResourceWithResponse(ctx context.Context, body *GetMcpResourceRequest, reqEditors ...RequestEditorFn) (*GetMcpResourceResponse, error)
	CallMcpToolWithResponse(ctx context.Context, body *CallMcpToolRequest, reqEditors ...RequestEditorFn) (*CallMcpToolResponse, error)
	ListMcpToolsWithResponse(ctx context.Context, body *ListMcpToolsRequest, reqEditors ...RequestEditorFn) (*ListMcpToolsResponse, error)
	GetContextWithResponse(ctx context.Context, body *GetContextRequest, reqEditors ...RequestEditorFn) (*GetContextResponse, error)
	ListContextsWithResponse(ctx context.Context, body *ListContextsRequest, reqEditors ...RequestEditorFn) (*ListContextsResponse, error)
	ModifyContextWithResponse(ctx context.Context, body *ModifyContextRequest, reqEditors ...RequestEditorFn) (*ModifyContextResponse, error)
	DeleteContextWithResponse(ctx context.Context, body *DeleteContextRequest, reqEditors ...RequestEditorFn) (*DeleteContextResponse, error)
	SyncContextWithResponse(ctx context.Context, body *SyncContextRequest, reqEditors ...RequestEditorFn) (*SyncContextResponse, error)
	GetContextInfoWithResponse(ctx context.Context, body *GetContextInfoRequest, reqEditors ...RequestEditorFn) (*GetContextInfoResponse, error)
	GetContextFileDownloadURLWithResponse(ctx context.Context, body *ContextFileRequest, reqEditors ...RequestEditorFn) (*GetContextFileDownloadURLResponse, error)
	GetContextFileUploadURLWithResponse(ctx context.Context, body *ContextFileRequest, reqEditors ...RequestEditorFn) (*GetContextFileUploadURLResponse, error)
	DescribeContextFilesWithResponse(ctx context.Context, body *DescribeContextFilesRequest, reqEditors ...RequestEditorFn) (*DescribeContextFilesResponse, error)
	DeleteContextFileWithResponse(ctx context.Context, body *ContextFileRequest, reqEditors ...RequestEditorFn) (*DeleteContextFileResponse, error)
	InitBrowserWithResponse(ctx context.Context, body *InitBrowserRequest, reqEditors ...RequestEditorFn) (*InitBrowserResponse, error)
	GetCdpLinkWithResponse(ctx context.Context, body *GetCdpLinkRequest, reqEditors ...RequestEditorFn) (*GetCdpLinkResponse, error)
	GetAdbLinkWithResponse(ctx context.Context, body *GetAdbLinkRequest, reqEditors ...RequestEditorFn) (*GetAdbLinkResponse, error)
}

type encoder interface {
	encode() (url.Values, error)
}

// call encodes body, sends the action and parses the envelope.
func call[T any](ctx context.Context, c *Client, action string, body encoder, reqEditors []RequestEditorFn) (*Response[T], error) {
	params, err := body.encode()
	if err != nil {
		return nil, err
	}
	rsp, err := c.do(ctx, action, params, reqEditors)
	if err != nil {
		return nil, err
	}
	return parseResponse[T](rsp)
}

// CreateMcpSessionWithResponse sends the CreateMcpSession action and parses the response.
func (c *ClientWithResponses) CreateMcpSessionWithResponse(ctx context.Context, body *CreateMcpSessionRequest, reqEditors ...RequestEditorFn) (*CreateMcpSessionResponse, error) {
	return call[CreateMcpSessionData](ctx, c.Client, ActionCreateMcpSession, body, reqEditors)
}

// ReleaseMcpSessionWithResponse sends the ReleaseMcpSession action and parses the response.
func (c *ClientWithResponses) ReleaseMcpSessionWithResponse(ctx context.Context, body *ReleaseMcpSessionRequest, reqEditors ...RequestEditorFn) (*ReleaseMcpSessionResponse, error) {
	return call[json.RawMessage](ctx, c.Client, ActionReleaseMcpSession, body, reqEditors)
}

// GetSessionWithResponse sends the GetSession action and parses the response.
func (c *ClientWithResponses) GetSessionWithResponse(ctx context.Context, body *GetSessionRequest, reqEditors ...RequestEditorFn) (*GetSessionResponse, error) {
	return call[GetSessionData](ctx, c.Client, ActionGetSession, body, reqEditors)
}

// ListSessionWithResponse sends the ListSession action and parses the response.
func (c *ClientWithResponses) ListSessionWithResponse(ctx context.Context, body *ListSessionRequest, reqEditors ...RequestEditorFn) (*ListSessionResponse, error) {
	return call[[]ListedSession](ctx, c.Client, ActionListSession, body, reqEditors)
}

// GetLabelWithResponse sends the GetLabel action and parses the response.
func (c *ClientWithResponses) GetLabelWithResponse(ctx context.Context, body *GetLabelRequest, reqEditors ...RequestEditorFn) (*GetLabelResponse, error) {
	return call[GetLabelData](ctx, c.Client, ActionGetLabel, body, reqEditors)
}

// SetLabelWithResponse sends the SetLabel action and parses the response.
func (c *ClientWithResponses) SetLabelWithResponse(ctx context.Context, body *SetLabelRequest, reqEditors ...RequestEditorFn) (*SetLabelResponse, error) {
	return call[json.RawMessage](ctx, c.Client, ActionSetLabel, body, reqEditors)
}

// GetLinkWithResponse sends the GetLink action and parses the response.
func (c *ClientWithResponses) GetLinkWithResponse(ctx context.Context, body *GetLinkRequest, reqEditors ...RequestEditorFn) (*GetLinkResponse, error) {
	return call[URLData](ctx, c.Client, ActionGetLink, body, reqEditors)
}

// GetMcpResourceWithResponse sends the GetMcpResource action and parses the response.
func (c *ClientWithResponses) GetMcpResourceWithResponse(ctx context.Context, body *GetMcpResourceRequest, reqEditors ...RequestEditorFn) (*GetMcpResourceResponse, error) {
	return call[GetMcpResourceData](ctx, c.Client, ActionGetMcpResource, body, reqEditors)
}

// CallMcpToolWithResponse sends the CallMcpTool action and parses the response.
func (c *ClientWithResponses) CallMcpToolWithResponse(ctx context.Context, body *CallMcpToolRequest, reqEditors ...RequestEditorFn) (*CallMcpToolResponse, error) {
	return call[json.RawMessage](ctx, c.Client, ActionCallMcpTool, body, reqEditors)
}

// ListMcpToolsWithResponse sends the ListMcpTools action and parses the response.
func (c *ClientWithResponses) ListMcpToolsWithResponse(ctx context.Context, body *ListMcpToolsRequest, reqEditors ...RequestEditorFn) (*ListMcpToolsResponse, error) {
	return call[string](ctx, c.Client, ActionListMcpTools, body, reqEditors)
}

// GetContextWithResponse sends the GetContext action and parses the response.
func (c *ClientWithResponses) GetContextWithResponse(ctx context.Context, body *GetContextRequest, reqEditors ...RequestEditorFn) (*GetContextResponse, error) {
	return call[ContextData](ctx, c.Client, ActionGetContext, body, reqEditors)
}

// ListContextsWithResponse sends the ListContexts action and parses the response.
func (c *ClientWithResponses) ListContextsWithResponse(ctx context.Context, body *ListContextsRequest, reqEditors ...RequestEditorFn) (*ListContextsResponse, error) {
	return call[[]ContextData](ctx, c.Client, ActionListContexts, body, reqEditors)
}

// ModifyContextWithResponse sends the ModifyContext action and parses the response.
func (c *ClientWithResponses) ModifyContextWithResponse(ctx context.Context, body *ModifyContextRequest, reqEditors ...RequestEditorFn) (*ModifyContextResponse, error) {
	return call[json.RawMessage](ctx, c.Client, ActionModifyContext, body, reqEditors)
}

// DeleteContextWithResponse sends the DeleteContext action and parses the response.
func (c *ClientWithResponses) DeleteContextWithResponse(ctx context.Context, body *DeleteContextRequest, reqEditors ...RequestEditorFn) (*DeleteContextResponse, error) {
	return call[json.RawMessage](ctx, c.Client, ActionDeleteContext, body, reqEditors)
}

// SyncContextWithResponse sends the SyncContext action and parses the response.
func (c *ClientWithResponses) SyncContextWithResponse(ctx context.Context, body *SyncContextRequest, reqEditors ...RequestEditorFn) (*SyncContextResponse, error) {
	return call[json.RawMessage](ctx, c.Client, ActionSyncContext, body, reqEditors)
}

// GetContextInfoWithResponse sends the GetContextInfo action and parses the response.
func (c *ClientWithResponses) GetContextInfoWithResponse(ctx context.Context, body *GetContextInfoRequest, reqEditors ...RequestEditorFn) (*GetContextInfoResponse, error) {
	return call[GetContextInfoData](ctx, c.Client, ActionGetContextInfo, body, reqEditors)
}

// GetContextFileDownloadURLWithResponse sends the GetContextFileDownloadURL action and parses the response.
func (c *ClientWithResponses) GetContextFileDownloadURLWithResponse(ctx context.Context, body *ContextFileRequest, reqEditors ...RequestEditorFn) (*GetContextFileDownloadURLResponse, error) {
	return call[URLData](ctx, c.Client, ActionGetContextFileDownloadURL, body, reqEditors)
}

// GetContextFileUploadURLWithResponse sends the GetContextFileUploadURL action and parses the response.
func (c *ClientWithResponses) GetContextFileUploadURLWithResponse(ctx context.Context, body *ContextFileRequest, reqEditors ...RequestEditorFn) (*GetContextFileUploadURLResponse, error) {
	return call[URLData](ctx, c.Client, ActionGetContextFileUploadURL, body, reqEditors)
}

// DescribeContextFilesWithResponse sends the DescribeContextFiles action and parses the response.
func (c *ClientWithResponses) DescribeContextFilesWithResponse(ctx context.Context, body *DescribeContextFilesRequest, reqEditors ...RequestEditorFn) (*DescribeContextFilesResponse, error) {
	return call[[]ContextFileData](ctx, c.Client, ActionDescribeContextFiles, body, reqEditors)
}

// DeleteContextFileWithResponse sends the DeleteContextFile action and parses the response.
func (c *ClientWithResponses) DeleteContextFileWithResponse(ctx context.Context, body *ContextFileRequest, reqEditors ...RequestEditorFn) (*DeleteContextFileResponse, error) {
	return call[json.RawMessage](ctx, c.Client, ActionDeleteContextFile, body, reqEditors)
}

// InitBrowserWithResponse sends the InitBrowser action and parses the response.
func (c *ClientWithResponses) InitBrowserWithResponse(ctx context.Context, body *InitBrowserRequest, reqEditors ...RequestEditorFn) (*InitBrowserResponse, error) {
	return call[InitBrowserData](ctx, c.Client, ActionInitBrowser, body, reqEditors)
}

// GetCdpLinkWithResponse sends the GetCdpLink action and parses the response.
func (c *ClientWithResponses) GetCdpLinkWithResponse(ctx context.Context, body *GetCdpLinkRequest, reqEditors ...RequestEditorFn) (*GetCdpLinkResponse, error) {
	return call[URLData](ctx, c.Client, ActionGetCdpLink, body, reqEditors)
}

// GetAdbLinkWithResponse sends the GetAdbLink action and parses the response.
func (c *ClientWithResponses) GetAdbLinkWithResponse(ctx context.Context, body *GetAdbLinkRequest, reqEditors ...RequestEditorFn) (*GetAdbLinkResponse, error) {
	return call[URLData](ctx, c.Client, ActionGetAdbLink, body, reqEditors)
}

var _ ClientWithResponsesInterface = (*ClientWithResponses)(nil)
