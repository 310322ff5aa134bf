package apis

import (
	"encoding/json"
	"net/url"
)

// ---------------------------------------------------------------------------
// Session
// ---------------------------------------------------------------------------

// PersistenceData 描述创建会话时挂载的上下文。Policy 为 JSON 编码的同步策略。
type PersistenceData struct {
	ContextID string `json:"ContextId"`
	Path      string `json:"Path"`
	Policy    string `json:"Policy,omitempty"`
}

// CreateMcpSessionRequest defines parameters for CreateMcpSession.
type CreateMcpSessionRequest struct {
	ImageID             *string
	Labels              map[string]string
	PersistenceDataList []PersistenceData
	McpPolicyID         *string
	VpcResource         *bool
	ExtraConfigs        json.RawMessage
}

func (r *CreateMcpSessionRequest) encode() (url.Values, error) {
	values := url.Values{}
	if err := addFormParam(values, "ImageId", r.ImageID); err != nil {
		return nil, err
	}
	if len(r.Labels) > 0 {
		if err := addJSONParam(values, "Labels", r.Labels); err != nil {
			return nil, err
		}
	}
	if len(r.PersistenceDataList) > 0 {
		if err := addJSONParam(values, "PersistenceDataList", r.PersistenceDataList); err != nil {
			return nil, err
		}
	}
	if err := addFormParam(values, "McpPolicyId", r.McpPolicyID); err != nil {
		return nil, err
	}
	if err := addFormParam(values, "VpcResource", r.VpcResource); err != nil {
		return nil, err
	}
	if len(r.ExtraConfigs) > 0 {
		values.Set("ExtraConfigs", string(r.ExtraConfigs))
	}
	return values, nil
}

// CreateMcpSessionData defines model for CreateMcpSession Data.
type CreateMcpSessionData struct {
	SessionID          string `json:"SessionId"`
	ResourceURL        string `json:"ResourceUrl,omitempty"`
	ResourceID         string `json:"ResourceId,omitempty"`
	AppInstanceID      string `json:"AppInstanceId,omitempty"`
	NetworkInterfaceIP string `json:"NetworkInterfaceIp,omitempty"`
	HTTPPort           string `json:"HttpPort,omitempty"`
	Token              string `json:"Token,omitempty"`
	VpcResource        bool   `json:"VpcResource,omitempty"`
	Success            *bool  `json:"Success,omitempty"`
	ErrMsg             string `json:"ErrMsg,omitempty"`
	ToolList           string `json:"ToolList,omitempty"`
}

// SessionIDRequest 是只携带会话 ID 的请求。
type SessionIDRequest struct {
	SessionID string
}

func (r *SessionIDRequest) encode() (url.Values, error) {
	values := url.Values{}
	if err := addFormParam(values, "SessionId", r.SessionID); err != nil {
		return nil, err
	}
	return values, nil
}

// ReleaseMcpSessionRequest defines parameters for ReleaseMcpSession.
type ReleaseMcpSessionRequest = SessionIDRequest

// GetSessionRequest defines parameters for GetSession.
type GetSessionRequest = SessionIDRequest

// GetLabelRequest defines parameters for GetLabel.
type GetLabelRequest = SessionIDRequest

// GetMcpResourceRequest defines parameters for GetMcpResource.
type GetMcpResourceRequest = SessionIDRequest

// GetCdpLinkRequest defines parameters for GetCdpLink. Option 为 JSON 字符串，为空时不发送。
type GetCdpLinkRequest struct {
	SessionID string
	Option    string
}

func (r *GetCdpLinkRequest) encode() (url.Values, error) {
	values := url.Values{}
	if err := addFormParam(values, "SessionId", r.SessionID); err != nil {
		return nil, err
	}
	if r.Option != "" {
		values.Set("Option", r.Option)
	}
	return values, nil
}

// GetSessionData defines model for GetSession Data.
type GetSessionData struct {
	SessionID          string `json:"SessionId"`
	Status             string `json:"Status,omitempty"`
	AppInstanceID      string `json:"AppInstanceId,omitempty"`
	ResourceID         string `json:"ResourceId,omitempty"`
	ResourceURL        string `json:"ResourceUrl,omitempty"`
	VpcResource        bool   `json:"VpcResource,omitempty"`
	NetworkInterfaceIP string `json:"NetworkInterfaceIp,omitempty"`
	HTTPPort           string `json:"HttpPort,omitempty"`
	Token              string `json:"Token,omitempty"`
}

// ListSessionRequest defines parameters for ListSession.
type ListSessionRequest struct {
	Labels     map[string]string
	MaxResults *int32
	NextToken  *string
}

func (r *ListSessionRequest) encode() (url.Values, error) {
	values := url.Values{}
	if len(r.Labels) > 0 {
		if err := addJSONParam(values, "Labels", r.Labels); err != nil {
			return nil, err
		}
	}
	if err := addFormParam(values, "MaxResults", r.MaxResults); err != nil {
		return nil, err
	}
	if r.NextToken != nil && *r.NextToken != "" {
		if err := addFormParam(values, "NextToken", r.NextToken); err != nil {
			return nil, err
		}
	}
	return values, nil
}

// ListedSession defines model for an item in ListSession Data.
type ListedSession struct {
	SessionID     string `json:"SessionId"`
	SessionStatus string `json:"SessionStatus,omitempty"`
}

// SetLabelRequest defines parameters for SetLabel.
type SetLabelRequest struct {
	SessionID string
	Labels    map[string]string
}

func (r *SetLabelRequest) encode() (url.Values, error) {
	values := url.Values{}
	if err := addFormParam(values, "SessionId", r.SessionID); err != nil {
		return nil, err
	}
	if err := addJSONParam(values, "Labels", r.Labels); err != nil {
		return nil, err
	}
	return values, nil
}

// GetLabelData defines model for GetLabel Data. Labels 为 JSON 字符串。
type GetLabelData struct {
	Labels string `json:"Labels"`
}

// GetLinkRequest defines parameters for GetLink.
type GetLinkRequest struct {
	SessionID    string
	ProtocolType *string
	Port         *int32
}

func (r *GetLinkRequest) encode() (url.Values, error) {
	values := url.Values{}
	if err := addFormParam(values, "SessionId", r.SessionID); err != nil {
		return nil, err
	}
	if err := addFormParam(values, "ProtocolType", r.ProtocolType); err != nil {
		return nil, err
	}
	if err := addFormParam(values, "Port", r.Port); err != nil {
		return nil, err
	}
	return values, nil
}

// URLData defines model for operations whose Data carries a URL.
type URLData struct {
	URL        string `json:"Url"`
	ExpireTime *int64 `json:"ExpireTime,omitempty"`
}

// DesktopInfo defines model for GetMcpResource desktop info.
type DesktopInfo struct {
	AppID                string `json:"AppId,omitempty"`
	AuthCode             string `json:"AuthCode,omitempty"`
	ConnectionProperties string `json:"ConnectionProperties,omitempty"`
	ResourceID           string `json:"ResourceId,omitempty"`
	ResourceType         string `json:"ResourceType,omitempty"`
	Ticket               string `json:"Ticket,omitempty"`
}

// GetMcpResourceData defines model for GetMcpResource Data.
type GetMcpResourceData struct {
	SessionID   string       `json:"SessionId"`
	ResourceURL string       `json:"ResourceUrl,omitempty"`
	DesktopInfo *DesktopInfo `json:"DesktopInfo,omitempty"`
}

// ---------------------------------------------------------------------------
// MCP tools
// ---------------------------------------------------------------------------

// CallMcpToolRequest defines parameters for CallMcpTool. Args 为 JSON 字符串。
type CallMcpToolRequest struct {
	SessionID      string
	Name           string
	Args           string
	AutoGenSession *bool
}

func (r *CallMcpToolRequest) encode() (url.Values, error) {
	values := url.Values{}
	if err := addFormParam(values, "SessionId", r.SessionID); err != nil {
		return nil, err
	}
	if err := addFormParam(values, "Name", r.Name); err != nil {
		return nil, err
	}
	values.Set("Args", r.Args)
	if err := addFormParam(values, "AutoGenSession", r.AutoGenSession); err != nil {
		return nil, err
	}
	return values, nil
}

// ListMcpToolsRequest defines parameters for ListMcpTools.
type ListMcpToolsRequest struct {
	ImageID string
}

func (r *ListMcpToolsRequest) encode() (url.Values, error) {
	values := url.Values{}
	if err := addFormParam(values, "ImageId", r.ImageID); err != nil {
		return nil, err
	}
	return values, nil
}

// ---------------------------------------------------------------------------
// Context
// ---------------------------------------------------------------------------

// GetContextRequest defines parameters for GetContext.
type GetContextRequest struct {
	ID          *string
	Name        *string
	AllowCreate *bool
}

func (r *GetContextRequest) encode() (url.Values, error) {
	values := url.Values{}
	if err := addFormParam(values, "Id", r.ID); err != nil {
		return nil, err
	}
	if err := addFormParam(values, "Name", r.Name); err != nil {
		return nil, err
	}
	if err := addFormParam(values, "AllowCreate", r.AllowCreate); err != nil {
		return nil, err
	}
	return values, nil
}

// ContextData defines model for a context.
type ContextData struct {
	ID           string `json:"Id"`
	Name         string `json:"Name"`
	State        string `json:"State,omitempty"`
	CreateTime   string `json:"CreateTime,omitempty"`
	LastUsedTime string `json:"LastUsedTime,omitempty"`
	OsType       string `json:"OsType,omitempty"`
}

// ListContextsRequest defines parameters for ListContexts.
type ListContextsRequest struct {
	MaxResults *int32
	NextToken  *string
}

func (r *ListContextsRequest) encode() (url.Values, error) {
	values := url.Values{}
	if err := addFormParam(values, "MaxResults", r.MaxResults); err != nil {
		return nil, err
	}
	if r.NextToken != nil && *r.NextToken != "" {
		if err := addFormParam(values, "NextToken", r.NextToken); err != nil {
			return nil, err
		}
	}
	return values, nil
}

// ModifyContextRequest defines parameters for ModifyContext.
type ModifyContextRequest struct {
	ID   string
	Name string
}

func (r *ModifyContextRequest) encode() (url.Values, error) {
	values := url.Values{}
	if err := addFormParam(values, "Id", r.ID); err != nil {
		return nil, err
	}
	if err := addFormParam(values, "Name", r.Name); err != nil {
		return nil, err
	}
	return values, nil
}

// DeleteContextRequest defines parameters for DeleteContext.
type DeleteContextRequest struct {
	ID string
}

func (r *DeleteContextRequest) encode() (url.Values, error) {
	values := url.Values{}
	if err := addFormParam(values, "Id", r.ID); err != nil {
		return nil, err
	}
	return values, nil
}

// SyncContextRequest defines parameters for SyncContext.
type SyncContextRequest struct {
	SessionID string
	ContextID *string
	Path      *string
	Mode      *string
}

func (r *SyncContextRequest) encode() (url.Values, error) {
	values := url.Values{}
	if err := addFormParam(values, "SessionId", r.SessionID); err != nil {
		return nil, err
	}
	if err := addFormParam(values, "ContextId", r.ContextID); err != nil {
		return nil, err
	}
	if err := addFormParam(values, "Path", r.Path); err != nil {
		return nil, err
	}
	if err := addFormParam(values, "Mode", r.Mode); err != nil {
		return nil, err
	}
	return values, nil
}

// GetContextInfoRequest defines parameters for GetContextInfo.
type GetContextInfoRequest struct {
	SessionID string
	ContextID *string
	Path      *string
	TaskType  *string
}

func (r *GetContextInfoRequest) encode() (url.Values, error) {
	values := url.Values{}
	if err := addFormParam(values, "SessionId", r.SessionID); err != nil {
		return nil, err
	}
	if err := addFormParam(values, "ContextId", r.ContextID); err != nil {
		return nil, err
	}
	if err := addFormParam(values, "Path", r.Path); err != nil {
		return nil, err
	}
	if err := addFormParam(values, "TaskType", r.TaskType); err != nil {
		return nil, err
	}
	return values, nil
}

// GetContextInfoData defines model for GetContextInfo Data.
// ContextStatus 为嵌套的 JSON 字符串。
type GetContextInfoData struct {
	ContextStatus string `json:"ContextStatus"`
}

// ContextFileRequest defines parameters for the context file URL and delete operations.
type ContextFileRequest struct {
	ContextID string
	FilePath  string
}

func (r *ContextFileRequest) encode() (url.Values, error) {
	values := url.Values{}
	if err := addFormParam(values, "ContextId", r.ContextID); err != nil {
		return nil, err
	}
	if err := addFormParam(values, "FilePath", r.FilePath); err != nil {
		return nil, err
	}
	return values, nil
}

// DescribeContextFilesRequest defines parameters for DescribeContextFiles.
type DescribeContextFilesRequest struct {
	ContextID        string
	ParentFolderPath string
	PageNumber       int32
	PageSize         int32
}

func (r *DescribeContextFilesRequest) encode() (url.Values, error) {
	values := url.Values{}
	if err := addFormParam(values, "ContextId", r.ContextID); err != nil {
		return nil, err
	}
	if err := addFormParam(values, "ParentFolderPath", r.ParentFolderPath); err != nil {
		return nil, err
	}
	if err := addFormParam(values, "PageNumber", r.PageNumber); err != nil {
		return nil, err
	}
	if err := addFormParam(values, "PageSize", r.PageSize); err != nil {
		return nil, err
	}
	return values, nil
}

// ContextFileData defines model for an item in DescribeContextFiles Data.
type ContextFileData struct {
	FileID      string `json:"FileId,omitempty"`
	FileName    string `json:"FileName"`
	FilePath    string `json:"FilePath"`
	FileType    string `json:"FileType,omitempty"`
	GmtCreate   string `json:"GmtCreate,omitempty"`
	GmtModified string `json:"GmtModified,omitempty"`
	Size        int64  `json:"Size,omitempty"`
	Status      string `json:"Status,omitempty"`
}

// ---------------------------------------------------------------------------
// Browser / mobile
// ---------------------------------------------------------------------------

// InitBrowserRequest defines parameters for InitBrowser.
type InitBrowserRequest struct {
	SessionID      string
	PersistentPath string
	BrowserOption  map[string]interface{}
}

func (r *InitBrowserRequest) encode() (url.Values, error) {
	values := url.Values{}
	if err := addFormParam(values, "SessionId", r.SessionID); err != nil {
		return nil, err
	}
	if err := addFormParam(values, "PersistentPath", r.PersistentPath); err != nil {
		return nil, err
	}
	if r.BrowserOption != nil {
		if err := addJSONParam(values, "BrowserOption", r.BrowserOption); err != nil {
			return nil, err
		}
	}
	return values, nil
}

// InitBrowserData defines model for InitBrowser Data.
type InitBrowserData struct {
	Port int32 `json:"Port"`
}

// GetAdbLinkRequest defines parameters for GetAdbLink. Option 为 JSON 字符串。
type GetAdbLinkRequest struct {
	SessionID string
	Option    string
}

func (r *GetAdbLinkRequest) encode() (url.Values, error) {
	values := url.Values{}
	if err := addFormParam(values, "SessionId", r.SessionID); err != nil {
		return nil, err
	}
	values.Set("Option", r.Option)
	return values, nil
}
