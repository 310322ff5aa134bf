package agentbay

import (
	"encoding/json"

	"github.com/yuebing-yb/wuying-agentbay-sdk-sub000/agentbay/apis"
)

// BrowserDataPath 是浏览器上下文在会话内的挂载路径。
const BrowserDataPath = "/tmp/agentbay_browser"

// BrowserContext 将一个上下文用作浏览器的持久化数据目录。
type BrowserContext struct {
	ContextID string
	// AutoUpload 为 true 时会话释放前自动上传浏览器数据。
	AutoUpload bool
}

func (b *BrowserContext) contextSync() *ContextSync {
	policy := NewSyncPolicy()
	policy.UploadPolicy.AutoUpload = b.AutoUpload
	return &ContextSync{ContextID: b.ContextID, Path: BrowserDataPath, Policy: policy}
}

// CreateSessionParams 是创建会话的参数。
type CreateSessionParams struct {
	// ImageID 指定会话镜像，如 linux_latest、browser_latest、code_latest、mobile_latest。
	ImageID string
	// Labels 为会话设置的标签。非 nil 时会被校验。
	Labels map[string]string
	// ContextSyncs 为会话挂载的上下文。
	ContextSyncs []*ContextSync
	// BrowserContext 为浏览器挂载持久化上下文。
	BrowserContext *BrowserContext
	// McpPolicyID 指定 MCP 策略。
	McpPolicyID string
	// IsVpc 为 true 时创建 VPC 会话，工具调用直连会话网卡。
	IsVpc bool
	// ExtraConfigs 原样透传给服务端的额外配置（JSON）。
	ExtraConfigs json.RawMessage
}

// NewCreateSessionParams 返回空的创建参数。
func NewCreateSessionParams() *CreateSessionParams {
	return &CreateSessionParams{}
}

// WithImageID 设置镜像 ID。
func (p *CreateSessionParams) WithImageID(imageID string) *CreateSessionParams {
	p.ImageID = imageID
	return p
}

// WithLabels 设置标签。
func (p *CreateSessionParams) WithLabels(labels map[string]string) *CreateSessionParams {
	p.Labels = labels
	return p
}

// AddContextSync 追加一个上下文同步配置。
func (p *CreateSessionParams) AddContextSync(contextID, path string, policy *SyncPolicy) *CreateSessionParams {
	p.ContextSyncs = append(p.ContextSyncs, &ContextSync{ContextID: contextID, Path: path, Policy: policy})
	return p
}

func (p *CreateSessionParams) allContextSyncs() []*ContextSync {
	syncs := append([]*ContextSync(nil), p.ContextSyncs...)
	if p.BrowserContext != nil {
		syncs = append(syncs, p.BrowserContext.contextSync())
	}
	return syncs
}

func (p *CreateSessionParams) toAPI() (*apis.CreateMcpSessionRequest, error) {
	persistence, err := persistenceDataFromSyncs(p.allContextSyncs())
	if err != nil {
		return nil, err
	}
	req := &apis.CreateMcpSessionRequest{
		Labels:              p.Labels,
		PersistenceDataList: persistence,
		ExtraConfigs:        p.ExtraConfigs,
	}
	if p.ImageID != "" {
		req.ImageID = &p.ImageID
	}
	if p.McpPolicyID != "" {
		req.McpPolicyID = &p.McpPolicyID
	}
	if p.IsVpc {
		vpc := true
		req.VpcResource = &vpc
	}
	return req, nil
}

// ListSessionParams 是按标签分页列出会话的参数。
type ListSessionParams struct {
	Labels     map[string]string
	MaxResults int32
	NextToken  string
}

func (p *ListSessionParams) toAPI() *apis.ListSessionRequest {
	req := &apis.ListSessionRequest{Labels: p.Labels}
	maxResults := p.MaxResults
	if maxResults <= 0 {
		maxResults = defaultPageSize
	}
	req.MaxResults = &maxResults
	if p.NextToken != "" {
		req.NextToken = &p.NextToken
	}
	return req
}

// SessionResult 是创建或获取会话的结果。
type SessionResult struct {
	RequestID string
	Session   *Session
}

// SessionListResult 是列出会话的结果。
type SessionListResult struct {
	RequestID  string
	SessionIDs []string
	Sessions   []ListedSession
	NextToken  string
	MaxResults int32
	TotalCount int32
}

// ListedSession 是列表中的会话摘要。
type ListedSession struct {
	SessionID string
	Status    string
}

// DeleteResult 是删除会话的结果。
type DeleteResult struct {
	RequestID string
	SessionID string
	Err       error
}

// LabelResult 是获取标签的结果。
type LabelResult struct {
	RequestID string
	Labels    map[string]string
}

// SessionInfo 是会话的资源信息。
type SessionInfo struct {
	SessionID            string
	ResourceURL          string
	AppID                string
	AuthCode             string
	ConnectionProperties string
	ResourceID           string
	ResourceType         string
	Ticket               string
}

// InfoResult 是 Session.Info 的结果。
type InfoResult struct {
	RequestID string
	Info      *SessionInfo
}

// LinkResult 是获取访问链接的结果。
type LinkResult struct {
	RequestID  string
	URL        string
	ExpireTime int64
}

// OperationResult 是无返回数据的操作结果。
type OperationResult struct {
	RequestID string
}

func listedSessionsFromAPI(items []apis.ListedSession) ([]ListedSession, []string) {
	sessions := make([]ListedSession, 0, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		sessions = append(sessions, ListedSession{SessionID: item.SessionID, Status: item.SessionStatus})
		ids = append(ids, item.SessionID)
	}
	return sessions, ids
}

func sessionInfoFromAPI(d *apis.GetMcpResourceData) *SessionInfo {
	info := &SessionInfo{SessionID: d.SessionID, ResourceURL: d.ResourceURL}
	if d.DesktopInfo != nil {
		info.AppID = d.DesktopInfo.AppID
		info.AuthCode = d.DesktopInfo.AuthCode
		info.ConnectionProperties = d.DesktopInfo.ConnectionProperties
		info.ResourceID = d.DesktopInfo.ResourceID
		info.ResourceType = d.DesktopInfo.ResourceType
		info.Ticket = d.DesktopInfo.Ticket
	}
	return info
}

func linkResultFromAPI(requestID string, d *apis.URLData) *LinkResult {
	r := &LinkResult{RequestID: requestID, URL: d.URL}
	if d.ExpireTime != nil {
		r.ExpireTime = *d.ExpireTime
	}
	return r
}

func derefInt32(p *int32) int32 {
	if p == nil {
		return 0
	}
	return *p
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
