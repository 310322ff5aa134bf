package agentbay

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/yuebing-yb/wuying-agentbay-sdk-sub000/agentbay/apis"
)

// 会话端口转发允许的端口范围。
const (
	minLinkPort = 30100
	maxLinkPort = 30199
)

// Session 表示一个远端会话。
// 持有客户端引用，用于执行生命周期操作和 MCP 工具调用。
type Session struct {
	sessionID   string
	resourceURL string
	imageID     string

	// VPC 会话直连信息
	vpc                bool
	networkInterfaceIP string
	httpPort           string
	token              string

	client *Client

	toolsMu sync.Mutex
	tools   []McpTool

	vpcOnce   sync.Once
	vpcCaller vpcToolCaller

	filesOnce sync.Once
	files     *FileSystem

	commandOnce sync.Once
	command     *Command

	codeOnce sync.Once
	code     *Code

	browserOnce sync.Once
	browser     *Browser

	uiOnce sync.Once
	ui     *UI

	mobileOnce sync.Once
	mobile     *Mobile

	computerOnce sync.Once
	computer     *Computer

	ossOnce sync.Once
	oss     *OSS

	contextOnce sync.Once
	context     *ContextManager
}

// newSessionFromCreate 从 CreateMcpSession 响应创建 Session 实例。
func newSessionFromCreate(c *Client, imageID string, d *apis.CreateMcpSessionData) *Session {
	s := &Session{
		sessionID:          d.SessionID,
		resourceURL:        d.ResourceURL,
		imageID:            imageID,
		vpc:                d.VpcResource,
		networkInterfaceIP: d.NetworkInterfaceIP,
		httpPort:           d.HTTPPort,
		token:              d.Token,
		client:             c,
	}
	if d.ToolList != "" {
		if tools, err := parseToolList([]byte(d.ToolList)); err == nil {
			s.tools = tools
		} else {
			c.logger.Warn("parse tool list", "session_id", d.SessionID, "error", err)
		}
	}
	return s
}

// newSessionFromGet 从 GetSession 响应创建 Session 实例。
func newSessionFromGet(c *Client, d *apis.GetSessionData) *Session {
	return &Session{
		sessionID:          d.SessionID,
		resourceURL:        d.ResourceURL,
		vpc:                d.VpcResource,
		networkInterfaceIP: d.NetworkInterfaceIP,
		httpPort:           d.HTTPPort,
		token:              d.Token,
		client:             c,
	}
}

// NewSession 使用已知的会话 ID 构造 Session，不发起网络请求。
func (c *Client) NewSession(sessionID string) *Session {
	return &Session{sessionID: sessionID, client: c}
}

// ID 返回会话 ID。
func (s *Session) ID() string { return s.sessionID }

// ResourceURL 返回会话的资源访问地址。
func (s *Session) ResourceURL() string { return s.resourceURL }

// ImageID 返回会话的镜像 ID（仅创建时已知）。
func (s *Session) ImageID() string { return s.imageID }

// IsVpc 报告会话是否为 VPC 会话。
func (s *Session) IsVpc() bool { return s.vpc }

// Client 返回会话所属的客户端。
func (s *Session) Client() *Client { return s.client }

// Delete 释放会话。syncContext 为 true 时先上传上下文并等待上传任务结束。
func (s *Session) Delete(ctx context.Context, syncContext bool, opts ...PollOption) (*DeleteResult, error) {
	if syncContext {
		if _, err := s.Context().SyncAndWait(ctx, []ContextSyncOption{WithSyncMode(SyncModeUpload)}, opts...); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.client.logger.Warn("sync context before release", "session_id", s.sessionID, "error", err)
		}
	}

	resp, err := s.client.api.ReleaseMcpSessionWithResponse(ctx, &apis.ReleaseMcpSessionRequest{SessionID: s.sessionID})
	if err != nil {
		return nil, err
	}
	envelope, err := envelopeOf(resp)
	if err != nil {
		return nil, fmt.Errorf("release session %s: %w", s.sessionID, err)
	}
	s.client.logger.Debug("session released", "session_id", s.sessionID, "request_id", envelope.RequestID)
	return &DeleteResult{RequestID: envelope.RequestID, SessionID: s.sessionID}, nil
}

// SetLabels 设置会话标签。
func (s *Session) SetLabels(ctx context.Context, labels map[string]string) (*OperationResult, error) {
	if err := validateLabels(labels); err != nil {
		return nil, err
	}
	resp, err := s.client.api.SetLabelWithResponse(ctx, &apis.SetLabelRequest{SessionID: s.sessionID, Labels: labels})
	if err != nil {
		return nil, err
	}
	envelope, err := envelopeOf(resp)
	if err != nil {
		return nil, err
	}
	return &OperationResult{RequestID: envelope.RequestID}, nil
}

// GetLabels 获取会话标签。
func (s *Session) GetLabels(ctx context.Context) (*LabelResult, error) {
	resp, err := s.client.api.GetLabelWithResponse(ctx, &apis.GetLabelRequest{SessionID: s.sessionID})
	if err != nil {
		return nil, err
	}
	envelope, err := envelopeOf(resp)
	if err != nil {
		return nil, err
	}
	labels := map[string]string{}
	if envelope.Data.Labels != "" {
		if err := json.Unmarshal([]byte(envelope.Data.Labels), &labels); err != nil {
			return nil, fmt.Errorf("decode labels: %w", err)
		}
	}
	return &LabelResult{RequestID: envelope.RequestID, Labels: labels}, nil
}

// Info 返回会话的资源信息。
func (s *Session) Info(ctx context.Context) (*InfoResult, error) {
	resp, err := s.client.api.GetMcpResourceWithResponse(ctx, &apis.GetMcpResourceRequest{SessionID: s.sessionID})
	if err != nil {
		return nil, err
	}
	envelope, err := envelopeOf(resp)
	if err != nil {
		return nil, err
	}
	if envelope.Data.ResourceURL != "" {
		s.resourceURL = envelope.Data.ResourceURL
	}
	return &InfoResult{RequestID: envelope.RequestID, Info: sessionInfoFromAPI(&envelope.Data)}, nil
}

// GetLink 返回会话的访问链接。protocolType 为空时使用服务端默认值，
// port 为 0 时不指定端口，否则必须位于 [30100, 30199]。
func (s *Session) GetLink(ctx context.Context, protocolType string, port int32) (*LinkResult, error) {
	req := &apis.GetLinkRequest{SessionID: s.sessionID}
	if protocolType != "" {
		req.ProtocolType = &protocolType
	}
	if port != 0 {
		if port < minLinkPort || port > maxLinkPort {
			return nil, invalidParameter("invalid port value: %d, port must be in range [%d, %d]", port, minLinkPort, maxLinkPort)
		}
		req.Port = &port
	}
	resp, err := s.client.api.GetLinkWithResponse(ctx, req)
	if err != nil {
		return nil, err
	}
	envelope, err := envelopeOf(resp)
	if err != nil {
		return nil, err
	}
	return linkResultFromAPI(envelope.RequestID, &envelope.Data), nil
}

// FileSystem 返回文件系统操作接口。
func (s *Session) FileSystem() *FileSystem {
	s.filesOnce.Do(func() { s.files = &FileSystem{session: s} })
	return s.files
}

// Command 返回命令执行接口。
func (s *Session) Command() *Command {
	s.commandOnce.Do(func() { s.command = &Command{session: s} })
	return s.command
}

// Code 返回代码执行接口。
func (s *Session) Code() *Code {
	s.codeOnce.Do(func() { s.code = &Code{session: s} })
	return s.code
}

// Browser 返回浏览器接口。
func (s *Session) Browser() *Browser {
	s.browserOnce.Do(func() { s.browser = &Browser{session: s} })
	return s.browser
}

// UI 返回 UI 自动化接口。
func (s *Session) UI() *UI {
	s.uiOnce.Do(func() { s.ui = &UI{session: s} })
	return s.ui
}

// Mobile 返回移动端操作接口。
func (s *Session) Mobile() *Mobile {
	s.mobileOnce.Do(func() { s.mobile = &Mobile{session: s, ui: s.UI()} })
	return s.mobile
}

// Computer 返回桌面操作接口。
func (s *Session) Computer() *Computer {
	s.computerOnce.Do(func() { s.computer = &Computer{session: s} })
	return s.computer
}

// OSS 返回对象存储操作接口。
func (s *Session) OSS() *OSS {
	s.ossOnce.Do(func() { s.oss = &OSS{session: s} })
	return s.oss
}

// Context 返回会话内的上下文同步管理器。
func (s *Session) Context() *ContextManager {
	s.contextOnce.Do(func() { s.context = &ContextManager{session: s} })
	return s.context
}
