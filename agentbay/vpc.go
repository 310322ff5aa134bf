package agentbay

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"time"

	"connectrpc.com/connect"
)

// vpcCallToolProcedure 是会话网卡上工具调用服务的过程名。
// 该过程名及 vpcCallRequest/vpcCallResponse 的 JSON 结构是 SDK 约定的接口，
// 并非由 API 文档定义；会话内服务的实际接口不同时需同步调整。
const vpcCallToolProcedure = "/agentbay.mcp.v1.ToolService/CallTool"

// vpcCallRequest 是 VPC 直连工具调用的请求。
type vpcCallRequest struct {
	Server    string `json:"server"`
	Tool      string `json:"tool"`
	Args      string `json:"args"`
	Token     string `json:"token"`
	RequestID string `json:"requestId"`
}

// vpcCallResponse 是 VPC 直连工具调用的响应。
type vpcCallResponse struct {
	Data toolCallResult `json:"data"`
}

// jsonCodec 以普通 JSON 编解码 ConnectRPC 消息，消息类型无需是 protobuf。
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// vpcToolCaller 是 VPC 直连工具调用的客户端。
type vpcToolCaller interface {
	CallUnary(context.Context, *connect.Request[vpcCallRequest]) (*connect.Response[vpcCallResponse], error)
}

// vpcBaseURL 返回会话网卡上工具服务的地址。
func (s *Session) vpcBaseURL() (string, error) {
	if s.networkInterfaceIP == "" || s.httpPort == "" {
		return "", invalidParameter("vpc session %s has no network interface endpoint", s.sessionID)
	}
	return "http://" + net.JoinHostPort(s.networkInterfaceIP, s.httpPort), nil
}

func (s *Session) vpcClient() (vpcToolCaller, error) {
	base, err := s.vpcBaseURL()
	if err != nil {
		return nil, err
	}
	s.vpcOnce.Do(func() {
		s.vpcCaller = connect.NewClient[vpcCallRequest, vpcCallResponse](
			s.client.httpClient(),
			base+vpcCallToolProcedure,
			connect.WithCodec(jsonCodec{}),
		)
	})
	return s.vpcCaller, nil
}

func (s *Session) callToolVPC(ctx context.Context, name, args string) (*ToolResult, error) {
	server, err := s.findServer(ctx, name)
	if err != nil {
		return nil, err
	}
	caller, err := s.vpcClient()
	if err != nil {
		return nil, err
	}

	requestID := "vpc-" + strconv.FormatInt(time.Now().UnixNano(), 36)
	req := connect.NewRequest(&vpcCallRequest{
		Server:    server,
		Tool:      name,
		Args:      args,
		Token:     s.token,
		RequestID: requestID,
	})
	res, err := caller.CallUnary(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("call tool %s via vpc: %w", name, err)
	}
	s.client.logger.Debug("call mcp tool via vpc", "session_id", s.sessionID, "tool", name, "request_id", requestID)

	raw, err := json.Marshal(res.Msg.Data)
	if err != nil {
		return nil, err
	}
	return toolResult(name, requestID, raw, &res.Msg.Data)
}
