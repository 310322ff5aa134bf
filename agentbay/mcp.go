package agentbay

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/yuebing-yb/wuying-agentbay-sdk-sub000/agentbay/apis"
)

// DefaultImageID 是未指定镜像时查询工具列表使用的镜像。
const DefaultImageID = "linux_latest"

// toolCacheTTL 是工具列表缓存的有效期。
const toolCacheTTL = 30 * time.Minute

// McpTool 描述会话镜像提供的一个 MCP 工具。
type McpTool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema,omitempty"`
	Server      string                 `json:"server"`
	Tool        string                 `json:"tool"`
}

// McpToolsResult 是 ListMcpTools 的结果。
type McpToolsResult struct {
	RequestID string
	Tools     []McpTool
}

// ToolResult 是一次 MCP 工具调用的结果。
type ToolResult struct {
	RequestID string
	// Data 是结果中所有 text 内容按换行拼接后的文本。
	Data string
	// Raw 是服务端返回的原始结果。
	Raw json.RawMessage
}

// toolContent 是工具结果中的一段内容。
type toolContent struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
	Data string `json:"data,omitempty"`
}

// toolCallResult 是 MCP 工具调用结果的通用结构。
type toolCallResult struct {
	Content []toolContent `json:"content"`
	IsError bool          `json:"isError"`
}

func (r *toolCallResult) text() string {
	texts := make([]string, 0, len(r.Content))
	for _, c := range r.Content {
		if c.Type == "" || c.Type == "text" {
			texts = append(texts, c.Text)
		}
	}
	return strings.Join(texts, "\n")
}

func parseToolList(data []byte) ([]McpTool, error) {
	data = unquoteJSON(data)
	if len(data) == 0 {
		return nil, nil
	}
	var tools []McpTool
	if err := json.Unmarshal(data, &tools); err != nil {
		return nil, fmt.Errorf("decode tool list: %w", err)
	}
	return tools, nil
}

// unquoteJSON 处理以 JSON 字符串形式嵌套返回的 JSON 数据。
func unquoteJSON(data []byte) []byte {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var inner string
		if json.Unmarshal([]byte(trimmed), &inner) == nil {
			return []byte(inner)
		}
	}
	if trimmed == "null" {
		return nil
	}
	return []byte(trimmed)
}

// encodeToolArgs 把任意参数规范化为 google.protobuf.Struct 后编码为 JSON。
func encodeToolArgs(args interface{}) (string, error) {
	if args == nil {
		return "{}", nil
	}
	buf, err := json.Marshal(args)
	if err != nil {
		return "", fmt.Errorf("encode tool args: %w", err)
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(buf, &fields); err != nil {
		return "", invalidParameter("tool args must be a JSON object: %v", err)
	}
	st, err := structpb.NewStruct(fields)
	if err != nil {
		return "", fmt.Errorf("encode tool args: %w", err)
	}
	out, err := protojson.Marshal(st)
	if err != nil {
		return "", fmt.Errorf("encode tool args: %w", err)
	}
	return string(out), nil
}

// ListMcpTools 返回会话镜像提供的工具列表，结果按镜像缓存。
func (s *Session) ListMcpTools(ctx context.Context) (*McpToolsResult, error) {
	imageID := s.imageID
	if imageID == "" {
		imageID = DefaultImageID
	}

	type cached struct {
		RequestID string          `json:"requestId"`
		Tools     json.RawMessage `json:"tools"`
	}
	// 合并的请求共享同一次拉取，不随首个调用方取消
	fetchCtx := context.WithoutCancel(ctx)
	value, err := s.client.tools.Get(imageID, func() ([]byte, error) {
		resp, err := s.client.api.ListMcpToolsWithResponse(fetchCtx, &apis.ListMcpToolsRequest{ImageID: imageID})
		if err != nil {
			return nil, err
		}
		envelope, err := envelopeOf(resp)
		if err != nil {
			return nil, err
		}
		s.client.logger.Debug("list mcp tools", "image_id", imageID, "request_id", envelope.RequestID)
		tools := unquoteJSON([]byte(envelope.Data))
		if len(tools) == 0 {
			tools = []byte("[]")
		}
		return json.Marshal(cached{RequestID: envelope.RequestID, Tools: tools})
	})
	if err != nil {
		return nil, err
	}

	var c cached
	if err := json.Unmarshal(value, &c); err != nil {
		return nil, fmt.Errorf("decode cached tool list: %w", err)
	}
	tools, err := parseToolList(c.Tools)
	if err != nil {
		return nil, err
	}

	s.toolsMu.Lock()
	s.tools = tools
	s.toolsMu.Unlock()
	return &McpToolsResult{RequestID: c.RequestID, Tools: tools}, nil
}

// findServer 返回提供 toolName 的服务名，必要时先拉取工具列表。
func (s *Session) findServer(ctx context.Context, toolName string) (string, error) {
	s.toolsMu.Lock()
	tools := s.tools
	s.toolsMu.Unlock()
	if len(tools) == 0 {
		result, err := s.ListMcpTools(ctx)
		if err != nil {
			return "", err
		}
		tools = result.Tools
	}
	for _, t := range tools {
		if t.Name == toolName {
			return t.Server, nil
		}
	}
	return "", invalidParameter("server not found for tool %s", toolName)
}

// CallMcpTool 调用会话中的 MCP 工具。
// VPC 会话直连会话网卡调用，其余经 API 转发。工具返回 isError 时返回 *ToolError。
func (s *Session) CallMcpTool(ctx context.Context, name string, args interface{}) (*ToolResult, error) {
	if name == "" {
		return nil, invalidParameter("tool name is required")
	}
	encoded, err := encodeToolArgs(args)
	if err != nil {
		return nil, err
	}
	if s.vpc {
		return s.callToolVPC(ctx, name, encoded)
	}
	return s.callToolAPI(ctx, name, encoded)
}

func (s *Session) callToolAPI(ctx context.Context, name, args string) (*ToolResult, error) {
	resp, err := s.client.api.CallMcpToolWithResponse(ctx, &apis.CallMcpToolRequest{
		SessionID: s.sessionID,
		Name:      name,
		Args:      args,
	})
	if err != nil {
		return nil, err
	}
	envelope, err := envelopeOf(resp)
	if err != nil {
		return nil, fmt.Errorf("call tool %s: %w", name, err)
	}
	s.client.logger.Debug("call mcp tool", "session_id", s.sessionID, "tool", name, "request_id", envelope.RequestID)

	raw := unquoteJSON(envelope.Data)
	var result toolCallResult
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &result); err != nil {
			return nil, fmt.Errorf("decode result of tool %s: %w", name, err)
		}
	}
	return toolResult(name, envelope.RequestID, raw, &result)
}

func toolResult(name, requestID string, raw json.RawMessage, result *toolCallResult) (*ToolResult, error) {
	text := result.text()
	if result.IsError {
		return nil, &ToolError{Tool: name, RequestID: requestID, Message: text}
	}
	return &ToolResult{RequestID: requestID, Data: text, Raw: raw}, nil
}

// callTool 调用工具并返回文本结果，供各子服务使用。
func (s *Session) callTool(ctx context.Context, name string, args interface{}) (*ToolResult, error) {
	return s.CallMcpTool(ctx, name, args)
}
