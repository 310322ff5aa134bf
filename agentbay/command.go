package agentbay

import (
	"context"
	"time"

	"github.com/yuebing-yb/wuying-agentbay-sdk-sub000/internal/mcptools"
)

// DefaultCommandTimeout 是命令执行的默认超时时间。
const DefaultCommandTimeout = time.Second

// DefaultCodeTimeout 是代码执行的默认超时时间。
const DefaultCodeTimeout = 300 * time.Second

// 支持的代码语言。
const (
	LanguagePython     = "python"
	LanguageJavaScript = "javascript"
)

// CommandResult 是命令或代码执行的结果。
type CommandResult struct {
	RequestID string
	Output    string
}

// Command 在会话内执行 shell 命令。
type Command struct {
	session *Session
}

// ExecuteCommand 执行命令。timeout <= 0 时使用 DefaultCommandTimeout。
func (c *Command) ExecuteCommand(ctx context.Context, command string, timeout time.Duration) (*CommandResult, error) {
	if command == "" {
		return nil, invalidParameter("command is required")
	}
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}
	result, err := c.session.callTool(ctx, mcptools.Shell, map[string]interface{}{
		"command":    command,
		"timeout_ms": timeout.Milliseconds(),
	})
	if err != nil {
		return nil, err
	}
	return &CommandResult{RequestID: result.RequestID, Output: result.Data}, nil
}

// Code 在会话内执行代码。
type Code struct {
	session *Session
}

// RunCode 执行代码。language 为 python 或 javascript，timeout <= 0 时使用 DefaultCodeTimeout。
func (c *Code) RunCode(ctx context.Context, code, language string, timeout time.Duration) (*CommandResult, error) {
	if code == "" {
		return nil, invalidParameter("code is required")
	}
	if language != LanguagePython && language != LanguageJavaScript {
		return nil, invalidParameter("unsupported language %q, must be %q or %q", language, LanguagePython, LanguageJavaScript)
	}
	if timeout <= 0 {
		timeout = DefaultCodeTimeout
	}
	result, err := c.session.callTool(ctx, mcptools.RunCode, map[string]interface{}{
		"code":      code,
		"language":  language,
		"timeout_s": int64(timeout / time.Second),
	})
	if err != nil {
		return nil, err
	}
	return &CommandResult{RequestID: result.RequestID, Output: result.Data}, nil
}
