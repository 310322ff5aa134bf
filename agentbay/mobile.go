package agentbay

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/yuebing-yb/wuying-agentbay-sdk-sub000/agentbay/apis"
	"github.com/yuebing-yb/wuying-agentbay-sdk-sub000/internal/mcptools"
)

// InstalledApp 是已安装的应用。
type InstalledApp struct {
	Name          string `json:"name"`
	StartCmd      string `json:"start_cmd"`
	StopCmd       string `json:"stop_cmd,omitempty"`
	WorkDirectory string `json:"work_directory,omitempty"`
}

// InstalledAppsResult 是获取已安装应用的结果。
type InstalledAppsResult struct {
	RequestID string
	Apps      []InstalledApp
}

// Process 是启动应用后产生的进程。
type Process struct {
	PName   string `json:"pname"`
	PID     int    `json:"pid"`
	CmdLine string `json:"cmdline,omitempty"`
}

// ProcessListResult 是启动应用的结果。
type ProcessListResult struct {
	RequestID string
	Processes []Process
}

// Mobile 提供移动端会话的操作。
type Mobile struct {
	session *Session
	ui      *UI
}

// Tap 点击屏幕坐标。
func (m *Mobile) Tap(ctx context.Context, x, y int) (*OperationResult, error) {
	return callOperation(ctx, m.session, mcptools.Tap, map[string]interface{}{"x": x, "y": y})
}

// Swipe 从 (startX, startY) 滑动到 (endX, endY)。
func (m *Mobile) Swipe(ctx context.Context, startX, startY, endX, endY int, duration time.Duration) (*OperationResult, error) {
	return m.ui.Swipe(ctx, startX, startY, endX, endY, duration)
}

// InputText 输入文本。
func (m *Mobile) InputText(ctx context.Context, text string) (*OperationResult, error) {
	return m.ui.InputText(ctx, text)
}

// SendKey 发送按键。
func (m *Mobile) SendKey(ctx context.Context, key int) (*OperationResult, error) {
	return m.ui.SendKey(ctx, key)
}

// GetClickableUIElements 返回可点击的 UI 元素。
func (m *Mobile) GetClickableUIElements(ctx context.Context, timeout time.Duration) (*UIElementsResult, error) {
	return m.ui.GetClickableUIElements(ctx, timeout)
}

// GetAllUIElements 返回全部 UI 元素。
func (m *Mobile) GetAllUIElements(ctx context.Context, timeout time.Duration) (*UIElementsResult, error) {
	return m.ui.GetAllUIElements(ctx, timeout)
}

// GetInstalledApps 返回已安装应用。
func (m *Mobile) GetInstalledApps(ctx context.Context, startMenu, desktop, ignoreSystemApps bool) (*InstalledAppsResult, error) {
	result, err := m.session.callTool(ctx, mcptools.GetInstalledApps, map[string]interface{}{
		"start_menu":         startMenu,
		"desktop":            desktop,
		"ignore_system_apps": ignoreSystemApps,
	})
	if err != nil {
		return nil, err
	}
	var apps []InstalledApp
	if result.Data != "" {
		if err := json.Unmarshal([]byte(result.Data), &apps); err != nil {
			return nil, fmt.Errorf("decode installed apps: %w", err)
		}
	}
	return &InstalledAppsResult{RequestID: result.RequestID, Apps: apps}, nil
}

// StartApp 启动应用。activity 为空时使用应用默认入口。
func (m *Mobile) StartApp(ctx context.Context, startCmd, workDirectory, activity string) (*ProcessListResult, error) {
	if startCmd == "" {
		return nil, invalidParameter("start command is required")
	}
	args := map[string]interface{}{"start_cmd": startCmd}
	if workDirectory != "" {
		args["work_directory"] = workDirectory
	}
	if activity != "" {
		args["activity"] = activity
	}
	result, err := m.session.callTool(ctx, mcptools.StartApp, args)
	if err != nil {
		return nil, err
	}
	var processes []Process
	if result.Data != "" {
		if err := json.Unmarshal([]byte(result.Data), &processes); err != nil {
			return nil, fmt.Errorf("decode processes: %w", err)
		}
	}
	return &ProcessListResult{RequestID: result.RequestID, Processes: processes}, nil
}

// StopAppByCmd 通过命令停止应用。
func (m *Mobile) StopAppByCmd(ctx context.Context, stopCmd string) (*OperationResult, error) {
	if stopCmd == "" {
		return nil, invalidParameter("stop command is required")
	}
	return callOperation(ctx, m.session, mcptools.StopAppByCmd, map[string]interface{}{"stop_cmd": stopCmd})
}

// Screenshot 截屏。
func (m *Mobile) Screenshot(ctx context.Context) (*ScreenshotResult, error) {
	return screenshot(ctx, m.session)
}

// GetADBURL 返回 ADB 连接地址，adbkeyPub 为本地 ADB 公钥。
func (m *Mobile) GetADBURL(ctx context.Context, adbkeyPub string) (*LinkResult, error) {
	if adbkeyPub == "" {
		return nil, invalidParameter("adbkey_pub is required")
	}
	option, err := json.Marshal(map[string]string{"adbkey_pub": adbkeyPub})
	if err != nil {
		return nil, err
	}
	resp, err := m.session.client.api.GetAdbLinkWithResponse(ctx, &apis.GetAdbLinkRequest{
		SessionID: m.session.sessionID,
		Option:    string(option),
	})
	if err != nil {
		return nil, err
	}
	envelope, err := envelopeOf(resp)
	if err != nil {
		return nil, err
	}
	return linkResultFromAPI(envelope.RequestID, &envelope.Data), nil
}
