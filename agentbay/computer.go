package agentbay

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/yuebing-yb/wuying-agentbay-sdk-sub000/internal/mcptools"
)

// 滚动方向。
const (
	ScrollUp    = "up"
	ScrollDown  = "down"
	ScrollLeft  = "left"
	ScrollRight = "right"
)

// Window 是桌面上的一个窗口。
type Window struct {
	WindowID   int      `json:"window_id"`
	Title      string   `json:"title"`
	AbsoluteX  int      `json:"absolute_upper_left_x,omitempty"`
	AbsoluteY  int      `json:"absolute_upper_left_y,omitempty"`
	Width      int      `json:"width,omitempty"`
	Height     int      `json:"height,omitempty"`
	PID        int      `json:"pid,omitempty"`
	PName      string   `json:"pname,omitempty"`
	ChildNodes []Window `json:"child_windows,omitempty"`
}

// WindowListResult 是列出窗口的结果。
type WindowListResult struct {
	RequestID string
	Windows   []Window
}

// WindowResult 是获取单个窗口的结果。
type WindowResult struct {
	RequestID string
	Window    *Window
}

// CursorPosition 是光标位置。
type CursorPosition struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// CursorResult 是获取光标位置的结果。
type CursorResult struct {
	RequestID string
	Position  CursorPosition
}

// ScreenSize 是屏幕尺寸。
type ScreenSize struct {
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	DPIScalingFactor float64 `json:"dpiScalingFactor,omitempty"`
}

// ScreenSizeResult 是获取屏幕尺寸的结果。
type ScreenSizeResult struct {
	RequestID string
	Size      ScreenSize
}

// Computer 提供桌面会话的鼠标、键盘、屏幕和窗口操作。
type Computer struct {
	session *Session
}

// ClickMouse 在坐标处点击鼠标，button 为空时为左键。
func (c *Computer) ClickMouse(ctx context.Context, x, y int, button string) (*OperationResult, error) {
	if button == "" {
		button = MouseButtonLeft
	}
	if err := validateMouseButton(button); err != nil {
		return nil, err
	}
	return callOperation(ctx, c.session, mcptools.ClickMouse, map[string]interface{}{"x": x, "y": y, "button": button})
}

// MoveMouse 移动鼠标到坐标。
func (c *Computer) MoveMouse(ctx context.Context, x, y int) (*OperationResult, error) {
	return callOperation(ctx, c.session, mcptools.MoveMouse, map[string]interface{}{"x": x, "y": y})
}

// DragMouse 按住 button 从 (fromX, fromY) 拖拽到 (toX, toY)。
func (c *Computer) DragMouse(ctx context.Context, fromX, fromY, toX, toY int, button string) (*OperationResult, error) {
	if button == "" {
		button = MouseButtonLeft
	}
	if button != MouseButtonLeft && button != MouseButtonRight && button != MouseButtonMiddle {
		return nil, invalidParameter("invalid drag button %q", button)
	}
	return callOperation(ctx, c.session, mcptools.DragMouse, map[string]interface{}{
		"from_x": fromX,
		"from_y": fromY,
		"to_x":   toX,
		"to_y":   toY,
		"button": button,
	})
}

// Scroll 在坐标处按方向滚动 amount 次。
func (c *Computer) Scroll(ctx context.Context, x, y int, direction string, amount int) (*OperationResult, error) {
	switch direction {
	case ScrollUp, ScrollDown, ScrollLeft, ScrollRight:
	default:
		return nil, invalidParameter("invalid scroll direction %q", direction)
	}
	if amount <= 0 {
		amount = 1
	}
	return callOperation(ctx, c.session, mcptools.Scroll, map[string]interface{}{
		"x":         x,
		"y":         y,
		"direction": direction,
		"amount":    amount,
	})
}

// GetCursorPosition 返回光标位置。
func (c *Computer) GetCursorPosition(ctx context.Context) (*CursorResult, error) {
	result, err := c.session.callTool(ctx, mcptools.GetCursorPosition, nil)
	if err != nil {
		return nil, err
	}
	out := &CursorResult{RequestID: result.RequestID}
	if err := json.Unmarshal([]byte(result.Data), &out.Position); err != nil {
		return nil, fmt.Errorf("decode cursor position: %w", err)
	}
	return out, nil
}

// InputText 输入文本。
func (c *Computer) InputText(ctx context.Context, text string) (*OperationResult, error) {
	return callOperation(ctx, c.session, mcptools.InputText, map[string]interface{}{"text": text})
}

// PressKeys 按下组合键，hold 为 true 时保持按下直到 ReleaseKeys。
func (c *Computer) PressKeys(ctx context.Context, keys []string, hold bool) (*OperationResult, error) {
	if len(keys) == 0 {
		return nil, invalidParameter("keys cannot be empty")
	}
	return callOperation(ctx, c.session, mcptools.PressKeys, map[string]interface{}{"keys": keys, "hold": hold})
}

// ReleaseKeys 释放按键。
func (c *Computer) ReleaseKeys(ctx context.Context, keys []string) (*OperationResult, error) {
	if len(keys) == 0 {
		return nil, invalidParameter("keys cannot be empty")
	}
	return callOperation(ctx, c.session, mcptools.ReleaseKeys, map[string]interface{}{"keys": keys})
}

// GetScreenSize 返回屏幕尺寸。
func (c *Computer) GetScreenSize(ctx context.Context) (*ScreenSizeResult, error) {
	result, err := c.session.callTool(ctx, mcptools.GetScreenSize, nil)
	if err != nil {
		return nil, err
	}
	out := &ScreenSizeResult{RequestID: result.RequestID}
	if err := json.Unmarshal([]byte(result.Data), &out.Size); err != nil {
		return nil, fmt.Errorf("decode screen size: %w", err)
	}
	return out, nil
}

// Screenshot 截屏。
func (c *Computer) Screenshot(ctx context.Context) (*ScreenshotResult, error) {
	return screenshot(ctx, c.session)
}

// ListRootWindows 列出顶层窗口。timeout <= 0 时使用 3 秒。
func (c *Computer) ListRootWindows(ctx context.Context, timeout time.Duration) (*WindowListResult, error) {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	result, err := c.session.callTool(ctx, mcptools.ListRootWindows, map[string]interface{}{"timeout_ms": timeout.Milliseconds()})
	if err != nil {
		return nil, err
	}
	var windows []Window
	if result.Data != "" {
		if err := json.Unmarshal([]byte(result.Data), &windows); err != nil {
			return nil, fmt.Errorf("decode windows: %w", err)
		}
	}
	return &WindowListResult{RequestID: result.RequestID, Windows: windows}, nil
}

// GetActiveWindow 返回当前活动窗口。
func (c *Computer) GetActiveWindow(ctx context.Context) (*WindowResult, error) {
	result, err := c.session.callTool(ctx, mcptools.GetActiveWindow, nil)
	if err != nil {
		return nil, err
	}
	var window Window
	if err := json.Unmarshal([]byte(result.Data), &window); err != nil {
		return nil, fmt.Errorf("decode window: %w", err)
	}
	return &WindowResult{RequestID: result.RequestID, Window: &window}, nil
}

// ActivateWindow 激活窗口。
func (c *Computer) ActivateWindow(ctx context.Context, windowID int) (*OperationResult, error) {
	return c.windowOperation(ctx, mcptools.ActivateWindow, windowID)
}

// CloseWindow 关闭窗口。
func (c *Computer) CloseWindow(ctx context.Context, windowID int) (*OperationResult, error) {
	return c.windowOperation(ctx, mcptools.CloseWindow, windowID)
}

// MaximizeWindow 最大化窗口。
func (c *Computer) MaximizeWindow(ctx context.Context, windowID int) (*OperationResult, error) {
	return c.windowOperation(ctx, mcptools.MaximizeWindow, windowID)
}

// MinimizeWindow 最小化窗口。
func (c *Computer) MinimizeWindow(ctx context.Context, windowID int) (*OperationResult, error) {
	return c.windowOperation(ctx, mcptools.MinimizeWindow, windowID)
}

// RestoreWindow 还原窗口。
func (c *Computer) RestoreWindow(ctx context.Context, windowID int) (*OperationResult, error) {
	return c.windowOperation(ctx, mcptools.RestoreWindow, windowID)
}

// FullscreenWindow 全屏窗口。
func (c *Computer) FullscreenWindow(ctx context.Context, windowID int) (*OperationResult, error) {
	return c.windowOperation(ctx, mcptools.FullscreenWindow, windowID)
}

// ResizeWindow 调整窗口大小。
func (c *Computer) ResizeWindow(ctx context.Context, windowID, width, height int) (*OperationResult, error) {
	if width <= 0 || height <= 0 {
		return nil, invalidParameter("width and height must be > 0")
	}
	return callOperation(ctx, c.session, mcptools.ResizeWindow, map[string]interface{}{
		"window_id": windowID,
		"width":     width,
		"height":    height,
	})
}

// FocusMode 开关专注模式。
func (c *Computer) FocusMode(ctx context.Context, on bool) (*OperationResult, error) {
	return callOperation(ctx, c.session, mcptools.FocusMode, map[string]interface{}{"on": on})
}

func (c *Computer) windowOperation(ctx context.Context, tool string, windowID int) (*OperationResult, error) {
	return callOperation(ctx, c.session, tool, map[string]interface{}{"window_id": windowID})
}
