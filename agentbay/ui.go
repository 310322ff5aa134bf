package agentbay

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/yuebing-yb/wuying-agentbay-sdk-sub000/internal/mcptools"
)

// Android 按键码。
const (
	KeyCodeHome       = 3
	KeyCodeBack       = 4
	KeyCodeVolumeUp   = 24
	KeyCodeVolumeDown = 25
	KeyCodePower      = 26
	KeyCodeMenu       = 82
)

// 鼠标按键。
const (
	MouseButtonLeft   = "left"
	MouseButtonRight  = "right"
	MouseButtonMiddle = "middle"
)

// DefaultUITimeout 是获取 UI 元素的默认超时时间。
const DefaultUITimeout = 2 * time.Second

// UIElement 是一个 UI 元素节点。
type UIElement struct {
	Bounds      string      `json:"bounds"`
	ClassName   string      `json:"className"`
	Text        string      `json:"text"`
	Type        string      `json:"type"`
	ResourceID  string      `json:"resourceId"`
	Index       int         `json:"index"`
	IsParent    bool        `json:"isParent"`
	Children    []UIElement `json:"children,omitempty"`
	Description string      `json:"description,omitempty"`
}

// UIElementsResult 是获取 UI 元素的结果。
type UIElementsResult struct {
	RequestID string
	Elements  []UIElement
}

// ScreenshotResult 是截屏的结果，URL 为截图的访问地址。
type ScreenshotResult struct {
	RequestID string
	URL       string
}

// UI 提供基于坐标和按键的 UI 自动化操作。
type UI struct {
	session *Session
}

// GetClickableUIElements 返回可点击的 UI 元素。timeout <= 0 时使用 DefaultUITimeout。
func (u *UI) GetClickableUIElements(ctx context.Context, timeout time.Duration) (*UIElementsResult, error) {
	return u.uiElements(ctx, mcptools.GetClickableUiElements, timeout)
}

// GetAllUIElements 返回全部 UI 元素。timeout <= 0 时使用 DefaultUITimeout。
func (u *UI) GetAllUIElements(ctx context.Context, timeout time.Duration) (*UIElementsResult, error) {
	return u.uiElements(ctx, mcptools.GetAllUiElements, timeout)
}

func (u *UI) uiElements(ctx context.Context, tool string, timeout time.Duration) (*UIElementsResult, error) {
	if timeout <= 0 {
		timeout = DefaultUITimeout
	}
	result, err := u.session.callTool(ctx, tool, map[string]interface{}{"timeout_ms": timeout.Milliseconds()})
	if err != nil {
		return nil, err
	}
	var elements []UIElement
	if result.Data != "" {
		if err := json.Unmarshal([]byte(result.Data), &elements); err != nil {
			return nil, fmt.Errorf("decode ui elements: %w", err)
		}
	}
	return &UIElementsResult{RequestID: result.RequestID, Elements: elements}, nil
}

// SendKey 发送按键，key 为 KeyCode 常量之一。
func (u *UI) SendKey(ctx context.Context, key int) (*OperationResult, error) {
	return u.operation(ctx, mcptools.SendKey, map[string]interface{}{"key": key})
}

// InputText 在当前焦点处输入文本。
func (u *UI) InputText(ctx context.Context, text string) (*OperationResult, error) {
	return u.operation(ctx, mcptools.InputText, map[string]interface{}{"text": text})
}

// Swipe 从 (startX, startY) 滑动到 (endX, endY)。
func (u *UI) Swipe(ctx context.Context, startX, startY, endX, endY int, duration time.Duration) (*OperationResult, error) {
	if duration <= 0 {
		duration = 300 * time.Millisecond
	}
	return u.operation(ctx, mcptools.Swipe, map[string]interface{}{
		"start_x":     startX,
		"start_y":     startY,
		"end_x":       endX,
		"end_y":       endY,
		"duration_ms": duration.Milliseconds(),
	})
}

// Click 点击坐标，button 为空时为左键。
func (u *UI) Click(ctx context.Context, x, y int, button string) (*OperationResult, error) {
	if button == "" {
		button = MouseButtonLeft
	}
	if err := validateMouseButton(button); err != nil {
		return nil, err
	}
	return u.operation(ctx, mcptools.Click, map[string]interface{}{"x": x, "y": y, "button": button})
}

// Screenshot 截屏。
func (u *UI) Screenshot(ctx context.Context) (*ScreenshotResult, error) {
	return screenshot(ctx, u.session)
}

func (u *UI) operation(ctx context.Context, tool string, args map[string]interface{}) (*OperationResult, error) {
	return callOperation(ctx, u.session, tool, args)
}

func callOperation(ctx context.Context, s *Session, tool string, args map[string]interface{}) (*OperationResult, error) {
	result, err := s.callTool(ctx, tool, args)
	if err != nil {
		return nil, err
	}
	return &OperationResult{RequestID: result.RequestID}, nil
}

func screenshot(ctx context.Context, s *Session) (*ScreenshotResult, error) {
	result, err := s.callTool(ctx, mcptools.SystemScreenshot, nil)
	if err != nil {
		return nil, err
	}
	return &ScreenshotResult{RequestID: result.RequestID, URL: result.Data}, nil
}

func validateMouseButton(button string) error {
	switch button {
	case MouseButtonLeft, MouseButtonRight, MouseButtonMiddle, "double_left":
		return nil
	}
	return invalidParameter("invalid mouse button %q", button)
}
