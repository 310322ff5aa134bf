package agentbay

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/yuebing-yb/wuying-agentbay-sdk-sub000/agentbay/apis"
)

// ErrBrowserNotInitialized 表示在 Initialize 成功之前请求了浏览器端点。
var ErrBrowserNotInitialized = errors.New("browser is not initialized")

// Viewport 是浏览器视口尺寸。
type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Screen 是浏览器屏幕尺寸。
type Screen struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// BrowserFingerprint 配置指纹生成。
type BrowserFingerprint struct {
	Devices          []string `json:"devices,omitempty" validate:"dive,oneof=desktop mobile"`
	OperatingSystems []string `json:"operatingSystems,omitempty" validate:"dive,oneof=windows macos linux android ios"`
	Locales          []string `json:"locales,omitempty"`
}

// BrowserProxy 配置浏览器代理。
type BrowserProxy struct {
	Type     string `json:"type" validate:"oneof=custom wuying"`
	Server   string `json:"server,omitempty" validate:"required_if=Type custom"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	Strategy string `json:"strategy,omitempty" validate:"omitempty,oneof=restricted polling"`
	PollSize int    `json:"pollsize,omitempty"`
}

// BrowserOption 是初始化浏览器的参数。
type BrowserOption struct {
	UseStealth  bool                `json:"useStealth,omitempty"`
	UserAgent   string              `json:"userAgent,omitempty"`
	Viewport    *Viewport           `json:"viewport,omitempty"`
	Screen      *Screen             `json:"screen,omitempty"`
	Fingerprint *BrowserFingerprint `json:"fingerprint,omitempty"`
	Proxies     []BrowserProxy      `json:"proxies,omitempty" validate:"max=1,dive"`
}

func (o *BrowserOption) toMap() (map[string]interface{}, error) {
	buf, err := json.Marshal(o)
	if err != nil {
		return nil, err
	}
	out := map[string]interface{}{}
	if err = json.Unmarshal(buf, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Browser 管理会话内的浏览器。
type Browser struct {
	session *Session

	mu          sync.Mutex
	initialized bool
	port        int32
	option      *BrowserOption
}

// Initialize 以 option 初始化浏览器，option 为 nil 时使用默认配置。
func (b *Browser) Initialize(ctx context.Context, option *BrowserOption) (bool, error) {
	if option == nil {
		option = &BrowserOption{}
	}
	if err := defaultValidator.Validate(option); err != nil {
		return false, err
	}
	optionMap, err := option.toMap()
	if err != nil {
		return false, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.initialized {
		return true, nil
	}
	resp, err := b.session.client.api.InitBrowserWithResponse(ctx, &apis.InitBrowserRequest{
		SessionID:      b.session.sessionID,
		PersistentPath: BrowserDataPath,
		BrowserOption:  optionMap,
	})
	if err != nil {
		return false, err
	}
	envelope, err := envelopeOf(resp)
	if err != nil {
		return false, err
	}
	b.initialized = true
	b.port = envelope.Data.Port
	b.option = option
	b.session.client.logger.Debug("browser initialized", "session_id", b.session.sessionID, "port", b.port, "request_id", envelope.RequestID)
	return true, nil
}

// IsInitialized 报告浏览器是否已初始化。
func (b *Browser) IsInitialized() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.initialized
}

// Option 返回初始化时使用的配置。
func (b *Browser) Option() *BrowserOption {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.option
}

// EndpointURL 返回浏览器的 CDP 连接地址。
func (b *Browser) EndpointURL(ctx context.Context) (string, error) {
	if !b.IsInitialized() {
		return "", ErrBrowserNotInitialized
	}
	resp, err := b.session.client.api.GetCdpLinkWithResponse(ctx, &apis.GetCdpLinkRequest{SessionID: b.session.sessionID})
	if err != nil {
		return "", err
	}
	envelope, err := envelopeOf(resp)
	if err != nil {
		return "", err
	}
	return envelope.Data.URL, nil
}
