package agentbay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/yuebing-yb/wuying-agentbay-sdk-sub000/agentbay/apis"
	"github.com/yuebing-yb/wuying-agentbay-sdk-sub000/internal/configfile"
	"github.com/yuebing-yb/wuying-agentbay-sdk-sub000/internal/env"
	"github.com/yuebing-yb/wuying-agentbay-sdk-sub000/internal/toolcache"
)

// Version 是 SDK 的版本号。
const Version = "0.4.0"

// DefaultEndpoint 是 AgentBay API 的默认服务地址。
const DefaultEndpoint = "wuyingai.cn-shanghai.aliyuncs.com"

// DefaultTimeout 是 HTTP 请求的默认超时时间。
const DefaultTimeout = 60 * time.Second

// ErrMissingAPIKey 表示未能从配置、环境变量或配置文件中获取 API Key。
var ErrMissingAPIKey = errors.New("agentbay: api key is required, set Config.APIKey or AGENTBAY_API_KEY")

// Config 是 AgentBay 客户端的配置。
// 未设置的字段依次从环境变量和配置文件 profile 中读取。
type Config struct {
	// APIKey 是用于身份认证的 API 密钥（必填）。
	APIKey string

	// Endpoint 是 API 服务地址（可选，默认值：DefaultEndpoint）。
	// 未指定协议时使用 https。
	Endpoint string

	// Timeout 是单次 HTTP 请求的超时时间（可选，默认值：DefaultTimeout）。
	Timeout time.Duration

	// HTTPClient 自定义 HTTP 客户端（可选）。设置后 Timeout 不生效。
	HTTPClient *http.Client

	// Logger 用于输出调试日志（可选，默认丢弃）。
	Logger *slog.Logger

	// ToolCacheFile 是 MCP 工具列表的持久化缓存文件（可选，默认仅缓存在内存）。
	ToolCacheFile string
}

// Client 是 AgentBay SDK 的高级客户端。
type Client struct {
	config *Config
	api    apis.ClientWithResponsesInterface
	logger *slog.Logger
	tools  *toolcache.Cache

	contextsOnce sync.Once
	contexts     *ContextService
}

// NewClient 创建一个新的 AgentBay 客户端。
func NewClient(config *Config) (*Client, error) {
	cfg, err := resolveConfig(config)
	if err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	httpClient = withUserAgent(httpClient)

	api, err := apis.NewClientWithResponses(cfg.Endpoint,
		apis.WithHTTPClient(httpClient),
		apis.WithRequestEditorFn(apiKeyEditor(cfg.APIKey)),
	)
	if err != nil {
		return nil, err
	}

	var tools *toolcache.Cache
	if cfg.ToolCacheFile != "" {
		tools, err = toolcache.NewPersistent(cfg.ToolCacheFile, toolCacheTTL, func(err error) {
			cfg.Logger.Warn("tool cache", "error", err)
		})
		if err != nil {
			return nil, fmt.Errorf("open tool cache: %w", err)
		}
	} else {
		tools = toolcache.New(toolCacheTTL)
	}

	return newClient(cfg, api, tools), nil
}

func newClient(cfg *Config, api apis.ClientWithResponsesInterface, tools *toolcache.Cache) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if tools == nil {
		tools = toolcache.New(toolCacheTTL)
	}
	return &Client{config: cfg, api: api, logger: logger, tools: tools}
}

// resolveConfig 合并显式配置、环境变量与配置文件，返回副本。
func resolveConfig(config *Config) (*Config, error) {
	cfg := Config{}
	if config != nil {
		cfg = *config
	}

	profile, err := configfile.ProfileFromConfigFile()
	if err != nil {
		return nil, fmt.Errorf("load config file: %w", err)
	}
	if profile == nil {
		profile = &configfile.Profile{}
	}

	if cfg.APIKey == "" {
		cfg.APIKey = firstNonEmpty(env.APIKeyFromEnvironment(), profile.APIKey)
	}
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = firstNonEmpty(env.EndpointFromEnvironment(), profile.Endpoint, DefaultEndpoint)
	}
	if !strings.Contains(cfg.Endpoint, "://") {
		cfg.Endpoint = "https://" + cfg.Endpoint
	}
	if cfg.Timeout <= 0 {
		if timeout, ok := env.TimeoutFromEnvironment(); ok {
			cfg.Timeout = timeout
		} else if profile.TimeoutMs > 0 {
			cfg.Timeout = time.Duration(profile.TimeoutMs) * time.Millisecond
		} else {
			cfg.Timeout = DefaultTimeout
		}
	}
	if cfg.ToolCacheFile == "" {
		cfg.ToolCacheFile = firstNonEmpty(env.ToolCacheFileFromEnvironment(), profile.ToolCacheFile)
	}
	if cfg.Logger == nil {
		if env.DebugFromEnvironment() {
			cfg.Logger = slog.Default()
		} else {
			cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		}
	}
	return &cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// apiKeyEditor 返回一个 RequestEditorFn，用于注入 Bearer 认证头。
func apiKeyEditor(apiKey string) apis.RequestEditorFn {
	return func(ctx context.Context, req *http.Request) error {
		req.Header.Set("Authorization", "Bearer "+apiKey)
		return nil
	}
}

type userAgentTransport struct {
	agent string
	rt    http.RoundTripper
}

func (u *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r2 := req.Clone(req.Context())
	r2.Header.Set("User-Agent", u.agent)
	return u.rt.RoundTrip(r2)
}

// withUserAgent 返回一个在每个请求上附加 SDK User-Agent 的浅拷贝客户端。
func withUserAgent(c *http.Client) *http.Client {
	rt := c.Transport
	if rt == nil {
		rt = http.DefaultTransport
	}
	clone := *c
	clone.Transport = &userAgentTransport{
		agent: fmt.Sprintf("AgentBay-Go-SDK/%s (%s; %s)", Version, runtime.GOOS, runtime.GOARCH),
		rt:    rt,
	}
	return &clone
}

// API 返回底层 API 客户端，用于直接访问生成的 API 方法。
func (c *Client) API() apis.ClientWithResponsesInterface {
	return c.api
}

// Context 返回上下文（持久化存储）管理服务。
func (c *Client) Context() *ContextService {
	c.contextsOnce.Do(func() {
		c.contexts = &ContextService{client: c}
	})
	return c.contexts
}

// Endpoint 返回客户端实际使用的服务地址。
func (c *Client) Endpoint() string {
	return c.config.Endpoint
}

func (c *Client) httpClient() *http.Client {
	if c.config.HTTPClient != nil {
		return c.config.HTTPClient
	}
	return &http.Client{Timeout: c.config.Timeout}
}
