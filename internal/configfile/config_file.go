package configfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/yuebing-yb/wuying-agentbay-sdk-sub000/internal/env"
)

// Profile 是配置文件中的一个 profile。
type Profile struct {
	APIKey        string `toml:"api_key" yaml:"api_key"`
	Endpoint      string `toml:"endpoint" yaml:"endpoint"`
	TimeoutMs     int64  `toml:"timeout_ms" yaml:"timeout_ms"`
	ToolCacheFile string `toml:"tool_cache_file" yaml:"tool_cache_file"`
}

var (
	profileConfigs      map[string]*Profile
	profileConfigsError error
	profileConfigsOnce  sync.Once

	ErrUnsupportedFormat = errors.New("unsupported config file format")
)

// ProfileFromConfigFile 返回当前选中的 profile。
// 配置文件不存在时返回 nil, nil。
func ProfileFromConfigFile() (*Profile, error) {
	if err := load(); err != nil {
		return nil, err
	}
	profileName := env.ProfileFromEnvironment()
	if profileName == "" {
		profileName = "default"
	}
	profile, ok := profileConfigs[profileName]
	if !ok || profile == nil {
		return nil, nil
	}
	return profile, nil
}

func load() error {
	profileConfigsOnce.Do(func() {
		profileConfigsError = _load()
	})
	return profileConfigsError
}

func _load() error {
	configFilePath := env.ConfigFileFromEnvironment()
	explicit := configFilePath != ""
	if !explicit {
		configFilePath = getDefaultConfigFilePath()
	}
	configs, err := decodeFile(configFilePath)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	profileConfigs = configs
	return nil
}

func decodeFile(path string) (map[string]*Profile, error) {
	configs := make(map[string]*Profile)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", "":
		if _, err := toml.DecodeFile(path, &configs); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err = yaml.Unmarshal(data, &configs); err != nil {
			return nil, err
		}
	default:
		return nil, ErrUnsupportedFormat
	}
	return configs, nil
}

func getDefaultConfigFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}
	return filepath.Join(homeDir, ".agentbay", "config.toml")
}
