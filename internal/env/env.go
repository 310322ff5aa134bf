package env

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	environmentVariableNameAPIKey        = "AGENTBAY_API_KEY"
	environmentVariableNameEndpoint      = "AGENTBAY_ENDPOINT"
	environmentVariableNameTimeoutMs     = "AGENTBAY_TIMEOUT_MS"
	environmentVariableNameConfigFile    = "AGENTBAY_CONFIG_FILE"
	environmentVariableNameProfile       = "AGENTBAY_PROFILE"
	environmentVariableNameToolCacheFile = "AGENTBAY_TOOL_CACHE_FILE"
	environmentVariableNameDebug         = "AGENTBAY_DEBUG"
)

func APIKeyFromEnvironment() string {
	return strings.TrimSpace(os.Getenv(environmentVariableNameAPIKey))
}

func EndpointFromEnvironment() string {
	return strings.TrimSpace(os.Getenv(environmentVariableNameEndpoint))
}

// TimeoutFromEnvironment returns the request timeout and whether it was set.
// Non-positive or malformed values are treated as unset.
func TimeoutFromEnvironment() (time.Duration, bool) {
	value := strings.TrimSpace(os.Getenv(environmentVariableNameTimeoutMs))
	if value == "" {
		return 0, false
	}
	ms, err := strconv.ParseInt(value, 10, 64)
	if err != nil || ms <= 0 {
		return 0, false
	}
	return time.Duration(ms) * time.Millisecond, true
}

func ConfigFileFromEnvironment() string {
	return os.Getenv(environmentVariableNameConfigFile)
}

func ProfileFromEnvironment() string {
	return os.Getenv(environmentVariableNameProfile)
}

func ToolCacheFileFromEnvironment() string {
	return os.Getenv(environmentVariableNameToolCacheFile)
}

func DebugFromEnvironment() bool {
	value := strings.ToLower(os.Getenv(environmentVariableNameDebug))
	return value == "true" || value == "yes" || value == "y" || value == "1"
}
