package mcptools

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var toolNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

func TestGroupsHaveUniqueNames(t *testing.T) {
	seen := map[string]string{}
	for group, names := range Groups {
		assert.NotEmpty(t, names, "group %s is empty", group)
		for _, name := range names {
			assert.Regexp(t, toolNamePattern, name)
			if previous, ok := seen[name]; ok {
				t.Errorf("tool %s appears in both %s and %s", name, previous, group)
			}
			seen[name] = group
		}
	}
	assert.Contains(t, Groups["command"], Shell)
	assert.Contains(t, Groups["filesystem"], ReadFile)
}
