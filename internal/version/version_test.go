package version_test

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/plagscan/internal/version"
)

func TestShort(t *testing.T) {
	assert.NotEmpty(t, version.Short())
	assert.Equal(t, version.Version, version.Short())
}

func TestGet(t *testing.T) {
	b := version.Get()
	assert.Equal(t, "plagscan", b.Name)
	assert.Equal(t, runtime.Version(), b.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, b.Platform)
}

func TestInfoFormat(t *testing.T) {
	lines := strings.Split(version.Info(), "\n")
	require.Len(t, lines, 5)

	expectedPrefixes := []string{"plagscan " + version.Version, "Commit: " + version.Commit, "Built: " + version.Date, "Go:", "OS/Arch:"}
	for i, prefix := range expectedPrefixes {
		assert.True(t, strings.HasPrefix(lines[i], prefix), "line %d: %q", i+1, lines[i])
	}
}
