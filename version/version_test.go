package version

import (
	"encoding/json"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetVersionInfoPrefersLdflags(t *testing.T) {
	old := Version
	Version = "v9.9.9"
	defer func() { Version = old }()

	info := GetVersionInfo()
	assert.Equal(t, "v9.9.9", info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
}

func TestInfoJSON(t *testing.T) {
	info := Info{Version: "v1", Branch: "main", Revision: "abc", BuiltAt: "now", GoVersion: "go"}
	var m map[string]string
	require.NoError(t, json.Unmarshal([]byte(info.JSON()), &m))
	assert.Equal(t, "v1", m["version"])
	assert.Equal(t, "now", m["builtAt"])
	assert.Contains(t, info.String(), "rev abc")
}

func TestShortRevision(t *testing.T) {
	assert.Equal(t, "0123456", shortRevision("0123456789abcdef"))
	assert.Equal(t, "abc", shortRevision("abc"))
}
