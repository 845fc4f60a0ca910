package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ignithex/femtobot/cmd/releaser/types"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "release.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseMissingFileYieldsDefaults(t *testing.T) {
	m, err := Parse(filepath.Join(t.TempDir(), "release.yaml"))
	require.NoError(t, err)
	require.Equal(t, "ignithex/femtobot", m.Repo)
	require.Empty(t, m.Targets)
}

func TestParseManifest(t *testing.T) {
	path := writeManifest(t, `
version: "1.0"
repo: ignithex/femtobot-fork
targets:
  - linux-x86_64
  - darwin-aarch64
`)
	m, err := Parse(path)
	require.NoError(t, err)
	require.Equal(t, "ignithex/femtobot-fork", m.Repo)
	require.Equal(t, []string{"linux-x86_64", "darwin-aarch64"}, m.Targets)
}

func TestParseRejectsUnknownVersion(t *testing.T) {
	path := writeManifest(t, `version: "2.0"`)
	_, err := Parse(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid manifest version")
}

func TestSelectTargetsDefaultsToFullRegistry(t *testing.T) {
	selected, err := SelectTargets(Defaults())
	require.NoError(t, err)
	require.Len(t, selected, 3)
}

func TestSelectTargetsKeepsRegistryOrder(t *testing.T) {
	m := &types.ReleaseManifest{
		Version: "1.0",
		Targets: []string{"darwin-aarch64", "linux-x86_64"},
	}
	selected, err := SelectTargets(m)
	require.NoError(t, err)
	require.Len(t, selected, 2)
	require.Equal(t, "linux-x86_64", selected[0].Name())
	require.Equal(t, "darwin-aarch64", selected[1].Name())
}

func TestSelectTargetsRejectsUnrecognizedName(t *testing.T) {
	m := &types.ReleaseManifest{
		Version: "1.0",
		Targets: []string{"linux-x86_64", "freebsd-sparc64"},
	}
	_, err := SelectTargets(m)
	require.Error(t, err)
	require.Contains(t, err.Error(), "freebsd-sparc64")
}
