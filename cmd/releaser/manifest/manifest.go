package manifest

import (
	"fmt"
	"os"

	"github.com/ignithex/femtobot/cmd/releaser/constants"
	"github.com/ignithex/femtobot/cmd/releaser/targets"
	"github.com/ignithex/femtobot/cmd/releaser/types"
	glog "github.com/magicsong/color-glog"
	"gopkg.in/yaml.v3"
)

// Defaults is the manifest used when no release.yaml is present: the
// canonical repo and the full target registry.
func Defaults() *types.ReleaseManifest {
	return &types.ReleaseManifest{
		Version: "1.0",
		Repo:    constants.RepoSlug,
	}
}

// Parse reads a release manifest from path. A missing file yields the
// defaults; a present but invalid file is a configuration error.
func Parse(path string) (*types.ReleaseManifest, error) {
	file, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		glog.V(5).Infof("no manifest at %q, using defaults", path)
		return Defaults(), nil
	}
	if err != nil {
		return nil, err
	}
	glog.Infof("Reading manifest file=%q", path)
	var m types.ReleaseManifest
	if err := yaml.Unmarshal(file, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	if m.Version != "1.0" {
		return nil, fmt.Errorf("invalid manifest version %q. Currently supported versions: 1.0", m.Version)
	}
	if m.Repo == "" {
		m.Repo = constants.RepoSlug
	}
	return &m, nil
}

// SelectTargets resolves the manifest's target names against the
// registry, in registry order. An empty selection means every
// registered target; an unrecognized name is fatal for the caller,
// never a silent skip.
func SelectTargets(m *types.ReleaseManifest) ([]types.Target, error) {
	if len(m.Targets) == 0 {
		return targets.All(), nil
	}
	selected := make(map[string]bool, len(m.Targets))
	for _, name := range m.Targets {
		if _, err := targets.Lookup(name); err != nil {
			return nil, err
		}
		selected[name] = true
	}
	var out []types.Target
	for _, target := range targets.All() {
		if selected[target.Name()] {
			out = append(out, target)
		}
	}
	return out, nil
}
