// Package releaser builds the femtobot binary for every supported
// target, writes sha256 sidecars, and publishes the results as assets
// on a tagged GitHub release. Builds run one target at a time and any
// non-recoverable failure aborts the run: a partial release is worse
// than a failed one.
package releaser

import (
	"fmt"

	"github.com/ignithex/femtobot/cmd/releaser/build"
	"github.com/ignithex/femtobot/cmd/releaser/checksum"
	"github.com/ignithex/femtobot/cmd/releaser/github"
	"github.com/ignithex/femtobot/cmd/releaser/manifest"
	"github.com/ignithex/femtobot/cmd/releaser/publish"
	"github.com/ignithex/femtobot/cmd/releaser/types"
	glog "github.com/magicsong/color-glog"
)

// buildAndChecksum runs the build matrix and writes one checksum
// sidecar per artifact.
func buildAndChecksum(cliFlags types.CliFlags, buildTargets []types.Target) ([]types.Artifact, []types.ChecksumRecord, error) {
	artifacts, err := build.BuildAll(cliFlags.Version, buildTargets, cliFlags.WorkDir)
	if err != nil {
		return nil, nil, err
	}
	records := make([]types.ChecksumRecord, 0, len(artifacts))
	for _, artifact := range artifacts {
		record, err := checksum.Generate(artifact.Path)
		if err != nil {
			return nil, nil, err
		}
		records = append(records, *record)
	}
	return artifacts, records, nil
}

// desiredAssets is the union of artifacts and checksum sidecars that
// the release should carry. Existence on disk is re-checked at upload
// time by the publisher.
func desiredAssets(artifacts []types.Artifact, records []types.ChecksumRecord) []publish.DesiredAsset {
	assets := make([]publish.DesiredAsset, 0, len(artifacts)+len(records))
	for _, artifact := range artifacts {
		assets = append(assets, publish.DesiredAsset{Name: artifact.Name, Path: artifact.Path})
	}
	for _, record := range records {
		assets = append(assets, publish.DesiredAsset{
			Name: fmt.Sprintf("%s.sha256", record.ArtifactName),
			Path: record.Path,
		})
	}
	return assets
}

// Run executes the subcommand selected on the command line.
func Run(cliFlags types.CliFlags) error {
	m, err := manifest.Parse(cliFlags.ManifestFile)
	if err != nil {
		return err
	}
	buildTargets, err := manifest.SelectTargets(m)
	if err != nil {
		return err
	}

	switch cliFlags.Command {
	case "build":
		artifacts, _, err := buildAndChecksum(cliFlags, buildTargets)
		if err != nil {
			return err
		}
		glog.Infof("Built %d artifacts for version %s", len(artifacts), cliFlags.Version)
		return nil
	case "publish":
		artifacts, records, err := buildAndChecksum(cliFlags, buildTargets)
		if err != nil {
			return err
		}
		client := github.NewClient(m.Repo, cliFlags.Token)
		url, err := publish.Publish(client, cliFlags.Version, m.Body, desiredAssets(artifacts, records))
		if err != nil {
			return err
		}
		glog.Infof("Release published at %s", url)
		return nil
	}
	return fmt.Errorf("unknown command %q", cliFlags.Command)
}
