package build

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ignithex/femtobot/cmd/releaser/constants"
	"github.com/ignithex/femtobot/cmd/releaser/types"
	"github.com/ignithex/femtobot/cmd/releaser/utils"
	glog "github.com/magicsong/color-glog"
)

// CheckToolchain verifies every external binary one target's build
// needs is on the search path. Missing cross tools abort the run with
// the install hint; a partial release is worse than a failed one.
func CheckToolchain(target types.Target) error {
	if _, err := exec.LookPath("cargo"); err != nil {
		return fmt.Errorf("cargo not found on PATH, install Rust via https://rustup.rs")
	}
	if !target.Toolchain.Cross {
		return nil
	}
	for _, tool := range []string{target.Toolchain.Linker, target.Toolchain.Archiver} {
		if _, err := exec.LookPath(tool); err != nil {
			return fmt.Errorf("cross toolchain binary %q for target %s not found, run: %s",
				tool, target.Name(), target.Toolchain.InstallHint)
		}
	}
	return nil
}

// BuildEnv returns the toolchain environment variables for one cargo
// invocation. They are applied to that exec.Cmd only, never exported
// into the ambient process environment, so one target's cross setup
// cannot leak into the next build.
func BuildEnv(target types.Target) []string {
	if !target.Toolchain.Cross {
		return nil
	}
	cargoTriple := strings.ToUpper(strings.ReplaceAll(target.Triple, "-", "_"))
	ccTriple := strings.ReplaceAll(target.Triple, "-", "_")
	return []string{
		fmt.Sprintf("CARGO_TARGET_%s_LINKER=%s", cargoTriple, target.Toolchain.Linker),
		fmt.Sprintf("CC_%s=%s", ccTriple, target.Toolchain.Linker),
		fmt.Sprintf("AR_%s=%s", ccTriple, target.Toolchain.Archiver),
	}
}

// OutputPath is where cargo leaves the release binary for a target.
func OutputPath(target types.Target) string {
	return filepath.Join("target", target.Triple, "release", constants.ProjectName)
}

func buildTarget(target types.Target, workDir string) (*types.Artifact, error) {
	if err := CheckToolchain(target); err != nil {
		return nil, err
	}
	glog.Infof("Building %s (triple=%s)", target.Name(), target.Triple)
	cmd := exec.Command("cargo", "build", "--release", "--target", target.Triple)
	cmd.Env = append(os.Environ(), BuildEnv(target)...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("cargo build failed for target %s: %w", target.Name(), err)
	}

	buildOutput := OutputPath(target)
	if !utils.IsFileExists(buildOutput) {
		return nil, fmt.Errorf("build output missing at %q after successful cargo build for %s",
			buildOutput, target.Name())
	}

	stripArtifact(target, buildOutput)

	artifactName := target.ArtifactName(constants.ProjectName)
	artifactPath := filepath.Join(workDir, artifactName)
	if err := utils.CopyFile(buildOutput, artifactPath); err != nil {
		return nil, fmt.Errorf("copying %s to %s: %w", buildOutput, artifactPath, err)
	}
	glog.Infof("Built artifact %s", artifactPath)
	return &types.Artifact{Target: target, Name: artifactName, Path: artifactPath}, nil
}

// stripArtifact drops debug symbols from linux binaries. Best effort:
// a missing strip tool or a strip failure is a warning, not an abort.
func stripArtifact(target types.Target, path string) {
	if target.OS != "linux" {
		return
	}
	stripTool := target.Toolchain.Strip
	if _, err := exec.LookPath(stripTool); err != nil {
		glog.Warningf("strip tool %q not found, leaving %s unstripped", stripTool, path)
		return
	}
	output, err := exec.Command(stripTool, path).CombinedOutput()
	if err != nil {
		glog.Warningf("strip failed for %s: %s: %s", path, err, string(output))
		return
	}
	glog.V(5).Infof("stripped debug symbols from %s", path)
}

// BuildAll compiles every target in order, sequentially. Shared host
// toolchain state makes parallel cross builds unsafe, and sequential
// runs keep the cargo output readable. Any failed target aborts the
// whole matrix; partial artifact sets never reach the publish stage.
func BuildAll(version string, buildTargets []types.Target, workDir string) ([]types.Artifact, error) {
	glog.Infof("Building %s %s for %d targets", constants.ProjectName, version, len(buildTargets))
	artifacts := make([]types.Artifact, 0, len(buildTargets))
	for _, target := range buildTargets {
		artifact, err := buildTarget(target, workDir)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, *artifact)
	}
	return artifacts, nil
}
