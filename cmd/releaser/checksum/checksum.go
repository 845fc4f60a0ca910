package checksum

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ignithex/femtobot/cmd/releaser/constants"
	"github.com/ignithex/femtobot/cmd/releaser/types"
	glog "github.com/magicsong/color-glog"
)

// digestCommand picks the digest utility present on the system.
// `sha256sum` is preferred, `shasum --algorithm 256` is the fallback.
func digestCommand(fileName string) (*exec.Cmd, error) {
	if _, err := exec.LookPath("sha256sum"); err == nil {
		return exec.Command("sha256sum", fileName), nil
	}
	if _, err := exec.LookPath("shasum"); err == nil {
		return exec.Command("shasum", "--algorithm", "256", fileName), nil
	}
	return nil, fmt.Errorf("no sha256 utility found, install sha256sum (coreutils) or shasum (perl)")
}

// Generate computes the sha256 digest of the artifact by running the
// system digest utility from the artifact's directory, so the sidecar
// records the bare filename, and writes the utility's output verbatim
// to `<artifact>.sha256`. Rerunning overwrites the sidecar with
// identical bytes for identical input.
func Generate(artifactPath string) (*types.ChecksumRecord, error) {
	directory, fileName := filepath.Split(artifactPath)
	if directory == "" {
		directory = "."
	}
	cmd, err := digestCommand(fileName)
	if err != nil {
		return nil, err
	}
	cmd.Dir = directory
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("digest of %s failed: %w", fileName, err)
	}
	line := strings.TrimSpace(string(output))
	digest, _, found := strings.Cut(line, " ")
	if !found || len(digest) != 64 {
		return nil, fmt.Errorf("unexpected digest output %q for %s", line, fileName)
	}
	sidecarPath := fmt.Sprintf("%s.%s", artifactPath, constants.ChecksumFileSuffix)
	if err := os.WriteFile(sidecarPath, output, 0644); err != nil {
		return nil, err
	}
	glog.Infof("wrote checksum sidecar %s digest=%s", sidecarPath, digest)
	return &types.ChecksumRecord{
		ArtifactName: fileName,
		Path:         sidecarPath,
		Digest:       digest,
	}, nil
}
