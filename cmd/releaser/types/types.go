package types

import "fmt"

type BuildFlags struct {
	Version string
}

type CliFlags struct {
	Command      string
	Version      string
	Token        string
	WorkDir      string
	ManifestFile string
	Verbosity    string
}

// Toolchain names the external binaries one target's build needs. For
// native targets only the build tool itself is required; cross targets
// additionally name the linker and archiver cargo must be pointed at.
type Toolchain struct {
	Cross       bool
	Linker      string
	Archiver    string
	Strip       string
	InstallHint string
}

// Target is one OS+architecture combination the femtobot binary is
// compiled for. The registry in the targets package owns the full set;
// a Target is immutable after process start.
type Target struct {
	OS        string
	Arch      string
	Triple    string
	Toolchain Toolchain
}

// Name is the registry key for the target, e.g. "linux-x86_64".
func (t Target) Name() string {
	return fmt.Sprintf("%s-%s", t.OS, t.Arch)
}

// ArtifactName is the canonical output filename for the target.
func (t Target) ArtifactName(project string) string {
	return fmt.Sprintf("%s-%s-%s", project, t.OS, t.Arch)
}

// Artifact is a built, optionally stripped, executable copied to its
// canonical name in the working directory. Never mutated after the
// orchestrator produces it.
type Artifact struct {
	Target Target
	Name   string
	Path   string
}

// ChecksumRecord is the sha256 sidecar written next to one artifact.
type ChecksumRecord struct {
	ArtifactName string
	Path         string
	Digest       string
}

// ReleaseRequest is the payload for creating a release.
type ReleaseRequest struct {
	TagName    string `json:"tag_name"`
	Name       string `json:"name"`
	Body       string `json:"body"`
	Draft      bool   `json:"draft"`
	Prerelease bool   `json:"prerelease"`
}

// ReleaseInfo is the subset of the release resource the publisher
// needs: the numeric id, the asset upload endpoint and the public URL.
type ReleaseInfo struct {
	ID         int64  `json:"id"`
	TagName    string `json:"tag_name"`
	UploadURL  string `json:"upload_url"`
	HTMLURL    string `json:"html_url"`
	Draft      bool   `json:"draft"`
	Prerelease bool   `json:"prerelease"`
}

// AssetInfo identifies one named asset attached to a release.
type AssetInfo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// ReleaseManifest is the optional release.yaml schema. Targets selects
// a subset of the registry by name; an empty list means all targets.
type ReleaseManifest struct {
	Version string   `yaml:"version"`
	Repo    string   `yaml:"repo,omitempty"`
	Body    string   `yaml:"body,omitempty"`
	Targets []string `yaml:"targets,omitempty"`
}
