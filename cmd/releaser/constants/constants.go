package constants

const (
	AppName     = "releaser"
	ProjectName = "femtobot"
	RepoSlug    = "ignithex/femtobot"

	// Placeholder version used by `releaser build` when no version
	// argument is given.
	DefaultVersion = "0.0.0-dev"

	TokenEnvVar  = "GITHUB_TOKEN"
	TokenHintURL = "https://github.com/settings/tokens"

	APIBaseURLFormat = "https://api.github.com/repos/%s"

	ManifestFileName     = "release.yaml"
	ChecksumFileSuffix   = "sha256"
	MuslCrossInstallHint = "brew install FiloSottile/musl-cross/musl-cross"
)

// ReleaseBodyFormat is the fixed body attached to every release the
// publisher creates. Takes the bare version string.
const ReleaseBodyFormat = `Automated release of femtobot %s.

Install with:

    curl -fsSL https://raw.githubusercontent.com/ignithex/femtobot/main/install.sh | sh
`
