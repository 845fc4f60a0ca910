package targets

import (
	"fmt"

	"github.com/ignithex/femtobot/cmd/releaser/constants"
	"github.com/ignithex/femtobot/cmd/releaser/types"
)

// registry is the fixed, ordered build matrix. The build host is a
// darwin/arm64 machine: the darwin target uses the host toolchain and
// the linux targets go through the musl cross-toolchains.
var registry = []types.Target{
	{
		OS:     "linux",
		Arch:   "x86_64",
		Triple: "x86_64-unknown-linux-musl",
		Toolchain: types.Toolchain{
			Cross:       true,
			Linker:      "x86_64-linux-musl-gcc",
			Archiver:    "x86_64-linux-musl-ar",
			Strip:       "x86_64-linux-musl-strip",
			InstallHint: constants.MuslCrossInstallHint,
		},
	},
	{
		OS:     "linux",
		Arch:   "aarch64",
		Triple: "aarch64-unknown-linux-musl",
		Toolchain: types.Toolchain{
			Cross:       true,
			Linker:      "aarch64-linux-musl-gcc",
			Archiver:    "aarch64-linux-musl-ar",
			Strip:       "aarch64-linux-musl-strip",
			InstallHint: constants.MuslCrossInstallHint,
		},
	},
	{
		OS:     "darwin",
		Arch:   "aarch64",
		Triple: "aarch64-apple-darwin",
		// Native toolchain. Darwin binaries are left unstripped.
		Toolchain: types.Toolchain{},
	},
}

// All returns the full registry in build order.
func All() []types.Target {
	out := make([]types.Target, len(registry))
	copy(out, registry)
	return out
}

// Lookup resolves a target by its "<os>-<arch>" name. Unrecognized
// names are a configuration error for the caller to treat as fatal.
func Lookup(name string) (types.Target, error) {
	for _, t := range registry {
		if t.Name() == name {
			return t, nil
		}
	}
	return types.Target{}, fmt.Errorf("unrecognized target %q, supported targets: %v", name, Names())
}

// Names lists the registry keys in build order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for _, t := range registry {
		names = append(names, t.Name())
	}
	return names
}
