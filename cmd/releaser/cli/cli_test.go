package cli

import (
	"os"
	"testing"

	"github.com/ignithex/femtobot/cmd/releaser/constants"
	"github.com/ignithex/femtobot/cmd/releaser/types"
	"github.com/stretchr/testify/require"
)

// Runs the full parse path, which includes wiring the verbosity flag
// through to the glog flag set; the cli package must be usable without
// anything else in the binary importing glog first.
func TestGetCliFlagsParsesCommandLine(t *testing.T) {
	t.Setenv(constants.TokenEnvVar, "test-token")
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"releaser", "build", "1.0.0"}

	flags, err := GetCliFlags(types.BuildFlags{Version: "test"})
	require.NoError(t, err)
	require.Equal(t, "build", flags.Command)
	require.Equal(t, "1.0.0", flags.Version)
	require.Equal(t, ".", flags.WorkDir)
}

func TestValidateFlagsBuildDefaultsVersion(t *testing.T) {
	t.Setenv(constants.TokenEnvVar, "test-token")
	flags := &types.CliFlags{Command: "build"}
	require.NoError(t, ValidateFlags(flags))
	require.Equal(t, constants.DefaultVersion, flags.Version)
	require.Equal(t, "test-token", flags.Token)
}

func TestValidateFlagsPublishRequiresVersion(t *testing.T) {
	t.Setenv(constants.TokenEnvVar, "test-token")
	flags := &types.CliFlags{Command: "publish"}
	err := ValidateFlags(flags)
	require.Error(t, err)
	require.Contains(t, err.Error(), "version argument")
}

func TestValidateFlagsRequiresToken(t *testing.T) {
	t.Setenv(constants.TokenEnvVar, "")
	flags := &types.CliFlags{Command: "publish", Version: "1.0.0"}
	err := ValidateFlags(flags)
	require.Error(t, err)
	require.Contains(t, err.Error(), constants.TokenEnvVar)
	require.Contains(t, err.Error(), constants.TokenHintURL)
}

func TestValidateFlagsRejectsUnknownCommand(t *testing.T) {
	t.Setenv(constants.TokenEnvVar, "test-token")
	err := ValidateFlags(&types.CliFlags{Command: "deploy"})
	require.Error(t, err)
}
