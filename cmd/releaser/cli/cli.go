package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/ignithex/femtobot/cmd/releaser/constants"
	"github.com/ignithex/femtobot/cmd/releaser/types"
	glog "github.com/magicsong/color-glog"
	"github.com/peterbourgon/ff/v3"
)

const usageText = `Usage: releaser [flags] <command> [version]

Commands:
  build [version]     cross-compile and checksum artifacts (version defaults to ` + constants.DefaultVersion + `)
  publish <version>   build, checksum and publish a release for tag v<version>

Both commands need ` + constants.TokenEnvVar + ` set in the environment.
`

// Usage prints the command synopsis to stderr.
func Usage() {
	fmt.Fprint(os.Stderr, usageText)
}

// ValidateFlags checks the parsed command line against the rules the
// commands share: a known subcommand, a version argument where one is
// required, and the access credential in the environment.
func ValidateFlags(flags *types.CliFlags) error {
	switch flags.Command {
	case "build":
		if flags.Version == "" {
			flags.Version = constants.DefaultVersion
		}
	case "publish":
		if flags.Version == "" {
			return fmt.Errorf("publish requires a version argument, e.g. `releaser publish 1.0.0`")
		}
	case "":
		return fmt.Errorf("no command given")
	default:
		return fmt.Errorf("unknown command %q", flags.Command)
	}
	flags.Token = os.Getenv(constants.TokenEnvVar)
	if flags.Token == "" {
		return fmt.Errorf("%s is not set. Generate a token at %s and export it",
			constants.TokenEnvVar, constants.TokenHintURL)
	}
	return nil
}

// GetCliFlags reads command-line arguments and generates a struct
// with useful values set after parsing the same.
func GetCliFlags(buildFlags types.BuildFlags) (types.CliFlags, error) {
	cliFlags := types.CliFlags{}
	flag.Set("logtostderr", "true")
	vFlag := flag.Lookup("v")
	fs := flag.NewFlagSet(constants.AppName, flag.ExitOnError)

	fs.StringVar(&cliFlags.Verbosity, "v", "3", "Log verbosity. Integer value from 0 to 9")
	fs.StringVar(&cliFlags.WorkDir, "workdir", ".", "Directory artifacts and checksum sidecars are written to")
	fs.StringVar(&cliFlags.ManifestFile, "manifest", constants.ManifestFileName, "Path to the release manifest yaml file (optional)")
	version := fs.Bool("version", false, "Get version information")

	err := ff.Parse(
		fs, os.Args[1:],
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
		ff.WithEnvVarPrefix("FEMTOBOT_RELEASER"),
	)
	if err != nil {
		return cliFlags, err
	}
	if *version {
		fmt.Printf("releaser version: %s\n", buildFlags.Version)
		os.Exit(0)
	}
	flag.CommandLine.Parse(nil)
	vFlag.Value.Set(cliFlags.Verbosity)

	cliFlags.Command = fs.Arg(0)
	cliFlags.Version = fs.Arg(1)
	glog.V(6).Infof("parsed command=%q version=%q workdir=%q", cliFlags.Command, cliFlags.Version, cliFlags.WorkDir)

	if err := ValidateFlags(&cliFlags); err != nil {
		Usage()
		return cliFlags, err
	}
	return cliFlags, nil
}
