package main

import (
	"github.com/ignithex/femtobot/cmd/releaser"
	"github.com/ignithex/femtobot/cmd/releaser/cli"
	"github.com/ignithex/femtobot/cmd/releaser/types"
	glog "github.com/magicsong/color-glog"
)

var Version = "undefined"

func main() {
	cliFlags, err := cli.GetCliFlags(types.BuildFlags{Version: Version})
	if err != nil {
		glog.Fatalf("error parsing cli flags: %s", err)
		return
	}
	if err := releaser.Run(cliFlags); err != nil {
		glog.Fatalf("%s", err)
	}
}
