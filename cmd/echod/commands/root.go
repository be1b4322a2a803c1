package commands

import (
	"github.com/koanlabs/echod/src/config"
	"github.com/spf13/cobra"
)

var (
	_config = config.NewDefaultConfig()
)

//RootCmd is the root command for echod
var RootCmd = &cobra.Command{
	Use:              "echod",
	Short:            "echo protocol node",
	TraverseChildren: true,
}

func init() {
	RootCmd.AddCommand(
		NewRunCmd(),
		VersionCmd,
	)
}
