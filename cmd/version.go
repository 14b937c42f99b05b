package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X github.com/mkravets/glossa/cmd.version=...".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the glossa version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("glossa " + version)
	},
}
