package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"juno/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the juno CLI version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(version.Version)
		return nil
	},
}
