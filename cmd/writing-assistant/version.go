package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Muzammil-Ahm3d/Local-Writing-Assistant/internal/server"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("writing-assistant " + server.Version)
	},
}
