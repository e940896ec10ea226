package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "segyio",
	Short: "Shot access for shot-ordered SEGY files",
	Long:  `Indexes shot-ordered SEGY files and serves shots out of them.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
