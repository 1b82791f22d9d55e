// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "empowered-camp",
	Short: "Empowered Sports Camp is a management platform for youth sports camps",
	Long: `Empowered Sports Camp is a multi-tenant management platform for youth
sports camps that provides HQ staff and licensees with settings, tenant
and audit administration through a REST API.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
