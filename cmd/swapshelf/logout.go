// Logout command: ends the active session.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/swapshelf/internal/session"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the active session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			fail(err.Error())
			os.Exit(exitSysError)
		}
		if err := session.Clear(configDir); err != nil {
			fail(err.Error())
			os.Exit(exitSysError)
		}
		ok("logged out")
		return nil
	},
}
