// Whoami command: reports the active session.
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in account and remaining session time",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess := requireSession()

		if flagJSON {
			printJSON(sess)
			return nil
		}

		remaining := time.Until(sess.Deadline).Round(time.Second)
		fmt.Printf("%s (session expires in %s)\n", sess.Handle, remaining)
		return nil
	},
}
