// Stats command: collection summary for the active account.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show collection statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess := requireSession()

		backend, err := attachShelf()
		if err != nil {
			fail(err.Error())
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		accounts, err := backend.Load()
		if err != nil {
			fail(err.Error())
			os.Exit(exitSysError)
		}
		acct := activeAccount(accounts, sess)

		stats := acct.Stats()
		touchSession(sess)

		if flagJSON {
			printJSON(stats)
			return nil
		}

		fmt.Printf("%s's collection\n", acct.Handle)
		fmt.Printf("  games:     %d\n", stats.Games)
		fmt.Printf("  playing:   %d\n", stats.Playing)
		fmt.Printf("  sent:      %d\n", stats.Sent)
		fmt.Printf("  received:  %d\n", stats.Received)
		fmt.Printf("  own:       %d%%\n", stats.Own)
		fmt.Printf("  borrowed:  %d%%\n", stats.Borrowed)
		return nil
	},
}
