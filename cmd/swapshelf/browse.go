// Browse command: interactive collection browser.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/swapshelf/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the collection interactively",
	Long: `Browse opens an interactive view of the collection. Space toggles
whether a game is in use, d removes it, s opens the swap menu, / filters,
q quits. Changes are saved when applied.`,
	Args: cobra.NoArgs,
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

		updated, changed, err := tui.Run(accounts, sess)
		if err != nil {
			fail(err.Error())
			os.Exit(exitSysError)
		}

		if changed {
			if err := backend.Commit(updated); err != nil {
				fail(err.Error())
				os.Exit(exitSysError)
			}
			ok("saved")
		}
		touchSession(sess)
		return nil
	},
}
