// Playing command: toggles a game's in-use flag.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/swapshelf/pkg/engine"
)

var playingCmd = &cobra.Command{
	Use:   "playing <game>",
	Short: "Toggle whether a game is in use",
	Long: `Playing toggles the in-use flag on a game, named by id or title.

A game that is in use cannot be swapped, so turning the flag on asks for
confirmation. Turning it off does not.`,
	Args: cobra.ExactArgs(1),
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

		game, err := resolveGame(acct, args[0])
		if err != nil {
			fail(err.Error())
			os.Exit(exitUserError)
		}

		op, err := engine.ProposeSetInUse(sess, acct, game.GameID)
		if err != nil {
			fail(err.Error())
			os.Exit(exitUserError)
		}

		applied := commitPending(backend, accounts, op)
		touchSession(sess)
		if !applied {
			return nil
		}
		if game.InUse {
			ok(game.Title + " is no longer in use")
		} else {
			ok(game.Title + " is now in use")
		}
		return nil
	},
}
