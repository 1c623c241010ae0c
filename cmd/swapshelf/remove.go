// Remove command: drops a game from the collection.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/swapshelf/pkg/engine"
	"github.com/mesh-intelligence/swapshelf/pkg/types"
)

var removeCmd = &cobra.Command{
	Use:   "remove <game>",
	Short: "Remove a game from the collection",
	Long: `Remove drops a game, named by id or title, after confirmation.

A game lent out cannot be removed; the live copy sits with the swap partner.
Removing a borrowed copy destroys the game for good, with no return to the
original owner.`,
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

		op, err := engine.ProposeRemove(sess, acct, game.GameID)
		if err != nil {
			fail(err.Error())
			os.Exit(exitUserError)
		}

		applied := commitPending(backend, accounts, op)
		touchSession(sess)
		if applied {
			if game.Custody == types.CustodyBorrowed {
				ok("removed borrowed copy of " + game.Title)
			} else {
				ok("removed " + game.Title)
			}
		}
		return nil
	},
}
