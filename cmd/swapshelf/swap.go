// Swap command: lends a game to a counterpart or returns a borrowed one.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/swapshelf/pkg/engine"
	"github.com/mesh-intelligence/swapshelf/pkg/types"
)

var swapCmd = &cobra.Command{
	Use:   "swap <game> [counterpart]",
	Short: "Swap a game with another account",
	Long: `Swap lends an owned game to the counterpart, who receives a borrowed
copy; your record stays behind as an on-loan marker until the game comes
back. Swapping a borrowed game returns it to its original owner.

With no counterpart, swap lists who the game can be swapped with.`,
	Args: cobra.RangeArgs(1, 2),
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

		// Opening the menu validates the game can move at all and records
		// the pending subject in the session.
		if _, err := sess.ToggleMenu(acct, game.GameID); err != nil {
			fail(err.Error())
			os.Exit(exitUserError)
		}

		if len(args) == 1 {
			counterparts := sess.Counterparts(accounts)
			sess.ClearSelection()
			touchSession(sess)
			if len(counterparts) == 0 {
				fmt.Println("nobody to swap with")
				return nil
			}
			fmt.Printf("%s can be swapped with: %s\n", game.Title, strings.Join(counterparts, ", "))
			return nil
		}

		op, err := engine.ProposeSwap(sess, accounts, args[1])
		if err != nil {
			sess.ClearSelection()
			touchSession(sess)
			fail(err.Error())
			os.Exit(exitUserError)
		}

		verb := "swapped"
		if game.Custody == types.CustodyBorrowed {
			verb = "returned"
		}
		applied := commitPending(backend, accounts, op)
		touchSession(sess)
		if applied {
			ok(fmt.Sprintf("%s %s with %s", verb, game.Title, args[1]))
		}
		return nil
	},
}
