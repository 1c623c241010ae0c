// Add command: appends a game to the active account's collection.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/swapshelf/pkg/types"
)

var (
	addCover    string
	addPlatform string
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a game to the collection",
	Args:  cobra.ExactArgs(1),
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

		game, err := types.NewGame(newID(), args[0], addCover, addPlatform)
		if err != nil {
			fail(err.Error())
			os.Exit(exitUserError)
		}
		if err := acct.AddGame(*game); err != nil {
			fail(err.Error())
			os.Exit(exitUserError)
		}

		if err := backend.Commit(types.ReplaceAccounts(accounts, acct)); err != nil {
			fail(err.Error())
			os.Exit(exitSysError)
		}

		// Any collection change invalidates a pending swap selection.
		sess.ClearSelection()
		touchSession(sess)

		ok("added " + game.Title + " (" + game.GameID + ")")
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addCover, "cover", "", "cover image URL")
	addCmd.Flags().StringVar(&addPlatform, "platform", types.PlatformNintendo, "platform (playstation, nintendo, xbox)")
}
