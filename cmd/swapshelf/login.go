// Login command: starts the single active session.
package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/swapshelf/internal/session"
	"github.com/mesh-intelligence/swapshelf/pkg/engine"
	"github.com/mesh-intelligence/swapshelf/pkg/types"
)

var loginCmd = &cobra.Command{
	Use:   "login <handle> <secret>",
	Short: "Log in to an account and start a session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		handle, secret := args[0], args[1]

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

		acct, found := types.FindAccount(accounts, handle)
		if !found || !acct.Authenticate(secret) {
			fail("invalid handle or secret")
			os.Exit(exitUserError)
		}

		configDir, err := resolveConfigDir()
		if err != nil {
			fail(err.Error())
			os.Exit(exitSysError)
		}

		// A new login replaces any existing session; one session at a time.
		sess := engine.NewSession(handle, sessionIdle)
		if err := session.Save(configDir, sess); err != nil {
			fail(err.Error())
			os.Exit(exitSysError)
		}

		ok("logged in as " + handle + ", session expires after " +
			sessionIdle.Round(time.Minute).String() + " idle")
		return nil
	},
}
