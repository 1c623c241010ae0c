// List command: shows the active account's collection with search and sort.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/swapshelf/pkg/types"
)

var (
	listFind string
	listSort string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the collection",
	Long: `List shows the logged-in account's game collection.

--find filters by a case-insensitive title keyword. --sort orders the list:
  input     insertion order (default)
  name      alphabetical by title
  platform  grouped by platform
  swapped   untransferred games first
  playing   in-use games first`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess := requireSession()

		order := types.SortOrder(listSort)
		if !types.ValidSortOrder(order) {
			fail(fmt.Sprintf("unknown sort %q (valid: input, name, platform, swapped, playing)", listSort))
			os.Exit(exitUserError)
		}

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

		games := types.SortGames(types.SearchGames(acct.Games, listFind), order)
		touchSession(sess)

		if flagJSON {
			printJSON(games)
			return nil
		}

		if len(games) == 0 {
			fmt.Println("no games")
			return nil
		}
		for _, g := range games {
			fmt.Println(gameLine(g))
		}
		return nil
	},
}

// gameLine renders one game as a status glyph, title, platform, and any
// swap provenance.
func gameLine(g types.Game) string {
	status := " "
	note := ""
	switch {
	case g.Custody == types.CustodyOnLoan:
		status = "⇄"
		note = "  (lent to " + g.SwapPartner + ")"
	case g.Custody == types.CustodyBorrowed:
		status = "⇇"
		note = "  (from " + g.OriginalOwner + ")"
	case g.InUse:
		status = "▶"
	}
	return fmt.Sprintf("%s %-40s %-12s %s%s", status, g.Title, g.Platform, g.GameID, note)
}

func init() {
	listCmd.Flags().StringVar(&listFind, "find", "", "filter by title keyword")
	listCmd.Flags().StringVar(&listSort, "sort", string(types.SortInput), "sort order (input, name, platform, swapped, playing)")
}
