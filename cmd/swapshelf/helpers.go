// Shared helpers for swapshelf CLI commands.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mesh-intelligence/swapshelf/internal/session"
	"github.com/mesh-intelligence/swapshelf/internal/sqlite"
	"github.com/mesh-intelligence/swapshelf/pkg/engine"
	"github.com/mesh-intelligence/swapshelf/pkg/types"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

func ok(msg string) {
	fmt.Println(okStyle.Render("✔ " + msg))
}

func fail(msg string) {
	fmt.Fprintln(os.Stderr, failStyle.Render("✖ "+msg))
}

// attachShelf resolves the data directory, creates a SQLite backend, and
// attaches it. On first run the shelf is seeded with the demo account list.
// The caller must defer backend.Detach().
func attachShelf() (*sqlite.Backend, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		Backend: types.BackendSQLite,
		DataDir: dataDir,
	}

	backend := sqlite.NewBackend()
	if err := backend.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach shelf: %w", err)
	}

	if backend.FirstRun() {
		if err := backend.Commit(DefaultAccounts()); err != nil {
			backend.Detach()
			return nil, fmt.Errorf("seed shelf: %w", err)
		}
	}
	return backend, nil
}

// requireSession loads the live session, applying the idle deadline. An
// expired or missing session is a user error; the process exits here so
// callers can assume a logged-in handle.
func requireSession() *engine.Session {
	configDir, err := resolveConfigDir()
	if err != nil {
		fail(err.Error())
		os.Exit(exitSysError)
	}

	sess, err := session.Current(configDir, time.Now().UTC())
	switch err {
	case nil:
		return sess
	case engine.ErrNoSession:
		fail("not logged in")
	case engine.ErrSessionExpired:
		fail("session expired, logged out")
	default:
		fail(err.Error())
		os.Exit(exitSysError)
	}
	os.Exit(exitUserError)
	return nil
}

// touchSession pushes the idle deadline forward and persists the session.
// Called after every successful command, mirroring the activity timer.
func touchSession(sess *engine.Session) {
	configDir, err := resolveConfigDir()
	if err != nil {
		fail(err.Error())
		os.Exit(exitSysError)
	}
	sess.Touch(sessionIdle)
	if err := session.Save(configDir, sess); err != nil {
		fail(err.Error())
		os.Exit(exitSysError)
	}
}

// activeAccount returns the logged-in account from a freshly loaded list.
func activeAccount(accounts []types.Account, sess *engine.Session) types.Account {
	acct, found := types.FindAccount(accounts, sess.Handle)
	if !found {
		fail(fmt.Sprintf("account %q no longer exists", sess.Handle))
		os.Exit(exitSysError)
	}
	return acct
}

// resolveGame finds a game in the account by exact id or by unique
// case-insensitive title match.
func resolveGame(acct types.Account, arg string) (types.Game, error) {
	if g, found := acct.Game(arg); found {
		return g, nil
	}

	var matches []types.Game
	needle := strings.ToLower(arg)
	for _, g := range acct.Games {
		if strings.ToLower(g.Title) == needle {
			matches = append(matches, g)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return types.Game{}, fmt.Errorf("no game %q in the collection", arg)
	default:
		return types.Game{}, fmt.Errorf("%d games titled %q, use the game id", len(matches), arg)
	}
}

// confirm prompts on stdin unless --yes was given. A declined prompt is not
// an error; the caller applies nothing.
func confirm(message string) bool {
	if flagYes {
		return true
	}
	fmt.Printf("%s [y/N] ", message)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// commitPending runs the confirm prompt for a pending operation, applies it,
// and commits the updated accounts to the shelf. Returns whether anything
// was applied.
func commitPending(backend *sqlite.Backend, accounts []types.Account, op *engine.PendingOp) bool {
	confirmed := true
	if op.NeedsConfirm() {
		confirmed = confirm(op.Message)
	}
	updated, applied, err := op.Commit(confirmed)
	if err != nil {
		fail(err.Error())
		os.Exit(exitUserError)
	}
	if !applied {
		return false
	}
	if err := backend.Commit(types.ReplaceAccounts(accounts, updated...)); err != nil {
		fail(err.Error())
		os.Exit(exitSysError)
	}
	return true
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fail(fmt.Sprintf("marshal output: %v", err))
		os.Exit(exitSysError)
	}
	fmt.Println(string(output))
}
