// Package sqlite implements the SQLite shelf backend for Swapshelf.
// SQLite serves as the query engine; accounts.jsonl in the data directory
// is the durable source of truth, rebuilt into the database on attach and
// rewritten atomically on every commit.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/swapshelf/pkg/types"
)

// dbFileName is the SQLite database file inside the data directory.
const dbFileName = "swapshelf.db"

// Backend implements types.Shelf backed by SQLite and accounts.jsonl.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	firstRun bool
}

// Compile-time interface check.
var _ types.Shelf = (*Backend)(nil)

// NewBackend creates a new SQLite backend instance. The backend is not
// attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach initializes the backend with the given configuration. Creates the
// data directory if needed, rebuilds the database schema, and loads
// accounts.jsonl into SQLite. Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	config.DataDir = dataDir

	// The database is a rebuildable cache; start from a fresh schema.
	dbPath := filepath.Join(dataDir, dbFileName)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return fmt.Errorf("applying schema: %w", err)
		}
	}

	accounts, err := readAccountsJSONL(dataDir)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			db.Close()
			return fmt.Errorf("reading %s: %w", accountsFileName, err)
		}
		b.firstRun = true
	}

	if err := insertAccounts(db, accounts); err != nil {
		db.Close()
		return fmt.Errorf("loading accounts: %w", err)
	}

	b.db = db
	b.config = config
	b.attached = true
	return nil
}

// Detach closes the database and releases resources. Idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	b.attached = false
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return fmt.Errorf("closing database: %w", err)
		}
		b.db = nil
	}
	return nil
}

// FirstRun reports whether accounts.jsonl was absent at attach time. The
// caller seeds the shelf with its default account list in that case.
func (b *Backend) FirstRun() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.firstRun
}

// Load returns the last committed account list, games in insertion order.
func (b *Backend) Load() ([]types.Account, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrShelfDetached
	}

	rows, err := b.db.Query("SELECT handle, secret FROM accounts ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("querying accounts: %w", err)
	}
	defer rows.Close()

	var accounts []types.Account
	for rows.Next() {
		var a types.Account
		if err := rows.Scan(&a.Handle, &a.Secret); err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating accounts: %w", err)
	}

	for i := range accounts {
		games, err := b.loadGames(accounts[i].Handle)
		if err != nil {
			return nil, err
		}
		accounts[i].Games = games
	}
	return accounts, nil
}

// loadGames returns one account's games ordered by position.
func (b *Backend) loadGames(handle string) ([]types.Game, error) {
	rows, err := b.db.Query(
		`SELECT game_id, title, cover_url, platform, in_use, custody,
		        original_owner, swap_partner, created_at, updated_at
		 FROM games WHERE handle = ? ORDER BY position`,
		handle,
	)
	if err != nil {
		return nil, fmt.Errorf("querying games for %s: %w", handle, err)
	}
	defer rows.Close()

	var games []types.Game
	for rows.Next() {
		g, err := hydrateGame(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating game for %s: %w", handle, err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating games for %s: %w", handle, err)
	}
	return games, nil
}

// hydrateGame scans one games row into a types.Game.
func hydrateGame(rows *sql.Rows) (types.Game, error) {
	var g types.Game
	var inUse int
	var createdAt, updatedAt string
	if err := rows.Scan(
		&g.GameID, &g.Title, &g.CoverURL, &g.Platform, &inUse, &g.Custody,
		&g.OriginalOwner, &g.SwapPartner, &createdAt, &updatedAt,
	); err != nil {
		return types.Game{}, err
	}
	g.InUse = inUse != 0

	var err error
	if g.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return types.Game{}, fmt.Errorf("parsing created_at: %w", err)
	}
	if g.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return types.Game{}, fmt.Errorf("parsing updated_at: %w", err)
	}
	return g, nil
}

// Commit replaces the durable account list wholesale: every row is replaced
// in one transaction, then accounts.jsonl is rewritten atomically. A swap's
// two-account update is therefore never observable half-applied.
func (b *Backend) Commit(accounts []types.Account) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrShelfDetached
	}
	if err := types.ValidateAccounts(accounts); err != nil {
		return err
	}

	if err := replaceAccounts(b.db, accounts); err != nil {
		return err
	}
	if err := writeAccountsJSONL(b.config.DataDir, accounts); err != nil {
		return fmt.Errorf("persisting %s: %w", accountsFileName, err)
	}
	b.firstRun = false
	return nil
}

// replaceAccounts swaps the full table contents inside one transaction.
func replaceAccounts(db *sql.DB, accounts []types.Account) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM games"); err != nil {
		return fmt.Errorf("clearing games: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM accounts"); err != nil {
		return fmt.Errorf("clearing accounts: %w", err)
	}
	if err := insertAccountsTx(tx, accounts); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing accounts: %w", err)
	}
	return nil
}

// insertAccounts loads accounts into an empty database (attach path).
func insertAccounts(db *sql.DB, accounts []types.Account) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertAccountsTx(tx, accounts); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing accounts: %w", err)
	}
	return nil
}

func insertAccountsTx(tx *sql.Tx, accounts []types.Account) error {
	for i := range accounts {
		a := &accounts[i]
		if _, err := tx.Exec(
			"INSERT INTO accounts (handle, secret) VALUES (?, ?)",
			a.Handle, a.Secret,
		); err != nil {
			return fmt.Errorf("inserting account %s: %w", a.Handle, err)
		}
		for pos := range a.Games {
			g := &a.Games[pos]
			inUse := 0
			if g.InUse {
				inUse = 1
			}
			if _, err := tx.Exec(
				`INSERT INTO games (game_id, handle, position, title, cover_url,
				                    platform, in_use, custody, original_owner,
				                    swap_partner, created_at, updated_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				g.GameID, a.Handle, pos, g.Title, g.CoverURL,
				g.Platform, inUse, g.Custody, g.OriginalOwner,
				g.SwapPartner,
				g.CreatedAt.UTC().Format(time.RFC3339),
				g.UpdatedAt.UTC().Format(time.RFC3339),
			); err != nil {
				return fmt.Errorf("inserting game %s for %s: %w", g.GameID, a.Handle, err)
			}
		}
	}
	return nil
}
