package sqlite

// Schema DDL. The database is rebuilt from accounts.jsonl on every attach,
// so no migrations are needed.
//
// games is keyed by (handle, game_id): while a game is lent out the origin's
// on-loan marker and the counterpart's borrowed copy share one game_id.
const (
	createAccounts = `CREATE TABLE accounts (
    handle TEXT PRIMARY KEY,
    secret TEXT NOT NULL
);`

	createGames = `CREATE TABLE games (
    game_id TEXT NOT NULL,
    handle TEXT NOT NULL,
    position INTEGER NOT NULL,
    title TEXT NOT NULL,
    cover_url TEXT NOT NULL DEFAULT '',
    platform TEXT NOT NULL,
    in_use INTEGER NOT NULL DEFAULT 0,
    custody TEXT NOT NULL,
    original_owner TEXT NOT NULL DEFAULT '',
    swap_partner TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    PRIMARY KEY (handle, game_id),
    FOREIGN KEY (handle) REFERENCES accounts(handle)
);`
)

// schemaStatements lists the DDL in creation order.
var schemaStatements = []string{
	createAccounts,
	createGames,
}
