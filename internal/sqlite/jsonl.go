package sqlite

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/swapshelf/pkg/types"
)

// accountsFileName is the durable source of truth: one account per line.
const accountsFileName = "accounts.jsonl"

func accountsPath(dataDir string) string {
	return filepath.Join(dataDir, accountsFileName)
}

// readAccountsJSONL reads accounts.jsonl and returns the decoded accounts.
// Malformed lines are skipped; a missing file returns os.ErrNotExist for
// the caller to treat as first run.
func readAccountsJSONL(dataDir string) ([]types.Account, error) {
	f, err := os.Open(accountsPath(dataDir))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var accounts []types.Account
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var a types.Account
		if err := json.Unmarshal(line, &a); err != nil {
			continue
		}
		accounts = append(accounts, a)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", accountsFileName, err)
	}
	return accounts, nil
}

// writeAccountsJSONL atomically replaces accounts.jsonl with the given
// accounts using the temp-file, fsync, rename pattern. The whole list is
// rewritten on every commit, so a crash mid-write never exposes a state
// with only one side of a swap applied.
func writeAccountsJSONL(dataDir string, accounts []types.Account) error {
	path := accountsPath(dataDir)
	tmp, err := os.CreateTemp(dataDir, ".accounts-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	for i := range accounts {
		rec, err := json.Marshal(&accounts[i])
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("encoding account %s: %w", accounts[i].Handle, err)
		}
		if _, err := w.Write(rec); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("writing record: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
