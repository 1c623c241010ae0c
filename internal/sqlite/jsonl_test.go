package sqlite

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mesh-intelligence/swapshelf/pkg/types"
)

func TestReadAccountsJSONLMissingFile(t *testing.T) {
	_, err := readAccountsJSONL(t.TempDir())
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestWriteReadAccountsJSONL(t *testing.T) {
	dir := t.TempDir()
	want := testAccounts()

	if err := writeAccountsJSONL(dir, want); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	got, err := readAccountsJSONL(dir)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("read %d accounts, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Handle != want[i].Handle || len(got[i].Games) != len(want[i].Games) {
			t.Errorf("account %d: got %+v", i, got[i])
		}
	}
}

func TestWriteAccountsJSONLLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	if err := writeAccountsJSONL(dir, testAccounts()); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir failed: %v", err)
	}
	for _, e := range entries {
		if e.Name() != accountsFileName {
			t.Errorf("unexpected file left behind: %s", e.Name())
		}
	}
}

func TestReadAccountsJSONLSkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	content := `{"handle":"alice","secret":"pw1","games":[]}
not json
{"handle":"bob","secret":"pw2","games":[]}
`
	if err := os.WriteFile(filepath.Join(dir, accountsFileName), []byte(content), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	got, err := readAccountsJSONL(dir)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("read %d accounts, want 2", len(got))
	}
	if got[0].Handle != "alice" || got[1].Handle != "bob" {
		t.Errorf("unexpected accounts: %+v", got)
	}
}

// Guards the struct tags the durable format depends on.
func TestAccountJSONFieldNames(t *testing.T) {
	dir := t.TempDir()
	a := types.Account{Handle: "alice", Secret: "pw", Games: []types.Game{testGame("g1", "Zelda")}}
	if err := writeAccountsJSONL(dir, []types.Account{a}); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, accountsFileName))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	for _, field := range []string{`"handle"`, `"secret"`, `"games"`, `"game_id"`, `"custody"`, `"platform"`} {
		if !bytes.Contains(raw, []byte(field)) {
			t.Errorf("serialized account missing %s", field)
		}
	}
}
