package sqlite

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mesh-intelligence/swapshelf/pkg/types"
)

func testGame(id, title string) types.Game {
	return types.Game{
		GameID:    id,
		Title:     title,
		Platform:  types.PlatformNintendo,
		Custody:   types.CustodyOwned,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		UpdatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func testAccounts() []types.Account {
	return []types.Account{
		{Handle: "alice", Secret: "pw1", Games: []types.Game{testGame("g1", "Zelda"), testGame("g2", "Animal Crossing")}},
		{Handle: "bob", Secret: "pw2", Games: []types.Game{testGame("g3", "Sea of Thieves")}},
	}
}

func TestBackendAttach(t *testing.T) {
	tmpDir := t.TempDir()

	b := NewBackend()
	config := types.Config{Backend: types.BackendSQLite, DataDir: tmpDir}

	if err := b.Attach(config); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	defer b.Detach()

	dbPath := filepath.Join(tmpDir, dbFileName)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("%s not created", dbFileName)
	}

	if !b.FirstRun() {
		t.Error("expected FirstRun on a fresh data dir")
	}

	if err := b.Attach(config); err != types.ErrAlreadyAttached {
		t.Errorf("expected ErrAlreadyAttached, got %v", err)
	}
}

func TestBackendAttachRejectsBadConfig(t *testing.T) {
	b := NewBackend()
	err := b.Attach(types.Config{Backend: "postgres", DataDir: t.TempDir()})
	if err != types.ErrBackendUnknown {
		t.Errorf("expected ErrBackendUnknown, got %v", err)
	}
}

func TestBackendDetach(t *testing.T) {
	b := NewBackend()
	config := types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}
	if err := b.Attach(config); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}

	if err := b.Detach(); err != nil {
		t.Fatalf("Detach failed: %v", err)
	}
	if err := b.Detach(); err != nil {
		t.Errorf("second Detach should not error, got %v", err)
	}

	if _, err := b.Load(); err != types.ErrShelfDetached {
		t.Errorf("expected ErrShelfDetached from Load, got %v", err)
	}
	if err := b.Commit(nil); err != types.ErrShelfDetached {
		t.Errorf("expected ErrShelfDetached from Commit, got %v", err)
	}
}

func TestBackendCommitLoadRoundTrip(t *testing.T) {
	b := NewBackend()
	config := types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}
	if err := b.Attach(config); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	defer b.Detach()

	want := testAccounts()
	if err := b.Commit(want); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	got, err := b.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("loaded %d accounts, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Handle != want[i].Handle {
			t.Errorf("account %d: handle %q, want %q", i, got[i].Handle, want[i].Handle)
		}
		if len(got[i].Games) != len(want[i].Games) {
			t.Fatalf("account %s: %d games, want %d", want[i].Handle, len(got[i].Games), len(want[i].Games))
		}
		for j := range want[i].Games {
			w, g := want[i].Games[j], got[i].Games[j]
			if g.GameID != w.GameID || g.Title != w.Title || g.Platform != w.Platform || g.Custody != w.Custody {
				t.Errorf("account %s game %d: got %+v, want %+v", want[i].Handle, j, g, w)
			}
		}
	}

	if b.FirstRun() {
		t.Error("FirstRun should clear after a commit")
	}
}

func TestBackendCommitIsIdempotent(t *testing.T) {
	b := NewBackend()
	config := types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}
	if err := b.Attach(config); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	defer b.Detach()

	want := testAccounts()
	for i := 0; i < 3; i++ {
		if err := b.Commit(want); err != nil {
			t.Fatalf("Commit %d failed: %v", i, err)
		}
	}

	got, err := b.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got) != 2 || len(got[0].Games) != 2 || len(got[1].Games) != 1 {
		t.Errorf("repeated commits changed the state: %+v", got)
	}
}

func TestBackendCommitValidates(t *testing.T) {
	b := NewBackend()
	config := types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}
	if err := b.Attach(config); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	defer b.Detach()

	bad := []types.Account{{Handle: "alice"}, {Handle: "alice"}}
	if err := b.Commit(bad); err != types.ErrDuplicateHandle {
		t.Errorf("expected ErrDuplicateHandle, got %v", err)
	}

	// The failed commit must not leave partial rows behind.
	got, err := b.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("failed commit left %d accounts behind", len(got))
	}
}

func TestBackendReattachLoadsCommittedState(t *testing.T) {
	tmpDir := t.TempDir()
	config := types.Config{Backend: types.BackendSQLite, DataDir: tmpDir}

	b := NewBackend()
	if err := b.Attach(config); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	if err := b.Commit(testAccounts()); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if err := b.Detach(); err != nil {
		t.Fatalf("Detach failed: %v", err)
	}

	// A second backend on the same data dir sees the committed state.
	b2 := NewBackend()
	if err := b2.Attach(config); err != nil {
		t.Fatalf("re-Attach failed: %v", err)
	}
	defer b2.Detach()

	if b2.FirstRun() {
		t.Error("FirstRun should be false once accounts.jsonl exists")
	}
	got, err := b2.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("loaded %d accounts after reattach, want 2", len(got))
	}
	if got[0].Handle != "alice" || got[1].Handle != "bob" {
		t.Errorf("account order not preserved: %q, %q", got[0].Handle, got[1].Handle)
	}
}

func TestBackendSwapStatePersists(t *testing.T) {
	tmpDir := t.TempDir()
	config := types.Config{Backend: types.BackendSQLite, DataDir: tmpDir}

	b := NewBackend()
	if err := b.Attach(config); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}

	accounts := testAccounts()
	// Hand-build a lent-out state: alice's marker plus bob's borrowed copy
	// sharing one id.
	marker := &accounts[0].Games[0]
	if err := marker.Lend("alice", "bob"); err != nil {
		t.Fatalf("Lend failed: %v", err)
	}
	borrowed := testGame("g1", "Zelda")
	if err := borrowed.Receive("alice", "bob"); err != nil {
		t.Fatalf("Receive failed: %v", err)
	}
	accounts[1].Games = append(accounts[1].Games, borrowed)

	if err := b.Commit(accounts); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	b.Detach()

	b2 := NewBackend()
	if err := b2.Attach(config); err != nil {
		t.Fatalf("re-Attach failed: %v", err)
	}
	defer b2.Detach()

	got, err := b2.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	g, ok := got[0].Game("g1")
	if !ok || g.Custody != types.CustodyOnLoan || g.OriginalOwner != "alice" || g.SwapPartner != "bob" {
		t.Errorf("marker not persisted: %+v", g)
	}
	g, ok = got[1].Game("g1")
	if !ok || g.Custody != types.CustodyBorrowed || g.OriginalOwner != "alice" {
		t.Errorf("borrowed copy not persisted: %+v", g)
	}
}
