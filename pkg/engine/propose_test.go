package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/swapshelf/pkg/types"
)

func TestProposeSetInUseGatesOnlyTurningOn(t *testing.T) {
	accounts := twoAccounts()
	s := NewSession("alice", time.Minute)

	op, err := ProposeSetInUse(s, accounts[0], "g1")
	require.NoError(t, err)
	assert.True(t, op.NeedsConfirm(), "turning in-use on forecloses swapping, so it is gated")

	updated, applied, err := op.Commit(true)
	require.NoError(t, err)
	require.True(t, applied)
	require.Len(t, updated, 1)

	// Toggling back off needs no confirmation.
	op, err = ProposeSetInUse(s, updated[0], "g1")
	require.NoError(t, err)
	assert.False(t, op.NeedsConfirm())
}

func TestProposeCommitDeclinedIsSilent(t *testing.T) {
	accounts := twoAccounts()
	s := NewSession("alice", time.Minute)

	op, err := ProposeRemove(s, accounts[0], "g1")
	require.NoError(t, err)
	require.True(t, op.NeedsConfirm())

	updated, applied, err := op.Commit(false)
	assert.NoError(t, err, "denied by user is not an error")
	assert.False(t, applied)
	assert.Nil(t, updated)
}

func TestProposeCommitClearsMenuSelection(t *testing.T) {
	accounts := twoAccounts()
	s := NewSession("alice", time.Minute)
	_, err := s.ToggleMenu(accounts[0], "g2")
	require.NoError(t, err)

	op, err := ProposeSetInUse(s, accounts[0], "g1")
	require.NoError(t, err)
	_, applied, err := op.Commit(true)
	require.NoError(t, err)
	require.True(t, applied)

	assert.Empty(t, s.MenuGame, "a status change invalidates the pending swap selection")
}

func TestProposeRemoveMarkerRejected(t *testing.T) {
	accounts := twoAccounts()
	updatedA, _, err := ExecuteSwap(accounts, "alice", "g1", "bob")
	require.NoError(t, err)

	s := NewSession("alice", time.Minute)
	_, err = ProposeRemove(s, updatedA, "g1")
	assert.ErrorIs(t, err, types.ErrGameOnLoan)
}

func TestProposeSwapHappyPath(t *testing.T) {
	accounts := twoAccounts()
	s := NewSession("alice", time.Minute)
	_, err := s.ToggleMenu(accounts[0], "g1")
	require.NoError(t, err)

	op, err := ProposeSwap(s, accounts, "bob")
	require.NoError(t, err)
	assert.True(t, op.NeedsConfirm())
	assert.Contains(t, op.Message, "Death Stranding")
	assert.Contains(t, op.Message, "bob")

	updated, applied, err := op.Commit(true)
	require.NoError(t, err)
	require.True(t, applied)
	require.Len(t, updated, 2, "exactly the two named accounts change")

	g, _ := updated[0].Game("g1")
	assert.Equal(t, types.CustodyOnLoan, g.Custody)
	g, _ = updated[1].Game("g1")
	assert.Equal(t, types.CustodyBorrowed, g.Custody)
	assert.Empty(t, s.MenuGame, "menu cleared after the swap")
}

func TestProposeSwapNoPendingSelection(t *testing.T) {
	accounts := twoAccounts()
	s := NewSession("alice", time.Minute)

	_, err := ProposeSwap(s, accounts, "bob")
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestProposeSwapNoSession(t *testing.T) {
	_, err := ProposeSwap(nil, twoAccounts(), "bob")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestProposeSwapStaleSelection(t *testing.T) {
	accounts := twoAccounts()
	s := NewSession("alice", time.Minute)
	_, err := s.ToggleMenu(accounts[0], "g1")
	require.NoError(t, err)

	// The game disappears between menu-open and swap-submit.
	removed, err := Remove(accounts[0], "g1")
	require.NoError(t, err)
	accounts = types.ReplaceAccounts(accounts, removed)

	_, err = ProposeSwap(s, accounts, "bob")
	assert.ErrorIs(t, err, ErrStaleSelection)
}

func TestProposeSwapSelfRejected(t *testing.T) {
	accounts := twoAccounts()
	s := NewSession("alice", time.Minute)
	_, err := s.ToggleMenu(accounts[0], "g1")
	require.NoError(t, err)

	_, err = ProposeSwap(s, accounts, "alice")
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestProposeSwapReturnMessage(t *testing.T) {
	accounts := twoAccounts()
	updatedA, updatedB, err := ExecuteSwap(accounts, "alice", "g1", "bob")
	require.NoError(t, err)
	accounts = types.ReplaceAccounts(accounts, updatedA, updatedB)

	s := NewSession("bob", time.Minute)
	bob, _ := types.FindAccount(accounts, "bob")
	_, err = s.ToggleMenu(bob, "g1")
	require.NoError(t, err)

	op, err := ProposeSwap(s, accounts, "alice")
	require.NoError(t, err)
	assert.Contains(t, op.Message, "Return")
}
