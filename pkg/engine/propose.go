package engine

import (
	"fmt"

	"github.com/mesh-intelligence/swapshelf/pkg/types"
)

// OpKind identifies the proposed operation.
type OpKind string

// Proposed operation kinds.
const (
	OpSetInUse OpKind = "set-in-use"
	OpRemove   OpKind = "remove"
	OpSwap     OpKind = "swap"
)

// PendingOp is a proposed mutation awaiting confirmation. Propose* validates
// the preconditions up front; Commit runs the transform. The confirmation
// collaborator sits between the two, outside the engine.
type PendingOp struct {
	Kind    OpKind
	Message string // confirmation prompt; empty when no gate applies

	sess  *Session
	apply func() ([]types.Account, error)
}

// NeedsConfirm reports whether the operation must be confirmed before
// Commit applies it.
func (op *PendingOp) NeedsConfirm() bool {
	return op.Message != ""
}

// Commit executes the proposed operation and returns the updated accounts.
// A declined confirmation (confirmed=false on a gated op) aborts silently:
// applied is false, no error, nothing mutated. On success the session's
// pending menu selection is cleared, since the collection changed under it.
func (op *PendingOp) Commit(confirmed bool) (updated []types.Account, applied bool, err error) {
	if op.NeedsConfirm() && !confirmed {
		return nil, false, nil
	}
	updated, err = op.apply()
	if err != nil {
		return nil, false, err
	}
	if op.sess != nil {
		op.sess.ClearSelection()
	}
	return updated, true, nil
}

// ProposeSetInUse proposes flipping the in-use flag on a game in the active
// account. Turning the flag on forecloses swapping, so that direction is
// confirmation-gated; turning it off is not.
func ProposeSetInUse(sess *Session, acct types.Account, gameID string) (*PendingOp, error) {
	g, ok := acct.Game(gameID)
	if !ok {
		return nil, ErrStaleSelection
	}
	if g.Custody == types.CustodyOnLoan {
		return nil, types.ErrGameOnLoan
	}

	msg := ""
	if !g.InUse {
		msg = fmt.Sprintf("A game that is in use cannot be swapped. Mark %q in use?", g.Title)
	}
	return &PendingOp{
		Kind:    OpSetInUse,
		Message: msg,
		sess:    sess,
		apply: func() ([]types.Account, error) {
			out, err := SetInUse(acct, gameID)
			if err != nil {
				return nil, err
			}
			return []types.Account{out}, nil
		},
	}, nil
}

// ProposeRemove proposes dropping a game from the active account's
// collection. Always confirmation-gated: removal is irreversible.
func ProposeRemove(sess *Session, acct types.Account, gameID string) (*PendingOp, error) {
	g, ok := acct.Game(gameID)
	if !ok {
		return nil, ErrStaleSelection
	}
	if g.Custody == types.CustodyOnLoan {
		return nil, types.ErrGameOnLoan
	}

	return &PendingOp{
		Kind:    OpRemove,
		Message: fmt.Sprintf("Remove %q from the collection for good?", g.Title),
		sess:    sess,
		apply: func() ([]types.Account, error) {
			out, err := Remove(acct, gameID)
			if err != nil {
				return nil, err
			}
			return []types.Account{out}, nil
		},
	}, nil
}

// ProposeSwap proposes swapping the session's pending game with the given
// counterpart. The full precondition set is checked here, before any prompt
// is shown; Commit re-runs the transform against the same account list and
// returns both updated accounts for a single shelf write.
func ProposeSwap(sess *Session, accounts []types.Account, counterpartHandle string) (*PendingOp, error) {
	if sess == nil || sess.Handle == "" {
		return nil, ErrNoSession
	}
	if sess.MenuGame == "" {
		return nil, ErrInvalidSelection
	}
	gameID := sess.MenuGame

	// Dry run so every precondition failure surfaces before the prompt.
	if _, _, err := ExecuteSwap(accounts, sess.Handle, gameID, counterpartHandle); err != nil {
		return nil, err
	}

	active, _ := types.FindAccount(accounts, sess.Handle)
	g, _ := active.Game(gameID)

	verb := "Swap"
	if g.Custody == types.CustodyBorrowed {
		verb = "Return"
	}
	activeHandle := sess.Handle
	return &PendingOp{
		Kind:    OpSwap,
		Message: fmt.Sprintf("%s %q with %s?", verb, g.Title, counterpartHandle),
		sess:    sess,
		apply: func() ([]types.Account, error) {
			a, c, err := ExecuteSwap(accounts, activeHandle, gameID, counterpartHandle)
			if err != nil {
				return nil, err
			}
			return []types.Account{a, c}, nil
		},
	}, nil
}
