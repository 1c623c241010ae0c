package engine

import (
	"fmt"

	"github.com/mesh-intelligence/swapshelf/pkg/types"
)

// SetInUse flips the in-use flag on the given game and returns the updated
// account. Rejected on an on-loan marker: there is no usable copy behind it.
func SetInUse(acct types.Account, gameID string) (types.Account, error) {
	out := acct.Clone()
	g, ok := out.Game(gameID)
	if !ok {
		return types.Account{}, ErrStaleSelection
	}
	if err := g.ToggleInUse(); err != nil {
		return types.Account{}, err
	}
	if err := out.SetGame(g); err != nil {
		return types.Account{}, err
	}
	return out, nil
}

// Remove drops the game from the account's collection and returns the
// updated account. An on-loan marker cannot be removed (the live copy sits
// at the counterpart); a borrowed copy can be, destroying the game for good
// with no return to the original owner.
func Remove(acct types.Account, gameID string) (types.Account, error) {
	out := acct.Clone()
	g, ok := out.Game(gameID)
	if !ok {
		return types.Account{}, ErrStaleSelection
	}
	if g.Custody == types.CustodyOnLoan {
		return types.Account{}, types.ErrGameOnLoan
	}
	if err := out.RemoveGame(gameID); err != nil {
		return types.Account{}, err
	}
	return out, nil
}

// ExecuteSwap computes the two updated accounts for a swap of the given
// game between the active account and the counterpart. The game is looked
// up by ID in the freshly supplied account list, never from a captured
// snapshot, so a selection that went stale since the menu was opened fails
// with ErrStaleSelection.
//
// An owned game is lent forward: the counterpart gains a borrowed copy with
// the same ID and the origin's record becomes the on-loan marker, both
// carrying identical provenance. A borrowed copy is returned: it must go
// back to its original owner, whose marker flips back to owned while the
// holder's record is deleted. Exactly the two returned accounts change;
// the caller commits both in one shelf write.
func ExecuteSwap(accounts []types.Account, activeHandle, gameID, counterpartHandle string) (types.Account, types.Account, error) {
	var zero types.Account

	if counterpartHandle == "" || counterpartHandle == activeHandle {
		return zero, zero, ErrInvalidSelection
	}

	active, ok := types.FindAccount(accounts, activeHandle)
	if !ok {
		return zero, zero, ErrAccountNotFound
	}
	counterpart, ok := types.FindAccount(accounts, counterpartHandle)
	if !ok {
		return zero, zero, ErrCounterpartNotFound
	}

	g, ok := active.Game(gameID)
	if !ok {
		return zero, zero, ErrStaleSelection
	}

	switch g.Custody {
	case types.CustodyOwned:
		marker := g
		if err := marker.Lend(active.Handle, counterpart.Handle); err != nil {
			return zero, zero, err
		}
		borrowed := g
		if err := borrowed.Receive(active.Handle, counterpart.Handle); err != nil {
			return zero, zero, err
		}
		if err := active.SetGame(marker); err != nil {
			return zero, zero, err
		}
		if err := counterpart.AddGame(borrowed); err != nil {
			return zero, zero, fmt.Errorf("counterpart already holds %s: %w", gameID, err)
		}
		return active, counterpart, nil

	case types.CustodyBorrowed:
		if counterpart.Handle != g.OriginalOwner {
			return zero, zero, ErrInvalidSelection
		}
		marker, ok := counterpart.Game(gameID)
		if !ok {
			return zero, zero, fmt.Errorf("original owner's marker for %s: %w", gameID, types.ErrNotFound)
		}
		if err := marker.Return(); err != nil {
			return zero, zero, err
		}
		if err := counterpart.SetGame(marker); err != nil {
			return zero, zero, err
		}
		if err := active.RemoveGame(gameID); err != nil {
			return zero, zero, err
		}
		return active, counterpart, nil

	default:
		// The on-loan marker is inert; only the holder can move the game.
		return zero, zero, types.ErrGameOnLoan
	}
}
