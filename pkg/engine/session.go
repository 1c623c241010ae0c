package engine

import (
	"time"

	"github.com/mesh-intelligence/swapshelf/pkg/types"
)

// Session is the explicit single-session context: who is logged in, which
// game's swap menu is open, and when the session expires from inactivity.
// The open-menu selection is deliberately session state, not a field on the
// durable Game record; the shelf never sees it.
type Session struct {
	Handle   string    `json:"handle"`
	MenuGame string    `json:"menu_game,omitempty"` // pending swap subject; empty when no menu is open
	Deadline time.Time `json:"deadline"`
}

// NewSession starts a session for the given handle with an idle deadline.
func NewSession(handle string, idle time.Duration) *Session {
	return &Session{
		Handle:   handle,
		Deadline: time.Now().UTC().Add(idle),
	}
}

// Touch pushes the idle deadline forward. Called on every user action.
func (s *Session) Touch(idle time.Duration) {
	s.Deadline = time.Now().UTC().Add(idle)
}

// Expired reports whether the session's idle deadline has passed.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.Deadline)
}

// ClearSelection closes the open swap menu and drops the pending subject.
// Expiry and every collection mutation invalidate the selection this way.
func (s *Session) ClearSelection() {
	s.MenuGame = ""
}

// ToggleMenu opens the swap menu on the given game, closing any other open
// menu, or closes it if it is already open. At most one menu is open at a
// time. Opening is rejected on a game that cannot be swapped: an in-use
// game (ErrGameInUse) or the origin's on-loan marker (ErrGameOnLoan).
// Returns whether the menu is open after the call.
func (s *Session) ToggleMenu(acct types.Account, gameID string) (bool, error) {
	if s.MenuGame == gameID {
		s.ClearSelection()
		return false, nil
	}
	g, ok := acct.Game(gameID)
	if !ok {
		return false, ErrStaleSelection
	}
	if g.Custody == types.CustodyOnLoan {
		return false, types.ErrGameOnLoan
	}
	if g.InUse {
		return false, types.ErrGameInUse
	}
	s.MenuGame = gameID
	return true, nil
}

// Counterparts returns the handles the open menu may offer as swap targets:
// every other account for an owned game, only the original owner for a
// borrowed copy. The engine re-validates the choice on execution either way.
func (s *Session) Counterparts(accounts []types.Account) []string {
	if s.MenuGame == "" {
		return nil
	}
	active, ok := types.FindAccount(accounts, s.Handle)
	if !ok {
		return nil
	}
	g, ok := active.Game(s.MenuGame)
	if !ok {
		return nil
	}
	if g.Custody == types.CustodyBorrowed {
		return []string{g.OriginalOwner}
	}
	var out []string
	for i := range accounts {
		if accounts[i].Handle != s.Handle {
			out = append(out, accounts[i].Handle)
		}
	}
	return out
}
