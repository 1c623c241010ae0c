package types

// Account represents a catalog user and the ordered collection of games
// they currently hold. The handle is unique across the shelf and immutable
// once created. The secret is an opaque credential checked only by the
// session layer; the engine never reads it.
type Account struct {
	Handle string `json:"handle"`
	Secret string `json:"secret"`
	Games  []Game `json:"games"`
}

// Validate checks that the account is well-formed: non-empty handle, every
// game valid, and no two games sharing an ID.
func (a *Account) Validate() error {
	if a.Handle == "" {
		return ErrInvalidHandle
	}
	seen := make(map[string]bool, len(a.Games))
	for i := range a.Games {
		if err := a.Games[i].Validate(); err != nil {
			return err
		}
		if seen[a.Games[i].GameID] {
			return ErrDuplicateGame
		}
		seen[a.Games[i].GameID] = true
	}
	return nil
}

// Clone returns a deep copy of the account. Callers mutate the copy and
// commit it; the original is never aliased.
func (a Account) Clone() Account {
	cp := a
	cp.Games = make([]Game, len(a.Games))
	copy(cp.Games, a.Games)
	return cp
}

// Game returns a copy of the game with the given ID and whether it exists.
func (a *Account) Game(id string) (Game, bool) {
	for i := range a.Games {
		if a.Games[i].GameID == id {
			return a.Games[i], true
		}
	}
	return Game{}, false
}

// AddGame appends a game to the collection.
// Returns ErrDuplicateGame if the ID is already present.
func (a *Account) AddGame(g Game) error {
	if _, ok := a.Game(g.GameID); ok {
		return ErrDuplicateGame
	}
	a.Games = append(a.Games, g)
	return nil
}

// SetGame replaces the record with the same ID in place.
// Returns ErrNotFound if no such game exists.
func (a *Account) SetGame(g Game) error {
	for i := range a.Games {
		if a.Games[i].GameID == g.GameID {
			a.Games[i] = g
			return nil
		}
	}
	return ErrNotFound
}

// RemoveGame drops the record with the given ID, preserving the order of
// the remaining games. Returns ErrNotFound if no such game exists.
func (a *Account) RemoveGame(id string) error {
	for i := range a.Games {
		if a.Games[i].GameID == id {
			a.Games = append(a.Games[:i], a.Games[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Authenticate reports whether the given secret matches. Plain equality;
// credential policy is out of scope for the catalog core.
func (a *Account) Authenticate(secret string) bool {
	return a.Secret != "" && a.Secret == secret
}

// FindAccount returns a deep copy of the account with the given handle.
func FindAccount(accounts []Account, handle string) (Account, bool) {
	for i := range accounts {
		if accounts[i].Handle == handle {
			return accounts[i].Clone(), true
		}
	}
	return Account{}, false
}

// ReplaceAccounts returns a new slice where each account whose handle
// matches one of the updated records is replaced. Order is preserved and
// no other account is touched.
func ReplaceAccounts(accounts []Account, updated ...Account) []Account {
	out := make([]Account, len(accounts))
	for i := range accounts {
		out[i] = accounts[i]
		for _, u := range updated {
			if accounts[i].Handle == u.Handle {
				out[i] = u
			}
		}
	}
	return out
}

// ValidateAccounts checks every account and rejects duplicate handles.
func ValidateAccounts(accounts []Account) error {
	seen := make(map[string]bool, len(accounts))
	for i := range accounts {
		if err := accounts[i].Validate(); err != nil {
			return err
		}
		if seen[accounts[i].Handle] {
			return ErrDuplicateHandle
		}
		seen[accounts[i].Handle] = true
	}
	return nil
}

// CollectionStats summarizes an account's collection for display.
type CollectionStats struct {
	Games    int // total records, markers included
	Playing  int // records marked in use
	Sent     int // on-loan markers (this account is the original owner)
	Received int // borrowed copies held here
	Own      int // percentage of records that are the account's own
	Borrowed int // percentage of records borrowed from others
}

// Stats computes the collection summary the way the original catalog
// presents it: sent games still count toward the total because the marker
// record stays in the collection.
func (a *Account) Stats() CollectionStats {
	s := CollectionStats{Games: len(a.Games)}
	own := 0
	for i := range a.Games {
		g := &a.Games[i]
		if g.InUse {
			s.Playing++
		}
		switch g.Custody {
		case CustodyOnLoan:
			s.Sent++
			own++
		case CustodyBorrowed:
			s.Received++
		default:
			own++
		}
	}
	if s.Games > 0 {
		s.Own = int(float64(own)/float64(s.Games)*100 + 0.5)
		s.Borrowed = int(float64(s.Received)/float64(s.Games)*100 + 0.5)
	}
	return s
}
