package types

import "time"

// Platform tags. Every game carries exactly one.
const (
	PlatformPlaystation = "playstation"
	PlatformNintendo    = "nintendo"
	PlatformXbox        = "xbox"
)

// validPlatforms is the set of recognized platform values.
var validPlatforms = map[string]bool{
	PlatformPlaystation: true,
	PlatformNintendo:    true,
	PlatformXbox:        true,
}

// Custody states. A game record is in exactly one of these at any time.
//
// While a game is lent out, two records share one game ID: the origin keeps
// an "on-loan" marker and the counterpart holds the live "borrowed" copy.
// The marker is inert — it cannot be marked in use, removed, or lent again;
// only the counterpart returning the game clears it.
const (
	CustodyOwned    = "owned"
	CustodyOnLoan   = "on-loan"
	CustodyBorrowed = "borrowed"
)

// validCustody is the set of recognized custody values.
var validCustody = map[string]bool{
	CustodyOwned:    true,
	CustodyOnLoan:   true,
	CustodyBorrowed: true,
}

// Game represents a single game record in an account's collection.
// Title, CoverURL, and Platform are immutable once the game is added.
// OriginalOwner and SwapPartner are empty unless the game is part of an
// active swap (custody on-loan or borrowed).
type Game struct {
	GameID        string    `json:"game_id"`
	Title         string    `json:"title"`
	CoverURL      string    `json:"cover_url,omitempty"`
	Platform      string    `json:"platform"`
	InUse         bool      `json:"in_use"`
	Custody       string    `json:"custody"`
	OriginalOwner string    `json:"original_owner,omitempty"`
	SwapPartner   string    `json:"swap_partner,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewGame creates an owned, not-in-use game with the given ID and
// descriptive fields. The caller supplies the ID (UUID v7 in practice).
func NewGame(id, title, coverURL, platform string) (*Game, error) {
	g := &Game{
		GameID:    id,
		Title:     title,
		CoverURL:  coverURL,
		Platform:  platform,
		Custody:   CustodyOwned,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Validate checks that the game record is well-formed.
func (g *Game) Validate() error {
	if g.GameID == "" {
		return ErrInvalidID
	}
	if g.Title == "" {
		return ErrInvalidTitle
	}
	if !validPlatforms[g.Platform] {
		return ErrInvalidPlatform
	}
	if !validCustody[g.Custody] {
		return ErrInvalidCustody
	}
	if g.Custody == CustodyOwned {
		if g.OriginalOwner != "" || g.SwapPartner != "" {
			return ErrInvalidCustody
		}
	} else if g.OriginalOwner == "" || g.SwapPartner == "" {
		return ErrInvalidCustody
	}
	return nil
}

// Transferred reports whether this record is part of an active swap,
// on either side of it.
func (g *Game) Transferred() bool {
	return g.Custody == CustodyOnLoan || g.Custody == CustodyBorrowed
}

// ToggleInUse flips the in-use flag. An on-loan marker has no usable copy
// behind it, so toggling it is rejected with ErrGameOnLoan.
func (g *Game) ToggleInUse() error {
	if g.Custody == CustodyOnLoan {
		return ErrGameOnLoan
	}
	g.InUse = !g.InUse
	g.UpdatedAt = time.Now().UTC()
	return nil
}

// Lend converts an owned record into the origin's on-loan marker.
// Returns ErrGameInUse if the game is marked in use, ErrAlreadyLent if the
// record is already part of a swap.
func (g *Game) Lend(owner, partner string) error {
	if g.Custody != CustodyOwned {
		return ErrAlreadyLent
	}
	if g.InUse {
		return ErrGameInUse
	}
	g.Custody = CustodyOnLoan
	g.OriginalOwner = owner
	g.SwapPartner = partner
	g.UpdatedAt = time.Now().UTC()
	return nil
}

// Receive converts an owned record into the counterpart's live borrowed
// copy. Same guards as Lend; the borrowed copy always starts not in use.
func (g *Game) Receive(owner, partner string) error {
	if g.Custody != CustodyOwned {
		return ErrAlreadyLent
	}
	if g.InUse {
		return ErrGameInUse
	}
	g.Custody = CustodyBorrowed
	g.OriginalOwner = owner
	g.SwapPartner = partner
	g.InUse = false
	g.UpdatedAt = time.Now().UTC()
	return nil
}

// Return flips an on-loan marker back to an owned record and clears the
// provenance fields. Returns ErrNotOnLoan if the record is not a marker.
func (g *Game) Return() error {
	if g.Custody != CustodyOnLoan {
		return ErrNotOnLoan
	}
	g.Custody = CustodyOwned
	g.OriginalOwner = ""
	g.SwapPartner = ""
	g.InUse = false
	g.UpdatedAt = time.Now().UTC()
	return nil
}
