// Demo accounts seeded on first run.
package main

import (
	"github.com/google/uuid"

	"github.com/mesh-intelligence/swapshelf/pkg/types"
)

// newID returns a UUID v7 string for a new game.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source does.
		panic(err)
	}
	return id.String()
}

// seedGame builds a starter game; the fixed titles and platforms below are
// always valid.
func seedGame(title, cover, platform string) types.Game {
	g, err := types.NewGame(newID(), title, cover, platform)
	if err != nil {
		panic(err)
	}
	return *g
}

// DefaultAccounts returns the three demo accounts a fresh shelf starts with.
func DefaultAccounts() []types.Account {
	return []types.Account{
		{
			Handle: "user1",
			Secret: "password1",
			Games: []types.Game{
				seedGame("Death Stranding", "https://cdn2.unrealengine.com/death-stranding-home.jpg", types.PlatformPlaystation),
				seedGame("Death Stranding 2", "https://i.ytimg.com/vi/6cs-A1rNvEE/maxresdefault.jpg", types.PlatformPlaystation),
				seedGame("Zelda Breath of the Wild", "https://gaming-cdn.com/images/products/2616/orig/zelda-botw-cover.jpg", types.PlatformNintendo),
				seedGame("Sea of Thieves", "https://cms-assets.xboxservices.com/assets/sea-of-thieves.jpg", types.PlatformXbox),
			},
		},
		{
			Handle: "user2",
			Secret: "password2",
			Games: []types.Game{
				seedGame("Animal Crossing", "https://ac-pocketcamp.com/official_fb_share_en-US.jpg", types.PlatformNintendo),
			},
		},
		{
			Handle: "user3",
			Secret: "password3",
			Games: []types.Game{
				seedGame("Animal Crossing", "https://ac-pocketcamp.com/official_fb_share_en-US.jpg", types.PlatformNintendo),
			},
		},
	}
}
