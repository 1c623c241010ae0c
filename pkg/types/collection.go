package types

import (
	"sort"
	"strings"
)

// SortOrder selects the ordering of a listed collection.
type SortOrder string

// Supported sort orders. SortInput keeps insertion order.
const (
	SortInput    SortOrder = "input"
	SortName     SortOrder = "name"
	SortPlatform SortOrder = "platform"
	SortSwapped  SortOrder = "swapped"
	SortPlaying  SortOrder = "playing"
)

// ValidSortOrder reports whether order names a supported sort.
func ValidSortOrder(order SortOrder) bool {
	switch order {
	case SortInput, SortName, SortPlatform, SortSwapped, SortPlaying:
		return true
	}
	return false
}

// SearchGames returns the games whose title contains the keyword,
// case-insensitive. An empty keyword returns everything.
func SearchGames(games []Game, keyword string) []Game {
	if keyword == "" {
		return games
	}
	needle := strings.ToLower(keyword)
	var out []Game
	for _, g := range games {
		if strings.Contains(strings.ToLower(g.Title), needle) {
			out = append(out, g)
		}
	}
	return out
}

// SortGames returns a sorted copy of the collection. Sorting is stable, so
// equal keys keep insertion order: "swapped" lists untransferred games first
// and "playing" lists in-use games first.
func SortGames(games []Game, order SortOrder) []Game {
	out := make([]Game, len(games))
	copy(out, games)

	switch order {
	case SortName:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Title) < strings.ToLower(out[j].Title)
		})
	case SortPlatform:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Platform < out[j].Platform
		})
	case SortSwapped:
		sort.SliceStable(out, func(i, j int) bool {
			return !out[i].Transferred() && out[j].Transferred()
		})
	case SortPlaying:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].InUse && !out[j].InUse
		})
	}
	return out
}
