package leaderboard

import (
	"sort"
	"time"

	"echochamber/internal/models"
)

const maxEntries = 100

// DefaultTop is how many entries the API returns.
const DefaultTop = 10

// Record converts a finished game into a leaderboard entry and returns the
// updated ranked set: sorted descending by score (stable, so ties keep
// insertion order) and truncated to the top 100. Score is the sum of the
// four final metrics; the ending is taken from the last endings entry.
func Record(entries []models.LeaderboardEntry, state models.GameState, now time.Time) []models.LeaderboardEntry {
	ending := ""
	if n := len(state.Endings); n > 0 {
		ending = state.Endings[n-1].Type
	}
	entries = append(entries, models.LeaderboardEntry{
		Score:          state.Freedom + state.Order + state.Trust + state.Diversity,
		Freedom:        state.Freedom,
		Order:          state.Order,
		Trust:          state.Trust,
		Diversity:      state.Diversity,
		Ending:         ending,
		CompletedAt:    now,
		ProcessedPosts: len(state.ProcessedPosts),
	})
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	if len(entries) > maxEntries {
		entries = entries[:maxEntries]
	}
	return entries
}

// Top returns the n highest-scoring entries without mutating the input.
func Top(entries []models.LeaderboardEntry, n int) []models.LeaderboardEntry {
	out := make([]models.LeaderboardEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if n < len(out) {
		out = out[:n]
	}
	return out
}
