package game

import (
	"fmt"

	"echochamber/internal/models"
)

// Lookup finds a post by id in the catalog.
func Lookup(posts []models.Post, id int) (models.Post, error) {
	for _, p := range posts {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Post{}, fmt.Errorf("%w: post %d", models.ErrNotFound, id)
}

// NextID returns max existing id + 1. Ids are never reused, even after a
// post is deleted from the catalog.
func NextID(posts []models.Post) int {
	max := 0
	for _, p := range posts {
		if p.ID > max {
			max = p.ID
		}
	}
	return max + 1
}

// SeedPosts is the default catalog installed when the store has no posts.
func SeedPosts() []models.Post {
	return []models.Post{
		{
			ID:              1,
			Type:            "misinformation",
			Title:           "Tap water causes memory loss, insider reveals",
			Content:         "A former waterworks employee claims the city has been adding a chemical that erodes long-term memory. Share before this gets taken down!",
			Author:          "truth_seeker_88",
			FreedomImpact:   []float64{-5, -2, -8},
			OrderImpact:     []float64{10, 5, 14},
			TrustImpact:     []float64{6, 3, -4},
			DiversityImpact: []float64{-3, -1, 1},
		},
		{
			ID:              2,
			Type:            "incitement",
			Title:           "It's time to flood the mods' inboxes",
			Content:         "They keep silencing us. Everyone pick a moderator and send them a hundred reports tonight. Let's see how they like it.",
			Author:          "angry_crowd",
			FreedomImpact:   []float64{8, 2, -10},
			OrderImpact:     []float64{-12, -4, 9},
			TrustImpact:     []float64{-6, -2, 4},
			DiversityImpact: []float64{2, 1, -3},
		},
		{
			ID:              3,
			Type:            "criticism",
			Title:           "The new ranking algorithm buries small voices",
			Content:         "Since the update, posts from accounts under 100 followers barely surface. Here is a week of data showing the drop. We deserve an explanation.",
			Author:          "data_gardener",
			FreedomImpact:   []float64{6, 1, -9},
			OrderImpact:     []float64{-4, 2, 6},
			TrustImpact:     []float64{5, -1, -8},
			DiversityImpact: []float64{7, 3, -6},
		},
		{
			ID:              4,
			Type:            "debate",
			Title:           "Should anonymous accounts be allowed to vote in polls?",
			Content:         "Anonymity protects whistleblowers but also enables brigading. Where should this community draw the line? Genuinely curious about both sides.",
			Author:          "fence_sitter",
			FreedomImpact:   []float64{5, 2, -7},
			OrderImpact:     []float64{-5, 1, 5},
			TrustImpact:     []float64{2, 1, -4},
			DiversityImpact: []float64{8, 4, -9},
		},
		{
			ID:              5,
			Type:            "informative",
			Title:           "A beginner's guide to spotting doctored screenshots",
			Content:         "Three quick checks: mismatched font anti-aliasing, impossible timestamps, and broken status bars. Full walkthrough with examples inside.",
			Author:          "pixel_detective",
			FreedomImpact:   []float64{4, 1, -6},
			OrderImpact:     []float64{3, 1, 2},
			TrustImpact:     []float64{9, 4, -7},
			DiversityImpact: []float64{3, 1, -2},
		},
		{
			ID:              6,
			Type:            "misinformation",
			Title:           "Vote counting machines ran on hotel wifi",
			Content:         "My cousin works security at the convention center and says the tally machines were connected to the public guest network all night.",
			Author:          "concerned_citizen_2",
			FreedomImpact:   []float64{-7, -3, -6},
			OrderImpact:     []float64{8, 4, 11},
			TrustImpact:     []float64{-9, -4, 5},
			DiversityImpact: []float64{-2, -1, 1},
		},
		{
			ID:              7,
			Type:            "incitement",
			Title:           "Dox the reviewer who tanked our restaurant",
			Content:         "Someone left a one-star review full of lies. I have their username. Who can find out where they live? They need to learn a lesson.",
			Author:          "family_business",
			FreedomImpact:   []float64{6, 1, -8},
			OrderImpact:     []float64{-14, -6, 12},
			TrustImpact:     []float64{-8, -3, 6},
			DiversityImpact: []float64{1, 0, -2},
		},
		{
			ID:              8,
			Type:            "criticism",
			Title:           "Moderation here is inconsistent and it shows",
			Content:         "Two nearly identical posts, one removed, one promoted to the front page. Until the rules are applied evenly, nobody will respect them.",
			Author:          "rules_lawyer",
			FreedomImpact:   []float64{7, 2, -10},
			OrderImpact:     []float64{-6, -1, 7},
			TrustImpact:     []float64{4, -2, -9},
			DiversityImpact: []float64{5, 2, -4},
		},
		{
			ID:              9,
			Type:            "debate",
			Title:           "Is downranking the same as censorship?",
			Content:         "Nothing gets deleted, but nobody sees it either. If a post falls in the feed and no one is around to read it, was it moderated?",
			Author:          "armchair_philosopher",
			FreedomImpact:   []float64{4, 2, -6},
			OrderImpact:     []float64{-3, 1, 4},
			TrustImpact:     []float64{1, 0, -3},
			DiversityImpact: []float64{9, 4, -8},
		},
		{
			ID:              10,
			Type:            "informative",
			Title:           "Community survey results: what you said about the feed",
			Content:         "1,200 responses. 61% want chronological order back, 24% like the current ranking, 15% want both as a toggle. Raw data linked below.",
			Author:          "volunteer_stats",
			FreedomImpact:   []float64{3, 1, -5},
			OrderImpact:     []float64{4, 2, 1},
			TrustImpact:     []float64{8, 3, -6},
			DiversityImpact: []float64{4, 2, -3},
		},
	}
}
