package game

import (
	"fmt"
	"time"

	"echochamber/internal/models"
)

// Moderation actions, mapping to impact-vector indexes 0, 1, 2.
const (
	ActionApprove = "approve"
	ActionWarn    = "warn"
	ActionDelete  = "delete"
)

func actionIndex(action string) (int, bool) {
	switch action {
	case ActionApprove:
		return 0, true
	case ActionWarn:
		return 1, true
	case ActionDelete:
		return 2, true
	}
	return 0, false
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func impactAt(vec []float64, i int) float64 {
	if i >= len(vec) {
		return 0
	}
	return vec[i]
}

// Resolve applies one moderation action to the given post and returns the
// next state: all four metrics shifted by the post's impact vectors and
// clamped to [0,100] in one step, day and currentPostIndex advanced, and the
// action appended to the processed log. The input state is returned
// unchanged when the action is unknown or the post does not exist.
func Resolve(state models.GameState, posts []models.Post, postID int, action string, now time.Time) (models.GameState, error) {
	idx, ok := actionIndex(action)
	if !ok {
		return state, fmt.Errorf("%w: unknown action %q", models.ErrValidation, action)
	}
	post, err := Lookup(posts, postID)
	if err != nil {
		return state, err
	}

	state.Freedom = clamp(state.Freedom + impactAt(post.FreedomImpact, idx))
	state.Order = clamp(state.Order + impactAt(post.OrderImpact, idx))
	state.Trust = clamp(state.Trust + impactAt(post.TrustImpact, idx))
	state.Diversity = clamp(state.Diversity + impactAt(post.DiversityImpact, idx))
	state.Day++
	state.CurrentPostIndex++
	state.ProcessedPosts = append(state.ProcessedPosts, models.ProcessedPost{
		PostID:    postID,
		Action:    action,
		Timestamp: now,
	})
	return state, nil
}
