package game

import (
	"errors"
	"testing"
	"time"

	"echochamber/internal/models"
)

func testPost() models.Post {
	return models.Post{
		ID:              1,
		Type:            "misinformation",
		Title:           "t",
		Content:         "c",
		Author:          "a",
		FreedomImpact:   []float64{-5, -2, -8},
		OrderImpact:     []float64{10, 5, 14},
		TrustImpact:     []float64{6, 3, -4},
		DiversityImpact: []float64{-3, -1, 1},
	}
}

func TestResolveDeleteAppliesImpactVector(t *testing.T) {
	state := models.DefaultGameState()
	posts := []models.Post{testPost()}

	next, err := Resolve(state, posts, 1, ActionDelete, time.Now())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if next.Freedom != 42 || next.Order != 64 || next.Trust != 46 || next.Diversity != 51 {
		t.Fatalf("metrics = %v/%v/%v/%v, want 42/64/46/51",
			next.Freedom, next.Order, next.Trust, next.Diversity)
	}
	if next.CurrentPostIndex != 1 {
		t.Fatalf("currentPostIndex = %d, want 1", next.CurrentPostIndex)
	}
	if next.Day != 2 {
		t.Fatalf("day = %d, want 2", next.Day)
	}
	if next.GameStatus != models.StatusPlaying {
		t.Fatalf("status = %q, want playing", next.GameStatus)
	}
}

func TestResolveClampsAtZero(t *testing.T) {
	state := models.DefaultGameState()
	state.Freedom = 3

	next, err := Resolve(state, []models.Post{testPost()}, 1, ActionApprove, time.Now())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if next.Freedom != 0 {
		t.Fatalf("freedom = %v, want 0 (clamped)", next.Freedom)
	}
}

func TestResolveClampsAtHundred(t *testing.T) {
	state := models.DefaultGameState()
	state.Order = 95

	next, err := Resolve(state, []models.Post{testPost()}, 1, ActionDelete, time.Now())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if next.Order != 100 {
		t.Fatalf("order = %v, want 100 (clamped)", next.Order)
	}
}

func TestResolveMetricsStayInBounds(t *testing.T) {
	state := models.DefaultGameState()
	posts := SeedPosts()
	now := time.Now()

	for _, action := range []string{ActionApprove, ActionWarn, ActionDelete} {
		s := state
		for _, p := range posts {
			var err error
			s, err = Resolve(s, posts, p.ID, action, now)
			if err != nil {
				t.Fatalf("resolve %s on %d: %v", action, p.ID, err)
			}
			for name, v := range map[string]float64{
				"freedom": s.Freedom, "order": s.Order, "trust": s.Trust, "diversity": s.Diversity,
			} {
				if v < 0 || v > 100 {
					t.Fatalf("%s out of bounds after %s on %d: %v", name, action, p.ID, v)
				}
			}
		}
	}
}

func TestResolveAppendsToLog(t *testing.T) {
	state := models.DefaultGameState()
	posts := SeedPosts()
	now := time.Now()

	state, err := Resolve(state, posts, 1, ActionApprove, now)
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	state, err = Resolve(state, posts, 2, ActionWarn, now)
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if len(state.ProcessedPosts) != 2 {
		t.Fatalf("log length = %d, want 2 (log is append-only)", len(state.ProcessedPosts))
	}
	if state.ProcessedPosts[0].PostID != 1 || state.ProcessedPosts[0].Action != ActionApprove {
		t.Fatalf("first log entry = %+v", state.ProcessedPosts[0])
	}
	if state.ProcessedPosts[1].PostID != 2 || state.ProcessedPosts[1].Action != ActionWarn {
		t.Fatalf("second log entry = %+v", state.ProcessedPosts[1])
	}
	if state.CurrentPostIndex != 2 {
		t.Fatalf("currentPostIndex = %d, want 2", state.CurrentPostIndex)
	}
}

func TestResolveUnknownPostLeavesStateUntouched(t *testing.T) {
	state := models.DefaultGameState()
	next, err := Resolve(state, []models.Post{testPost()}, 99, ActionApprove, time.Now())
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if next.CurrentPostIndex != 0 || len(next.ProcessedPosts) != 0 || next.Freedom != 50 {
		t.Fatalf("state mutated on failed resolve: %+v", next)
	}
}

func TestResolveUnknownAction(t *testing.T) {
	state := models.DefaultGameState()
	next, err := Resolve(state, []models.Post{testPost()}, 1, "ban", time.Now())
	if !errors.Is(err, models.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if next.CurrentPostIndex != 0 {
		t.Fatalf("state mutated on invalid action: %+v", next)
	}
}
