package models

import (
	"encoding/json"
	"errors"
	"time"
)

// Error kinds shared by every layer. Handlers map these to HTTP status
// codes; anything else from the store is treated as a server failure.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

// Post is one moderation-able item in the catalog. Each impact field is an
// ordered triple of metric deltas indexed by action: [approve, warn, delete].
type Post struct {
	ID              int       `json:"id"`
	Type            string    `json:"type"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	Author          string    `json:"author"`
	FreedomImpact   []float64 `json:"freedomImpact"`
	OrderImpact     []float64 `json:"orderImpact"`
	TrustImpact     []float64 `json:"trustImpact"`
	DiversityImpact []float64 `json:"diversityImpact"`
}

// ProcessedPost is one entry in the append-only action log.
type ProcessedPost struct {
	PostID    int       `json:"postId"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// Ending is a terminal game outcome. The last entry of GameState.Endings is
// the authoritative one.
type Ending struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

const (
	StatusPlaying = "playing"
	StatusEnded   = "ended"
)

// GameState is the full snapshot of the single running game session.
// All four metrics are clamped to [0,100].
type GameState struct {
	Day              int             `json:"day"`
	Freedom          float64         `json:"freedom"`
	Order            float64         `json:"order"`
	Trust            float64         `json:"trust"`
	Diversity        float64         `json:"diversity"`
	CurrentPostIndex int             `json:"currentPostIndex"`
	ProcessedPosts   []ProcessedPost `json:"processedPosts"`
	GameStatus       string          `json:"gameStatus"`
	Endings          []Ending        `json:"endings"`
}

// DefaultGameState returns the documented initial state: day 1, all metrics
// at 50, empty history, status playing.
func DefaultGameState() GameState {
	return GameState{
		Day:              1,
		Freedom:          50,
		Order:            50,
		Trust:            50,
		Diversity:        50,
		CurrentPostIndex: 0,
		ProcessedPosts:   []ProcessedPost{},
		GameStatus:       StatusPlaying,
		Endings:          []Ending{},
	}
}

// UnmarshalJSON backfills fields missing from older stored snapshots with
// the documented defaults, so a state saved before a metric existed still
// loads with that metric at 50.
func (s *GameState) UnmarshalJSON(data []byte) error {
	var raw struct {
		Day              *int            `json:"day"`
		Freedom          *float64        `json:"freedom"`
		Order            *float64        `json:"order"`
		Trust            *float64        `json:"trust"`
		Diversity        *float64        `json:"diversity"`
		CurrentPostIndex *int            `json:"currentPostIndex"`
		ProcessedPosts   []ProcessedPost `json:"processedPosts"`
		GameStatus       *string         `json:"gameStatus"`
		Endings          []Ending        `json:"endings"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = DefaultGameState()
	if raw.Day != nil {
		s.Day = *raw.Day
	}
	if raw.Freedom != nil {
		s.Freedom = *raw.Freedom
	}
	if raw.Order != nil {
		s.Order = *raw.Order
	}
	if raw.Trust != nil {
		s.Trust = *raw.Trust
	}
	if raw.Diversity != nil {
		s.Diversity = *raw.Diversity
	}
	if raw.CurrentPostIndex != nil {
		s.CurrentPostIndex = *raw.CurrentPostIndex
	}
	if raw.ProcessedPosts != nil {
		s.ProcessedPosts = raw.ProcessedPosts
	}
	if raw.GameStatus != nil {
		s.GameStatus = *raw.GameStatus
	}
	if raw.Endings != nil {
		s.Endings = raw.Endings
	}
	return nil
}

// LeaderboardEntry is an immutable record of one completed game.
type LeaderboardEntry struct {
	Score          float64   `json:"score"`
	Freedom        float64   `json:"freedom"`
	Order          float64   `json:"order"`
	Trust          float64   `json:"trust"`
	Diversity      float64   `json:"diversity"`
	Ending         string    `json:"ending"`
	CompletedAt    time.Time `json:"completedAt"`
	ProcessedPosts int       `json:"processedPosts"`
}

// User is a flat directory account. Only the bcrypt hash is persisted.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}
