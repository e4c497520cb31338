package game

import "echochamber/internal/models"

// Ending types.
const (
	EndingAnarchy       = "collapse-into-anarchy"
	EndingChaos         = "chaotic-overload"
	EndingOrderCollapse = "order-collapse"
	EndingTrustLoss     = "trust-loss"
	EndingAuthoritarian = "authoritarian-capture"
	EndingEchoChamber   = "echo-chamber"
	EndingTrue          = "true-ending"
)

type endingRule struct {
	match  func(s models.GameState, totalPosts int) bool
	ending models.Ending
}

// Ordered decision list: the first matching rule wins when several
// conditions hold after the same action.
var endingRules = []endingRule{
	{
		match: func(s models.GameState, _ int) bool { return s.Freedom <= 0 },
		ending: models.Ending{
			Type:    EndingAnarchy,
			Message: "Freedom has vanished completely. The community has collapsed into anarchy.",
		},
	},
	{
		match: func(s models.GameState, _ int) bool { return s.Freedom >= 100 && s.Order >= 80 },
		ending: models.Ending{
			Type:    EndingChaos,
			Message: "Unchecked freedom collided with rigid order and the community tore itself apart.",
		},
	},
	{
		match: func(s models.GameState, _ int) bool { return s.Order <= 0 },
		ending: models.Ending{
			Type:    EndingOrderCollapse,
			Message: "Order has broken down entirely. The community is in disarray.",
		},
	},
	{
		match: func(s models.GameState, _ int) bool { return s.Trust <= 0 },
		ending: models.Ending{
			Type:    EndingTrustLoss,
			Message: "Users have lost all trust in the platform.",
		},
	},
	{
		match: func(s models.GameState, _ int) bool { return s.Trust >= 100 && s.Order >= 80 },
		ending: models.Ending{
			Type:    EndingAuthoritarian,
			Message: "The community has fallen under total moderator control.",
		},
	},
	{
		match: func(s models.GameState, _ int) bool { return s.Diversity <= 0 },
		ending: models.Ending{
			Type:    EndingEchoChamber,
			Message: "Every voice sounds the same. The community has become an echo chamber.",
		},
	},
	{
		match: func(s models.GameState, totalPosts int) bool { return s.CurrentPostIndex >= totalPosts },
		ending: models.Ending{
			Type:    EndingTrue,
			Message: "Every post was handled while keeping all metrics in balance. The community found its ideal equilibrium.",
		},
	},
}

// Evaluate checks the post-action state against the ordered ending rules and
// marks the game ended when one fires, appending exactly one ending record.
// Evaluating an already-ended state is a no-op.
func Evaluate(state models.GameState, totalPosts int) models.GameState {
	if state.GameStatus == models.StatusEnded {
		return state
	}
	for _, r := range endingRules {
		if r.match(state, totalPosts) {
			state.GameStatus = models.StatusEnded
			state.Endings = append(state.Endings, r.ending)
			break
		}
	}
	return state
}
