package reputation

import (
	"sort"
	"time"
)

// BadgeLevel bands a weighted score into a certification badge.
type BadgeLevel string

const (
	BadgePlatinum BadgeLevel = "PLATINUM" // > 0.95
	BadgeGold     BadgeLevel = "GOLD"     // > 0.85
	BadgeSilver   BadgeLevel = "SILVER"   // > 0.70
	BadgeBronze   BadgeLevel = "BRONZE"   // > 0.50
	BadgeNone     BadgeLevel = ""         // <= 0.50
)

// Badge returns the badge level for a weighted score.
func Badge(score float64) BadgeLevel {
	switch {
	case score > 0.95:
		return BadgePlatinum
	case score > 0.85:
		return BadgeGold
	case score > 0.70:
		return BadgeSilver
	case score > 0.50:
		return BadgeBronze
	default:
		return BadgeNone
	}
}

// LeaderboardEntry is one ranked agent.
type LeaderboardEntry struct {
	Rank  int        `json:"rank"`
	Score Score      `json:"score"`
	Badge BadgeLevel `json:"badge"`
}

// Leaderboard is a deterministic ranking of agents by weighted score,
// highest first, with agent identity hash as the tiebreak.
type Leaderboard struct {
	ComputedAt time.Time          `json:"computed_at"`
	Entries    []LeaderboardEntry `json:"entries"`
}

// NewLeaderboard ranks the given scores.
func NewLeaderboard(scores []Score, computedAt time.Time) Leaderboard {
	entries := make([]LeaderboardEntry, 0, len(scores))
	for _, s := range scores {
		entries = append(entries, LeaderboardEntry{
			Score: s,
			Badge: Badge(s.WeightedScore),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score.WeightedScore != entries[j].Score.WeightedScore {
			return entries[i].Score.WeightedScore > entries[j].Score.WeightedScore
		}
		return entries[i].Score.AgentIdentityHash < entries[j].Score.AgentIdentityHash
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return Leaderboard{ComputedAt: computedAt, Entries: entries}
}

// TopN returns the first n entries.
func (l Leaderboard) TopN(n int) []LeaderboardEntry {
	if n > len(l.Entries) {
		n = len(l.Entries)
	}
	result := make([]LeaderboardEntry, n)
	copy(result, l.Entries[:n])
	return result
}

// ByBadge returns the entries holding a specific badge level.
func (l Leaderboard) ByBadge(badge BadgeLevel) []LeaderboardEntry {
	result := []LeaderboardEntry{}
	for _, e := range l.Entries {
		if e.Badge == badge {
			result = append(result, e)
		}
	}
	return result
}
