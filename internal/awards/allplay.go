package awards

import (
	"sort"

	"github.com/omarshaarawi/trophybot/internal/models"
)

// allPlayWins counts, for each team, how many teams it would have beaten
// had it played everyone. Teams are ranked by a stable sort on score, so
// equal scores get distinct adjacent ranks in enumeration order.
func allPlayWins(scores []TeamScore) map[int]int {
	ranked := make([]TeamScore, len(scores))
	copy(ranked, scores)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	n := len(ranked)
	wins := make(map[int]int, n)
	for i, s := range ranked {
		wins[s.TeamID] = n - 1 - i
	}
	return wins
}

// realWins maps every scoring team to 1 when it won a head-to-head this
// week and 0 otherwise. Ties and byes count as 0.
func realWins(matchups []models.Matchup, results []MatchResult) map[int]int {
	wins := make(map[int]int)
	for _, m := range matchups {
		for _, side := range m.Sides() {
			wins[side.TeamID] = 0
		}
	}
	for _, r := range results {
		wins[r.WinnerID] = 1
	}
	return wins
}

// luck picks Lucky from the week's winners (fewest all-play wins) and
// Unlucky from teams that lost or tied (most all-play wins). Teams on a
// bye are in neither pool.
func luck(matchups []models.Matchup, scores []TeamScore, allPlay, real map[int]int) (*LuckAward, *LuckAward) {
	played := make(map[int]bool)
	for _, m := range matchups {
		if !m.IsHeadToHead() {
			continue
		}
		played[m.Home.TeamID] = true
		played[m.Away.TeamID] = true
	}

	n := len(scores)
	var lucky, unlucky *LuckAward
	seen := make(map[int]bool, n)
	for _, s := range scores {
		if seen[s.TeamID] {
			continue
		}
		seen[s.TeamID] = true

		award := LuckAward{
			TeamID:        s.TeamID,
			AllPlayWins:   allPlay[s.TeamID],
			AllPlayLosses: n - 1 - allPlay[s.TeamID],
		}
		switch {
		case real[s.TeamID] == 1:
			if lucky == nil || award.AllPlayWins < lucky.AllPlayWins {
				lucky = &award
			}
		case played[s.TeamID]:
			if unlucky == nil || award.AllPlayWins > unlucky.AllPlayWins {
				unlucky = &award
			}
		}
	}
	return lucky, unlucky
}
