package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/omarshaarawi/trophybot/internal/api/fantasy"
	"github.com/omarshaarawi/trophybot/internal/models"
)

const teamMatchThreshold = 0.6

// findTeam returns the team whose name best matches query. A fuzzy
// subsequence match or an exact abbreviation wins outright; otherwise the
// closest name by edit distance is used if it is similar enough.
func findTeam(teams []models.Team, query string) (models.Team, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return models.Team{}, false
	}

	for _, team := range teams {
		if fuzzy.MatchNormalizedFold(query, team.Name) || strings.EqualFold(query, team.Abbreviation) {
			return team, true
		}
	}

	var best models.Team
	bestScore := -1.0
	for _, team := range teams {
		name := strings.ToLower(team.Name)
		distance := fuzzy.LevenshteinDistance(strings.ToLower(query), name)
		maxLen := float64(max(len(query), len(name)))
		similarity := 1 - float64(distance)/maxLen

		if similarity > teamMatchThreshold && similarity > bestScore {
			bestScore = similarity
			best = team
		}
	}
	return best, bestScore >= 0
}

// ProjectionReport lists every roster entry of one team for a week with
// its slot, points and projection. A week of 0 recaps the last week.
func (s *FantasyService) ProjectionReport(ctx context.Context, teamQuery string, week int) (string, error) {
	snapshot, err := s.api.LoadSnapshot(ctx, weekSelector(week, fantasy.RecapWeek))
	if err != nil {
		return "", fmt.Errorf("error loading league snapshot: %w", err)
	}

	teams := make([]models.Team, 0, len(snapshot.TeamOrder))
	for _, id := range snapshot.TeamOrder {
		teams = append(teams, snapshot.Teams[id])
	}

	team, ok := findTeam(teams, teamQuery)
	if !ok {
		return fmt.Sprintf("🔍 No team found matching '%s'.", teamQuery), nil
	}

	var side *models.Side
	for _, m := range snapshot.Matchups {
		for _, sd := range m.Sides() {
			if sd.TeamID == team.ID {
				side = sd
			}
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📋 %s - Week %d projections\n", team.Name, snapshot.Week))

	var entries []models.RosterEntry
	if side != nil {
		sb.WriteString(fmt.Sprintf("Score: %.2f | Side projection: %.2f\n", side.Score, side.Projected))
		entries = side.Entries
	}

	if len(entries) == 0 {
		rosters, err := s.api.Rosters(ctx, snapshot.ScoringPeriod)
		if err != nil {
			return "", fmt.Errorf("error fetching rosters: %w", err)
		}
		entries = rosters[team.ID]
		sb.WriteString("(from league roster view)\n")
	}

	sb.WriteString("\n")
	if len(entries) == 0 {
		sb.WriteString("No roster entries found.")
		return sb.String(), nil
	}

	var starterProj float64
	for _, e := range entries {
		proj := "-"
		if e.HasProjection {
			proj = fmt.Sprintf("%.2f", e.Projected)
			if e.Slot.IsStarter() {
				starterProj += e.Projected
			}
		}
		sb.WriteString(fmt.Sprintf("▫️ %-6s %s - %.2f pts (proj %s)\n", e.Slot, playerName(e), e.Points, proj))
	}
	sb.WriteString(fmt.Sprintf("\nStarter projection total: %.2f", starterProj))

	return sb.String(), nil
}

func playerName(e models.RosterEntry) string {
	if e.PlayerName != "" {
		return e.PlayerName
	}
	return fmt.Sprintf("Player %d", e.PlayerID)
}
