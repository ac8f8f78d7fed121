package espn

import (
	"math"
	"strings"

	"github.com/omarshaarawi/trophybot/internal/models"
)

const (
	statSourceActual     = 0
	statSourceProjection = 1
	statSplitPeriodTotal = 1
)

// ResolveName picks a display name for a team from whichever name fields
// the record carries. It never returns "".
func ResolveName(t models.TeamRecord) string {
	if name := joinTrimmed(t.Location, t.Nickname); name != "" {
		return name
	}
	if name := joinTrimmed(t.TeamLocation, t.TeamNickname); name != "" {
		return name
	}
	if name := strings.TrimSpace(t.Name); name != "" {
		return name
	}
	if abbrev := strings.TrimSpace(t.Abbreviation); abbrev != "" {
		return abbrev
	}
	return models.UnknownTeamName(t.ID)
}

func joinTrimmed(a, b string) string {
	return strings.TrimSpace(strings.TrimSpace(a) + " " + strings.TrimSpace(b))
}

func normalizeTeam(t models.TeamRecord) models.Team {
	pointsFor := t.Record.Overall.PointsFor
	if pointsFor == 0 {
		pointsFor = t.Points
	}
	return models.Team{
		ID:           t.ID,
		Name:         ResolveName(t),
		Abbreviation: strings.TrimSpace(t.Abbreviation),
		Wins:         t.Record.Overall.Wins,
		Losses:       t.Record.Overall.Losses,
		Ties:         t.Record.Overall.Ties,
		PointsFor:    nonNegative(pointsFor),
	}
}

func normalizeMatchup(m models.MatchupScore, period int) models.Matchup {
	matchup := models.Matchup{
		ID:              m.ID,
		MatchupPeriodID: m.MatchupPeriodID,
	}
	if m.Home != nil {
		side := normalizeSide(*m.Home, period)
		matchup.Home = &side
	}
	if m.Away != nil {
		side := normalizeSide(*m.Away, period)
		matchup.Away = &side
	}
	// A lone away side is still the only side; keep it in the home slot so
	// byes look the same regardless of which key ESPN used.
	if matchup.Home == nil && matchup.Away != nil {
		matchup.Home, matchup.Away = matchup.Away, nil
	}
	return matchup
}

func normalizeSide(ts models.TeamScore, period int) models.Side {
	score := ts.TotalPoints
	if score == 0 {
		score = ts.TotalPointsLive
	}
	projected := ts.TotalProjectedPointsLive
	if projected == 0 {
		projected = ts.TotalProjectedPoints
	}
	return models.Side{
		TeamID:    ts.TeamID,
		Score:     round2(nonNegative(score)),
		Projected: round2(nonNegative(projected)),
		Entries:   normalizeEntries(ts.RosterForCurrentScoringPeriod.Entries, period),
	}
}

func normalizeEntries(raw []models.RawRosterEntry, period int) []models.RosterEntry {
	entries := make([]models.RosterEntry, 0, len(raw))
	for _, e := range raw {
		entries = append(entries, normalizeEntry(e, period))
	}
	return entries
}

func normalizeEntry(e models.RawRosterEntry, period int) models.RosterEntry {
	entry := models.RosterEntry{
		PlayerID:   e.PlayerPoolEntry.Player.ID,
		PlayerName: e.PlayerPoolEntry.Player.FullName,
	}
	if entry.PlayerID == 0 {
		entry.PlayerID = e.PlayerPoolEntry.ID
	}
	if e.LineupSlotID != nil {
		entry.Slot = models.LineupSlot{ID: *e.LineupSlotID, Known: true}
	}

	actual, hasActual := findStat(e.PlayerPoolEntry.Player.Stats, period, statSourceActual)
	switch {
	case hasActual:
		entry.Points = actual
	case e.PlayerPoolEntry.AppliedStatTotal != nil:
		entry.Points = finite(*e.PlayerPoolEntry.AppliedStatTotal)
	}

	entry.Projected, entry.HasProjection = findStat(e.PlayerPoolEntry.Player.Stats, period, statSourceProjection)
	return entry
}

// findStat returns the period-total applied value for the given source.
// Records without an appliedTotal are ignored.
func findStat(stats []models.Stat, period, source int) (float64, bool) {
	for _, s := range stats {
		if s.ScoringPeriodID != period || s.StatSourceID != source || s.StatSplitTypeID != statSplitPeriodTotal {
			continue
		}
		if s.AppliedTotal == nil {
			continue
		}
		return finite(*s.AppliedTotal), true
	}
	return 0, false
}

func nonNegative(v float64) float64 {
	v = finite(v)
	if v < 0 {
		return 0
	}
	return v
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
