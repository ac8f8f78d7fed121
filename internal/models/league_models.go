package models

import (
	"fmt"
	"slices"
	"time"
)

type LeagueMetadata struct {
	LeagueID             int
	Name                 string
	CurrentWeek          int
	CurrentScoringPeriod int
	SeasonID             int
	FirstWeek            int
	LastWeek             int
	IsActive             bool
	// MatchupPeriods lists the scoring periods of each matchup period.
	MatchupPeriods       map[int][]int
}

// ScoringPeriod is the scoring period whose player stats describe week.
// Multi-period rounds use their last scoring period. Leagues without a
// schedule map use week itself.
func (m LeagueMetadata) ScoringPeriod(week int) int {
	periods := m.MatchupPeriods[week]
	if len(periods) == 0 {
		return week
	}
	return slices.Max(periods)
}

// RecapWeek is the just-completed matchup period, floored at 1.
func (m LeagueMetadata) RecapWeek() int {
	return max(1, m.CurrentWeek-1)
}

// PreviewWeek is the matchup period about to be played, floored at 1.
func (m LeagueMetadata) PreviewWeek() int {
	return max(1, m.CurrentWeek)
}

type Team struct {
	ID           int
	Name         string
	Abbreviation string
	Wins         int
	Losses       int
	Ties         int
	PointsFor    float64
}

// TeamRegistry indexes teams by id.
type TeamRegistry map[int]Team

// Name returns the display name for id, or "Team {id}" for unknown teams.
func (r TeamRegistry) Name(id int) string {
	if t, ok := r[id]; ok && t.Name != "" {
		return t.Name
	}
	return UnknownTeamName(id)
}

func UnknownTeamName(id int) string {
	return fmt.Sprintf("Team %d", id)
}

type Matchup struct {
	ID              int
	MatchupPeriodID int
	Home            *Side
	Away            *Side
}

// Sides returns the present sides in home, away order.
func (m Matchup) Sides() []*Side {
	sides := make([]*Side, 0, 2)
	if m.Home != nil {
		sides = append(sides, m.Home)
	}
	if m.Away != nil {
		sides = append(sides, m.Away)
	}
	return sides
}

// IsHeadToHead reports whether both sides are present.
func (m Matchup) IsHeadToHead() bool {
	return m.Home != nil && m.Away != nil
}

type Side struct {
	TeamID    int
	Score     float64
	Projected float64
	Entries   []RosterEntry
}

type RosterEntry struct {
	PlayerID   int
	PlayerName string
	Slot       LineupSlot
	Points     float64
	Projected  float64
	// HasProjection is set when a projection stat record for the period
	// was found, even if its value is zero.
	HasProjection bool
}

type LineupSlot struct {
	ID    int
	Known bool
}

// IsStarter reports whether the slot counts toward the starting lineup.
// Bench, IR, missing and unrecognised slots are excluded.
func (s LineupSlot) IsStarter() bool {
	if !s.Known {
		return false
	}
	switch s.ID {
	case SlotBench, SlotIR:
		return false
	}
	_, ok := lineupSlotNames[s.ID]
	return ok
}

func (s LineupSlot) String() string {
	if !s.Known {
		return "None"
	}
	if name, ok := lineupSlotNames[s.ID]; ok {
		return name
	}
	return "Unknown"
}

const (
	SlotFlex  = 23
	SlotBench = 20
	SlotIR    = 21
)

var lineupSlotNames = map[int]string{
	0:         "QB",
	1:         "TQB",
	2:         "RB",
	3:         "RB/WR",
	4:         "WR",
	5:         "WR/TE",
	6:         "TE",
	7:         "OP",
	8:         "DT",
	9:         "DE",
	10:        "LB",
	11:        "DL",
	12:        "CB",
	13:        "S",
	14:        "DB",
	15:        "DP",
	16:        "D/ST",
	17:        "K",
	18:        "P",
	19:        "HC",
	SlotBench: "Bench",
	SlotIR:    "IR",
	SlotFlex:  "FLEX",
}

// Snapshot is one week's worth of league state.
type Snapshot struct {
	Metadata      LeagueMetadata
	Week          int
	ScoringPeriod int
	Teams         TeamRegistry
	TeamOrder     []int
	Matchups      []Matchup
	FetchedAt     time.Time
}
