package models

// Raw ESPN documents. Every field is optional upstream; missing numbers
// decode to zero and missing strings to "". Pointers mark fields whose
// absence means something different from zero.

type LeagueResponse struct {
	ID              int          `json:"id"`
	ScoringPeriodID int          `json:"scoringPeriodId"`
	SeasonID        int          `json:"seasonId"`
	Status          Status       `json:"status"`
	Teams           []TeamRecord `json:"teams"`
	Settings        Settings     `json:"settings"`
}

type Settings struct {
	Name             string           `json:"name"`
	Size             int              `json:"size"`
	ScheduleSettings ScheduleSettings `json:"scheduleSettings"`
}

// ScheduleSettings maps each matchup period (keyed as a string) to the
// scoring periods it spans.
type ScheduleSettings struct {
	MatchupPeriods map[string][]int `json:"matchupPeriods"`
}

type Status struct {
	CurrentMatchupPeriod int  `json:"currentMatchupPeriod"`
	FinalScoringPeriod   int  `json:"finalScoringPeriod"`
	FirstScoringPeriod   int  `json:"firstScoringPeriod"`
	IsActive             bool `json:"isActive"`
}

// TeamRecord is a team as it appears in mTeam or mRoster. Names show up
// under different keys depending on the view and the league's age.
type TeamRecord struct {
	ID           int     `json:"id"`
	Location     string  `json:"location"`
	Nickname     string  `json:"nickname"`
	TeamLocation string  `json:"teamLocation"`
	TeamNickname string  `json:"teamNickname"`
	Name         string  `json:"name"`
	Abbreviation string  `json:"abbrev"`
	Points       float64 `json:"points"`
	Roster       Roster  `json:"roster"`
	Record       Record  `json:"record"`
}

type Roster struct {
	Entries []RawRosterEntry `json:"entries"`
}

type Record struct {
	Overall RecordDetails `json:"overall"`
}

type RecordDetails struct {
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	Percentage    float64 `json:"percentage"`
	PointsFor     float64 `json:"pointsFor"`
	PointsAgainst float64 `json:"pointsAgainst"`
}

type ScheduleResponse struct {
	Schedule []MatchupScore `json:"schedule"`
}

type MatchupScore struct {
	ID              int        `json:"id"`
	MatchupPeriodID int        `json:"matchupPeriodId"`
	Away            *TeamScore `json:"away"`
	Home            *TeamScore `json:"home"`
	Winner          string     `json:"winner"`
}

type TeamScore struct {
	TeamID                        int             `json:"teamId"`
	TotalPoints                   float64         `json:"totalPoints"`
	TotalPointsLive               float64         `json:"totalPointsLive"`
	TotalProjectedPoints          float64         `json:"totalProjectedPoints"`
	TotalProjectedPointsLive      float64         `json:"totalProjectedPointsLive"`
	RosterForCurrentScoringPeriod RosterForPeriod `json:"rosterForCurrentScoringPeriod"`
}

type RosterForPeriod struct {
	Entries []RawRosterEntry `json:"entries"`
}

type RawRosterEntry struct {
	PlayerPoolEntry PlayerPoolEntry `json:"playerPoolEntry"`
	LineupSlotID    *int            `json:"lineupSlotId"`
}

type PlayerPoolEntry struct {
	ID               int      `json:"id"`
	OnTeamID         int      `json:"onTeamId"`
	Player           Player   `json:"player"`
	AppliedStatTotal *float64 `json:"appliedStatTotal"`
}

type Player struct {
	ID                int    `json:"id"`
	FullName          string `json:"fullName"`
	DefaultPositionID int    `json:"defaultPositionId"`
	ProTeamID         int    `json:"proTeamId"`
	Stats             []Stat `json:"stats"`
	InjuryStatus      string `json:"injuryStatus"`
}

type Stat struct {
	StatSourceID    int      `json:"statSourceId"`
	StatSplitTypeID int      `json:"statSplitTypeId"`
	ScoringPeriodID int      `json:"scoringPeriodId"`
	AppliedTotal    *float64 `json:"appliedTotal"`
}
