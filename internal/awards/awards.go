// Package awards derives the weekly trophies from one matchup period's
// scores, projections and rosters.
package awards

import (
	"context"
	"log/slog"

	"github.com/omarshaarawi/trophybot/internal/models"
)

// Options are the feature flags for a derivation.
type Options struct {
	// ComputeOptimal enables the Best and Worst Manager awards.
	ComputeOptimal bool
	// TraceProjections logs every step of the projection fallback chain
	// at info level instead of debug.
	TraceProjections bool
}

// RosterSource supplies full-league rosters for a scoring period. It is
// only consulted when a side carries no usable projection.
type RosterSource interface {
	Rosters(ctx context.Context, period int) (map[int][]models.RosterEntry, error)
}

type TeamScore struct {
	TeamID int
	Score  float64
}

// MatchResult is a decided head-to-head game. Ties never produce one.
type MatchResult struct {
	WinnerID    int
	LoserID     int
	WinnerScore float64
	LoserScore  float64
	Margin      float64
}

type ProjectionDiff struct {
	TeamID    int
	Score     float64
	Projected float64
	Diff      float64
	Source    ProjectionSource
}

type LuckAward struct {
	TeamID        int
	AllPlayWins   int
	AllPlayLosses int
}

type ManagerAward struct {
	TeamID  int
	Actual  float64
	Optimal float64
	Percent float64
}

// DisplayPercent caps the efficiency at 100%.
func (m ManagerAward) DisplayPercent() float64 {
	return min(m.Percent, 100)
}

// BenchPoints is how many points the best lineup would have added.
func (m ManagerAward) BenchPoints() float64 {
	return max(0, m.Optimal-m.Actual)
}

// Result is the outcome of a derivation. When NoDataYet is set no award is
// populated.
type Result struct {
	Week      int
	NoDataYet bool

	High    *TeamScore
	Low     *TeamScore
	Blowout *MatchResult
	Close   *MatchResult

	Overachiever  *ProjectionDiff
	Underachiever *ProjectionDiff

	Lucky   *LuckAward
	Unlucky *LuckAward

	BestManager  *ManagerAward
	WorstManager *ManagerAward

	Scores       []TeamScore
	MatchResults []MatchResult
	AllPlayWins  map[int]int
	RealWins     map[int]int
	Projections  []ProjectionDiff
	Lineups      []OptimalLineup
}

type Deriver struct {
	rosters RosterSource
	opts    Options
	logger  *slog.Logger
}

func NewDeriver(rosters RosterSource, opts Options, logger *slog.Logger) *Deriver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Deriver{rosters: rosters, opts: opts, logger: logger}
}

// Derive computes every award for week. Fallback rosters are read for
// scoringPeriod. Only a roster fetch failure in the projection fallback
// produces an error; in that case no result is returned.
func (d *Deriver) Derive(ctx context.Context, week, scoringPeriod int, matchups []models.Matchup) (*Result, error) {
	result := &Result{Week: week}

	if !hasScores(matchups) {
		result.NoDataYet = true
		return result, nil
	}

	result.Scores = collectScores(matchups)
	result.MatchResults = collectResults(matchups)

	result.High, result.Low = highLow(result.Scores)
	result.Blowout, result.Close = blowoutClose(result.MatchResults)

	result.AllPlayWins = allPlayWins(result.Scores)
	result.RealWins = realWins(matchups, result.MatchResults)
	result.Lucky, result.Unlucky = luck(matchups, result.Scores, result.AllPlayWins, result.RealWins)

	resolver := newProjectionResolver(d.rosters, scoringPeriod, d.opts.TraceProjections, d.logger)
	projections, err := resolver.resolveAll(ctx, matchups)
	if err != nil {
		return nil, err
	}
	result.Projections = projections
	result.Overachiever, result.Underachiever = overUnder(projections)

	if d.opts.ComputeOptimal {
		result.Lineups = make([]OptimalLineup, 0, len(result.Scores))
		for _, m := range matchups {
			for _, side := range m.Sides() {
				lineup := ComputeOptimal(*side)
				if lineup.Skipped != "" {
					d.logger.Debug("Skipping optimal lineup", "team_id", side.TeamID, "reason", lineup.Skipped)
				}
				result.Lineups = append(result.Lineups, lineup)
			}
		}
		result.BestManager, result.WorstManager = managers(result.Lineups)
	}

	return result, nil
}

func hasScores(matchups []models.Matchup) bool {
	for _, m := range matchups {
		for _, side := range m.Sides() {
			if side.Score != 0 {
				return true
			}
		}
	}
	return false
}

func collectScores(matchups []models.Matchup) []TeamScore {
	var scores []TeamScore
	for _, m := range matchups {
		for _, side := range m.Sides() {
			scores = append(scores, TeamScore{TeamID: side.TeamID, Score: side.Score})
		}
	}
	return scores
}

func collectResults(matchups []models.Matchup) []MatchResult {
	var results []MatchResult
	for _, m := range matchups {
		if !m.IsHeadToHead() {
			continue
		}
		home, away := m.Home, m.Away
		switch {
		case home.Score > away.Score:
			results = append(results, newResult(home, away))
		case away.Score > home.Score:
			results = append(results, newResult(away, home))
		}
	}
	return results
}

func newResult(winner, loser *models.Side) MatchResult {
	return MatchResult{
		WinnerID:    winner.TeamID,
		LoserID:     loser.TeamID,
		WinnerScore: winner.Score,
		LoserScore:  loser.Score,
		Margin:      winner.Score - loser.Score,
	}
}

// highLow keeps the first team seen on equal scores.
func highLow(scores []TeamScore) (*TeamScore, *TeamScore) {
	if len(scores) == 0 {
		return nil, nil
	}
	high, low := scores[0], scores[0]
	for _, s := range scores[1:] {
		if s.Score > high.Score {
			high = s
		}
		if s.Score < low.Score {
			low = s
		}
	}
	return &high, &low
}

func blowoutClose(results []MatchResult) (*MatchResult, *MatchResult) {
	if len(results) == 0 {
		return nil, nil
	}
	blowout, closest := results[0], results[0]
	for _, r := range results[1:] {
		if r.Margin > blowout.Margin {
			blowout = r
		}
		if r.Margin < closest.Margin {
			closest = r
		}
	}
	return &blowout, &closest
}

// overUnder skips sides with neither a score nor a projection.
func overUnder(projections []ProjectionDiff) (*ProjectionDiff, *ProjectionDiff) {
	var over, under *ProjectionDiff
	for i := range projections {
		p := projections[i]
		if p.Score == 0 && p.Projected == 0 {
			continue
		}
		if over == nil || p.Diff > over.Diff {
			over = &p
		}
		if under == nil || p.Diff < under.Diff {
			under = &p
		}
	}
	return over, under
}
