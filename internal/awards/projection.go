package awards

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/omarshaarawi/trophybot/internal/models"
)

type ProjectionSource string

const (
	ProjectionFromSide    ProjectionSource = "side"
	ProjectionFromEntries ProjectionSource = "entries"
	ProjectionFromRosters ProjectionSource = "rosters"
	ProjectionNone        ProjectionSource = "none"
)

// projectionResolver fills in missing side projections. The full-league
// roster view is fetched at most once per derivation and shared by every
// side that needs it.
type projectionResolver struct {
	rosters RosterSource
	period  int
	logger  *slog.Logger
	level   slog.Level

	fetched    bool
	rosterData map[int][]models.RosterEntry
}

func newProjectionResolver(rosters RosterSource, period int, trace bool, logger *slog.Logger) *projectionResolver {
	level := slog.LevelDebug
	if trace {
		level = slog.LevelInfo
	}
	return &projectionResolver{rosters: rosters, period: period, logger: logger, level: level}
}

func (r *projectionResolver) resolveAll(ctx context.Context, matchups []models.Matchup) ([]ProjectionDiff, error) {
	var diffs []ProjectionDiff
	for _, m := range matchups {
		for _, side := range m.Sides() {
			projected, source, err := r.resolve(ctx, *side)
			if err != nil {
				return nil, err
			}
			diffs = append(diffs, ProjectionDiff{
				TeamID:    side.TeamID,
				Score:     side.Score,
				Projected: projected,
				Diff:      side.Score - projected,
				Source:    source,
			})
		}
	}
	return diffs, nil
}

func (r *projectionResolver) resolve(ctx context.Context, side models.Side) (float64, ProjectionSource, error) {
	if side.Projected > 0 {
		r.trace(ctx, side.TeamID, ProjectionFromSide, side.Projected)
		return side.Projected, ProjectionFromSide, nil
	}

	if sum, ok := starterProjection(side.Entries); ok {
		r.trace(ctx, side.TeamID, ProjectionFromEntries, sum)
		return sum, ProjectionFromEntries, nil
	}
	r.trace(ctx, side.TeamID, ProjectionFromEntries, 0)

	if r.rosters == nil {
		r.trace(ctx, side.TeamID, ProjectionNone, 0)
		return 0, ProjectionNone, nil
	}

	if err := r.loadRosters(ctx); err != nil {
		return 0, ProjectionNone, err
	}
	if entries, found := r.rosterData[side.TeamID]; found {
		if sum, ok := starterProjection(entries); ok {
			r.trace(ctx, side.TeamID, ProjectionFromRosters, sum)
			return sum, ProjectionFromRosters, nil
		}
	}

	r.trace(ctx, side.TeamID, ProjectionNone, 0)
	return 0, ProjectionNone, nil
}

func (r *projectionResolver) loadRosters(ctx context.Context) error {
	if r.fetched {
		return nil
	}
	data, err := r.rosters.Rosters(ctx, r.period)
	if err != nil {
		return fmt.Errorf("loading fallback rosters for period %d: %w", r.period, err)
	}
	r.fetched = true
	r.rosterData = data
	return nil
}

func (r *projectionResolver) trace(ctx context.Context, teamID int, step ProjectionSource, value float64) {
	r.logger.Log(ctx, r.level, "Projection fallback", "team_id", teamID, "period", r.period, "step", string(step), "value", value)
}

// starterProjection sums the period projections of starting players. It
// reports false unless the sum is positive.
func starterProjection(entries []models.RosterEntry) (float64, bool) {
	var sum float64
	for _, e := range entries {
		if !e.Slot.IsStarter() || !e.HasProjection {
			continue
		}
		sum += e.Projected
	}
	return sum, sum > 0
}
