package awards

import (
	"sort"

	"github.com/omarshaarawi/trophybot/internal/models"
)

const (
	skipNoEntries   = "no roster entries"
	skipNonPositive = "optimal total is not positive"
)

// OptimalLineup compares a side's starters with the best lineup it could
// have fielded. Skipped is non-empty when the side cannot be rated.
type OptimalLineup struct {
	TeamID   int
	Starters int
	Actual   float64
	Optimal  float64
	Skipped  string
}

// Percent is actual as a share of optimal, uncapped.
func (o OptimalLineup) Percent() float64 {
	if o.Optimal <= 0 {
		return 0
	}
	return o.Actual / o.Optimal * 100
}

// ComputeOptimal approximates the optimal lineup as the top-k point totals
// across every rostered player, k being the number of starting slots used.
// Positional eligibility is ignored: any player may fill any slot. With no
// starters detected the whole roster is summed and the actual total is 0.
func ComputeOptimal(side models.Side) OptimalLineup {
	lineup := OptimalLineup{TeamID: side.TeamID}
	if len(side.Entries) == 0 {
		lineup.Skipped = skipNoEntries
		return lineup
	}

	points := make([]float64, 0, len(side.Entries))
	var actual float64
	for _, e := range side.Entries {
		points = append(points, e.Points)
		if e.Slot.IsStarter() {
			lineup.Starters++
			actual += e.Points
		}
	}

	sort.Sort(sort.Reverse(sort.Float64Slice(points)))

	k := lineup.Starters
	if k == 0 {
		k = len(points)
	}

	var optimal float64
	for _, p := range points[:k] {
		optimal += p
	}

	lineup.Actual = actual
	lineup.Optimal = optimal
	if optimal <= 0 {
		lineup.Skipped = skipNonPositive
	}
	return lineup
}

func managers(lineups []OptimalLineup) (*ManagerAward, *ManagerAward) {
	var best, worst *ManagerAward
	for _, l := range lineups {
		if l.Skipped != "" {
			continue
		}
		award := ManagerAward{
			TeamID:  l.TeamID,
			Actual:  l.Actual,
			Optimal: l.Optimal,
			Percent: l.Percent(),
		}
		if best == nil || award.Percent > best.Percent {
			b := award
			best = &b
		}
		if worst == nil || award.Percent < worst.Percent {
			w := award
			worst = &w
		}
	}
	return best, worst
}
