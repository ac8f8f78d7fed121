package service

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/omarshaarawi/trophybot/internal/awards"
	"github.com/omarshaarawi/trophybot/internal/models"
)

const (
	awardsColor  = 0x0B1F35
	powerColor   = 0xFFD166
	previewColor = 0x1F8B4C

	footerLayout = "2006-01-02 15:04 MST"

	// Discord rejects empty field names.
	zeroWidthSpace = "\u200b"
)

func (s *FantasyService) footer() *models.CardFooter {
	now := s.now().In(s.settings.Location)
	return &models.CardFooter{Text: "Generated " + now.Format(footerLayout)}
}

func (s *FantasyService) formatAwards(result *awards.Result, teams models.TeamRegistry) models.Card {
	card := models.Card{
		Title:       fmt.Sprintf("Trophies of the Week - Week %d", result.Week),
		Description: s.settings.LeagueTitle,
		Color:       awardsColor,
		Footer:      s.footer(),
	}

	if result.NoDataYet {
		card.Description = fmt.Sprintf("_No scores posted for week %d yet. Check back once games kick off._", result.Week)
		return card
	}

	name := teams.Name

	if h := result.High; h != nil {
		card.AddField("👑 High score 👑", fmt.Sprintf("%s with %.2f points", name(h.TeamID), h.Score))
	}
	if l := result.Low; l != nil {
		card.AddField("💩 Low score 💩", fmt.Sprintf("%s with %.2f points", name(l.TeamID), l.Score))
	}
	if b := result.Blowout; b != nil {
		card.AddField("😱 Blow out 😱", fmt.Sprintf("%s blew out %s by %.2f points", name(b.WinnerID), name(b.LoserID), b.Margin))
	}
	if c := result.Close; c != nil {
		card.AddField("😅 Close win 😅", fmt.Sprintf("%s barely beat %s by %.2f points", name(c.WinnerID), name(c.LoserID), c.Margin))
	}
	if l := result.Lucky; l != nil {
		card.AddField("🍀 Lucky 🍀", fmt.Sprintf("%s was %d-%d in all-play but still got the win", name(l.TeamID), l.AllPlayWins, l.AllPlayLosses))
	}
	if u := result.Unlucky; u != nil {
		card.AddField("😡 Unlucky 😡", fmt.Sprintf("%s was %d-%d in all-play but still took the L", name(u.TeamID), u.AllPlayWins, u.AllPlayLosses))
	}
	if o := result.Overachiever; o != nil {
		card.AddField("📈 Overachiever 📈", fmt.Sprintf("%s was %.2f points %s projection", name(o.TeamID), math.Abs(o.Diff), overOrUnder(o.Diff)))
	}
	if u := result.Underachiever; u != nil {
		card.AddField("📉 Underachiever 📉", fmt.Sprintf("%s was %.2f points %s projection", name(u.TeamID), math.Abs(u.Diff), overOrUnder(u.Diff)))
	}
	if b, w := result.BestManager, result.WorstManager; b != nil && w != nil {
		card.AddField("🤖 Best Manager 🤖", fmt.Sprintf("%s scored %.2f%% of optimal", name(b.TeamID), b.DisplayPercent()))
		card.AddField("🤡 Worst Manager 🤡", fmt.Sprintf("%s left %.2f points on the bench", name(w.TeamID), w.BenchPoints()))
	}

	return card
}

func overOrUnder(diff float64) string {
	if diff < 0 {
		return "under"
	}
	return "over"
}

// rankTeams orders teams by points-for, keeping ESPN's order on ties.
func rankTeams(teams []models.Team) []models.Team {
	ranked := make([]models.Team, len(teams))
	copy(ranked, teams)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PointsFor > ranked[j].PointsFor
	})
	return ranked
}

func (s *FantasyService) formatPowerRankings(ranked []models.Team) models.Card {
	var sb strings.Builder
	for i, t := range ranked {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("**%d. %s** - PF: %.1f (Record %d-%d-%d)", i+1, t.Name, t.PointsFor, t.Wins, t.Losses, t.Ties))
	}

	description := sb.String()
	if description == "" {
		description = "_No teams found_"
	}

	return models.Card{
		Title:       "Power Rankings",
		Description: description,
		Color:       powerColor,
		Footer:      s.footer(),
	}
}

func (s *FantasyService) formatPreview(snapshot *models.Snapshot) models.Card {
	card := models.Card{
		Title:       fmt.Sprintf("Week %d Matchup Preview", snapshot.Week),
		Description: s.settings.LeagueTitle,
		Color:       previewColor,
		Footer:      s.footer(),
	}

	for _, m := range snapshot.Matchups {
		if m.Home == nil {
			continue
		}
		home := snapshot.Teams.Name(m.Home.TeamID)
		if m.Away == nil {
			card.AddField(zeroWidthSpace, fmt.Sprintf("**%s** has a bye", home))
			continue
		}
		card.AddField(zeroWidthSpace, fmt.Sprintf("**%s** vs **%s**", home, snapshot.Teams.Name(m.Away.TeamID)))
	}

	if len(card.Fields) == 0 {
		card.Description = "_No scheduled matchups found for this week yet_"
	}
	return card
}
