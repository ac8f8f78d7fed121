package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/omarshaarawi/trophybot/internal/models"
)

const helpText = "Available commands:\n" +
	"/awards [week] - Trophies of the week\n" +
	"/power - Power rankings by points for\n" +
	"/preview [week] - Matchups for the week\n" +
	"/projections <team> [week] - Roster points and projections for a team"

// CardService builds the messages the bot can answer with.
type CardService interface {
	AwardsCard(ctx context.Context, week int) (models.Card, error)
	PowerRankingsCard(ctx context.Context) (models.Card, error)
	PreviewCard(ctx context.Context, week int) (models.Card, error)
	ProjectionReport(ctx context.Context, teamQuery string, week int) (string, error)
}

type Handler struct {
	fantasyService CardService
}

func NewHandler(fantasyService CardService) *Handler {
	return &Handler{fantasyService: fantasyService}
}

func (h *Handler) HandleCommand(ctx context.Context, update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.Text = h.Respond(ctx, update.Message.Command(), update.Message.CommandArguments())
	return msg
}

// Respond answers a single command with Markdown text.
func (h *Handler) Respond(ctx context.Context, command, args string) string {
	switch strings.ToLower(command) {
	case "start":
		return "Welcome to TrophyBot! Use /help to see available commands."
	case "help":
		return helpText
	case "awards":
		week, ok := parseWeek(args)
		if !ok {
			return badWeek(args)
		}
		return h.card(h.fantasyService.AwardsCard(ctx, week))
	case "power":
		return h.card(h.fantasyService.PowerRankingsCard(ctx))
	case "preview":
		week, ok := parseWeek(args)
		if !ok {
			return badWeek(args)
		}
		return h.card(h.fantasyService.PreviewCard(ctx, week))
	case "projections":
		return h.handleProjections(ctx, args)
	default:
		return "Unknown command. Use /help to see available commands."
	}
}

func (h *Handler) card(card models.Card, err error) string {
	if err != nil {
		return "Error fetching league data: " + EscapeMarkdown(err.Error())
	}
	return RenderMarkdown(card)
}

// handleProjections accepts "<team>" or "<team> <week>".
func (h *Handler) handleProjections(ctx context.Context, args string) string {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return "Please provide a team name. Usage: /projections <team name> [week]"
	}

	week := 0
	if len(fields) > 1 {
		if n, err := strconv.Atoi(fields[len(fields)-1]); err == nil && n > 0 {
			week = n
			fields = fields[:len(fields)-1]
		}
	}

	report, err := h.fantasyService.ProjectionReport(ctx, strings.Join(fields, " "), week)
	if err != nil {
		return "Error building projection report: " + EscapeMarkdown(err.Error())
	}
	return EscapeMarkdown(report)
}

// parseWeek reads an optional week argument. An empty argument is week 0.
func parseWeek(args string) (int, bool) {
	args = strings.TrimSpace(args)
	if args == "" {
		return 0, true
	}
	week, err := strconv.Atoi(args)
	if err != nil || week < 1 {
		return 0, false
	}
	return week, true
}

func badWeek(args string) string {
	return fmt.Sprintf("Week must be a positive number, got '%s'", EscapeMarkdown(strings.TrimSpace(args)))
}
