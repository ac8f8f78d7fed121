package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/omarshaarawi/trophybot/internal/api/espn"
	"github.com/omarshaarawi/trophybot/internal/api/fantasy"
	"github.com/omarshaarawi/trophybot/internal/awards"
	"github.com/omarshaarawi/trophybot/internal/bot"
	"github.com/omarshaarawi/trophybot/internal/config"
	"github.com/omarshaarawi/trophybot/internal/models"
	"github.com/omarshaarawi/trophybot/internal/scheduler"
	"github.com/omarshaarawi/trophybot/internal/service"
)

const usage = "usage: trophybot [-dry-run] [-week N] [-team NAME] <awards|power|preview|debug-projections|serve>"

var errNoNotifier = errors.New("no notifier configured: set WEBHOOK_URL or TELEGRAM_TOKEN and CHAT_ID, or use -dry-run")

type options struct {
	command string
	dryRun  bool
	week    int
	team    string
}

func main() {
	if err := run(); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("trophybot", flag.ContinueOnError)
	fs.BoolVar(&opts.dryRun, "dry-run", false, "print the card as JSON instead of posting it")
	fs.IntVar(&opts.week, "week", 0, "target week (default: league's recap or preview week)")
	fs.StringVar(&opts.team, "team", "", "team name for debug-projections")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if fs.NArg() != 1 {
		return opts, errors.New(usage)
	}
	if opts.week < 0 {
		return opts, fmt.Errorf("week must not be negative, got %d", opts.week)
	}
	opts.command = fs.Arg(0)
	return opts, nil
}

func run() error {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		return err
	}

	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})).
		With("run_id", uuid.NewString(), "command", opts.command)
	slog.SetDefault(logger)

	location, err := cfg.Location()
	if err != nil {
		return err
	}

	espnClient := espn.NewClient(cfg.ESPNAPI, espn.WithTimeout(cfg.HTTPTimeout))
	espnAPI := espn.NewAPI(espnClient)
	fantasyAPI := fantasy.NewAPI(espnAPI)

	fantasyService := service.NewFantasyService(fantasyAPI, service.Settings{
		LeagueTitle: cfg.LeagueTitle,
		Location:    location,
		Awards: awards.Options{
			ComputeOptimal:   cfg.Awards.ComputeOptimal,
			TraceProjections: cfg.Awards.DebugProjections,
		},
		Logger: logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch opts.command {
	case "awards":
		return post(ctx, cfg, opts, fantasyService, func(ctx context.Context) (models.Card, error) {
			return fantasyService.AwardsCard(ctx, opts.week)
		})
	case "power":
		return post(ctx, cfg, opts, fantasyService, fantasyService.PowerRankingsCard)
	case "preview":
		return post(ctx, cfg, opts, fantasyService, func(ctx context.Context) (models.Card, error) {
			return fantasyService.PreviewCard(ctx, opts.week)
		})
	case "debug-projections":
		if opts.team == "" {
			return errors.New("debug-projections requires -team")
		}
		report, err := fantasyService.ProjectionReport(ctx, opts.team, opts.week)
		if err != nil {
			return err
		}
		fmt.Println(report)
		return nil
	case "serve":
		return serve(ctx, cfg, location, fantasyService)
	default:
		return fmt.Errorf("unknown command %q\n%s", opts.command, usage)
	}
}

// post builds one card and sends it. A failed build posts nothing.
func post(ctx context.Context, cfg *config.Config, opts options, fantasyService *service.FantasyService, build func(context.Context) (models.Card, error)) error {
	card, err := build(ctx)
	if err != nil {
		return err
	}

	if opts.dryRun {
		out, err := json.MarshalIndent(card, "", "  ")
		if err != nil {
			return fmt.Errorf("error encoding card: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	notifiers, _, err := buildNotifiers(cfg, fantasyService)
	if err != nil {
		return err
	}
	if len(notifiers) == 0 {
		return errNoNotifier
	}
	return notifiers.Send(ctx, card)
}

func buildNotifiers(cfg *config.Config, fantasyService *service.FantasyService) (bot.Notifiers, *bot.TelegramBot, error) {
	var notifiers bot.Notifiers
	if cfg.HasWebhook() {
		notifiers = append(notifiers, bot.NewWebhookNotifier(cfg.Webhook.URL, cfg.Webhook.Username, cfg.HTTPTimeout))
	}

	var telegramBot *bot.TelegramBot
	if cfg.HasTelegram() {
		var err error
		telegramBot, err = bot.NewTelegramBot(cfg.TelegramBot.Token, cfg.TelegramBot.ChatID, fantasyService)
		if err != nil {
			return nil, nil, err
		}
		notifiers = append(notifiers, telegramBot)
	}
	return notifiers, telegramBot, nil
}

func serve(ctx context.Context, cfg *config.Config, location *time.Location, fantasyService *service.FantasyService) error {
	notifiers, telegramBot, err := buildNotifiers(cfg, fantasyService)
	if err != nil {
		return err
	}
	if len(notifiers) == 0 {
		return errNoNotifier
	}

	sched, err := scheduler.NewScheduler(ctx, location, fantasyService, notifiers)
	if err != nil {
		return err
	}

	if err := sched.Start(); err != nil {
		return err
	}
	defer func() {
		err := sched.Stop()
		if err != nil {
			slog.Error("Error stopping scheduler", "error", err)
		}
	}()

	for name, next := range sched.Jobs() {
		slog.Info("Scheduled job", "job", name, "next_run", next.In(location).Format(time.RFC1123))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", healthCheckHandler)
	server := &http.Server{Addr: cfg.HealthAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Error starting HTTP server", "error", err)
		}
	}()

	if telegramBot != nil {
		go func() {
			if err := telegramBot.Start(ctx); err != nil {
				slog.Error("Error running telegram bot", "error", err)
			}
		}()
	}

	<-ctx.Done()
	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
