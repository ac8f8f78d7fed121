package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/omarshaarawi/trophybot/internal/models"
)

// Cards builds the scheduled posts. A week of 0 lets the league pick.
type Cards interface {
	AwardsCard(ctx context.Context, week int) (models.Card, error)
	PowerRankingsCard(ctx context.Context) (models.Card, error)
	PreviewCard(ctx context.Context, week int) (models.Card, error)
}

type Sender interface {
	Send(ctx context.Context, card models.Card) error
}

type Scheduler struct {
	s      gocron.Scheduler
	cards  Cards
	sender Sender
	ctx    context.Context
}

// post is one weekly job: a card builder and when it runs.
type post struct {
	name    string
	weekday time.Weekday
	hour    uint
	minute  uint
	build   func(ctx context.Context) (models.Card, error)
}

func NewScheduler(ctx context.Context, location *time.Location, cards Cards, sender Sender, opts ...gocron.SchedulerOption) (*Scheduler, error) {
	opts = append([]gocron.SchedulerOption{gocron.WithLocation(location)}, opts...)
	s, err := gocron.NewScheduler(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:      s,
		cards:  cards,
		sender: sender,
		ctx:    ctx,
	}, nil
}

func (s *Scheduler) posts() []post {
	return []post{
		// Trophies - Tuesday 7:30
		{name: "awards", weekday: time.Tuesday, hour: 7, minute: 30, build: func(ctx context.Context) (models.Card, error) {
			return s.cards.AwardsCard(ctx, 0)
		}},
		// Power rankings - Wednesday 7:30
		{name: "power rankings", weekday: time.Wednesday, hour: 7, minute: 30, build: s.cards.PowerRankingsCard},
		// Matchup preview - Thursday 18:30
		{name: "preview", weekday: time.Thursday, hour: 18, minute: 30, build: func(ctx context.Context) (models.Card, error) {
			return s.cards.PreviewCard(ctx, 0)
		}},
	}
}

func (s *Scheduler) Start() error {
	for _, p := range s.posts() {
		_, err := s.s.NewJob(
			gocron.WeeklyJob(1, gocron.NewWeekdays(p.weekday), gocron.NewAtTimes(gocron.NewAtTime(p.hour, p.minute, 0))),
			gocron.NewTask(s.run, p),
			gocron.WithName(p.name),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			return fmt.Errorf("failed to create %s job: %w", p.name, err)
		}
	}

	s.s.Start()
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

// Jobs reports the registered job names with their next run.
func (s *Scheduler) Jobs() map[string]time.Time {
	out := make(map[string]time.Time)
	for _, j := range s.s.Jobs() {
		next, err := j.NextRun()
		if err != nil {
			continue
		}
		out[j.Name()] = next
	}
	return out
}

// run builds and sends one card. Nothing is posted when the build fails.
func (s *Scheduler) run(p post) {
	card, err := p.build(s.ctx)
	if err != nil {
		slog.Error("Failed to build card", "job", p.name, "error", err)
		return
	}
	if err := s.sender.Send(s.ctx, card); err != nil {
		slog.Error("Failed to send card", "job", p.name, "error", err)
	}
}
