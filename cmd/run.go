package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/riseup/internal/alarm"
	"github.com/abhisek/riseup/internal/alarmstore"
	"github.com/abhisek/riseup/internal/app"
	"github.com/abhisek/riseup/internal/bridge"
	"github.com/abhisek/riseup/internal/challenge"
	"github.com/abhisek/riseup/internal/codebank"
	"github.com/abhisek/riseup/internal/facility"
	"github.com/abhisek/riseup/internal/problemgen"
	"github.com/abhisek/riseup/internal/rhythm"
	"github.com/abhisek/riseup/internal/rng"
	"github.com/abhisek/riseup/internal/scheduler"
	"github.com/abhisek/riseup/internal/screen"
	"github.com/abhisek/riseup/internal/screens/alarms"
	challengescreen "github.com/abhisek/riseup/internal/screens/challenge"
	"github.com/abhisek/riseup/internal/screens/home"
	"github.com/abhisek/riseup/internal/session"
	"github.com/abhisek/riseup/internal/store"
)

// env is everything a command needs once the store is open.
type env struct {
	store     *store.Store
	facility  *facility.Local
	scheduler *scheduler.Scheduler
	alarms    *alarmstore.Service
	src       rng.Source
}

// openEnv opens the store and wires the scheduler stack over it.
func openEnv(cmd *cobra.Command) (*env, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	logger := settings.logger
	src := rng.NewTimeSeeded()
	local := facility.NewLocal(st.ScheduleRepo(), logger)
	br := bridge.New(st.RetriggerRepo())
	sched := scheduler.New(local, br,
		scheduler.WithLogger(logger),
		scheduler.WithTitle(settings.cfg.AlarmTitle),
	)
	svc := alarmstore.New(st.AlarmRepo(), sched,
		alarmstore.WithLogger(logger),
		alarmstore.WithSource(src),
	)

	return &env{
		store:     st,
		facility:  local,
		scheduler: sched,
		alarms:    svc,
		src:       src,
	}, nil
}

func (e *env) Close() error {
	return e.store.Close()
}

// sessionDeps builds challenge generators over the shared random source.
func (e *env) sessionDeps() (session.Deps, error) {
	bank, err := codebank.NewDefault(e.src)
	if err != nil {
		return session.Deps{}, fmt.Errorf("load code problems: %w", err)
	}
	cfg := settings.cfg
	return session.Deps{
		Math:           problemgen.New(e.src, problemgen.DefaultConfig()),
		Code:           bank,
		Rhythm:         rhythm.NewGenerator(e.src),
		Events:         e.store.EventRepo(),
		Logger:         settings.logger,
		RecentWindow:   cfg.Challenge.RecentCodeWindow,
		RequiredStreak: cfg.Rhythm.RequiredStreak,
	}, nil
}

// runHome launches the TUI in practice mode.
func runHome(cmd *cobra.Command) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	deps, err := e.sessionDeps()
	if err != nil {
		return err
	}

	practice := func(kind challenge.Kind) screen.Screen {
		return challengescreen.New(challengescreen.Options{
			Deps:       deps,
			Kind:       kind,
			Difficulty: settings.cfg.Challenge.Difficulty,
			AllowQuit:  true,
		})
	}
	preview := func(a alarm.Alarm) screen.Screen {
		return challengescreen.New(challengescreen.Options{
			Deps:       deps,
			Kind:       a.Challenge,
			Difficulty: a.Difficulty,
			AllowQuit:  true,
		})
	}

	ctx := cmd.Context()
	next := func() string {
		line, err := nextAlarmLine(ctx, e.alarms, time.Now())
		if err != nil {
			settings.logger.Warn("next alarm unavailable", "error", err)
		}
		return line
	}

	return app.Run(home.New(home.Options{
		Practice:  practice,
		Alarms:    func() screen.Screen { return alarms.New(e.alarms, preview, nil) },
		NextAlarm: next,
	}))
}

// nextAlarmLine describes the soonest armed alarm, or "" if none is armed.
func nextAlarmLine(ctx context.Context, svc *alarmstore.Service, now time.Time) (string, error) {
	list, err := svc.List(ctx)
	if err != nil {
		return "", err
	}
	var (
		best  alarm.Alarm
		bestT time.Time
	)
	for _, a := range list {
		if !a.Armed {
			continue
		}
		t, ok := a.Next(now)
		if ok && (bestT.IsZero() || t.Before(bestT)) {
			best, bestT = a, t
		}
	}
	if bestT.IsZero() {
		return "", nil
	}
	line := bestT.Format("Mon 15:04")
	if best.Label != "" {
		line += " " + best.Label
	}
	return line, nil
}
