package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/riseup/internal/app"
	"github.com/abhisek/riseup/internal/scheduler"
	"github.com/abhisek/riseup/internal/screen"
	challengescreen "github.com/abhisek/riseup/internal/screens/challenge"
	"github.com/abhisek/riseup/internal/screens/ringing"
	"github.com/abhisek/riseup/internal/session"
)

var errNoLaunchAlarm = errors.New("no alarm has fired since the last ring; pass an alarm id")

var ringCmd = &cobra.Command{
	Use:   "ring [id]",
	Short: "Ring an alarm and run its challenge",
	Long: `Ring an alarm and run its wake-up challenge. Without an id, rings the alarm
that most recently fired under "riseup watch". Solving the challenge
reschedules the alarm's next occurrence and silences pending re-triggers.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		id := ""
		if len(args) == 1 {
			id = args[0]
		} else {
			launched, ok, err := e.facility.LaunchAlarmID(cmd.Context())
			if err != nil {
				return fmt.Errorf("read launch alarm: %w", err)
			}
			if !ok {
				return errNoLaunchAlarm
			}
			id = launched
		}

		splash, _ := cmd.Flags().GetBool("splash")
		return ringAlarm(cmd.Context(), e, id, splash)
	},
}

func init() {
	ringCmd.Flags().Bool("splash", true, "Show the ringing screen before the challenge")
}

// ringAlarm runs the alarm's challenge in the TUI. Solving it calls the
// alarm service's completion hook.
func ringAlarm(ctx context.Context, e *env, id string, splash bool) error {
	a, err := e.alarms.Get(ctx, id)
	if err != nil {
		return err
	}

	deps, err := e.sessionDeps()
	if err != nil {
		return err
	}
	deps.OnComplete = func(ctx context.Context, s *session.State) error {
		res, err := e.alarms.Complete(ctx, s.AlarmID)
		if err != nil {
			return err
		}
		if res.Status == scheduler.Failed {
			return res.Err
		}
		return nil
	}

	challenge := func() screen.Screen {
		return challengescreen.New(challengescreen.Options{
			Deps:       deps,
			Kind:       a.Challenge,
			Difficulty: a.Difficulty,
			AlarmID:    a.ID,
		})
	}
	if !splash {
		return app.Run(challenge())
	}

	label := a.Label
	if label == "" {
		label = settings.cfg.AlarmTitle
	}
	return app.Run(ringing.New(label, time.Now(), challenge))
}
