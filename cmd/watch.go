package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Fire due alarms until interrupted",
	Long: `Poll the schedule store and fire alarms as they come due. Each fired alarm
rings the terminal bell and, with --ring, opens its challenge right away.
Every alarm is re-registered when watch starts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.alarms.Rehydrate(ctx); err != nil {
			return fmt.Errorf("register alarms: %w", err)
		}

		ring, _ := cmd.Flags().GetBool("ring")
		interval := settings.cfg.Watch.PollInterval
		logger := settings.logger.With("component", "watch")
		logger.Info("watching for alarms", "interval", interval)
		fmt.Printf("riseup is watching (poll every %s). Ctrl+C to stop.\n", interval)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			if err := fireDue(ctx, e, ring); err != nil {
				logger.Error("poll failed", "error", err)
			}
			select {
			case <-ctx.Done():
				logger.Info("watch stopped")
				return nil
			case <-ticker.C:
			}
		}
	},
}

func init() {
	watchCmd.Flags().Bool("ring", false, "Open the challenge as soon as an alarm fires")
}

// fireDue rings every schedule that is due now.
func fireDue(ctx context.Context, e *env, ring bool) error {
	fired, err := e.facility.Due(ctx, time.Now())
	if err != nil {
		return err
	}
	for _, f := range fired {
		fmt.Printf("\a%s  ALARM  %s (alarm %s, sound %s)\n",
			f.At.Format("15:04"), f.Title, f.AlarmID, f.Sound)
	}
	if !ring || len(fired) == 0 {
		return nil
	}

	// One challenge silences the alarm; later firings in the same tick are
	// usually its re-triggers.
	id := fired[0].AlarmID
	if _, _, err := e.facility.LaunchAlarmID(ctx); err != nil {
		return fmt.Errorf("consume launch alarm: %w", err)
	}
	return ringAlarm(ctx, e, id, true)
}
