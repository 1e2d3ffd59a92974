package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/riseup/internal/alarm"
	"github.com/abhisek/riseup/internal/challenge"
	"github.com/abhisek/riseup/internal/scheduler"
)

var alarmCmd = &cobra.Command{
	Use:   "alarm",
	Short: "Manage alarms",
}

var alarmAddCmd = &cobra.Command{
	Use:   "add <HH:MM>",
	Short: "Add an alarm",
	Example: `  riseup alarm add 07:00
  riseup alarm add 06:30 --days weekdays --challenge rhythm --difficulty 3 --label Gym`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		clock, err := alarm.ParseClock(args[0])
		if err != nil {
			return err
		}
		a := alarm.Alarm{
			Time:       clock,
			Armed:      true,
			Challenge:  settings.cfg.Challenge.Kind,
			Difficulty: settings.cfg.Challenge.Difficulty,
		}
		a.Days, _ = alarm.ParseDays("daily")
		if err := applyAlarmFlags(cmd, &a); err != nil {
			return err
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		created, res, err := e.alarms.Add(cmd.Context(), a)
		if err != nil {
			return err
		}
		fmt.Printf("Added alarm %s at %s (%s)\n", created.ID, created.Time, created.Days)
		printResult(res)
		return nil
	},
}

var alarmListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List alarms",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		list, err := e.alarms.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Println("No alarms. Add one with: riseup alarm add 07:00")
			return nil
		}

		now := time.Now()
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTIME\tDAYS\tSOUND\tCHALLENGE\tARMED\tNEXT\tLABEL")
		for _, a := range list {
			next := "-"
			if t, ok := a.Next(now); ok && a.Armed {
				next = t.Format("Mon Jan 2 15:04")
			}
			armed := "no"
			if a.Armed {
				armed = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s/%d\t%s\t%s\t%s\n",
				a.ID, a.Time, a.Days, a.Sound, a.Challenge, a.Difficulty, armed, next, a.Label)
		}
		return w.Flush()
	},
}

var alarmUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change an alarm's time, days, sound, challenge or label",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		a, err := e.alarms.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if t, _ := cmd.Flags().GetString("time"); t != "" {
			if a.Time, err = alarm.ParseClock(t); err != nil {
				return err
			}
		}
		if err := applyAlarmFlags(cmd, &a); err != nil {
			return err
		}

		updated, res, err := e.alarms.Update(cmd.Context(), a)
		if err != nil {
			return err
		}
		fmt.Printf("Updated alarm %s: %s (%s)\n", updated.ID, updated.Time, updated.Days)
		printResult(res)
		return nil
	},
}

var alarmToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Arm or disarm an alarm",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		a, res, err := e.alarms.Toggle(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		state := "disarmed"
		if a.Armed {
			state = "armed"
		}
		fmt.Printf("Alarm %s %s\n", a.ID, state)
		printResult(res)
		return nil
	},
}

var alarmRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete an alarm",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		res, err := e.alarms.Delete(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Deleted alarm %s\n", args[0])
		printResult(res)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{alarmAddCmd, alarmUpdateCmd} {
		c.Flags().String("days", "", "Days: daily, weekdays, weekends or a list like mon,wed,fri")
		c.Flags().String("sound", "", "Sound: "+soundNames())
		c.Flags().String("challenge", "", "Challenge: math, code or rhythm")
		c.Flags().Int("difficulty", 0, "Challenge difficulty 1-5")
		c.Flags().String("label", "", "Label shown when the alarm rings")
	}
	alarmAddCmd.Flags().Bool("disarmed", false, "Create the alarm without arming it")
	alarmUpdateCmd.Flags().String("time", "", "New time HH:MM")

	alarmCmd.AddCommand(alarmAddCmd)
	alarmCmd.AddCommand(alarmListCmd)
	alarmCmd.AddCommand(alarmUpdateCmd)
	alarmCmd.AddCommand(alarmToggleCmd)
	alarmCmd.AddCommand(alarmRemoveCmd)
}

// applyAlarmFlags copies the explicitly set alarm flags onto a.
func applyAlarmFlags(cmd *cobra.Command, a *alarm.Alarm) error {
	flags := cmd.Flags()
	if flags.Changed("days") {
		v, _ := flags.GetString("days")
		d, err := alarm.ParseDays(v)
		if err != nil {
			return err
		}
		a.Days = d
	}
	if flags.Changed("sound") {
		v, _ := flags.GetString("sound")
		s, err := alarm.ParseSound(v)
		if err != nil {
			return err
		}
		a.Sound = s
	}
	if flags.Changed("challenge") {
		v, _ := flags.GetString("challenge")
		k, err := challenge.ParseKind(v)
		if err != nil {
			return err
		}
		a.Challenge = k
	}
	if flags.Changed("difficulty") {
		d, _ := flags.GetInt("difficulty")
		if d < challenge.MinDifficulty || d > challenge.MaxDifficulty {
			return fmt.Errorf("difficulty must be %d-%d", challenge.MinDifficulty, challenge.MaxDifficulty)
		}
		a.Difficulty = d
	}
	if flags.Changed("label") {
		a.Label, _ = flags.GetString("label")
	}
	if flags.Changed("disarmed") {
		disarmed, _ := flags.GetBool("disarmed")
		a.Armed = !disarmed
	}
	return nil
}

func soundNames() string {
	names := make([]string, len(alarm.Sounds))
	for i, s := range alarm.Sounds {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// printResult reports the scheduling outcome; failures are warnings, the
// alarm itself is saved regardless.
func printResult(res scheduler.Result) {
	switch res.Status {
	case scheduler.Scheduled:
		fmt.Printf("  scheduled, next ring %s, %d re-triggers\n",
			res.FireAt.Format("Mon Jan 2 15:04"), len(res.Retriggers))
	case scheduler.ScheduledFallback:
		fmt.Printf("  scheduled once for %s (recurring unavailable), %d re-triggers\n",
			res.FireAt.Format("Mon Jan 2 15:04"), len(res.Retriggers))
	case scheduler.Cancelled:
		fmt.Println("  schedules cancelled")
	case scheduler.NoDays:
		fmt.Println("  warning: no days selected, nothing scheduled")
	case scheduler.Denied:
		fmt.Println("  warning: alarm permission denied, nothing scheduled")
	case scheduler.Failed:
		fmt.Printf("  warning: scheduling failed: %v\n", res.Err)
	}
}
