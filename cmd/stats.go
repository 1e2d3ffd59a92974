package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/riseup/internal/challenge"
	"github.com/abhisek/riseup/internal/session"
	"github.com/abhisek/riseup/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show challenge statistics and your wake-up streak",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		now := time.Now()
		opts := store.QueryOpts{}
		if days, _ := cmd.Flags().GetInt("days"); days > 0 {
			opts.From = now.AddDate(0, 0, -days)
		}
		events, err := e.store.EventRepo().QueryChallengeEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No challenges yet.")
			return nil
		}

		st := session.ComputeStats(events, now)
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CHALLENGE\tSESSIONS\tSOLVED\tATTEMPTS\tCORRECT\tACCURACY")
		for _, k := range challenge.Kinds {
			ks, ok := st.PerKind[k]
			if !ok {
				continue
			}
			accuracy := 0.0
			if ks.Attempts > 0 {
				accuracy = float64(ks.Correct) / float64(ks.Attempts) * 100
			}
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%.0f%%\n",
				k, ks.Sessions, ks.Completed, ks.Attempts, ks.Correct, accuracy)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Printf("\nWake-up streak: %d day(s)\n", st.WakeStreak)
		if !st.LastCompleted.IsZero() {
			fmt.Printf("Last solved:    %s\n", st.LastCompleted.Local().Format("Mon Jan 2 15:04"))
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("days", 0, "Only count the last N days (0 = all time)")
}
