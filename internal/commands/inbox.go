package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/finpulse-dev/finpulse/internal/highlights"
	"github.com/finpulse-dev/finpulse/internal/ledger"
	"github.com/finpulse-dev/finpulse/internal/model"
)

func newInboxCommand() *cobra.Command {
	var (
		actions int
		events  int
		window  int
	)

	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "Stale transactions and upcoming cash events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := workspaceDir(cmd)
			if err != nil {
				return err
			}
			if _, err := loadConfig(root); err != nil {
				return err
			}

			txns, err := ledger.NewService(root).ReadAll()
			if err != nil {
				return err
			}

			now := time.Now()

			inbox := highlights.ActionInbox(txns, now, actions)
			if len(inbox) == 0 {
				fmt.Println("Inbox zero. Nothing needs review.")
			} else {
				fmt.Printf("Action inbox (%d):\n", len(inbox))
				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				for _, a := range inbox {
					fmt.Fprintf(w, "  %s\t%s\t%s\t[%s]\n",
						a.Urgency, a.Title, a.Amount.StringFixed(2), a.Category)
				}
				if err := w.Flush(); err != nil {
					return err
				}
			}
			fmt.Println()

			effectiveWindow := window
			if effectiveWindow <= 0 {
				effectiveWindow = highlights.DefaultUpcomingWindowDays
			}
			upcoming := highlights.UpcomingEvents(txns, now, window, events)
			if len(upcoming) == 0 {
				fmt.Printf("No scheduled cash events in the next %d days.\n", effectiveWindow)
				return nil
			}

			fmt.Printf("Upcoming (next %d days):\n", effectiveWindow)
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, e := range upcoming {
				sign := "-"
				if e.Type == highlights.EventInflow {
					sign = "+"
				}
				fmt.Fprintf(w, "  %s\t%s\t%s%s\n",
					e.Date.Format(model.DateLayout), e.Title, sign, e.Amount.StringFixed(2))
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&actions, "actions", 0, "max action items (default 4)")
	cmd.Flags().IntVar(&events, "events", 0, "max upcoming events (default 6)")
	cmd.Flags().IntVar(&window, "window", 0, "upcoming window in days (default 14)")

	return cmd
}
