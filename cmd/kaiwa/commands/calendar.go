package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/kaiwastudio/kaiwa/pkg/studioapi"
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Browse the linked Google Calendar",
}

var (
	calendarContext string
	calendarFrom    string
	calendarTo      string
	calendarMax     int
)

var calendarEventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List upcoming calendar events",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		start, end, err := calendarRange()
		if err != nil {
			return err
		}
		client, _, err := loadStudioClient(calendarContext)
		if err != nil {
			return err
		}
		events, err := client.Calendar.Events(cmd.Context(), start, end, calendarMax)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			fmt.Println("no events")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSTART\tEND\tSUMMARY\tLOCATION")
		for _, ev := range events {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				ev.ID,
				ev.StartTime.Local().Format("2006-01-02 15:04"),
				ev.EndTime.Local().Format("15:04"),
				ev.Summary, ev.Location)
		}
		return w.Flush()
	},
}

var (
	eventSummary     string
	eventDescription string
	eventLocation    string
)

var calendarAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a calendar event",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if eventSummary == "" {
			return fmt.Errorf("--summary is required")
		}
		if calendarFrom == "" || calendarTo == "" {
			return fmt.Errorf("--from and --to are required")
		}
		start, err := time.ParseInLocation("2006-01-02 15:04", calendarFrom, time.Local)
		if err != nil {
			return fmt.Errorf("parse --from: %w", err)
		}
		end, err := time.ParseInLocation("2006-01-02 15:04", calendarTo, time.Local)
		if err != nil {
			return fmt.Errorf("parse --to: %w", err)
		}

		client, _, err := loadStudioClient(calendarContext)
		if err != nil {
			return err
		}
		created, err := client.Calendar.CreateEvent(cmd.Context(), studioapi.CalendarEvent{
			Summary:     eventSummary,
			Description: eventDescription,
			Location:    eventLocation,
			StartTime:   start,
			EndTime:     end,
		})
		if err != nil {
			return err
		}
		fmt.Println("created", created.ID)
		return nil
	},
}

var calendarDeleteCmd = &cobra.Command{
	Use:   "delete <event-id>",
	Short: "Delete a calendar event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := loadStudioClient(calendarContext)
		if err != nil {
			return err
		}
		if err := client.Calendar.DeleteEvent(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("deleted", args[0])
		return nil
	},
}

// calendarRange parses --from/--to as local dates, defaulting to the
// next 7 days.
func calendarRange() (time.Time, time.Time, error) {
	now := time.Now()
	start := now
	end := now.AddDate(0, 0, 7)

	if calendarFrom != "" {
		t, err := time.ParseInLocation("2006-01-02", calendarFrom, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parse --from: %w", err)
		}
		start = t
	}
	if calendarTo != "" {
		t, err := time.ParseInLocation("2006-01-02", calendarTo, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parse --to: %w", err)
		}
		end = t.AddDate(0, 0, 1) // inclusive end date
	}
	return start, end, nil
}

func init() {
	calendarCmd.PersistentFlags().StringVarP(&calendarContext, "context", "c", "", "config context to use")
	calendarCmd.PersistentFlags().StringVar(&calendarFrom, "from", "", "range start (events: 2006-01-02, add: '2006-01-02 15:04')")
	calendarCmd.PersistentFlags().StringVar(&calendarTo, "to", "", "range end")

	calendarEventsCmd.Flags().IntVar(&calendarMax, "max", 10, "maximum events to return")

	calendarAddCmd.Flags().StringVar(&eventSummary, "summary", "", "event title")
	calendarAddCmd.Flags().StringVar(&eventDescription, "description", "", "event description")
	calendarAddCmd.Flags().StringVar(&eventLocation, "location", "", "event location")

	calendarCmd.AddCommand(calendarEventsCmd)
	calendarCmd.AddCommand(calendarAddCmd)
	calendarCmd.AddCommand(calendarDeleteCmd)
	rootCmd.AddCommand(calendarCmd)
}
