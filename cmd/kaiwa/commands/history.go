package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/kaiwastudio/kaiwa/pkg/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse the local call journal",
}

var historyLimit int

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent calls, newest first",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		journal, err := openJournal()
		if err != nil {
			return err
		}
		defer journal.Close()

		records, err := journal.Recent(historyLimit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("no calls recorded")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSTARTED\tDURATION\tUTTERANCES\tIMAGES\tCLIPS")
		for _, rec := range records {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\n",
				rec.ID,
				rec.StartedAt.Local().Format("2006-01-02 15:04:05"),
				rec.EndedAt.Sub(rec.StartedAt).Round(time.Second),
				len(rec.Transcript),
				rec.ImageCaptures,
				rec.AudioCaptures)
		}
		return w.Flush()
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <call-id>",
	Short: "Show one call with its full transcript",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		journal, err := openJournal()
		if err != nil {
			return err
		}
		defer journal.Close()

		for rec, err := range journal.All() {
			if err != nil {
				return err
			}
			if rec.ID != args[0] {
				continue
			}
			data, err := json.MarshalIndent(rec, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}
		return fmt.Errorf("call %q not found", args[0])
	},
}

func openJournal() (*history.Journal, error) {
	cfg, err := GetConfig()
	if err != nil {
		return nil, err
	}
	return history.Open(cfg.HistoryDir())
}

func init() {
	historyListCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum calls to list")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}
