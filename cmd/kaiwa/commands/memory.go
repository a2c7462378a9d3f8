package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kaiwastudio/kaiwa/pkg/studioapi"
)

var memoryCmd = &cobra.Command{
	Use:   "memory",
	Short: "Manage the assistant's long-term memory",
}

var (
	memoryContext  string
	memoryCategory string
	memoryLimit    int
)

var memoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List memory entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, studio, err := loadStudioClient(memoryContext)
		if err != nil {
			return err
		}
		memories, err := client.Memory.List(cmd.Context(), studio.UserID,
			studioapi.MemoryCategory(memoryCategory), memoryLimit)
		if err != nil {
			return err
		}
		printMemories(memories)
		return nil
	},
}

var memoryAddCmd = &cobra.Command{
	Use:   "add <content>",
	Short: "Add a memory entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		category := studioapi.MemoryCategory(memoryCategory)
		if category == "" {
			category = studioapi.MemoryContext
		}
		client, studio, err := loadStudioClient(memoryContext)
		if err != nil {
			return err
		}
		m, err := client.Memory.Create(cmd.Context(), studio.UserID, args[0], category)
		if err != nil {
			return err
		}
		fmt.Printf("added %s (%s)\n", m.ID, m.Category)
		return nil
	},
}

var memorySearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search memory entries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, studio, err := loadStudioClient(memoryContext)
		if err != nil {
			return err
		}
		memories, err := client.Memory.Search(cmd.Context(), studio.UserID, args[0], memoryLimit)
		if err != nil {
			return err
		}
		printMemories(memories)
		return nil
	},
}

var memoryContextCmd = &cobra.Command{
	Use:   "context",
	Short: "Show the memory context injected into conversations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, studio, err := loadStudioClient(memoryContext)
		if err != nil {
			return err
		}
		text, err := client.Memory.Context(cmd.Context(), studio.UserID)
		if err != nil {
			return err
		}
		fmt.Println(text)
		return nil
	},
}

var memoryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a memory entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, studio, err := loadStudioClient(memoryContext)
		if err != nil {
			return err
		}
		if err := client.Memory.Delete(cmd.Context(), studio.UserID, args[0]); err != nil {
			return err
		}
		fmt.Println("deleted", args[0])
		return nil
	},
}

func printMemories(memories []studioapi.Memory) {
	if len(memories) == 0 {
		fmt.Println("no memories")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCATEGORY\tCREATED\tCONTENT")
	for _, m := range memories {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			m.ID, m.Category, m.CreatedAt.Format("2006-01-02 15:04"), m.Content)
	}
	w.Flush()
}

func init() {
	memoryCmd.PersistentFlags().StringVarP(&memoryContext, "context", "c", "", "config context to use")
	memoryCmd.PersistentFlags().StringVar(&memoryCategory, "category", "", "memory category (profile, preference, context)")
	memoryCmd.PersistentFlags().IntVar(&memoryLimit, "limit", 0, "maximum entries to return")

	memoryCmd.AddCommand(memoryListCmd)
	memoryCmd.AddCommand(memoryAddCmd)
	memoryCmd.AddCommand(memorySearchCmd)
	memoryCmd.AddCommand(memoryContextCmd)
	memoryCmd.AddCommand(memoryDeleteCmd)
	rootCmd.AddCommand(memoryCmd)
}
