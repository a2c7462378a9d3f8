package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kaiwastudio/kaiwa/pkg/studioapi"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage assistant settings on the Studio backend",
}

var settingsContext string

var settingsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the current settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, studio, err := loadStudioClient(settingsContext)
		if err != nil {
			return err
		}
		settings, err := client.Settings.Get(cmd.Context(), studio.UserID)
		if err != nil {
			return err
		}
		printSettings(settings)
		return nil
	},
}

var (
	settingsPrompt      string
	settingsVoiceID     string
	settingsSpeed       float64
	settingsSensitivity int
)

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update settings fields",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		update := &studioapi.SettingsUpdate{
			SystemPrompt:       settingsPrompt,
			VoiceID:            settingsVoiceID,
			Speed:              settingsSpeed,
			SilenceSensitivity: settingsSensitivity,
		}
		if *update == (studioapi.SettingsUpdate{}) {
			return fmt.Errorf("nothing to update, pass at least one flag")
		}

		client, studio, err := loadStudioClient(settingsContext)
		if err != nil {
			return err
		}
		settings, err := client.Settings.Update(cmd.Context(), studio.UserID, update)
		if err != nil {
			return err
		}
		printSettings(settings)
		return nil
	},
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset settings to the backend defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, studio, err := loadStudioClient(settingsContext)
		if err != nil {
			return err
		}
		if err := client.Settings.Delete(cmd.Context(), studio.UserID); err != nil {
			return err
		}
		fmt.Println("settings reset")
		return nil
	},
}

func printSettings(s *studioapi.Settings) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "VOICE\t%s\n", s.VoiceID)
	fmt.Fprintf(w, "SPEED\t%.2f\n", s.Speed)
	fmt.Fprintf(w, "SILENCE SENSITIVITY\t%d\n", s.SilenceSensitivity)
	fmt.Fprintf(w, "SYSTEM PROMPT\t%s\n", s.SystemPrompt)
	w.Flush()
}

func init() {
	settingsCmd.PersistentFlags().StringVarP(&settingsContext, "context", "c", "", "config context to use")

	settingsSetCmd.Flags().StringVar(&settingsPrompt, "system-prompt", "", "assistant system prompt")
	settingsSetCmd.Flags().StringVar(&settingsVoiceID, "voice-id", "", "TTS voice ID")
	settingsSetCmd.Flags().Float64Var(&settingsSpeed, "speed", 0, "speech speed multiplier")
	settingsSetCmd.Flags().IntVar(&settingsSensitivity, "silence-sensitivity", 0, "endpointing sensitivity")

	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}
