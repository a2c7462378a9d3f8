package commands

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kaiwastudio/kaiwa/pkg/studioapi"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Trigger simulated device events on the Studio backend",
}

var simulateContext string

var simulateLocationsCmd = &cobra.Command{
	Use:   "locations",
	Short: "List preset geofence locations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, _, err := loadStudioClient(simulateContext)
		if err != nil {
			return err
		}
		locations, err := client.Simulation.Locations(cmd.Context())
		if err != nil {
			return err
		}

		keys := make([]string, 0, len(locations))
		for k := range locations {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "KEY\tNAME\tLATITUDE\tLONGITUDE")
		for _, k := range keys {
			loc := locations[k]
			fmt.Fprintf(w, "%s\t%s\t%.6f\t%.6f\n", k, loc.Name, loc.Latitude, loc.Longitude)
		}
		return w.Flush()
	},
}

var (
	geofenceType string
	geofenceLat  float64
	geofenceLng  float64
	geofenceName string
)

var simulateGeofenceCmd = &cobra.Command{
	Use:   "geofence [preset-key]",
	Short: "Trigger a geofence crossing",
	Long: `Trigger a simulated geofence crossing.

With a preset key (see 'kaiwa simulate locations') the backend fills in
the coordinates. Without one, pass --lat and --lng explicitly.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := loadStudioClient(simulateContext)
		if err != nil {
			return err
		}

		var result *studioapi.SimulationResult
		if len(args) == 1 {
			result, err = client.Simulation.TriggerPresetGeofence(cmd.Context(), args[0], geofenceType)
		} else {
			if !cmd.Flags().Changed("lat") || !cmd.Flags().Changed("lng") {
				return fmt.Errorf("pass a preset key or both --lat and --lng")
			}
			result, err = client.Simulation.TriggerGeofence(cmd.Context(), studioapi.GeofenceEvent{
				Location: studioapi.Location{
					Latitude:  geofenceLat,
					Longitude: geofenceLng,
					Name:      geofenceName,
				},
				EventType: geofenceType,
			})
		}
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var (
	notifyTitle string
	notifyBody  string
	notifyApp   string
)

var simulateNotifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Deliver a simulated push notification",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if notifyTitle == "" {
			return fmt.Errorf("--title is required")
		}
		client, _, err := loadStudioClient(simulateContext)
		if err != nil {
			return err
		}
		result, err := client.Simulation.ReceiveNotification(cmd.Context(), studioapi.Notification{
			Title:   notifyTitle,
			Body:    notifyBody,
			AppName: notifyApp,
		})
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	simulateCmd.PersistentFlags().StringVarP(&simulateContext, "context", "c", "", "config context to use")

	simulateGeofenceCmd.Flags().StringVar(&geofenceType, "type", studioapi.GeofenceArrival, "event type (arrival, departure)")
	simulateGeofenceCmd.Flags().Float64Var(&geofenceLat, "lat", 0, "latitude")
	simulateGeofenceCmd.Flags().Float64Var(&geofenceLng, "lng", 0, "longitude")
	simulateGeofenceCmd.Flags().StringVar(&geofenceName, "name", "", "location name")

	simulateNotifyCmd.Flags().StringVar(&notifyTitle, "title", "", "notification title")
	simulateNotifyCmd.Flags().StringVar(&notifyBody, "body", "", "notification body")
	simulateNotifyCmd.Flags().StringVar(&notifyApp, "app", "", "source application name")

	simulateCmd.AddCommand(simulateLocationsCmd)
	simulateCmd.AddCommand(simulateGeofenceCmd)
	simulateCmd.AddCommand(simulateNotifyCmd)
	rootCmd.AddCommand(simulateCmd)
}
