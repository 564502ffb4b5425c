package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/meetscribe/internal/capture"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List audio input devices",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(); err != nil {
			return err
		}

		devices, err := capture.ListDevices()
		if err != nil {
			return err
		}

		if len(devices) == 0 {
			fmt.Println("No input devices found.")
			return nil
		}

		for _, d := range devices {
			marker := " "
			if d.Default {
				marker = "*"
			}
			fmt.Printf("%s %-40s %d ch  %6.0f Hz  %s\n", marker, d.Name, d.Channels, d.SampleRate, d.HostAPI)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}
