package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(trackCmd)
}

var trackCmd = &cobra.Command{
	Use:   "track <CODE>",
	Short: "Look up a request by its tracking code",
	Long: `Look up a client request by its tracking code, as a client would.
The code is the 9-character form from the confirmation, e.g. EBF-1234.

A request without a scheduled appointment is a normal outcome, shown as
awaiting scheduling.`,
	Args: cobra.ExactArgs(1),
	RunE: runTrack,
}

func runTrack(cmd *cobra.Command, args []string) error {
	svc, closeDB, err := openService()
	if err != nil {
		return err
	}
	defer closeDB()

	msg, err := svc.Track(args[0])
	if err != nil {
		return err
	}

	if IsJSON() {
		data, _ := json.MarshalIndent(msg, "", "  ")
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Client:       %s\n", msg.Name)
	if msg.Phone != "" {
		fmt.Printf("Phone:        %s\n", msg.Phone)
	}
	fmt.Printf("Request:      %s\n", msg.Content)
	if msg.HasAppointment() {
		fmt.Printf("Appointment:  %s\n", msg.AppointmentDate)
	} else {
		fmt.Printf("Appointment:  awaiting scheduling\n")
	}

	return nil
}
