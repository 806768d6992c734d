package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ainnoce10/ebf-console/internal/common"
	"github.com/ainnoce10/ebf-console/internal/models"
	"github.com/ainnoce10/ebf-console/internal/service"
)

// Submit command flags
var (
	submitEmail string
	submitPhone string
)

func init() {
	messageSubmitCmd.Flags().StringVar(&submitEmail, "email", "", "Client email address")
	messageSubmitCmd.Flags().StringVar(&submitPhone, "phone", "", "Client phone number")

	messageCmd.AddCommand(messageListCmd)
	messageCmd.AddCommand(messageShowCmd)
	messageCmd.AddCommand(messageSubmitCmd)
	messageCmd.AddCommand(messageMarkCmd)
	messageCmd.AddCommand(messageScheduleCmd)
	messageCmd.AddCommand(messageResetCmd)
	messageCmd.AddCommand(messageDeleteCmd)

	rootCmd.AddCommand(messageCmd)
}

var messageCmd = &cobra.Command{
	Use:   "message",
	Short: "Customer message management",
	Long:  `List, inspect and transition customer messages through their handling states.`,
}

// message list
var messageListCmd = &cobra.Command{
	Use:   "list",
	Short: "List messages, newest first",
	Long: `List all customer messages, newest first.

Examples:
  ebf message list
  ebf message list --json`,
	Args: cobra.NoArgs,
	RunE: runMessageList,
}

func runMessageList(cmd *cobra.Command, args []string) error {
	svc, closeDB, err := openService()
	if err != nil {
		return err
	}
	defer closeDB()

	messages := svc.List()

	if len(messages) == 0 {
		if IsJSON() {
			fmt.Println("[]")
			return nil
		}
		OutputLine("No messages.")
		return nil
	}

	if IsJSON() {
		data, _ := json.MarshalIndent(messages, "", "  ")
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("%-9s %-12s %-8s %-18s %-9s %s\n", "ID", "STATUS", "CODE", "NAME", "AGE", "SUBJECT")
	fmt.Println(strings.Repeat("-", 80))
	for _, m := range messages {
		fmt.Printf("%-9s %-12s %-8s %-18s %-9s %s\n",
			shortID(m.ID),
			m.Status,
			m.DisplayCode(),
			truncate(m.Name, 18),
			common.FormatAge(m.CreatedAt),
			truncate(m.Subject, 24),
		)
	}

	return nil
}

// message show
var messageShowCmd = &cobra.Command{
	Use:   "show <ID>",
	Short: "Show message details",
	Long: `Display detailed information about a message. The ID may be any
unique prefix of the full message id.

Examples:
  ebf message show 3f2a91c0`,
	Args: cobra.ExactArgs(1),
	RunE: runMessageShow,
}

func runMessageShow(cmd *cobra.Command, args []string) error {
	svc, closeDB, err := openService()
	if err != nil {
		return err
	}
	defer closeDB()

	id, err := resolveID(svc, args[0])
	if err != nil {
		return err
	}
	if id == "" {
		return fmt.Errorf("no message matching %q", args[0])
	}

	msg, err := svc.Get(id)
	if err != nil {
		return err
	}

	if IsJSON() {
		data, _ := json.MarshalIndent(msg, "", "  ")
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Message %s\n", msg.ID)
	fmt.Printf("Subject:      %s\n", msg.Subject)
	fmt.Printf("Status:       %s\n", msg.Status)
	fmt.Printf("Type:         %s\n", msg.Type)
	fmt.Printf("Priority:     %s\n", msg.Priority)
	fmt.Printf("Client:       %s\n", msg.Name)
	if msg.Phone != "" {
		fmt.Printf("Phone:        %s\n", msg.Phone)
	}
	if msg.Email != "" {
		fmt.Printf("Email:        %s\n", msg.Email)
	}
	fmt.Printf("Code:         %s\n", msg.DisplayCode())
	if msg.HasAppointment() {
		fmt.Printf("Appointment:  %s\n", msg.AppointmentDate)
	} else {
		fmt.Printf("Appointment:  not scheduled\n")
	}
	fmt.Printf("Received:     %s\n", common.FormatAge(msg.CreatedAt))
	fmt.Printf("Updated:      %s\n", common.FormatAge(msg.UpdatedAt))
	fmt.Printf("\n%s\n", msg.Content)

	return nil
}

// message submit
var messageSubmitCmd = &cobra.Command{
	Use:   "submit <NAME> <DESCRIPTION>",
	Short: "Record a client request",
	Long: `Record a new client request as an unread message, assigning its
tracking code.

Examples:
  ebf message submit "Alice" "Water leak in the kitchen" --phone 0600000000`,
	Args: cobra.ExactArgs(2),
	RunE: runMessageSubmit,
}

func runMessageSubmit(cmd *cobra.Command, args []string) error {
	svc, closeDB, err := openService()
	if err != nil {
		return err
	}
	defer closeDB()

	msg, err := svc.Submit(service.ClientRequest{
		Name:        args[0],
		Email:       submitEmail,
		Phone:       submitPhone,
		Description: args[1],
	})
	if err != nil {
		return err
	}

	if IsJSON() {
		data, _ := json.MarshalIndent(msg, "", "  ")
		fmt.Println(string(data))
		return nil
	}

	Output("Recorded request %s with tracking code %s\n", shortID(msg.ID), msg.DisplayCode())
	return nil
}

// message mark
var messageMarkCmd = &cobra.Command{
	Use:   "mark <ID> <STATUS>",
	Short: "Set a message's handling status",
	Long: `Overwrite a message's status. Valid statuses: UNREAD, READ,
ANSWERED, ARCHIVED, IN_PROGRESS, COMPLETED, URGENT. Setting the current
status again changes nothing.

Examples:
  ebf message mark 3f2a91c0 READ
  ebf message mark 3f2a91c0 ARCHIVED`,
	Args: cobra.ExactArgs(2),
	RunE: runMessageMark,
}

func runMessageMark(cmd *cobra.Command, args []string) error {
	svc, closeDB, err := openService()
	if err != nil {
		return err
	}
	defer closeDB()

	status, ok := models.ParseStatus(strings.ToUpper(args[1]))
	if !ok {
		return fmt.Errorf("invalid status: %s", args[1])
	}

	id, err := resolveID(svc, args[0])
	if err != nil {
		return err
	}
	if id == "" {
		OutputLine("No matching message; nothing to do.")
		return nil
	}

	msg, err := svc.SetStatus(id, status)
	if err != nil {
		return err
	}
	if msg == nil {
		OutputLine("No matching message; nothing to do.")
		return nil
	}

	Output("Message %s is now %s\n", shortID(msg.ID), msg.Status)
	return nil
}

// message schedule
var messageScheduleCmd = &cobra.Command{
	Use:   "schedule <ID> <DATE>",
	Short: "Schedule the client appointment",
	Long: `Set the appointment date for a message and move it to IN_PROGRESS.
A message can be scheduled only once; rescheduling is rejected.

Examples:
  ebf message schedule 3f2a91c0 "12/09/2026 14:30"`,
	Args: cobra.ExactArgs(2),
	RunE: runMessageSchedule,
}

func runMessageSchedule(cmd *cobra.Command, args []string) error {
	svc, closeDB, err := openService()
	if err != nil {
		return err
	}
	defer closeDB()

	id, err := resolveID(svc, args[0])
	if err != nil {
		return err
	}
	if id == "" {
		OutputLine("No matching message; nothing to do.")
		return nil
	}

	msg, err := svc.ScheduleAppointment(id, args[1])
	if err != nil {
		return err
	}
	if msg == nil {
		OutputLine("No matching message; nothing to do.")
		return nil
	}

	Output("Appointment scheduled for %s; message %s is now %s\n",
		msg.AppointmentDate, shortID(msg.ID), msg.Status)
	return nil
}

// message reset
var messageResetCmd = &cobra.Command{
	Use:   "reset <ID>",
	Short: "Reset a message to its read state",
	Long: `Reset a message: status becomes READ and the detail pane is
collapsed. The appointment date and tracking code are kept. Asks for
confirmation unless --yes is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runMessageReset,
}

func runMessageReset(cmd *cobra.Command, args []string) error {
	svc, closeDB, err := openService()
	if err != nil {
		return err
	}
	defer closeDB()

	id, err := resolveID(svc, args[0])
	if err != nil {
		return err
	}
	if id == "" {
		OutputLine("No matching message; nothing to do.")
		return nil
	}

	if !confirm(fmt.Sprintf("Reset message %s to its initial state?", shortID(id))) {
		OutputLine("Cancelled.")
		return nil
	}

	msg, err := svc.Reset(id)
	if err != nil {
		return err
	}
	if msg == nil {
		OutputLine("No matching message; nothing to do.")
		return nil
	}

	Output("Message %s reset to %s\n", shortID(msg.ID), msg.Status)
	return nil
}

// message delete
var messageDeleteCmd = &cobra.Command{
	Use:   "delete <ID>",
	Short: "Delete a message permanently",
	Long: `Delete a message from the collection. This is irreversible: there
is no soft delete or undo. Asks for confirmation unless --yes is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runMessageDelete,
}

func runMessageDelete(cmd *cobra.Command, args []string) error {
	svc, closeDB, err := openService()
	if err != nil {
		return err
	}
	defer closeDB()

	id, err := resolveID(svc, args[0])
	if err != nil {
		return err
	}
	if id == "" {
		OutputLine("No matching message; nothing to do.")
		return nil
	}

	if !confirm(fmt.Sprintf("Delete message %s permanently?", shortID(id))) {
		OutputLine("Cancelled.")
		return nil
	}

	if svc.Delete(id) {
		Output("Message %s deleted\n", shortID(id))
	} else {
		OutputLine("No matching message; nothing to do.")
	}
	return nil
}

// resolveID matches arg against message ids, accepting any unique
// prefix. No match returns an empty id without error; an ambiguous
// prefix is rejected.
func resolveID(svc *service.MessageService, arg string) (string, error) {
	var match string
	for _, m := range svc.List() {
		if m.ID == arg {
			return m.ID, nil
		}
		if strings.HasPrefix(m.ID, arg) {
			if match != "" {
				return "", fmt.Errorf("ambiguous id prefix %q", arg)
			}
			match = m.ID
		}
	}
	return match, nil
}

// shortID returns the first 8 characters of a message id for display.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
