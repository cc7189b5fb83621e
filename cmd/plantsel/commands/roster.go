package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"plantsel/internal/catalog"
)

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Manage student tickets",
	Long: `List, rename and remove student tickets. Admin tickets only.

Subcommands:
  list    - Show the roster with claim status
  rename  - Set a student's display name
  remove  - Delete a ticket and its favourites`,
}

var rosterListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the roster with claim status",
	RunE: func(cmd *cobra.Command, args []string) error {
		vm, err := adminViewModel(cmd.Context())
		if err != nil {
			return err
		}
		roster := vm.Roster()
		if len(roster) == 0 {
			fmt.Println("No students yet")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tNAME\tCREATED")
		for _, ticket := range roster {
			name := ticket.OwnerName
			if name == "" {
				name = "(unclaimed)"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", ticket.Code, name, ticket.CreatedAt.Format("2006-01-02"))
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Printf("\n%d claimed of %d\n", vm.ClaimedCount(), len(roster))
		return nil
	},
}

var rosterRenameCmd = &cobra.Command{
	Use:   "rename <code> <name>",
	Short: "Set a student's display name",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		vm, err := adminViewModel(cmd.Context())
		if err != nil {
			return err
		}
		ticket, err := rosterTicketByCode(vm, args[0])
		if err != nil {
			return err
		}
		name := strings.Join(args[1:], " ")
		if err := vm.RenameRosterTicket(cmd.Context(), ticket, name); err != nil {
			return err
		}
		fmt.Printf("Renamed %s to %s\n", args[0], name)
		return nil
	},
}

var rosterRemoveCmd = &cobra.Command{
	Use:   "remove <code>",
	Short: "Delete a ticket and its favourites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		vm, err := adminViewModel(cmd.Context())
		if err != nil {
			return err
		}
		ticket, err := rosterTicketByCode(vm, args[0])
		if err != nil {
			return err
		}
		if err := vm.DeleteRosterTicket(cmd.Context(), ticket); err != nil {
			return err
		}
		fmt.Printf("Removed %s\n", args[0])
		return nil
	},
}

func init() {
	rosterCmd.AddCommand(rosterListCmd)
	rosterCmd.AddCommand(rosterRenameCmd)
	rosterCmd.AddCommand(rosterRemoveCmd)
	rootCmd.AddCommand(rosterCmd)
}

func adminViewModel(ctx context.Context) (*catalog.ViewModel, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	st, sess, err := resolveSession(ctx, cfg, "")
	if err != nil {
		return nil, err
	}
	vm, err := loadedViewModel(ctx, st, sess)
	if err != nil {
		return nil, err
	}
	if !vm.SetAdminView(true) {
		return nil, fmt.Errorf("admin ticket required")
	}
	return vm, nil
}

func rosterTicketByCode(vm *catalog.ViewModel, code string) (string, error) {
	for _, ticket := range vm.Roster() {
		if ticket.Code == code {
			return ticket.ID, nil
		}
	}
	return "", fmt.Errorf("no roster ticket with code %s", code)
}
