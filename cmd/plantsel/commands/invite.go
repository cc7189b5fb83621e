package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var inviteCmd = &cobra.Command{
	Use:   "invite",
	Short: "Generate an invite link for a new student",
	Long: `Mint a fresh access ticket and print its shareable invite link.
Admin tickets only.

Example:
  plantsel invite --base-address https://plants.example.com`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		st, sess, err := resolveSession(ctx, cfg, "")
		if err != nil {
			return err
		}
		vm, err := loadedViewModel(ctx, st, sess)
		if err != nil {
			return err
		}
		vm.SetAdminView(true)

		ticket, link, err := vm.GenerateInvite(ctx, cfg.BaseAddress)
		if err != nil {
			return err
		}
		fmt.Printf("Code: %s\n", ticket.Code)
		fmt.Printf("Link: %s\n", link)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inviteCmd)
}
