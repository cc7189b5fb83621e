package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"plantsel/internal/session"
)

var claimCmd = &cobra.Command{
	Use:   "claim <name>",
	Short: "Attach your name to the active ticket",
	Long: `Attach a display name to the active ticket. Claiming is idempotent;
running it again overwrites the earlier name.

Example:
  plantsel claim "Jo Barnes"`,
	Args: cobra.MinimumNArgs(1),
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
		if !sess.Authenticated() {
			return fmt.Errorf("no access ticket; open an invite link first")
		}
		resolver := session.NewResolver(st, configSlot{cfg: cfg})
		name := strings.Join(args, " ")
		if err := resolver.Claim(ctx, &sess, name); err != nil {
			return err
		}
		fmt.Printf("Claimed as %s\n", sess.Ticket.OwnerName)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(claimCmd)
}
