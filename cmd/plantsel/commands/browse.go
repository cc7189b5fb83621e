package commands

import (
	"context"
	"log"
	"net/http"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"plantsel/internal/catalog"
	"plantsel/internal/export"
	"plantsel/internal/session"
	"plantsel/internal/telemetry"
	"plantsel/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse [invite-address]",
	Short: "Open the interactive plant browser",
	Long: `Open the interactive browser. Pass an invite address the first time;
the ticket code it carries is remembered for later sessions.

Examples:
  plantsel browse "https://plants.example.com/?ticket=AB23CD45"
  plantsel browse`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBrowse(cmd.Context(), argAddress(args))
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(ctx context.Context, address string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	shutdown := telemetry.Setup("plantsel")
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Printf("telemetry shutdown err=%v", err)
		}
	}()

	st, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	resolver := session.NewResolver(st, configSlot{cfg: cfg})
	sess, _, err := resolver.Resolve(ctx, address)
	if err != nil {
		return err
	}

	var vm *catalog.ViewModel
	if sess.Authenticated() {
		vm = catalog.New(st, sess.Ticket)
	} else {
		vm = catalog.New(st, nil)
	}

	exporter := export.NewPDFExporter(&http.Client{Timeout: cfg.HTTPTimeout})
	model := tui.New(vm, resolver, sess, exporter, cfg.BaseAddress)

	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}
