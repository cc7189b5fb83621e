package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"plantsel/internal/catalog"
	"plantsel/internal/config"
	"plantsel/internal/session"
	"plantsel/internal/store"
	"plantsel/internal/store/postgres"
	"plantsel/internal/store/rest"
)

var (
	// Global flags
	configPath  string
	backendURL  string
	databaseURL string
	baseAddress string
)

var rootCmd = &cobra.Command{
	Use:   "plantsel",
	Short: "Browse a private plant library from the terminal",
	Long: `plantsel is a terminal client for a gated plant library. Access is
granted through invite links carrying a ticket code; once resolved, the
code is remembered locally so later sessions reconnect without the link.

Members browse the catalog, filter it, and keep a favourites list that
can be copied as text or exported as a PDF palette. Admin tickets also
manage the catalog and the student roster.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default ~/.config/plantsel/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&backendURL, "backend-url", "", "Row store API base URL")
	rootCmd.PersistentFlags().StringVar(&databaseURL, "db", "", "Direct database URL (selects the postgres backend)")
	rootCmd.PersistentFlags().StringVar(&baseAddress, "base-address", "", "Address invite links are built on")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if backendURL != "" {
		cfg.BackendURL = backendURL
	}
	if databaseURL != "" {
		cfg.DatabaseURL = databaseURL
		cfg.Backend = config.BackendPostgres
	}
	if baseAddress != "" {
		cfg.BaseAddress = baseAddress
	}
	return cfg, nil
}

func newStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("postgres backend needs --db or DB_DSN")
		}
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		return postgres.NewStore(pool), nil
	case config.BackendREST, "":
		if cfg.BackendURL == "" {
			return nil, fmt.Errorf("rest backend needs --backend-url or PLANTSEL_BACKEND_URL")
		}
		return rest.NewStore(cfg.BackendURL, rest.Options{
			APIKey:  cfg.APIKey,
			Timeout: cfg.HTTPTimeout,
		}), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// configSlot persists the resolved ticket code through the config file.
type configSlot struct {
	cfg *config.Config
}

func (s configSlot) Load() string            { return s.cfg.TicketCode }
func (s configSlot) Store(code string) error { return s.cfg.SaveTicketCode(code) }
func (s configSlot) Clear() error            { return s.cfg.ClearTicketCode() }

// resolveSession builds the store and resolves the session ticket from
// the optional invite address argument, falling back to the persisted
// code. Commands that need an authenticated session check the result.
func resolveSession(ctx context.Context, cfg *config.Config, address string) (store.Store, session.Session, error) {
	st, err := newStore(ctx, cfg)
	if err != nil {
		return nil, session.Session{}, err
	}
	resolver := session.NewResolver(st, configSlot{cfg: cfg})
	sess, _, err := resolver.Resolve(ctx, address)
	if err != nil {
		return nil, session.Session{}, err
	}
	return st, sess, nil
}

func loadedViewModel(ctx context.Context, st store.Store, sess session.Session) (*catalog.ViewModel, error) {
	if !sess.Authenticated() {
		return nil, fmt.Errorf("no access ticket; open an invite link first (plantsel browse <invite-address>)")
	}
	vm := catalog.New(st, sess.Ticket)
	if err := vm.Load(ctx); err != nil {
		return nil, err
	}
	return vm, nil
}

func argAddress(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
