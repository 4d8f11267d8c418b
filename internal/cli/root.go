// Package cli wires the pawnbook commands: sign-in/out, session inspection
// and CRUD over clients, products, orders and pawns.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"pawnbook/internal/api"
	"pawnbook/internal/backoffice"
	"pawnbook/internal/config"
	"pawnbook/internal/observability"
	"pawnbook/internal/session"
	"pawnbook/internal/store"
	"pawnbook/internal/ui"
)

type options struct {
	configPath string
	baseURL    string
	timeout    time.Duration
	plain      bool
}

type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	runtime  *observability.Runtime
	store    store.TokenStore
	sessions *session.Manager
	services *backoffice.Services
}

func NewRootCommand() *cobra.Command {
	opts := &options{}
	a := &app{}
	cmd := &cobra.Command{
		Use:           "pawnbook",
		Short:         "Back-office terminal for the pawn-shop API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file")
	cmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", "", "API base URL (overrides config)")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 0, "request timeout (overrides config)")
	cmd.PersistentFlags().BoolVar(&opts.plain, "plain", false, "non-interactive plain output")
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return a.init(cmd.Context(), opts)
	}
	cmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if a.runtime != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = a.runtime.Shutdown(ctx)
		}
	}

	cmd.AddCommand(newLoginCommand(a, opts))
	cmd.AddCommand(newLogoutCommand(a, opts))
	cmd.AddCommand(newWhoamiCommand(a, opts))
	cmd.AddCommand(newClientsCommand(a, opts))
	cmd.AddCommand(newProductsCommand(a, opts))
	cmd.AddCommand(newOrdersCommand(a, opts))
	cmd.AddCommand(newPawnsCommand(a, opts))
	return cmd
}

func (a *app) init(ctx context.Context, opts *options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.baseURL != "" {
		cfg.BaseURL = opts.baseURL
	}
	if opts.timeout > 0 {
		cfg.Timeout = opts.timeout
	}
	a.cfg = cfg
	a.logger = observability.NewLogger(cfg.Log)
	slog.SetDefault(a.logger)

	a.runtime, err = observability.InitRuntime(ctx, cfg.OTEL, a.logger)
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}

	a.store, err = newTokenStore(cfg.Store)
	if err != nil {
		return err
	}

	transport := observability.Transport(cfg.OTEL)
	tokens, err := api.NewTokenClient(cfg.BaseURL, cfg.Timeout, transport, a.logger)
	if err != nil {
		return err
	}
	client, err := api.NewClient(api.Options{
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		Store:     a.store,
		Tokens:    tokens,
		Logger:    a.logger,
		Transport: transport,
	})
	if err != nil {
		return err
	}
	a.sessions = session.NewManager(a.store, tokens)
	a.services = backoffice.New(client)
	return nil
}

func newTokenStore(cfg config.StoreConfig) (store.TokenStore, error) {
	switch cfg.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		return store.NewRedisStore(client, cfg.RedisPrefix), nil
	case "memory":
		return store.NewMemStore(), nil
	default:
		path := cfg.Path
		if path == "" {
			var err error
			path, err = store.DefaultPath()
			if err != nil {
				return nil, err
			}
		}
		return store.NewFileStore(path)
	}
}

// run executes fn behind the spinner, or plainly with --plain, printing the
// detail lines either way.
func (a *app) run(opts *options, title string, fn func(context.Context) ([]string, error)) error {
	var err error
	if opts.plain {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()
		var details []string
		details, err = fn(ctx)
		for _, d := range details {
			fmt.Println(d)
		}
	} else {
		_, err = ui.Run(title, fn)
	}
	var authErr *api.AuthError
	if errors.As(err, &authErr) && authErr.Exhausted {
		// The client already cleared the stored pair; drop the in-memory
		// session too so nothing stale survives the command.
		a.sessions.Invalidate()
	}
	return err
}

// ExitCode maps a command error to the process exit status. Auth exhaustion
// gets its own code so wrapper scripts can trigger a fresh sign-in.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var authErr *api.AuthError
	if errors.As(err, &authErr) {
		return 3
	}
	var domainErr *api.DomainError
	if errors.As(err, &domainErr) {
		return 2
	}
	return 1
}

// Hint returns the operator-facing advice for err, if any.
func Hint(err error) string {
	var authErr *api.AuthError
	if errors.As(err, &authErr) && authErr.Exhausted {
		return "session expired: run `pawnbook login` to sign in again"
	}
	if errors.Is(err, session.ErrNoSession) {
		return "not signed in: run `pawnbook login`"
	}
	return ""
}
