package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"bookstore-client/cmd/bookstore-cli/commands/admin"
	"bookstore-client/cmd/bookstore-cli/globals"
	"bookstore-client/internal/actions"
	"bookstore-client/internal/bookstore"
	"bookstore-client/internal/components/telemetry"
	"bookstore-client/internal/config"
	"bookstore-client/internal/session"
	"bookstore-client/internal/termui"
	"bookstore-client/lib/util/cliutil"

	"github.com/spf13/cobra"
)

const report_cli_teardown = "cli.teardown"

var RootCmd = &cobra.Command{
	Use:               "bookstore-cli",
	Short:             "bookstore-cli is a terminal client for the online bookstore.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

var (
	baseUrl  string
	pageSize int
	verbose  bool
)

// teardown is set once setup succeeds.
var teardown func(ctx context.Context)

func init() {
	RootCmd.PersistentFlags().StringVar(&baseUrl, "base-url", "", "base url of the bookstore api, overrides the config file")
	RootCmd.PersistentFlags().IntVar(&pageSize, "page-size", 0, "books per catalog page, overrides the config file")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs")

	RootCmd.AddCommand(browseCmd)
	RootCmd.AddCommand(booksCmd)
	RootCmd.AddCommand(cartCmd)
	RootCmd.AddCommand(checkoutCmd)
	RootCmd.AddCommand(ordersCmd)
	RootCmd.AddCommand(loginCmd)
	RootCmd.AddCommand(logoutCmd)
	RootCmd.AddCommand(whoamiCmd)
	RootCmd.AddCommand(registerCmd)
	RootCmd.AddCommand(admin.RootCmd)
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("base-url") {
		cfg.BaseUrl = baseUrl
	}
	if cmd.Flags().Changed("page-size") {
		cfg.PageSize = pageSize
	}
	return cfg, cfg.Validate()
}

func setup(cmd *cobra.Command, args []string) error {
	telemetry.InitSlog(os.Stderr, verbose)
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	value, done, err := open(ctx, cfg, os.Stdout)
	if err != nil {
		return err
	}
	teardown = done

	cmd.SetContext(globals.Set(ctx, value))
	return nil
}

// release undoes what open acquired, last acquired first.
type release []func(ctx context.Context) error

func (r release) run(ctx context.Context, tel telemetry.API) {
	for i := len(r) - 1; i >= 0; i-- {
		err := r[i](ctx)
		if err != nil {
			tel.ReportWarning(report_cli_teardown, err)
		}
	}
}

// open acquires what every command needs. If a step fails, the steps before it
// are released before the error is returned.
func open(ctx context.Context, cfg config.Config, out io.Writer) (value *globals.Value, done func(ctx context.Context), err error) {
	tel := telemetry.SlogAPI{}

	var acquired release
	defer func() {
		if err != nil {
			acquired.run(ctx, tel)
		}
	}()

	otelProviders, err := telemetry.Setup(ctx, "bookstore-cli", cfg.Telemetry)
	if err != nil {
		return nil, nil, fmt.Errorf("setup telemetry: %w", err)
	}
	acquired = append(acquired, otelProviders.Shutdown)

	sessions, err := session.Open(cfg.SessionDb, tel)
	if err != nil {
		return nil, nil, err
	}
	acquired = append(acquired, func(context.Context) error {
		return sessions.Close()
	})

	cookies, err := sessions.Load(ctx, cfg.BaseUrl)
	if err != nil {
		return nil, nil, err
	}

	client, err := bookstore.NewClient(bookstore.ClientOptions{
		BaseUrl:           cfg.BaseUrl,
		Timeout:           cfg.Timeout(),
		RequestsPerSecond: cfg.RequestsPerSecond,
		Cookies:           cookies,
	}, tel)
	if err != nil {
		return nil, nil, fmt.Errorf("create client: %w", err)
	}

	notifier := termui.NewNotifier(out)
	value = &globals.Value{
		Config:   cfg,
		Client:   client,
		Sessions: sessions,
		Notifier: notifier,
		Policy:   actions.NewPolicy(notifier, cfg.LoginEntry, tel),
		Tel:      tel,
		Out:      out,
	}

	done = func(ctx context.Context) {
		err := sessions.Save(ctx, cfg.BaseUrl, client.Cookies())
		if err != nil {
			tel.ReportWarning(report_cli_teardown, err)
		}
		acquired.run(ctx, tel)
	}
	return value, done, nil
}

func Execute(ctx context.Context) {
	err := RootCmd.ExecuteContext(ctx)

	if teardown != nil {
		teardownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		teardown(teardownCtx)
		cancel()
	}

	if errors.Is(err, globals.ErrReported) {
		os.Exit(1)
	}
	if err != nil {
		cliutil.Fatal("bookstore-cli", err)
	}
}
