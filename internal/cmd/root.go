package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Egor213/LogKeeper/internal/app"
	"github.com/Egor213/LogKeeper/internal/config"
	"github.com/Egor213/LogKeeper/internal/metrics"
	"github.com/Egor213/LogKeeper/internal/service"
	"github.com/Egor213/LogKeeper/internal/session"
	errorsUtils "github.com/Egor213/LogKeeper/pkg/errors"
	"github.com/Egor213/LogKeeper/pkg/logger"
	"github.com/spf13/cobra"
)

// cli is the state shared by subcommands once the config is loaded.
type cli struct {
	configPath string
	cfg        *config.Config
	sessions   *session.FileStore
}

// NewRootCmd builds the logkeeper command tree.
func NewRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "logkeeper",
		Short: "LogKeeper stores web-server access logs and renders them back",
		Long: `LogKeeper parses access-log files, keeps the records per account and
prints them through a configurable format, optionally limited to a date range.

Log in first, then parse files and print them:
  logkeeper register alice
  logkeeper login alice
  logkeeper parse
  logkeeper output --from 10/Oct/2023 --format '%h %>s %b'`,
		SilenceUsage:      true,
		PersistentPreRunE: func(*cobra.Command, []string) error { return c.load() },
	}
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default: $APP_CONFIG_PATH or infra/config.yaml)")

	root.AddCommand(
		newRegisterCmd(c),
		newLoginCmd(c),
		newLeaveCmd(c),
		newParseCmd(c),
		newOutputCmd(c),
		newPurgeCmd(c),
		newServeCmd(c),
	)
	return root
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func (c *cli) load() error {
	var (
		cfg *config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.Load(c.configPath)
	} else {
		cfg, err = config.New()
	}
	if err != nil {
		return errorsUtils.WrapPathErr(err)
	}

	logger.SetupLogger(cfg.Log.Level)
	c.cfg = cfg
	c.sessions = session.NewFileStore(cfg.Session.Path)
	return nil
}

// services opens storage and builds the services for one command run.
func (c *cli) services(ctx context.Context) (*service.Services, func(), error) {
	repos, closeStorage, err := app.OpenStorage(ctx, c.cfg)
	if err != nil {
		return nil, nil, err
	}
	producer, closeProducer := app.NewProducer(c.cfg)

	svc, err := app.NewServices(c.cfg, repos, metrics.NewDetached(), producer)
	if err != nil {
		closeProducer()
		closeStorage()
		return nil, nil, err
	}

	return svc, func() {
		closeProducer()
		closeStorage()
	}, nil
}

// currentUser returns the logged-in account name.
func (c *cli) currentUser() (string, error) {
	sess, err := c.sessions.Current()
	if errors.Is(err, session.ErrNotLoggedIn) {
		return "", fmt.Errorf("%w, run `logkeeper login` first", err)
	}
	if err != nil {
		return "", err
	}
	return sess.User, nil
}
