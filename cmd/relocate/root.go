package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/katalvlaran/relocate/internal/config"
	"github.com/katalvlaran/relocate/internal/logging"
)

// app is the state shared by the subcommands once flags are parsed.
type app struct {
	v          *viper.Viper
	configFile string
	cfg        config.Config
	log        *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:   "relocate",
		Short: "Relocate finds minimum-cost token relocations",
		Long: `Relocate moves weighted tokens between hallway cells and stacks until every
token rests in its destination stack, and reports the cheapest sequence of turns.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.init(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default: ./relocate.yaml)")
	pf.String(config.FlagName(config.KeyLogLevel), "info", "log level: debug, info, warn, error")
	pf.String(config.FlagName(config.KeyStoreBackend), config.BackendMemory, "result store: none, memory, sqlite, redis")
	pf.String(config.FlagName(config.KeySQLitePath), "relocate.db", "sqlite database file")
	pf.String(config.FlagName(config.KeyRedisAddr), "localhost:6379", "redis address")
	pf.String(config.FlagName(config.KeyBound), "simple", "lower bound: none, simple")
	pf.Duration(config.FlagName(config.KeyTimeLimit), 0, "search time limit (0 = none)")
	pf.Int(config.FlagName(config.KeyWorkers), 1, "parallel search workers")
	pf.Bool(config.FlagName(config.KeySharedMemo), false, "share the dominance table between workers")

	root.AddCommand(newSolveCmd(a), newServeCmd(a), newVersionCmd())

	return root
}

// init resolves the configuration and the logger.
func (a *app) init(cmd *cobra.Command) error {
	if err := config.BindFlags(a.v, cmd.Flags()); err != nil {
		return err
	}
	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logging.NewWriter(cmd.ErrOrStderr(), level)

	return nil
}
