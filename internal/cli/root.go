package cli

import (
	"github.com/chad-schroeder/blogly/internal/config"
	"github.com/chad-schroeder/blogly/internal/db"
	"github.com/chad-schroeder/blogly/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type options struct {
	configPath string
}

// NewRootCommand wires the serve, migrate and seed subcommands. Running the
// binary without a subcommand serves.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	serve := newServeCmd(opts)
	root := &cobra.Command{
		Use:          "blogly",
		Short:        "Blogly: users, posts and tags",
		SilenceUsage: true,
		RunE:         serve.RunE,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file (defaults to $BLOGLY_CONFIG)")

	root.AddCommand(serve, newMigrateCmd(opts), newSeedCmd(opts))
	return root
}

// env is what every subcommand needs: settings, a logger and a database.
type env struct {
	cfg config.AppConfig
	log *zap.Logger
	db  *gorm.DB
}

func setup(opts *options) (*env, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg)
	if err != nil {
		return nil, err
	}

	gdb, err := db.Open(cfg, log)
	if err != nil {
		log.Error("database unavailable", zap.Error(err))
		return nil, err
	}
	return &env{cfg: cfg, log: log, db: gdb}, nil
}

func (e *env) close() {
	if sqlDB, err := e.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = e.log.Sync()
}
