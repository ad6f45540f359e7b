package cli

import (
	"github.com/chad-schroeder/blogly/internal/db"
	"github.com/chad-schroeder/blogly/internal/store"

	"github.com/spf13/cobra"
)

func newSeedCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Migrate, then insert demo users, posts and tags into an empty database",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(opts)
			if err != nil {
				return err
			}
			defer e.close()

			if err := db.Migrate(e.db); err != nil {
				return err
			}
			return db.Seed(cmd.Context(), e.db, store.New(e.db), e.log)
		},
	}
}
