package cli

import (
	"github.com/chad-schroeder/blogly/internal/db"

	"github.com/spf13/cobra"
)

func newMigrateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the users, posts, tags and post_tags tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(opts)
			if err != nil {
				return err
			}
			defer e.close()

			if err := db.Migrate(e.db); err != nil {
				return err
			}
			e.log.Info("database migration completed")
			return nil
		},
	}
}
