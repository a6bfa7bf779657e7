package cmd

import (
	"context"
	"fmt"

	"articlelike/config"
	"articlelike/models"
	"articlelike/repository"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	seedUsers    int
	seedArticles int
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert sample users and articles",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		defer logger.Sync()

		db, err := config.OpenDB(cfg.Database)
		if err != nil {
			return err
		}
		defer closeDB(db)
		if err := models.AutoMigrate(db); err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		store := repository.NewGormStore(db)
		err = store.WithTx(ctx, func(tx repository.Store) error {
			for i := 1; i <= seedUsers; i++ {
				if err := tx.CreateUser(ctx, &models.User{Name: fmt.Sprintf("user%d", i)}); err != nil {
					return err
				}
			}
			for i := 1; i <= seedArticles; i++ {
				article := &models.Article{
					Title:   fmt.Sprintf("article %d", i),
					Content: fmt.Sprintf("body of article %d", i),
					Preview: fmt.Sprintf("preview %d", i),
				}
				if err := tx.CreateArticle(ctx, article); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}

		logger.Info("seed complete", zap.Int("users", seedUsers), zap.Int("articles", seedArticles))
		return nil
	},
}

func init() {
	seedCmd.Flags().IntVar(&seedUsers, "users", 5, "number of users to create")
	seedCmd.Flags().IntVar(&seedArticles, "articles", 20, "number of articles to create")
}
