package cmd

import (
	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/config"
	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/dashboard"
	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/esi"
	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/logging"
	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/repository"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		app := fx.New(appOptions(cfg))
		if err := app.Err(); err != nil {
			return err
		}
		app.Run()
		return nil
	},
}

func appOptions(cfg *config.Config) fx.Option {
	return fx.Options(
		fx.Supply(cfg),
		fx.Provide(
			logging.New,
			repository.NewPostgres,
			esi.New,
		),
		fx.WithLogger(logging.FxLogger),
		dashboard.Module,
		fx.Invoke(dashboard.RegisterHooks),
	)
}
