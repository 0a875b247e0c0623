package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbearia-agenda/internal/config"
	dbpkg "github.com/BruksfildServices01/barbearia-agenda/internal/db"
	"github.com/BruksfildServices01/barbearia-agenda/internal/logging"
	"github.com/BruksfildServices01/barbearia-agenda/internal/timezone"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logging.Setup(cfg.LogLevel, "text")
	timezone.SetDefault(cfg.DefaultTimezone)

	root := newRootCmd(&app{
		open: func() (*gorm.DB, error) { return dbpkg.NewDB(cfg) },
	})
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
