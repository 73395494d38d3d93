package main

import (
	"log"

	"github.com/pulsegram/backend/migration"
	"github.com/pulsegram/backend/pkg/xcontext"

	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(ct *cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()

	ctx := ct.Context
	ctx = xcontext.WithConfigs(ctx, *s.configs)
	ctx = xcontext.WithLogger(ctx, s.logger)
	ctx = xcontext.WithDB(ctx, s.db)

	if err := migration.AutoMigrate(ctx); err != nil {
		return err
	}

	log.Println("migration completed")
	return nil
}
