package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "Pulsegram"
	app.Usage = ""
	app.Commands = []*cli.Command{
		{
			Action:      server.startApi,
			Name:        "api",
			Usage:       "Start the api service",
			Category:    "Api",
			Description: `The main service with all http apis.`,
		},
		{
			Action:      server.startRealtime,
			Name:        "realtime",
			Usage:       "Start the realtime service",
			Category:    "Websocket",
			Description: `Relays chat, typing, and presence events via websocket.`,
		},
		{
			Action:      server.startMigrate,
			Name:        "migrate",
			Usage:       "Migrate the database schema",
			Category:    "Database",
			Description: `Creates or updates every table to match the current entities.`,
		},
	}

	s.app = app
}
