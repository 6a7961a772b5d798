package main

import (
	"context"

	"github.com/fundry/console/internal/console/cli"
	"github.com/fundry/console/internal/console/config"
	"github.com/fundry/console/internal/logging"
)

func main() {

	cfg := config.LoadConfig()
	log := logging.NewDefault()

	app := cli.NewApp(cfg, log)
	app.Run(context.Background())

}
