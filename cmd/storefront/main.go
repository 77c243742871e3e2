package main

import (
	"context"
	"log"
	"os"

	"github.com/mkaleva/ornata/internal/buildinfo"
	"github.com/mkaleva/ornata/internal/cli"
	"github.com/mkaleva/ornata/internal/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
