package main

import (
	"context"
	"log"

	"github.com/minhvng/recruitcli/internal/client/cli"
	"github.com/minhvng/recruitcli/internal/client/config"
)

func main() {

	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(context.Background())

}
