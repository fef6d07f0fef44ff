package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"syscall"

	"github.com/saeidalz13/battleship-duel/api"
	"github.com/saeidalz13/battleship-duel/config"
	"github.com/saeidalz13/battleship-duel/db"
	"github.com/saeidalz13/battleship-duel/db/sqlc"
	cerr "github.com/saeidalz13/battleship-duel/internal/error"
	mb "github.com/saeidalz13/battleship-duel/models/battleship"
	mc "github.com/saeidalz13/battleship-duel/models/connection"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <port>\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalln(err)
	}

	transportKind := flag.String("transport", cfg.Transport, "stream transport: tcp or ws")
	readTimeout := flag.Duration("read-timeout", cfg.ReadTimeout, "deadline for every receive, 0 waits forever")
	strictFleet := flag.Bool("strict-fleet", cfg.StrictFleet, "only accept fleets with exactly the expected ship cells")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		log.Fatalln(cerr.ErrArgument("server <port>"))
	}

	shutdown := mc.NewShutdown()
	shutdown.WatchSignals(func(os.Signal) { os.Exit(0) }, os.Interrupt, syscall.SIGTERM)

	opts := []api.Option{
		api.WithPort(flag.Arg(0)),
		api.WithStage(cfg.Stage),
		api.WithTransport(*transportKind),
		api.WithReadTimeout(*readTimeout),
		api.WithShutdown(shutdown),
	}

	if *strictFleet {
		opts = append(opts, api.WithFleetValidator(mb.ExactShipCells(mb.ShipCellsToDestroy)))
	}

	if cfg.DatabaseUrl != "" {
		psqlDb := db.MustConnectToDb(cfg.DatabaseUrl, cfg.Migrations)
		defer psqlDb.Close()
		opts = append(opts, api.WithRecorder(sqlc.NewDbManager(sqlc.New(psqlDb))))
	}

	server, err := api.NewServer(opts...)
	if err != nil {
		usage()
		log.Fatalln(err)
	}

	game, err := server.ListenAndServe(context.Background())
	if err != nil {
		// the signal path exits with status 0 on its own
		if shutdown.Signal() != nil {
			select {}
		}
		log.Fatalln(err)
	}
	log.Printf("match %s finished after %d rounds: %s", game.Uuid(), game.Round(), game.Status())
}
