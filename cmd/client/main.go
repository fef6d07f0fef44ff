package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"syscall"

	"github.com/saeidalz13/battleship-duel/client"
	"github.com/saeidalz13/battleship-duel/config"
	cerr "github.com/saeidalz13/battleship-duel/internal/error"
	mc "github.com/saeidalz13/battleship-duel/models/connection"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <server> <port> <map-filename>\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalln(err)
	}

	transportKind := flag.String("transport", cfg.Transport, "stream transport: tcp or ws")
	readTimeout := flag.Duration("read-timeout", cfg.ReadTimeout, "deadline for every receive, 0 waits forever")
	noColor := flag.Bool("no-color", false, "do not highlight hits")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 3 {
		usage()
		log.Fatalln(cerr.ErrArgument("client <server> <port> <map-filename>"))
	}

	// the layout is forwarded as is, the player normalises it
	layout, err := os.ReadFile(flag.Arg(2))
	if err != nil {
		log.Fatalln(cerr.ErrIO("read "+flag.Arg(2), err))
	}

	shutdown := mc.NewShutdown()
	shutdown.WatchSignals(func(os.Signal) { os.Exit(0) }, os.Interrupt, syscall.SIGTERM)

	player, err := client.NewPlayer(flag.Arg(0), flag.Arg(1), layout,
		client.WithPlayerTransport(*transportKind),
		client.WithPlayerReadTimeout(*readTimeout),
		client.WithRenderer(client.NewRenderer(os.Stdout, !*noColor)),
		client.WithPlayerShutdown(shutdown),
	)
	if err != nil {
		usage()
		log.Fatalln(err)
	}

	if _, err := player.Run(context.Background()); err != nil {
		// the signal path exits with status 0 on its own
		if shutdown.Signal() != nil {
			select {}
		}
		log.Fatalln(err)
	}
}
