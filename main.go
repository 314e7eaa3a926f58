package main

import (
	"bufio"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"stocktrack/pkg/app"
	"stocktrack/pkg/console"
	"stocktrack/pkg/domain/service"
	"stocktrack/pkg/render"
	"stocktrack/pkg/storage"
	"stocktrack/pkg/storage/remotestore"
)

func main() {
	cliApp := &cli.App{
		Name:  "stocktrack",
		Usage: "track inventory and customer orders from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "data-dir", Usage: "directory for the local JSON collections"},
			&cli.StringFlag{Name: "remote-dsn", Usage: "MySQL DSN of the shared mirror (empty for local-only)"},
			&cli.DurationFlag{Name: "poll-interval", Usage: "how often to poll the mirror for changes"},
			&cli.StringFlag{Name: "log-file", Usage: "where structured logs are written"},
		},
		Action: run,
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}
	if c.IsSet("data-dir") {
		cfg.DataDir = c.String("data-dir")
	}
	if c.IsSet("remote-dsn") {
		cfg.RemoteDSN = c.String("remote-dsn")
	}
	if c.IsSet("poll-interval") {
		cfg.PollInterval = c.Duration("poll-interval")
	}
	if c.IsSet("log-file") {
		cfg.LogFile = c.String("log-file")
	}

	setupLogging(cfg.LogFile)

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	in := bufio.NewReader(os.Stdin)
	out := os.Stdout

	prompter := console.NewPrompter(in, out)
	renderer := console.NewRenderer(out, store, store)
	dispatcher := render.NewDispatcher(renderer.Triggers())
	inventory := service.NewInventoryService(store, prompter, dispatcher)
	orders := service.NewOrderService(store, store, prompter, dispatcher)

	ui := console.New(prompter, out, inventory, orders, renderer)

	// Remote edits re-render without an explicit reload. Notify hands the
	// refresh to the menu goroutine, so watcher callbacks never draw
	// concurrently with it.
	store.Watch(storage.CollectionInventory, func() { ui.Notify(dispatcher.InventoryChanged) })
	store.Watch(storage.CollectionOrders, func() { ui.Notify(dispatcher.OrdersChanged) })

	dispatcher.RefreshAll()
	return ui.Run()
}

func setupLogging(path string) {
	log.SetFormatter(&log.JSONFormatter{})
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err == nil {
		log.SetOutput(file)
	}
}

func openStore(cfg app.Config) (storage.Store, error) {
	var remote storage.Remote
	if cfg.RemoteDSN != "" {
		mirror, err := remotestore.Open(cfg.RemoteDSN, cfg.PollInterval)
		if err != nil {
			// Remote unavailability degrades to local-only, never to a
			// startup failure.
			log.WithError(err).Warn("remote mirror unavailable, running local-only")
		} else {
			remote = mirror
		}
	}

	started := time.Now()
	store, err := storage.Open(cfg.DataDir, remote)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"dataDir":  cfg.DataDir,
		"mirrored": remote != nil,
		"openedIn": time.Since(started).String(),
	}).Info("store ready")
	return store, nil
}
