package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Luismorlan/chain_in_go/commands"
	"github.com/Luismorlan/chain_in_go/config"
	"github.com/Luismorlan/chain_in_go/layout"
	"github.com/Luismorlan/chain_in_go/ledger"
	"github.com/Luismorlan/chain_in_go/wallet"
	"github.com/jroimartin/gocui"
	"go.uber.org/zap"
	"gopkg.in/urfave/cli.v1"
)

func main() {
	app := cli.NewApp()
	app.Name = "ledger"
	app.Usage = "run a single process proof-of-work ledger"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Value: "ledger/cmd/config.yaml",
			Usage: "path to ledger config",
		},
		cli.StringFlag{
			Name:  "key_path, k",
			Value: "/tmp/mykey.pem",
			Usage: "file path for your private key",
		},
		cli.BoolFlag{
			Name:  "new_key",
			Usage: "generate a new key and save it to key_path",
		},
		cli.StringFlag{
			Name:  "manual",
			Value: "ledger/cmd/usage.txt",
			Usage: "usage text shown next to the input box",
		},
		cli.BoolFlag{
			Name:  "debug_mode",
			Usage: "read commands from stdin instead of the fancy GUI",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.ParseAppConfig(c.String("config"))
	if err != nil {
		return err
	}

	logger, err := config.NewLogger(&cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	w, err := wallet.NewWallet(c.String("key_path"), c.Bool("new_key"))
	if err != nil {
		return err
	}

	l := ledger.NewLedger(cfg, logger)
	logger.Info("Ledger started",
		zap.Int("difficulty", cfg.Difficulty),
		zap.Float64("mining_reward", cfg.MiningReward),
		zap.String("wallet", w.GetPublicKey()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// A command channel that non-blockingly takes typed commands and
	// hands them to the server.
	cmd := make(chan commands.Command)

	if c.Bool("debug_mode") {
		server := ledger.NewServer(l, w, logger, func(s string) { fmt.Println(s) })
		go ParseCommand(cmd)
		server.Serve(ctx, cmd)
		return nil
	}

	g, err := layout.CreateGui(cmd, c.String("manual"))
	if err != nil {
		return err
	}
	defer g.Close()

	server := ledger.NewServer(l, w, logger, func(s string) { layout.Log(g, s) })
	go server.Serve(ctx, cmd)
	layout.Log(g, "Wallet public key: "+w.GetPublicKey())

	if err := g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return err
	}
	return nil
}

// ParseCommand reads commands from stdin, one per line.
func ParseCommand(cmd chan commands.Command) {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("> ")
		text, err := reader.ReadString('\n')
		if err != nil {
			close(cmd)
			return
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		c, err := commands.CreateCommand(text)
		if err != nil {
			fmt.Println(err)
			continue
		}
		cmd <- c
	}
}
