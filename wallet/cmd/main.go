package main

import (
	"fmt"
	"os"

	"github.com/Luismorlan/chain_in_go/wallet"
	"gopkg.in/urfave/cli.v1"
)

// A small key tool: creates wallet keys and prints their address.
func main() {
	app := cli.NewApp()
	app.Name = "wallet"
	app.Usage = "manage ledger wallet keys"
	keyFlag := cli.StringFlag{
		Name:  "key_path, k",
		Value: "/tmp/mykey.pem",
		Usage: "file path for your private key",
	}
	app.Commands = cli.Commands{
		{
			Name:  "new",
			Usage: "generate a new key and save it to key_path",
			Flags: []cli.Flag{keyFlag},
			Action: func(c *cli.Context) error {
				return printAddress(c.String("key_path"), true)
			},
		},
		{
			Name:  "address",
			Usage: "print the public key stored at key_path",
			Flags: []cli.Flag{keyFlag},
			Action: func(c *cli.Context) error {
				return printAddress(c.String("key_path"), false)
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printAddress(keyPath string, create bool) error {
	w, err := wallet.NewWallet(keyPath, create)
	if err != nil {
		return err
	}
	fmt.Println(w.GetPublicKey())
	return nil
}
