// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/gagliardetto/solana-go"
	"github.com/meterio/meter-auction/api"
	"github.com/meterio/meter-auction/chain"
	"github.com/meterio/meter-auction/script/auction"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"
)

var (
	version   string
	gitCommit string
	gitTag    string
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("auctiond %s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "auctiond",
		Usage:     "Node running the auction program",
		Copyright: "2020 Meter Foundation <https://meter.io/>",
		Flags: []cli.Flag{
			presetFlag,
			dataDirFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiTimeoutFlag,
			ntpServerFlag,
			verbosityFlag,
		},
		Action: defaultAction,
		Commands: []cli.Command{
			{
				Name:  "derive",
				Usage: "print the accounts derived for a resource and a creator",
				Flags: []cli.Flag{
					presetFlag,
					programFlag,
					resourceFlag,
					creatorFlag,
				},
				Action: deriveAction,
			},
			{
				Name:  "inspect",
				Usage: "dump the auction of a resource from the data dir",
				Flags: []cli.Flag{
					presetFlag,
					dataDirFlag,
					resourceFlag,
					verbosityFlag,
				},
				Action: inspectAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()

	initLogger(ctx)
	gene := selectGenesis(ctx)
	instanceDir := makeInstanceDir(ctx, gene)

	mainDB := openMainDB(instanceDir)
	defer func() { mainDB.Close() }()

	logDB := openLogDB(instanceDir)
	defer func() { logDB.Close() }()

	c := initChain(gene, mainDB, logDB)
	node := NewNode(c, ctx.String(ntpServerFlag.Name))

	apiHandler := api.New(c, logDB, ctx.String(apiCorsFlag.Name))
	apiURL, srvCloser := startAPIServer(ctx, apiHandler)
	defer func() { srvCloser() }()

	printStartupMessage(gene, c, instanceDir, apiURL)
	node.Run(exitSignal)
	return nil
}

func parseKey(ctx *cli.Context, flag cli.StringFlag) (solana.PublicKey, error) {
	s := ctx.String(flag.Name)
	if s == "" {
		return solana.PublicKey{}, errors.Errorf("missing flag --%s", flag.Name)
	}
	key, err := solana.PublicKeyFromBase58(s)
	if err != nil {
		return key, errors.WithMessage(err, flag.Name)
	}
	return key, nil
}

func deriveAction(ctx *cli.Context) error {
	programID := selectGenesis(ctx).ProgramID()
	if ctx.String(programFlag.Name) != "" {
		id, err := parseKey(ctx, programFlag)
		if err != nil {
			return err
		}
		programID = id
	}
	resource, err := parseKey(ctx, resourceFlag)
	if err != nil {
		return err
	}
	addrs, err := auction.DeriveAddresses(programID, resource)
	if err != nil {
		return err
	}
	fmt.Printf("program   %v\nresource  %v\nauction   %v\nextended  %v\ncustody   %v\n",
		programID, resource, addrs.Auction, addrs.Extended, addrs.Custody)

	if ctx.String(creatorFlag.Name) != "" {
		creator, err := parseKey(ctx, creatorFlag)
		if err != nil {
			return err
		}
		escrow, nonce, err := auction.FindEscrowAddress(programID, creator)
		if err != nil {
			return err
		}
		fmt.Printf("escrow    %v (nonce %d)\n", escrow, nonce)
	}
	return nil
}

func inspectAction(ctx *cli.Context) error {
	initLogger(ctx)
	gene := selectGenesis(ctx)
	resource, err := parseKey(ctx, resourceFlag)
	if err != nil {
		return err
	}
	instanceDir := makeInstanceDir(ctx, gene)
	mainDB := openMainDB(instanceDir)
	defer mainDB.Close()

	c, err := chain.New(mainDB, gene, nil, nil)
	if err != nil {
		return err
	}
	info, err := auction.GetAuctionInfo(c.NewState(), gene.ProgramID(), resource)
	if err != nil {
		return err
	}
	fmt.Printf("best slot %d\n", c.BestSlot())
	spew.Config.DisableMethods = true
	spew.Dump(info)
	return nil
}
