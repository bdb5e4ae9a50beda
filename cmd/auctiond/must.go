// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/meterio/meter-auction/chain"
	"github.com/meterio/meter-auction/genesis"
	"github.com/meterio/meter-auction/logdb"
	"github.com/meterio/meter-auction/lvldb"
	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/preset"
	"github.com/meterio/meter-auction/script"
	cli "gopkg.in/urfave/cli.v1"
)

func initLogger(ctx *cli.Context) {
	slog.SetDefault(newLogger(ctx.Int(verbosityFlag.Name)))
}

func selectGenesis(ctx *cli.Context) *genesis.Genesis {
	var p *preset.PresetConfig
	switch name := ctx.String(presetFlag.Name); name {
	case "dev":
		p = preset.DevPresetConfig
	case "test":
		p = preset.TestPresetConfig
	default:
		loaded, err := preset.LoadConfig(name)
		if err != nil {
			fatal(fmt.Sprintf("load preset [%v]: %v", name, err))
		}
		p = loaded
	}
	gene, err := genesis.New(p)
	if err != nil {
		fatal("invalid preset:", err)
	}
	// the auction module registers at the package level id
	meter.AuctionProgramID = gene.ProgramID()
	return gene
}

func makeDataDir(ctx *cli.Context) string {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		fatal(fmt.Sprintf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name))
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		fatal(fmt.Sprintf("create data dir [%v]: %v", dataDir, err))
	}
	return dataDir
}

func makeInstanceDir(ctx *cli.Context, gene *genesis.Genesis) string {
	instanceDir := filepath.Join(makeDataDir(ctx), "instance-"+gene.Name())
	if err := os.MkdirAll(instanceDir, 0700); err != nil {
		fatal(fmt.Sprintf("create instance dir [%v]: %v", instanceDir, err))
	}
	return instanceDir
}

func openMainDB(dataDir string) *lvldb.LevelDB {
	dir := filepath.Join(dataDir, "main.db")
	db, err := lvldb.New(dir, lvldb.Options{
		CacheSize:              128,
		OpenFilesCacheCapacity: 512,
	})
	if err != nil {
		fatal(fmt.Sprintf("open ledger database [%v]: %v", dir, err))
	}
	return db
}

func openLogDB(dataDir string) *logdb.LogDB {
	dir := filepath.Join(dataDir, "logs.db")
	db, err := logdb.New(dir)
	if err != nil {
		fatal(fmt.Sprintf("open log database [%v]: %v", dir, err))
	}
	return db
}

func initChain(gene *genesis.Genesis, mainDB *lvldb.LevelDB, logDB *logdb.LogDB) *chain.Chain {
	c, err := chain.New(mainDB, gene, script.NewScriptEngine(), logDB)
	if err != nil {
		fatal("initialize ledger:", err)
	}
	return c
}

func startAPIServer(ctx *cli.Context, handler http.Handler) (string, func()) {
	addr := ctx.String(apiAddrFlag.Name)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		fatal(fmt.Sprintf("listen API addr [%v]: %v", addr, err))
	}

	timeout := ctx.Int(apiTimeoutFlag.Name)
	if timeout > 0 {
		handler = handleAPITimeout(handler, time.Duration(timeout)*time.Millisecond)
	}
	handler = requestBodyLimit(handler)
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: 10 * time.Second}
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			slog.Error("API service stopped", "err", err)
		}
	}()
	return "http://" + listener.Addr().String() + "/", func() {
		if err := srv.Close(); err != nil {
			slog.Warn("could not close API service", "err", err)
		}
		wg.Wait()
	}
}

func printStartupMessage(gene *genesis.Genesis, c *chain.Chain, dataDir string, apiURL string) {
	fmt.Printf(`Starting %v
    Network         [ %v ]
    Auction program [ %v ]
    Best slot       [ %v ]
    Instance dir    [ %v ]
    API portal      [ %v ]
`,
		fullVersion(),
		gene.Name(),
		gene.ProgramID(),
		c.BestSlot(),
		dataDir,
		apiURL)
}
