// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"
)

var (
	presetFlag = cli.StringFlag{
		Name:  "preset",
		Value: "dev",
		Usage: "genesis preset (dev|test) or path to a preset yaml file",
	}
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for ledger databases",
	}
	apiAddrFlag = cli.StringFlag{
		Name:  "api-addr",
		Value: "localhost:8669",
		Usage: "API service listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Value: "",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	apiTimeoutFlag = cli.IntFlag{
		Name:  "api-timeout",
		Value: 10000,
		Usage: "API request timeout value in milliseconds",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: 3,
		Usage: "log verbosity (0-4)",
	}
	ntpServerFlag = cli.StringFlag{
		Name:  "ntp-server",
		Value: "pool.ntp.org",
		Usage: "NTP server used to correct slot timestamps, empty to disable",
	}
	resourceFlag = cli.StringFlag{
		Name:  "resource",
		Usage: "base58 key of the resource sold by the auction",
	}
	creatorFlag = cli.StringFlag{
		Name:  "creator",
		Usage: "base58 key of the auction creator",
	}
	programFlag = cli.StringFlag{
		Name:  "program",
		Usage: "base58 id of the auction program, defaults to the preset's",
	}
)
