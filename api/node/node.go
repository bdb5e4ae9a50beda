// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"net/http"

	"github.com/gagliardetto/solana-go"
	"github.com/gorilla/mux"
	"github.com/meterio/meter-auction/api/utils"
	"github.com/meterio/meter-auction/chain"
	"github.com/meterio/meter-auction/logdb"
)

type Status struct {
	Genesis       string           `json:"genesis"`
	ProgramID     solana.PublicKey `json:"programId"`
	BestSlot      uint64           `json:"bestSlot"`
	LaunchTime    uint64           `json:"launchTime"`
	LogDBPath     string           `json:"logdbPath,omitempty"`
	SQLiteVersion string           `json:"sqliteVersion,omitempty"`
}

type Node struct {
	chain *chain.Chain
	logDB *logdb.LogDB
}

func New(chain *chain.Chain, logDB *logdb.LogDB) *Node {
	return &Node{
		chain,
		logDB,
	}
}

func (n *Node) handleStatus(w http.ResponseWriter, req *http.Request) error {
	g := n.chain.Genesis()
	status := &Status{
		Genesis:    g.Name(),
		ProgramID:  g.ProgramID(),
		BestSlot:   n.chain.BestSlot(),
		LaunchTime: g.LaunchTime(),
	}
	if n.logDB != nil {
		status.LogDBPath = n.logDB.Path()
		status.SQLiteVersion = n.logDB.DriverVersion()
	}
	return utils.WriteJSON(w, status)
}

func (n *Node) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/status").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(n.handleStatus))
}
