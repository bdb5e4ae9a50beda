// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import "github.com/prometheus/client_golang/prometheus"

var (
	instructionsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "instructions_executed_total",
		Help: "Counter of executed instructions by program and result",
	}, []string{"program", "result"})
	transactionsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "transactions_executed_total",
		Help: "Counter of executed transactions by result",
	}, []string{"result"})
)

func init() {
	prometheus.MustRegister(instructionsCounter)
	prometheus.MustRegister(transactionsCounter)
}

func resultLabel(err error) string {
	if err != nil {
		return "failed"
	}
	return "ok"
}
