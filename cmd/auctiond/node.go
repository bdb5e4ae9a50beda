// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/beevik/ntp"
	"github.com/meterio/meter-auction/chain"
	"github.com/meterio/meter-auction/meter"
)

const (
	clockCheckInterval = 10 * time.Minute
	maxClockOffset     = 5 * time.Second
)

// Node keeps the ledger clock in line with an NTP server until ctx is done.
type Node struct {
	chain     *chain.Chain
	ntpServer string
	offset    atomic.Int64 // nanoseconds
	logger    *slog.Logger
}

func NewNode(c *chain.Chain, ntpServer string) *Node {
	n := &Node{
		chain:     c,
		ntpServer: ntpServer,
		logger:    slog.Default().With("pkg", "node"),
	}
	c.SetClock(n.now)
	return n
}

func (n *Node) now() uint64 {
	return uint64(time.Now().Add(time.Duration(n.offset.Load())).Unix())
}

func (n *Node) Run(ctx context.Context) {
	if n.ntpServer == "" {
		<-ctx.Done()
		return
	}
	n.checkClockOffset()

	ticker := time.NewTicker(clockCheckInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n.checkClockOffset()
		}
	}
}

func (n *Node) checkClockOffset() {
	resp, err := ntp.Query(n.ntpServer)
	if err != nil {
		n.logger.Debug("failed to access NTP", "err", err)
		return
	}
	if err := resp.Validate(); err != nil {
		n.logger.Debug("invalid NTP response", "err", err)
		return
	}
	n.offset.Store(int64(resp.ClockOffset))
	if resp.ClockOffset > maxClockOffset || resp.ClockOffset < -maxClockOffset {
		n.logger.Warn("clock offset detected, slot timestamps corrected", "offset", meter.PrettyDuration(resp.ClockOffset))
	}
}
