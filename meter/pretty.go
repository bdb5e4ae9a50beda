// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package meter

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const LamportsPerSol = 1_000_000_000

// PrettyDuration prints a time.Duration with at most three decimals.
type PrettyDuration time.Duration

var prettyDurationRe = regexp.MustCompile(`\.[0-9]{4,}`)

func (d PrettyDuration) String() string {
	label := time.Duration(d).String()
	if match := prettyDurationRe.FindString(label); len(match) > 4 {
		label = strings.Replace(label, match, match[:4], 1)
	}
	return label
}

// PrettyLamports prints a lamport amount in SOL units.
type PrettyLamports uint64

func (l PrettyLamports) String() string {
	whole := uint64(l) / LamportsPerSol
	frac := uint64(l) % LamportsPerSol
	if frac == 0 {
		return fmt.Sprintf("%d SOL", whole)
	}
	return strings.TrimRight(fmt.Sprintf("%d.%09d", whole, frac), "0") + " SOL"
}
