// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package system

import (
	"github.com/meterio/meter-auction/meter"
)

var (
	ErrAccountAlreadyInUse        = meter.NewProgramError(meter.ErrResourceFault, 100, "account already in use")
	ErrInvalidAccountDataLength   = meter.NewProgramError(meter.ErrInvalidParameter, 101, "invalid account data length")
	ErrResultWithNegativeLamports = meter.NewProgramError(meter.ErrResourceFault, 102, "insufficient lamports")
	ErrTransferFromAccountData    = meter.NewProgramError(meter.ErrInvalidParameter, 103, "transfer source must not carry data")
)
