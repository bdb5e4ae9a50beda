// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"github.com/meterio/meter-auction/meter"
)

var (
	ErrInvalidAuctionAccount        = meter.NewProgramError(meter.ErrAddressMismatch, 300, "auction account does not match its derivation")
	ErrInvalidGapTickSizePercentage = meter.NewProgramError(meter.ErrInvalidParameter, 301, "gap tick size percentage must be between 0 and 100")
	ErrInvalidWinnerLimit           = meter.NewProgramError(meter.ErrInvalidParameter, 302, "winner limit must be at least one")
	ErrInvalidDelegate              = meter.NewProgramError(meter.ErrAuthorizationFailure, 303, "escrow does not match the creator and nonce")
	ErrInvalidTokenProgram          = meter.NewProgramError(meter.ErrAuthorizationFailure, 304, "token program is not the canonical token program")
	ErrInvalidEscrow                = meter.NewProgramError(meter.ErrAuthorizationFailure, 305, "escrow does not match the payer")
	ErrRecordTooLarge               = meter.NewProgramError(meter.ErrSerializationFault, 306, "record exceeds the allocated space")
	ErrDataTypeMismatch             = meter.NewProgramError(meter.ErrSerializationFault, 307, "record key mismatch")
	ErrAccountAlreadyInitialized    = meter.NewProgramError(meter.ErrResourceFault, 308, "account already initialized")
	ErrInsufficientFunds            = meter.NewProgramError(meter.ErrResourceFault, 309, "payer cannot fund the new accounts")
	ErrDerivedAccountMismatch       = meter.NewProgramError(meter.ErrResourceFault, 310, "allocation seeds do not reproduce the target account")
	ErrInvalidStateTransition       = meter.NewProgramError(meter.ErrInvalidParameter, 311, "invalid auction state transition")
	ErrUnknownVariant               = meter.NewProgramError(meter.ErrSerializationFault, 312, "unknown enum variant")
)
