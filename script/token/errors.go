// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"github.com/meterio/meter-auction/meter"
)

var (
	ErrNotRentExempt             = meter.NewProgramError(meter.ErrResourceFault, 200, "lamport balance below rent-exempt threshold")
	ErrInsufficientFunds         = meter.NewProgramError(meter.ErrResourceFault, 201, "insufficient funds")
	ErrInvalidMint               = meter.NewProgramError(meter.ErrInvalidParameter, 202, "invalid mint")
	ErrMintMismatch              = meter.NewProgramError(meter.ErrInvalidParameter, 203, "account not associated with this mint")
	ErrOwnerMismatch             = meter.NewProgramError(meter.ErrAuthorizationFailure, 204, "owner does not match")
	ErrFixedSupply               = meter.NewProgramError(meter.ErrAuthorizationFailure, 205, "fixed supply")
	ErrAlreadyInUse              = meter.NewProgramError(meter.ErrResourceFault, 206, "already in use")
	ErrUninitializedState        = meter.NewProgramError(meter.ErrResourceFault, 207, "state is uninitialized")
	ErrAuthorityTypeNotSupported = meter.NewProgramError(meter.ErrInvalidParameter, 208, "authority type not supported")
	ErrAccountFrozen             = meter.NewProgramError(meter.ErrAuthorizationFailure, 209, "account is frozen")
	ErrOverflow                  = meter.NewProgramError(meter.ErrResourceFault, 210, "operation overflowed")
)
