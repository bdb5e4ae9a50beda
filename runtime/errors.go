// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/meterio/meter-auction/meter"
)

// account rule violations detected after a program returns
var (
	ErrReadonlyDataModified      = meter.NewProgramError(meter.ErrAuthorizationFailure, 20, "instruction modified a readonly account")
	ErrExternalDataModified      = meter.NewProgramError(meter.ErrAuthorizationFailure, 21, "instruction modified data of an account it does not own")
	ErrExternalLamportSpend      = meter.NewProgramError(meter.ErrAuthorizationFailure, 22, "instruction spent from the balance of an account it does not own")
	ErrModifiedProgramID         = meter.NewProgramError(meter.ErrAuthorizationFailure, 23, "instruction illegally modified the program id of an account")
	ErrExecutableModified        = meter.NewProgramError(meter.ErrAuthorizationFailure, 24, "instruction changed executable bit of an account")
	ErrUnbalancedInstruction     = meter.NewProgramError(meter.ErrResourceFault, 25, "sum of account balances before and after instruction do not match")
	ErrCallDepth                 = meter.NewProgramError(meter.ErrResourceFault, 26, "cross program invocation call depth too deep")
	ErrPrivilegeEscalation       = meter.NewProgramError(meter.ErrAuthorizationFailure, 27, "cross program invocation with unauthorized signer or writable account")
	ErrUnknownInstructionAccount = meter.NewProgramError(meter.ErrInvalidParameter, 28, "instruction references an account the caller did not pass")
	ErrProgramNotExecutable      = meter.NewProgramError(meter.ErrInvalidParameter, 29, "program account is not executable")
)
