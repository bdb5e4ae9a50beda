// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package meter

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error classes every program failure falls into.
var (
	ErrAddressMismatch      = errors.New("address mismatch")
	ErrInvalidParameter     = errors.New("invalid parameter")
	ErrAuthorizationFailure = errors.New("authorization failure")
	ErrResourceFault        = errors.New("resource fault")
	ErrSerializationFault   = errors.New("serialization fault")
)

var errorKinds = []error{
	ErrAddressMismatch,
	ErrInvalidParameter,
	ErrAuthorizationFailure,
	ErrResourceFault,
	ErrSerializationFault,
}

// ProgramError is a coded failure returned by a native program.
// Kind is one of the error classes above.
type ProgramError struct {
	Kind error
	Code uint32
	Msg  string
}

func NewProgramError(kind error, code uint32, msg string) *ProgramError {
	return &ProgramError{Kind: kind, Code: code, Msg: msg}
}

func (e *ProgramError) Error() string {
	return fmt.Sprintf("%s (code %d): %s", e.Kind, e.Code, e.Msg)
}

func (e *ProgramError) Unwrap() error {
	return e.Kind
}

// KindOf returns the error class of err, or nil if err is not classified.
func KindOf(err error) error {
	for _, k := range errorKinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// Instruction errors shared by every native program.
var (
	ErrInvalidInstructionData   = NewProgramError(ErrInvalidParameter, 1, "invalid instruction data")
	ErrNotEnoughAccountKeys     = NewProgramError(ErrInvalidParameter, 2, "not enough account keys")
	ErrMissingRequiredSignature = NewProgramError(ErrAuthorizationFailure, 3, "missing required signature")
	ErrIncorrectProgramID       = NewProgramError(ErrAuthorizationFailure, 4, "incorrect program id")
	ErrInvalidAccountOwner      = NewProgramError(ErrResourceFault, 5, "invalid account owner")
	ErrAccountNotWritable       = NewProgramError(ErrAuthorizationFailure, 6, "account not writable")
)
