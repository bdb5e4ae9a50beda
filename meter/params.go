// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package meter

import (
	"github.com/gagliardetto/solana-go"
)

var (
	// AuctionProgramID is the default id of the auction program, presets may override it.
	AuctionProgramID = solana.MustPublicKeyFromBase58("auctxRXPeJoc4817jDhf4HbjnhEcr1cCXenosMhK5R8")

	SystemProgramID   = solana.SystemProgramID
	TokenProgramID    = solana.TokenProgramID
	SysVarRentPubkey  = solana.SysVarRentPubkey
	SysVarClockPubkey = solana.SysVarClockPubkey

	// SysvarOwnerID owns the sysvar accounts.
	SysvarOwnerID = solana.MustPublicKeyFromBase58("Sysvar1111111111111111111111111111111111111")

	// NativeLoaderID owns the executable accounts of builtin programs.
	NativeLoaderID = solana.MustPublicKeyFromBase58("NativeLoader1111111111111111111111111111111")
)

const (
	// MaxPermittedDataLength caps the data size of a single account.
	MaxPermittedDataLength = 10 * 1024 * 1024

	// MaxInvokeDepth caps nested cross program invocations.
	MaxInvokeDepth = 4
)
