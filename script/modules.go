// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package script

import (
	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/script/auction"
	"github.com/meterio/meter-auction/script/system"
	"github.com/meterio/meter-auction/script/token"
)

const (
	SYSTEM_MODULE_NAME  = string("system")
	TOKEN_MODULE_NAME   = string("token")
	AUCTION_MODULE_NAME = string("auction")
)

func ModuleSystemInit(se *ScriptEngine) *system.System {
	sys := system.NewSystem()
	mod := &Module{
		modName:    SYSTEM_MODULE_NAME,
		modID:      meter.SystemProgramID,
		modHandler: sys.Handle,
	}
	if err := se.modReg.Register(meter.SystemProgramID, mod); err != nil {
		panic("register system module failed")
	}
	se.logger.Info("module started", "module", mod.modName, "program", mod.modID)
	return sys
}

func ModuleTokenInit(se *ScriptEngine) *token.Token {
	tok := token.NewToken()
	mod := &Module{
		modName:    TOKEN_MODULE_NAME,
		modID:      meter.TokenProgramID,
		modHandler: tok.Handle,
	}
	if err := se.modReg.Register(meter.TokenProgramID, mod); err != nil {
		panic("register token module failed")
	}
	se.logger.Info("module started", "module", mod.modName, "program", mod.modID)
	return tok
}

func ModuleAuctionInit(se *ScriptEngine) *auction.Auction {
	a := auction.NewAuction()
	if a == nil {
		panic("init auction module failed")
	}
	mod := &Module{
		modName:    AUCTION_MODULE_NAME,
		modID:      meter.AuctionProgramID,
		modHandler: a.Handle,
	}
	if err := se.modReg.Register(meter.AuctionProgramID, mod); err != nil {
		panic("register auction module failed")
	}
	if err := a.Start(); err != nil {
		panic("start auction module failed: " + err.Error())
	}
	se.logger.Info("module started", "module", mod.modName, "program", mod.modID)
	return a
}
