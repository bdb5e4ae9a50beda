// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package script

import (
	"log/slog"

	"github.com/gagliardetto/solana-go"
	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/xenv"
	"github.com/pkg/errors"
)

var (
	ScriptGlobInst *ScriptEngine
)

// global data
type ScriptEngine struct {
	logger *slog.Logger
	modReg Registry
}

// Glob Instance
func GetScriptGlobInst() *ScriptEngine {
	return ScriptGlobInst
}

func SetScriptGlobInst(inst *ScriptEngine) {
	ScriptGlobInst = inst
}

func NewScriptEngine() *ScriptEngine {
	se := &ScriptEngine{
		logger: slog.Default().With("pkg", "se"),
	}
	SetScriptGlobInst(se)

	// start all sub modules
	se.StartAllModules()
	return se
}

func (se *ScriptEngine) StartAllModules() {
	ModuleSystemInit(se)
	ModuleTokenInit(se)
	ModuleAuctionInit(se)
}

// IsRegistered returns whether a native program runs at programID.
func (se *ScriptEngine) IsRegistered(programID solana.PublicKey) bool {
	_, ok := se.modReg.Find(programID)
	return ok
}

// ModuleName returns the name of the module at programID, or its address when unknown.
func (se *ScriptEngine) ModuleName(programID solana.PublicKey) string {
	if mod, ok := se.modReg.Find(programID); ok {
		return mod.modName
	}
	return programID.String()
}

// Modules returns all registered modules.
func (se *ScriptEngine) Modules() []Module {
	return se.modReg.All()
}

// HandleInstruction dispatches the instruction in env to the module registered
// at its program id.
func (se *ScriptEngine) HandleInstruction(env *xenv.Environment) error {
	mod, find := se.modReg.Find(env.ProgramID())
	if !find {
		se.logger.Debug("could not address module", "program", env.ProgramID())
		return errors.Wrapf(meter.ErrInvalidParameter, "unsupported program id %v", env.ProgramID())
	}
	se.logger.Debug("dispatch instruction", "module", mod.modName, "depth", env.Depth(), "accounts", len(env.Accounts()))
	return mod.modHandler(env)
}
