// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package script_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/script"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartAllModules(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	se := script.NewScriptEngine()
	assert.True(t, se.IsRegistered(meter.SystemProgramID))
	assert.True(t, se.IsRegistered(meter.TokenProgramID))
	assert.True(t, se.IsRegistered(meter.AuctionProgramID))

	var started []string
	dec := json.NewDecoder(&buf)
	for dec.More() {
		var rec map[string]interface{}
		require.NoError(t, dec.Decode(&rec))
		if rec["msg"] == "module started" {
			started = append(started, rec["module"].(string))
		}
	}
	assert.Equal(t, []string{script.SYSTEM_MODULE_NAME, script.TOKEN_MODULE_NAME, script.AUCTION_MODULE_NAME}, started)
}
