// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package preset_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/preset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "preset.yaml")
	content := `
name: local
launchTime: 1000
accounts:
  - seed: alice
    lamports: 500
mints:
  - seed: art
    decimals: 0
    mintAuthority: alice
    holders:
      - owner: alice
        amount: 1
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	p, err := preset.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "local", p.Name)
	assert.Equal(t, meter.DefaultRent, p.Rent)
	assert.Equal(t, uint64(500), p.Accounts[0].Lamports)
	assert.Equal(t, "alice", p.Mints[0].Holders[0].Owner)
}

func TestLoadConfigRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: x\nbogus: 1\n"), 0600))

	_, err := preset.LoadConfig(path)
	assert.Error(t, err)
}
