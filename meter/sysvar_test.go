// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package meter_test

import (
	"testing"

	"github.com/meterio/meter-auction/meter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeClock(t *testing.T) {
	clock := meter.Clock{Slot: 9, EpochStartTimestamp: -1, Epoch: 2, LeaderScheduleEpoch: 3, UnixTimestamp: 1_700_000_000}
	data := clock.Encode()
	require.Len(t, data, meter.ClockSysvarLen)

	decoded, err := meter.DecodeClock(data)
	require.NoError(t, err)
	assert.Equal(t, clock, decoded)

	_, err = meter.DecodeClock(data[:meter.ClockSysvarLen-1])
	assert.ErrorIs(t, err, meter.ErrSerializationFault)
}

func TestDecodeRent(t *testing.T) {
	data := meter.DefaultRent.Encode()
	require.Len(t, data, meter.RentSysvarLen)

	decoded, err := meter.DecodeRent(data)
	require.NoError(t, err)
	assert.Equal(t, meter.DefaultRent, decoded)

	_, err = meter.DecodeRent(data[:meter.RentSysvarLen-1])
	assert.ErrorIs(t, err, meter.ErrSerializationFault)
}
