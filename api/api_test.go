// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/fortytw2/leaktest"
	"github.com/gagliardetto/solana-go"
	"github.com/meterio/meter-auction/api"
	"github.com/meterio/meter-auction/api/accounts"
	apiauction "github.com/meterio/meter-auction/api/auction"
	"github.com/meterio/meter-auction/api/events"
	"github.com/meterio/meter-auction/api/node"
	"github.com/meterio/meter-auction/api/transactions"
	"github.com/meterio/meter-auction/api/transfers"
	"github.com/meterio/meter-auction/chain"
	"github.com/meterio/meter-auction/genesis"
	"github.com/meterio/meter-auction/logdb"
	"github.com/meterio/meter-auction/lvldb"
	"github.com/meterio/meter-auction/preset"
	"github.com/meterio/meter-auction/script"
	"github.com/meterio/meter-auction/script/auction"
	"github.com/meterio/meter-auction/tests"
	"github.com/meterio/meter-auction/tx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initServer(t *testing.T) (*httptest.Server, *chain.Chain, func()) {
	kv, err := lvldb.NewMem()
	require.NoError(t, err)
	g, err := genesis.New(preset.TestPresetConfig)
	require.NoError(t, err)
	logDB, err := logdb.NewMem()
	require.NoError(t, err)
	c, err := chain.New(kv, g, script.NewScriptEngine(), logDB)
	require.NoError(t, err)

	ts := httptest.NewServer(api.New(c, logDB, "*"))
	return ts, c, func() {
		ts.Close()
		logDB.Close()
		kv.Close()
	}
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	res, err := http.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()
	r, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, r
}

func httpPost(t *testing.T, url string, obj interface{}) (*http.Response, []byte) {
	data, err := json.Marshal(obj)
	require.NoError(t, err)
	res, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	defer res.Body.Close()
	r, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, r
}

func auctionTx(t *testing.T, c *chain.Chain) *tx.Transaction {
	programID := c.Genesis().ProgramID()
	delegateIx, _, err := tests.BuildDelegateIx(programID, tests.SellerAddr, tests.SellerNftAccount)
	require.NoError(t, err)
	createIx, _, err := tests.BuildCreateAuctionIx(programID, tests.SellerAddr, tests.DefaultCreateAuctionArgs(tests.Resource, auction.Capped{N: 2}))
	require.NoError(t, err)
	trx, err := tests.BuildTx(tests.SellerKey, 1, []*tx.Instruction{delegateIx, createIx})
	require.NoError(t, err)
	return trx
}

func TestStatusAndRequestID(t *testing.T) {
	defer leaktest.CheckTimeout(t, 5*time.Second)()
	ts, c, done := initServer(t)
	defer done()

	res, body := httpGet(t, ts.URL+"/node/status")
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))
	assert.NotEmpty(t, res.Header.Get(api.RequestIDHeader))

	var status node.Status
	require.NoError(t, json.Unmarshal(body, &status))
	assert.Equal(t, preset.TestPresetConfig.Name, status.Genesis)
	assert.Equal(t, c.Genesis().ProgramID(), status.ProgramID)
	assert.Equal(t, uint64(0), status.BestSlot)

	req, err := http.NewRequest("GET", ts.URL+"/node/status", nil)
	require.NoError(t, err)
	req.Header.Set(api.RequestIDHeader, "client-id")
	res, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, "client-id", res.Header.Get(api.RequestIDHeader))

	res, body = httpGet(t, ts.URL+"/metrics")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, string(body), "best_slot")
}

func TestAuctionLifecycle(t *testing.T) {
	defer leaktest.CheckTimeout(t, 5*time.Second)()
	ts, c, done := initServer(t)
	defer done()
	resource := tests.Resource.String()

	res, body := httpGet(t, ts.URL+"/auction/derive/"+resource)
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))
	var addrs apiauction.Addresses
	require.NoError(t, json.Unmarshal(body, &addrs))
	want, err := auction.DeriveAddresses(c.Genesis().ProgramID(), tests.Resource)
	require.NoError(t, err)
	assert.Equal(t, want.Auction, addrs.Auction)
	assert.Equal(t, want.Extended, addrs.Extended)
	assert.Equal(t, want.Custody, addrs.Custody)

	res, _ = httpGet(t, ts.URL+"/auction/"+resource)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	trx := auctionTx(t, c)
	res, body = httpPost(t, ts.URL+"/transactions", transactions.ConvertTx(trx))
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))
	var receipt transactions.Receipt
	require.NoError(t, json.Unmarshal(body, &receipt))
	assert.Equal(t, trx.ID(), receipt.TxID)
	assert.Equal(t, uint64(1), receipt.Slot)
	assert.Len(t, receipt.Outputs, 2)

	res, body = httpGet(t, ts.URL+"/transactions/"+trx.ID().String()+"/receipt")
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))

	res, body = httpGet(t, ts.URL+"/auction/"+resource)
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))
	var info apiauction.Info
	require.NoError(t, json.Unmarshal(body, &info))
	assert.Equal(t, uint64(1), info.CustodyBalance)
	assert.Equal(t, "Created", info.Data.State)
	assert.Equal(t, "EnglishAuction", info.Data.BidState)
	assert.Equal(t, uint64(2), info.Data.MaxWinners)
	assert.Empty(t, info.Data.Bids)
	require.NotNil(t, info.Extended)
	assert.Equal(t, tests.NftMint, info.Extended.NftMint)
	require.NotNil(t, info.Extended.Name)
	assert.Equal(t, "test auction", *info.Extended.Name)

	res, body = httpGet(t, ts.URL+"/accounts/"+want.Custody.String())
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))
	var acc accounts.Account
	require.NoError(t, json.Unmarshal(body, &acc))
	assert.Equal(t, tests.NftMint.Bytes(), []byte(acc.Data[:32]))

	txID := trx.ID()
	res, body = httpPost(t, ts.URL+"/logs/event", &events.EventFilter{TxID: &txID})
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))
	var evs []*events.FilteredEvent
	require.NoError(t, json.Unmarshal(body, &evs))
	require.Len(t, evs, 2)
	assert.Equal(t, auction.EventAuthorityDelegated, evs[0].Name)
	assert.Equal(t, auction.EventAuctionCreated, evs[1].Name)
	assert.Equal(t, want.Auction, evs[1].Address)

	mint := tests.NftMint
	res, body = httpPost(t, ts.URL+"/logs/transfer", &transfers.TransferFilter{
		CriteriaSet: []*transfers.TransferCriteria{{Mint: &mint}},
	})
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))
	var trs []*transfers.FilteredTransfer
	require.NoError(t, json.Unmarshal(body, &trs))
	require.Len(t, trs, 1)
	assert.Equal(t, tests.SellerNftAccount, trs[0].Sender)
	assert.Equal(t, want.Custody, trs[0].Recipient)
	assert.Equal(t, uint64(1), trs[0].Amount)

	res, _ = httpPost(t, ts.URL+"/transactions", transactions.ConvertTx(trx))
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, "replayed tx")
}

func TestSendTransactionErrors(t *testing.T) {
	defer leaktest.CheckTimeout(t, 5*time.Second)()
	ts, c, done := initServer(t)
	defer done()

	res, _ := httpPost(t, ts.URL+"/transactions", map[string]interface{}{"unknown": 1})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	// signed by someone else than the fee payer
	trx := auctionTx(t, c)
	hash := trx.SigningHash()
	sig, err := tests.OtherKey.Sign(hash[:])
	require.NoError(t, err)
	forged := trx.WithSignatures([]solana.Signature{sig})
	raw, err := rlp.EncodeToBytes(forged)
	require.NoError(t, err)
	res, body := httpPost(t, ts.URL+"/transactions", &transactions.SendTx{Raw: hexutil.Encode(raw)})
	assert.Equal(t, http.StatusForbidden, res.StatusCode, string(body))

	// program failure: the auction is created without the authority delegated first
	createIx, _, err := tests.BuildCreateAuctionIx(c.Genesis().ProgramID(), tests.SellerAddr, tests.DefaultCreateAuctionArgs(tests.Resource, auction.Capped{N: 2}))
	require.NoError(t, err)
	trx, err = tests.BuildTx(tests.SellerKey, 2, []*tx.Instruction{createIx})
	require.NoError(t, err)
	res, body = httpPost(t, ts.URL+"/transactions", transactions.ConvertTx(trx))
	assert.Equal(t, http.StatusForbidden, res.StatusCode, string(body))
	assert.Equal(t, uint64(0), c.BestSlot())

	res, _ = httpGet(t, ts.URL+"/accounts/not-base58!")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}
