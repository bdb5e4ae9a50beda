// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transactions

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/meterio/meter-auction/api/utils"
	"github.com/meterio/meter-auction/chain"
	"github.com/meterio/meter-auction/meter"
	"github.com/pkg/errors"
)

type Transactions struct {
	chain *chain.Chain
}

func New(chain *chain.Chain) *Transactions {
	return &Transactions{
		chain,
	}
}

func (t *Transactions) handleSendTransaction(w http.ResponseWriter, req *http.Request) error {
	var body SendTx
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	trx, err := body.transaction()
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	receipt, err := t.chain.Execute(req.Context(), trx)
	if err != nil {
		if errors.Is(err, chain.ErrTxExists) {
			return utils.BadRequest(err)
		}
		return utils.ProgramError(err)
	}
	return utils.WriteJSON(w, convertReceipt(receipt))
}

func (t *Transactions) handleGetReceipt(w http.ResponseWriter, req *http.Request) error {
	id, err := meter.ParseBytes32(mux.Vars(req)["id"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "id"))
	}
	receipt, err := t.chain.GetReceipt(id)
	if err != nil {
		if t.chain.IsNotFound(err) {
			return utils.NotFound(errors.New("receipt not found"))
		}
		return err
	}
	return utils.WriteJSON(w, convertReceipt(receipt))
}

func (t *Transactions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").Methods("POST").HandlerFunc(utils.WrapHandlerFunc(t.handleSendTransaction))
	sub.Path("/{id}/receipt").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(t.handleGetReceipt))
}
