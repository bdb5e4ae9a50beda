// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"net/http"

	"github.com/gagliardetto/solana-go"
	"github.com/gorilla/mux"
	"github.com/meterio/meter-auction/api/utils"
	"github.com/meterio/meter-auction/chain"
	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/script/auction"
	"github.com/pkg/errors"
)

type Auction struct {
	chain *chain.Chain
}

func New(chain *chain.Chain) *Auction {
	return &Auction{chain}
}

func parseResource(req *http.Request) (solana.PublicKey, error) {
	resource, err := solana.PublicKeyFromBase58(mux.Vars(req)["resource"])
	if err != nil {
		return resource, utils.BadRequest(errors.WithMessage(err, "resource"))
	}
	return resource, nil
}

func (at *Auction) handleGetAuction(w http.ResponseWriter, req *http.Request) error {
	resource, err := parseResource(req)
	if err != nil {
		return err
	}
	info, err := auction.GetAuctionInfo(at.chain.NewState(), at.chain.Genesis().ProgramID(), resource)
	if err != nil {
		if errors.Is(err, meter.ErrResourceFault) {
			return utils.NotFound(err)
		}
		return err
	}
	return utils.WriteJSON(w, convertInfo(resource, info))
}

func (at *Auction) handleDerive(w http.ResponseWriter, req *http.Request) error {
	resource, err := parseResource(req)
	if err != nil {
		return err
	}
	addrs, err := auction.DeriveAddresses(at.chain.Genesis().ProgramID(), resource)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertAddresses(resource, addrs))
}

func (at *Auction) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("/derive/{resource}").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(at.handleDerive))
	sub.Path("/{resource}").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(at.handleGetAuction))
}
