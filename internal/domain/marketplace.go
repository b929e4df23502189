package domain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Marketplace event names
const (
	EventItemList          = "ItemList"
	EventItemBought        = "ItemBought"
	EventItemCanceled      = "ItemCanceled"
	EventListedItemUpdated = "ListedItemUpdated"
)

// Listing is an NFT offered for sale. A zero price means the token is not listed.
type Listing struct {
	Price  *big.Int       `json:"price"`
	Seller common.Address `json:"seller"`
}

// Listed reports whether the listing is active.
func (l *Listing) Listed() bool {
	return l != nil && l.Price != nil && l.Price.Sign() > 0
}

// MarketEvent is a decoded marketplace log.
type MarketEvent struct {
	Name       string         `json:"name"`
	Account    common.Address `json:"account"` // seller, or buyer for ItemBought
	NftAddress common.Address `json:"nftAddress"`
	TokenID    *big.Int       `json:"tokenId"`
	Price      *big.Int       `json:"price,omitempty"`
	TxHash     common.Hash    `json:"txHash"`
}

// MarketReceipt summarizes a mined marketplace transaction.
type MarketReceipt struct {
	TxHash      common.Hash    `json:"txHash"`
	BlockNumber uint64         `json:"blockNumber"`
	GasUsed     uint64         `json:"gasUsed"`
	Events      []*MarketEvent `json:"events"`
}
