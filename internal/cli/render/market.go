package render

import (
	"fmt"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/nftmarket/nftm/internal/domain"
)

// MarketRenderer renders marketplace transactions and reads
type MarketRenderer struct {
	out io.Writer
}

// NewMarketRenderer creates a new market renderer
func NewMarketRenderer(out io.Writer) *MarketRenderer {
	return &MarketRenderer{out: out}
}

// RenderReceipt prints a mined transaction and the marketplace events it emitted
func (r *MarketRenderer) RenderReceipt(method string, receipt *domain.MarketReceipt) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("%s mined in block %d", method, receipt.BlockNumber)))
	fprintField(r.out, "Transaction", receipt.TxHash.Hex())
	fprintField(r.out, "Gas used", receipt.GasUsed)

	for _, event := range receipt.Events {
		line := fmt.Sprintf("  %s %s #%s by %s",
			contractStyle.Sprint(event.Name),
			event.NftAddress.Hex(),
			event.TokenID,
			event.Account.Hex())
		if event.Price != nil {
			line += " for " + FormatEther(event.Price)
		}
		fmt.Fprintln(r.out, line)
	}
	return nil
}

// RenderListing prints the listing of a token
func (r *MarketRenderer) RenderListing(nft common.Address, tokenID *big.Int, listing *domain.Listing) error {
	if !listing.Listed() {
		fmt.Fprintf(r.out, "%s #%s is not listed\n", nft.Hex(), tokenID)
		return nil
	}
	fmt.Fprintf(r.out, "%s #%s\n", nft.Hex(), tokenID)
	fprintField(r.out, "Price", FormatEther(listing.Price))
	fprintField(r.out, "Seller", listing.Seller.Hex())
	return nil
}

// RenderProceeds prints the withdrawable balance of a seller
func (r *MarketRenderer) RenderProceeds(seller common.Address, amount *big.Int) error {
	fmt.Fprintf(r.out, "Proceeds of %s: %s\n", seller.Hex(), FormatEther(amount))
	return nil
}
