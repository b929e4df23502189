package marketplace

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/nftmarket/nftm/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	marketAddr = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	nftAddr    = common.HexToAddress("0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512")
	sellerAddr = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	buyerAddr  = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
)

func eventLog(t *testing.T, emitter common.Address, name string, account common.Address, tokenID int64, price *big.Int) *types.Log {
	t.Helper()
	event := MarketplaceABI.Events[name]

	var data []byte
	if price != nil {
		packed, err := event.Inputs.NonIndexed().Pack(price)
		require.NoError(t, err)
		data = packed
	}

	return &types.Log{
		Address: emitter,
		Topics: []common.Hash{
			event.ID,
			common.BytesToHash(account.Bytes()),
			common.BytesToHash(nftAddr.Bytes()),
			common.BigToHash(big.NewInt(tokenID)),
		},
		Data:   data,
		TxHash: common.HexToHash("0x01"),
	}
}

func TestDecodeEvents(t *testing.T) {
	price := big.NewInt(1e17)

	tests := []struct {
		name    string
		log     *types.Log
		account common.Address
		price   *big.Int
	}{
		{name: domain.EventItemList, log: eventLog(t, marketAddr, domain.EventItemList, sellerAddr, 0, price), account: sellerAddr, price: price},
		{name: domain.EventItemBought, log: eventLog(t, marketAddr, domain.EventItemBought, buyerAddr, 0, price), account: buyerAddr, price: price},
		{name: domain.EventItemCanceled, log: eventLog(t, marketAddr, domain.EventItemCanceled, sellerAddr, 0, nil), account: sellerAddr},
		{name: domain.EventListedItemUpdated, log: eventLog(t, marketAddr, domain.EventListedItemUpdated, sellerAddr, 0, price), account: sellerAddr, price: price},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := DecodeEvents(marketAddr, []*types.Log{tt.log})
			require.NoError(t, err)
			require.Len(t, events, 1)

			event := events[0]
			assert.Equal(t, tt.name, event.Name)
			assert.Equal(t, tt.account, event.Account)
			assert.Equal(t, nftAddr, event.NftAddress)
			assert.Equal(t, int64(0), event.TokenID.Int64())
			if tt.price == nil {
				assert.Nil(t, event.Price)
			} else {
				assert.Equal(t, tt.price.String(), event.Price.String())
			}
		})
	}
}

func TestDecodeEvents_IgnoresForeignLogs(t *testing.T) {
	transfer := &types.Log{
		Address: nftAddr,
		Topics:  []common.Hash{common.HexToHash("0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef")},
	}
	unknown := &types.Log{Address: marketAddr, Topics: []common.Hash{common.HexToHash("0x02")}}
	foreignList := eventLog(t, nftAddr, domain.EventItemList, sellerAddr, 0, big.NewInt(1))

	events, err := DecodeEvents(marketAddr, []*types.Log{transfer, unknown, foreignList})
	require.NoError(t, err)
	assert.Empty(t, events)
}

type rpcRevert struct {
	data string
}

func (e *rpcRevert) Error() string          { return "execution reverted" }
func (e *rpcRevert) ErrorData() interface{} { return e.data }

func TestAsRevert(t *testing.T) {
	customErr := MarketplaceABI.Errors["NftMarketplace__PriceMustBeGreaterThanZero"]
	reasonData, err := hexutil.Decode("0x08c379a0" +
		"0000000000000000000000000000000000000000000000000000000000000020" +
		"0000000000000000000000000000000000000000000000000000000000000004" +
		"6e6f706500000000000000000000000000000000000000000000000000000000")
	require.NoError(t, err)

	t.Run("custom error", func(t *testing.T) {
		err := asRevert(&rpcRevert{data: hexutil.Encode(customErr.ID[:4])})
		assert.ErrorIs(t, err, domain.ErrReverted)
		assert.ErrorContains(t, err, "NftMarketplace__PriceMustBeGreaterThanZero")
	})

	t.Run("reason string", func(t *testing.T) {
		err := asRevert(&rpcRevert{data: hexutil.Encode(reasonData)})
		assert.ErrorIs(t, err, domain.ErrReverted)
		assert.ErrorContains(t, err, "nope")
	})

	t.Run("no data", func(t *testing.T) {
		err := asRevert(errors.New("execution reverted"))
		assert.ErrorIs(t, err, domain.ErrReverted)
	})

	t.Run("other errors pass through", func(t *testing.T) {
		cause := errors.New("connection refused")
		assert.Equal(t, cause, asRevert(cause))
		assert.NoError(t, asRevert(nil))
	})
}
