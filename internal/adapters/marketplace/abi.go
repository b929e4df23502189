package marketplace

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/nftmarket/nftm/internal/domain"
)

//go:embed abi.json
var marketplaceABIJSON []byte

// MarketplaceABI is the parsed interface of the NftMarketplace contract
var MarketplaceABI = mustParseABI(marketplaceABIJSON)

func mustParseABI(data []byte) abi.ABI {
	parsed, err := abi.JSON(bytes.NewReader(data))
	if err != nil {
		panic(fmt.Sprintf("invalid embedded marketplace abi: %v", err))
	}
	return parsed
}

// DecodeEvents extracts marketplace events emitted by address from a receipt's logs.
// Logs from other contracts (the NFT's Transfer/Approval) are ignored.
func DecodeEvents(address common.Address, logs []*types.Log) ([]*domain.MarketEvent, error) {
	var events []*domain.MarketEvent
	for _, lg := range logs {
		if lg.Address != address || len(lg.Topics) == 0 {
			continue
		}
		event, err := decodeEvent(lg)
		if err != nil {
			return nil, err
		}
		if event != nil {
			events = append(events, event)
		}
	}
	return events, nil
}

func decodeEvent(lg *types.Log) (*domain.MarketEvent, error) {
	def, err := MarketplaceABI.EventByID(lg.Topics[0])
	if err != nil {
		// not one of ours
		return nil, nil
	}

	fields := make(map[string]any)
	var indexed abi.Arguments
	for _, arg := range def.Inputs {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	if err := abi.ParseTopicsIntoMap(fields, indexed, lg.Topics[1:]); err != nil {
		return nil, fmt.Errorf("failed to decode %s topics: %w", def.Name, err)
	}
	if len(lg.Data) > 0 {
		if err := def.Inputs.UnpackIntoMap(fields, lg.Data); err != nil {
			return nil, fmt.Errorf("failed to decode %s data: %w", def.Name, err)
		}
	}

	event := &domain.MarketEvent{Name: def.Name, TxHash: lg.TxHash}
	if seller, ok := fields["seller"].(common.Address); ok {
		event.Account = seller
	}
	if buyer, ok := fields["buyer"].(common.Address); ok {
		event.Account = buyer
	}
	event.NftAddress, _ = fields["nftAddress"].(common.Address)
	event.TokenID, _ = fields["tokenId"].(*big.Int)
	event.Price, _ = fields["price"].(*big.Int)
	return event, nil
}

// dataError is implemented by JSON-RPC errors carrying revert data
type dataError interface {
	ErrorData() interface{}
}

// asRevert converts a node error caused by a revert into domain.ErrReverted,
// naming the custom error or reason string when the revert data can be decoded.
func asRevert(err error) error {
	if err == nil {
		return nil
	}

	var de dataError
	if errors.As(err, &de) {
		if reason := revertReason(de.ErrorData()); reason != "" {
			return fmt.Errorf("%w: %s", domain.ErrReverted, reason)
		}
		return fmt.Errorf("%w: %v", domain.ErrReverted, err)
	}
	if strings.Contains(err.Error(), "execution reverted") {
		return fmt.Errorf("%w: %v", domain.ErrReverted, err)
	}
	return err
}

func revertReason(data interface{}) string {
	var raw []byte
	switch v := data.(type) {
	case string:
		decoded, err := hexutil.Decode(v)
		if err != nil {
			return ""
		}
		raw = decoded
	case []byte:
		raw = v
	default:
		return ""
	}
	if len(raw) < 4 {
		return ""
	}

	if reason, err := abi.UnpackRevert(raw); err == nil {
		return reason
	}
	for name, def := range MarketplaceABI.Errors {
		if bytes.Equal(def.ID[:4], raw[:4]) {
			return name
		}
	}
	return ""
}
