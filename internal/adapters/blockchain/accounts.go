package blockchain

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/nftmarket/nftm/internal/domain"
	"github.com/nftmarket/nftm/internal/domain/config"
	"github.com/nftmarket/nftm/internal/usecase"
)

// Accounts resolves named accounts (deployer, player, ...) from the project configuration.
// Values are hex private keys, or plain addresses for read-only accounts.
type Accounts struct {
	named map[string]string
}

// NewAccounts creates an account resolver over the configured named accounts
func NewAccounts(cfg *config.RuntimeConfig) *Accounts {
	named := make(map[string]string, len(cfg.NamedAccounts))
	for name, value := range cfg.NamedAccounts {
		named[name] = strings.TrimSpace(value)
	}
	return &Accounts{named: named}
}

// AccountAddress returns the address of a named account
func (a *Accounts) AccountAddress(name string) (common.Address, error) {
	value, err := a.lookup(name)
	if err != nil {
		return common.Address{}, err
	}
	if common.IsHexAddress(value) {
		return common.HexToAddress(value), nil
	}
	key, err := parseKey(name, value)
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(key.PublicKey), nil
}

// PrivateKey returns the signing key of a named account
func (a *Accounts) PrivateKey(name string) (*ecdsa.PrivateKey, error) {
	value, err := a.lookup(name)
	if err != nil {
		return nil, err
	}
	if common.IsHexAddress(value) {
		return nil, fmt.Errorf("named account %q is an address and cannot sign transactions", name)
	}
	return parseKey(name, value)
}

// Transactor returns transaction options signing as the named account
func (a *Accounts) Transactor(name string, chainID uint64) (*bind.TransactOpts, error) {
	key, err := a.PrivateKey(name)
	if err != nil {
		return nil, err
	}
	opts, err := bind.NewKeyedTransactorWithChainID(key, new(big.Int).SetUint64(chainID))
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor for %s: %w", name, err)
	}
	return opts, nil
}

func (a *Accounts) lookup(name string) (string, error) {
	value, ok := a.named[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownAccount, name)
	}
	if value == "" {
		return "", fmt.Errorf("named account %q is empty, check your .env file", name)
	}
	return value, nil
}

func parseKey(name, value string) (*ecdsa.PrivateKey, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(value, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key for named account %q: %w", name, err)
	}
	return key, nil
}

var _ usecase.AccountResolver = (*Accounts)(nil)
