package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidChainID is returned when a chain ID is invalid
	ErrInvalidChainID = errors.New("invalid chain ID")

	// ErrNetworkMismatch is returned when the RPC reports a different chain than configured
	ErrNetworkMismatch = errors.New("network mismatch")

	// ErrContractNotFound is returned when no artifact exists for a contract name
	ErrContractNotFound = errors.New("contract not found")

	// ErrNoDeployment is returned when a contract has not been deployed on a network
	ErrNoDeployment = errors.New("no deployment")

	// ErrVerificationFailed is returned when contract verification fails
	ErrVerificationFailed = errors.New("verification failed")

	// ErrReverted is returned when the marketplace contract rejects a call
	ErrReverted = errors.New("operation reverted")

	// ErrUnknownAccount is returned when a named account is not configured
	ErrUnknownAccount = errors.New("unknown account")
)

// ParseError reports a persisted document that is not valid structured data.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IOError reports a storage location that could not be read or written.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ContractNotFoundErr carries the names that came closest to the requested contract.
type ContractNotFoundErr struct {
	Name        string
	Suggestions []string
}

func (e ContractNotFoundErr) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("no artifact found for contract %s", e.Name)
	}
	return fmt.Sprintf("no artifact found for contract %s, did you mean:\n  - %s",
		e.Name, strings.Join(e.Suggestions, "\n  - "))
}

func (e ContractNotFoundErr) Unwrap() error { return ErrContractNotFound }
