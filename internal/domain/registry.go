package domain

import (
	"sort"

	"github.com/samber/lo"
)

// AddressRegistry maps a network identifier to contract names and the
// addresses each contract has been deployed at, oldest first. It is the
// document the front end reads to locate contracts.
type AddressRegistry map[string]map[string][]string

// NewAddressRegistry returns an empty registry.
func NewAddressRegistry() AddressRegistry {
	return AddressRegistry{}
}

// Merge records address for contract on network. New addresses are
// appended; an address already recorded leaves the registry untouched.
// It reports whether the registry changed.
func (r AddressRegistry) Merge(network, contract, address string) bool {
	contracts, ok := r[network]
	if !ok {
		r[network] = map[string][]string{contract: {address}}
		return true
	}
	if contracts == nil {
		contracts = make(map[string][]string)
		r[network] = contracts
	}

	addresses := contracts[contract]
	if lo.Contains(addresses, address) {
		return false
	}
	contracts[contract] = append(addresses, address)
	return true
}

// Addresses returns the recorded addresses for contract on network.
func (r AddressRegistry) Addresses(network, contract string) []string {
	return r[network][contract]
}

// Latest returns the most recently recorded address for contract on network.
func (r AddressRegistry) Latest(network, contract string) (string, bool) {
	addresses := r.Addresses(network, contract)
	if len(addresses) == 0 {
		return "", false
	}
	return addresses[len(addresses)-1], true
}

// Networks returns the network identifiers in sorted order.
func (r AddressRegistry) Networks() []string {
	networks := lo.Keys(r)
	sort.Strings(networks)
	return networks
}

// Contracts returns the contract names recorded on network in sorted order.
func (r AddressRegistry) Contracts(network string) []string {
	contracts := lo.Keys(r[network])
	sort.Strings(contracts)
	return contracts
}
