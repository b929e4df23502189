package domain

import (
	"encoding/json"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Contract names handled by the deployment steps
const (
	MarketplaceContract = "NftMarketplace"
	BasicNftContract    = "BasicNft"
)

// Artifact is a compiled contract as emitted by Hardhat or Foundry.
type Artifact struct {
	ContractName string
	SourceName   string
	Path         string
	ABI          abi.ABI
	RawABI       json.RawMessage
	Bytecode     []byte
}

// Deployment is the record kept for every contract deployed on a network.
type Deployment struct {
	ContractName    string          `json:"contractName"`
	Network         string          `json:"network"`
	ChainID         uint64          `json:"chainId"`
	Address         common.Address  `json:"address"`
	TransactionHash common.Hash     `json:"transactionHash"`
	BlockNumber     uint64          `json:"blockNumber"`
	Deployer        common.Address  `json:"deployer"`
	Args            []string        `json:"args"`
	ConstructorArgs string          `json:"constructorArgs,omitempty"` // hex, ABI-encoded
	Confirmations   uint64          `json:"confirmations"`
	ABI             json.RawMessage `json:"abi,omitempty"`
	Verified        bool            `json:"verified"`
	DeployedAt      time.Time       `json:"deployedAt"`
}

// VerificationStatus is the outcome of an explorer verification attempt
type VerificationStatus string

const (
	VerificationStatusVerified VerificationStatus = "verified"
	VerificationStatusSkipped  VerificationStatus = "skipped"
	VerificationStatusFailed   VerificationStatus = "failed"
)

// DeployTag selects deployment steps, the way hardhat-deploy tags do.
type DeployTag string

const (
	TagAll            DeployTag = "all"
	TagNftMarketplace DeployTag = "nftmarketplace"
	TagBasicNft       DeployTag = "basicnft"
	TagFrontEnd       DeployTag = "frontend"
)
