package marketplace

import (
	"context"
	"encoding/hex"
	"io"
	"log/slog"
	"math/big"
	"os"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/ethereum/go-ethereum/params"
	"github.com/nftmarket/nftm/internal/adapters/blockchain"
	"github.com/nftmarket/nftm/internal/adapters/repository/artifacts"
	"github.com/nftmarket/nftm/internal/domain"
	"github.com/nftmarket/nftm/internal/domain/config"
	"github.com/nftmarket/nftm/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const simulatedChainID = 1337

var (
	lowPrice      = new(big.Int).Div(big.NewInt(params.Ether), big.NewInt(100))
	price         = new(big.Int).Div(big.NewInt(params.Ether), big.NewInt(10))
	updatingPrice = new(big.Int).Div(big.NewInt(params.Ether), big.NewInt(5))
	tokenID       = big.NewInt(0)
)

// MarketplaceSuite drives compiled NftMarketplace and BasicNft contracts on a simulated chain.
// It needs the Hardhat artifacts directory in NFTM_TEST_ARTIFACTS.
type MarketplaceSuite struct {
	suite.Suite

	artifactsDir string
	chain        *simulated.Backend
	cancelMining context.CancelFunc
	miningDone   chan struct{}
	accounts     *blockchain.Accounts
	deployer     common.Address
	player       common.Address

	market       *Client
	playerMarket *Client
	nft          *bind.BoundContract
	nftAddr      common.Address
}

func TestMarketplaceSuite(t *testing.T) {
	dir := os.Getenv("NFTM_TEST_ARTIFACTS")
	if dir == "" {
		t.Skip("NFTM_TEST_ARTIFACTS not set")
	}
	suite.Run(t, &MarketplaceSuite{artifactsDir: dir})
}

func (s *MarketplaceSuite) SetupTest() {
	t := s.T()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	deployerKey, err := crypto.GenerateKey()
	require.NoError(t, err)
	playerKey, err := crypto.GenerateKey()
	require.NoError(t, err)
	s.deployer = crypto.PubkeyToAddress(deployerKey.PublicKey)
	s.player = crypto.PubkeyToAddress(playerKey.PublicKey)

	funds := new(big.Int).Mul(big.NewInt(100), big.NewInt(params.Ether))
	s.chain = simulated.NewBackend(types.GenesisAlloc{
		s.deployer: {Balance: funds},
		s.player:   {Balance: funds},
	})

	ctx, cancel := context.WithCancel(context.Background())
	s.cancelMining = cancel
	s.miningDone = make(chan struct{})
	go func() {
		defer close(s.miningDone)
		s.mine(ctx)
	}()

	cfg := &config.RuntimeConfig{
		ArtifactsDir: s.artifactsDir,
		NamedAccounts: map[string]string{
			"deployer": hex.EncodeToString(crypto.FromECDSA(deployerKey)),
			"player":   hex.EncodeToString(crypto.FromECDSA(playerKey)),
		},
	}
	s.accounts = blockchain.NewAccounts(cfg)
	client := blockchain.NewClientWithBackend(s.chain.Client(), simulatedChainID)
	deployer := blockchain.NewDeployerAdapter(client, s.accounts, log)
	repo := artifacts.NewRepository(cfg, log)

	marketAddr := s.deploy(deployer, repo, domain.MarketplaceContract)
	s.nftAddr = s.deploy(deployer, repo, domain.BasicNftContract)

	binder := NewBinder(client, s.accounts, log)
	market, err := binder.Bind(ctx, marketAddr, "deployer")
	require.NoError(t, err)
	playerMarket, err := binder.Bind(ctx, marketAddr, "player")
	require.NoError(t, err)
	s.market = market.(*Client)
	s.playerMarket = playerMarket.(*Client)

	nftArtifact, err := repo.GetArtifact(ctx, domain.BasicNftContract)
	require.NoError(t, err)
	s.nft = bind.NewBoundContract(s.nftAddr, nftArtifact.ABI, s.chain.Client(), s.chain.Client(), s.chain.Client())

	s.sendNft("mintNft")
	s.sendNft("approve", marketAddr, tokenID)
}

func (s *MarketplaceSuite) TearDownTest() {
	// the backend must outlive the mining loop
	s.cancelMining()
	<-s.miningDone
	_ = s.chain.Close()
}

func (s *MarketplaceSuite) mine(ctx context.Context) {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			s.chain.Commit()
		}
	}
}

func (s *MarketplaceSuite) deploy(deployer *blockchain.DeployerAdapter, repo *artifacts.Repository, name string) common.Address {
	artifact, err := repo.GetArtifact(context.Background(), name)
	s.Require().NoError(err)
	deployed, err := deployer.Deploy(context.Background(), usecase.DeployRequest{
		Artifact:      artifact,
		From:          "deployer",
		Confirmations: 1,
	})
	s.Require().NoError(err)
	return deployed.Address
}

func (s *MarketplaceSuite) sendNft(method string, args ...interface{}) {
	opts, err := s.accounts.Transactor("deployer", simulatedChainID)
	s.Require().NoError(err)
	tx, err := s.nft.Transact(opts, method, args...)
	s.Require().NoError(err)
	_, err = bind.WaitMined(context.Background(), s.chain.Client(), tx)
	s.Require().NoError(err)
}

func (s *MarketplaceSuite) ownerOf(id *big.Int) common.Address {
	var out []interface{}
	s.Require().NoError(s.nft.Call(&bind.CallOpts{}, &out, "ownerOf", id))
	return out[0].(common.Address)
}

func (s *MarketplaceSuite) nftAddress() common.Address {
	return s.nftAddr
}

func (s *MarketplaceSuite) listed() {
	_, err := s.market.ListItem(context.Background(), s.nftAddress(), tokenID, price)
	s.Require().NoError(err)
}

func (s *MarketplaceSuite) assertSingleEvent(receipt *domain.MarketReceipt, name string) *domain.MarketEvent {
	s.Require().Len(receipt.Events, 1)
	s.Equal(name, receipt.Events[0].Name)
	return receipt.Events[0]
}

func (s *MarketplaceSuite) TestBuyItem_TransfersOwnershipAndCreditsProceeds() {
	ctx := context.Background()
	s.listed()

	receipt, err := s.playerMarket.BuyItem(ctx, s.nftAddress(), tokenID, price)
	s.Require().NoError(err)

	event := s.assertSingleEvent(receipt, domain.EventItemBought)
	s.Equal(s.player, event.Account)
	s.Equal(price.String(), event.Price.String())

	s.Equal(s.player, s.ownerOf(tokenID))
	proceeds, err := s.market.GetProceeds(ctx, s.deployer)
	s.Require().NoError(err)
	s.Equal(price.String(), proceeds.String())
}

func (s *MarketplaceSuite) TestBuyItem_RevertsWhenPriceNotMet() {
	s.listed()
	_, err := s.playerMarket.BuyItem(context.Background(), s.nftAddress(), tokenID, lowPrice)
	s.ErrorIs(err, domain.ErrReverted)
}

func (s *MarketplaceSuite) TestListItem() {
	ctx := context.Background()
	receipt, err := s.market.ListItem(ctx, s.nftAddress(), tokenID, price)
	s.Require().NoError(err)

	event := s.assertSingleEvent(receipt, domain.EventItemList)
	s.Equal(s.deployer, event.Account)
	s.Equal(s.nftAddress(), event.NftAddress)

	listing, err := s.market.GetListing(ctx, s.nftAddress(), tokenID)
	s.Require().NoError(err)
	s.Equal(price.String(), listing.Price.String())
	s.Equal(s.deployer, listing.Seller)
}

func (s *MarketplaceSuite) TestListItem_Reverts() {
	ctx := context.Background()

	s.Run("zero price", func() {
		_, err := s.market.ListItem(ctx, s.nftAddress(), tokenID, big.NewInt(0))
		s.ErrorIs(err, domain.ErrReverted)
		s.ErrorContains(err, "PriceMustBeGreaterThanZero")
	})
	s.Run("seller is not the owner", func() {
		_, err := s.playerMarket.ListItem(ctx, s.nftAddress(), tokenID, price)
		s.ErrorIs(err, domain.ErrReverted)
	})
	s.Run("already listed", func() {
		s.listed()
		_, err := s.market.ListItem(ctx, s.nftAddress(), tokenID, price)
		s.ErrorIs(err, domain.ErrReverted)
	})
}

func (s *MarketplaceSuite) TestCancelListing() {
	ctx := context.Background()
	s.listed()

	receipt, err := s.market.CancelListing(ctx, s.nftAddress(), tokenID)
	s.Require().NoError(err)
	s.assertSingleEvent(receipt, domain.EventItemCanceled)

	listing, err := s.market.GetListing(ctx, s.nftAddress(), tokenID)
	s.Require().NoError(err)
	s.False(listing.Listed())
}

func (s *MarketplaceSuite) TestCancelListing_Reverts() {
	ctx := context.Background()

	s.Run("not listed", func() {
		_, err := s.market.CancelListing(ctx, s.nftAddress(), tokenID)
		s.ErrorIs(err, domain.ErrReverted)
	})
	s.Run("canceler is not the owner", func() {
		s.listed()
		_, err := s.playerMarket.CancelListing(ctx, s.nftAddress(), tokenID)
		s.ErrorIs(err, domain.ErrReverted)
	})
}

func (s *MarketplaceSuite) TestUpdateListing() {
	ctx := context.Background()
	s.listed()

	receipt, err := s.market.UpdateListing(ctx, s.nftAddress(), tokenID, updatingPrice)
	s.Require().NoError(err)
	event := s.assertSingleEvent(receipt, domain.EventListedItemUpdated)
	s.Equal(updatingPrice.String(), event.Price.String())

	listing, err := s.market.GetListing(ctx, s.nftAddress(), tokenID)
	s.Require().NoError(err)
	s.Equal(updatingPrice.String(), listing.Price.String())
}

func (s *MarketplaceSuite) TestUpdateListing_Reverts() {
	ctx := context.Background()

	s.Run("not listed", func() {
		_, err := s.market.UpdateListing(ctx, s.nftAddress(), tokenID, updatingPrice)
		s.ErrorIs(err, domain.ErrReverted)
	})
	s.Run("updater is not the owner", func() {
		s.listed()
		_, err := s.playerMarket.UpdateListing(ctx, s.nftAddress(), tokenID, updatingPrice)
		s.ErrorIs(err, domain.ErrReverted)
	})
}

func (s *MarketplaceSuite) TestWithdrawProceeds() {
	ctx := context.Background()
	s.listed()
	_, err := s.playerMarket.BuyItem(ctx, s.nftAddress(), tokenID, price)
	s.Require().NoError(err)

	before, err := s.chain.Client().BalanceAt(ctx, s.deployer, nil)
	s.Require().NoError(err)

	receipt, err := s.market.WithdrawProceeds(ctx)
	s.Require().NoError(err)

	tx, _, err := s.chain.Client().TransactionByHash(ctx, receipt.TxHash)
	s.Require().NoError(err)
	mined, err := s.chain.Client().TransactionReceipt(ctx, receipt.TxHash)
	s.Require().NoError(err)
	gasCost := new(big.Int).Mul(new(big.Int).SetUint64(mined.GasUsed), mined.EffectiveGasPrice)

	after, err := s.chain.Client().BalanceAt(ctx, s.deployer, nil)
	s.Require().NoError(err)

	expected := new(big.Int).Add(before, price)
	expected.Sub(expected, gasCost)
	s.Equal(expected.String(), after.String(), "tx %s", tx.Hash().Hex())

	proceeds, err := s.market.GetProceeds(ctx, s.deployer)
	s.Require().NoError(err)
	assert.Zero(s.T(), proceeds.Sign())

	_, err = s.market.WithdrawProceeds(ctx)
	s.ErrorIs(err, domain.ErrReverted)
}
