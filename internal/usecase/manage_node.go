package usecase

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/nftmarket/nftm/internal/domain"
	"github.com/nftmarket/nftm/internal/domain/config"
	"github.com/samber/lo"
)

// DefaultNodeNetwork is the network a local node serves unless told otherwise
const DefaultNodeNetwork = "localhost"

// NodeManager runs a local development node
type NodeManager interface {
	Start(ctx context.Context, node *domain.LocalNode) error
	Stop(ctx context.Context, node *domain.LocalNode) error
	GetStatus(ctx context.Context, node *domain.LocalNode) (*domain.NodeStatus, error)
	Logs(ctx context.Context, node *domain.LocalNode, w io.Writer) error
}

// ManageNode handles local node operations
type ManageNode struct {
	config   *config.RuntimeConfig
	resolver NetworkResolver
	manager  NodeManager
	progress ProgressSink
}

// NewManageNode creates a new node management use case
func NewManageNode(cfg *config.RuntimeConfig, resolver NetworkResolver, manager NodeManager, progress ProgressSink) *ManageNode {
	return &ManageNode{
		config:   cfg,
		resolver: resolver,
		manager:  manager,
		progress: progress,
	}
}

// ManageNodeParams contains parameters for node operations
type ManageNodeParams struct {
	Operation string // start, stop, restart, status
	// Network is the development network the node serves, defaults to localhost
	Network string
}

// ManageNodeResult contains the result of a node operation
type ManageNodeResult struct {
	Operation string
	Node      *domain.LocalNode
	Status    *domain.NodeStatus
	Message   string
}

// Execute performs the node operation
func (uc *ManageNode) Execute(ctx context.Context, params ManageNodeParams) (*ManageNodeResult, error) {
	node, err := uc.node(ctx, params.Network)
	if err != nil {
		return nil, err
	}

	switch params.Operation {
	case "start":
		return uc.start(ctx, node)
	case "stop":
		return uc.stop(ctx, node)
	case "restart":
		if _, err := uc.stop(ctx, node); err != nil {
			return nil, err
		}
		result, err := uc.start(ctx, node)
		if err != nil {
			return nil, err
		}
		result.Operation = "restart"
		return result, nil
	case "status":
		status, err := uc.manager.GetStatus(ctx, node)
		if err != nil {
			return nil, fmt.Errorf("failed to get status: %w", err)
		}
		return &ManageNodeResult{Operation: "status", Node: node, Status: status}, nil
	default:
		return nil, fmt.Errorf("unknown operation: %s", params.Operation)
	}
}

// Logs writes the node log to w
func (uc *ManageNode) Logs(ctx context.Context, params ManageNodeParams, w io.Writer) error {
	node, err := uc.node(ctx, params.Network)
	if err != nil {
		return err
	}
	return uc.manager.Logs(ctx, node, w)
}

func (uc *ManageNode) start(ctx context.Context, node *domain.LocalNode) (*ManageNodeResult, error) {
	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "node",
		Message: fmt.Sprintf("Starting local node on port %s", node.Port),
		Spinner: true,
	})
	err := uc.manager.Start(ctx, node)
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: "node"})
	if err != nil {
		return nil, fmt.Errorf("failed to start node: %w", err)
	}

	status, err := uc.manager.GetStatus(ctx, node)
	if err != nil {
		return nil, fmt.Errorf("failed to get status after start: %w", err)
	}

	return &ManageNodeResult{
		Operation: "start",
		Node:      node,
		Status:    status,
		Message:   fmt.Sprintf("Node started with PID %d", status.PID),
	}, nil
}

func (uc *ManageNode) stop(ctx context.Context, node *domain.LocalNode) (*ManageNodeResult, error) {
	status, err := uc.manager.GetStatus(ctx, node)
	if err != nil || !status.Running {
		return &ManageNodeResult{
			Operation: "stop",
			Node:      node,
			Message:   "Node is not running",
		}, nil
	}

	uc.progress.Info(fmt.Sprintf("Stopping node (PID %d)", status.PID))
	if err := uc.manager.Stop(ctx, node); err != nil {
		return nil, fmt.Errorf("failed to stop node: %w", err)
	}

	return &ManageNodeResult{
		Operation: "stop",
		Node:      node,
		Message:   "Node stopped",
	}, nil
}

// node describes the local node serving a development network
func (uc *ManageNode) node(ctx context.Context, networkName string) (*domain.LocalNode, error) {
	if networkName == "" {
		networkName = DefaultNodeNetwork
	}
	if !lo.Contains(uc.config.DevelopmentChains, networkName) {
		return nil, fmt.Errorf("%s is not a development network", networkName)
	}

	network, err := uc.resolver.ResolveNetwork(ctx, networkName)
	if err != nil {
		return nil, err
	}

	endpoint, err := url.Parse(network.RPCURL)
	if err != nil || endpoint.Hostname() == "" {
		return nil, fmt.Errorf("invalid rpc_url %q for network %s", network.RPCURL, networkName)
	}

	return &domain.LocalNode{
		Host:    endpoint.Hostname(),
		Port:    endpoint.Port(),
		ChainID: network.ChainID,
	}, nil
}
