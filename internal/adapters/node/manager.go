package node

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/nftmarket/nftm/internal/domain"
	"github.com/nftmarket/nftm/internal/domain/config"
	"github.com/nftmarket/nftm/internal/usecase"
)

const (
	// DefaultBinary is the node executable, looked up in PATH
	DefaultBinary = "anvil"
	// DefaultHost is the interface the node listens on
	DefaultHost = "127.0.0.1"
	// DefaultPort matches the localhost network
	DefaultPort = "8545"

	stateDir = ".nftm"
)

var errNodeExited = errors.New("node process exited")

// Manager runs a local anvil node in the background, tracked by a PID file
type Manager struct {
	binary       string
	dir          string
	log          *slog.Logger
	startTimeout time.Duration
	stopTimeout  time.Duration
	pollInterval time.Duration
}

// NewManager creates a node manager keeping its state under <project>/.nftm
func NewManager(cfg *config.RuntimeConfig, log *slog.Logger) *Manager {
	return &Manager{
		binary:       DefaultBinary,
		dir:          filepath.Join(cfg.ProjectRoot, stateDir),
		log:          log.With("component", "node"),
		startTimeout: 10 * time.Second,
		stopTimeout:  5 * time.Second,
		pollInterval: 200 * time.Millisecond,
	}
}

// Start launches the node and waits until its RPC endpoint answers
func (m *Manager) Start(ctx context.Context, node *domain.LocalNode) error {
	m.setFilePaths(node)
	if pid, ok := m.runningPID(node); ok {
		return fmt.Errorf("node is already running (PID %d)", pid)
	}

	if err := os.MkdirAll(m.dir, 0755); err != nil {
		return &domain.IOError{Op: "create", Path: m.dir, Err: err}
	}
	logFile, err := os.Create(node.LogFile)
	if err != nil {
		return &domain.IOError{Op: "create", Path: node.LogFile, Err: err}
	}
	defer logFile.Close()

	cmd := exec.Command(m.binary, buildArgs(node)...)
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", m.binary, err)
	}
	pid := cmd.Process.Pid
	m.log.Debug("node process started", "pid", pid, "args", cmd.Args)

	// Reap the child while waiting so an early exit is seen instead of leaving a zombie
	exited := make(chan error, 1)
	go func() { exited <- cmd.Wait() }()

	if err := writePidFile(node.PidFile, pid); err != nil {
		_ = cmd.Process.Kill()
		return err
	}

	if err := m.waitForRPC(ctx, node, exited); err != nil {
		if errors.Is(err, errNodeExited) {
			_ = removePidFile(node.PidFile)
		} else {
			_ = m.Stop(context.Background(), node)
		}
		return fmt.Errorf("node did not come up, see %s: %w", node.LogFile, err)
	}
	return nil
}

// Stop terminates the node and removes its PID file
func (m *Manager) Stop(ctx context.Context, node *domain.LocalNode) error {
	m.setFilePaths(node)
	pid, ok := m.runningPID(node)
	if !ok {
		return removePidFile(node.PidFile)
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("failed to find process %d: %w", pid, err)
	}
	if err := process.Signal(syscall.SIGTERM); err != nil {
		m.log.Debug("SIGTERM failed, killing", "pid", pid, "error", err)
		_ = process.Kill()
	}

	deadline := time.Now().Add(m.stopTimeout)
	for processAlive(pid) {
		if time.Now().After(deadline) {
			_ = process.Kill()
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(m.pollInterval):
		}
	}

	return removePidFile(node.PidFile)
}

// GetStatus reports whether the node runs and answers RPC calls
func (m *Manager) GetStatus(ctx context.Context, node *domain.LocalNode) (*domain.NodeStatus, error) {
	m.setFilePaths(node)
	status := &domain.NodeStatus{
		RPCURL:  rpcURL(node),
		LogFile: node.LogFile,
	}

	pid, ok := m.runningPID(node)
	if !ok {
		return status, nil
	}
	status.Running = true
	status.PID = pid

	chainID, block, err := probeRPC(ctx, status.RPCURL)
	if err != nil {
		status.Error = err.Error()
		return status, nil
	}
	status.RPCHealthy = true
	status.ChainID = chainID
	status.BlockNumber = block
	return status, nil
}

// Logs copies the node log to w
func (m *Manager) Logs(_ context.Context, node *domain.LocalNode, w io.Writer) error {
	m.setFilePaths(node)
	f, err := os.Open(node.LogFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("log file does not exist: %s", node.LogFile)
		}
		return &domain.IOError{Op: "read", Path: node.LogFile, Err: err}
	}
	defer f.Close()

	_, err = io.Copy(w, f)
	return err
}

func (m *Manager) setFilePaths(node *domain.LocalNode) {
	if node.Host == "" {
		node.Host = DefaultHost
	}
	if node.Port == "" {
		node.Port = DefaultPort
	}
	if node.PidFile == "" {
		node.PidFile = filepath.Join(m.dir, fmt.Sprintf("node-%s.pid", node.Port))
	}
	if node.LogFile == "" {
		node.LogFile = filepath.Join(m.dir, fmt.Sprintf("node-%s.log", node.Port))
	}
}

func (m *Manager) runningPID(node *domain.LocalNode) (int, bool) {
	pid, err := readPidFile(node.PidFile)
	if err != nil {
		return 0, false
	}
	return pid, processAlive(pid)
}

func (m *Manager) waitForRPC(ctx context.Context, node *domain.LocalNode, exited <-chan error) error {
	ctx, cancel := context.WithTimeout(ctx, m.startTimeout)
	defer cancel()

	url := rpcURL(node)
	for {
		if _, _, err := probeRPC(ctx, url); err == nil {
			return nil
		}
		select {
		case err := <-exited:
			if err != nil {
				return fmt.Errorf("%w: %v", errNodeExited, err)
			}
			return errNodeExited
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(m.pollInterval):
		}
	}
}

func buildArgs(node *domain.LocalNode) []string {
	args := []string{"--port", node.Port, "--host", node.Host}
	if node.ChainID != 0 {
		args = append(args, "--chain-id", strconv.FormatUint(node.ChainID, 10))
	}
	return args
}

func rpcURL(node *domain.LocalNode) string {
	return fmt.Sprintf("http://%s:%s", node.Host, node.Port)
}

func probeRPC(ctx context.Context, url string) (uint64, uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	client, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return 0, 0, err
	}
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return 0, 0, err
	}
	block, err := client.BlockNumber(ctx)
	if err != nil {
		return 0, 0, err
	}
	return chainID.Uint64(), block, nil
}

func processAlive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}

func readPidFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid PID in %s: %q", path, string(data))
	}
	return pid, nil
}

func writePidFile(path string, pid int) error {
	if err := os.WriteFile(path, []byte(strconv.Itoa(pid)), 0644); err != nil {
		return &domain.IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

func removePidFile(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return &domain.IOError{Op: "remove", Path: path, Err: err}
	}
	return nil
}

var _ usecase.NodeManager = (*Manager)(nil)
