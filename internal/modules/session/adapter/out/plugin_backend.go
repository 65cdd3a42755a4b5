package out

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc/status"

	"focus/internal/modules/session/domain"
	sessionout "focus/internal/modules/session/port/out"
	"focus/internal/platform/backendrpc"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 30 * time.Second
)

var ErrChecksumMismatch = errors.New("backend checksum mismatch")

type PluginOptions struct {
	Binary       string
	SHA256       string
	StartTimeout time.Duration
	CallTimeout  time.Duration
	// Env is appended to the inherited environment of the child.
	Env    []string
	Logger hclog.Logger
}

// PluginBackend runs the blocking backend as a go-plugin child process and
// keeps it alive for the lifetime of the client.
type PluginBackend struct {
	client      *plugin.Client
	rpc         backendrpc.BackendClient
	callTimeout time.Duration
}

func NewPluginBackend(opts PluginOptions) (*PluginBackend, error) {
	if opts.SHA256 != "" {
		if err := checksumMatches(opts.Binary, opts.SHA256); err != nil {
			return nil, err
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	startTimeout := opts.StartTimeout
	if startTimeout <= 0 {
		startTimeout = defaultStartTimeout
	}
	callTimeout := opts.CallTimeout
	if callTimeout <= 0 {
		callTimeout = defaultCallTimeout
	}

	cmd := exec.Command(opts.Binary)
	cmd.Env = append(os.Environ(), opts.Env...)
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  backendrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          backendrpc.PluginMap(nil),
		Cmd:              cmd,
		Managed:          true,
		StartTimeout:     startTimeout,
		Logger:           logger.Named("backend"),
	})
	rpcClient, err := client.Client()
	if err != nil {
		client.Kill()
		return nil, fmt.Errorf("start backend: %w", err)
	}
	raw, err := rpcClient.Dispense(backendrpc.PluginMapKey)
	if err != nil {
		client.Kill()
		return nil, fmt.Errorf("dispense backend: %w", err)
	}
	typed, ok := raw.(backendrpc.BackendClient)
	if !ok {
		client.Kill()
		return nil, fmt.Errorf("backend rpc client type mismatch")
	}
	return &PluginBackend{client: client, rpc: typed, callTimeout: callTimeout}, nil
}

var _ sessionout.Backend = (*PluginBackend)(nil)

func (b *PluginBackend) CreateAndStoreSession(ctx context.Context, session domain.Session) error {
	ctx, cancel := b.callContext(ctx)
	defer cancel()
	apps := make([]backendrpc.AppTarget, 0, len(session.BlockedApps))
	for _, app := range session.BlockedApps {
		apps = append(apps, backendrpc.AppTarget{Label: app.Label, Executable: app.Executable, Icon: app.Icon})
	}
	_, err := b.rpc.CreateAndStoreSession(ctx, &backendrpc.CreateSessionRequest{
		Goal:            session.Goal,
		DurationSeconds: int64(session.Duration),
		BlockedSites:    session.BlockedSites,
		BlockedApps:     apps,
	})
	return remoteError(err)
}

func (b *PluginBackend) UnblockAllSites(ctx context.Context) error {
	ctx, cancel := b.callContext(ctx)
	defer cancel()
	_, err := b.rpc.UnblockAllSites(ctx)
	return remoteError(err)
}

func (b *PluginBackend) GetAllSessions(ctx context.Context) ([]domain.HistoryEntry, error) {
	ctx, cancel := b.callContext(ctx)
	defer cancel()
	list, err := b.rpc.GetAllSessions(ctx)
	if err != nil {
		return nil, remoteError(err)
	}
	return FromSessionList(list), nil
}

func (b *PluginBackend) SearchApps(ctx context.Context, query string) ([]domain.InstalledApp, error) {
	ctx, cancel := b.callContext(ctx)
	defer cancel()
	list, err := b.rpc.SearchApps(ctx, &backendrpc.SearchAppsRequest{Query: query})
	if err != nil {
		return nil, remoteError(err)
	}
	out := make([]domain.InstalledApp, 0, len(list.Apps))
	for _, a := range list.Apps {
		out = append(out, domain.InstalledApp{
			Name:        a.Name,
			DisplayName: a.DisplayName,
			Executable:  a.Executable,
			Icon:        a.Icon,
			Categories:  a.Categories,
		})
	}
	return out, nil
}

// AuthorizeAdmin may prompt for a password, so it is not bounded by the
// call timeout.
func (b *PluginBackend) AuthorizeAdmin(ctx context.Context) (string, error) {
	ack, err := b.rpc.AuthorizeAdmin(ctx)
	if err != nil {
		return "", remoteError(err)
	}
	return ack.Message, nil
}

func (b *PluginBackend) SetupPersistentAuthorization(ctx context.Context) (string, error) {
	ack, err := b.rpc.SetupPersistentAuthorization(ctx)
	if err != nil {
		return "", remoteError(err)
	}
	return ack.Message, nil
}

func (b *PluginBackend) Close() error {
	b.client.Kill()
	return nil
}

func (b *PluginBackend) callContext(parent context.Context) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, b.callTimeout)
}

// FromSessionList converts wire records; timestamps travel as unix seconds.
func FromSessionList(list *backendrpc.SessionList) []domain.HistoryEntry {
	out := make([]domain.HistoryEntry, 0, len(list.Sessions))
	for _, r := range list.Sessions {
		apps := make([]domain.AppTarget, 0, len(r.BlockedApps))
		for _, app := range r.BlockedApps {
			apps = append(apps, domain.AppTarget{Label: app.Label, Executable: app.Executable, Icon: app.Icon})
		}
		out = append(out, domain.HistoryEntry{
			ID:           r.ID,
			Goal:         r.Goal,
			Duration:     int(r.DurationSeconds),
			BlockedSites: r.BlockedSites,
			BlockedApps:  apps,
			Timestamp:    time.Unix(r.Timestamp, 0).UTC(),
		})
	}
	return out
}

// remoteError strips the transport status so callers see the backend's
// own message.
func remoteError(err error) error {
	if err == nil {
		return nil
	}
	if st, ok := status.FromError(err); ok {
		return errors.New(st.Message())
	}
	return err
}

func checksumMatches(path string, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read backend binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	if hex.EncodeToString(hash[:]) != expected {
		return fmt.Errorf("%w: %s", ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}
