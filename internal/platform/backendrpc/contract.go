package backendrpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey  = "backend"
	serviceName   = "focus.backend.v1.Backend"
	jsonCodecName = "json"

	methodCreateAndStoreSession        = "CreateAndStoreSession"
	methodUnblockAllSites              = "UnblockAllSites"
	methodGetAllSessions               = "GetAllSessions"
	methodSearchApps                   = "SearchApps"
	methodAuthorizeAdmin               = "AuthorizeAdmin"
	methodSetupPersistentAuthorization = "SetupPersistentAuthorization"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "FOCUS_BACKEND",
	MagicCookieValue: "focus",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Ack struct {
	Message string `json:"message"`
}

type AppTarget struct {
	Label      string `json:"label"`
	Executable string `json:"executable"`
	Icon       string `json:"icon,omitempty"`
}

type CreateSessionRequest struct {
	Goal            string      `json:"goal"`
	DurationSeconds int64       `json:"duration_seconds"`
	BlockedSites    []string    `json:"blocked_sites"`
	BlockedApps     []AppTarget `json:"blocked_apps"`
}

type SessionRecord struct {
	ID              string      `json:"id"`
	Goal            string      `json:"goal"`
	DurationSeconds int64       `json:"duration_seconds"`
	BlockedSites    []string    `json:"blocked_sites"`
	BlockedApps     []AppTarget `json:"blocked_apps"`
	Timestamp       int64       `json:"timestamp"`
}

type SessionList struct {
	Sessions []SessionRecord `json:"sessions"`
}

type SearchAppsRequest struct {
	Query string `json:"query"`
}

type InstalledApp struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	Executable  string   `json:"executable"`
	Icon        string   `json:"icon,omitempty"`
	Categories  []string `json:"categories"`
}

type AppList struct {
	Apps []InstalledApp `json:"apps"`
}

type BackendServer interface {
	CreateAndStoreSession(ctx context.Context, in *CreateSessionRequest) (*Ack, error)
	UnblockAllSites(ctx context.Context, in *Empty) (*Ack, error)
	GetAllSessions(ctx context.Context, in *Empty) (*SessionList, error)
	SearchApps(ctx context.Context, in *SearchAppsRequest) (*AppList, error)
	AuthorizeAdmin(ctx context.Context, in *Empty) (*Ack, error)
	SetupPersistentAuthorization(ctx context.Context, in *Empty) (*Ack, error)
}

type BackendClient interface {
	CreateAndStoreSession(ctx context.Context, in *CreateSessionRequest) (*Ack, error)
	UnblockAllSites(ctx context.Context) (*Ack, error)
	GetAllSessions(ctx context.Context) (*SessionList, error)
	SearchApps(ctx context.Context, in *SearchAppsRequest) (*AppList, error)
	AuthorizeAdmin(ctx context.Context) (*Ack, error)
	SetupPersistentAuthorization(ctx context.Context) (*Ack, error)
}

type backendClient struct {
	conn *grpc.ClientConn
}

func NewBackendClient(conn *grpc.ClientConn) BackendClient {
	return &backendClient{conn: conn}
}

func (c *backendClient) invoke(ctx context.Context, method string, in, out any) error {
	return c.conn.Invoke(ctx, "/"+serviceName+"/"+method, in, out, grpc.CallContentSubtype(jsonCodecName))
}

func (c *backendClient) CreateAndStoreSession(ctx context.Context, in *CreateSessionRequest) (*Ack, error) {
	out := &Ack{}
	if err := c.invoke(ctx, methodCreateAndStoreSession, in, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *backendClient) UnblockAllSites(ctx context.Context) (*Ack, error) {
	out := &Ack{}
	if err := c.invoke(ctx, methodUnblockAllSites, &Empty{}, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *backendClient) GetAllSessions(ctx context.Context) (*SessionList, error) {
	out := &SessionList{}
	if err := c.invoke(ctx, methodGetAllSessions, &Empty{}, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *backendClient) SearchApps(ctx context.Context, in *SearchAppsRequest) (*AppList, error) {
	out := &AppList{}
	if err := c.invoke(ctx, methodSearchApps, in, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *backendClient) AuthorizeAdmin(ctx context.Context) (*Ack, error) {
	out := &Ack{}
	if err := c.invoke(ctx, methodAuthorizeAdmin, &Empty{}, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *backendClient) SetupPersistentAuthorization(ctx context.Context) (*Ack, error) {
	out := &Ack{}
	if err := c.invoke(ctx, methodSetupPersistentAuthorization, &Empty{}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// unary adapts a typed handler to the generic grpc method table, honouring
// an optional server interceptor.
func unary[Req any, Resp any](name string, call func(context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + serviceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				typed, ok := req.(*Req)
				if !ok {
					return nil, fmt.Errorf("invalid request type for %s", name)
				}
				return call(ctx, typed)
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

func RegisterBackendServer(server grpc.ServiceRegistrar, impl BackendServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*BackendServer)(nil),
		Methods: []grpc.MethodDesc{
			unary(methodCreateAndStoreSession, impl.CreateAndStoreSession),
			unary(methodUnblockAllSites, impl.UnblockAllSites),
			unary(methodGetAllSessions, impl.GetAllSessions),
			unary(methodSearchApps, impl.SearchApps),
			unary(methodAuthorizeAdmin, impl.AuthorizeAdmin),
			unary(methodSetupPersistentAuthorization, impl.SetupPersistentAuthorization),
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "schemas/backend-rpc-v1.proto",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl BackendServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterBackendServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewBackendClient(conn), nil
}

func PluginMap(impl BackendServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
