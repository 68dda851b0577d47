package mcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/lumina/pkg/draft"
	"tableflip.dev/lumina/pkg/logging"
	"tableflip.dev/lumina/pkg/store"
)

// Transport selects the mechanism used to expose the MCP server.
type Transport string

const (
	// TransportHTTP serves MCP via the streamable HTTP transport.
	TransportHTTP Transport = "http"
	// TransportStdio serves MCP over stdio.
	TransportStdio Transport = "stdio"
)

// Watcher reports changes other processes make to the store.
type Watcher interface {
	Watch(ctx context.Context) (<-chan store.Event, error)
}

// Runner coordinates MCP server startup.
type Runner struct {
	Tasks   *store.Tasks
	Adapter *draft.Adapter
	Watcher Watcher
	Log     *logging.Logger
	Name    string
	Version string

	Transport        Transport
	HTTPListenAddr   string
	HTTPEndpointPath string
	OnHTTPListening  func(net.Addr)
	HTTPServerCert   string
	HTTPServerKey    string
}

// Do executes the runner.
func (r Runner) Do(ctx context.Context) error {
	if r.Tasks == nil {
		return errors.New("mcp runner requires a task store")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	log := r.Log
	if log == nil {
		log = logging.Nop()
	}
	log = log.WithComponent("mcp")

	name := r.Name
	if name == "" {
		name = "lumina"
	}
	version := r.Version
	if version == "" {
		version = "dev"
	}

	srv := server.NewMCPServer(
		fmt.Sprintf("%s MCP", name),
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Read and change calendar tasks: create, toggle, delete and list tasks, and show month or week grids."),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)

	svc := NewService(r.Tasks, r.Adapter)
	registerResources(srv, svc)
	registerTools(srv, svc)

	if r.Watcher != nil {
		if err := r.follow(ctx, log); err != nil {
			log.WithError(err).Warn("store watch unavailable; changes from other processes need a restart")
		}
	}

	switch t := r.Transport; t {
	case "", TransportHTTP:
		log.Infow("serving", "transport", TransportHTTP)
		return r.serveHTTP(ctx, srv)
	case TransportStdio:
		log.Infow("serving", "transport", TransportStdio)
		return server.ServeStdio(srv)
	default:
		return fmt.Errorf("unknown MCP transport %q", t)
	}
}

// follow reloads the task collection whenever another process rewrites it.
func (r Runner) follow(ctx context.Context, log *logging.Logger) error {
	events, err := r.Watcher.Watch(ctx)
	if err != nil {
		return err
	}
	go func() {
		for evt := range events {
			if evt.Type == store.EventInvalidated || evt.Key == store.TasksKey {
				log.Debugw("reloading tasks", "key", evt.Key)
				r.Tasks.Reload()
			}
		}
	}()
	return nil
}

func (r Runner) serveHTTP(ctx context.Context, srv *server.MCPServer) error {
	if (r.HTTPServerCert != "" && r.HTTPServerKey == "") || (r.HTTPServerCert == "" && r.HTTPServerKey != "") {
		return errors.New("both http tls cert and key must be provided")
	}

	handler := server.NewStreamableHTTPServer(srv)

	path := r.HTTPEndpointPath
	if path == "" {
		path = "/mcp"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	listenAddr := r.HTTPListenAddr
	if listenAddr == "" {
		listenAddr = "127.0.0.1:8080"
	}

	mux := http.NewServeMux()
	mux.Handle(path, handler)

	httpSrv := &http.Server{
		Handler: mux,
	}

	ln, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}

	if r.OnHTTPListening != nil {
		r.OnHTTPListening(ln.Addr())
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	if r.HTTPServerCert != "" && r.HTTPServerKey != "" {
		err = httpSrv.ServeTLS(ln, r.HTTPServerCert, r.HTTPServerKey)
	} else {
		err = httpSrv.Serve(ln)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
