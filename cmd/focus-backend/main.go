// Command focus-backend serves the blocking backend over go-plugin gRPC.
// It is started by focus when backend.mode is "plugin".
package main

import (
	"fmt"
	"os"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	"focus/internal/bootstrap"
	blockerinadapter "focus/internal/modules/blocker/adapter/in"
	"focus/internal/platform/backendrpc"
	"focus/internal/platform/config"
)

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.New("")
	if err != nil {
		return err
	}
	// go-plugin forwards stderr lines in hclog JSON format to the host logger.
	logger := hclog.New(&hclog.LoggerOptions{
		Name:       "focus-backend",
		Level:      hclog.LevelFromString(cfg.LogLevel),
		Output:     os.Stderr,
		JSONFormat: true,
	})

	blocker, err := bootstrap.NewBlocker(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = blocker.Close() }()

	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: backendrpc.HandshakeConfig,
		Plugins:         backendrpc.PluginMap(blockerinadapter.NewRPCServer(blocker.Usecase)),
		GRPCServer:      plugin.DefaultGRPCServer,
		Logger:          logger,
	})
	return nil
}
