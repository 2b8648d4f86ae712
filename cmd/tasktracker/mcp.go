package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/jsamuelsen11/go-task-tracker/internal/adapters/mcp"
)

func newMCPCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve task tools to an MCP client over stdio",
		Long: `Serve task tools over JSON-RPC on stdin/stdout. Every tool acts on the
bootstrap user from the config, which is created on first run.
Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMCP(cmd.Context(), opts)
		},
	}
}

func runMCP(ctx context.Context, opts *rootOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// stdout is the protocol stream.
	rt, err := startup(ctx, opts, os.Stderr)
	if err != nil {
		return err
	}
	defer rt.shutdown()

	server, err := do.Invoke[*mcp.Server](rt.injector)
	if err != nil {
		return fmt.Errorf("resolving mcp server: %w", err)
	}

	err = server.Serve(ctx, os.Stdin, os.Stdout)
	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		rt.logger.Info("received shutdown signal")
		return nil
	}
	if err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
