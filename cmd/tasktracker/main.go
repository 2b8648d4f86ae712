// Package main is the entry point for tasktracker. It exposes the task service
// over HTTP (serve) or as an MCP stdio tool server (mcp), wiring dependencies
// with samber/do v2.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is overridden at build time with -ldflags "-X main.Version=...".
var Version = "dev"

const defaultProfile = "local"

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	profile   string
	configDir string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "tasktracker",
		Short:         "Track time spent on tasks through HTTP or MCP tools",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		profile = defaultProfile
	}

	root.PersistentFlags().StringVar(&opts.profile, "profile", profile,
		"config profile to load (local, prod, ...); defaults to $APP_PROFILE")
	root.PersistentFlags().StringVar(&opts.configDir, "config-dir", "configs",
		"directory holding base.yaml and the profile files")

	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newMCPCmd(opts))
	root.AddCommand(newVersionCmd())

	return root
}
