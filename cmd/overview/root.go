package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/barbatoslupus21/unisync-overview/internal/config"
)

type rootOptions struct {
	APIURL    string
	Token     string
	CachePath string
	Width     int
	Offline   bool
	Timeout   time.Duration
	LogLevel  string
	Roles     []string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := new(rootOptions)

	cmd := &cobra.Command{
		Use:           "overview",
		Short:         "UniSync overview dashboard client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cfg, err := config.NewCLI()
	if err != nil {
		// flags still work; env defaults are just not applied
		fmt.Fprintln(stderr, err.Error())
		cfg = &config.CLIConfig{ViewportWidth: 1400, Timeout: 15 * time.Second, LogLevel: "warn"}
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.APIURL, "api", cfg.APIURL, "overview API base URL")
	flags.StringVar(&opts.Token, "token", cfg.Token, "Firebase ID token")
	flags.StringVar(&opts.CachePath, "cache", cfg.CachePath, "local layout cache file (default in the user cache dir)")
	flags.IntVar(&opts.Width, "width", cfg.ViewportWidth, "viewport width in pixels")
	flags.BoolVar(&opts.Offline, "offline", false, "work from the local cache only")
	flags.DurationVar(&opts.Timeout, "timeout", cfg.Timeout, "timeout for each API request")
	flags.StringVar(&opts.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	flags.StringSliceVar(&opts.Roles, "roles", cfg.Roles, "portal roles used when offline")

	cmd.AddCommand(newLayoutCmd(opts))
	cmd.AddCommand(newWidgetCmd(opts))
	return cmd
}

func Execute() {
	if _, err := config.LoadEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
	}
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
