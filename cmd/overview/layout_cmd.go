package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLayoutCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Show or reset the dashboard layout",
	}
	cmd.AddCommand(newLayoutShowCmd(opts))
	cmd.AddCommand(newLayoutResetCmd(opts))
	return cmd
}

func newLayoutShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Load the layout and draw it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := newSession(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			defer s.close()
			if err := s.load(cmd.Context()); err != nil {
				return err
			}
			s.log.Info("layout source", "source", s.source)
			return nil
		},
	}
}

func newLayoutResetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Remove the cached and the stored layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := newSession(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			defer s.close()
			if err := s.persister.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Dashboard layout reset")
			return nil
		},
	}
}
