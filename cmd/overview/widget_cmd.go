package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/barbatoslupus21/unisync-overview/internal/dto"
	"github.com/barbatoslupus21/unisync-overview/internal/grid"
)

func newWidgetCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "widget",
		Short: "Add, remove, move or resize dashboard widgets",
	}
	cmd.AddCommand(newWidgetAddCmd(opts))
	cmd.AddCommand(newWidgetRemoveCmd(opts))
	cmd.AddCommand(newWidgetMoveCmd(opts))
	cmd.AddCommand(newWidgetResizeCmd(opts))
	cmd.AddCommand(newWidgetTypesCmd(opts))
	return cmd
}

// withLayout runs fn against a loaded session.
func withLayout(cmd *cobra.Command, opts *rootOptions, fn func(s *session) error) error {
	s := newSession(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	defer s.close()
	if err := s.load(cmd.Context()); err != nil {
		return err
	}
	return fn(s)
}

func intArgs(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("%q is not a whole number", a)
		}
		out[i] = n
	}
	return out, nil
}

func newWidgetAddCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <type>",
		Short: "Add a widget at the first free slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLayout(cmd, opts, func(s *session) error {
				w, err := s.ctrl.AddWidget(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s at (%d,%d)\n", w.ID, w.X, w.Y)
				return nil
			})
		},
	}
}

func newWidgetRemoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a widget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLayout(cmd, opts, func(s *session) error {
				return s.ctrl.RemoveWidget(cmd.Context(), args[0])
			})
		},
	}
}

func newWidgetMoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <x> <y>",
		Short: "Drag a widget onto a cell",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := intArgs(args[1:])
			if err != nil {
				return err
			}
			return withLayout(cmd, opts, func(s *session) error {
				s.ctrl.EnterEditMode(cmd.Context())
				return s.ctrl.MoveWidget(cmd.Context(), args[0], pos[0], pos[1])
			})
		},
	}
}

func newWidgetResizeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resize <id> <w> <h>",
		Short: "Resize a widget to w x h cells",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			size, err := intArgs(args[1:])
			if err != nil {
				return err
			}
			return withLayout(cmd, opts, func(s *session) error {
				s.ctrl.EnterEditMode(cmd.Context())
				return s.ctrl.ResizeWidget(cmd.Context(), args[0], size[0], size[1])
			})
		},
	}
}

func newWidgetTypesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the widget types you can add",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := newSession(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			defer s.close()

			var entries []dto.WidgetTypeEntry
			if s.client != nil {
				remote, err := s.client.WidgetTypes(cmd.Context())
				if err != nil {
					s.log.Warn("failed to fetch widget types", "error", err)
				} else {
					entries = remote
				}
			}
			if entries == nil {
				for _, k := range grid.OfferedKinds(s.roles) {
					entries = append(entries, dto.WidgetTypeEntry{Type: k.Tag, Title: k.Title, W: k.W, H: k.H, DataSource: k.DataSource})
				}
			}

			t := table.New().Headers("TYPE", "TITLE", "SIZE", "SOURCE")
			for _, e := range entries {
				t.Row(e.Type, e.Title, fmt.Sprintf("%dx%d", e.W, e.H), e.DataSource)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.String())
			return nil
		},
	}
}
