package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCacheCommand creates the cache command group.
func NewCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect locally cached responses",
		Long:  "Show documents stored with --cache, or look up one of their top-level keys",
	}

	cmd.AddCommand(newCacheShowCommand())
	cmd.AddCommand(newCacheFindCommand())

	return cmd
}

func newCacheShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show RESOURCE [NAME]",
		Short: "Show a cached document",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(commandContext(cmd), loadConfig())
			if err != nil {
				return err
			}

			defer func() { _ = app.Close() }()

			doc, ok := app.Resource(args[0]).Get(args[1:]...)
			if !ok {
				return fmt.Errorf("%w: %s", ErrNotCached, app.Resource(args[0]).Path(args[1:]...))
			}

			return renderData(cmd.OutOrStdout(), doc)
		},
	}
}

func newCacheFindCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "find RESOURCE KEY",
		Short: "Look up a top-level key of a cached document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(commandContext(cmd), loadConfig())
			if err != nil {
				return err
			}

			defer func() { _ = app.Close() }()

			cache := app.Resource(args[0])

			if _, ok := cache.Get(name); !ok {
				return fmt.Errorf("%w: %s", ErrNotCached, cache.Path(name))
			}

			value, ok := cache.Find(args[1])
			if !ok {
				return fmt.Errorf("%w: %s", ErrKeyNotFound, args[1])
			}

			return renderData(cmd.OutOrStdout(), value)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "cached variant name")

	return cmd
}
