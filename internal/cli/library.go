package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	pkgerrors "github.com/mhartig/photogrid/pkg/errors"
	"github.com/mhartig/photogrid/pkg/store"
)

// libraryCommand creates the library management command.
func (c *CLI) libraryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "library",
		Short: "Manage stored photo libraries",
	}

	cmd.AddCommand(c.libraryListCommand())
	cmd.AddCommand(c.librarySaveCommand())
	cmd.AddCommand(c.libraryShowCommand())
	cmd.AddCommand(c.libraryRemoveCommand())

	return cmd
}

// withStore opens the configured store, runs fn, and closes it.
func (c *CLI) withStore(ctx context.Context, fn func(store.Store) error) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	st, err := c.newStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close(ctx)
	return fn(st)
}

// libraryListCommand creates the "library list" subcommand.
func (c *CLI) libraryListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored library names",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(st store.Store) error {
				names, err := st.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(names) == 0 {
					printInfo("No libraries stored")
					return nil
				}
				for _, name := range names {
					fmt.Println(name)
				}
				return nil
			})
		},
	}
}

// librarySaveCommand creates the "library save" subcommand.
func (c *CLI) librarySaveCommand() *cobra.Command {
	var fromBucket bool

	cmd := &cobra.Command{
		Use:   "save <name> [photos.json]",
		Short: "Save a photo set as a named library",
		Long: `Save a photo set as a named library.

Photos come from a JSON file (or stdin with "-"), or from the
configured bucket with --bucket. Saving over an existing name replaces
that library's photos.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := pkgerrors.ValidateLibraryName(name); err != nil {
				return err
			}

			source := sourceFlags{bucket: fromBucket}
			if len(args) > 1 {
				source.file = args[1]
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			src, err := c.newSource(cfg, source, false)
			if err != nil {
				return err
			}
			photos, err := src.ListPhotos(cmd.Context())
			if err != nil {
				return err
			}

			return c.withStore(cmd.Context(), func(st store.Store) error {
				lib, err := st.GetByName(cmd.Context(), name)
				switch {
				case errors.Is(err, store.ErrNotFound):
					lib = store.NewLibrary(name, photos)
				case err != nil:
					return err
				default:
					lib.Photos = photos
				}
				if err := st.Set(cmd.Context(), lib); err != nil {
					return err
				}
				printSuccess("Saved library %q", name)
				printDetail("%d photos", len(photos))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&fromBucket, "bucket", false, "save the configured bucket's photos")

	return cmd
}

// libraryShowCommand creates the "library show" subcommand.
func (c *CLI) libraryShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print a library's photos as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(st store.Store) error {
				lib, err := st.GetByName(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(lib.Photos)
			})
		},
	}
}

// libraryRemoveCommand creates the "library rm" subcommand.
func (c *CLI) libraryRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>",
		Short: "Remove a stored library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(st store.Store) error {
				lib, err := st.GetByName(cmd.Context(), args[0])
				if errors.Is(err, store.ErrNotFound) {
					printWarning("No library named %q", args[0])
					return nil
				}
				if err != nil {
					return err
				}
				if err := st.Delete(cmd.Context(), lib.ID); err != nil {
					return err
				}
				printSuccess("Removed library %q", args[0])
				return nil
			})
		},
	}
}
