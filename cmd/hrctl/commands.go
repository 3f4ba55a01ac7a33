package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"hrconsole/internal/app"
	"hrconsole/internal/config"
	"hrconsole/internal/source"
	"hrconsole/internal/views"
)

type globalFlags struct {
	configDir string
	dataDir   string
	offline   bool
}

func newRootCmd(out io.Writer) *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:           "hrctl",
		Short:         "Inspect and refresh the HR console sheet cache",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&g.configDir, "config", "", "directory holding config.toml and .env (default: executable directory)")
	root.PersistentFlags().StringVar(&g.dataDir, "data-dir", "", "data directory (overrides config)")
	root.PersistentFlags().BoolVar(&g.offline, "offline", false, "read the saved snapshot without fetching")

	root.AddCommand(
		newRefreshCmd(g),
		newShowCmd(g),
		newStepCmd(g),
		newExportCmd(g),
		newImportCmd(g),
		newConfigCmd(g),
	)
	return root
}

func (g *globalFlags) load() (*config.AppConfig, string, error) {
	var (
		cfg  *config.AppConfig
		info config.LoadConfigInfo
		err  error
	)
	if g.configDir != "" {
		cfg, info, err = config.LoadConfigFrom(g.configDir)
	} else {
		cfg, info, err = config.LoadConfigWithInfo()
	}
	if err != nil {
		return nil, "", err
	}
	if g.dataDir != "" {
		cfg.Data.DataDir = g.dataDir
	}
	return cfg, info.Dir, nil
}

// open builds the app and loads the saved snapshot. Unless offline, the
// cache is then refreshed when it is cold or stale.
func (g *globalFlags) open(ctx context.Context, opts ...app.Option) (*app.App, error) {
	cfg, baseDir, err := g.load()
	if err != nil {
		return nil, err
	}
	a, err := app.New(cfg, baseDir, opts...)
	if err != nil {
		return nil, err
	}
	if err := a.Cache.Open(ctx); err != nil {
		a.Log.Warn("[hrctl] saved snapshot unreadable: %v", err)
	}
	if !g.offline {
		if err := a.Cache.Refresh(ctx, false); err != nil {
			_ = a.Close()
			return nil, err
		}
	}
	return a, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newRefreshCmd(g *globalFlags) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Fetch every sheet and save the snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, baseDir, err := g.load()
			if err != nil {
				return err
			}
			a, err := app.New(cfg, baseDir)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Cache.Open(ctx); err != nil {
				a.Log.Warn("[hrctl] saved snapshot unreadable: %v", err)
			}
			if err := a.Cache.Refresh(ctx, force); err != nil {
				return fmt.Errorf("refresh failed: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), a.Cache.Status())
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "fetch even when the snapshot is fresh")
	return cmd
}

func newShowCmd(g *globalFlags) *cobra.Command {
	var (
		raw   bool
		query string
	)
	cmd := &cobra.Command{
		Use:   "show <sheet>",
		Short: "Print the records of a sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if raw {
				table, err := a.Views.Raw(args[0])
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), table)
			}
			records, err := a.Views.Records(args[0], query)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), records)
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print the table as fetched")
	cmd.Flags().StringVarP(&query, "query", "q", "", "keep records matching this text")
	return cmd
}

func newStepCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "step <sheet> <step>",
		Short: "Print the pending, history and unclassified records of a workflow step",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			page, err := a.Views.Step(args[0], args[1])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), page)
		},
	}
}

func newExportCmd(g *globalFlags) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export <sheet>",
		Short: "Write the records of a sheet to an xlsx file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			records, err := a.Views.Records(args[0], "")
			if err != nil {
				return err
			}
			f, err := views.ExportRecords(a.Registry.MustSheet(args[0]), records)
			if err != nil {
				return err
			}
			defer f.Close()

			if output == "" {
				output = filepath.Join(a.DataDir, "exports", views.ExportFileName(args[0]))
			}
			if err := f.SaveAs(output); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d records written to %s\n", len(records), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <data>/exports/<sheet>-<id>.xlsx)")
	return cmd
}

func newImportCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.xlsx>",
		Short: "Load every sheet from a workbook into the saved snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); os.IsNotExist(err) {
				return fmt.Errorf("file not found: %s", path)
			}
			wb, err := source.OpenWorkbook(path)
			if err != nil {
				return err
			}
			defer wb.Close()

			cfg, baseDir, err := g.load()
			if err != nil {
				return err
			}
			a, err := app.New(cfg, baseDir, app.WithSource(wb))
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Cache.FetchAll(cmd.Context()); err != nil {
				return fmt.Errorf("import failed: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), a.Cache.Status())
		},
	}
}

func newConfigCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := g.load()
			if err != nil {
				return err
			}
			data, err := config.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
