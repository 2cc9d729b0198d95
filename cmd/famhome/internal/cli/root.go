// Package cli implements the famhome command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-famhome"
	"github.com/goliatone/go-famhome/internal/runtimeconfig"
)

type app struct {
	configPath string
	dbDSN      string
	verbose    bool

	cfg famhome.Config
}

// NewRootCommand builds the famhome command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "famhome",
		Short: "Parse, render and store family home pages",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := famhome.LoadConfig(a.configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if err := a.applyFlags(&cfg); err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file (defaults when missing)")
	root.PersistentFlags().StringVar(&a.dbDSN, "db", "", "sqlite file or postgres:// DSN for the family store")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log to stderr at debug level")

	root.AddCommand(a.parseCommand(), a.renderCommand(), a.familyCommand())
	return root
}

// Execute runs the root command against os.Args.
func Execute() error {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}

func (a *app) applyFlags(cfg *famhome.Config) error {
	if dsn := strings.TrimSpace(a.dbDSN); dsn != "" {
		cfg.Storage.DSN = dsn
		cfg.Storage.Driver = runtimeconfig.StorageDriverSQLite
		if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
			cfg.Storage.Driver = runtimeconfig.StorageDriverPostgres
		}
	}
	if a.verbose {
		cfg.Features.Logger = true
		cfg.Logging.Level = "debug"
	}
	return cfg.Validate()
}

func (a *app) module(opts ...famhome.Option) (*famhome.Module, error) {
	return famhome.New(a.cfg, opts...)
}

// readSource reads name, or stdin when name is "-".
func readSource(cmd *cobra.Command, name string) (string, error) {
	if name == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		return string(data), err
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
