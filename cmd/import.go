package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zjrosen/defreg/internal/config"
	"github.com/zjrosen/defreg/internal/infrastructure/sqlite"
	"github.com/zjrosen/defreg/internal/source"
)

var (
	importDB       string
	importName     string
	importAccess   string
	importRegister bool
)

var importCmd = &cobra.Command{
	Use:   "import <dir>",
	Short: "Copy a source directory into a sqlite source database",
	Long: `Copy every definition source under a directory into a sqlite database.
Unchanged sources are skipped. With --register the database is added to the
sources in the config file.

Examples:
  defreg import ./components --db sources.db
  defreg import ./components --db sources.db --access internal --register`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importDB, "db", "sources.db", "sqlite database to write")
	importCmd.Flags().StringVar(&importName, "name", "", "source name (default: derived from the database file)")
	importCmd.Flags().StringVar(&importAccess, "access", string(source.Internal), `namespace access: "internal" or "custom"`)
	importCmd.Flags().BoolVar(&importRegister, "register", false, "add the database to the config file's sources")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	na, err := source.ParseNamespaceAccess(importAccess)
	if err != nil {
		return err
	}
	sc := config.SourceConfig{Name: importName, Kind: config.KindSQLite, Path: importDB, Access: string(na)}

	db, err := sqlite.NewDB(importDB)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	from := source.NewDirLoader("import:"+filepath.Base(args[0]), args[0], na)
	written, err := db.SourceStore(sc.LoaderName(), na).Import(cmd.Context(), from)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %d sources into %s\n", written, importDB)

	if !importRegister {
		return nil
	}
	added, err := config.AddSource(configPath(), cfg.Sources, sc)
	if err != nil {
		return fmt.Errorf("registering source: %w", err)
	}
	if added {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added source %s to %s\n", sc.LoaderName(), configPath())
	}
	return nil
}
