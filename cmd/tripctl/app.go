package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pkordes/trip-checklist/internal/catalog"
	"github.com/pkordes/trip-checklist/internal/checklist"
	"github.com/pkordes/trip-checklist/internal/config"
	"github.com/pkordes/trip-checklist/internal/repo"
	"github.com/pkordes/trip-checklist/internal/service"
)

// app holds the services every subcommand works on. It is built once per
// invocation, in the root command's PersistentPreRunE.
type app struct {
	out io.Writer

	// flag values; empty means "use the environment".
	driver     string
	dataDir    string
	catalogDir string
	verbose    bool

	store   repo.BlobStore
	trips   *service.TripService
	catalog *service.CatalogService
	export  *service.ExportService
	close   func()
}

func newApp(out io.Writer) *app {
	return &app{out: out, close: func() {}}
}

// execute runs the command line args and releases the store whether or not
// the command succeeded.
func (a *app) execute(args []string) error {
	defer a.Close()
	root := newRootCmd(a)
	root.SetArgs(args)
	return root.Execute()
}

// Close releases the store opened for this invocation. Safe to call twice.
func (a *app) Close() {
	a.close()
	a.close = func() {}
}

func newRootCmd(a *app) *cobra.Command {

	root := &cobra.Command{
		Use:           "tripctl",
		Short:         "Plan trips and tick off their packing checklists",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd.Context())
		},
	}
	root.SetOut(a.out)

	flags := root.PersistentFlags()
	flags.StringVar(&a.driver, "driver", "", "storage driver: file, sqlite, postgres, memory (default $STORAGE_DRIVER or file)")
	flags.StringVar(&a.dataDir, "data-dir", "", "data directory (default $DATA_DIR or ./data)")
	flags.StringVar(&a.catalogDir, "catalog-dir", "", "catalog override directory (default $CATALOG_DIR)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		typesCmd(a),
		categoriesCmd(a),
		listCmd(a),
		showCmd(a),
		createCmd(a),
		renameCmd(a),
		deleteCmd(a),
		checkCmd(a),
		starCmd(a),
		addItemCmd(a),
		removeItemCmd(a),
		progressCmd(a),
		exportCmd(a),
		resetCmd(a),
	)
	return root
}

// open resolves configuration (flags over environment) and builds the services.
func (a *app) open(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.driver != "" {
		cfg.StorageDriver = a.driver
	}
	if a.dataDir != "" {
		cfg.DataDir = a.dataDir
	}
	if a.catalogDir != "" {
		cfg.CatalogDir = a.catalogDir
	}

	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cat, err := catalog.Open(cfg.CatalogDir)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	store, closeStore, err := repo.OpenStore(ctx, repo.StoreConfig{
		Driver:      cfg.StorageDriver,
		DataDir:     cfg.DataDir,
		DatabaseURL: cfg.DatabaseURL,
	})
	if err != nil {
		return err
	}
	a.store = store
	a.close = closeStore

	a.trips = service.NewTripService(repo.NewTripRepo(store), checklist.NewGenerator(cat), service.WithLogger(logger))
	a.trips.Load(ctx)
	a.catalog = service.NewCatalogService(cat)
	a.export = service.NewExportService(a.trips)
	return nil
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
