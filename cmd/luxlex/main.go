// Command luxlex discovers, ingests, and serves Luxembourg legislation.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/coolbeans/luxlex/pkg/cite"
	"github.com/coolbeans/luxlex/pkg/config"
	"github.com/coolbeans/luxlex/pkg/ingest"
	"github.com/coolbeans/luxlex/pkg/legilux"
	"github.com/coolbeans/luxlex/pkg/server"
	"github.com/coolbeans/luxlex/pkg/store"
	"github.com/coolbeans/luxlex/pkg/tools"
	"github.com/coolbeans/luxlex/pkg/watch"
)

var version = "0.1.0"

var (
	configPath string
	debug      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "luxlex",
		Short: "Luxembourg legislation toolkit",
		Long: `Luxlex ingests Luxembourg legislative acts from the public Legilux
service into a local queryable store and exposes citation tools over
HTTP and stdio.

Typical flow:
  luxlex discover            # build the act index from the SPARQL endpoint
  luxlex fetch               # download XML bodies into seed artifacts
  luxlex build               # parse, deduplicate, and populate the store
  luxlex serve               # expose the query tools`,
		Version: version,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(discoverCmd())
	rootCmd.AddCommand(fetchCmd())
	rootCmd.AddCommand(buildCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(citeCmd())
	rootCmd.AddCommand(searchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if cfg.Debug {
		debug = true
	}
	return cfg, nil
}

func newLogger() (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func discoverCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "discover",
		Short: "Discover acts via the SPARQL endpoint and write the law index",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, cancel := signalContext()
			defer cancel()

			pacer := legilux.NewPacer(cfg.Discovery.RequestDelay())
			client := legilux.NewClient(cfg.Discovery.Endpoint, cfg.Discovery.PageSize, pacer, logger)
			entries, err := client.Discover(ctx, cfg.Discovery.Categories)
			if err != nil {
				return err
			}

			indexPath := cfg.Storage.IndexPath
			if err := os.MkdirAll(filepath.Dir(indexPath), 0o755); err != nil {
				return err
			}
			data, err := json.MarshalIndent(entries, "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(indexPath, data, 0o644); err != nil {
				return err
			}

			fmt.Printf("Discovered %d acts -> %s\n", len(entries), indexPath)
			return nil
		},
	}
}

func fetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch XML bodies for discovered acts into seed artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			overwrite, _ := cmd.Flags().GetBool("overwrite")

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, cancel := signalContext()
			defer cancel()

			data, err := os.ReadFile(cfg.Storage.IndexPath)
			if err != nil {
				return fmt.Errorf("read law index (run discover first): %w", err)
			}
			var entries []legilux.LawIndexEntry
			if err := json.Unmarshal(data, &entries); err != nil {
				return fmt.Errorf("parse law index: %w", err)
			}

			seeds, err := legilux.NewSeedStore(cfg.Storage.SeedDirectory)
			if err != nil {
				return err
			}
			pacer := legilux.NewPacer(cfg.Discovery.RequestDelay())
			fetcher := legilux.NewFetcher(pacer, logger)

			report, err := legilux.FetchAll(ctx, fetcher, seeds, entries, overwrite, logger)
			if err != nil {
				return err
			}

			fmt.Printf("Fetched %d, skipped %d, failed %d (of %d)\n",
				report.Fetched, report.Skipped, report.Failed, report.Attempted)
			for _, failedID := range report.FailedIDs {
				fmt.Printf("  failed: %s\n", failedID)
			}
			return nil
		},
	}
	cmd.Flags().Bool("overwrite", false, "re-fetch acts whose seed artifact already exists")
	return cmd
}

func buildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the corpus database from seed artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			watchMode, _ := cmd.Flags().GetBool("watch")

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, cancel := signalContext()
			defer cancel()

			seeds, err := legilux.NewSeedStore(cfg.Storage.SeedDirectory)
			if err != nil {
				return err
			}
			db, err := store.Open(cfg.Storage.DatabasePath)
			if err != nil {
				return err
			}
			defer db.Close()

			runBuild := func(ctx context.Context) error {
				pipeline := ingest.New(seeds, db, logger)
				report, err := pipeline.Run(ctx)
				if err != nil {
					return err
				}
				printBuildReport(report)
				return nil
			}

			if err := runBuild(ctx); err != nil {
				return err
			}
			if !watchMode {
				return nil
			}

			watcher := watch.New(cfg.Storage.SeedDirectory, runBuild, logger)
			err = watcher.Run(ctx)
			if err == context.Canceled {
				return nil
			}
			return err
		},
	}
	cmd.Flags().Bool("watch", false, "rebuild whenever seed artifacts change")
	return cmd
}

func printBuildReport(report *ingest.Report) {
	fmt.Printf("Build %s\n", report.BuildID)
	fmt.Printf("  seeds processed:   %d\n", report.SeedsProcessed)
	fmt.Printf("  documents:         %d\n", report.Documents)
	fmt.Printf("  provisions:        %d (duplicates %d, conflicts %d)\n",
		report.Provisions, report.DuplicateRefs, report.Conflicts)
	fmt.Printf("  definitions:       %d\n", report.Definitions)
	fmt.Printf("  EU references:     %d (%d documents)\n", report.EUReferences, report.EUDocuments)
	fmt.Printf("  parse failures:    %d\n", report.ParseFailures)
	fmt.Printf("  empty documents:   %d\n", report.NoContent)
	for _, failedID := range report.FailedIDs {
		fmt.Printf("  failed: %s\n", failedID)
	}
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the query tools over HTTP or stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			transport, _ := cmd.Flags().GetString("transport")

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, cancel := signalContext()
			defer cancel()

			db, err := store.Open(cfg.Storage.DatabasePath)
			if err != nil {
				return err
			}
			defer db.Close()

			registry := tools.NewRegistry(db, logger)

			switch transport {
			case "stdio":
				err := server.RunStdio(ctx, registry, os.Stdin, os.Stdout, logger)
				if err == context.Canceled {
					return nil
				}
				return err
			case "http":
				srv := server.New(registry, cfg.Server.Addr(), logger)
				go func() {
					<-ctx.Done()
					_ = srv.Stop(context.Background())
				}()
				err := srv.Start()
				if err == nil || ctx.Err() != nil {
					return nil
				}
				return err
			default:
				return fmt.Errorf("unknown transport %q (want http or stdio)", transport)
			}
		},
	}
	cmd.Flags().String("transport", "http", "transport to serve on: http or stdio")
	return cmd
}

func citeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cite [parse|validate|format] <citation>",
		Short: "Parse, validate, or format a legal citation",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			style, _ := cmd.Flags().GetString("style")
			operation := args[0]
			citationText := args[1]

			switch operation {
			case "parse":
				return printJSON(cite.Parse(citationText))

			case "format":
				parsed := cite.Parse(citationText)
				if !parsed.Valid {
					return fmt.Errorf("cannot format: %s", parsed.Err)
				}
				fmt.Println(cite.Format(parsed, style))
				return nil

			case "validate":
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				logger, err := newLogger()
				if err != nil {
					return err
				}
				defer logger.Sync()

				db, err := store.Open(cfg.Storage.DatabasePath)
				if err != nil {
					return err
				}
				defer db.Close()

				registry := tools.NewRegistry(db, logger)
				params, _ := json.Marshal(map[string]string{"citation": citationText})
				result, err := registry.Call(cmd.Context(), "validate_citation", params)
				if err != nil {
					return err
				}
				return printJSON(result)

			default:
				return fmt.Errorf("unknown cite operation %q (want parse, validate, or format)", operation)
			}
		},
	}
	cmd.Flags().String("style", cite.StyleFull, "output style: full, short, or pinpoint")
	return cmd
}

func searchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Full-text search over provision content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := store.Open(cfg.Storage.DatabasePath)
			if err != nil {
				return err
			}
			defer db.Close()

			results, err := db.SearchProvisions(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			for _, result := range results {
				fmt.Printf("%s %s  %s\n  %s\n", result.DocumentID, result.ProvisionRef,
					result.DocumentTitle, result.Snippet)
			}
			fmt.Printf("%d results\n", len(results))
			return nil
		},
	}
	cmd.Flags().Int("limit", 20, "maximum number of results")
	return cmd
}

func printJSON(value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
