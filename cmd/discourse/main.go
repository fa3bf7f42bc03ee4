package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Yorkel/AM1-topic-modelling/internal/analytics"
	"github.com/Yorkel/AM1-topic-modelling/internal/collect"
	"github.com/Yorkel/AM1-topic-modelling/internal/config"
	"github.com/Yorkel/AM1-topic-modelling/internal/corpus"
	"github.com/Yorkel/AM1-topic-modelling/internal/database"
	"github.com/Yorkel/AM1-topic-modelling/internal/export"
	"github.com/Yorkel/AM1-topic-modelling/internal/fetch"
	"github.com/Yorkel/AM1-topic-modelling/internal/pipeline"
	"github.com/Yorkel/AM1-topic-modelling/internal/report"
	"github.com/Yorkel/AM1-topic-modelling/internal/server"
)

var version = "dev"

var (
	verbose    bool
	configPath string
	cfg        *config.Config
)

// Filter selections shared by the analytics commands. Empty means the full
// domain of the loaded corpus.
var (
	filterOrgs    []string
	filterTopics  []string
	filterPeriods []string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "discourse",
	Short:   "Education policy discourse analytics",
	Long:    "Discourse aggregates a labeled corpus of education news into attention metrics, election rank shifts, and organisation focus, and stages new raw articles for labeling.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		} else {
			log.SetFlags(log.LstdFlags)
		}

		// Skip config loading for init and version
		if cmd.Name() == "init" || cmd.Name() == "version" {
			return nil
		}

		path, err := config.ResolveConfigPath(configPath)
		if err != nil {
			return err
		}
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(timeseriesCmd)
	rootCmd.AddCommand(heatmapCmd)
	rootCmd.AddCommand(articleCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(collectCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(refreshCmd)

	for _, cmd := range []*cobra.Command{statsCmd, timeseriesCmd, heatmapCmd, articleCmd, reportCmd} {
		cmd.Flags().StringSliceVar(&filterOrgs, "orgs", nil, "Organisations to include (default: all)")
		cmd.Flags().StringSliceVar(&filterTopics, "topics", nil, "Topics to include (default: all)")
		cmd.Flags().StringSliceVar(&filterPeriods, "periods", nil, "Election periods to include (default: all)")
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("discourse", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration in ~/.config/discourse/",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := filepath.Join(config.ConfigDir(), "config.yaml")
		if _, err := os.Stat(target); err == nil {
			fmt.Printf("Config already exists: %s\n", target)
			return nil
		}

		if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		if err := os.WriteFile(target, config.DefaultConfigYAML, 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Printf("Created config: %s\n", target)
		fmt.Println("Edit it to point at the labeled corpus and organisation feeds.")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show corpus and staging status",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Corpus:")
		store, err := corpus.Load(cfg.Corpus.Path)
		if err != nil {
			fmt.Printf("  Not loadable: %v\n", err)
		} else {
			fmt.Printf("  Records: %d\n", store.Len())
			fmt.Printf("  Organisations: %d\n", len(store.Sources()))
			fmt.Printf("  Topics: %d\n", len(store.Topics()))
			fmt.Printf("  Periods: %s\n", strings.Join(store.Periods(), ", "))
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		stats, err := db.GetStats()
		if err != nil {
			return fmt.Errorf("getting staging stats: %w", err)
		}

		fmt.Println("\nStaging:")
		fmt.Printf("  Collected: %d\n", stats.TotalArticles)
		fmt.Printf("  With content: %d\n", stats.WithContent)
		fmt.Printf("  Awaiting fetch: %d\n", stats.AwaitingFetch)
		fmt.Printf("  Exported for labeling: %d\n", stats.Exported)
		fmt.Printf("  Sources: %d\n", stats.DistinctSources)
		return nil
	},
}

// --- analytics commands ---

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show headline metrics, election shift, and top topics",
	RunE: func(cmd *cobra.Command, args []string) error {
		subset, err := loadSubset()
		if err != nil {
			return err
		}

		summary := analytics.Summarize(subset)
		fmt.Println("Agenda snapshot:")
		fmt.Printf("  Articles: %d\n", summary.Articles)
		fmt.Printf("  Topics: %d\n", summary.Topics)
		fmt.Printf("  Organisations: %d\n", summary.Organisations)

		fmt.Println("\nElection shift:")
		if shift := analytics.ComputeRankShift(subset); shift != nil {
			fmt.Printf("  Biggest riser: %s (%+d)\n", shift.Riser, shift.Change)
		} else {
			fmt.Println("  Insufficient data: need both pre_election and post_election articles")
		}

		counts := analytics.TopicCounts(subset)
		top := analytics.TopK(counts, cfg.Analytics.TableTopics)
		if len(top) > 0 {
			fmt.Println("\nTop topics:")
			for _, topic := range top {
				fmt.Printf("  %s: %d\n", topic, counts[topic])
			}
		}
		return nil
	},
}

var timeseriesCmd = &cobra.Command{
	Use:   "timeseries",
	Short: "Show topic attention over time (top topics only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		subset, err := loadSubset()
		if err != nil {
			return err
		}

		points := analytics.TimeSeries(subset, cfg.Analytics.ChartTopics)
		if len(points) == 0 {
			fmt.Println("No articles in the current selection.")
			return nil
		}
		for _, p := range points {
			fmt.Printf("%s  %-30s %d\n", p.Date.Format("2006-01"), p.Topic, p.Count)
		}
		return nil
	},
}

var heatmapCmd = &cobra.Command{
	Use:   "heatmap",
	Short: "Show article counts per organisation and topic",
	RunE: func(cmd *cobra.Command, args []string) error {
		subset, err := loadSubset()
		if err != nil {
			return err
		}

		cells := analytics.Heatmap(subset)
		if len(cells) == 0 {
			fmt.Println("No articles in the current selection.")
			return nil
		}
		for _, c := range cells {
			fmt.Printf("%-20s %-30s %d\n", c.Source, c.Topic, c.Count)
		}
		return nil
	},
}

var articleCmd = &cobra.Command{
	Use:   "article [topic] [article-id]",
	Short: "Print the cleaned text of one article",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		subset, err := loadSubset()
		if err != nil {
			return err
		}

		text, err := analytics.ArticleText(subset, args[0], args[1])
		if err != nil {
			return fmt.Errorf("article %s under topic %s: %w", args[1], args[0], err)
		}
		fmt.Println(text)
		return nil
	},
}

var reportOut string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write the markdown digest for the current selection",
	RunE: func(cmd *cobra.Command, args []string) error {
		subset, err := loadSubset()
		if err != nil {
			return err
		}

		digest := report.Compose(subset, reportParams())
		if reportOut == "" {
			fmt.Print(digest)
			return nil
		}
		if err := os.WriteFile(reportOut, []byte(digest), 0o644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Printf("Report written to %s\n", reportOut)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "Write the digest to a file instead of stdout")
}

// --- serve command ---

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local dashboard server",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := corpus.Load(cfg.Corpus.Path)
		if err != nil {
			return err
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}
		fmt.Printf("Serving %d records at http://localhost:%d\n", store.Len(), port)
		fmt.Println("Press Ctrl+C to stop")
		return server.Serve(store, reportParams(), port)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to run server on (default from config)")
}

// --- staging commands ---

var daysBack int

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Stage articles from configured organisation feeds",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		fmt.Println("Collecting articles from organisation feeds...")
		collector := collect.NewCollector(cfg, db, daysBack)
		result := collector.Collect()

		fmt.Println("\nCollection complete:")
		fmt.Printf("  Total found: %d\n", result.TotalFound)
		fmt.Printf("  New articles: %d\n", result.NewArticles)
		fmt.Printf("  Duplicates skipped: %d\n", result.Duplicates)

		if len(result.Sources) > 0 {
			fmt.Println("\nArticles by organisation:")
			counts := make(map[string]int, len(result.Sources))
			for k, v := range result.Sources {
				counts[k] = v
			}
			for _, name := range analytics.TopK(counts, len(counts)) {
				fmt.Printf("  %s: %d\n", name, counts[name])
			}
		}
		return nil
	},
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch full text for staged articles",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		fetcher := fetch.NewContentFetcher(db, 0)
		result := fetcher.FetchMissingContent()
		fmt.Printf("Fetched %d, failed %d\n", result.Fetched, result.Failed)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export staged articles as a labeling-ready CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		electionDate, err := time.Parse("2006-01-02", cfg.Analytics.ElectionDate)
		if err != nil {
			return fmt.Errorf("invalid election_date in config: %w", err)
		}

		exporter := export.New(db, exportDir(), electionDate)
		result, err := exporter.Export()
		if err != nil {
			return err
		}
		if result.Exported == 0 {
			fmt.Println("Nothing to export.")
			return nil
		}
		fmt.Printf("Exported %d rows to %s (%d skipped)\n", result.Exported, result.Path, result.Skipped)
		return nil
	},
}

var refreshDryRun bool

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Run the staging pipeline: collect -> fetch -> export",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		pipe := pipeline.New(cfg, db)

		var result *pipeline.Result
		if refreshDryRun {
			result = pipe.DryRun()
		} else {
			result = pipe.Run(daysBack, exportDir())
		}

		for i, step := range result.Steps {
			fmt.Printf("\nStep %d/%d: %s\n", i+1, len(result.Steps), step.Name)
			if step.Err != nil {
				fmt.Printf("  Error: %v\n", step.Err)
			} else {
				fmt.Printf("  %s\n", step.Summary)
			}
		}
		return nil
	},
}

func init() {
	collectCmd.Flags().IntVar(&daysBack, "days-back", 7, "Lookback window for feed entries (days)")
	refreshCmd.Flags().IntVar(&daysBack, "days-back", 7, "Lookback window for feed entries (days)")
	refreshCmd.Flags().BoolVar(&refreshDryRun, "dry-run", false, "Show what would be done without executing")
}

// --- helpers ---

// loadSubset loads the corpus and applies the filter flags. Absent flags
// select the full domain.
func loadSubset() ([]corpus.Record, error) {
	store, err := corpus.Load(cfg.Corpus.Path)
	if err != nil {
		return nil, err
	}

	sel := analytics.All(store)
	if len(filterOrgs) > 0 {
		sel.Sources = setOf(filterOrgs)
	}
	if len(filterTopics) > 0 {
		sel.Topics = setOf(filterTopics)
	}
	if len(filterPeriods) > 0 {
		sel.Periods = setOf(filterPeriods)
	}
	return analytics.Filter(store.Records(), sel), nil
}

func setOf(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.TrimSpace(v)] = struct{}{}
	}
	return set
}

func reportParams() report.Params {
	return report.Params{
		ChartTopics: cfg.Analytics.ChartTopics,
		TableTopics: cfg.Analytics.TableTopics,
	}
}

func exportDir() string {
	return filepath.Join(cfg.GetDataDir(), "export")
}

func openDB() (*database.DB, error) {
	dataDir := cfg.GetDataDir()
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	dbPath := filepath.Join(dataDir, "discourse.db")
	return database.Open(dbPath)
}
