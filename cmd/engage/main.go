package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/blackmichael/reshare-bot/internal/config"
	"github.com/blackmichael/reshare-bot/internal/domain"
	"github.com/blackmichael/reshare-bot/internal/engage"
	"github.com/blackmichael/reshare-bot/internal/ledger"
	"github.com/blackmichael/reshare-bot/internal/twitter"
)

var (
	query      string
	count      int
	lang       string
	resultType string
	verbose    bool
	dryRun     bool
)

var rootCmd = &cobra.Command{
	Use:   "engage",
	Short: "Reshare and favorite eligible posts matching a search",
	Long: `engage runs a single engagement pass: it searches recent posts,
filters them through the eligibility policy and the account's recent reshares,
then reshares and favorites every post that qualifies.

Configuration is read from the environment (and a .env file); flags override
the search parameters.`,
	SilenceUsage: true,
	RunE:         runEngage,
}

func init() {
	rootCmd.Flags().StringVarP(&query, "query", "q", "", "Search query (or set SEARCH_QUERY)")
	rootCmd.Flags().IntVar(&count, "count", 0, "Number of posts to fetch (or set SEARCH_COUNT)")
	rootCmd.Flags().StringVar(&lang, "lang", "", "Restrict results to a language (or set SEARCH_LANG)")
	rootCmd.Flags().StringVar(&resultType, "result-type", "", "recent, popular or mixed (or set SEARCH_RESULT_TYPE)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log pipeline traces")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Evaluate posts without resharing or favoriting")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runEngage(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := cfg.LogLevel
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	search := applyFlags(cfg.Search)
	if search.Query == "" {
		return fmt.Errorf("--query is required (or set SEARCH_QUERY)")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sink := engage.NewLogSink(logger, cfg.TraceNamespace)

	var client domain.Client = twitter.NewClient(cfg.APIBaseURL, cfg.APIBearerToken, cfg.APITimeout)
	if dryRun {
		client = engage.DryRun(client, sink)
	}

	opts := []engage.Option{engage.WithLogger(logger)}
	l, err := ledger.Open(cfg.StoreDriver, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	if l != nil {
		defer l.Close()
		if !dryRun {
			opts = append(opts, engage.WithLedger(l))
		}
	}

	bot := engage.NewBot(client, sink, cfg.AccountHandle, cfg.Policy, opts...)
	return bot.Run(ctx, search.Params())
}

func applyFlags(s domain.SearchParams) domain.SearchParams {
	if query != "" {
		s.Query = query
	}
	if count > 0 {
		s.Count = count
	}
	if lang != "" {
		s.Lang = lang
	}
	if resultType != "" {
		s.ResultType = resultType
	}
	return s
}

