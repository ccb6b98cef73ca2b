package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/hupe1980/newsclust"
	"github.com/hupe1980/newsclust/blobstore"
	"github.com/hupe1980/newsclust/config"
	"github.com/hupe1980/newsclust/model"
	"github.com/hupe1980/newsclust/report"
	"github.com/hupe1980/newsclust/resource"
	"github.com/hupe1980/newsclust/source"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Load sources, cluster them and print the report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().Int("k", 0, "Number of clusters (overrides cluster.k)")
	cmd.Flags().String("format", "", "Output format: table, text, json, yaml, csv (overrides output.format)")
	cmd.Flags().String("publish", "", "Publish the report under this name prefix (overrides output.publish)")
	cmd.Flags().StringSlice("source", nil, "Source blob to load, repeatable (replaces sources)")
	cmd.Flags().String("store", "", "Local store directory (overrides store.path and selects the local backend)")
	return cmd
}

// loadConfig reads the config file named by --config and applies the
// command's flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Lookup("k") == nil {
		return cfg, nil
	}
	if flags.Changed("k") {
		cfg.Cluster.K, _ = flags.GetInt("k")
	}
	if flags.Changed("format") {
		cfg.Output.Format, _ = flags.GetString("format")
	}
	if flags.Changed("publish") {
		cfg.Output.Publish, _ = flags.GetString("publish")
	}
	if flags.Changed("source") {
		names, _ := flags.GetStringSlice("source")
		cfg.Sources = make([]config.SourceConfig, len(names))
		for i, n := range names {
			cfg.Sources[i] = config.SourceConfig{Name: n}
		}
	}
	if flags.Changed("store") {
		cfg.Store.Backend = config.BackendLocal
		cfg.Store.Path, _ = flags.GetString("store")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, w io.Writer) (*newsclust.Logger, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Log.Format, "json") {
		return newsclust.NewLogger(slog.NewJSONHandler(w, opts)), nil
	}
	return newsclust.NewLogger(slog.NewTextHandler(w, opts)), nil
}

func run(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer) error {
	logger, err := newLogger(cfg, stderr)
	if err != nil {
		return err
	}
	metrics := &newsclust.BasicMetricsCollector{}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	format, err := cfg.SourceFormat()
	if err != nil {
		return err
	}

	loader := source.NewLoader(store, cfg.Labels(),
		source.WithFormat(format),
		source.WithController(resource.NewController(cfg.ResourceConfig())),
		source.WithExclude(cfg.Output.Publish),
		source.WithObserver(func(name string, stats source.Stats, records int, d time.Duration, err error) {
			logger.LogLoad(ctx, name, records, stats.Skipped, err)
			metrics.RecordLoad(name, records, stats.Skipped, d, err)
		}),
	)

	names := cfg.SourceNames()
	if len(names) == 0 {
		if names, err = loader.Discover(ctx, cfg.Input.Prefix); err != nil {
			return fmt.Errorf("discover sources: %w", err)
		}
	}

	records, err := loader.Load(ctx, names)
	if err != nil {
		return err
	}

	opts, err := cfg.ClusterOptions()
	if err != nil {
		return err
	}
	opts = append(opts, newsclust.WithLogger(logger), newsclust.WithMetricsCollector(metrics))

	clusterer, err := newsclust.New(opts...)
	if err != nil {
		return err
	}

	res, err := clusterer.ClusterValues(ctx, model.Values(records))
	if err != nil {
		return err
	}

	rep, err := report.Build(records, res)
	if err != nil {
		return err
	}

	if err := render(stdout, rep, cfg.Output.Format); err != nil {
		return err
	}

	if cfg.Output.Publish != "" {
		if err := publish(ctx, store, cfg, rep, logger, metrics); err != nil {
			return err
		}
	}

	stats := metrics.GetStats()
	logger.DebugContext(ctx, "run complete",
		slog.Int64("sources", stats.LoadCount),
		slog.Int64("records", stats.LoadRecords),
		slog.Int64("skipped", stats.LoadSkipped),
	)
	return nil
}

func render(w io.Writer, rep *report.Report, format string) error {
	if format == "" || strings.EqualFold(format, "table") {
		return renderTable(w, rep)
	}
	f, err := report.ParseFormat(format)
	if err != nil {
		return err
	}
	return report.Encode(w, rep, f)
}

func publish(ctx context.Context, store blobstore.BlobStore, cfg *config.Config, rep *report.Report, logger *newsclust.Logger, metrics newsclust.MetricsCollector) error {
	f, err := report.ParseFormat(cfg.Output.PublishFormat)
	if err != nil {
		return err
	}

	name := cfg.Output.Publish + time.Now().UTC().Format("20060102T150405.000000000Z") + f.Extension()

	start := time.Now()
	size, err := report.Publish(ctx, store, name, rep, f)
	metrics.RecordPublish(size, time.Since(start), err)
	logger.LogPublish(ctx, name, size, err)
	return err
}

func renderTable(w io.Writer, rep *report.Report) error {
	data := pterm.TableData{{"Cluster", "Centroid", "Size", "Min", "Max", "Sources"}}
	for _, c := range rep.Clusters {
		var labels []string
		for _, l := range c.Labels {
			labels = append(labels, fmt.Sprintf("%s=%d", l.Label, l.Count))
		}
		data = append(data, []string{
			fmt.Sprint(c.Index),
			formatCentroid(c.Centroid),
			fmt.Sprint(c.Size),
			fmt.Sprint(c.Min),
			fmt.Sprint(c.Max),
			strings.Join(labels, " "),
		})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "%d observations, k=%d, %s after %d iterations\n\n%s\n",
		len(rep.Rows), rep.K, rep.State, rep.Iterations, table)
	return err
}

func formatCentroid(c []float64) string {
	parts := make([]string, len(c))
	for i, v := range c {
		parts[i] = fmt.Sprintf("%.2f", v)
	}
	return strings.Join(parts, ",")
}
