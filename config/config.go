package config

import (
	"bytes"
	"log/slog"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/hupe1980/newsclust"
	"github.com/hupe1980/newsclust/report"
	"github.com/hupe1980/newsclust/resource"
	"github.com/hupe1980/newsclust/source"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "NEWSCLUST"

// Store backends.
const (
	BackendLocal  = "local"
	BackendMemory = "memory"
	BackendS3     = "s3"
	BackendMinio  = "minio"
)

// Config is the full CLI configuration.
type Config struct {
	Cluster   ClusterConfig   `mapstructure:"cluster" yaml:"cluster" toml:"cluster"`
	Sources   []SourceConfig  `mapstructure:"sources" yaml:"sources" toml:"sources"`
	Input     InputConfig     `mapstructure:"input" yaml:"input" toml:"input"`
	Store     StoreConfig     `mapstructure:"store" yaml:"store" toml:"store"`
	Resources ResourcesConfig `mapstructure:"resources" yaml:"resources" toml:"resources"`
	Output    OutputConfig    `mapstructure:"output" yaml:"output" toml:"output"`
	Log       LogConfig       `mapstructure:"log" yaml:"log" toml:"log"`
}

// ClusterConfig holds the k-means parameters.
type ClusterConfig struct {
	K             int     `mapstructure:"k" yaml:"k" toml:"k"`
	MaxIterations int     `mapstructure:"max_iterations" yaml:"max_iterations" toml:"max_iterations"`
	Tolerance     float64 `mapstructure:"tolerance" yaml:"tolerance" toml:"tolerance"`
	// EmptyCluster is "zero" or "keep".
	EmptyCluster string `mapstructure:"empty_cluster" yaml:"empty_cluster" toml:"empty_cluster"`
}

// SourceConfig names one source blob and its display label.
type SourceConfig struct {
	Name  string `mapstructure:"name" yaml:"name" toml:"name"`
	Label string `mapstructure:"label" yaml:"label" toml:"label"`
}

// InputConfig describes the layout of source files.
type InputConfig struct {
	// Discover lists the store under Prefix when no sources are configured.
	Prefix      string `mapstructure:"prefix" yaml:"prefix" toml:"prefix"`
	Comma       string `mapstructure:"comma" yaml:"comma" toml:"comma"`
	LikesColumn int    `mapstructure:"likes_column" yaml:"likes_column" toml:"likes_column"`
	Header      bool   `mapstructure:"header" yaml:"header" toml:"header"`
	// RowPolicy is "abort" or "skip".
	RowPolicy string `mapstructure:"row_policy" yaml:"row_policy" toml:"row_policy"`
}

// StoreConfig selects and configures the blob store.
type StoreConfig struct {
	Backend string `mapstructure:"backend" yaml:"backend" toml:"backend"`
	// Path is the root directory of the local backend.
	Path     string `mapstructure:"path" yaml:"path" toml:"path"`
	Bucket   string `mapstructure:"bucket" yaml:"bucket" toml:"bucket"`
	Prefix   string `mapstructure:"prefix" yaml:"prefix" toml:"prefix"`
	Region   string `mapstructure:"region" yaml:"region" toml:"region"`
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint" toml:"endpoint"`
	// AccessKey and SecretKey are used by the minio backend.
	AccessKey string `mapstructure:"access_key" yaml:"access_key" toml:"access_key"`
	SecretKey string `mapstructure:"secret_key" yaml:"-" toml:"-"`
	Secure    bool   `mapstructure:"secure" yaml:"secure" toml:"secure"`
	// LedgerTable enables the DynamoDB LATEST ledger on the s3 backend.
	LedgerTable string `mapstructure:"ledger_table" yaml:"ledger_table" toml:"ledger_table"`
}

// ResourcesConfig bounds source loading.
type ResourcesConfig struct {
	MaxConcurrentLoads int64 `mapstructure:"max_concurrent_loads" yaml:"max_concurrent_loads" toml:"max_concurrent_loads"`
	MemoryLimitBytes   int64 `mapstructure:"memory_limit_bytes" yaml:"memory_limit_bytes" toml:"memory_limit_bytes"`
	IOLimitBytesPerSec int64 `mapstructure:"io_limit_bytes_per_sec" yaml:"io_limit_bytes_per_sec" toml:"io_limit_bytes_per_sec"`
}

// OutputConfig controls how results are shown and published.
type OutputConfig struct {
	// Format is "table" or a report format (text, json, yaml, csv).
	Format string `mapstructure:"format" yaml:"format" toml:"format"`
	// Publish is the report name prefix in the store. Empty disables publishing.
	Publish string `mapstructure:"publish" yaml:"publish" toml:"publish"`
	// PublishFormat is the report format of published reports.
	PublishFormat string `mapstructure:"publish_format" yaml:"publish_format" toml:"publish_format"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level" toml:"level"`
	Format string `mapstructure:"format" yaml:"format" toml:"format"`
}

// SetDefaults configures default values for all configuration options.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("cluster.k", newsclust.DefaultK)
	v.SetDefault("cluster.max_iterations", newsclust.DefaultMaxIterations)
	v.SetDefault("cluster.tolerance", newsclust.DefaultTolerance)
	v.SetDefault("cluster.empty_cluster", "zero")

	labels := source.DefaultLabels()
	defaults := make([]map[string]any, 0, len(labels))
	for _, name := range []string{"al_jazeera.csv", "bbc.csv", "cnn.csv", "reuters.csv"} {
		defaults = append(defaults, map[string]any{"name": name, "label": labels[name]})
	}
	v.SetDefault("sources", defaults)

	v.SetDefault("input.prefix", "")
	v.SetDefault("input.comma", ",")
	v.SetDefault("input.likes_column", 1)
	v.SetDefault("input.header", true)
	v.SetDefault("input.row_policy", "abort")

	v.SetDefault("store.backend", BackendLocal)
	v.SetDefault("store.path", ".")
	v.SetDefault("store.bucket", "")
	v.SetDefault("store.prefix", "")
	v.SetDefault("store.region", "")
	v.SetDefault("store.endpoint", "")
	v.SetDefault("store.access_key", "")
	v.SetDefault("store.secret_key", "")
	v.SetDefault("store.secure", true)
	v.SetDefault("store.ledger_table", "")

	v.SetDefault("resources.max_concurrent_loads", resource.DefaultMaxConcurrentLoads)
	v.SetDefault("resources.memory_limit_bytes", 0)
	v.SetDefault("resources.io_limit_bytes_per_sec", 0)

	v.SetDefault("output.format", "table")
	v.SetDefault("output.publish", "")
	v.SetDefault("output.publish_format", "json")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// NewViper returns a Viper instance with defaults and environment binding.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// Load reads the configuration. path may be empty, in which case only
// defaults and the environment apply.
func Load(path string) (*Config, error) {
	v := NewViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config file %s", path)
		}
	}
	return LoadWithViper(v)
}

// LoadWithViper unmarshals and validates the configuration held by v.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Cluster.K <= 0 {
		return errors.Newf("cluster.k must be > 0, got %d", c.Cluster.K)
	}
	if c.Cluster.MaxIterations <= 0 {
		return errors.Newf("cluster.max_iterations must be > 0, got %d", c.Cluster.MaxIterations)
	}
	if !(c.Cluster.Tolerance > 0) || math.IsInf(c.Cluster.Tolerance, 0) {
		return errors.Newf("cluster.tolerance must be a positive number, got %v", c.Cluster.Tolerance)
	}
	if _, err := newsclust.ParseEmptyClusterPolicy(c.Cluster.EmptyCluster); err != nil {
		return errors.Wrap(err, "cluster.empty_cluster")
	}

	for i, s := range c.Sources {
		if s.Name == "" {
			return errors.Newf("sources[%d].name cannot be empty", i)
		}
	}

	if _, err := c.SourceFormat(); err != nil {
		return err
	}

	switch c.Store.Backend {
	case BackendLocal, BackendMemory:
	case BackendS3, BackendMinio:
		if c.Store.Bucket == "" {
			return errors.Newf("store.bucket cannot be empty for backend %s", c.Store.Backend)
		}
		if c.Store.Backend == BackendMinio && c.Store.Endpoint == "" {
			return errors.New("store.endpoint cannot be empty for backend minio")
		}
	default:
		return errors.Newf("store.backend must be one of local, memory, s3, minio, got %q", c.Store.Backend)
	}
	if c.Store.LedgerTable != "" && c.Store.Backend != BackendS3 {
		return errors.Newf("store.ledger_table requires backend s3, got %q", c.Store.Backend)
	}

	if c.Resources.MaxConcurrentLoads < 0 {
		return errors.Newf("resources.max_concurrent_loads must be >= 0, got %d", c.Resources.MaxConcurrentLoads)
	}
	if c.Resources.MemoryLimitBytes < 0 {
		return errors.Newf("resources.memory_limit_bytes must be >= 0, got %d", c.Resources.MemoryLimitBytes)
	}
	if c.Resources.IOLimitBytesPerSec < 0 {
		return errors.Newf("resources.io_limit_bytes_per_sec must be >= 0, got %d", c.Resources.IOLimitBytesPerSec)
	}

	if c.Output.Format != "table" {
		if _, err := report.ParseFormat(c.Output.Format); err != nil {
			return errors.Wrap(err, "output.format")
		}
	}
	if _, err := report.ParseFormat(c.Output.PublishFormat); err != nil {
		return errors.Wrap(err, "output.publish_format")
	}

	if _, err := c.LogLevel(); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return errors.Newf("log.format must be text or json, got %q", c.Log.Format)
	}

	return nil
}

// ClusterOptions returns the clusterer options of the configuration.
func (c *Config) ClusterOptions() ([]newsclust.Option, error) {
	policy, err := newsclust.ParseEmptyClusterPolicy(c.Cluster.EmptyCluster)
	if err != nil {
		return nil, err
	}
	return []newsclust.Option{
		newsclust.WithK(c.Cluster.K),
		newsclust.WithMaxIterations(c.Cluster.MaxIterations),
		newsclust.WithTolerance(c.Cluster.Tolerance),
		newsclust.WithEmptyClusterPolicy(policy),
	}, nil
}

// SourceNames returns the configured source names in order.
func (c *Config) SourceNames() []string {
	names := make([]string, len(c.Sources))
	for i, s := range c.Sources {
		names[i] = s.Name
	}
	return names
}

// Labels returns the label table of the configured sources. Sources
// without a label fall back to the built-in table.
func (c *Config) Labels() source.Labels {
	labels := source.DefaultLabels()
	for _, s := range c.Sources {
		if s.Label != "" {
			labels[s.Name] = s.Label
		}
	}
	return labels
}

// SourceFormat returns the parsed input layout.
func (c *Config) SourceFormat() (source.Format, error) {
	f := source.DefaultFormat()

	if utf8.RuneCountInString(c.Input.Comma) != 1 {
		return f, errors.Newf("input.comma must be a single character, got %q", c.Input.Comma)
	}
	f.Comma, _ = utf8.DecodeRuneInString(c.Input.Comma)
	f.LikesColumn = c.Input.LikesColumn
	f.Header = c.Input.Header

	policy, err := source.ParseRowPolicy(c.Input.RowPolicy)
	if err != nil {
		return f, errors.Wrap(err, "input.row_policy")
	}
	f.Policy = policy

	if err := f.Validate(); err != nil {
		return f, errors.Wrap(err, "input")
	}
	return f, nil
}

// ResourceConfig returns the loader limits.
func (c *Config) ResourceConfig() resource.Config {
	return resource.Config{
		MaxConcurrentLoads: c.Resources.MaxConcurrentLoads,
		MemoryLimitBytes:   c.Resources.MemoryLimitBytes,
		IOLimitBytesPerSec: c.Resources.IOLimitBytesPerSec,
	}
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return level, errors.Wrapf(err, "log.level %q", c.Log.Level)
	}
	return level, nil
}

// Marshal renders the configuration as "yaml" or "toml".
// Secrets are omitted.
func (c *Config) Marshal(format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", "yaml", "yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case "toml":
		return toml.Marshal(c)
	default:
		return nil, errors.Newf("unknown config format %q", format)
	}
}
