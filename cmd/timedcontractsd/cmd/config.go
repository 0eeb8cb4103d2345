package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cosmossdk.io/log"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tempo-labs/timed-contracts/app"
)

const (
	EnvPrefix = "TIMED"

	FlagHome             = "home"
	FlagLogLevel         = "log_level"
	FlagLogFormat        = "log_format"
	FlagListenAddr       = "listen_addr"
	FlagBlockTime        = "block_time"
	FlagSnapshotInterval = "snapshot_interval"
	FlagDBBackend        = "db_backend"
	FlagChainID          = "chain_id"
	FlagAuthority        = "authority"
	FlagProposer         = "proposer"
	FlagFeeCollector     = "fee_collector"

	LogFormatPlain = "plain"
	LogFormatJSON  = "json"

	configFile  = "config.toml"
	genesisFile = "genesis.json"
)

// DefaultNodeHome is the default home directory of timedcontractsd.
var DefaultNodeHome = defaultHome()

func defaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".timedcontracts"
	}

	return filepath.Join(home, ".timedcontracts")
}

// Config is the content of config.toml. Every key can be overridden with a
// TIMED_ prefixed environment variable or a flag of the same name.
type Config struct {
	Home             string        `mapstructure:"home"`
	LogLevel         string        `mapstructure:"log_level"`
	LogFormat        string        `mapstructure:"log_format"`
	ListenAddr       string        `mapstructure:"listen_addr"`
	BlockTime        time.Duration `mapstructure:"block_time"`
	SnapshotInterval uint64        `mapstructure:"snapshot_interval"`
	DBBackend        string        `mapstructure:"db_backend"`

	App app.Options `mapstructure:",squash"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Home:             DefaultNodeHome,
		LogLevel:         zerolog.InfoLevel.String(),
		LogFormat:        LogFormatPlain,
		ListenAddr:       "localhost:1317",
		BlockTime:        time.Second,
		SnapshotInterval: 100,
		DBBackend:        string(dbm.GoLevelDBBackend),
		App:              app.DefaultOptions(),
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	switch c.LogFormat {
	case LogFormatPlain, LogFormatJSON:
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}

	if c.BlockTime <= 0 {
		return fmt.Errorf("block time must be positive")
	}

	switch dbm.BackendType(c.DBBackend) {
	case dbm.GoLevelDBBackend, dbm.MemDBBackend:
	default:
		return fmt.Errorf("unsupported db backend %q", c.DBBackend)
	}

	return c.App.Validate()
}

func (c Config) ConfigDir() string {
	return filepath.Join(c.Home, "config")
}

func (c Config) DataDir() string {
	return filepath.Join(c.Home, "data")
}

func (c Config) GenesisFile() string {
	return filepath.Join(c.ConfigDir(), genesisFile)
}

// NewLogger builds the logger configured by c.
func (c Config) NewLogger(out io.Writer) (log.Logger, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}

	opts := []log.Option{log.LevelOption(level)}
	if c.LogFormat == LogFormatJSON {
		opts = append(opts, log.OutputJSONOption())
	}

	return log.NewLogger(out, opts...), nil
}

// newViper returns a viper instance holding the defaults of cfg.
func newViper(cfg Config) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault(FlagHome, cfg.Home)
	v.SetDefault(FlagLogLevel, cfg.LogLevel)
	v.SetDefault(FlagLogFormat, cfg.LogFormat)
	v.SetDefault(FlagListenAddr, cfg.ListenAddr)
	v.SetDefault(FlagBlockTime, cfg.BlockTime.String())
	v.SetDefault(FlagSnapshotInterval, cfg.SnapshotInterval)
	v.SetDefault(FlagDBBackend, cfg.DBBackend)
	v.SetDefault(FlagChainID, cfg.App.ChainID)
	v.SetDefault(FlagAuthority, cfg.App.Authority)
	v.SetDefault(FlagProposer, cfg.App.Proposer)
	v.SetDefault(FlagFeeCollector, cfg.App.FeeCollector)
	v.SetDefault("event_log_size", cfg.App.EventLogSize)
	v.SetDefault("snapshot_keep_recent", cfg.App.SnapshotKeepRecent)

	return v
}

// loadConfig merges the defaults, config.toml in the home directory, the
// environment and the flags of cmd, in increasing order of precedence.
func loadConfig(v *viper.Viper, cmd *cobra.Command) (Config, error) {
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return Config{}, err
	}

	v.SetConfigType("toml")
	v.SetConfigFile(filepath.Join(v.GetString(FlagHome), "config", configFile))
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	return cfg, cfg.Validate()
}

// writeConfig writes the current settings of v to config.toml.
func writeConfig(v *viper.Viper, cfg Config) (string, error) {
	if err := os.MkdirAll(cfg.ConfigDir(), 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(cfg.ConfigDir(), configFile)
	if err := v.WriteConfigAs(path); err != nil {
		return "", err
	}

	return path, nil
}
