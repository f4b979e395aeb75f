package main

import (
	"fmt"
	"path/filepath"
	"reflect"

	"github.com/spacemeshos/smutil"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Danielskry/SpectralZK/config"
)

const (
	defaultConfigFileName = "config.toml"
	defaultLogLevel       = "info"
)

var (
	defaultHomeDir    = filepath.Join(smutil.GetUserHomeDirectory(), "spectralzk")
	defaultConfigFile = filepath.Join(defaultHomeDir, defaultConfigFileName)
)

type Config struct {
	CLICfg      *CLIConfig     `mapstructure:"cli"`
	ProtocolCfg *config.Config `mapstructure:"protocol"`
}

func defaultConfig() *Config {
	return &Config{
		CLICfg:      defaultCLIConfig(),
		ProtocolCfg: config.DefaultConfig(),
	}
}

type CLIConfig struct {
	HomeDir     string `mapstructure:"homedir"`
	ConfigFile  string `mapstructure:"config"`
	LogLevel    string `mapstructure:"log-level"`
	PrintConfig bool   `mapstructure:"print-config"`
}

func defaultCLIConfig() *CLIConfig {
	return &CLIConfig{
		HomeDir:    defaultHomeDir,
		ConfigFile: defaultConfigFile,
		LogLevel:   defaultLogLevel,
	}
}

func loadConfig(cmd *cobra.Command) (*Config, error) {
	flags := cmd.Root().PersistentFlags()

	fileLocation := viper.GetString("config")
	if !flags.Changed("config") && flags.Changed("homedir") {
		fileLocation = filepath.Join(viper.GetString("homedir"), defaultConfigFileName)
	}
	fileLocation = smutil.GetCanonicalPath(fileLocation)

	vip := viper.New()
	if err := loadConfigFile(fileLocation, vip); err != nil && flags.Changed("config") {
		// Only a file the user asked for is required to exist.
		return nil, err
	}

	// Load config if it was loaded to our viper.
	cfg := defaultConfig()
	if err := vip.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Ensure cli args are higher priority than the config file.
	ensureCLIFlags(flags, cfg)

	cfg.CLICfg.HomeDir = smutil.GetCanonicalPath(cfg.CLICfg.HomeDir)
	cfg.CLICfg.ConfigFile = fileLocation

	if err := cfg.ProtocolCfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadConfigFile(fileLocation string, vip *viper.Viper) error {
	vip.SetConfigFile(fileLocation)
	if err := vip.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %v: %w", fileLocation, err)
	}
	return nil
}

func setFlags(cmd *cobra.Command, cfg *Config) {
	flags := cmd.PersistentFlags()

	// CLI config.

	flags.StringVar(&cfg.CLICfg.ConfigFile, "config",
		cfg.CLICfg.ConfigFile, "Path to configuration file")

	flags.StringVar(&cfg.CLICfg.HomeDir, "homedir",
		cfg.CLICfg.HomeDir, "The directory that contains the configuration file")

	flags.StringVar(&cfg.CLICfg.LogLevel, "log-level",
		cfg.CLICfg.LogLevel, "Log level (debug, info, warn, error)")

	flags.BoolVar(&cfg.CLICfg.PrintConfig, "print-config",
		cfg.CLICfg.PrintConfig, "Print the used config before running the command")

	// Protocol config.

	flags.Int64("seed", 0, "Tiling seed (random when not set)")

	flags.IntVar(&cfg.ProtocolCfg.Size, "size",
		cfg.ProtocolCfg.Size, "Side length of the public tiling")

	flags.IntVar(&cfg.ProtocolCfg.PathLength, "path-length",
		cfg.ProtocolCfg.PathLength, "Maximum number of steps of the secret path")

	flags.IntVar(&cfg.ProtocolCfg.NumChallenges, "num-challenges",
		cfg.ProtocolCfg.NumChallenges, "Number of path indices the verifier challenges")

	flags.IntVar(&cfg.ProtocolCfg.MaxPeriod, "max-period",
		cfg.ProtocolCfg.MaxPeriod, "Largest period checked by the periodicity analysis")

	flags.IntVar(&cfg.ProtocolCfg.Trials, "trials",
		cfg.ProtocolCfg.Trials, "Number of independent sessions run by the trials command")

	flags.IntVar(&cfg.ProtocolCfg.Parallelism, "parallelism",
		cfg.ProtocolCfg.Parallelism, "Maximum number of sessions running at once")

	if err := viper.BindPFlags(flags); err != nil {
		panic(err)
	}
}

func ensureCLIFlags(flags *pflag.FlagSet, cfg *Config) {
	assignFields := func(p reflect.Type, elem reflect.Value, name string) {
		for i := 0; i < p.NumField(); i++ {
			if p.Field(i).Tag.Get("mapstructure") == name {
				var val any
				switch p.Field(i).Type.String() {
				case "bool":
					val = viper.GetBool(name)
				case "string":
					val = viper.GetString(name)
				case "int":
					val = viper.GetInt(name)
				case "int64":
					val = viper.GetInt64(name)
				case "*int64":
					v := viper.GetInt64(name)
					val = &v
				default:
					val = viper.Get(name)
				}

				elem.Field(i).Set(reflect.ValueOf(val))
				return
			}
		}
	}

	// viper can't handle nested structs when deserializing flags.
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			name := f.Name

			ff := reflect.TypeOf(*cfg.CLICfg)
			elem := reflect.ValueOf(cfg.CLICfg).Elem()
			assignFields(ff, elem, name)

			ff = reflect.TypeOf(*cfg.ProtocolCfg)
			elem = reflect.ValueOf(cfg.ProtocolCfg).Elem()
			assignFields(ff, elem, name)
		}
	})
}
