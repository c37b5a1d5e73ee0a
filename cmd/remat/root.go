package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/woozymasta/remat/internal/config"
	"github.com/woozymasta/remat/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	config    string
	logLevel  string
	logFormat string
}

var rootCmd = &cobra.Command{
	Use:   "remat",
	Short: "Translate Poser material shader trees into Lux material records",
	Long: "remat reads Poser material files, walks the shader tree of every material\n" +
		"and writes the translated renderer material records as YAML or JSON.",
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRunE: prepare,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&rootFlags.config, "config", "c", "", "Config file (.toml, .yaml or .yml) with flag defaults")
	pf.StringVar(&rootFlags.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	pf.StringVar(&rootFlags.logFormat, "log-format", "text", "Log format: text or json")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(nodesCmd)
	rootCmd.Version = version
}

// prepare applies the config file and sets up logging.
func prepare(cmd *cobra.Command, _ []string) error {
	if rootFlags.config != "" {
		cfg, err := config.Load(rootFlags.config)
		if err != nil {
			return err
		}
		if err := applyConfig(cmd.Flags(), cfg); err != nil {
			return err
		}
	}

	return initLogging(cmd)
}

// applyConfig sets every flag left unset on the command line from cfg.
// Zero config values keep the flag default.
func applyConfig(fs *pflag.FlagSet, cfg config.Config) error {
	values := map[string][]string{
		"format":       {cfg.Format},
		"out-dir":      {cfg.OutDir},
		"texture-root": {cfg.TextureRoot},
		"log-level":    {cfg.LogLevel},
		"log-format":   {cfg.LogFormat},
		"exclude":      cfg.Exclude,
	}
	if cfg.MaxDepth > 0 {
		values["max-depth"] = []string{strconv.Itoa(cfg.MaxDepth)}
	}
	if cfg.Jobs > 0 {
		values["jobs"] = []string{strconv.Itoa(cfg.Jobs)}
	}
	if cfg.Check {
		values["check"] = []string{"true"}
	}

	for name, vals := range values {
		f := fs.Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		for _, v := range vals {
			if v == "" {
				continue
			}
			if err := fs.Set(name, v); err != nil {
				return fmt.Errorf("config %s: %w", name, err)
			}
		}
	}

	return nil
}

func initLogging(cmd *cobra.Command) error {
	level, err := logging.ParseLevel(rootFlags.logLevel)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(rootFlags.logFormat)
	if err != nil {
		return err
	}

	logging.Init(level, format, cmd.ErrOrStderr())
	return nil
}
