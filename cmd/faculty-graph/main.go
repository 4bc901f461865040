// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the faculty-graph CLI.
//
// faculty-graph fuses collected bibliographic, profile, and mention records
// for a fixed roster of researchers into one weighted relationship graph
// with per-researcher topical area distributions.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/faculty-graph/internal/secrets"
	"github.com/pdiddy/faculty-graph/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// logger is configured from --verbose before any subcommand runs.
	logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

	// loadedSecrets holds credentials loaded from .secrets/ at startup.
	loadedSecrets secrets.Secrets
)

// rootCmd is the base command for the faculty-graph CLI.
var rootCmd = &cobra.Command{
	Use:   "faculty-graph",
	Short: "Fuse researcher records into a weighted collaboration graph",
	Long: `faculty-graph builds a relationship graph over a fixed roster of
researchers. It reads per-researcher records from a bibliographic database,
a profile service, and a mention scanner; resolves identities; extracts
co-authorship, shared reference, shared topic, shared journal, profile and
mention signals; fuses them into weighted edges; and classifies each
researcher into topical areas.

Use build to produce graph.json, mentions to scan pages for co-mentions,
and store to query saved builds.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			logger.SetLevel(log.DebugLevel)
		}

		dir, _ := cmd.Flags().GetString("secrets-dir")
		s, err := secrets.Load(afero.NewOsFs(), dir, logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			logger.Debug("loaded secrets", "keys", s.Keys())
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./faculty-graph.yaml or ~/.config/faculty-graph/faculty-graph.yaml)")
	rootCmd.PersistentFlags().String("secrets-dir", ".secrets", "directory of credential files")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("faculty-graph")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "faculty-graph"))
		}
	}

	viper.SetEnvPrefix("FACULTY_GRAPH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := registerDefaults(); err != nil {
		logger.Warn("could not register config defaults", "err", err)
	}

	if err := viper.ReadInConfig(); err == nil {
		logger.Info("using config file", "path", viper.ConfigFileUsed())
	}
}

// registerDefaults seeds viper with every pipeline default so each key can
// also be set from the environment.
func registerDefaults() error {
	data, err := yaml.Marshal(types.DefaultPipelineConfig())
	if err != nil {
		return err
	}
	var defaults map[string]any
	if err := yaml.Unmarshal(data, &defaults); err != nil {
		return err
	}
	for k, v := range defaults {
		viper.SetDefault(k, v)
	}
	for _, key := range []string{"input.curation", "neo4j.uri", "neo4j.password", "neo4j.database", "metrics_file"} {
		if err := viper.BindEnv(key); err != nil {
			return err
		}
	}
	return nil
}

// bindFlags binds the named flags of cmd to viper keys. Binding happens
// when the command runs so subcommands sharing a key do not clash.
func bindFlags(cmd *cobra.Command, keys map[string]string) error {
	for flag, key := range keys {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("binding --%s: %w", flag, err)
		}
	}
	return nil
}

// pipelineConfig returns the merged configuration: defaults, then config
// file, then environment, then flags.
func pipelineConfig() (types.PipelineConfig, error) {
	cfg := types.DefaultPipelineConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	cfg.Neo4j.Password = loadedSecrets.Get(secrets.Neo4jPassword, cfg.Neo4j.Password)
	return cfg, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}
