// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the esg-scan CLI.
// Subcommands: scan, taxonomy (validate, terms), version.
package main

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	defaultTaxonomyPath = "dictionary/taxonomy.json"
	defaultDocumentsDir = "documents"
)

// rootCmd is the base command for the esg-scan CLI.
var rootCmd = &cobra.Command{
	Use:   "esg-scan",
	Short: "Count ESG taxonomy terms in PDF reports",
	Long: `esg-scan scans PDF documents for terms from a hierarchical ESG
(Environmental, Social, Governance) taxonomy and reports exact and partial
match counts per document, grouped the way the taxonomy is organized.

Matching is lexical and case-insensitive: an exact match is a term bounded
by non-word characters, a partial match is any occurrence of the term.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelWarn
		if viper.GetBool("verbose") {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		if f := viper.ConfigFileUsed(); f != "" {
			slog.Debug("using config file", "path", f)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./esg-scan.yaml or ~/.config/esg-scan/config.yaml)")
	rootCmd.PersistentFlags().String("taxonomy", defaultTaxonomyPath, "taxonomy file (JSON or YAML)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging on stderr")

	viper.BindPFlag("taxonomy", rootCmd.PersistentFlags().Lookup("taxonomy"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("esg-scan")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "esg-scan"))
		}
	}

	viper.SetEnvPrefix("ESG_SCAN")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			slog.Warn("config file not read", "error", err)
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
