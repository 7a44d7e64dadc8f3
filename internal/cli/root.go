// Package cli implements the trustmem command tree.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/satyalabs/trustmem/internal/memory"
	"github.com/satyalabs/trustmem/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "trustmem",
	Short: "Trustmem - longitudinal memory for misinformation narratives",
	Long: `Trustmem is a digital trust memory: it remembers claims it has seen,
links new claims to the narratives they belong to, and answers
"have we seen this before" with the full history.

It does not determine what is true. It tracks where and when claims
were observed, how they mutate, and when they resurface.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("trustmem v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.trustmem/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and TRUSTMEM_* environment variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}
		viper.AddConfigPath(home + "/.trustmem")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("TRUSTMEM")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig resolves the effective configuration: flags over env over the
// config file over defaults. API keys fall back to OPENAI_API_KEY.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Embedding.APIKey == "" {
		cfg.Embedding.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.Insight.Provider != "" && cfg.Insight.APIKey == "" {
		cfg.Insight.APIKey = cfg.Embedding.APIKey
	}
	return cfg, nil
}

// newEngine opens the engine for a command invocation
func newEngine(ctx context.Context) (*memory.Engine, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return memory.New(ctx, cfg)
}

func marshalIndent(v interface{}) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal output: %w", err)
	}
	return data, nil
}

// printJSON renders a result on stdout
func printJSON(v interface{}) error {
	data, err := marshalIndent(v)
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
