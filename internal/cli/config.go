package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/satyalabs/trustmem/internal/model"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage trustmem configuration",
	Long: `Manage trustmem configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (TRUSTMEM_*)
3. Config file (~/.trustmem/config.yaml)
4. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if configFile := viper.ConfigFileUsed(); configFile != "" {
			fmt.Fprintf(os.Stderr, "Configuration file: %s\n\n", configFile)
		} else {
			fmt.Fprintf(os.Stderr, "No configuration file found (using defaults)\n\n")
		}

		// Never print credentials
		cfg.Embedding.APIKey = ""
		cfg.Insight.APIKey = ""

		yamlData, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		fmt.Println(string(yamlData))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize default configuration file",
	Long:  `Create a default configuration file at ~/.trustmem/config.yaml.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("find home directory: %w", err)
		}

		configDir := home + "/.trustmem"
		configPath := configDir + "/config.yaml"

		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("config file already exists: %s\nUse 'trustmem config show' to view it, or delete it first to recreate", configPath)
		}

		if err := os.MkdirAll(configDir, 0755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}

		f, err := os.Create(configPath)
		if err != nil {
			return fmt.Errorf("create config file: %w", err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("close config file: %w", closeErr)
			}
		}()

		header := `# Trustmem Configuration File
#
# Configuration hierarchy (highest to lowest priority):
#   1. CLI flags
#   2. Environment variables (TRUSTMEM_*)
#   3. This config file
#   4. Built-in defaults

`
		if _, err := f.WriteString(header); err != nil {
			return fmt.Errorf("write config: %w", err)
		}

		yamlData, err := yaml.Marshal(model.DefaultConfig())
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		if _, err := f.Write(yamlData); err != nil {
			return fmt.Errorf("write config: %w", err)
		}

		footer := `
# API keys (recommended to use environment variables instead):
#   export OPENAI_API_KEY=sk-...
`
		if _, err := f.WriteString(footer); err != nil {
			return fmt.Errorf("write config: %w", err)
		}

		fmt.Printf("Created default configuration: %s\n", configPath)
		fmt.Printf("\nTo view the configuration:\n  trustmem config show\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
