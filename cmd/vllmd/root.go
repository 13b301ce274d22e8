package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/danlaudk/lambda-ai-apart-hackathon-25/internal/config"
)

// rootOptions are shared by every subcommand.
type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
	apiKey     string
	apiKeyFile string
}

func newRootCmd() *cobra.Command {
	o := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "vllmd",
		Short:         "Control plane for vLLM inference backends",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	pf := cmd.PersistentFlags()
	pf.StringVar(&o.configPath, "config", os.Getenv("VLLMD_CONFIG"), "config file (.yaml, .yml, .json, .toml)")
	pf.StringVar(&o.logLevel, "log-level", "", "log level: debug|info|warn|error")
	pf.StringVar(&o.logFormat, "log-format", "", "log format: json|console")
	pf.StringVar(&o.apiKey, "api-key", os.Getenv("VLLMD_API_KEY"), "API key (overrides the key file)")
	pf.StringVar(&o.apiKeyFile, "api-key-file", "", "file holding the API key")

	cmd.AddCommand(
		newServeCmd(o),
		newCatalogCmd(o),
		newKeygenCmd(o),
		newAvailableCmd(o),
		newLoadedCmd(o),
		newStatusCmd(o),
		newLoadCmd(o),
		newUnloadCmd(o),
	)
	return cmd
}

// loadConfig layers the config file, environment and changed persistent
// flags, in increasing precedence. Command-specific flags are applied by the
// caller before ApplyDefaults.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if o.configPath != "" {
		c, err := config.Load(o.configPath)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = c
	}
	if v := os.Getenv("VLLMD_ADDR"); v != "" {
		cfg.Addr = v
	}
	if o.apiKey != "" {
		cfg.APIKey = o.apiKey
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = o.logFormat
	}
	if flags.Changed("api-key-file") {
		cfg.APIKeyFile = o.apiKeyFile
	}
	return cfg, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
