package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danlaudk/lambda-ai-apart-hackathon-25/internal/apikey"
	"github.com/danlaudk/lambda-ai-apart-hackathon-25/internal/common/fsutil"
)

func newKeygenCmd(root *rootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a new API key and write it to the key file",
		Long: "Generate a new API key and write it to the key file with owner-only permissions.\n" +
			"A running server picks up the new key without a restart.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}
			cfg.ApplyDefaults()
			path, err := fsutil.ExpandHome(cfg.APIKeyFile)
			if err != nil {
				return err
			}
			if fsutil.PathExists(path) && !force {
				return fmt.Errorf("%s exists; use --force to replace it", path)
			}
			key, err := apikey.Generate()
			if err != nil {
				return err
			}
			if err := apikey.WriteFile(path, key); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Generated new API key: %s\nAPI key saved to: %s\n", key, path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "replace an existing key file")
	return cmd
}
