package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/danlaudk/lambda-ai-apart-hackathon-25/internal/apikey"
	"github.com/danlaudk/lambda-ai-apart-hackathon-25/internal/client"
	"github.com/danlaudk/lambda-ai-apart-hackathon-25/internal/common/fsutil"
)

// newClient builds an API client from --url (or VLLMD_URL, or the configured
// listen address) and the key resolved without generating a new one.
func (o *rootOptions) newClient(cmd *cobra.Command) (*client.Client, error) {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()

	base, _ := cmd.Flags().GetString("url")
	if base == "" {
		base = os.Getenv("VLLMD_URL")
	}
	if base == "" {
		port, err := cfg.ListenPort()
		if err != nil {
			return nil, err
		}
		base = fmt.Sprintf("http://localhost:%d", port)
	}

	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		p, err := fsutil.ExpandHome(cfg.APIKeyFile)
		if err != nil {
			return nil, err
		}
		if key, err = apikey.ReadFile(p); err != nil {
			return nil, fmt.Errorf("no API key: pass --api-key or set VLLMD_API_KEY (%w)", err)
		}
	}
	return client.New(base, key), nil
}

func clientCommand(root *rootOptions, use, short string, args cobra.PositionalArgs,
	run func(ctx context.Context, cmd *cobra.Command, c *client.Client, args []string) (any, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.newClient(cmd)
			if err != nil {
				return err
			}
			out, err := run(cmd.Context(), cmd, c, args)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().String("url", "", "control-plane base URL (default http://localhost:<listen port>)")
	return cmd
}

func newAvailableCmd(root *rootOptions) *cobra.Command {
	return clientCommand(root, "available", "List configurations that can be loaded", cobra.NoArgs,
		func(ctx context.Context, _ *cobra.Command, c *client.Client, _ []string) (any, error) {
			return c.Available(ctx)
		})
}

func newLoadedCmd(root *rootOptions) *cobra.Command {
	return clientCommand(root, "loaded", "List registered backends", cobra.NoArgs,
		func(ctx context.Context, _ *cobra.Command, c *client.Client, _ []string) (any, error) {
			return c.Loaded(ctx)
		})
}

func newStatusCmd(root *rootOptions) *cobra.Command {
	return clientCommand(root, "status [id]", "Show the manager summary, or one configuration's status", cobra.MaximumNArgs(1),
		func(ctx context.Context, _ *cobra.Command, c *client.Client, args []string) (any, error) {
			if len(args) == 1 {
				return c.Status(ctx, args[0])
			}
			return c.Summary(ctx)
		})
}

func newLoadCmd(root *rootOptions) *cobra.Command {
	cmd := clientCommand(root, "load <id>", "Load a configuration", cobra.ExactArgs(1),
		func(ctx context.Context, cmd *cobra.Command, c *client.Client, args []string) (any, error) {
			wait, _ := cmd.Flags().GetBool("wait")
			if !wait {
				return c.Load(ctx, args[0])
			}
			timeout, _ := cmd.Flags().GetDuration("timeout")
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			st, err := c.LoadAndWait(ctx, args[0])
			if errors.Is(err, context.DeadlineExceeded) {
				return nil, fmt.Errorf("timed out after %s waiting for %s", timeout, args[0])
			}
			return st, err
		})
	cmd.Flags().Bool("wait", false, "block until the backend is ready")
	cmd.Flags().Duration("timeout", 300*time.Second, "maximum time to wait with --wait")
	return cmd
}

func newUnloadCmd(root *rootOptions) *cobra.Command {
	return clientCommand(root, "unload <id>", "Unload a configuration", cobra.ExactArgs(1),
		func(ctx context.Context, _ *cobra.Command, c *client.Client, args []string) (any, error) {
			return c.Unload(ctx, args[0])
		})
}
