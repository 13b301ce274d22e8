package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/danlaudk/lambda-ai-apart-hackathon-25/internal/apikey"
	"github.com/danlaudk/lambda-ai-apart-hackathon-25/internal/backend"
	"github.com/danlaudk/lambda-ai-apart-hackathon-25/internal/catalog"
	"github.com/danlaudk/lambda-ai-apart-hackathon-25/internal/common/fsutil"
	"github.com/danlaudk/lambda-ai-apart-hackathon-25/internal/config"
	"github.com/danlaudk/lambda-ai-apart-hackathon-25/internal/httpapi"
	"github.com/danlaudk/lambda-ai-apart-hackathon-25/internal/logging"
	"github.com/danlaudk/lambda-ai-apart-hackathon-25/internal/manager"
)

type serveOptions struct {
	addr           string
	basePort       int
	catalogFile    string
	backendCommand []string
	backendArgs    []string
	backendLogDir  string
	publicHost     string
	probeHost      string
	readyTimeout   int
	corsOrigins    string
	swagger        bool
}

func newServeCmd(root *rootOptions) *cobra.Command {
	o := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the control-plane HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}
			o.apply(cmd, &cfg)
			cfg.ApplyDefaults()
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			return serve(cmd.Context(), cmd, cfg)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.addr, "addr", config.DefaultAddr, "HTTP listen address")
	f.IntVar(&o.basePort, "base-port", 0, "first backend port (default: listen port + 1)")
	f.StringVar(&o.catalogFile, "catalog", "", "catalog file replacing the built-in configurations")
	f.StringSliceVar(&o.backendCommand, "backend-command", nil, "backend executable and leading args, comma-separated")
	f.StringArrayVar(&o.backendArgs, "backend-arg", nil, "extra backend argument (repeatable)")
	f.StringVar(&o.backendLogDir, "backend-log-dir", "", "directory for rotating per-backend logs")
	f.StringVar(&o.publicHost, "public-host", "", "host used in backend URLs returned to clients")
	f.StringVar(&o.probeHost, "probe-host", "", "host the manager uses to reach backends")
	f.IntVar(&o.readyTimeout, "ready-timeout", 0, "seconds to wait for a backend to become healthy")
	f.StringVar(&o.corsOrigins, "cors-origins", "", "comma-separated allowed CORS origins")
	f.BoolVar(&o.swagger, "swagger", false, "serve Swagger UI under /swagger/")
	return cmd
}

func (o *serveOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("addr") {
		cfg.Addr = o.addr
	}
	if f.Changed("base-port") {
		cfg.BasePort = o.basePort
	}
	if f.Changed("catalog") {
		cfg.CatalogFile = o.catalogFile
	}
	if f.Changed("backend-command") {
		cfg.BackendCommand = o.backendCommand
	}
	if f.Changed("backend-arg") {
		cfg.BackendArgs = o.backendArgs
	}
	if f.Changed("backend-log-dir") {
		cfg.BackendLogDir = o.backendLogDir
	}
	if f.Changed("public-host") {
		cfg.PublicHost = o.publicHost
	}
	if f.Changed("probe-host") {
		cfg.ProbeHost = o.probeHost
	}
	if f.Changed("ready-timeout") {
		cfg.ReadyTimeoutSeconds = o.readyTimeout
	}
	if f.Changed("cors-origins") {
		cfg.CORSOrigins = splitCSV(o.corsOrigins)
	}
	if f.Changed("swagger") {
		cfg.Swagger = o.swagger
	}
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	p, err := fsutil.ExpandHome(path)
	if err != nil {
		return nil, err
	}
	return catalog.LoadFile(p)
}

func newController(cfg config.Config, log zerolog.Logger) (*backend.ExecController, error) {
	ctrl := backend.NewExecController(log)
	if len(cfg.BackendCommand) > 0 {
		ctrl.Command = append([]string(nil), cfg.BackendCommand...)
	}
	if cfg.BackendArgs != nil {
		ctrl.ExtraArgs = append([]string(nil), cfg.BackendArgs...)
	}
	ctrl.BindHost = cfg.BackendHost
	ctrl.GracePeriod = cfg.GracePeriod()
	if cfg.BackendLogDir != "" {
		dir, err := fsutil.EnsureDir(cfg.BackendLogDir, 0o755)
		if err != nil {
			return nil, err
		}
		ctrl.LogDir = dir
	}
	return ctrl, nil
}

func serve(parent context.Context, cmd *cobra.Command, cfg config.Config) error {
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	cat, err := loadCatalog(cfg.CatalogFile)
	if err != nil {
		return err
	}
	managerPort, err := cfg.ListenPort()
	if err != nil {
		return err
	}
	basePort, err := cfg.BackendBasePort()
	if err != nil {
		return err
	}

	key, src, err := apikey.Resolve(cfg.APIKey, cfg.APIKeyFile)
	if err != nil {
		return err
	}
	keyPath, _ := fsutil.ExpandHome(cfg.APIKeyFile)
	switch src {
	case apikey.SourceGenerated:
		log.Warn().Str("path", keyPath).Msg("generated new API key")
		fmt.Fprintf(cmd.ErrOrStderr(), "Generated new API key: %s\nAPI key saved to: %s\n", key, keyPath)
	case apikey.SourceFile:
		log.Info().Str("path", keyPath).Msg("API key loaded from file")
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	keys := apikey.NewStore(key)
	if src != apikey.SourceExplicit {
		if err := keys.Watch(ctx, keyPath, log); err != nil {
			log.Warn().Err(err).Msg("API key file not watched; rotation needs a restart")
		}
	}

	ctrl, err := newController(cfg, log)
	if err != nil {
		return err
	}
	mgr := manager.NewWithConfig(manager.ManagerConfig{
		Catalog:    cat,
		Controller: ctrl,
		Prober: &backend.HTTPProber{
			Host:     cfg.ProbeHost,
			Path:     cfg.HealthPath,
			Interval: cfg.PollInterval(),
		},
		BasePort:     basePort,
		ManagerPort:  managerPort,
		ReadyTimeout: cfg.ReadyTimeout(),
		PublicHost:   cfg.PublicHost,
		ProbeHost:    cfg.ProbeHost,
		Logger:       &log,
	})

	httpapi.SetLogger(log)
	httpapi.SetBaseContext(ctx)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetAuthFailureLimit(cfg.AuthFailuresPerMinute)
	httpapi.SetSwaggerEnabled(cfg.Swagger)
	httpapi.SetCORSOptions(len(cfg.CORSOrigins) > 0, cfg.CORSOrigins,
		[]string{http.MethodGet, http.MethodPost, http.MethodOptions},
		[]string{"Content-Type", httpapi.APIKeyHeader})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.NewMux(mgr, keys),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", cfg.Addr).
			Int("base_port", basePort).
			Int("configurations", cat.Len()).
			Msg("vllmd listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case serveErr = <-errCh:
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := mgr.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("backend shutdown incomplete")
		if serveErr == nil {
			serveErr = err
		}
	}
	return serveErr
}
