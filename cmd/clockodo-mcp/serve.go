package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/clockodo-mcp-go/internal/config"
	"github.com/cmlabs-hris/clockodo-mcp-go/internal/domain/access"
	"github.com/cmlabs-hris/clockodo-mcp-go/internal/domain/compliance"
	appHTTP "github.com/cmlabs-hris/clockodo-mcp-go/internal/handler/http"
	mcphandler "github.com/cmlabs-hris/clockodo-mcp-go/internal/handler/mcp"
	"github.com/cmlabs-hris/clockodo-mcp-go/internal/pkg/clockodo"
	"github.com/cmlabs-hris/clockodo-mcp-go/internal/pkg/cron"
	"github.com/cmlabs-hris/clockodo-mcp-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/clockodo-mcp-go/internal/pkg/logger"
	"github.com/cmlabs-hris/clockodo-mcp-go/internal/pkg/metrics"
	adminService "github.com/cmlabs-hris/clockodo-mcp-go/internal/service/admin"
	hrService "github.com/cmlabs-hris/clockodo-mcp-go/internal/service/hr"
	teamLeaderService "github.com/cmlabs-hris/clockodo-mcp-go/internal/service/teamleader"
	userService "github.com/cmlabs-hris/clockodo-mcp-go/internal/service/user"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server",
		Long:  "Serve the enabled tools over stdio (default) or streamable HTTP.",
		RunE:  handleServeCmd,
	}
	cmd.Flags().String("transport", "", "Transport to serve: stdio or http (overrides MCP_TRANSPORT)")
	cmd.Flags().Int("port", 0, "HTTP port (overrides APP_PORT)")
	return cmd
}

func handleServeCmd(cmd *cobra.Command, _ []string) error {
	path, err := envFile(cmd)
	if err != nil {
		return err
	}
	if err := applyServeFlags(cmd); err != nil {
		return err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	log := logger.New(os.Stderr, logger.Options{
		Level:   cfg.App.LogLevel,
		Format:  cfg.App.LogFormat,
		App:     appName,
		Version: version,
		Env:     cfg.App.Env,
	})

	gate, err := resolveGate(cfg)
	if err != nil {
		return err
	}

	m := metrics.New()
	client := clockodo.NewClient(cfg.Clockodo, clockodo.WithObserver(m))
	hr := hrService.NewHRService(client, gate)

	server := mcphandler.NewServer(gate, mcphandler.Services{
		HR:         hr,
		User:       userService.NewUserService(client, gate),
		TeamLeader: teamLeaderService.NewTeamLeaderService(client, gate),
		Admin:      adminService.NewAdminService(client, gate),
	}, mcphandler.Options{
		Name:     appName,
		Version:  version,
		Logger:   log,
		Observer: m,
	})

	log.Info("starting clockodo mcp server",
		slog.String("transport", cfg.App.Transport),
		slog.String("role", string(gate.Role())),
		slog.Int("tools", len(server.EnabledTools())),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.App.ComplianceInterval > 0 && gate.IsEnabled(access.CapabilityHRRead) {
		scheduler := cron.NewScheduler(log)
		cron.NewComplianceJobs(hr, m, compliance.DefaultThresholds()).Register(scheduler, cfg.App.ComplianceInterval)
		scheduler.Start(ctx)
		defer scheduler.Stop()
	}

	if cfg.App.Transport == config.TransportHTTP {
		return serveHTTP(ctx, cfg, log, server, m)
	}
	return server.ServeStdio()
}

// applyServeFlags lets command-line flags override the environment.
func applyServeFlags(cmd *cobra.Command) error {
	if cmd.Flags().Changed("transport") {
		transport, err := cmd.Flags().GetString("transport")
		if err != nil {
			return fmt.Errorf("failed to get transport flag: %w", err)
		}
		if err := os.Setenv("MCP_TRANSPORT", transport); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("port") {
		port, err := cmd.Flags().GetInt("port")
		if err != nil {
			return fmt.Errorf("failed to get port flag: %w", err)
		}
		if err := os.Setenv("APP_PORT", fmt.Sprint(port)); err != nil {
			return err
		}
	}
	return nil
}

func resolveGate(cfg *config.Config) (access.Gate, error) {
	gate, err := access.Resolve(access.Selection{
		Role:   cfg.Access.Role,
		Preset: cfg.Access.Preset,
		Flags: access.LegacyFlags{
			HRReadonly: cfg.Access.EnableHRReadonly,
			UserRead:   cfg.Access.EnableUserRead,
			UserEdit:   cfg.Access.EnableUserEdit,
			TeamLeader: cfg.Access.EnableTeamLeader,
			AdminRead:  cfg.Access.EnableAdminRead,
			AdminEdit:  cfg.Access.EnableAdminEdit,
		},
	})
	if err != nil {
		return access.Gate{}, fmt.Errorf("invalid access configuration: %w", err)
	}
	return gate, nil
}

func serveHTTP(ctx context.Context, cfg *config.Config, log *slog.Logger, server *mcphandler.Server, m *metrics.Metrics) error {
	var jwtService jwt.Service
	if cfg.JWT.Secret != "" {
		svc, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
		if err != nil {
			return err
		}
		jwtService = svc
	} else {
		log.Warn("JWT_SECRET_KEY is not set, /mcp is unauthenticated")
	}

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		Logger:         log,
		AllowedOrigins: cfg.App.AllowedOrigins,
		JWTService:     jwtService,
		MCP:            server.HTTPHandler(),
		Health:         appHTTP.NewHealthHandler(server),
		Metrics:        m.Handler(),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	log.Info("shutting down http server")
	return srv.Shutdown(shutdownCtx)
}
