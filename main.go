// Printer model detection service.
// Answers "what printer model lives at this IP" over HTTP by probing the
// device with SNMP.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"printerid/logger"
	"printerid/probe"

	"github.com/kardianos/service"
)

// Version information (set at build time via -ldflags)
var (
	Version   = "dev"     // Semantic version (e.g., "1.0.0")
	BuildTime = "unknown" // Build timestamp
	GitCommit = "unknown" // Git commit hash
)

func main() {
	configPath := flag.String("config", "", "Configuration file path (searches standard locations when empty)")
	generateConfig := flag.Bool("generate-config", false, "Generate default config file and exit")
	serviceCmd := flag.String("service", "", "Service control: install, uninstall, start, stop, status, run")
	showVersion := flag.Bool("version", false, "Show version information and exit")
	port := flag.Int("port", 0, "HTTP listen port (overrides config)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("printerid %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		fmt.Printf("Git Commit: %s\n", GitCommit)
		fmt.Printf("Go Version: %s\n", runtime.Version())
		fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		return
	}

	if *generateConfig {
		target := *configPath
		if target == "" {
			target = configFileName
		}
		if err := WriteDefaultConfig(target); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Generated default configuration at %s\n", target)
		return
	}

	if *serviceCmd != "" {
		handleServiceCommand(*serviceCmd, *configPath)
		return
	}

	if !service.Interactive() {
		runAsService(*configPath)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	runInteractive(ctx, *configPath, *port)
}

// runInteractive starts the HTTP server in the foreground and blocks until
// ctx is cancelled.
func runInteractive(ctx context.Context, configFlag string, portFlag int) {
	cfg, loadedFrom, err := LoadConfig(configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if portFlag != 0 {
		cfg.Web.HTTPPort = portFlag
	}

	logger.Global = logger.New(logger.LevelFromString(cfg.Logging.Level), cfg.Logging.Dir, 1000)
	defer logger.Global.Close()

	logger.Global.Info("starting printerid", "version", Version, "port", cfg.Web.HTTPPort)
	if loadedFrom != "" {
		logger.Global.Info("configuration loaded", "path", loadedFrom)
	} else {
		logger.Global.Info("no configuration file found, using defaults")
	}

	probeCfg, err := cfg.ProbeConfig()
	if err != nil {
		logger.Global.Error("invalid configuration", "error", err.Error())
		os.Exit(1)
	}

	api := NewAPI(probe.New(probeCfg))
	mux := http.NewServeMux()
	api.RegisterRoutes(mux)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Web.HTTPPort),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Global.Info("HTTP server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Global.Info("shutdown signal received, stopping server")
	case err := <-serverErr:
		logger.Global.Error("HTTP server failed", "error", err.Error())
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Global.Warn("server shutdown error", "error", err.Error())
	}
	logger.Global.Info("server stopped")
}
