package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/kardianos/service"
)

// program implements service.Interface
type program struct {
	configPath string

	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
	svcLogger service.Logger
}

func (p *program) Start(s service.Service) error {
	p.svcLogger, _ = s.Logger(nil)
	if p.svcLogger != nil {
		p.svcLogger.Info("printerid service starting")
	}

	p.ctx, p.cancel = context.WithCancel(context.Background())
	p.done = make(chan struct{})

	go p.run()
	return nil
}

func (p *program) run() {
	defer close(p.done)

	runInteractive(p.ctx, p.configPath, 0)

	if p.svcLogger != nil {
		p.svcLogger.Info("printerid service stopping")
	}
}

func (p *program) Stop(s service.Service) error {
	if p.cancel != nil {
		p.cancel()
	}

	// Wait for run() to finish, but don't hang the service manager
	timeout := time.After(30 * time.Second)
	select {
	case <-p.done:
	case <-timeout:
		if p.svcLogger != nil {
			p.svcLogger.Warning("printerid service stopped with timeout")
		}
	}

	return nil
}

// getServiceConfig returns the service configuration for the current platform
func getServiceConfig() *service.Config {
	var workingDir string
	switch runtime.GOOS {
	case "windows":
		workingDir = filepath.Join(os.Getenv("ProgramData"), "printerid")
	case "darwin":
		workingDir = "/Library/Application Support/printerid"
	default:
		workingDir = "/var/lib/printerid"
	}

	return &service.Config{
		Name:             "printerid",
		DisplayName:      "Printer Model Detector",
		Description:      "Detects network printer models over SNMP and serves the results via HTTP.",
		WorkingDirectory: workingDir,
		Arguments:        []string{"--service", "run"},
		Option: service.KeyValue{
			// Windows service options
			"StartType":              "automatic",
			"OnFailure":              "restart",
			"OnFailureDelayDuration": "5s",
			"OnFailureResetPeriod":   30,

			// Linux systemd options
			"Restart":           "on-failure",
			"RestartSec":        5,
			"SuccessExitStatus": "0 SIGTERM",

			// macOS launchd options
			"RunAtLoad": true,
			"KeepAlive": true,
		},
	}
}

// setupServiceDirectories creates the directories the service needs to run
func setupServiceDirectories() error {
	var dirs []string
	switch runtime.GOOS {
	case "windows":
		baseDir := filepath.Join(os.Getenv("ProgramData"), "printerid")
		dirs = []string{baseDir, filepath.Join(baseDir, "logs")}
	case "darwin":
		dirs = []string{"/Library/Application Support/printerid", "/var/log/printerid"}
	default:
		dirs = []string{"/var/lib/printerid", "/var/log/printerid", "/etc/printerid"}
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// handleServiceCommand processes service install/uninstall/start/stop commands
func handleServiceCommand(cmd, configPath string) {
	svcConfig := getServiceConfig()
	prg := &program{configPath: configPath}
	s, err := service.New(prg, svcConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create service: %v\n", err)
		os.Exit(1)
	}

	switch cmd {
	case "install":
		if err := setupServiceDirectories(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to setup service directories: %v\n", err)
			os.Exit(1)
		}
		if err := s.Install(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to install service: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Service installed. Use '--service start' to start it.")

	case "uninstall":
		if err := s.Uninstall(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to uninstall service: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Service uninstalled")

	case "start":
		if err := s.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to start service: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Service started")

	case "stop":
		if err := s.Stop(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to stop service: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Service stopped")

	case "status":
		status, err := s.Status()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to query service status: %v\n", err)
			os.Exit(1)
		}
		switch status {
		case service.StatusRunning:
			fmt.Println("Service is running")
		case service.StatusStopped:
			fmt.Println("Service is stopped")
		default:
			fmt.Println("Service status unknown (is it installed?)")
		}

	case "run":
		if err := s.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Service run failed: %v\n", err)
			os.Exit(1)
		}

	default:
		fmt.Fprintf(os.Stderr, "Unknown service command: %s (use install, uninstall, start, stop, status, run)\n", cmd)
		os.Exit(1)
	}
}

// runAsService runs under the platform service manager when launched by it
func runAsService(configPath string) {
	prg := &program{configPath: configPath}
	s, err := service.New(prg, getServiceConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create service: %v\n", err)
		os.Exit(1)
	}
	if err := s.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Service run failed: %v\n", err)
		os.Exit(1)
	}
}
