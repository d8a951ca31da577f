package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/richard-senior/livexg/internal/config"
	"github.com/richard-senior/livexg/internal/logger"
	"github.com/richard-senior/livexg/pkg/server"
	"github.com/richard-senior/livexg/pkg/transport"
	"github.com/richard-senior/livexg/pkg/util/livexg"
	"github.com/richard-senior/livexg/pkg/web"
)

func main() {
	settings := config.Load()

	configPath := flag.String("config", settings.ConfigPath, "YAML file layered over the default engine configuration")
	dbPath := flag.String("db", settings.DBPath, "League preset database, empty to disable presets")
	httpAddr := flag.String("http", settings.HTTPAddr, "Serve HTTP on this address instead of MCP over stdio")
	logLevel := flag.String("log", settings.LogLevel, "Minimum log level (debug, info, warn, error)")
	flag.Parse()

	// stdout belongs to the MCP protocol, logs go to stderr or file
	logger.SetShowDateTime(true)
	if err := logger.SetLogOutputPath(rune(firstByte(settings.LogOutput, 'f')), settings.LogFile); err != nil {
		logger.Warn("Falling back to console logging:", err)
	}
	if level, err := logger.ParseLevel(*logLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warn("Ignoring log level:", err)
	}

	logger.Info("Starting github.com/richard-senior/livexg")

	cfg, err := livexg.LoadConfigFile(*configPath)
	if err != nil {
		logger.Fatal("Failed to load configuration:", err)
	}

	var store *livexg.PresetStore
	if *dbPath != "" {
		store, err = livexg.OpenPresetStore(*dbPath)
		if err != nil {
			logger.Fatal("Failed to open preset database:", err)
		}
		defer store.Close()
	}

	svc, err := livexg.NewService(cfg, store)
	if err != nil {
		logger.Fatal("Failed to build projection service:", err)
	}

	if *httpAddr != "" {
		serveHTTP(svc, *httpAddr)
		return
	}

	s := server.NewServer(transport.NewStdioTransport(), svc)
	logger.Info("Starting MCP server...")
	if err := s.Start(); err != nil {
		logger.Error("Server error:", err)
		store.Close()
		os.Exit(1)
	}
	logger.Info("MCP server shutting down")
}

func serveHTTP(svc *livexg.Service, addr string) {
	srv := web.NewServer(svc)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info("Received signal:", sig.String())
		srv.Stop()
	}()

	if err := srv.Start(addr); err != nil {
		logger.Error("HTTP server error:", err)
		return
	}
	logger.Info("HTTP server shutting down")
}

func firstByte(s string, fallback byte) byte {
	if s == "" {
		return fallback
	}
	return s[0]
}
