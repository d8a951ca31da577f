package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/richard-senior/livexg/internal/config"
	"github.com/richard-senior/livexg/internal/logger"
	"github.com/richard-senior/livexg/internal/processor"
	"github.com/richard-senior/livexg/pkg/util/livexg"
)

func main() {
	settings := config.Load()

	debug := flag.Bool("debug", false, "Enable debug logging")
	inputFile := flag.String("input", "", "Snapshot JSON file (if not provided, stdin will be used)")
	outputFile := flag.String("output", "", "Output file path (if not provided, stdout will be used)")
	configPath := flag.String("config", settings.ConfigPath, "YAML file layered over the default engine configuration")
	dbPath := flag.String("db", "", "League preset database, needed only when the snapshot names a league")
	flag.Parse()

	logger.SetLogOutput('c')
	if *debug {
		logger.SetLevel(logger.DEBUG)
		logger.Debug("Debug logging enabled")
	} else {
		logger.SetLevel(logger.WARN)
	}

	var input []byte
	var err error
	if *inputFile != "" {
		input, err = os.ReadFile(*inputFile)
	} else {
		input, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		logger.Fatal("Failed to read snapshot", err)
	}

	cfg, err := livexg.LoadConfigFile(*configPath)
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	var store *livexg.PresetStore
	if *dbPath != "" {
		if store, err = livexg.OpenPresetStore(*dbPath); err != nil {
			logger.Fatal("Failed to open preset database", err)
		}
		defer store.Close()
	}

	svc, err := livexg.NewService(cfg, store)
	if err != nil {
		logger.Fatal("Failed to build projection service", err)
	}

	result, err := processor.ProcessRequest(svc, input)
	exitCode := 0
	var reqErr *processor.RequestError
	switch {
	case errors.As(err, &reqErr):
		exitCode = 2
	case err != nil:
		logger.Error("Failed to process snapshot", err)
		store.Close()
		os.Exit(1)
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, append(result, '\n'), 0644); err != nil {
			logger.Fatal("Failed to write to output file", err)
		}
	} else {
		fmt.Println(string(result))
	}

	if exitCode != 0 {
		store.Close()
		os.Exit(exitCode)
	}
}
