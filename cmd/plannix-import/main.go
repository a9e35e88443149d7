package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ViegasWedjat/Revit01-Serpa/internal/config"
	"github.com/ViegasWedjat/Revit01-Serpa/internal/pipeline"
	"github.com/ViegasWedjat/Revit01-Serpa/internal/store"
	"github.com/ViegasWedjat/Revit01-Serpa/pkg/logger"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("plannix-import", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML configuration file")
	modelPath := fs.String("model", "", "sqlite model snapshot to update")
	reportPath := fs.String("file", "", "fixed-width status report exported by the planning tool")
	logMode := fs.String("log", "", "log mode: dev or prod")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *modelPath == "" || *reportPath == "" {
		fmt.Fprintln(stderr, "plannix-import: -model and -file are required")
		fs.Usage()
		return 2
	}

	spec, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "plannix-import: %v\n", err)
		return 1
	}
	if *logMode != "" {
		spec.LogMode = *logMode
	}
	log, err := logger.New(spec.LogMode)
	if err != nil {
		fmt.Fprintf(stderr, "plannix-import: %v\n", err)
		return 1
	}
	defer log.Sync()

	s, err := store.Open(*modelPath)
	if err != nil {
		log.Error("cannot open model snapshot", "path", *modelPath, "error", err)
		return 1
	}
	defer s.Close()
	host, err := s.LoadSnapshot()
	if err != nil {
		log.Error("cannot load model snapshot", "path", *modelPath, "error", err)
		return 1
	}

	f, err := os.Open(*reportPath)
	if err != nil {
		log.Error("cannot open status report", "path", *reportPath, "error", err)
		return 1
	}
	defer f.Close()

	result, err := pipeline.ImportStatus(f, host, s, spec, log)
	if err != nil {
		log.Error("status import failed", "error", err)
		return 1
	}
	fmt.Fprintf(stdout, "✅ Imported %d of %d lines (%d parameters written)\n", result.Accepted, result.Lines, result.Written)
	return 0
}
