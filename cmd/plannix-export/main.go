package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/ViegasWedjat/Revit01-Serpa/internal/config"
	"github.com/ViegasWedjat/Revit01-Serpa/internal/model"
	"github.com/ViegasWedjat/Revit01-Serpa/internal/pipeline"
	"github.com/ViegasWedjat/Revit01-Serpa/internal/store"
	"github.com/ViegasWedjat/Revit01-Serpa/pkg/logger"
	"github.com/ViegasWedjat/Revit01-Serpa/pkg/utils"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("plannix-export", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML configuration file")
	modelPath := fs.String("model", "", "model snapshot (.db sqlite or .xlsx workbook)")
	outDir := fs.String("out", "", "output directory (default: directory of the saved model)")
	logMode := fs.String("log", "", "log mode: dev or prod")
	snapshotPath := fs.String("snapshot", "", "also save the loaded model as an .xlsx workbook")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *modelPath == "" {
		fmt.Fprintln(stderr, "plannix-export: -model is required")
		fs.Usage()
		return 2
	}

	spec, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "plannix-export: %v\n", err)
		return 1
	}
	if *outDir != "" {
		spec.Output.Dir = *outDir
	}
	if *logMode != "" {
		spec.LogMode = *logMode
	}
	log, err := logger.New(spec.LogMode)
	if err != nil {
		fmt.Fprintf(stderr, "plannix-export: %v\n", err)
		return 1
	}
	defer log.Sync()

	host, err := openModel(*modelPath)
	if err != nil {
		log.Error("cannot open model snapshot", "path", *modelPath, "error", err)
		return 1
	}
	if *snapshotPath != "" {
		if err := store.WriteWorkbook(host, *snapshotPath); err != nil {
			log.Error("cannot write workbook snapshot", "path", *snapshotPath, "error", err)
			return 1
		}
		log.Info("workbook snapshot written", "path", *snapshotPath)
	}

	runID := uuid.New().String()
	summary, err := pipeline.Run(host, spec, log, runID)
	switch {
	case errors.Is(err, pipeline.ErrNoValidElements):
		fmt.Fprintln(stdout, "⚠️  No valid piece found, the XML file was not generated.")
		return 0
	case errors.Is(err, pipeline.ErrEmptySelection):
		fmt.Fprintln(stderr, "❌ Select at least one element or assembly before exporting.")
		return 1
	case errors.Is(err, pipeline.ErrUnsavedHost):
		fmt.Fprintln(stderr, "❌ The model has not been saved yet; save it or pass -out.")
		return 1
	case err != nil:
		log.Error("export failed", "run_id", runID, "error", err)
		return 1
	}
	fmt.Fprintf(stdout, "✅ Exported %d pieces to %s\n", summary.Result.RecordCount, summary.Result.Path)
	return 0
}

func openModel(path string) (*model.Snapshot, error) {
	switch utils.GetFileType(path) {
	case "excel":
		return store.LoadWorkbook(path)
	case "sqlite":
		s, err := store.Open(path)
		if err != nil {
			return nil, err
		}
		defer s.Close()
		return s.LoadSnapshot()
	default:
		return nil, fmt.Errorf("unsupported model snapshot %q", path)
	}
}
