// Command isv2oc converts the Interslavic source dictionary into an
// OpenCorpora-style XML morphological dictionary.
//
// Flags:
//
//	-config   path to a YAML config file (default: environment only)
//	-source   source dictionary, .tsv, .tsv.gz or .tsv.bz2
//	-mapping  grammeme mapping file
//	-out      output XML path
//	-merge    overwrite|union, for lemmas with the same signature
//	-stats    print conversion statistics as JSON to stdout
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"log/slog"
	"os"

	isv "github.com/bt2901/interslavic-utils"
	"github.com/bt2901/interslavic-utils/internal/app"
	"github.com/bt2901/interslavic-utils/internal/config"
)

func main() {
	configFlag := flag.String("config", "", "path to YAML config file")
	sourceFlag := flag.String("source", "", "source dictionary (overrides config)")
	mappingFlag := flag.String("mapping", "", "grammeme mapping file (overrides config)")
	outFlag := flag.String("out", "", "output XML path (overrides config)")
	mergeFlag := flag.String("merge", "", "merge policy: overwrite or union (overrides config)")
	statsFlag := flag.Bool("stats", false, "print conversion statistics as JSON")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)

	// CLI flags override config.
	conv := cfg.Convert
	if *sourceFlag != "" {
		conv.SourcePath = *sourceFlag
	}
	if *mappingFlag != "" {
		conv.MappingPath = *mappingFlag
	}
	if *outFlag != "" {
		conv.OutputPath = *outFlag
	}
	if *mergeFlag != "" {
		conv.Merge = *mergeFlag
	}
	merge, err := isv.ParseMergePolicy(conv.Merge)
	if err != nil {
		logger.Error("parse merge policy", slog.String("error", err.Error()))
		os.Exit(1)
	}

	tagSet, err := isv.LoadTagSet(conv.MappingPath)
	if err != nil {
		logger.Error("load grammemes", slog.String("error", err.Error()))
		os.Exit(1)
	}
	for _, name := range tagSet.Orphans() {
		logger.Warn("grammeme parent is not a grammeme", slog.String("grammeme", name))
	}

	dict, err := isv.Load(conv.SourcePath, isv.Options{
		Logger:   logger,
		Merge:    merge,
		Version:  conv.Version,
		Revision: conv.Revision,
	})
	if err != nil {
		if isv.IsFatal(err) {
			logger.Error("conversion aborted: source violates the table format",
				slog.String("error", err.Error()))
		} else {
			logger.Error("read source", slog.String("error", err.Error()))
		}
		os.Exit(1)
	}

	if err := dict.ExportFile(conv.OutputPath, tagSet); err != nil {
		logger.Error("export failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *statsFlag {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(dict.Stats()); err != nil {
			logger.Error("encode stats", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("conversion completed", slog.String("output", conv.OutputPath))
}
