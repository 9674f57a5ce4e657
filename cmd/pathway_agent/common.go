package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonathan/career-pathway/internal/analysis"
	"github.com/jonathan/career-pathway/internal/catalog"
	"github.com/jonathan/career-pathway/internal/charts"
	"github.com/jonathan/career-pathway/internal/config"
	"github.com/jonathan/career-pathway/internal/db"
	"github.com/jonathan/career-pathway/internal/llm"
	"github.com/jonathan/career-pathway/internal/observability"
	"github.com/jonathan/career-pathway/internal/platform/logger"
	"github.com/jonathan/career-pathway/internal/schemas"
	"github.com/jonathan/career-pathway/internal/types"
)

// env bundles what every command needs once flags are parsed.
type env struct {
	cfg     *config.Config
	log     *logger.Logger
	printer *observability.Printer
}

func loadEnv() (*env, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Verbose = true
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return &env{cfg: cfg, log: log, printer: observability.NewPrinter(os.Stdout)}, nil
}

// scales returns the built-in scales overlaid with the catalog's and the config's.
func (e *env) scales() (charts.Scales, error) {
	cat, err := catalog.LoadOrDefault(e.cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	return cat.Scales().Merge(e.cfg.FrameworkScales), nil
}

// newService wires the repository, catalog and optional LLM client into an analysis service.
// The caller closes the returned repository.
func (e *env) newService(ctx context.Context, client llm.Client, metrics *observability.Metrics) (*analysis.Service, db.Repository, error) {
	repo, err := db.Open(ctx, e.cfg.DatabaseURL, e.cfg.SQLitePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s store: %w", e.cfg.StoreKind(), err)
	}
	cat, err := catalog.LoadOrDefault(e.cfg.CatalogPath)
	if err != nil {
		repo.Close()
		return nil, nil, err
	}

	opts := analysis.Options{
		Repository: repo,
		Catalog:    cat,
		Scales:     e.cfg.FrameworkScales,
		Metrics:    metrics,
		Logger:     e.log,
		LLM:        client,
		TopN:       e.cfg.DefaultTopN,
		RadarSize:  e.cfg.RadarSize,
	}
	if e.cfg.Verbose {
		opts.OnProgress = func(ev analysis.ProgressEvent) {
			fmt.Printf("[VERBOSE] %s: %s\n", ev.Step, ev.Message)
		}
	}
	svc, err := analysis.NewService(opts)
	if err != nil {
		repo.Close()
		return nil, nil, err
	}
	e.log.Debug("analysis service ready", "store", e.cfg.StoreKind(), "roles", len(cat.Roles))
	return svc, repo, nil
}

// readInput reads path, or stdin when path is "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file %s: %w", path, err)
	}
	return data, nil
}

// readSkillInputs loads a SkillInputs file, warning when it does not match its schema.
func readSkillInputs(path string) (types.SkillInputs, error) {
	var in types.SkillInputs
	data, err := readInput(path)
	if err != nil {
		return in, err
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return in, fmt.Errorf("failed to unmarshal skill inputs JSON: %w", err)
	}
	if path != "-" {
		if schemaPath := schemas.ResolveSchemaPath(schemas.SkillInputsSchema); schemaPath != "" {
			if err := schemas.ValidateJSON(schemaPath, path); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "Warning: Input skill inputs failed schema validation: %v\n", err)
			}
		}
	}
	return in, nil
}

// checkOutput validates doc against a schema. A violation is an error; a schema that cannot be
// found or loaded only warns.
func checkOutput(schemaRel string, doc any, what string) error {
	schemaPath := schemas.ResolveSchemaPath(schemaRel)
	if schemaPath == "" {
		return nil
	}
	err := schemas.ValidateDocument(schemaPath, doc)
	if err == nil {
		return nil
	}
	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		return fmt.Errorf("generated %s is invalid: %w", what, err)
	}
	_, _ = fmt.Fprintf(os.Stderr, "Warning: Could not validate %s against schema: %v\n", what, err)
	return nil
}

// writeOutput writes v as indented JSON to path, or stdout when path is empty or "-".
func writeOutput(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output JSON: %w", err)
	}
	data = append(data, '\n')

	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}

	// Ensure output directory exists
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	_, _ = fmt.Fprintf(os.Stdout, "Successfully wrote %s\n", path)
	return nil
}
