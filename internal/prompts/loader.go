// Package prompts holds the embedded LLM prompt templates used for report generation.
// Each JSON file maps a key to a text/template body.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"
	"text/template"
)

//go:embed *.json
var promptFiles embed.FS

// Prompt files and keys used by the report generator.
const (
	ReportFile        = "report.json"
	KeyGenerateReport = "generate-career-report"
	KeyRepairReport   = "repair-report-json"
)

// file is one parsed prompt file. Templates are compiled once, on first use.
type file struct {
	raw       map[string]string
	templates map[string]*template.Template
}

var (
	mu     sync.Mutex
	loaded = map[string]*file{}
)

func open(filename string) (*file, error) {
	mu.Lock()
	defer mu.Unlock()

	if f, ok := loaded[filename]; ok {
		return f, nil
	}
	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	f := &file{templates: map[string]*template.Template{}}
	if err := json.Unmarshal(data, &f.raw); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}
	for key, body := range f.raw {
		tmpl, err := template.New(key).Option("missingkey=error").Parse(body)
		if err != nil {
			return nil, fmt.Errorf("prompt %s/%s: %w", filename, key, err)
		}
		f.templates[key] = tmpl
	}
	loaded[filename] = f
	return f, nil
}

// Get returns the unrendered template text of a prompt.
func Get(filename, key string) (string, error) {
	f, err := open(filename)
	if err != nil {
		return "", err
	}
	body, ok := f.raw[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return body, nil
}

// Render executes a prompt with data. Every placeholder the prompt uses must be present.
func Render(filename, key string, data map[string]string) (string, error) {
	f, err := open(filename)
	if err != nil {
		return "", err
	}
	tmpl, ok := f.templates[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render prompt %s/%s: %w", filename, key, err)
	}
	return sb.String(), nil
}

// List returns the prompt keys of a file in sorted order.
func List(filename string) ([]string, error) {
	f, err := open(filename)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(f.raw))
	for key := range f.raw {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys, nil
}
