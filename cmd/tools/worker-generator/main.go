// cmd/tools/worker-generator/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"accelerator-workers/pkg/registry"
)

// WorkerData holds data for templates
type WorkerData struct {
	Name         string
	PackageName  string
	TaskType     string
	Description  string
	Category     string
	Dir          string
	Timeout      string
	InputFields  []Field
	OutputFields []Field
	RequiresID   *Field
}

// Field is one struct field rendered into models.go.
type Field struct {
	Name    string
	GoType  string
	JSONTag string
}

// goTypeFromJSONType maps JSON schema types to Go types. Untyped properties
// ending in "Id" are treated as database ids.
func goTypeFromJSONType(name string, jsonType interface{}) string {
	if jt, ok := jsonType.(string); ok {
		switch jt {
		case "string":
			return "string"
		case "integer":
			return "int64"
		case "number":
			return "float64"
		case "boolean":
			return "bool"
		case "object":
			return "map[string]interface{}"
		case "array":
			if strings.HasSuffix(name, "Ids") {
				return "[]int64"
			}
			return "[]interface{}"
		}
	}
	switch {
	case strings.HasSuffix(name, "Id"):
		return "int64"
	case strings.HasSuffix(name, "Ids"):
		return "[]int64"
	}
	return "interface{}"
}

// fieldsFromSchema collects the schema's properties plus any required names
// that have no property entry, sorted by name.
func fieldsFromSchema(schema map[string]interface{}) []Field {
	props := map[string]interface{}{}
	if p, ok := schema["properties"].(map[string]interface{}); ok {
		props = p
	}
	if req, ok := schema["required"].([]interface{}); ok {
		for _, r := range req {
			if name, ok := r.(string); ok {
				if _, exists := props[name]; !exists {
					props[name] = map[string]interface{}{}
				}
			}
		}
	}

	fields := make([]Field, 0, len(props))
	for name, details := range props {
		var jsonType interface{}
		if d, ok := details.(map[string]interface{}); ok {
			jsonType = d["type"]
		}
		fields = append(fields, Field{
			Name:    exportedName(name),
			GoType:  goTypeFromJSONType(name, jsonType),
			JSONTag: fmt.Sprintf("`json:\"%s\"`", name),
		})
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })
	return fields
}

// exportedName turns a camelCase property into a Go field name, keeping the
// Id/Ids suffix idiomatic.
func exportedName(s string) string {
	if s == "" {
		return s
	}
	name := strings.ToUpper(s[:1]) + s[1:]
	switch {
	case strings.HasSuffix(name, "Ids"):
		name = strings.TrimSuffix(name, "Ids") + "IDs"
	case strings.HasSuffix(name, "Id"):
		name = strings.TrimSuffix(name, "Id") + "ID"
	}
	return name
}

// packageName strips hyphens the way the existing worker packages do.
func packageName(id string) string {
	return strings.ReplaceAll(id, "-", "")
}

func timeoutSeconds(timeout string) int {
	d, err := time.ParseDuration(timeout)
	if err != nil || d <= 0 {
		return 30
	}
	return int(d.Seconds())
}

const configTemplate = `// internal/workers/{{ .Dir }}/config.go
package {{ .PackageName }}

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: {{ .Timeout }} * time.Second,
	}
}
`

const modelsTemplate = `// internal/workers/{{ .Dir }}/models.go
package {{ .PackageName }}

type Input struct {
{{- range .InputFields }}
	{{ .Name }} {{ .GoType }} {{ .JSONTag }}
{{- end }}
}

type Output struct {
{{- range .OutputFields }}
	{{ .Name }} {{ .GoType }} {{ .JSONTag }}
{{- end }}
}
`

const handlerTemplate = `// internal/workers/{{ .Dir }}/handler.go
package {{ .PackageName }}

import (
	"context"

	"accelerator-workers/internal/common/camunda"
{{- if .RequiresID }}
	commonerrors "accelerator-workers/internal/common/errors"
{{- end }}
	"accelerator-workers/internal/common/logger"
	"accelerator-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "{{ .TaskType }}"
)

// Service is implemented by the domain package behind {{ .Name }}.
type Service interface {
	Execute(ctx context.Context, input *Input) (*Output, error)
}

type Handler struct {
	config  *Config
	service Service
	logger  logger.Logger
	runtime camunda.JobRuntime
}

func NewHandler(config *Config, service Service, obs *observability.Observability, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:  config,
		service: service,
		logger:  l,
		runtime: camunda.NewJobRuntime(TaskType, config.Timeout, l, obs),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	camunda.Process(client, job, h.runtime, h.Execute)
}

{{ if .Description }}// Execute: {{ .Description }}
{{ end -}}
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
{{- with .RequiresID }}
	if input.{{ .Name }} <= 0 {
		return nil, commonerrors.NewValidationFailedError("{{ jsonName .JSONTag }} is required", "")
	}
{{- end }}
	return h.service.Execute(ctx, input)
}
`

const testTemplate = `// internal/workers/{{ .Dir }}/handler_test.go
package {{ .PackageName }}

import (
	"context"
	"testing"

	"accelerator-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	calls int
}

func (f *fakeService) Execute(context.Context, *Input) (*Output, error) {
	f.calls++
	return &Output{}, nil
}

func TestHandler_Execute(t *testing.T) {
	service := &fakeService{}
	h := NewHandler(LoadConfig(), service, nil, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{
{{- with .RequiresID }}
		{{ .Name }}: 1,
{{- end }}
	})
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Equal(t, 1, service.calls)
}
`

func main() {
	activity := flag.String("activity", "", "Activity ID from registry (e.g., generate-rnas)")
	outputDir := flag.String("output", "./internal/workers/", "Output directory for the generated worker")
	registryPath := flag.String("registry", "configs/activity-registry.json", "Path to the activity registry JSON file")
	force := flag.Bool("force", false, "Overwrite existing files")
	flag.Parse()

	if *activity == "" {
		fmt.Println("Usage: worker-generator --activity <id> [--output <dir>] [--registry <path>] [--force]")
		fmt.Println("\nExample:")
		fmt.Println("  go run ./cmd/tools/worker-generator --activity check-generation-gates")
		os.Exit(1)
	}

	reg, err := registry.LoadRegistry(*registryPath)
	if err != nil {
		fmt.Printf("Error loading registry from %s: %v\n", *registryPath, err)
		os.Exit(1)
	}

	found, ok := reg.Find(*activity)
	if !ok {
		fmt.Printf("Activity '%s' not found in registry %s\n", *activity, *registryPath)
		os.Exit(1)
	}

	data := buildWorkerData(found)
	workerDir := filepath.Join(*outputDir, filepath.FromSlash(data.Dir))
	if err := os.MkdirAll(workerDir, 0o755); err != nil {
		fmt.Printf("Error creating directory: %v\n", err)
		os.Exit(1)
	}

	funcMap := template.FuncMap{
		"jsonName": func(tag string) string {
			return strings.TrimSuffix(strings.TrimPrefix(tag, "`json:\""), "\"`")
		},
	}

	files := map[string]string{
		"config.go":       configTemplate,
		"models.go":       modelsTemplate,
		"handler.go":      handlerTemplate,
		"handler_test.go": testTemplate,
	}
	for filename, tmplStr := range files {
		path := filepath.Join(workerDir, filename)
		if _, err := os.Stat(path); err == nil && !*force {
			fmt.Printf("- skipped %s (exists)\n", path)
			continue
		}
		if err := render(path, filename, tmplStr, funcMap, data); err != nil {
			fmt.Printf("Error generating %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("✓ Generated %s\n", path)
	}

	fmt.Printf("\nWorker scaffold generated at: %s\n", workerDir)
	fmt.Printf("Next: point the Service interface at the domain service and register the handler in cmd/worker-manager/wiring.go\n")
}

func buildWorkerData(a *registry.Activity) WorkerData {
	data := WorkerData{
		Name:         a.DisplayName,
		PackageName:  packageName(a.ID),
		TaskType:     a.TaskType,
		Description:  a.Description,
		Category:     a.Category,
		Dir:          strings.ToLower(a.Category) + "/" + a.ID,
		Timeout:      fmt.Sprint(timeoutSeconds(a.Timeout)),
		InputFields:  fieldsFromSchema(a.InputSchema),
		OutputFields: fieldsFromSchema(a.OutputSchema),
	}
	for i, f := range data.InputFields {
		if f.GoType == "int64" && (f.Name == "StartupID" || f.Name == "ItemID") {
			data.RequiresID = &data.InputFields[i]
			break
		}
	}
	return data
}

func render(path, name, tmplStr string, funcs template.FuncMap, data WorkerData) error {
	tmpl, err := template.New(name).Funcs(funcs).Parse(tmplStr)
	if err != nil {
		return fmt.Errorf("parse template: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return tmpl.Execute(file, data)
}
