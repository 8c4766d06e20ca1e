// cmd/tools/registry-updater/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"accelerator-workers/pkg/registry"
)

var registryPath string

func main() {
	addCmd := flag.NewFlagSet("add", flag.ExitOnError)
	updateCmd := flag.NewFlagSet("update", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)

	for _, fs := range []*flag.FlagSet{addCmd, updateCmd, validateCmd} {
		fs.StringVar(&registryPath, "path", "configs/activity-registry.json", "Path to registry file")
	}

	idAdd := addCmd.String("id", "", "Activity ID (e.g., generate-rnas)")
	displayName := addCmd.String("displayName", "", "Display Name (e.g., Generate RNAs)")
	description := addCmd.String("description", "", "Description")
	category := addCmd.String("category", "", "Category (readiness, workitems, approval, assessment, startup)")
	taskType := addCmd.String("taskType", "", "Zeebe job type (defaults to id)")
	version := addCmd.String("version", "1.0.0", "Version")
	implStatus := addCmd.String("status", registry.StatusPlanned, "Implementation Status (planned, completed)")
	timeout := addCmd.String("timeout", "30s", "Job timeout")

	idUpdate := updateCmd.String("id", "", "Activity ID to update")
	field := updateCmd.String("field", "", "Field to update (status, version, etc.)")
	value := updateCmd.String("value", "", "New value for the field")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add":
		_ = addCmd.Parse(os.Args[2:])
		if *idAdd == "" || *displayName == "" || *category == "" {
			fmt.Println("Error: id, displayName and category are required for add.")
			addCmd.Usage()
			os.Exit(1)
		}
		if !registry.IsKnownCategory(*category) {
			fmt.Printf("Error: unknown category %q\n", *category)
			os.Exit(1)
		}
		if *taskType == "" {
			*taskType = *idAdd
		}
		activity := registry.Activity{
			ID:                   *idAdd,
			DisplayName:          *displayName,
			Description:          *description,
			Category:             *category,
			Version:              *version,
			TaskType:             *taskType,
			ImplementationStatus: *implStatus,
			InputSchema:          map[string]interface{}{},
			OutputSchema:         map[string]interface{}{},
			ErrorCodes:           []string{},
			Timeout:              *timeout,
			Tags:                 []string{},
		}
		if err := addActivity(&activity); err != nil {
			fmt.Printf("Error adding activity: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Added activity: %s\n", *idAdd)

	case "update":
		_ = updateCmd.Parse(os.Args[2:])
		if *idUpdate == "" || *field == "" || *value == "" {
			fmt.Println("Error: id, field, and value are required for update.")
			updateCmd.Usage()
			os.Exit(1)
		}
		if err := updateActivity(*idUpdate, *field, *value); err != nil {
			fmt.Printf("Error updating activity: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Updated activity %s, field %s to %s\n", *idUpdate, *field, *value)

	case "validate":
		_ = validateCmd.Parse(os.Args[2:])
		reg, err := registry.LoadRegistry(registryPath)
		if err == nil {
			err = reg.Validate()
		}
		if err != nil {
			fmt.Printf("Registry validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Registry validation passed. Found %d activities.\n", len(reg.Activities))

	default:
		help()
	}
}

func addActivity(activity *registry.Activity) error {
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to load registry: %w", err)
		}
		reg = &registry.ActivityRegistry{Version: "1.0.0"}
	}

	if _, exists := reg.Find(activity.ID); exists {
		return fmt.Errorf("activity with ID %s already exists", activity.ID)
	}

	reg.Activities = append(reg.Activities, *activity)
	reg.LastUpdated = time.Now().Format(time.RFC3339)
	return registry.Save(reg, registryPath)
}

func updateActivity(id, field, value string) error {
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	a, ok := reg.Find(id)
	if !ok {
		return fmt.Errorf("activity with ID %s not found", id)
	}

	switch field {
	case "status":
		a.ImplementationStatus = value
	case "version":
		a.Version = value
	case "displayName":
		a.DisplayName = value
	case "description":
		a.Description = value
	case "category":
		a.Category = value
	case "taskType":
		a.TaskType = value
	case "timeout":
		a.Timeout = value
	case "retries":
		retries, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid retries value: %w", err)
		}
		a.Retries = retries
	default:
		return fmt.Errorf("unknown field: %s", field)
	}

	reg.LastUpdated = time.Now().Format(time.RFC3339)
	return registry.Save(reg, registryPath)
}

func help() {
	fmt.Println(`
Usage: registry-updater <command> [flags]

Commands:
  add       Add a new activity to the registry
  update    Update an existing activity's field
  validate  Validate the registry file
  help      Show this help message

Examples:
  registry-updater add -id generate-rnas -displayName "Generate RNAs" -category workitems -timeout 90s
  registry-updater update -id generate-rnas -field status -value verified
  registry-updater validate -path configs/activity-registry.json`)
}
