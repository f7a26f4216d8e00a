package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"menu-workers/internal/common/validation"
	"menu-workers/internal/menu/roles"
	"menu-workers/pkg/registry"
)

const defaultRegistryPath = "configs/activity-registry.json"

func main() {
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	validatePath := validateCmd.String("path", defaultRegistryPath, "Path to the activity registry")

	listCmd := flag.NewFlagSet("list", flag.ExitOnError)
	listPath := listCmd.String("path", defaultRegistryPath, "Path to the activity registry")
	category := listCmd.String("category", "", "Only list activities in this category")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "validate":
		validateCmd.Parse(os.Args[2:])
		reg, err := registry.LoadRegistry(*validatePath)
		if err != nil {
			fmt.Printf("Error loading registry: %v\n", err)
			os.Exit(1)
		}
		problems := check(reg)
		for _, p := range problems {
			fmt.Printf("  - %v\n", p)
		}
		if len(problems) > 0 {
			fmt.Printf("Registry validation failed with %d problem(s).\n", len(problems))
			os.Exit(1)
		}
		fmt.Printf("Registry validation passed. Found %d activities.\n", len(reg.Activities))

	case "list":
		listCmd.Parse(os.Args[2:])
		reg, err := registry.LoadRegistry(*listPath)
		if err != nil {
			fmt.Printf("Error loading registry: %v\n", err)
			os.Exit(1)
		}
		for _, line := range list(reg, *category) {
			fmt.Println(line)
		}

	case "help":
		fallthrough
	default:
		help()
	}
}

// check returns every problem found in reg. Schemas are compiled with the same
// validator the worker uses at startup.
func check(reg *registry.ActivityRegistry) []error {
	var problems []error
	if len(reg.Activities) == 0 {
		return append(problems, fmt.Errorf("registry contains no activities"))
	}

	ids := make(map[string]bool, len(reg.Activities))
	for _, a := range reg.Activities {
		if a.ID == "" {
			problems = append(problems, fmt.Errorf("activity %s missing required field: id", a.TaskType))
		} else if ids[a.ID] {
			problems = append(problems, fmt.Errorf("duplicate activity id: %s", a.ID))
		}
		ids[a.ID] = true

		if a.DisplayName == "" {
			problems = append(problems, fmt.Errorf("activity %s missing required field: displayName", a.TaskType))
		}
		if a.Category == "" {
			problems = append(problems, fmt.Errorf("activity %s missing required field: category", a.TaskType))
		}
		if a.Capability != "" && !roles.Known(roles.Capability(a.Capability)) {
			problems = append(problems, fmt.Errorf("activity %s: unknown capability %q", a.TaskType, a.Capability))
		}
		if a.Timeout != "" {
			if d, err := time.ParseDuration(a.Timeout); err != nil || d <= 0 {
				problems = append(problems, fmt.Errorf("activity %s: invalid timeout %q", a.TaskType, a.Timeout))
			}
		}
		if a.InputSchema == nil {
			problems = append(problems, fmt.Errorf("activity %s has no inputSchema", a.TaskType))
		}
	}

	if _, err := validation.NewValidator(reg); err != nil {
		problems = append(problems, err)
	}
	return problems
}

func list(reg *registry.ActivityRegistry, category string) []string {
	var lines []string
	for _, a := range reg.Activities {
		if category != "" && a.Category != category {
			continue
		}
		capability := a.Capability
		if capability == "" {
			capability = "-"
		}
		lines = append(lines, fmt.Sprintf("%-28s %-10s %-16s %s", a.TaskType, a.Category, capability, strings.Join(a.ErrorCodes, ",")))
	}
	sort.Strings(lines)
	return lines
}

func help() {
	fmt.Print(`
Usage: registry-check <command> [flags]

Commands:
  validate  Check ids, capabilities, timeouts and input schemas
  list      Print task types with their category, capability and error codes
  help      Show this help message

Examples:
  registry-check validate -path configs/activity-registry.json
  registry-check list -category stock

Use 'registry-check <command> -h' for more information about a command.
` + "\n")
}
