package validation

import (
	"fmt"
	"sort"
	"strings"

	"menu-workers/internal/common/errors"
	"menu-workers/pkg/registry"

	"github.com/xeipuuv/gojsonschema"
)

// Validator holds one compiled input schema per task type.
type Validator struct {
	schemas map[string]*gojsonschema.Schema
}

// NewValidator compiles the input schema of every registry activity that has one.
func NewValidator(reg *registry.ActivityRegistry) (*Validator, error) {
	v := &Validator{schemas: make(map[string]*gojsonschema.Schema)}
	if reg == nil {
		return v, nil
	}
	for _, a := range reg.Activities {
		if len(a.InputSchema) == 0 {
			continue
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(a.InputSchema))
		if err != nil {
			return nil, fmt.Errorf("compile input schema for %s: %w", a.TaskType, err)
		}
		v.schemas[a.TaskType] = schema
	}
	return v, nil
}

// HasSchema reports whether taskType has a compiled schema.
func (v *Validator) HasSchema(taskType string) bool {
	if v == nil {
		return false
	}
	_, ok := v.schemas[taskType]
	return ok
}

// Validate checks raw job variables against the task's schema. Task types
// without a schema pass.
func (v *Validator) Validate(taskType string, variables []byte) error {
	if v == nil {
		return nil
	}
	schema, ok := v.schemas[taskType]
	if !ok {
		return nil
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(variables))
	if err != nil {
		return errors.NewInvalidInputError(fmt.Sprintf("variables are not valid JSON: %v", err))
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		msgs = append(msgs, fmt.Sprintf("%s: %s", re.Field(), re.Description()))
	}
	sort.Strings(msgs)
	return errors.NewInvalidInputError(strings.Join(msgs, "; "))
}
