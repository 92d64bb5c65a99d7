// Package schema derives JSON Schemas for capability parameters and
// validates invocation arguments against them.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"capctl/internal/capability"

	"github.com/invopop/jsonschema"
	jsvalidate "github.com/santhosh-tekuri/jsonschema/v5"
)

// ForRecord returns the input schema advertised for a capability. A record
// with an ArgsType struct gets a reflected schema; otherwise the schema is
// assembled from the declared Params. A record with neither takes no
// arguments.
func ForRecord(rec *capability.Record) (map[string]interface{}, error) {
	if rec.ArgsType != nil {
		return reflectSchema(rec.ArgsType)
	}
	return fromParams(rec.Params), nil
}

func reflectSchema(argsType interface{}) (map[string]interface{}, error) {
	reflector := new(jsonschema.Reflector)
	reflector.ExpandedStruct = true
	reflector.DoNotReference = true

	s := reflector.Reflect(argsType)
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reflected schema: %w", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode reflected schema: %w", err)
	}
	// The $schema marker is noise in a tool listing.
	delete(out, "$schema")
	return out, nil
}

func fromParams(params []capability.Param) map[string]interface{} {
	properties := make(map[string]interface{}, len(params))
	var required []string

	for _, p := range params {
		prop := map[string]interface{}{
			"type": paramType(p.Type),
		}
		if p.Description != "" {
			prop["description"] = p.Description
		}
		if len(p.Enum) > 0 {
			prop["enum"] = p.Enum
		}
		if p.Default != nil {
			prop["default"] = p.Default
		}
		properties[p.Name] = prop
		if p.Required {
			required = append(required, p.Name)
		}
	}

	out := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		out["required"] = required
	}
	return out
}

func paramType(t string) string {
	switch t {
	case "string", "number", "integer", "boolean", "object", "array":
		return t
	case "":
		return "string"
	default:
		return "string"
	}
}

// Validate checks arguments against an input schema. The returned error
// describes the first violation found.
func Validate(inputSchema map[string]interface{}, args map[string]interface{}) error {
	data, err := json.Marshal(inputSchema)
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}

	compiler := jsvalidate.NewCompiler()
	if err := compiler.AddResource("arguments.json", bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to load schema: %w", err)
	}
	compiled, err := compiler.Compile("arguments.json")
	if err != nil {
		return fmt.Errorf("failed to compile schema: %w", err)
	}

	// Round-trip through JSON so argument values use the generic types the
	// validator expects (float64 numbers, map[string]interface{} objects).
	if args == nil {
		args = map[string]interface{}{}
	}
	argData, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("failed to marshal arguments: %w", err)
	}
	var generic interface{}
	if err := json.Unmarshal(argData, &generic); err != nil {
		return fmt.Errorf("failed to decode arguments: %w", err)
	}

	if err := compiled.Validate(generic); err != nil {
		return fmt.Errorf("arguments do not match schema: %w", err)
	}
	return nil
}
