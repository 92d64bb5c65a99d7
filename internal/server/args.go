package server

import (
	"fmt"

	"capctl/internal/capability"
)

// mapArguments turns the wire argument object into the positional argument
// slice the handler expects. Declared parameters are mapped in order, with
// defaults filled in; a missing required parameter is an error. Records with
// an ArgsType (struct-reflected schema) receive the whole argument object as
// a single positional argument.
func mapArguments(rec *capability.Record, args map[string]interface{}) ([]interface{}, error) {
	if rec.ArgsType != nil {
		if args == nil {
			args = map[string]interface{}{}
		}
		return []interface{}{args}, nil
	}

	positional := make([]interface{}, 0, len(rec.Params))
	for _, p := range rec.Params {
		v, ok := args[p.Name]
		if !ok {
			if p.Required {
				return nil, fmt.Errorf("missing required parameter %q", p.Name)
			}
			v = p.Default
		}
		positional = append(positional, v)
	}
	return positional, nil
}

// consumeApproval strips the approval marker from the argument object and
// reports whether it was set. The marker is transport metadata, not a
// capability parameter.
func consumeApproval(args map[string]interface{}) bool {
	if args == nil {
		return false
	}
	v, ok := args[approvedArgument]
	if !ok {
		return false
	}
	delete(args, approvedArgument)
	approved, _ := v.(bool)
	return approved
}
