// Package utils holds helpers shared across commands.
package utils

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GetSchemaFromConfig reflects config into an indented JSON schema. The
// fields of a struct config are expanded at the top level and title is set on
// the root schema.
func GetSchemaFromConfig(config any, title string) (string, error) {
	reflector := &jsonschema.Reflector{ExpandedStruct: true}

	schema := reflector.Reflect(config)
	schema.Title = title

	jsonSchemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(jsonSchemaBytes), nil
}
