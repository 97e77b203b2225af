package config

import "github.com/rxtech-lab/fxgold/pkg/utils"

// SchemaTitle is the title of the config JSON schema.
const SchemaTitle = "fxgold configuration"

// Schema returns the JSON schema of the config file.
func Schema() (string, error) {
	return utils.GetSchemaFromConfig(&Config{}, SchemaTitle)
}
