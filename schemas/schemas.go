// Package schemas holds the JSON Schemas for config files and exports.
package schemas

import _ "embed"

// Config validates the --config JSON file.
//
//go:embed config.schema.json
var Config string

// Export validates `jobdash export --out file.json` output.
//
//go:embed export.schema.json
var Export string
