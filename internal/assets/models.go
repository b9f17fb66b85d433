package assets

import _ "embed"

// ModelsData holds the catalog of chat models offered by the LLM agent backend.
//
//go:embed models.json
var ModelsData []byte
