package contracts

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/scrape-request.v1.json
var scrapeRequestSchema string

var compiledSchemas = make(map[string]*jsonschema.Schema)

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	const name = "scrape-request.v1.json"
	if err := compiler.AddResource(name, strings.NewReader(scrapeRequestSchema)); err != nil {
		log.Fatalf("failed to add schema resource %s: %v", name, err)
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		log.Fatalf("failed to compile schema %s: %v", name, err)
	}

	compiledSchemas["ScrapeRequest/1.0.0"] = schema
}

// ValidateRequest checks a request body against the named contract.
func ValidateRequest(requestType, version string, body []byte) error {
	key := fmt.Sprintf("%s/%s", requestType, version)
	schema, ok := compiledSchemas[key]
	if !ok {
		return fmt.Errorf("schema for request '%s' version '%s' not found", requestType, version)
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("request body is not a valid JSON: %w", err)
	}

	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("JSON schema validation failed: %w", err)
	}

	return nil
}
