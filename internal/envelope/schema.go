// Package envelope pins the JSON shape of the extraction result so exporters
// and downstream consumers can rely on it.
package envelope

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Schema returns a JSON-Schema (draft 2020-12 subset) for the serialized
// ExtractionResult. Monetary values serialize as exact decimal strings.
func Schema() map[string]any {
	sellerProps := map[string]any{
		"seller_name":    map[string]any{"type": "string"},
		"seller_address": map[string]any{"type": "string"},
		"seller_phone":   map[string]any{"type": "string"},
		"seller_email":   map[string]any{"type": "string"},
		"seller_tax_id":  map[string]any{"type": "string"},
		"seller_vat_reg": map[string]any{"type": "string"},
	}

	headerProps := map[string]any{
		"seller": map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"properties":           sellerProps,
		},
		"invoice_no":    map[string]any{"type": "string"},
		"code_no":       map[string]any{"type": "string"},
		"date":          map[string]any{"type": "string"},
		"customer_name": map[string]any{"type": "string"},
		"address":       map[string]any{"type": "string"},
		"phone":         map[string]any{"type": "string"},
		"email":         map[string]any{"type": "string"},
		"reference":     map[string]any{"type": "string"},
		"net_value":     decimalProp(),
		"vat":           decimalProp(),
		"gross_value":   decimalProp(),
	}

	itemProps := map[string]any{
		"item_code":   map[string]any{"type": "string"},
		"description": map[string]any{"type": "string", "minLength": 1, "maxLength": 255},
		"qty":         map[string]any{"type": "integer", "minimum": 1},
		"rate":        decimalProp(),
		"value":       decimalProp(),
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"success": map[string]any{"type": "boolean"},
			"error": map[string]any{
				"type": "string",
				"enum": []string{"ocr_unavailable", "invalid_image", "ocr_failed"},
			},
			"message": map[string]any{"type": "string"},
			"header": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties":           headerProps,
			},
			"items": map[string]any{
				// a degraded parse leaves the item slice nil
				"type": []string{"array", "null"},
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"properties":           itemProps,
					"required":             []string{"description", "qty"},
				},
			},
			"raw_text":      map[string]any{"type": "string"},
			"ocr_available": map[string]any{"type": "boolean"},
		},
		"required": []string{"success", "header", "raw_text", "ocr_available"},
	}
}

func decimalProp() map[string]any {
	return map[string]any{
		"type":    "string",
		"pattern": `^-?\d+(\.\d+)?$`,
	}
}

// Validate checks "data" against "schemaMap".
func Validate(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
