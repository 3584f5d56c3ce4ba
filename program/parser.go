// Package program provides structured LLM output extraction.
package program

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// OutputParser is the interface for parsing LLM output into structured data.
type OutputParser interface {
	// Parse parses the raw output into structured data.
	Parse(output string) (interface{}, error)
	// GetFormatInstructions returns instructions for the LLM on output format.
	GetFormatInstructions() string
}

// JSONOutputParser parses generic JSON output from an LLM.
type JSONOutputParser struct {
	// Schema is the JSON schema for the expected output (optional).
	Schema map[string]interface{}
}

// NewJSONOutputParser creates a new JSONOutputParser.
func NewJSONOutputParser() *JSONOutputParser {
	return &JSONOutputParser{}
}

// NewJSONOutputParserWithSchema creates a parser with a JSON schema.
func NewJSONOutputParserWithSchema(schema map[string]interface{}) *JSONOutputParser {
	return &JSONOutputParser{Schema: schema}
}

// Parse parses JSON output into a generic value.
func (p *JSONOutputParser) Parse(output string) (interface{}, error) {
	jsonStr := ExtractJSON(output)
	if jsonStr == "" {
		return nil, fmt.Errorf("no JSON found in output")
	}

	var result interface{}
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return result, nil
}

// GetFormatInstructions returns JSON format instructions.
func (p *JSONOutputParser) GetFormatInstructions() string {
	if p.Schema != nil {
		schemaJSON, _ := json.MarshalIndent(p.Schema, "", "  ")
		return fmt.Sprintf("Please respond with a JSON object matching this schema:\n```json\n%s\n```", string(schemaJSON))
	}
	return "Please respond with a valid JSON object."
}

// StructOutputParser parses output into a Go struct type.
type StructOutputParser struct {
	// TargetType is the struct type to parse into.
	TargetType reflect.Type
	// TypeName is the name of the type for instructions.
	TypeName string
}

// NewStructOutputParser creates a parser for a struct type.
func NewStructOutputParser(target interface{}) *StructOutputParser {
	t := reflect.TypeOf(target)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return &StructOutputParser{
		TargetType: t,
		TypeName:   t.Name(),
	}
}

// Parse parses output into the target struct.
func (p *StructOutputParser) Parse(output string) (interface{}, error) {
	jsonStr := ExtractJSON(output)
	if jsonStr == "" {
		return nil, fmt.Errorf("no JSON found in output")
	}

	target := reflect.New(p.TargetType).Interface()
	if err := json.Unmarshal([]byte(jsonStr), target); err != nil {
		return nil, fmt.Errorf("failed to parse into %s: %w", p.TypeName, err)
	}

	return reflect.ValueOf(target).Elem().Interface(), nil
}

// GetFormatInstructions returns format instructions based on struct fields.
func (p *StructOutputParser) GetFormatInstructions() string {
	schema := structToSchema(p.TargetType)
	schemaJSON, _ := json.MarshalIndent(schema, "", "  ")
	return fmt.Sprintf("Please respond with a JSON object for type '%s' matching this schema:\n```json\n%s\n```", p.TypeName, string(schemaJSON))
}

// ExtractJSON extracts the first balanced JSON object or array from a
// string that may contain surrounding prose or markdown fences.
func ExtractJSON(s string) string {
	start := -1
	braceCount := 0
	inString := false
	escaped := false

	for i, c := range s {
		if escaped {
			escaped = false
			continue
		}
		if c == '\\' && inString {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		if c == '{' {
			if start == -1 {
				start = i
			}
			braceCount++
		} else if c == '}' {
			braceCount--
			if braceCount == 0 && start != -1 {
				return s[start : i+1]
			}
		}
	}

	start = -1
	bracketCount := 0
	inString = false
	escaped = false

	for i, c := range s {
		if escaped {
			escaped = false
			continue
		}
		if c == '\\' && inString {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		if c == '[' {
			if start == -1 {
				start = i
			}
			bracketCount++
		} else if c == ']' {
			bracketCount--
			if bracketCount == 0 && start != -1 {
				return s[start : i+1]
			}
		}
	}

	return ""
}

// structToSchema converts a struct type to a JSON schema.
func structToSchema(t reflect.Type) map[string]interface{} {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	schema := map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}

	properties := schema["properties"].(map[string]interface{})
	required := []string{}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}

		fieldName := field.Name
		if name, _, _ := strings.Cut(jsonTag, ","); name != "" {
			fieldName = name
		}

		fieldSchema := typeToSchema(field.Type)

		if desc := field.Tag.Get("description"); desc != "" {
			fieldSchema["description"] = desc
		}

		properties[fieldName] = fieldSchema

		if !strings.Contains(jsonTag, "omitempty") {
			required = append(required, fieldName)
		}
	}

	if len(required) > 0 {
		schema["required"] = required
	}

	return schema
}

// typeToSchema converts a Go type to a JSON schema type.
func typeToSchema(t reflect.Type) map[string]interface{} {
	switch t.Kind() {
	case reflect.String:
		return map[string]interface{}{"type": "string"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return map[string]interface{}{"type": "integer"}
	case reflect.Float32, reflect.Float64:
		return map[string]interface{}{"type": "number"}
	case reflect.Bool:
		return map[string]interface{}{"type": "boolean"}
	case reflect.Slice, reflect.Array:
		return map[string]interface{}{
			"type":  "array",
			"items": typeToSchema(t.Elem()),
		}
	case reflect.Map:
		return map[string]interface{}{
			"type":                 "object",
			"additionalProperties": typeToSchema(t.Elem()),
		}
	case reflect.Struct:
		return structToSchema(t)
	case reflect.Ptr:
		return typeToSchema(t.Elem())
	default:
		return map[string]interface{}{"type": "string"}
	}
}

var _ OutputParser = (*JSONOutputParser)(nil)
var _ OutputParser = (*StructOutputParser)(nil)
