package program

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shk-aftab/Eurogate/llm"
)

type shipment struct {
	Reference string `json:"reference" description:"Order reference"`
	Teu       int    `json:"teu,omitempty"`
	Hazardous bool   `json:"hazardous,omitempty"`
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare object", `{"a": 1}`, `{"a": 1}`},
		{"object in prose", `Sure, here you go: {"a": 1} hope that helps`, `{"a": 1}`},
		{"markdown fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"nested braces", `{"a": {"b": 2}}`, `{"a": {"b": 2}}`},
		{"braces inside strings ignored", `{"a": "not } a close"}`, `{"a": "not } a close"}`},
		{"escaped quotes", `{"a": "say \"hi\""}`, `{"a": "say \"hi\""}`},
		{"array", `pick one of [{"choice": 1}]`, `[{"choice": 1}]`},
		{"object preferred over array", `[1, 2] then {"a": 1}`, `{"a": 1}`},
		{"no json at all", "sorry, I cannot answer that", ""},
		{"unbalanced braces", `{"a": 1`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJSON(tt.input))
		})
	}
}

func TestStructOutputParser_Parse(t *testing.T) {
	parser := NewStructOutputParser(shipment{})

	parsed, err := parser.Parse(`The details are: {"reference": "EN2400123", "teu": 2}`)
	require.NoError(t, err)

	s, ok := parsed.(shipment)
	require.True(t, ok)
	assert.Equal(t, "EN2400123", s.Reference)
	assert.Equal(t, 2, s.Teu)

	_, err = parser.Parse("no json here")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no JSON found")
}

func TestStructOutputParser_FormatInstructions(t *testing.T) {
	parser := NewStructOutputParser(shipment{})

	instructions := parser.GetFormatInstructions()
	assert.Contains(t, instructions, "type 'shipment'")
	assert.Contains(t, instructions, `"reference"`)
	assert.Contains(t, instructions, "Order reference")
	// omitempty fields are not required.
	assert.NotContains(t, instructions, `"teu",`)
}

func TestExtractionProgram_Call(t *testing.T) {
	t.Run("plain completion appends instructions", func(t *testing.T) {
		mockLLM := &llm.MockLLM{Response: `{"reference": "TB512345"}`}
		p := NewExtractionProgramForType(mockLLM, shipment{})

		out, err := p.Call(context.Background(), "Extract the shipment.")
		require.NoError(t, err)

		var s shipment
		require.NoError(t, out.GetParsedAs(&s))
		assert.Equal(t, "TB512345", s.Reference)
	})

	t.Run("json mode used when supported", func(t *testing.T) {
		mockLLM := &llm.MockLLM{Response: `{"reference": "TB512345"}`, StructuredOutputSupported: true}
		p := NewExtractionProgramForType(mockLLM, shipment{})

		out, err := p.Call(context.Background(), "Extract the shipment.")
		require.NoError(t, err)
		assert.NotNil(t, out.ParsedOutput)
		assert.Equal(t, 1, mockLLM.Calls())
	})

	t.Run("parse failure keeps raw output", func(t *testing.T) {
		mockLLM := &llm.MockLLM{Response: "I refuse."}
		p := NewExtractionProgramForType(mockLLM, shipment{})

		out, err := p.Call(context.Background(), "Extract the shipment.")
		require.Error(t, err)
		require.NotNil(t, out)
		assert.Equal(t, "I refuse.", out.RawOutput)
		assert.Nil(t, out.ParsedOutput)
	})

	t.Run("llm error", func(t *testing.T) {
		p := NewExtractionProgramForType(&llm.MockLLM{Err: assert.AnError}, shipment{})

		_, err := p.Call(context.Background(), "Extract the shipment.")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "LLM call failed")
	})
}

func TestOutput_GetParsedAs(t *testing.T) {
	out := NewOutput("raw", shipment{Reference: "EN1"})

	var s shipment
	require.NoError(t, out.GetParsedAs(&s))
	assert.Equal(t, "EN1", s.Reference)

	// Map output round-trips through JSON into the struct.
	out = NewOutput("raw", map[string]interface{}{"reference": "EN2"})
	require.NoError(t, out.GetParsedAs(&s))
	assert.Equal(t, "EN2", s.Reference)

	out = NewOutput("raw", nil)
	assert.Error(t, out.GetParsedAs(&s))
}
