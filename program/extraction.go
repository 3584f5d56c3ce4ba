package program

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/Shk-aftab/Eurogate/llm"
)

// Output represents the result of a program execution.
type Output struct {
	// RawOutput is the raw string output from the LLM.
	RawOutput string `json:"raw_output"`
	// ParsedOutput is the parsed structured output.
	ParsedOutput interface{} `json:"parsed_output,omitempty"`
}

// NewOutput creates a new Output.
func NewOutput(rawOutput string, parsedOutput interface{}) *Output {
	return &Output{RawOutput: rawOutput, ParsedOutput: parsedOutput}
}

// String returns the raw output as a string.
func (o *Output) String() string {
	return o.RawOutput
}

// GetParsedAs copies the parsed output into the given pointer target.
func (o *Output) GetParsedAs(target interface{}) error {
	if o.ParsedOutput == nil {
		return fmt.Errorf("no parsed output available")
	}

	targetVal := reflect.ValueOf(target)
	if targetVal.Kind() != reflect.Ptr {
		return fmt.Errorf("target must be a pointer")
	}

	parsedVal := reflect.ValueOf(o.ParsedOutput)
	if parsedVal.Type().AssignableTo(targetVal.Elem().Type()) {
		targetVal.Elem().Set(parsedVal)
		return nil
	}

	data, err := json.Marshal(o.ParsedOutput)
	if err != nil {
		return fmt.Errorf("failed to marshal parsed output: %w", err)
	}

	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to unmarshal to target type: %w", err)
	}

	return nil
}

// ExtractionProgram turns a prompt into structured output. When the LLM
// supports JSON mode it is used, otherwise plain completion with format
// instructions appended to the prompt.
type ExtractionProgram struct {
	LLM          llm.LLM
	OutputParser OutputParser
}

// NewExtractionProgram creates a program with the given parser.
func NewExtractionProgram(l llm.LLM, parser OutputParser) *ExtractionProgram {
	if parser == nil {
		parser = NewJSONOutputParser()
	}
	return &ExtractionProgram{LLM: l, OutputParser: parser}
}

// NewExtractionProgramForType creates a program that parses into the
// given struct type.
func NewExtractionProgramForType(l llm.LLM, target interface{}) *ExtractionProgram {
	return NewExtractionProgram(l, NewStructOutputParser(target))
}

// Call executes the program with the given prompt. The parsed output is
// nil when the response could not be parsed; the parse error is returned
// alongside the raw output so callers can decide how to degrade.
func (p *ExtractionProgram) Call(ctx context.Context, prompt string) (*Output, error) {
	if p.LLM == nil {
		return nil, fmt.Errorf("LLM is required")
	}

	var rawOutput string
	var err error

	if structuredLLM, ok := p.LLM.(llm.LLMWithStructuredOutput); ok && structuredLLM.SupportsStructuredOutput() {
		messages := []llm.ChatMessage{llm.NewUserMessage(prompt)}
		rawOutput, err = structuredLLM.ChatWithFormat(ctx, messages, llm.NewJSONResponseFormat())
	} else {
		promptText := prompt
		if instructions := p.OutputParser.GetFormatInstructions(); instructions != "" {
			promptText = promptText + "\n\n" + instructions
		}
		rawOutput, err = p.LLM.Complete(ctx, promptText)
	}

	if err != nil {
		return nil, fmt.Errorf("LLM call failed: %w", err)
	}

	parsedOutput, parseErr := p.OutputParser.Parse(rawOutput)
	if parseErr != nil {
		return NewOutput(rawOutput, nil), fmt.Errorf("failed to parse LLM output: %w", parseErr)
	}

	return NewOutput(rawOutput, parsedOutput), nil
}
