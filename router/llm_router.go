package router

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Shk-aftab/Eurogate/llm"
	"github.com/Shk-aftab/Eurogate/program"
)

const singleSelectPrompt = `Some choices are given below. It is provided in a numbered list (1 to %d), where each item in the list corresponds to a summary.
---------------------
%s
---------------------
Using only the choices above and not prior knowledge, return the choice that is most relevant to the question: '%s'

The output should be ONLY JSON formatted as a JSON instance.

Here is an example:
[{"choice": 1, "reason": "<reason>"}]
`

// selectionAnswer is one entry of the LLM's choice output.
type selectionAnswer struct {
	Choice int    `json:"choice"`
	Reason string `json:"reason"`
}

// Choice is a routing destination with the description shown to the LLM.
type Choice struct {
	Route       Route
	Description string
}

// LLMRouter asks the LLM to pick between destination descriptions.
// Unparseable output falls back to the document knowledge base.
type LLMRouter struct {
	llm     llm.LLM
	choices []Choice
	logger  *slog.Logger
}

// NewLLMRouter creates an LLM router over the given choices.
func NewLLMRouter(l llm.LLM, choices []Choice, logger *slog.Logger) *LLMRouter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LLMRouter{llm: l, choices: choices, logger: logger}
}

func (r *LLMRouter) Route(ctx context.Context, query string) (Decision, error) {
	prompt := fmt.Sprintf(singleSelectPrompt, len(r.choices), r.buildChoicesText(), query)

	raw, err := r.llm.Complete(ctx, prompt)
	if err != nil {
		return Decision{}, fmt.Errorf("routing completion failed: %w", err)
	}

	answer, ok := parseSelection(raw, len(r.choices))
	if !ok {
		r.logger.Warn("unparseable routing output, defaulting to documents", "raw", raw)
		return Decision{Route: RouteDocuments, Reason: "fallback: unparseable selection"}, nil
	}

	chosen := r.choices[answer.Choice-1]
	return Decision{Route: chosen.Route, Reason: answer.Reason}, nil
}

func (r *LLMRouter) buildChoicesText() string {
	text := ""
	for i, c := range r.choices {
		if i > 0 {
			text += "\n\n"
		}
		text += fmt.Sprintf("(%d) %s", i+1, c.Description)
	}
	return text
}

func parseSelection(raw string, numChoices int) (selectionAnswer, bool) {
	jsonStr := program.ExtractJSON(raw)
	if jsonStr == "" {
		return selectionAnswer{}, false
	}

	var answers []selectionAnswer
	if err := json.Unmarshal([]byte(jsonStr), &answers); err != nil {
		// Some models answer with a bare object instead of a list.
		var single selectionAnswer
		if err := json.Unmarshal([]byte(jsonStr), &single); err != nil {
			return selectionAnswer{}, false
		}
		answers = []selectionAnswer{single}
	}

	if len(answers) == 0 {
		return selectionAnswer{}, false
	}

	answer := answers[0]
	if answer.Choice < 1 || answer.Choice > numChoices {
		return selectionAnswer{}, false
	}

	return answer, true
}

var _ Router = (*LLMRouter)(nil)
