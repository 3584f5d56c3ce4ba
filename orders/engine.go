package orders

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Shk-aftab/Eurogate/llm"
	"github.com/Shk-aftab/Eurogate/program"
	"github.com/Shk-aftab/Eurogate/rag"
	"github.com/Shk-aftab/Eurogate/schema"
)

// filterSpec is the structured form of a table question.
type filterSpec struct {
	Column string `json:"column" description:"Column to filter on"`
	Value  string `json:"value" description:"Value to match"`
	Limit  int    `json:"limit,omitempty" description:"Maximum number of rows, 0 for default"`
}

const defaultRowLimit = 5

// TableQueryEngine answers natural-language questions about the order
// table. One LLM call maps the question to a column filter, the filter
// runs against the in-memory table, and a second call synthesizes the
// answer from the matched rows.
type TableQueryEngine struct {
	table   *Table
	llm     llm.LLM
	program *program.ExtractionProgram
	logger  *slog.Logger
}

// NewTableQueryEngine creates a query engine over the loaded table.
func NewTableQueryEngine(table *Table, l llm.LLM, logger *slog.Logger) *TableQueryEngine {
	if logger == nil {
		logger = slog.Default()
	}
	return &TableQueryEngine{
		table:   table,
		llm:     l,
		program: program.NewExtractionProgramForType(l, filterSpec{}),
		logger:  logger,
	}
}

const filterPrompt = `You are querying a logistics order table with these columns:
%s

Map the user's question to a single column filter. Return a JSON object:
{"column": "<one of the columns above>", "value": "<value to match>", "limit": <max rows, 0 for default>}

Question: %s`

// Query answers a question about the order table.
func (e *TableQueryEngine) Query(ctx context.Context, query schema.QueryBundle) (schema.EngineResponse, error) {
	spec, err := e.parseFilter(ctx, query.QueryString)
	if err != nil {
		return schema.EngineResponse{}, fmt.Errorf("failed to derive table filter: %w", err)
	}

	if !e.table.HasColumn(spec.Column) {
		e.logger.Warn("filter column not in table", "column", spec.Column)
		return schema.EngineResponse{
			Response: fmt.Sprintf("I couldn't map that question to the order data (no column %q).", spec.Column),
		}, nil
	}

	limit := spec.Limit
	if limit <= 0 {
		limit = defaultRowLimit
	}

	rows := e.table.Filter(spec.Column, spec.Value, limit)
	e.logger.Info("table filter executed", "column", spec.Column, "value", spec.Value, "matches", len(rows))

	if len(rows) == 0 {
		return schema.EngineResponse{
			Response: fmt.Sprintf("I couldn't find any orders where %s matches %q.", spec.Column, spec.Value),
		}, nil
	}

	answer, err := e.synthesize(ctx, query.QueryString, rows)
	if err != nil {
		return schema.EngineResponse{}, fmt.Errorf("failed to synthesize table answer: %w", err)
	}

	return schema.EngineResponse{Response: answer}, nil
}

func (e *TableQueryEngine) parseFilter(ctx context.Context, question string) (*filterSpec, error) {
	prompt := fmt.Sprintf(filterPrompt, strings.Join(e.table.Columns, ", "), question)

	out, err := e.program.Call(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var spec filterSpec
	if err := out.GetParsedAs(&spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (e *TableQueryEngine) synthesize(ctx context.Context, question string, rows []Row) (string, error) {
	prompt := fmt.Sprintf(
		"Order records matching the question are below.\n---------------------\n%s\n---------------------\nGiven these records and not prior knowledge, answer the query.\nQuery: %s\nAnswer:",
		e.table.Render(rows), question,
	)
	return e.llm.Complete(ctx, prompt)
}

var _ rag.QueryEngine = (*TableQueryEngine)(nil)
