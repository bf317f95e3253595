package agent

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/quanda-ai/quanda/internal/chart"
	"github.com/quanda-ai/quanda/internal/knowledge"
	"github.com/quanda-ai/quanda/internal/telemetry"
	"github.com/quanda-ai/quanda/provider"
)

// Datum kinds attached to a response.
const (
	DatumReference = "reference"
	DatumChart     = "chart"
)

// Datum is one piece of structured side-data: a reference list or a chart
// descriptor.
type Datum struct {
	Type    string `json:"type"`
	Content any    `json:"content"`
}

// Response is the assembled result for one query. Answer is the full
// reassembled streamed text; Data preserves capability invocation order.
type Response struct {
	Answer string  `json:"answer"`
	Data   []Datum `json:"data"`
}

// Retriever is the knowledge-lookup capability.
type Retriever interface {
	Retrieve(ctx context.Context, query string) knowledge.Result
}

// ChartFunc is the chart-generation capability.
type ChartFunc func(kind string) chart.Descriptor

const apology = "I apologize, but I encountered an error while processing your request."

const personaPreamble = `You are a helpful AI assistant with access to a knowledge base and visualization tools.
Your task is to provide clear, concise answers to user queries.

When referencing information from documents, use the format: [FileNumber - Page X]
For example: [1 - Page 3] refers to the first file, page 3.
`

const chartContext = "\n\nChart data available: Quarterly revenue report with Q1: $2.5M, Q2: $3.2M, Q3: $2.8M, Q4: $4.1M\n"

// Orchestrator routes queries to capabilities and assembles the streamed
// response. All dependencies are injected; instances are safe for concurrent
// use because each query builds its own state.
type Orchestrator struct {
	classifier *Classifier
	retriever  Retriever
	chart      ChartFunc
	llm        provider.Provider
	logger     *log.Logger
	telemetry  *telemetry.Telemetry
}

// NewOrchestrator creates a new orchestrator instance
func NewOrchestrator(classifier *Classifier, retriever Retriever, chartFn ChartFunc, llm provider.Provider, logger *log.Logger, tele *telemetry.Telemetry) *Orchestrator {
	if logger == nil {
		logger = log.New(log.Writer(), "[AGENT] ", log.LstdFlags)
	}
	return &Orchestrator{
		classifier: classifier,
		retriever:  retriever,
		chart:      chartFn,
		llm:        llm,
		logger:     logger,
		telemetry:  tele,
	}
}

// Answer handles one query. Each non-empty text increment from the provider
// is delivered to onDelta, in order, before the next increment is consumed;
// empty increments are skipped. Every path returns a structurally valid
// Response: retrieval failure degrades to an empty reference set, and a
// streaming failure is converted into a fallback answer, preferring retrieved
// context over the generic apology for a pure knowledge lookup.
func (o *Orchestrator) Answer(ctx context.Context, query string, onDelta func(delta string)) Response {
	start := time.Now()
	reqID := uuid.NewString()[:8]

	decision := o.classifier.Classify(query)
	o.telemetry.RecordQuery(string(decision))
	o.logger.Printf("[%s] decision=%s query=%q", reqID, decision, query)

	var data []Datum
	var contextInfo strings.Builder

	if decision == DecisionKnowledge || decision == DecisionBoth {
		res := o.retriever.Retrieve(ctx, query)
		if len(res.References) > 0 {
			data = append(data, Datum{Type: DatumReference, Content: res.References})
			contextInfo.WriteString("\n\nContext from knowledge base:\n")
			contextInfo.WriteString(res.Answer)
			contextInfo.WriteString("\n")
		}
	}

	if decision == DecisionChart || decision == DecisionBoth {
		data = append(data, Datum{Type: DatumChart, Content: o.chart("bar")})
		contextInfo.WriteString(chartContext)
	}

	messages := []provider.Message{
		{Role: "system", Content: personaPreamble + contextInfo.String()},
		{Role: "user", Content: query},
	}

	var answer strings.Builder
	err := o.llm.Stream(ctx, messages, func(delta string) error {
		if delta == "" {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		answer.WriteString(delta)
		if onDelta != nil {
			onDelta(delta)
		}
		return nil
	})

	final := answer.String()
	if err != nil {
		o.telemetry.RecordStreamFailure()
		o.logger.Printf("[%s] streaming failed: %v", reqID, err)
		final = apology
		if decision == DecisionKnowledge && contextInfo.Len() > 0 {
			final = contextInfo.String()
		}
	}

	o.telemetry.ObserveAnswerDuration(time.Since(start))
	o.logger.Printf("[%s] done in %s (%d side data)", reqID, time.Since(start).Round(time.Millisecond), len(data))
	return Response{Answer: final, Data: data}
}
