package agent

import "strings"

// Decision is the routing outcome choosing which capabilities a query invokes.
type Decision string

const (
	DecisionKnowledge Decision = "knowledge-lookup"
	DecisionChart     Decision = "chart"
	DecisionBoth      Decision = "both"
	DecisionDirect    Decision = "direct-answer"
)

// Built-in keyword sets, used when configuration supplies none. Matching is
// substring containment rather than tokenization: false positives are cheap
// because an unnecessary lookup that finds nothing degrades gracefully, while
// a missed lookup loses the citation entirely.
var (
	DefaultChartKeywords = []string{
		"chart", "graph", "plot", "visualize", "visualization", "bar chart", "pie chart",
	}
	DefaultKnowledgeKeywords = []string{
		"document", "file", "policy", "what is", "how does", "explain", "tell me about", "information",
	}
)

// Classifier maps query text to a capability decision. It is a pure function
// of its input: case-insensitive substring matching against two keyword sets.
type Classifier struct {
	chartKeywords     []string
	knowledgeKeywords []string
}

// NewClassifier creates a classifier with the given keyword sets. Empty sets
// fall back to the built-in defaults.
func NewClassifier(chartKeywords, knowledgeKeywords []string) *Classifier {
	if len(chartKeywords) == 0 {
		chartKeywords = DefaultChartKeywords
	}
	if len(knowledgeKeywords) == 0 {
		knowledgeKeywords = DefaultKnowledgeKeywords
	}
	return &Classifier{chartKeywords: chartKeywords, knowledgeKeywords: knowledgeKeywords}
}

// Classify routes a query. It always returns a decision; there is no failure
// mode.
func (c *Classifier) Classify(query string) Decision {
	queryLower := strings.ToLower(query)
	hasChart := containsAny(queryLower, c.chartKeywords)
	hasKnowledge := containsAny(queryLower, c.knowledgeKeywords)

	switch {
	case hasChart && hasKnowledge:
		return DecisionBoth
	case hasChart:
		return DecisionChart
	case hasKnowledge:
		return DecisionKnowledge
	default:
		return DecisionDirect
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
