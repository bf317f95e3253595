package knowledge

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/quanda-ai/quanda/internal/telemetry"
)

// NoInformation is returned when the store is empty or unreachable.
const NoInformation = "No information found in the knowledge base."

// DefaultFetchLimit caps the bulk fetch from the store.
const DefaultFetchLimit = 100

// Aggregator turns bulk-fetched QA records into a cited answer fragment and a
// deduplicated reference list.
type Aggregator struct {
	fetcher   Fetcher
	tenant    string
	limit     int
	logger    *log.Logger
	telemetry *telemetry.Telemetry
}

// NewAggregator creates an aggregator over the given store capability.
func NewAggregator(fetcher Fetcher, tenant string, limit int, logger *log.Logger, tele *telemetry.Telemetry) *Aggregator {
	if limit <= 0 {
		limit = DefaultFetchLimit
	}
	if logger == nil {
		logger = log.New(log.Writer(), "[KB] ", log.LstdFlags)
	}
	return &Aggregator{fetcher: fetcher, tenant: tenant, limit: limit, logger: logger, telemetry: tele}
}

// Retrieve fetches up to the configured limit of records, filters them for
// relevance to the query, and folds the selection into a cited answer.
// Fetch failures degrade to the empty result; they are never propagated.
func (a *Aggregator) Retrieve(ctx context.Context, query string) Result {
	records, err := a.fetcher.Fetch(ctx, a.tenant, a.limit)
	if err != nil {
		a.logger.Printf("fetch failed for tenant %q: %v", a.tenant, err)
		a.telemetry.RecordFetch(telemetry.FetchError)
		return Result{Answer: NoInformation}
	}
	if len(records) == 0 {
		a.telemetry.RecordFetch(telemetry.FetchEmpty)
		return Result{Answer: NoInformation}
	}
	a.telemetry.RecordFetch(telemetry.FetchOK)

	selected := selectRecords(records, query)
	a.logger.Printf("selected %d of %d records for tenant %q", len(selected), len(records), a.tenant)

	ordinals := make(map[string]int)
	var refs []Reference
	refIndex := make(map[string]int)
	var answer strings.Builder

	for _, rec := range selected {
		if _, ok := ordinals[rec.FileID]; !ok {
			ordinals[rec.FileID] = len(ordinals) + 1
		}

		answer.WriteString(rec.Answer)
		answer.WriteString("\n")
		fmt.Fprintf(&answer, "[%d - Page %s]\n\n", ordinals[rec.FileID], strings.Join(rec.PageNumbers, ", "))

		if i, ok := refIndex[rec.FileID]; ok {
			refs[i].PageNumbers = mergePages(refs[i].PageNumbers, rec.PageNumbers)
		} else {
			refIndex[rec.FileID] = len(refs)
			refs = append(refs, Reference{
				FileID:      rec.FileID,
				PageNumbers: append([]string(nil), rec.PageNumbers...),
			})
		}
	}

	text := strings.TrimSpace(answer.String())
	if text == "" {
		text = "Found relevant information but unable to formulate an answer."
	}
	return Result{Answer: text, References: refs}
}

// selectRecords applies the keyword relevance filter and takes the first
// three matches in fetch order. When nothing matches, the first three records
// overall are returned so a non-empty store always yields an answer.
func selectRecords(records []Record, query string) []Record {
	queryLower := strings.ToLower(query)
	words := strings.Fields(queryLower)

	var relevant []Record
	for _, rec := range records {
		if isRelevant(rec, queryLower, words) {
			relevant = append(relevant, rec)
		}
	}
	if len(relevant) == 0 {
		relevant = records
	}
	if len(relevant) > 3 {
		relevant = relevant[:3]
	}
	return relevant
}

func isRelevant(rec Record, queryLower string, words []string) bool {
	question := strings.ToLower(rec.Question)
	answer := strings.ToLower(rec.Answer)
	if strings.Contains(question, queryLower) || strings.Contains(answer, queryLower) {
		return true
	}
	for _, word := range words {
		if len(word) > 3 && (strings.Contains(question, word) || strings.Contains(answer, word)) {
			return true
		}
	}
	return false
}

// mergePages appends only pages not already present, preserving first-seen
// order. Merging the same pages twice is a no-op.
func mergePages(existing, incoming []string) []string {
	seen := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		seen[p] = struct{}{}
	}
	for _, p := range incoming {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		existing = append(existing, p)
	}
	return existing
}
