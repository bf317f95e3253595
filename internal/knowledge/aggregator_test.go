package knowledge

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

type fakeFetcher struct {
	records []Record
	err     error
	tenant  string
	limit   int
}

func (f *fakeFetcher) Fetch(_ context.Context, tenant string, limit int) ([]Record, error) {
	f.tenant = tenant
	f.limit = limit
	return f.records, f.err
}

func newTestAggregator(f Fetcher) *Aggregator {
	return NewAggregator(f, "default_tenant", 0, nil, nil)
}

func TestRetrieveEmptyStoreReturnsSentinel(t *testing.T) {
	t.Parallel()
	a := newTestAggregator(&fakeFetcher{})
	got := a.Retrieve(context.Background(), "anything")
	if got.Answer != NoInformation {
		t.Fatalf("Answer = %q, want %q", got.Answer, NoInformation)
	}
	if len(got.References) != 0 {
		t.Fatalf("expected no references, got %d", len(got.References))
	}
}

func TestRetrieveFetchErrorIsNotPropagated(t *testing.T) {
	t.Parallel()
	a := newTestAggregator(&fakeFetcher{err: errors.New("store unreachable")})
	got := a.Retrieve(context.Background(), "anything")
	if got.Answer != NoInformation {
		t.Fatalf("Answer = %q, want %q", got.Answer, NoInformation)
	}
}

func TestRetrieveUsesConfiguredTenantAndDefaultLimit(t *testing.T) {
	t.Parallel()
	f := &fakeFetcher{}
	a := newTestAggregator(f)
	a.Retrieve(context.Background(), "anything")
	if f.tenant != "default_tenant" {
		t.Fatalf("tenant = %q, want default_tenant", f.tenant)
	}
	if f.limit != DefaultFetchLimit {
		t.Fatalf("limit = %d, want %d", f.limit, DefaultFetchLimit)
	}
}

func TestRetrieveDeduplicatesReferencesByFileID(t *testing.T) {
	t.Parallel()
	f := &fakeFetcher{records: []Record{
		{FileID: "doc_002", Question: "What is the company policy on remote work?", Answer: "Remote work is allowed.", PageNumbers: []string{"7", "8"}},
		{FileID: "doc_002", Question: "What are the vacation day entitlements?", Answer: "20 vacation days policy.", PageNumbers: []string{"15"}},
	}}
	a := newTestAggregator(f)
	got := a.Retrieve(context.Background(), "policy")

	if len(got.References) != 1 {
		t.Fatalf("expected 1 reference, got %d", len(got.References))
	}
	ref := got.References[0]
	if ref.FileID != "doc_002" {
		t.Fatalf("FileID = %q, want doc_002", ref.FileID)
	}
	want := []string{"7", "8", "15"}
	if !reflect.DeepEqual(ref.PageNumbers, want) {
		t.Fatalf("PageNumbers = %v, want %v", ref.PageNumbers, want)
	}
}

func TestRetrieveAssignsOrdinalsByFirstAppearance(t *testing.T) {
	t.Parallel()
	f := &fakeFetcher{records: []Record{
		{FileID: "doc_003", Question: "q", Answer: "auth policy details", PageNumbers: []string{"22"}},
		{FileID: "doc_001", Question: "q", Answer: "revenue policy details", PageNumbers: []string{"3"}},
	}}
	a := newTestAggregator(f)
	got := a.Retrieve(context.Background(), "policy")

	if !strings.Contains(got.Answer, "[1 - Page 22]") {
		t.Fatalf("expected ordinal 1 citation for first file, got %q", got.Answer)
	}
	if !strings.Contains(got.Answer, "[2 - Page 3]") {
		t.Fatalf("expected ordinal 2 citation for second file, got %q", got.Answer)
	}
}

func TestRetrieveSelectsFirstThreeRelevantRecords(t *testing.T) {
	t.Parallel()
	var records []Record
	for i := 0; i < 5; i++ {
		records = append(records, Record{
			FileID:      "doc_00" + string(rune('1'+i)),
			Question:    "About the handbook",
			Answer:      "handbook content",
			PageNumbers: []string{"1"},
		})
	}
	a := newTestAggregator(&fakeFetcher{records: records})
	got := a.Retrieve(context.Background(), "handbook")
	if len(got.References) != 3 {
		t.Fatalf("expected 3 references, got %d", len(got.References))
	}
}

func TestRetrieveFallsBackToFirstRecordsWhenNothingMatches(t *testing.T) {
	t.Parallel()
	f := &fakeFetcher{records: []Record{
		{FileID: "doc_001", Question: "unrelated", Answer: "unrelated too", PageNumbers: []string{"1"}},
	}}
	a := newTestAggregator(f)
	got := a.Retrieve(context.Background(), "zzzz")
	if got.Answer == NoInformation {
		t.Fatalf("expected fallback content for non-empty store, got sentinel")
	}
	if len(got.References) != 1 {
		t.Fatalf("expected 1 fallback reference, got %d", len(got.References))
	}
}

func TestRetrieveRelevanceMatchesLongQueryWords(t *testing.T) {
	t.Parallel()
	f := &fakeFetcher{records: []Record{
		{FileID: "doc_002", Question: "What is the company policy on remote work?", Answer: "Remote work rules.", PageNumbers: []string{"7"}},
		{FileID: "doc_003", Question: "How does authentication work?", Answer: "JWT and OAuth.", PageNumbers: []string{"22"}},
	}}
	a := newTestAggregator(f)
	// "remote" (>3 chars) matches only the first record; "is" and "the" are ignored
	got := a.Retrieve(context.Background(), "is the remote setup ok")
	if len(got.References) != 1 || got.References[0].FileID != "doc_002" {
		t.Fatalf("expected only doc_002 to match, got %+v", got.References)
	}
}

func TestMergePagesIsIdempotent(t *testing.T) {
	t.Parallel()
	once := mergePages([]string{"7", "8"}, []string{"15"})
	twice := mergePages(once, []string{"15"})
	want := []string{"7", "8", "15"}
	if !reflect.DeepEqual(once, want) {
		t.Fatalf("first merge = %v, want %v", once, want)
	}
	if !reflect.DeepEqual(twice, want) {
		t.Fatalf("repeated merge = %v, want %v", twice, want)
	}
}

func TestFormatReferences(t *testing.T) {
	t.Parallel()
	refs := []Reference{
		{FileID: "doc_001", PageNumbers: []string{"3", "4"}},
		{FileID: "doc_002", PageNumbers: []string{"7"}},
	}
	got := FormatReferences(refs)
	if !strings.Contains(got, "1. doc_001 - Page 3, 4") || !strings.Contains(got, "2. doc_002 - Page 7") {
		t.Fatalf("unexpected reference block: %q", got)
	}
	if FormatReferences(nil) != "" {
		t.Fatalf("expected empty block for no references")
	}
}
