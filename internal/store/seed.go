package store

import "github.com/quanda-ai/quanda/internal/knowledge"

// SampleRecords is the demo knowledge base loaded by the seed command.
var SampleRecords = []knowledge.Record{
	{
		FileID:      "doc_001",
		Question:    "What is the annual revenue target for Q1 2024?",
		Answer:      "The annual revenue target for Q1 2024 is $2.5 million, with a focus on expanding the enterprise client base by 30%.",
		PageNumbers: []string{"3", "4"},
	},
	{
		FileID:      "doc_001",
		Question:    "What are the key product features planned for the next release?",
		Answer:      "The next release includes advanced analytics dashboard, multi-language support, and API rate limiting improvements.",
		PageNumbers: []string{"12"},
	},
	{
		FileID:      "doc_002",
		Question:    "What is the company policy on remote work?",
		Answer:      "Employees can work remotely up to 3 days per week. All remote work requires approval from the direct manager and must maintain productivity standards.",
		PageNumbers: []string{"7", "8"},
	},
	{
		FileID:      "doc_002",
		Question:    "What are the vacation day entitlements?",
		Answer:      "Full-time employees receive 20 vacation days per year, plus 10 public holidays. Vacation days accrue monthly at a rate of 1.67 days per month.",
		PageNumbers: []string{"15"},
	},
	{
		FileID:      "doc_003",
		Question:    "How does the authentication system work?",
		Answer:      "The system uses JWT tokens with OAuth 2.0 for authentication. Tokens expire after 24 hours and refresh tokens are valid for 30 days.",
		PageNumbers: []string{"22", "23", "24"},
	},
}
