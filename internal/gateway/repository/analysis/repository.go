package analysis

import (
	"context"

	"politix/internal/insight"
)

// ContentTypeRegulatoryInsight tags the rows the dashboard renders.
const ContentTypeRegulatoryInsight = "regulatory_insight"

// Query narrows a row listing. Zero value means everything.
type Query struct {
	ContentType string
	TopicIDs    []string
}

// Store reads topic_analyses rows. The gateway treats the table as read-only;
// Insert exists for the seeding path and tests.
type Store interface {
	List(ctx context.Context, q Query) ([]insight.RawRecord, error)
	Insert(ctx context.Context, rec insight.RawRecord) (insight.RawRecord, error)
}
