package topic

import (
	"context"
	"errors"

	"politix/internal/topic"
	"politix/internal/utils"
)

// PlaceholderUserID owns every row written by this gateway until real
// authentication lands. The analyze function and manual topic adds use the
// same fixed identity.
const PlaceholderUserID = "00000000-0000-0000-0000-000000000000"

var ErrNotFound = errors.New("topic not found")

// Store persists topics table rows.
type Store interface {
	List(ctx context.Context) ([]topic.Row, error)
	ListByIDs(ctx context.Context, ids []string) ([]topic.Row, error)
	ListBySource(ctx context.Context, source string) ([]topic.Row, error)
	Insert(ctx context.Context, row topic.Row) (topic.Row, error)
	Update(ctx context.Context, id, name, description string) (topic.Row, error)
}

// matchRowsBySource returns the rows whose topics_source refers to source.
// Sources are stored as whatever URL string the analyze flow received, so
// matching is layered: exact normalized match first, then domain containment.
func matchRowsBySource(rows []topic.Row, source string) []topic.Row {
	want := utils.NormalizeURL(source)
	if want == "" {
		return []topic.Row{}
	}

	exact := make([]topic.Row, 0, len(rows))
	for _, r := range rows {
		if utils.NormalizeURL(r.TopicsSource) == want {
			exact = append(exact, r)
		}
	}
	if len(exact) > 0 {
		return exact
	}

	domain := utils.URLDomain(source)
	if domain == "" {
		return []topic.Row{}
	}
	loose := make([]topic.Row, 0, len(rows))
	for _, r := range rows {
		if r.TopicsSource == "" {
			continue
		}
		if utils.URLDomain(r.TopicsSource) == domain {
			loose = append(loose, r)
		}
	}
	return loose
}
