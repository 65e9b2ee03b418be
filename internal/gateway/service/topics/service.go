package topics

import (
	"context"
	"fmt"
	"strings"

	"politix/internal/gateway/repository/clientstate"
	topicrepo "politix/internal/gateway/repository/topic"
	"politix/internal/topic"
)

// Service assembles dashboard-ready topics from stored rows and the follow
// selection held in client state.
type Service struct {
	store topicrepo.Store
	state *clientstate.Store
}

func New(store topicrepo.Store, state *clientstate.Store) *Service {
	return &Service{store: store, state: state}
}

// ListQuery narrows a topic listing. IDs wins over Source; Search applies
// after either.
type ListQuery struct {
	IDs    []string
	Source string
	Search string
}

// List returns formatted topics with Following layered on from the current
// selection.
func (s *Service) List(ctx context.Context, q ListQuery) ([]topic.Topic, error) {
	var (
		rows []topic.Row
		err  error
	)
	switch {
	case len(q.IDs) > 0:
		rows, err = s.store.ListByIDs(ctx, q.IDs)
	case strings.TrimSpace(q.Source) != "":
		rows, err = s.store.ListBySource(ctx, q.Source)
	default:
		rows, err = s.store.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch topics: %w", err)
	}

	topics := topic.FromRows(rows)

	selected := make(map[string]struct{})
	for _, id := range s.state.SelectedTopicIDs() {
		selected[id] = struct{}{}
	}
	for i := range topics {
		_, topics[i].Following = selected[topics[i].ID]
	}

	return topic.Search(topics, q.Search), nil
}

// Categorized groups a listing by derived category.
func (s *Service) Categorized(ctx context.Context, q ListQuery) ([]topic.Category, error) {
	topics, err := s.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return topic.Categorize(topics), nil
}

// Create inserts a custom topic owned by the placeholder identity, stamped
// with the currently analyzed website as its source.
func (s *Service) Create(ctx context.Context, name, description string) (topic.Topic, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return topic.Topic{}, fmt.Errorf("topic name is required")
	}
	row, err := s.store.Insert(ctx, topic.Row{
		Name:         name,
		Description:  description,
		IsPublic:     false,
		Keywords:     []string{},
		UserID:       topicrepo.PlaceholderUserID,
		TopicsSource: s.state.AnalyzedWebsite(),
	})
	if err != nil {
		return topic.Topic{}, fmt.Errorf("add topic: %w", err)
	}
	return topic.FromRow(row), nil
}

// Update renames/redescribes an owned topic.
func (s *Service) Update(ctx context.Context, id, name, description string) (topic.Topic, error) {
	if strings.TrimSpace(name) == "" {
		return topic.Topic{}, fmt.Errorf("topic name is required")
	}
	row, err := s.store.Update(ctx, id, name, description)
	if err != nil {
		return topic.Topic{}, err
	}
	return topic.FromRow(row), nil
}
