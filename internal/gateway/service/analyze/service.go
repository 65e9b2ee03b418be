package analyze

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"politix/internal/gateway/repository/artifact"
	"politix/internal/gateway/repository/clientstate"
	topicrepo "politix/internal/gateway/repository/topic"
	"politix/internal/llmclient"
	"politix/internal/topic"
)

const systemPrompt = `
You are an expert policy analyst specialized in identifying regulatory topics and policy discussions that might be relevant to a company based on their website.
Analyze the provided website URL and extract 10 relevant policies, regulatory topics, or public affairs discussions that might impact this company.
For each topic, provide:
1. A concise name (3-5 words)
2. A detailed description (2-3 sentences) explaining why this topic is relevant to the company

Format your response as a valid JSON array with objects containing "name" and "description" fields.
Example:
[
  {
    "name": "Data Privacy Regulations",
    "description": "Laws and regulations governing the collection, storage, and processing of personal data. This is relevant because the company collects user information through their website."
  },
  {
    "name": "Industry-specific topic",
    "description": "Description of why this is relevant to the company..."
  }
]

Ensure your response is ONLY the JSON array, with no additional text.
`

// Service runs the website-analysis flow: ask the model for relevant
// regulatory topics, persist them, archive the transcript, and stage the new
// ids so the next topic-selection view preselects them.
type Service struct {
	llm       llmclient.Client
	topics    topicrepo.Store
	artifacts artifact.Store
	state     *clientstate.Store
}

func New(llm llmclient.Client, topics topicrepo.Store, artifacts artifact.Store, state *clientstate.Store) *Service {
	return &Service{llm: llm, topics: topics, artifacts: artifacts, state: state}
}

// Result is the analyze-website response body.
type Result struct {
	Topics        []ExtractedTopic `json:"topics"`
	AddedTopics   []topic.Topic    `json:"addedTopics"`
	SourceWebsite string           `json:"sourceWebsite"`
}

// Analyze extracts topics for websiteURL and stores them. Per-topic insert
// failures are logged and skipped so one bad row does not void the analysis.
func (s *Service) Analyze(ctx context.Context, websiteURL string) (Result, error) {
	websiteURL = strings.TrimSpace(websiteURL)
	if websiteURL == "" {
		return Result{}, fmt.Errorf("website URL is required")
	}

	userPrompt := "Analyze this website: " + websiteURL
	content, err := s.llm.Complete(ctx, llmclient.ChatRequest{
		System:      systemPrompt,
		User:        userPrompt,
		Temperature: 0.7,
		MaxTokens:   1500,
	})
	if err != nil {
		return Result{}, fmt.Errorf("analyze website: %w", err)
	}

	extracted, err := ParseTopics(content)
	if err != nil {
		return Result{}, err
	}

	added := make([]topic.Topic, 0, len(extracted))
	addedIDs := make([]string, 0, len(extracted))
	for _, t := range extracted {
		row, err := s.topics.Insert(ctx, topic.Row{
			Name:         t.Name,
			Description:  t.Description,
			IsPublic:     false,
			Keywords:     []string{},
			UserID:       topicrepo.PlaceholderUserID,
			TopicsSource: websiteURL,
		})
		if err != nil {
			log.Printf("[analyze] insert topic %q: %v", t.Name, err)
			continue
		}
		added = append(added, topic.FromRow(row))
		addedIDs = append(addedIDs, row.ID)
	}

	analysisID := uuid.NewString()
	s.archive(ctx, analysisID, websiteURL, userPrompt, content, extracted)
	s.stage(websiteURL, addedIDs)

	return Result{Topics: extracted, AddedTopics: added, SourceWebsite: websiteURL}, nil
}

// archive stores the transcript. Best effort: a dead artifact store must not
// fail the analysis.
func (s *Service) archive(ctx context.Context, analysisID, websiteURL, userPrompt, content string, extracted []ExtractedTopic) {
	if s.artifacts == nil {
		return
	}
	put := func(path string, b []byte) {
		if err := s.artifacts.Put(ctx, analysisID, path, b); err != nil {
			log.Printf("[analyze] archive %s/%s: %v", analysisID, path, err)
		}
	}
	put("prompt.txt", []byte(systemPrompt+"\n---\n"+userPrompt))
	put("response.txt", []byte(content))
	if b, err := json.Marshal(extracted); err == nil {
		put("topics.json", b)
	}
	put("source.txt", []byte(websiteURL))
}

// stage records the analysis in client state so onboarding completes and the
// freshly added topics are preselected on the next selection screen.
func (s *Service) stage(websiteURL string, addedIDs []string) {
	if err := s.state.Set(clientstate.KeyAnalyzedWebsite, websiteURL); err != nil {
		log.Printf("[analyze] set analyzedWebsite: %v", err)
	}
	if err := s.state.Set(clientstate.KeyWebsiteSubmitted, "true"); err != nil {
		log.Printf("[analyze] set websiteSubmitted: %v", err)
	}
	if len(addedIDs) == 0 {
		return
	}
	b, err := json.Marshal(addedIDs)
	if err != nil {
		return
	}
	if err := s.state.Set(clientstate.KeyPreselectedTopics, string(b)); err != nil {
		log.Printf("[analyze] set preselectedTopics: %v", err)
	}
}
