package feed

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"politix/internal/topic"
)

// ItemType distinguishes the live-feed source kinds.
type ItemType string

const (
	TypeTweet ItemType = "tweet"
	TypeRSS   ItemType = "rss"
	TypeNews  ItemType = "news"
)

// Item is one entry on the live updates feed.
type Item struct {
	ID          string   `json:"id"`
	Type        ItemType `json:"type"`
	Content     string   `json:"content"`
	Source      string   `json:"source"`
	Author      string   `json:"author,omitempty"`
	AuthorImage string   `json:"authorImage,omitempty"`
	Date        string   `json:"date"`
	URL         string   `json:"url,omitempty"`
	Topic       string   `json:"topic"`
	Verified    bool     `json:"verified,omitempty"`
}

type profile struct {
	handle   string
	name     string
	verified bool
}

var twitterProfiles = []profile{
	{"@AIEthicsLab", "AI Ethics Lab", true},
	{"@AIRegWatch", "AI Regulation Watch", true},
	{"@TechPolicyInst", "Tech Policy Institute", true},
	{"@AIGovernance", "AI Governance Alliance", true},
	{"@AIRegulations", "AI Regulations News", false},
	{"@AIPolicy", "AI Policy Forum", true},
	{"@AILawReview", "AI Law Review", false},
	{"@OpenAI", "OpenAI", true},
	{"@DeepMind", "Google DeepMind", true},
	{"@AnthropicAI", "Anthropic", true},
}

var newsSources = []string{
	"AI Daily",
	"Tech Policy Report",
	"Regulation Today",
	"AI Governance Bulletin",
	"Ethics in AI Newsletter",
	"The AI Monitor",
	"Digital Rights Watch",
	"Tech Regulation Times",
	"AI Law Journal",
	"Future of AI Digest",
}

var tweetTemplates = []string{
	"New policy alert: {topic} regulations are being drafted by EU authorities. This could significantly impact AI development in Europe. #AIRegulation",
	"Just published our analysis on {topic}. The implications for the industry are substantial. Read our full report at techpolicy.org/report",
	"Attended the {topic} summit yesterday. Key takeaway: we need clearer guidelines on AI safety and ethical standards.",
	"Breaking: New {topic} framework announced that will require additional compliance measures for AI companies. Implementation expected in Q3.",
	"Our research shows that 68% of AI companies are unprepared for the upcoming {topic} legislation. Time to adapt is running short.",
	"Interesting development in {topic}: regulators are now focusing on explainability requirements for high-risk AI systems.",
	"The debate on {topic} is heating up. Industry leaders and policymakers still at odds over the scope of restrictions.",
	"ICYMI: Our webinar on navigating {topic} compliance is now available on-demand. Essential viewing for AI developers.",
	"The latest {topic} directive introduces mandatory risk assessments for autonomous systems. Here's what you need to know:",
	"We're seeing a significant shift in how {topic} is being approached by regulators. More emphasis on preventative measures than ever before.",
}

var newsTemplates = []string{
	"EU Commission Proposes Stricter Rules on {topic}",
	"Industry Response to New {topic} Guidelines: Mixed Reactions",
	"The Impact of {topic} on Innovation: A Comprehensive Analysis",
	"{topic} Compliance: What Companies Need to Know for 2024",
	"Global Standards for {topic} Begin to Emerge",
	"Researchers Warn of Gaps in Current {topic} Frameworks",
	"Balancing Innovation and Safety: The Challenge of {topic}",
	"How Small AI Companies Are Adapting to {topic} Requirements",
	"Parliamentary Debate on {topic} Scheduled for Next Week",
	"Expert Panel Releases Recommendations on {topic}",
	"The Economic Impact of {topic}: New Study Released",
	"{topic} in Practice: Case Studies from Leading AI Labs",
}

// Generator produces mock feed items for the live updates view. It is a
// stand-in for real social/RSS ingestion and is seedable for tests.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

func NewGenerator(seed int64) *Generator {
	return &Generator{
		rnd: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

// Tweet fabricates one tweet-style item about the topic.
func (g *Generator) Tweet(topicName string) Item {
	g.mu.Lock()
	defer g.mu.Unlock()
	p := twitterProfiles[g.rnd.Intn(len(twitterProfiles))]
	content := strings.ReplaceAll(tweetTemplates[g.rnd.Intn(len(tweetTemplates))], "{topic}", topicName)

	minutesAgo := g.rnd.Intn(60)
	date := "Just now"
	if minutesAgo > 0 {
		date = fmt.Sprintf("%dm ago", minutesAgo)
	}

	return Item{
		ID:          fmt.Sprintf("tweet-%d-%d", g.now().UnixMilli(), g.rnd.Intn(10000)),
		Type:        TypeTweet,
		Content:     content,
		Source:      "Twitter",
		Author:      p.name,
		AuthorImage: "https://api.dicebear.com/7.x/shapes/svg?seed=" + p.handle,
		Date:        date,
		URL:         fmt.Sprintf("https://twitter.com/%s/status/%d", strings.TrimPrefix(p.handle, "@"), g.rnd.Intn(1000000000)),
		Topic:       topicName,
		Verified:    p.verified,
	}
}

// NewsItem fabricates one RSS/news-style item about the topic.
func (g *Generator) NewsItem(topicName string) Item {
	g.mu.Lock()
	defer g.mu.Unlock()
	source := newsSources[g.rnd.Intn(len(newsSources))]
	title := strings.ReplaceAll(newsTemplates[g.rnd.Intn(len(newsTemplates))], "{topic}", topicName)
	content := fmt.Sprintf(
		"%s. New developments in the field of %s are shaping how AI systems will be governed in the coming years. Experts suggest these changes will significantly impact how companies develop and deploy AI technologies.",
		title, topicName,
	)

	return Item{
		ID:      fmt.Sprintf("news-%d-%d", g.now().UnixMilli(), g.rnd.Intn(10000)),
		Type:    TypeRSS,
		Content: content,
		Source:  source,
		Date:    fmt.Sprintf("%dh ago", g.rnd.Intn(5)+1),
		URL:     fmt.Sprintf("https://example.com/news/%d", g.rnd.Intn(10000)),
		Topic:   topicName,
	}
}

// Batch produces count items spread over randomly chosen topics, mixing
// tweets and news items. No topics means no items.
func (g *Generator) Batch(topics []topic.Topic, count int) []Item {
	if len(topics) == 0 || count <= 0 {
		return []Item{}
	}
	out := make([]Item, 0, count)
	for i := 0; i < count; i++ {
		g.mu.Lock()
		t := topics[g.rnd.Intn(len(topics))]
		isTweet := g.rnd.Intn(2) == 0
		g.mu.Unlock()
		if isTweet {
			out = append(out, g.Tweet(t.Name))
		} else {
			out = append(out, g.NewsItem(t.Name))
		}
	}
	return out
}
