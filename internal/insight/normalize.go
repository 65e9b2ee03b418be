package insight

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"politix/internal/util/jsonutil"
)

const (
	defaultTitle       = "Untitled Insight"
	defaultDescription = "No description available"
	defaultSource      = "Internal Source"
	defaultPriority    = "medium"

	fallbackTitle = "Error Processing Insight"
	fallbackTopic = "Error"

	// Mirrors the dashboard's locale date/time rendering.
	dateLayout = "1/2/2006, 3:04:05 PM"
)

// extract holds the display fields both nested JSON blobs may carry.
// Writers disagree on which blob carries which field, so both are tried.
type extract struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Source      string `json:"source"`
	Priority    string `json:"priority"`
	Date        string `json:"date"`
	Topic       string `json:"topic"`
}

// Normalize maps one raw topic_analyses row onto a canonical Insight,
// supplying a default for every missing field. It never panics: a record
// whose shape breaks extraction yields a flagged fallback insight so one
// bad row cannot abort the whole batch.
func Normalize(rec RawRecord) (out Insight) {
	defer func() {
		if r := recover(); r != nil {
			out = fallbackInsight(rec)
		}
	}()

	analysis := decodeExtract(rec.AnalysisData)
	extracts := decodeExtract(rec.RelevantExtracts)

	return Insight{
		ID:          firstNonEmpty(rec.ID, uuid.NewString()),
		Title:       firstNonEmpty(analysis.Title, rec.Summary, defaultTitle),
		Description: firstNonEmpty(analysis.Description, extracts.Description, rec.Summary, defaultDescription),
		Source:      firstNonEmpty(analysis.Source, extracts.Source, defaultSource),
		Priority:    ClassifyPriority(firstNonEmpty(analysis.Priority, extracts.Priority, defaultPriority)),
		Date:        firstNonEmpty(analysis.Date, extracts.Date, formatAnalysisDate(rec.AnalysisDate)),
		Topic:       firstNonEmpty(analysis.Topic, primaryTopic(rec.Topics)),
		TopicID:     rec.TopicID,
	}
}

// NormalizeAll maps a batch of raw rows, preserving input order.
func NormalizeAll(recs []RawRecord) []Insight {
	out := make([]Insight, 0, len(recs))
	for _, rec := range recs {
		out = append(out, Normalize(rec))
	}
	return out
}

func fallbackInsight(rec RawRecord) Insight {
	return Insight{
		ID:          firstNonEmpty(rec.ID, uuid.NewString()),
		Title:       fallbackTitle,
		Description: defaultDescription,
		Source:      defaultSource,
		Priority:    PriorityInfo,
		Date:        formatAnalysisDate(rec.AnalysisDate),
		Topic:       fallbackTopic,
		TopicID:     "",
	}
}

// decodeExtract tolerates any shape: a non-object blob simply yields no fields,
// the same way optional chaining did for the original rows.
func decodeExtract(raw json.RawMessage) extract {
	var e extract
	if len(raw) == 0 {
		return e
	}
	_ = jsonutil.UnmarshalRaw(raw, &e)
	return e
}

// primaryTopic resolves the topic name from a value that is either a
// sequence of names (first wins), a scalar name, or absent.
func primaryTopic(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) > 0 {
			return list[0]
		}
		return ""
	}
	var scalar string
	if err := json.Unmarshal(raw, &scalar); err == nil {
		return scalar
	}
	return ""
}

func formatAnalysisDate(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.Format(dateLayout)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
