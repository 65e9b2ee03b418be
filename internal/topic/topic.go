package topic

import "time"

// Topic is a named subject area a user can follow. Public topics are shared
// and uneditable; non-public ("custom") topics are owned by the current actor.
type Topic struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Following   bool     `json:"following"`
	IsPublic    bool     `json:"is_public"`
	Keywords    []string `json:"keywords"`
}

// Row mirrors one topics table row.
type Row struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	IsPublic     bool      `json:"is_public"`
	Keywords     []string  `json:"keywords"`
	UserID       string    `json:"user_id"`
	Category     string    `json:"category,omitempty"`
	TopicsSource string    `json:"topics_source,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FromRow converts a stored row into the dashboard's Topic shape, deriving a
// category when the row does not carry one. Following is left false; it is
// layered on from the follow selection afterwards.
func FromRow(r Row) Topic {
	keywords := r.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	return Topic{
		ID:          r.ID,
		Name:        r.Name,
		Category:    DeriveCategory(r),
		Description: r.Description,
		Following:   false,
		IsPublic:    r.IsPublic,
		Keywords:    keywords,
	}
}

// FromRows converts a batch of rows, preserving order.
func FromRows(rows []Row) []Topic {
	out := make([]Topic, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromRow(r))
	}
	return out
}
