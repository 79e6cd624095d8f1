package dto

// CreateDraftRequestBody defines the request body for CreateDraft service.
type CreateDraftRequestBody struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Genres      []string `json:"genres"`
	Language    string   `json:"language"`
	Pages       int32    `json:"pages"`
	Price       float64  `json:"price"`
	CoverImage  string   `json:"cover_image"`
}

// QsTrending defines the query strings used for the trending ranking.
type QsTrending struct {
	Days  int
	Limit int
}
