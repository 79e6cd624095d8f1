package data

// GenreCount defines the number of published books tagged with a genre.
type GenreCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// Categories defines the discovery lookup of categories and genres.
type Categories struct {
	Categories []string     `json:"categories"`
	Genres     []GenreCount `json:"genres"`
}
