package books

type Book struct {
	ID            string  `json:"id,omitempty"`
	Title         string  `json:"title,omitempty"`
	Author        string  `json:"author,omitempty"`
	Theme         string  `json:"theme,omitempty"`
	AverageRating float64 `json:"averageRating"`      // Mean user rating, 0.0 to 5.0
	CoverURL      string  `json:"coverUrl,omitempty"` // URL of the cover image
}
