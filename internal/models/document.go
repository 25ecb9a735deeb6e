package models

// Document is the single editable resource exposed over HTTP.
type Document struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}
