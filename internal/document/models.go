package document

import "github.com/docsession/docsession/internal/models"

// Patch is the allow-listed set of mutable document fields. A nil field is
// left untouched.
type Patch struct {
	Title   *string `json:"title" form:"title"`
	Content *string `json:"content" form:"content"`
}

// PatchFields lists the field names a Patch accepts from request data.
var PatchFields = map[string]struct{}{
	"title":   {},
	"content": {},
}

// Apply overwrites the supplied fields on d.
func (p Patch) Apply(d *models.Document) {
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.Content != nil {
		d.Content = *p.Content
	}
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Content == nil
}
