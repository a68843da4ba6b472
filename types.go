package inkpost

import "strconv"

// BlogPost is the single persisted content type: one row in the posts table,
// rendered by templates.
type BlogPost struct {
	ID       int64
	Title    string
	Subtitle string
	Date     string // set once at creation, e.g. "January 05, 24"
	Body     string // rich HTML produced by the editor widget
	Author   string
	ImgURL   string
}

// Link returns the canonical site-relative path for the post.
func (p BlogPost) Link() string {
	return "/post/" + strconv.FormatInt(p.ID, 10)
}

// Image holds metadata for an uploaded editor image.
type Image struct {
	Filename     string
	OriginalName string
	Width        int
	Height       int
	Size         int
	URL          string
}
