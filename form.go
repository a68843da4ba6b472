package inkpost

import (
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
)

// maxFieldLen bounds every short text column in the posts table.
const maxFieldLen = 250

// PostForm is the submitted shape shared by the create and edit flows.
type PostForm struct {
	Title    string
	Subtitle string
	Author   string
	Image    string // URL string, stored as img_url
	Body     string // rich HTML, opaque to the server
}

// FieldError annotates a single failing form field.
type FieldError struct {
	Field   string
	Message string
}

// fieldRule describes the checks applied to one form field. Every field is
// required; maxLen of 0 means unbounded.
type fieldRule struct {
	field  string
	value  func(f PostForm) string
	maxLen int
	isURL  bool
}

var postFormRules = []fieldRule{
	{field: "title", value: func(f PostForm) string { return f.Title }, maxLen: maxFieldLen},
	{field: "subtitle", value: func(f PostForm) string { return f.Subtitle }, maxLen: maxFieldLen},
	{field: "author", value: func(f PostForm) string { return f.Author }, maxLen: maxFieldLen},
	{field: "image", value: func(f PostForm) string { return f.Image }, maxLen: maxFieldLen, isURL: true},
	{field: "body", value: func(f PostForm) string { return f.Body }},
}

// BindPostForm reads the post form fields from the request. Short fields are
// trimmed; the body is kept verbatim since it is editor-produced markup.
func BindPostForm(c echo.Context) PostForm {
	return PostForm{
		Title:    strings.TrimSpace(c.FormValue("title")),
		Subtitle: strings.TrimSpace(c.FormValue("subtitle")),
		Author:   strings.TrimSpace(c.FormValue("author")),
		Image:    strings.TrimSpace(c.FormValue("image")),
		Body:     c.FormValue("body"),
	}
}

// FormFromPost pre-fills the form from an existing record for the edit flow.
func FormFromPost(p BlogPost) PostForm {
	return PostForm{
		Title:    p.Title,
		Subtitle: p.Subtitle,
		Author:   p.Author,
		Image:    p.ImgURL,
		Body:     p.Body,
	}
}

// Validate evaluates the rule table and returns one error per failing field.
// An empty result means the form may be persisted.
func (f PostForm) Validate() []FieldError {
	var errs []FieldError
	for _, r := range postFormRules {
		v := r.value(f)
		switch {
		case strings.TrimSpace(v) == "":
			errs = append(errs, FieldError{Field: r.field, Message: "This field is required."})
		case r.maxLen > 0 && len(v) > r.maxLen:
			errs = append(errs, FieldError{Field: r.field, Message: "Must be 250 characters or fewer."})
		case r.isURL && !validURL(v):
			errs = append(errs, FieldError{Field: r.field, Message: "Must be a valid URL."})
		}
	}
	return errs
}

// validURL requires at least a scheme and a host, so bare words like
// "not-a-url" are rejected even though url.Parse accepts them.
func validURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// ErrorFor returns the message for a field, or "" when the field passed.
func ErrorFor(errs []FieldError, field string) string {
	for _, e := range errs {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}
