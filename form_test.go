package inkpost

import (
	"strings"
	"testing"
)

func validForm() PostForm {
	return PostForm{
		Title:    "Hello",
		Subtitle: "World",
		Author:   "A",
		Image:    "http://x.com/i.png",
		Body:     "<p>hi</p>",
	}
}

func TestValidateAccepts(t *testing.T) {
	if errs := validForm().Validate(); len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestValidateRequiredFields(t *testing.T) {
	tests := []struct {
		field  string
		mutate func(*PostForm)
	}{
		{"title", func(f *PostForm) { f.Title = "" }},
		{"subtitle", func(f *PostForm) { f.Subtitle = "  " }},
		{"author", func(f *PostForm) { f.Author = "" }},
		{"image", func(f *PostForm) { f.Image = "" }},
		{"body", func(f *PostForm) { f.Body = "" }},
	}

	for _, tt := range tests {
		f := validForm()
		tt.mutate(&f)
		errs := f.Validate()
		if len(errs) != 1 {
			t.Errorf("%s: expected 1 error, got %v", tt.field, errs)
			continue
		}
		if errs[0].Field != tt.field {
			t.Errorf("expected error on %q, got %q", tt.field, errs[0].Field)
		}
	}
}

func TestValidateImageURL(t *testing.T) {
	tests := []struct {
		image string
		ok    bool
	}{
		{"http://x.com/i.png", true},
		{"https://example.org/a/b.jpg", true},
		// No scheme, no host, and an opaque URL are all rejected.
		{"not-a-url", false},
		{"x.com/i.png", false},
		{"http://", false},
		{"mailto:me@x.com", false},
	}

	for _, tt := range tests {
		f := validForm()
		f.Image = tt.image
		errs := f.Validate()
		if tt.ok && len(errs) != 0 {
			t.Errorf("Validate(image=%q) = %v, want no errors", tt.image, errs)
		}
		if !tt.ok && ErrorFor(errs, "image") == "" {
			t.Errorf("Validate(image=%q) should flag the image field", tt.image)
		}
	}
}

func TestValidateMaxLength(t *testing.T) {
	long := strings.Repeat("a", maxFieldLen+1)

	f := validForm()
	f.Title = long
	if ErrorFor(f.Validate(), "title") == "" {
		t.Error("overlong title should be rejected")
	}

	// The body is unbounded.
	f = validForm()
	f.Body = strings.Repeat("b", 10*maxFieldLen)
	if errs := f.Validate(); len(errs) != 0 {
		t.Errorf("long body should pass, got %v", errs)
	}
}

func TestFormFromPost(t *testing.T) {
	p := BlogPost{
		ID:       3,
		Title:    "T",
		Subtitle: "S",
		Date:     "January 05, 24",
		Body:     "<p>b</p>",
		Author:   "A",
		ImgURL:   "http://x.com/i.png",
	}
	f := FormFromPost(p)
	if f.Title != "T" || f.Subtitle != "S" || f.Author != "A" || f.Body != "<p>b</p>" {
		t.Errorf("FormFromPost = %+v", f)
	}
	if f.Image != "http://x.com/i.png" {
		t.Errorf("Image = %q, want the record's img_url", f.Image)
	}
}

func TestErrorFor(t *testing.T) {
	errs := []FieldError{{Field: "title", Message: "This field is required."}}
	if got := ErrorFor(errs, "title"); got != "This field is required." {
		t.Errorf("ErrorFor(title) = %q", got)
	}
	if got := ErrorFor(errs, "author"); got != "" {
		t.Errorf("ErrorFor(author) = %q, want empty", got)
	}
}
