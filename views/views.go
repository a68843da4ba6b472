// Package views provides the default templ components for an inkpost site.
// Components are plain functions from handler data to HTML; sites wanting a
// different look supply their own ViewFuncs instead.
//
// Post bodies are editor-produced rich HTML and are written through verbatim.
// Sanitization policy belongs to whoever accepts the content.
package views

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/inkpost/inkpost"
)

// Funcs returns the default view set for the given site configuration.
func Funcs(cfg inkpost.SiteConfig) inkpost.ViewFuncs {
	return inkpost.ViewFuncs{
		Home: func(posts []inkpost.BlogPost, flash string) templ.Component {
			return component(func(b *bytes.Buffer) {
				writeHead(b, cfg, cfg.Name)
				fmt.Fprintf(b, `<script type="application/ld+json">%s</script>`, inkpost.WebsiteJsonLD(cfg))
				writeHeader(b, cfg)
				if flash != "" {
					fmt.Fprintf(b, `<p class="flash">%s</p>`, html.EscapeString(flash))
				}
				b.WriteString(`<main class="post-list">`)
				for _, p := range posts {
					fmt.Fprintf(b, `<article><a href="%s"><h2>%s</h2><h3>%s</h3></a><p class="meta">Posted by %s on %s</p></article>`,
						p.Link(), html.EscapeString(p.Title), html.EscapeString(p.Subtitle),
						html.EscapeString(p.Author), html.EscapeString(p.Date))
				}
				b.WriteString(`<p><a class="button" href="/new-post">Create New Post</a></p></main>`)
				writeFooter(b)
			})
		},
		Post: func(p inkpost.BlogPost) templ.Component {
			return component(func(b *bytes.Buffer) {
				writeHead(b, cfg, p.Title)
				fmt.Fprintf(b, `<script type="application/ld+json">%s</script>`, inkpost.BlogPostingJsonLD(p, cfg))
				writeHeader(b, cfg)
				fmt.Fprintf(b, `<main class="post"><img src="%s" alt=""><h1>%s</h1><h2>%s</h2><p class="meta">Posted by %s on %s</p>`,
					html.EscapeString(p.ImgURL), html.EscapeString(p.Title), html.EscapeString(p.Subtitle),
					html.EscapeString(p.Author), html.EscapeString(p.Date))
				b.WriteString(`<div class="body">`)
				b.WriteString(p.Body)
				b.WriteString(`</div>`)
				fmt.Fprintf(b, `<p><a class="button" href="/edit-post/%d">Edit Post</a> <a class="button" href="/delete/%d">Delete</a></p></main>`, p.ID, p.ID)
				writeFooter(b)
			})
		},
		PostForm: func(form inkpost.PostForm, errs []inkpost.FieldError, heading string, csrf string) templ.Component {
			return component(func(b *bytes.Buffer) {
				writeHead(b, cfg, heading)
				writeHeader(b, cfg)
				fmt.Fprintf(b, `<main class="post-form"><h1>%s</h1><form method="post">`, html.EscapeString(heading))
				fmt.Fprintf(b, `<input type="hidden" name="_csrf" value="%s">`, html.EscapeString(csrf))
				writeField(b, errs, "title", "Blog Title", form.Title)
				writeField(b, errs, "subtitle", "Subtitle", form.Subtitle)
				writeField(b, errs, "author", "Author", form.Author)
				writeField(b, errs, "image", "Image URL", form.Image)
				fmt.Fprintf(b, `<label for="body">Body</label>`)
				writeFieldError(b, errs, "body")
				fmt.Fprintf(b, `<textarea id="body" name="body">%s</textarea>`, html.EscapeString(form.Body))
				b.WriteString(`<button type="submit">Submit Post</button></form></main>`)
				// CKEditor takes over the body textarea and uploads through /upload-image.
				b.WriteString(`<script src="https://cdn.ckeditor.com/ckeditor5/41.2.0/classic/ckeditor.js"></script>`)
				b.WriteString(`<script>ClassicEditor.create(document.querySelector('#body'),{simpleUpload:{uploadUrl:'/upload-image'}});</script>`)
				writeFooter(b)
			})
		},
		About: func() templ.Component {
			return staticPage(cfg, "About Me", `<p>Hi, this is my little corner of the internet. I write here about whatever I am building or reading.</p>`)
		},
		Contact: func() templ.Component {
			return staticPage(cfg, "Contact Me", `<p>Have questions? The best way to reach me is email.</p>`)
		},
		NotFound: func() templ.Component {
			return staticPage(cfg, "Page Not Found", `<p>The page you were looking for does not exist. <a href="/">Back to the blog.</a></p>`)
		},
		ServerError: func() templ.Component {
			return staticPage(cfg, "Something Went Wrong", `<p>An unexpected error occurred. <a href="/">Back to the blog.</a></p>`)
		},
	}
}

// component wraps a buffer-writing function as a templ.Component.
func component(write func(*bytes.Buffer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		write(&buf)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func staticPage(cfg inkpost.SiteConfig, title, body string) templ.Component {
	return component(func(b *bytes.Buffer) {
		writeHead(b, cfg, title)
		writeHeader(b, cfg)
		fmt.Fprintf(b, `<main class="page"><h1>%s</h1>%s</main>`, html.EscapeString(title), body)
		writeFooter(b)
	})
}

func writeHead(b *bytes.Buffer, cfg inkpost.SiteConfig, title string) {
	fmt.Fprintf(b, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
	fmt.Fprintf(b, `<title>%s — %s</title>`, html.EscapeString(title), html.EscapeString(cfg.Name))
	if cfg.Description != "" {
		fmt.Fprintf(b, `<meta name="description" content="%s">`, html.EscapeString(cfg.Description))
	}
	b.WriteString(`<link rel="stylesheet" href="/public/styles.css"></head><body>`)
}

func writeHeader(b *bytes.Buffer, cfg inkpost.SiteConfig) {
	fmt.Fprintf(b, `<header><a class="site-name" href="/">%s</a><nav><a href="/">Home</a> <a href="/about">About</a> <a href="/contact">Contact</a></nav></header>`,
		html.EscapeString(cfg.Name))
}

func writeFooter(b *bytes.Buffer) {
	b.WriteString(`<footer><a href="/feed.xml">RSS</a></footer></body></html>`)
}

func writeField(b *bytes.Buffer, errs []inkpost.FieldError, name, label, value string) {
	fmt.Fprintf(b, `<label for="%s">%s</label>`, name, html.EscapeString(label))
	writeFieldError(b, errs, name)
	fmt.Fprintf(b, `<input type="text" id="%s" name="%s" value="%s">`, name, name, html.EscapeString(value))
}

func writeFieldError(b *bytes.Buffer, errs []inkpost.FieldError, field string) {
	if msg := inkpost.ErrorFor(errs, field); msg != "" {
		fmt.Fprintf(b, `<p class="field-error">%s</p>`, html.EscapeString(msg))
	}
}
