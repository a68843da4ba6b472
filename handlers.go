package inkpost

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	headingNewPost  = "New Post"
	headingEditPost = "Edit Post"
)

// parsePostID reads the :id path parameter. A non-numeric id is treated the
// same as a missing record.
func parsePostID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, ErrNotFound
	}
	return id, nil
}

// handleHome serves the post listing page.
func (a *App) handleHome(c echo.Context) error {
	posts, err := a.Cache.ListPosts()
	if err != nil {
		return err
	}
	return Render(c, a.Views.Home(posts, TakeFlash(c)))
}

// handlePost serves a single post. A missing record renders an explicit 404
// rather than handing the view an absent post.
func (a *App) handlePost(c echo.Context) error {
	id, err := parsePostID(c)
	if err != nil {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
	}
	post, err := a.Cache.GetPost(id)
	if err != nil {
		if err == ErrNotFound {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	return Render(c, a.Views.Post(post))
}

func (a *App) handleNewPostForm(c echo.Context) error {
	return Render(c, a.Views.PostForm(PostForm{}, nil, headingNewPost, CsrfToken(c)))
}

// handleCreatePost persists a valid submission with a server-assigned
// creation date and redirects to the listing. An invalid submission
// re-renders the form with field errors and the entered values preserved.
func (a *App) handleCreatePost(c echo.Context) error {
	if !a.writeLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many submissions. Try again later.")
	}
	form := BindPostForm(c)
	if errs := form.Validate(); len(errs) > 0 {
		return Render(c, a.Views.PostForm(form, errs, headingNewPost, CsrfToken(c)))
	}

	post := BlogPost{
		Title:    form.Title,
		Subtitle: form.Subtitle,
		Date:     FormatPostDate(time.Now()),
		Body:     form.Body,
		Author:   form.Author,
		ImgURL:   form.Image,
	}
	if _, err := a.Store.CreatePost(post); err != nil {
		if err == ErrDuplicateTitle {
			errs := []FieldError{{Field: "title", Message: ErrDuplicateTitle.Error()}}
			return Render(c, a.Views.PostForm(form, errs, headingNewPost, CsrfToken(c)))
		}
		return err
	}
	a.Cache.Invalidate()
	_ = SetFlash(c, "Post created.")
	return c.Redirect(http.StatusSeeOther, "/")
}

// handleEditPostForm pre-fills the shared form from the existing record.
func (a *App) handleEditPostForm(c echo.Context) error {
	id, err := parsePostID(c)
	if err != nil {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
	}
	post, err := a.Store.GetPost(id)
	if err != nil {
		if err == ErrNotFound {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	return Render(c, a.Views.PostForm(FormFromPost(post), nil, headingEditPost, CsrfToken(c)))
}

// handleEditPost overwrites every field except id and date, then redirects to
// the post page. The record is re-read just before the write rather than
// trusting anything fetched for the form render.
func (a *App) handleEditPost(c echo.Context) error {
	if !a.writeLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many submissions. Try again later.")
	}
	id, err := parsePostID(c)
	if err != nil {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
	}
	form := BindPostForm(c)
	if errs := form.Validate(); len(errs) > 0 {
		return Render(c, a.Views.PostForm(form, errs, headingEditPost, CsrfToken(c)))
	}

	post, err := a.Store.GetPost(id)
	if err != nil {
		if err == ErrNotFound {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	post.Title = form.Title
	post.Subtitle = form.Subtitle
	post.Body = form.Body
	post.Author = form.Author
	post.ImgURL = form.Image
	if err := a.Store.UpdatePost(post); err != nil {
		if err == ErrDuplicateTitle {
			errs := []FieldError{{Field: "title", Message: ErrDuplicateTitle.Error()}}
			return Render(c, a.Views.PostForm(form, errs, headingEditPost, CsrfToken(c)))
		}
		return err
	}
	a.Cache.Invalidate()
	_ = SetFlash(c, "Post updated.")
	return c.Redirect(http.StatusSeeOther, post.Link())
}

// handleDeletePost removes the record, answering 404 when it does not exist.
func (a *App) handleDeletePost(c echo.Context) error {
	if !a.writeLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many submissions. Try again later.")
	}
	id, err := parsePostID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	if err := a.Store.DeletePost(id); err != nil {
		if err == ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return err
	}
	a.Cache.Invalidate()
	_ = SetFlash(c, "Post deleted.")
	return c.Redirect(http.StatusSeeOther, "/")
}

func (a *App) handleAbout(c echo.Context) error {
	return Render(c, a.Views.About())
}

func (a *App) handleContact(c echo.Context) error {
	return Render(c, a.Views.Contact())
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

// handleRobots generates robots.txt dynamically from the site URL.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.ListPosts()
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.ListPosts()
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
