package site

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestEmbeddedRenderer(t *testing.T) {
	Convey("Given a renderer over the embedded templates", t, func() {
		r, err := NewRenderer()
		So(err, ShouldBeNil)
		So(r.Dir(), ShouldEqual, "")

		Convey("When rendering the home page with a name", func() {
			var buf bytes.Buffer
			err := r.Render(&buf, "index.html", map[string]any{"name": "Aakash"})

			Convey("Then the name is bound into the markup", func() {
				So(err, ShouldBeNil)
				So(buf.String(), ShouldContainSubstring, "Hello, Aakash!")
				So(buf.String(), ShouldNotContainSubstring, "WebSocket")
			})
		})

		Convey("When rendering the home page with markup in the name", func() {
			var buf bytes.Buffer
			err := r.Render(&buf, "index.html", map[string]any{"name": "<b>x</b>"})

			Convey("Then it is escaped", func() {
				So(err, ShouldBeNil)
				So(buf.String(), ShouldContainSubstring, "&lt;b&gt;x&lt;/b&gt;")
			})
		})

		Convey("When rendering the form pages", func() {
			var post, get bytes.Buffer
			So(r.Render(&post, "form.html", nil), ShouldBeNil)
			So(r.Render(&get, "form_get.html", nil), ShouldBeNil)

			Convey("Then each form targets its own handler and method", func() {
				So(post.String(), ShouldContainSubstring, `action="/form" method="post"`)
				So(get.String(), ShouldContainSubstring, `action="/form-get-result" method="get"`)
				So(post.String(), ShouldContainSubstring, `name="username"`)
				So(get.String(), ShouldContainSubstring, `name="password"`)
			})
		})

		Convey("When rendering an unknown template", func() {
			var buf bytes.Buffer
			err := r.Render(&buf, "missing.html", nil)

			Convey("Then a not found error is returned and nothing is written", func() {
				So(errors.Is(err, ErrTemplateNotFound), ShouldBeTrue)
				So(buf.Len(), ShouldEqual, 0)
			})
		})
	})
}

func TestLiveReloadScript(t *testing.T) {
	Convey("Given a renderer with live reload enabled", t, func() {
		r, err := NewRenderer(WithLiveReload("/__reload"))
		So(err, ShouldBeNil)

		Convey("When rendering any page", func() {
			var buf bytes.Buffer
			So(r.Render(&buf, "form.html", nil), ShouldBeNil)

			Convey("Then the page opens the reload socket", func() {
				So(buf.String(), ShouldContainSubstring, "new WebSocket")
				So(buf.String(), ShouldContainSubstring, "__reload")
			})
		})
	})
}

func TestDirRenderer(t *testing.T) {
	Convey("Given a renderer over an on-disk template directory", t, func() {
		dir := t.TempDir()
		page := filepath.Join(dir, "index.html")
		So(os.WriteFile(page, []byte(`<p>v1 {{.name}}</p>`), 0o600), ShouldBeNil)

		r, err := NewRenderer(WithDir(dir))
		So(err, ShouldBeNil)
		So(r.Dir(), ShouldEqual, dir)

		Convey("When the file changes and templates are reloaded", func() {
			So(os.WriteFile(page, []byte(`<p>v2 {{.name}}</p>`), 0o600), ShouldBeNil)
			So(r.Reload(context.Background()), ShouldBeNil)

			Convey("Then the new version is rendered", func() {
				var buf bytes.Buffer
				So(r.Render(&buf, "index.html", map[string]any{"name": "n"}), ShouldBeNil)
				So(buf.String(), ShouldEqual, "<p>v2 n</p>")
			})
		})

		Convey("When the file becomes invalid and templates are reloaded", func() {
			So(os.WriteFile(page, []byte(`<p>{{.name</p>`), 0o600), ShouldBeNil)
			err := r.Reload(context.Background())

			Convey("Then the error is reported and the previous set keeps serving", func() {
				So(errors.Is(err, ErrParse), ShouldBeTrue)
				var buf bytes.Buffer
				So(r.Render(&buf, "index.html", map[string]any{"name": "n"}), ShouldBeNil)
				So(buf.String(), ShouldEqual, "<p>v1 n</p>")
			})
		})

		Convey("When a template fails during execution", func() {
			So(os.WriteFile(page, []byte(`<p>{{template "nope"}}</p>`), 0o600), ShouldBeNil)
			So(r.Reload(context.Background()), ShouldBeNil)

			Convey("Then a render error is returned and nothing is written", func() {
				var buf bytes.Buffer
				err := r.Render(&buf, "index.html", nil)
				So(errors.Is(err, ErrRender), ShouldBeTrue)
				So(buf.Len(), ShouldEqual, 0)
			})
		})
	})

	Convey("Given a directory with no templates", t, func() {
		_, err := NewRenderer(WithDir(t.TempDir()))

		Convey("Then construction fails with a parse error", func() {
			So(errors.Is(err, ErrParse), ShouldBeTrue)
		})
	})
}

func TestSiteErrors(t *testing.T) {
	Convey("Given site error constants", t, func() {
		Convey("Then they should be distinct", func() {
			So(ErrTemplateNotFound, ShouldNotEqual, ErrParse)
			So(ErrParse, ShouldNotEqual, ErrRender)
			So(ErrTemplateNotFound.Error(), ShouldEqual, "template not found")
		})
	})
}
