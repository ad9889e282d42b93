package contact

import (
	"embed"
	"io"

	"github.com/flosch/pongo2/v6"
)

//go:embed templates/contact.html
var templateFS embed.FS

// pages загружает шаблоны из встроенного templateFS.
// pongo2 экранирует HTML по умолчанию, поэтому значения пользователя
// выводятся как текст.
var pages = pongo2.NewSet("contact", pongo2.NewFSLoader(templateFS))

var pageTemplate = pongo2.Must(pages.FromFile("templates/contact.html"))

// RenderHTML рендерит страницу формы в w.
// При ошибке в w ничего не пишется.
func RenderHTML(w io.Writer, v View) error {
	return pageTemplate.ExecuteWriter(pageContext(v), w)
}

// pageContext переводит View в контекст шаблона.
// Ключи совпадают с именами полей формы (firstName, lastName...).
func pageContext(v View) pongo2.Context {
	values := make(map[string]string, len(Fields))
	for _, f := range Fields {
		values[string(f)], _ = v.Values.Get(f)
	}

	errs := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		errs[string(e.Field)] = e.Text
	}

	ctx := pongo2.Context{
		"values": values,
		"errors": errs,
	}
	if d := v.Display; d != nil {
		display := map[string]string{
			"firstName": d.FirstName,
			"lastName":  d.LastName,
			"email":     d.Email,
		}
		if d.Message != nil {
			display["message"] = *d.Message
		}
		ctx["display"] = display
	}
	return ctx
}
