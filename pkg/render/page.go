package render

import (
	_ "embed"
	"fmt"
	"io"

	"github.com/vango-dev/rangeslider/pkg/vdom"
)

//go:embed assets/client.js
var clientScript string

//go:embed assets/slider.css
var stylesheet string

// ClientScript returns the thin client source.
func ClientScript() string { return clientScript }

// Stylesheet returns the slider stylesheet.
func Stylesheet() string { return stylesheet }

// PageData contains all data needed to render a complete HTML page.
type PageData struct {
	// Body is the root VNode for the page content
	Body *vdom.VNode

	// Title is the page title
	Title string

	// Lang is the language attribute for the html element.
	// Defaults to "en" if not specified.
	Lang string

	// SocketPath is where the client connects for live updates. Empty
	// renders a static page without the client script.
	SocketPath string

	// Styles are extra inline CSS blocks after the slider stylesheet.
	Styles []string
}

// RenderPage renders a complete HTML document to the given writer.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	if _, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html lang=\"%s\">\n", escapeAttr(lang)); err != nil {
		return err
	}
	if err := r.renderHead(w, page); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "<body>\n"); err != nil {
		return err
	}
	if err := r.RenderToWriter(w, page.Body); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	if page.SocketPath != "" {
		if _, err := fmt.Fprintf(w, "<script data-socket=\"%s\">%s</script>\n", escapeAttr(page.SocketPath), clientScript); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</body>\n</html>\n")
	return err
}

// renderHead renders the document head section.
func (r *Renderer) renderHead(w io.Writer, page PageData) error {
	if _, err := io.WriteString(w, "<head>\n  <meta charset=\"utf-8\">\n"+
		"  <meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n"); err != nil {
		return err
	}
	if page.Title != "" {
		if _, err := fmt.Fprintf(w, "  <title>%s</title>\n", escapeHTML(page.Title)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "  <style>%s</style>\n", stylesheet); err != nil {
		return err
	}
	for _, style := range page.Styles {
		if _, err := fmt.Fprintf(w, "  <style>%s</style>\n", style); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</head>\n")
	return err
}
