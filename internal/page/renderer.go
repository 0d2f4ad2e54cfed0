package page

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/goliatone/go-mdserve/pkg/interfaces"
)

// StyleBlock is the inline stylesheet every page carries verbatim.
const StyleBlock = `    <style>
      body { font-family: sans-serif; max-width: 800px; margin: auto; padding: 2em; }
      h1, h2, h3 { color: #444; }
      pre, code { background: #f4f4f4; padding: 0.2em 0.4em; }
    </style>`

const layout = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <title>{{.Title}}</title>
` + StyleBlock + `
  </head>
  <body>{{.Body}}</body>
</html>
`

// Renderer wraps rendered Markdown fragments in the fixed page layout.
// It holds a parsed template and is safe for concurrent use.
type Renderer struct {
	tmpl *template.Template
}

var _ interfaces.PageRenderer = (*Renderer)(nil)

// NewRenderer parses the page layout.
func NewRenderer() *Renderer {
	return &Renderer{
		tmpl: template.Must(template.New("page").Parse(layout)),
	}
}

// Render executes the layout. The title is HTML-escaped; the body fragment is
// inserted as-is.
func (r *Renderer) Render(page interfaces.Page) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, page); err != nil {
		return nil, fmt.Errorf("page render: %w", err)
	}
	return buf.Bytes(), nil
}

// FromDocument builds the page view model for a rendered document.
func FromDocument(doc *interfaces.Document) interfaces.Page {
	if doc == nil {
		return interfaces.Page{}
	}
	return interfaces.Page{
		Title: doc.Name,
		Body:  template.HTML(doc.BodyHTML),
	}
}
