package interfaces

import "html/template"

// Page is the view model handed to the page template.
type Page struct {
	Title string
	Body  template.HTML
}

// PageRenderer wraps a rendered Markdown fragment into a full HTML document.
type PageRenderer interface {
	Render(page Page) ([]byte, error)
}
