package web

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Card wraps children in a rounded panel.
func Card(class string, children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="`+esc(strings.TrimSpace("card "+class))+`">`); err != nil {
			return err
		}
		for _, child := range children {
			if err := child.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

// ButtonVariant selects the visual style of Button.
type ButtonVariant string

const (
	ButtonDefault ButtonVariant = "default"
	ButtonOutline ButtonVariant = "outline"
	ButtonGhost   ButtonVariant = "ghost"
)

// ButtonProps are the attributes of Button.
type ButtonProps struct {
	Variant ButtonVariant
	Label   string
	Class   string
	// Attrs are extra raw attributes; callers must escape values.
	Attrs string
}

// Button renders a styled <button type="button">.
func Button(props ButtonProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		variant := props.Variant
		if variant == "" {
			variant = ButtonDefault
		}
		class := strings.TrimSpace("btn btn-" + string(variant) + " " + props.Class)
		attrs := ""
		if props.Attrs != "" {
			attrs = " " + props.Attrs
		}
		_, err := io.WriteString(w, `<button type="button" class="`+esc(class)+`"`+attrs+`>`+esc(props.Label)+`</button>`)
		return err
	})
}

// Sheet is the bottom slide-up container; it starts closed and is toggled by script.
func Sheet(id, title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="sheet-backdrop" data-sheet-close="`+esc(id)+`" hidden></div>`+
			`<section id="`+esc(id)+`" class="sheet" role="dialog" aria-modal="true" aria-labelledby="`+esc(id)+`-title" hidden>`+
			`<header class="sheet-header"><h2 id="`+esc(id)+`-title">`+esc(title)+`</h2>`+
			`<button type="button" class="sheet-close" data-sheet-close="`+esc(id)+`" aria-label="Закрыть">×</button></header>`+
			`<div class="sheet-body">`); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div></section>`)
		return err
	})
}
