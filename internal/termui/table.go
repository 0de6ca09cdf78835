// Package termui draws the bookstore in a terminal: the catalog view, notifications, and
// the cart, order and session screens.
package termui

import (
	"html"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/microcosm-cc/bluemonday"
)

func NewTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(out)
	return t
}

var plain = bluemonday.StrictPolicy()

// plainText strips any markup a server-provided string may carry so it can be
// printed as is.
func plainText(s string) string {
	return strings.Join(strings.Fields(html.UnescapeString(plain.Sanitize(s))), " ")
}
