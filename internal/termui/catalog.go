package termui

import (
	"fmt"
	"io"
	"strings"

	"bookstore-client/internal/catalog"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const descriptionWidth = 40

// CatalogView draws every view model it is shown below the previous one.
type CatalogView struct {
	out io.Writer
}

func NewCatalogView(out io.Writer) CatalogView {
	return CatalogView{out: out}
}

func previousControl(enabled bool) string {
	if enabled {
		return "[< " + catalog.PreviousLabel + "]"
	}
	return "( " + catalog.PreviousLabel + " )"
}

func nextControl(enabled bool) string {
	if enabled {
		return "[" + catalog.NextLabel + " >]"
	}
	return "( " + catalog.NextLabel + " )"
}

// ControlsLine is the pagination bar under the catalog.
func ControlsLine(c catalog.Controls) string {
	return strings.Join([]string{
		previousControl(c.PreviousEnabled),
		c.Label,
		nextControl(c.NextEnabled),
	}, "  ")
}

func (v CatalogView) Show(vm catalog.ViewModel) {
	if len(vm.Cards) == 0 {
		fmt.Fprintln(v.out, vm.Message)
		fmt.Fprintln(v.out, ControlsLine(vm.Controls))
		return
	}

	t := NewTable(v.out)
	t.AppendHeader(table.Row{"ID", "Title", "Author", "Category", "Price", "Stock", "Description", "Action"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Price", Align: text.AlignRight},
		{Name: "Stock", Align: text.AlignRight},
		{Name: "Description", WidthMax: descriptionWidth, WidthMaxEnforcer: text.WrapSoft},
	})
	for _, card := range vm.Cards {
		t.AppendRow(table.Row{
			card.Id,
			plainText(card.Title),
			plainText(card.Author),
			plainText(card.Category),
			card.Price,
			card.Stock,
			plainText(card.Description),
			card.ActionLabel(),
		})
	}
	t.Render()
	fmt.Fprintln(v.out, ControlsLine(vm.Controls))
}
