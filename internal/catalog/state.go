package catalog

import "strings"

// QueryState is what should currently be displayed. Keyword has precedence over
// Category when both are set, an empty string means "no filter".
type QueryState struct {
	Keyword   string
	Category  string
	PageIndex int
	PageSize  int
}

// Holder owns the current QueryState. It is not safe for concurrent use,
// Controller serializes access to it.
type Holder struct {
	state QueryState
}

func NewHolder(pageSize int) *Holder {
	return &Holder{state: QueryState{PageSize: pageSize}}
}

// SetKeyword stores the trimmed keyword and resets to the first page.
func (h *Holder) SetKeyword(text string) {
	h.state.Keyword = strings.TrimSpace(text)
	h.state.PageIndex = 0
}

// SetCategory stores the trimmed category and resets to the first page.
func (h *Holder) SetCategory(text string) {
	h.state.Category = strings.TrimSpace(text)
	h.state.PageIndex = 0
}

func (h *Holder) SetPage(n int) error {
	if n < 0 {
		return ErrNegativePage
	}
	h.state.PageIndex = n
	return nil
}

func (h *Holder) Current() QueryState {
	return h.state
}
