package table

// Options carries the behavior flags for a table widget.
type Options struct {
	Sortable    bool `json:"sortable"`
	Paginated   bool `json:"paginated"`
	Highlighted bool `json:"highlighted"`
	Searchable  bool `json:"searchable"`
}

// State is the host-owned view state: search term, active sort, and page
// index. The zero value means no filter, no sort, first page.
type State struct {
	Search  string `json:"search"`
	SortKey string `json:"sort_key"`
	SortAsc bool   `json:"sort_asc"`
	Page    int    `json:"page"`
}

// ToggleSort records a header click. Clicking the active column flips the
// direction; clicking a different column resets to ascending.
func (s *State) ToggleSort(fieldKey string) {
	if s.SortKey == fieldKey {
		s.SortAsc = !s.SortAsc
		return
	}
	s.SortKey = fieldKey
	s.SortAsc = true
}

// SetSearch replaces the search term and returns to the first page so the
// current page can never point past the filtered set.
func (s *State) SetSearch(term string) {
	s.Search = term
	s.Page = 1
}

// SetPage stores the requested page index. Out-of-range values are clamped
// again at pipeline time.
func (s *State) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	s.Page = page
}
