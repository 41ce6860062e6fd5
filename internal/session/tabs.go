package session

// Tab identifies one blueprint view.
type Tab string

const (
	TabSOP         Tab = "sop"
	TabRecipe      Tab = "recipe"
	TabPortal      Tab = "portal"
	TabDiagnostics Tab = "diagnostics"
)

var tabOrder = []Tab{TabSOP, TabRecipe, TabPortal, TabDiagnostics}

// Tabs returns the tabs in display order.
func Tabs() []Tab {
	return append([]Tab(nil), tabOrder...)
}

// Valid reports whether t is a known tab.
func (t Tab) Valid() bool {
	for _, k := range tabOrder {
		if k == t {
			return true
		}
	}
	return false
}

// Label returns the tab bar caption.
func (t Tab) Label() string {
	switch t {
	case TabSOP:
		return "Protocol SOP"
	case TabRecipe:
		return "Signal Recipe"
	case TabPortal:
		return "Portal Preview"
	case TabDiagnostics:
		return "Diagnostics"
	default:
		return string(t)
	}
}

func (t Tab) index() int {
	for i, k := range tabOrder {
		if k == t {
			return i
		}
	}
	return 0
}

// Next returns the tab to the right, wrapping.
func (t Tab) Next() Tab {
	return tabOrder[(t.index()+1)%len(tabOrder)]
}

// Prev returns the tab to the left, wrapping.
func (t Tab) Prev() Tab {
	return tabOrder[(t.index()+len(tabOrder)-1)%len(tabOrder)]
}
