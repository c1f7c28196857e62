package model

// CheckboxOption is one labeled boolean choice. IDs are unique and stable
// within a catalog.
type CheckboxOption struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
}

// CheckboxSet is the ordered list of options for a form. Its ids and order
// never change after construction; only Checked varies.
type CheckboxSet []CheckboxOption

// ToggleOne returns a copy with the option matching id flipped. Unknown ids
// leave the set unchanged.
func (s CheckboxSet) ToggleOne(id string) CheckboxSet {
	out := s.Clone()
	for i := range out {
		if out[i].ID == id {
			out[i].Checked = !out[i].Checked
			break
		}
	}
	return out
}

// ToggleAll returns a copy with every option set to value.
func (s CheckboxSet) ToggleAll(value bool) CheckboxSet {
	out := s.Clone()
	for i := range out {
		out[i].Checked = value
	}
	return out
}

// AllSelected reports whether every option is checked. An empty set is never
// all selected.
func (s CheckboxSet) AllSelected() bool {
	if len(s) == 0 {
		return false
	}
	for _, option := range s {
		if !option.Checked {
			return false
		}
	}
	return true
}

// SelectedLabels returns the labels of checked options in catalog order.
func (s CheckboxSet) SelectedLabels() []string {
	var out []string
	for _, option := range s {
		if option.Checked {
			out = append(out, option.Label)
		}
	}
	return out
}

// CheckedCount returns the number of checked options.
func (s CheckboxSet) CheckedCount() int {
	count := 0
	for _, option := range s {
		if option.Checked {
			count++
		}
	}
	return count
}

// Clone copies the set; nil stays nil.
func (s CheckboxSet) Clone() CheckboxSet {
	if s == nil {
		return nil
	}
	return append(CheckboxSet(nil), s...)
}

// Equal compares ids, labels and checked flags position by position.
func (s CheckboxSet) Equal(other CheckboxSet) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// MasterLabel is the caption of the "select all" control.
func (s CheckboxSet) MasterLabel() string {
	if s.AllSelected() {
		return "Deselect all"
	}
	return "Select all"
}

// CheckboxOp is an operation applied to the checkbox set of a record.
type CheckboxOp interface {
	apply(CheckboxSet) CheckboxSet
}

type toggleOption string

func (op toggleOption) apply(s CheckboxSet) CheckboxSet { return s.ToggleOne(string(op)) }

type setAll bool

func (op setAll) apply(s CheckboxSet) CheckboxSet { return s.ToggleAll(bool(op)) }

// ToggleOption flips the option identified by id.
func ToggleOption(id string) CheckboxOp { return toggleOption(id) }

// SetAll checks or unchecks every option.
func SetAll(value bool) CheckboxOp { return setAll(value) }

// DefaultCatalog returns the built-in option catalog.
func DefaultCatalog() []CheckboxOption {
	return []CheckboxOption{
		{ID: "option1", Label: "First Option"},
		{ID: "option2", Label: "Second Option"},
		{ID: "option3", Label: "Third Option"},
	}
}
