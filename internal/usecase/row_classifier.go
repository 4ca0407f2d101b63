package usecase

// RowKind is the classification of a data row
type RowKind int

const (
	// RowShort is structural noise: blank lines and rows with too few cells
	RowShort RowKind = iota
	// RowSection introduces a new category
	RowSection
	// RowProduct is a candidate product record
	RowProduct
)

func (k RowKind) String() string {
	switch k {
	case RowShort:
		return "short"
	case RowSection:
		return "section"
	case RowProduct:
		return "product"
	default:
		return "unknown"
	}
}

// ClassifierState is the category context carried from row to row.
// The zero value is the no-category state.
type ClassifierState struct {
	Category   string
	InCategory bool
}

// CategoryOr returns the current category, or fallback before any section marker
func (s ClassifierState) CategoryOr(fallback string) string {
	if !s.InCategory {
		return fallback
	}
	return s.Category
}

// RowClassifier separates section markers from product rows
type RowClassifier struct {
	minColumns   int
	labelColumn  int
	blankColumns []int
}

// NewRowClassifier creates a classifier for the given layout
func NewRowClassifier(layout SheetLayout) *RowClassifier {
	minColumns := layout.MinColumns
	if minColumns <= 0 {
		minColumns = DefaultMinColumns
	}
	return &RowClassifier{
		minColumns:   minColumns,
		labelColumn:  layout.LabelColumn,
		blankColumns: layout.SectionBlankColumns,
	}
}

// Classify returns the kind of row and the state to use for the next row.
// Only section markers change the state.
func (c *RowClassifier) Classify(state ClassifierState, row []string) (RowKind, ClassifierState) {
	if len(row) < c.minColumns {
		return RowShort, state
	}

	label := cell(row, c.labelColumn)
	if label != "" && c.blanks(row) {
		return RowSection, ClassifierState{Category: label, InCategory: true}
	}

	return RowProduct, state
}

func (c *RowClassifier) blanks(row []string) bool {
	for _, idx := range c.blankColumns {
		if cell(row, idx) != "" {
			return false
		}
	}
	return true
}
