package view

// ShortDescriptionLength is the number of characters kept in the collapsed description.
const ShortDescriptionLength = 200

const (
	ShowFullDescriptionLabel = "Zobrazit celý popis"
	HideDescriptionLabel     = "Skrýt popis"
)

// ShortDescription truncates desc to ShortDescriptionLength characters and appends an ellipsis.
func ShortDescription(desc string) string {
	runes := []rune(desc)
	if len(runes) > ShortDescriptionLength {
		runes = runes[:ShortDescriptionLength]
	}
	return string(runes) + "..."
}

// DescriptionToggle swaps between the full and the short description.
// Exactly one of them is visible at any time.
type DescriptionToggle struct {
	Expanded bool
}

func (t DescriptionToggle) FullVisible() bool  { return t.Expanded }
func (t DescriptionToggle) ShortVisible() bool { return !t.Expanded }

func (t *DescriptionToggle) Toggle() {
	t.Expanded = !t.Expanded
}

func (t DescriptionToggle) Label() string {
	if t.Expanded {
		return HideDescriptionLabel
	}
	return ShowFullDescriptionLabel
}
