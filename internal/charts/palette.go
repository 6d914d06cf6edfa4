package charts

// Palette is the chart color set for one theme.
type Palette struct {
	Primary   string   `json:"primary"`
	Secondary string   `json:"secondary"`
	Colors    []string `json:"colors"`
}

// PaletteFor returns the dark palette for "dark" and the light one otherwise.
func PaletteFor(theme string) Palette {
	if theme == "dark" {
		return Palette{
			Primary:   "#C4A77D",
			Secondary: "#8B7355",
			Colors:    []string{"#C4A77D", "#8B7355", "#6F5A45", "#A0927F", "#8FAAC4", "#6FA97D"},
		}
	}
	return Palette{
		Primary:   "#6F4E37",
		Secondary: "#A0826D",
		Colors:    []string{"#6F4E37", "#A0826D", "#D4B5A0", "#8D6E63", "#6F8FAF", "#4A7C59"},
	}
}
