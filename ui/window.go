package ui

// Window holds the geometry and title of a preview window.
type Window struct {
	Width  int
	Height int
	Title  string
}

// DefaultWindow returns the window used when none is configured.
func DefaultWindow() Window {
	return Window{
		Width:  640,
		Height: 480,
		Title:  "Tingle",
	}
}

func (w Window) withDefaults() Window {
	def := DefaultWindow()
	if w.Width <= 0 {
		w.Width = def.Width
	}
	if w.Height <= 0 {
		w.Height = def.Height
	}
	if w.Title == "" {
		w.Title = def.Title
	}
	return w
}
