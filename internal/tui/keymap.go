package tui

// Key binding constants used in handleKey.
const (
	KeyUp        = "up"
	KeyK         = "k"
	KeyDown      = "down"
	KeyJ         = "j"
	KeySpace     = " "
	KeySpaceName = "space"
	KeyHome      = "home"
	KeyEnd       = "end"
	KeyEnter     = "enter"
	KeyBackspace = "backspace"
	KeyBlank     = "b"
	KeyFreeze    = "f"
	KeyNormal    = "n"
	KeyReload    = "r"
	KeyQuit      = "q"
	KeyEsc       = "esc"
	KeyCtrlC     = "ctrl+c"
)
