package app

// Key binding constants used in handleKey.
const (
	KeyQuit      = "q"
	KeyQuitUpper = "Q"
	KeyCtrlC     = "ctrl+c"
	KeySpace     = " "
	KeyRight     = "right"
	KeyLeft      = "left"
	KeyL         = "l"
	KeyH         = "h"
	KeyN         = "n"
	KeyP         = "p"
	KeyFirst     = "g"
	KeyLast      = "G"
	KeyHome      = "home"
	KeyEnd       = "end"
)
