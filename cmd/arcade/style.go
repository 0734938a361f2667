package main

import "github.com/gookit/color"

// Plain-terminal output styles.
var (
	styleTitle  = color.Style{color.FgYellow, color.OpBold}
	styleHeader = color.Style{color.FgCyan}
	styleSubtle = color.Style{color.FgGray}
	styleOK     = color.Style{color.FgGreen, color.OpBold}
	styleWarn   = color.Style{color.FgYellow}
	styleError  = color.Style{color.FgRed, color.OpBold}
)
