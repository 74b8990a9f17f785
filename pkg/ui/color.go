package ui

import "strconv"

// Color represents a text color.
type Color interface {
	fgSGR() string
	bgSGR() string
}

// The 8 classic ANSI colors.
var (
	Black   Color = ansiColor(0)
	Red     Color = ansiColor(1)
	Green   Color = ansiColor(2)
	Yellow  Color = ansiColor(3)
	Blue    Color = ansiColor(4)
	Magenta Color = ansiColor(5)
	Cyan    Color = ansiColor(6)
	White   Color = ansiColor(7)
)

type ansiColor uint8

func (c ansiColor) fgSGR() string { return strconv.Itoa(int(c) + 30) }
func (c ansiColor) bgSGR() string { return strconv.Itoa(int(c) + 40) }
