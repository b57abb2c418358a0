// Package ansi holds the SGR codes used by the plain-text printer.
package ansi

import "regexp"

const (
	Reset   = "\033[0m"
	Bold    = "\033[1m"
	Dim     = "\033[2m"
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
)

var sgr = regexp.MustCompile("\033\\[[0-9;]*m")

// Paint wraps s in the given codes and a trailing Reset.
func Paint(s string, codes ...string) string {
	if len(codes) == 0 {
		return s
	}
	out := ""
	for _, c := range codes {
		out += c
	}
	return out + s + Reset
}

// Strip removes SGR sequences, leaving the visible text.
func Strip(s string) string {
	return sgr.ReplaceAllString(s, "")
}
