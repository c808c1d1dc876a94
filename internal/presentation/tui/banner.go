package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the temple pediment before a consultation.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Laurel-to-gold gradient.
	s1 := termenv.String("   ___                 _      ").Foreground(p.Color("#84cc16"))
	s2 := termenv.String("  / _ \\ _ __ __ _  ___| | ___ ").Foreground(p.Color("#a3b81a"))
	s3 := termenv.String(" | | | | '__/ _` |/ __| |/ _ \\").Foreground(p.Color("#ca9d1d"))
	s4 := termenv.String(" | |_| | | | (_| | (__| |  __/").Foreground(p.Color("#e0b31f"))
	s5 := termenv.String("  \\___/|_|  \\__,_|\\___|_|\\___|").Foreground(p.Color("#f5c518"))
	s6 := termenv.String("        of  D e l p h i       ").Foreground(p.Color("#f5c518")).Italic()

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println(s6)
	fmt.Println()
}
