package cli

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
)

const (
	colorReset = "\033[0m"
	colorGray  = "\033[90m"
)

func gray(text string) string {
	if !useColor() {
		return text
	}
	return colorGray + text + colorReset
}

func useColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	lines := []string{}
	line := ""
	lineWidth := 0
	for _, word := range words {
		wordWidth := runewidth.StringWidth(word)
		if line == "" {
			line = word
			lineWidth = wordWidth
			continue
		}
		if lineWidth+1+wordWidth > width {
			lines = append(lines, line)
			line = word
			lineWidth = wordWidth
			continue
		}
		line += " " + word
		lineWidth += 1 + wordWidth
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
