// Package picker implements the "select" subcommand's interactive
// candidate picker: a readline-driven prompt that filters a list of
// icons by case-insensitive substring each time a line is entered,
// with Tab completion of icon names. This is a
// thin, real implementation of the "delegates to the interactive
// picker (external)" contract — it deliberately does not reproduce
// the original's glyph-preview rendering, since GUI rendering is out
// of scope here.
package picker

import (
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/aslpavel/icon-provider/catalog"
)

// Pick prompts the user to filter icons by substring and returns the
// icons whose name matched the last filter text entered before Enter
// on an empty line, or before EOF (Ctrl-D).
func Pick(icons []catalog.Icon) ([]catalog.Icon, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "icon> ",
		AutoComplete:    newCompleter(icons),
		InterruptPrompt: "^C",
		EOFPrompt:       "^D",
	})
	if err != nil {
		return nil, err
	}
	defer rl.Close()

	pterm.Info.Println("type to filter, Enter to select, Ctrl-D to quit")

	filter := ""
	matches := matchIcons(icons, filter)
	for {
		line, err := rl.Readline()
		if err != nil {
			return matches, nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return matches, nil
		}
		filter = line
		matches = matchIcons(icons, filter)
		pterm.Info.Printfln("%d match(es)", len(matches))
		for _, icon := range matches {
			pterm.Println(icon.Name)
		}
	}
}

func matchIcons(icons []catalog.Icon, filter string) []catalog.Icon {
	if filter == "" {
		return icons
	}
	filter = strings.ToLower(filter)
	var out []catalog.Icon
	for _, icon := range icons {
		if strings.Contains(strings.ToLower(icon.Name), filter) {
			out = append(out, icon)
		}
	}
	return out
}

// completer implements readline.AutoCompleter over icon names,
// offering substring completions of whatever has been typed so far.
type completer struct {
	names []string
}

func newCompleter(icons []catalog.Icon) *completer {
	names := make([]string, len(icons))
	for i, icon := range icons {
		names[i] = icon.Name
	}
	return &completer{names: names}
}

// Do implements readline.AutoCompleter: it returns the suffixes of
// every name containing the typed prefix (read right-to-left per
// readline's convention) as completion candidates.
func (c *completer) Do(line []rune, pos int) (newLine [][]rune, length int) {
	typed := strings.ToLower(string(line[:pos]))
	if typed == "" {
		return nil, pos
	}
	var candidates [][]rune
	for _, name := range c.names {
		runes := []rune(name)
		if !strings.Contains(strings.ToLower(name), typed) || pos > len(runes) {
			continue
		}
		candidates = append(candidates, runes[pos:])
	}
	return candidates, pos
}
