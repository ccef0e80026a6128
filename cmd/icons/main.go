// Command icons is the icon-provider CLI: it rebuilds the icon
// catalog from configured upstream sources, prints resolved icons in
// one of a few output formats, and offers an interactive picker.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"

	"github.com/aslpavel/icon-provider/catalog"
	"github.com/aslpavel/icon-provider/fetch"
	"github.com/aslpavel/icon-provider/picker"
)

const manifestName = "descriptions.json"

func main() {
	root := flag.String("r", ".", "root directory holding the manifest, font bundles and catalog db")
	flag.StringVar(root, "root", ".", "root directory holding the manifest, font bundles and catalog db")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	var err error
	switch args[0] {
	case "update":
		err = runUpdate(*root, args[1:])
	case "get":
		err = runGet(*root, args[1:])
	case "select":
		err = runSelect(*root, args[1:])
	default:
		fmt.Fprintf(os.Stderr, "icons: unknown subcommand %q\n", args[0])
		os.Exit(2)
	}

	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(exitCode(err))
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: icons [-r ROOT] {update|get|select} ...")
}

// unknownFormatError means the -f flag named a format this binary
// does not implement; spec.md §6 maps that to exit code 1.
type unknownFormatError struct{ format string }

func (e *unknownFormatError) Error() string {
	return fmt.Sprintf("icons: unknown format %q", e.format)
}

// argError wraps a flag-parsing failure; spec.md §6 maps that to exit
// code 2.
type argError struct{ err error }

func (e *argError) Error() string { return e.err.Error() }
func (e *argError) Unwrap() error { return e.err }

func exitCode(err error) int {
	if _, ok := err.(*argError); ok {
		return 2
	}
	return 1
}

func manifestPath(root string) string {
	return filepath.Join(root, manifestName)
}

func dbPath(root string) string {
	return filepath.Join(root, "icons.sqlite")
}

// runUpdate rebuilds the catalog. Without --db-only it first re-fetches
// every configured font, rewriting per-font bundles only where the
// content hash differs and then rewriting the manifest, per spec.md §6.
func runUpdate(root string, args []string) error {
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	dbOnly := fs.Bool("db-only", false, "skip re-fetching fonts, only rebuild the sqlite catalog")
	if err := fs.Parse(args); err != nil {
		return &argError{err: err}
	}

	if !*dbOnly {
		if err := refetchFonts(root); err != nil {
			return err
		}
	}

	store, err := catalog.Open(dbPath(root), manifestPath(root))
	if err != nil {
		return err
	}
	defer store.Close()

	logrus.Info("rebuilding icon catalog")
	if err := store.Update(); err != nil {
		return err
	}
	pterm.Success.Println("catalog up to date")
	return nil
}

// refetchFonts runs every registered fetcher in sorted-name order,
// rewrites the font bundle of each one whose content hash differs from
// what's on disk, then rewrites the manifest with an entry for every
// source that fetched successfully.
func refetchFonts(root string) error {
	fontsDir := filepath.Join(root, "fonts")
	if err := os.MkdirAll(fontsDir, 0o755); err != nil {
		return err
	}

	names := make([]string, 0, len(fetch.Fetchers))
	for name := range fetch.Fetchers {
		names = append(names, name)
	}
	sort.Strings(names)

	var entries []catalog.ManifestEntry
	for _, name := range names {
		fetcher := fetch.Fetchers[name]
		logrus.WithField("source", name).Info("fetching")
		data, err := fetcher()
		if err != nil {
			logrus.WithField("source", name).WithError(err).Error("fetch failed, skipping")
			continue
		}

		existing, err := fetch.Load(name, fontsDir)
		if err != nil {
			return err
		}
		if existing == nil || existing.Hash() != data.Hash() {
			if err := data.Save(fontsDir); err != nil {
				return err
			}
			logrus.WithField("source", name).Info("font bundle updated")
		}

		entries = append(entries, catalog.ManifestEntry{
			Name:         name,
			Family:       data.Family,
			MetadataPath: filepath.Join("fonts", name+".json"),
			FontPath:     filepath.Join("fonts", name+".ttf"),
		})
	}

	manifestBytes, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(manifestPath(root), manifestBytes, 0o644)
}

// runGet resolves and prints each named icon in the requested format.
// Unknown names are reported to stderr and skipped without failing the
// command, per spec.md §6.
func runGet(root string, args []string) error {
	fs := flag.NewFlagSet("get", flag.ContinueOnError)
	format := fs.String("f", "svg-path", "output format: svg-path, svg, json")
	if err := fs.Parse(args); err != nil {
		return &argError{err: err}
	}
	names := fs.Args()

	render, err := renderer(*format)
	if err != nil {
		return err
	}

	store, err := catalog.Open(dbPath(root), manifestPath(root))
	if err != nil {
		return err
	}
	defer store.Close()

	for _, name := range names {
		icon, err := store.GetIcon(name)
		if err != nil {
			return err
		}
		if icon == nil {
			fmt.Fprintf(os.Stderr, "icons: unknown icon %q\n", name)
			continue
		}
		fmt.Println(render(*icon))
	}
	return nil
}

// runSelect delegates to the interactive picker.
func runSelect(root string, args []string) error {
	fs := flag.NewFlagSet("select", flag.ContinueOnError)
	format := fs.String("f", "svg-path", "output format: svg-path, svg, json")
	if err := fs.Parse(args); err != nil {
		return &argError{err: err}
	}
	render, err := renderer(*format)
	if err != nil {
		return err
	}

	store, err := catalog.Open(dbPath(root), manifestPath(root))
	if err != nil {
		return err
	}
	defer store.Close()

	icons, err := store.GetIcons()
	if err != nil {
		return err
	}
	selected, err := picker.Pick(icons)
	if err != nil {
		return err
	}
	for _, icon := range selected {
		fmt.Println(render(icon))
	}
	return nil
}

func renderer(format string) (func(catalog.Icon) string, error) {
	switch format {
	case "svg-path":
		return func(icon catalog.Icon) string { return icon.SVG }, nil
	case "svg":
		return renderSVG, nil
	case "json":
		return renderJSON, nil
	default:
		return nil, &unknownFormatError{format: format}
	}
}

const svgTemplate = `<svg xmlns="http://www.w3.org/2000/svg" id="%s" width="100" height="100" viewBox="0 0 100 100"><path d="%s"/></svg>`

func renderSVG(icon catalog.Icon) string {
	return fmt.Sprintf(svgTemplate, icon.Name, icon.SVG)
}

func renderJSON(icon catalog.Icon) string {
	out, err := json.Marshal(struct {
		Name      string `json:"name"`
		Font      string `json:"font"`
		Family    string `json:"family"`
		Codepoint rune   `json:"codepoint"`
		SVG       string `json:"svg"`
	}{
		Name:      icon.Name,
		Font:      icon.Font.Name,
		Family:    icon.Font.Family,
		Codepoint: icon.Codepoint,
		SVG:       icon.SVG,
	})
	if err != nil {
		return ""
	}
	return string(out)
}
