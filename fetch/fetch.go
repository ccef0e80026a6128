// Package fetch downloads upstream icon-font assets and their
// codepoint metadata, producing the (name, codepoint_map, font_bytes)
// bundles the catalog pipeline consumes. Individual sources are
// specified only at the interface: spec.md treats them as outside the
// core font parser.
package fetch

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/aslpavel/icon-provider/sfnt"
)

// FontData is a fetched icon-font bundle: a name, the resolved
// icon-name -> codepoint map (pruned to glyphs the font actually
// carries), and the raw font bytes.
type FontData struct {
	Name            string
	Family          string
	IconToCodepoint map[string]rune
	FontBytes       []byte
}

// NewFontData parses fontBytes and keeps only the entries of
// iconToCodepoint whose codepoint resolves to a non-empty glyph,
// mirroring the original fetcher's glyph-presence filter.
func NewFontData(name string, iconToCodepoint map[string]rune, fontBytes []byte) (*FontData, error) {
	font, err := sfnt.New(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("fetch: parse font for %s: %w", name, err)
	}
	kept := make(map[string]rune, len(iconToCodepoint))
	for icon, cp := range iconToCodepoint {
		glyph, err := font.GlyphByCodepoint(cp)
		if err != nil {
			return nil, err
		}
		if glyph == nil || glyph.ContoursCount() == 0 {
			continue
		}
		kept[icon] = cp
	}
	return &FontData{
		Name:            name,
		Family:          font.Name().Family,
		IconToCodepoint: kept,
		FontBytes:       fontBytes,
	}, nil
}

// Hash returns sha256(name || Σ(icon_name || decimal(codepoint)) ||
// font_bytes) over names sorted lexicographically, so the hash is
// reproducible across runs despite Go's randomized map iteration.
func (d *FontData) Hash() string {
	h := sha256.New()
	h.Write([]byte(d.Name))
	names := make([]string, 0, len(d.IconToCodepoint))
	for name := range d.IconToCodepoint {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		h.Write([]byte(name))
		h.Write([]byte(strconv.Itoa(int(d.IconToCodepoint[name]))))
	}
	h.Write(d.FontBytes)
	return hex.EncodeToString(h.Sum(nil))
}

// metadataFile is the on-disk shape of "<root>/<name>.json".
type metadataFile struct {
	Family string         `json:"family"`
	Names  map[string]int `json:"names"`
}

// Save writes "<root>/<name>.json" and "<root>/<name>.ttf".
func (d *FontData) Save(root string) error {
	names := make(map[string]int, len(d.IconToCodepoint))
	for name, cp := range d.IconToCodepoint {
		names[name] = int(cp)
	}
	metadataBytes, err := json.MarshalIndent(metadataFile{Family: d.Family, Names: names}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(root, d.Name+".json"), metadataBytes, 0o644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(root, d.Name+".ttf"), d.FontBytes, 0o644)
}

// Load reads back a previously Save'd bundle, or returns (nil, nil) if
// either file is absent.
func Load(name, root string) (*FontData, error) {
	metadataPath := filepath.Join(root, name+".json")
	fontPath := filepath.Join(root, name+".ttf")

	metadataBytes, err := os.ReadFile(metadataPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	fontBytes, err := os.ReadFile(fontPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var meta metadataFile
	if err := json.Unmarshal(metadataBytes, &meta); err != nil {
		return nil, err
	}
	names := make(map[string]rune, len(meta.Names))
	for n, cp := range meta.Names {
		names[n] = rune(cp)
	}
	return NewFontData(name, names, fontBytes)
}

// httpGet fetches url and returns its raw body.
func httpGet(url string) ([]byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch: GET %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch: GET %s: status %s", url, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// httpGetJSON fetches url and decodes its body as JSON into v.
func httpGetJSON(url string, v interface{}) error {
	body, err := httpGet(url)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}

// Fetcher produces one named font bundle from its upstream source.
type Fetcher func() (*FontData, error)

// Fetchers is the registry of available source-specific fetchers,
// keyed by the bundle name each fetcher produces.
var Fetchers = map[string]Fetcher{
	"material": FetchMaterial,
	"phosphor": FetchPhosphor,
	"awesome":  FetchAwesome,
	"codicon":  FetchCodicons,
}
