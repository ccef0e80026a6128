package fetch

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"regexp"
	"strconv"
)

// FetchMaterial fetches Material Design Icons: a JSON array of
// {name, codepoint} objects plus the webfont TTF.
func FetchMaterial() (*FontData, error) {
	var metadata []struct {
		Name      string `json:"name"`
		Codepoint string `json:"codepoint"`
	}
	if err := httpGetJSON(
		"https://raw.githubusercontent.com/Templarian/MaterialDesign/master/meta.json",
		&metadata,
	); err != nil {
		return nil, err
	}
	fontBytes, err := httpGet(
		"https://github.com/Templarian/MaterialDesign-Webfont/raw/master/fonts/materialdesignicons-webfont.ttf",
	)
	if err != nil {
		return nil, err
	}

	iconToCodepoint := make(map[string]rune, len(metadata))
	for _, m := range metadata {
		cp, err := strconv.ParseInt(m.Codepoint, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("fetch: material codepoint %q: %w", m.Codepoint, err)
		}
		iconToCodepoint[m.Name] = rune(cp)
	}
	return NewFontData("material", iconToCodepoint, fontBytes)
}

// phosphorPattern matches Phosphor's style.css entries, whose content
// declaration sits on the line after the selector, e.g.
// ".ph.ph-gist-new:before {" followed by `  content: "\ea60"`
var phosphorPattern = regexp.MustCompile(`(?m)^\.ph\.ph-([^:]*):.*\n\s+content:\s+"\\(.*)"`)

// FetchPhosphor fetches Phosphor icons from their regular-weight CSS
// and TTF.
func FetchPhosphor() (*FontData, error) {
	cssBytes, err := httpGet("https://github.com/phosphor-icons/web/raw/master/src/regular/style.css")
	if err != nil {
		return nil, err
	}
	fontBytes, err := httpGet("https://github.com/phosphor-icons/web/raw/master/src/regular/Phosphor.ttf")
	if err != nil {
		return nil, err
	}
	iconToCodepoint, err := parseCSSCodepoints(phosphorPattern, string(cssBytes))
	if err != nil {
		return nil, err
	}
	return NewFontData("phosphor", iconToCodepoint, fontBytes)
}

// awesomePattern matches Font Awesome's minified all.css entries, e.g.
// ".fa-fill-drip:before{content:"\f576"}"
var awesomePattern = regexp.MustCompile(`(?m)\.fa-([^:{}.]+):before\{\s*content:\s*"\\([^"]+)"[^}]*\}`)

const awesomeVersion = "6.5.1"

// FetchAwesome fetches Font Awesome's regular-weight webfont and CSS.
func FetchAwesome() (*FontData, error) {
	fontBytes, err := httpGet(fmt.Sprintf(
		"https://site-assets.fontawesome.com/releases/v%s/webfonts/fa-regular-400.ttf", awesomeVersion,
	))
	if err != nil {
		return nil, err
	}
	cssBytes, err := httpGet(fmt.Sprintf(
		"https://site-assets.fontawesome.com/releases/v%s/css/all.css", awesomeVersion,
	))
	if err != nil {
		return nil, err
	}
	iconToCodepoint, err := parseCSSCodepoints(awesomePattern, string(cssBytes))
	if err != nil {
		return nil, err
	}
	return NewFontData("awesome", iconToCodepoint, fontBytes)
}

// codiconPattern matches codicon.css entries, e.g.
// ".codicon-gist-new:before { content: "\ea60" }"
var codiconPattern = regexp.MustCompile(`(?m)^\.codicon-([^:]+):.*\{\s+content:\s+"\\(.*)"`)

// FetchCodicons fetches VS Code's codicon package from npm.
func FetchCodicons() (*FontData, error) {
	files, err := npmGet("@vscode/codicons", []string{"dist/codicon.css", "dist/codicon.ttf"})
	if err != nil {
		return nil, err
	}
	iconToCodepoint, err := parseCSSCodepoints(codiconPattern, string(files[0]))
	if err != nil {
		return nil, err
	}
	return NewFontData("codicon", iconToCodepoint, files[1])
}

// parseCSSCodepoints extracts icon_name -> codepoint pairs from a CSS
// stylesheet using a source-specific pattern; group 1 is the name,
// group 2 the hex codepoint. Each source keeps its own compiled
// pattern rather than a single generalized one, since the upstream
// class-naming conventions differ slightly between sources.
func parseCSSCodepoints(pattern *regexp.Regexp, css string) (map[string]rune, error) {
	matches := pattern.FindAllStringSubmatch(css, -1)
	out := make(map[string]rune, len(matches))
	for _, m := range matches {
		cp, err := strconv.ParseInt(m[2], 16, 32)
		if err != nil {
			return nil, fmt.Errorf("fetch: codepoint %q: %w", m[2], err)
		}
		out[m[1]] = rune(cp)
	}
	return out, nil
}

// npmGet fetches the latest published tarball of an npm package and
// extracts the given files (relative to the tarball's "package/"
// root).
func npmGet(name string, files []string) ([][]byte, error) {
	var desc struct {
		Dist struct {
			Tarball string `json:"tarball"`
		} `json:"dist"`
	}
	if err := httpGetJSON(fmt.Sprintf("https://registry.npmjs.org/%s/latest", name), &desc); err != nil {
		return nil, err
	}
	tarballBytes, err := httpGet(desc.Dist.Tarball)
	if err != nil {
		return nil, err
	}

	gz, err := gzip.NewReader(bytes.NewReader(tarballBytes))
	if err != nil {
		return nil, err
	}
	defer gz.Close()

	want := make(map[string][]byte, len(files))
	for _, f := range files {
		want["package/"+f] = nil
	}

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if _, ok := want[hdr.Name]; !ok {
			continue
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			return nil, err
		}
		want[hdr.Name] = data
	}

	result := make([][]byte, len(files))
	for i, f := range files {
		data := want["package/"+f]
		if data == nil {
			return nil, fmt.Errorf("fetch: npm %s: file not found %s", name, f)
		}
		result[i] = data
	}
	return result, nil
}
