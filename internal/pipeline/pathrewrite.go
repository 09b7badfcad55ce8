package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// localRefAttrs lists the attributes that may point at files next to the
// resume source, keyed by element.
var localRefAttrs = map[atom.Atom]string{
	atom.Img: "src",
	atom.A:   "href",
}

// ResolveLocalAssets rewrites relative img[src] and a[href] references in a
// rendered resume fragment to absolute file:// URLs under baseDir, so a photo
// next to the Markdown file still loads once the document is printed from a
// temporary location. URLs, anchors, absolute paths and references escaping
// baseDir are left alone. An empty baseDir returns the fragment unchanged.
func ResolveLocalAssets(fragment, baseDir string) (string, error) {
	if baseDir == "" {
		return fragment, nil
	}

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.Grow(len(fragment))
	for _, n := range nodes {
		rewriteNode(n, absBase)
		if err := html.Render(&sb, n); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

func rewriteNode(n *html.Node, baseDir string) {
	if n.Type == html.ElementNode {
		if key, ok := localRefAttrs[n.DataAtom]; ok {
			rewriteAttr(n, key, baseDir)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteNode(c, baseDir)
	}
}

func rewriteAttr(n *html.Node, key, baseDir string) {
	for i, attr := range n.Attr {
		if attr.Key != key {
			continue
		}
		ref, ok := localRef(attr.Val)
		if !ok {
			continue
		}
		absPath := filepath.Join(baseDir, filepath.FromSlash(ref.Path))
		if !isPathUnderDir(absPath, baseDir) {
			continue
		}
		fileURL := pathToFileURL(absPath)
		if ref.RawQuery != "" {
			fileURL += "?" + ref.RawQuery
		}
		if ref.Fragment != "" {
			fileURL += "#" + ref.EscapedFragment()
		}
		n.Attr[i].Val = fileURL
	}
}

// localRef parses ref and reports whether it names a file relative to the
// source: no scheme, no host and a relative, non-empty path.
func localRef(ref string) (*url.URL, bool) {
	u, err := url.Parse(ref)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Opaque != "" {
		return nil, false
	}
	if u.Path == "" || strings.HasPrefix(u.Path, "/") || filepath.IsAbs(u.Path) {
		return nil, false
	}
	return u, true
}

// isRelativePath reports whether ref is a local path relative to the source.
func isRelativePath(ref string) bool {
	_, ok := localRef(ref)
	return ok
}

// isPathUnderDir checks if absPath is under dir (prevents path traversal).
func isPathUnderDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(dir)

	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(cleanPath+string(filepath.Separator), cleanDir)
}

// pathToFileURL converts an absolute path to a file:// URL.
func pathToFileURL(absPath string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(absPath),
	}
	return u.String()
}
