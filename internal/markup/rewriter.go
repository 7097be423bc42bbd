// Package markup rewrites embedded media references inside card HTML,
// grounded on the deck format's own HTMLConverter: <img src="..."> and the
// audio anchor pattern <span class="audio"><a href="..."> are extracted to
// stored resources on import and restored to host-relative paths on export.
package markup

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/mlapinski/openmemo/internal/domain"
)

const resourceRefPrefix = "resource:"

// ResourceSaver persists a resource extracted during import and returns the
// ID it was stored under.
type ResourceSaver interface {
	SaveResource(res domain.Resource) (id string, err error)
}

// ResourceLoader resolves a stored resource ID back to a resource, for
// export rewriting.
type ResourceLoader interface {
	LoadResource(id string) (domain.Resource, error)
}

// Rewriter rewrites embedded media references in card HTML fragments.
type Rewriter struct {
	baseDir string
}

// NewRewriter creates a Rewriter that resolves relative media paths
// against baseDir during import.
func NewRewriter(baseDir string) *Rewriter {
	return &Rewriter{baseDir: baseDir}
}

// RewriteForImport parses fragment, extracts every embedded image and audio
// reference via ResourceFromFile, persists it through saver, and replaces
// the reference with a stored-resource URI. Returns the rewritten fragment.
func (rw *Rewriter) RewriteForImport(fragment string, saver ResourceSaver) (string, error) {
	nodes, err := parseFragment(fragment)
	if err != nil {
		return "", err
	}

	for _, n := range nodes {
		err := walk(n, func(node *html.Node) error {
			switch {
			case node.DataAtom == atom.Img:
				return rw.rewriteImportAttr(node, "src", saver)
			case isAudioAnchor(node):
				return rw.rewriteImportAttr(node, "href", saver)
			}
			return nil
		})
		if err != nil {
			return "", err
		}
	}

	return renderFragment(nodes)
}

// RewriteForExport parses fragment, resolves every stored-resource
// reference via loader, and replaces it with the resource's filename. Only
// the reference is rewritten; the resource's bytes are not written to disk.
func (rw *Rewriter) RewriteForExport(fragment string, loader ResourceLoader) (string, error) {
	nodes, err := parseFragment(fragment)
	if err != nil {
		return "", err
	}

	for _, n := range nodes {
		err := walk(n, func(node *html.Node) error {
			switch {
			case node.DataAtom == atom.Img:
				return rw.rewriteExportAttr(node, "src", loader)
			case isAudioAnchor(node):
				return rw.rewriteExportAttr(node, "href", loader)
			}
			return nil
		})
		if err != nil {
			return "", err
		}
	}

	return renderFragment(nodes)
}

func (rw *Rewriter) rewriteImportAttr(node *html.Node, attr string, saver ResourceSaver) error {
	path, ok := getAttr(node, attr)
	if !ok || path == "" || strings.HasPrefix(path, resourceRefPrefix) {
		return nil
	}

	res, err := ResourceFromFile(rw.baseDir, path)
	if err != nil {
		return err
	}
	id, err := saver.SaveResource(res)
	if err != nil {
		return fmt.Errorf("saving resource %q: %w", path, err)
	}
	setAttr(node, attr, resourceRefPrefix+id)
	return nil
}

func (rw *Rewriter) rewriteExportAttr(node *html.Node, attr string, loader ResourceLoader) error {
	ref, ok := getAttr(node, attr)
	if !ok || !strings.HasPrefix(ref, resourceRefPrefix) {
		return nil
	}

	id := strings.TrimPrefix(ref, resourceRefPrefix)
	res, err := loader.LoadResource(id)
	if err != nil {
		return fmt.Errorf("loading resource %q: %w", id, err)
	}
	setAttr(node, attr, res.Filename)
	return nil
}

func isAudioAnchor(node *html.Node) bool {
	if node.DataAtom != atom.A || node.Parent == nil {
		return false
	}
	parent := node.Parent
	if parent.DataAtom != atom.Span {
		return false
	}
	class, _ := getAttr(parent, "class")
	for _, c := range strings.Fields(class) {
		if c == "audio" {
			return true
		}
	}
	return false
}

func getAttr(node *html.Node, key string) (string, bool) {
	for _, a := range node.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(node *html.Node, key, val string) {
	for i, a := range node.Attr {
		if a.Key == key {
			node.Attr[i].Val = val
			return
		}
	}
	node.Attr = append(node.Attr, html.Attribute{Key: key, Val: val})
}

// walk applies fn to node and every descendant, depth-first, stopping at
// the first error.
func walk(node *html.Node, fn func(*html.Node) error) error {
	if node.Type == html.ElementNode {
		if err := fn(node); err != nil {
			return err
		}
	}
	for c := node.FirstChild; c != nil; c = c.NextSibling {
		if err := walk(c, fn); err != nil {
			return err
		}
	}
	return nil
}

// fragmentContext is the synthetic <body> context every card fragment is
// parsed and rendered relative to.
func fragmentContext() *html.Node {
	return &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
}

func parseFragment(fragment string) ([]*html.Node, error) {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), fragmentContext())
	if err != nil {
		return nil, fmt.Errorf("parsing card html: %w", err)
	}
	return nodes, nil
}

func renderFragment(nodes []*html.Node) (string, error) {
	var buf bytes.Buffer
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", fmt.Errorf("rendering card html: %w", err)
		}
	}
	return buf.String(), nil
}
