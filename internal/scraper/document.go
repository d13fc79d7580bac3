package scraper

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// document is a typed query layer over a parsed HTML page. Lookups that find
// nothing return an error instead of an empty selection.
type document struct {
	root *goquery.Document
}

func newDocument(r io.Reader) (*document, error) {
	root, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return &document{root: root}, nil
}

// one returns the first element matching selector
func (d *document) one(selector string) (*goquery.Selection, error) {
	return first(d.root.Selection, selector)
}

// text returns the trimmed text of the first element matching selector
func (d *document) text(selector string) (string, error) {
	sel, err := d.one(selector)
	if err != nil {
		return "", err
	}
	return cellText(sel), nil
}

// first returns the first descendant of sel matching selector
func first(sel *goquery.Selection, selector string) (*goquery.Selection, error) {
	found := sel.Find(selector).First()
	if found.Length() == 0 {
		return nil, fmt.Errorf("no element matches %q", selector)
	}
	return found, nil
}

// attr returns the value of an attribute on sel
func attr(sel *goquery.Selection, name string) (string, error) {
	value, ok := sel.Attr(name)
	if !ok {
		return "", fmt.Errorf("element <%s> has no %q attribute", goquery.NodeName(sel), name)
	}
	return value, nil
}

// texts returns the trimmed text of every element matching selector under sel
func texts(sel *goquery.Selection, selector string) []string {
	return sel.Find(selector).Map(func(_ int, s *goquery.Selection) string {
		return cellText(s)
	})
}

func cellText(sel *goquery.Selection) string {
	return strings.TrimSpace(sel.Text())
}
