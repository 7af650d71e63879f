package webforms

import (
	"bytes"
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
)

// DefaultCharset is the encoding Studomatic pages are served in.
const DefaultCharset = "windows-1250"

// LookupCharset resolves a charset label such as "windows-1250" or "cp1250".
// An empty label resolves to DefaultCharset.
func LookupCharset(label string) (encoding.Encoding, error) {
	if label == "" {
		label = DefaultCharset
	}
	enc, _ := charset.Lookup(label)
	if enc == nil {
		return nil, fmt.Errorf("unknown charset %q", label)
	}
	return enc, nil
}

// Parse decodes body with enc and parses it as HTML. A nil enc parses the raw bytes.
func Parse(body []byte, enc encoding.Encoding) (*goquery.Document, error) {
	var r io.Reader = bytes.NewReader(body)
	if enc != nil {
		r = enc.NewDecoder().Reader(r)
	}

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}
