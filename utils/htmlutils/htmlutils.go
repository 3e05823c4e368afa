// Copyright 2025 The Saaristo Authors
// SPDX-License-Identifier: Apache-2.0

// Package htmlutils provides utility functions for working with HTML.
package htmlutils

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// Node2string appends the whitespace-normalized text content of n to sb.
// Script and style contents are skipped.
func Node2string(n *html.Node, sb *strings.Builder) (err error) {
	switch {
	case n.Type == html.TextNode:
		tmp := strings.Join(strings.Fields(n.Data), " ")

		// a REPLACEMENT CHARACTER (U+FFFD) means we are reading the
		// document with the wrong charset
		if strings.ContainsRune(tmp, utf8.RuneError) {
			return fmt.Errorf("charset missmatch found: `%s'", tmp)
		}

		if len(tmp) > 0 {
			if sb.Len() != 0 {
				sb.WriteByte(' ')
			}

			sb.WriteString(tmp)
		}
	case n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style"):
	default:
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			err = Node2string(child, sb)
			if err != nil {
				break
			}
		}
	}

	return err
}

// Text returns the text content of n.
func Text(n *html.Node) (string, error) {
	var sb strings.Builder
	err := Node2string(n, &sb)

	return sb.String(), err
}

// RawText returns the unparsed content of a raw text element such as script.
func RawText(n *html.Node) string {
	var sb strings.Builder

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.TextNode {
			sb.WriteString(child.Data)
		}
	}

	return sb.String()
}

// Validates that response seems to be an HTML response.
func hasHTMLContentType(media string) bool {
	const expectedMedia = "text/html"

	return strings.EqualFold(
		expectedMedia,
		media[0:min(len(media), len(expectedMedia))],
	)
}

// AsReader converts an HTTP response body to an io.Reader with the correct charset.
func AsReader(resp *http.Response) (io.Reader, error) {
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	media := resp.Header.Get("Content-Type")
	if !hasHTMLContentType(media) {
		return nil, fmt.Errorf("media type is %s", media)
	}

	rr, err := charset.NewReader(resp.Body, media)
	if err != nil {
		return nil, err
	}

	return rr, nil
}

// AsNode parses an io.Reader as an HTML node.
func AsNode(r io.Reader) (*html.Node, error) {
	n, err := html.Parse(r)
	if nil != err {
		return nil, fmt.Errorf("parsing body as HTML: %w", err)
	}

	return n, nil
}

// Attr returns the value of the named attribute.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}

	return "", false
}

// FindElement returns the first element, in document order, with the given
// tag. When id is not empty the element must also carry that id.
func FindElement(n *html.Node, tag, id string) *html.Node {
	if n.Type == html.ElementNode && strings.EqualFold(n.Data, tag) {
		if id == "" {
			return n
		}

		if v, ok := Attr(n, "id"); ok && v == id {
			return n
		}
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := FindElement(child, tag, id); found != nil {
			return found
		}
	}

	return nil
}

// FindAll returns every element with the given tag in document order.
func FindAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && strings.EqualFold(n.Data, tag) {
			out = append(out, n)
		}

		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}

	walk(n)

	return out
}
