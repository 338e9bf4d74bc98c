// Package aove reads today's olive-oil prices from the public poolred page
// of aove.net.
package aove

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/etnz/oliveprice"
	"github.com/shopspring/decimal"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoPrices reports a page where no grade price could be found.
var ErrNoPrices = errors.New("no prices on the page")

// Fetcher downloads and parses the prices page.
type Fetcher struct {
	Client     *http.Client // http.DefaultClient if nil
	URL        string
	Convention oliveprice.Convention
}

// Fetch downloads the page and returns the prices as a snapshot of day.
func (f *Fetcher) Fetch(ctx context.Context, day oliveprice.Date) (oliveprice.Snapshot, []oliveprice.Warning, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return oliveprice.Snapshot{}, nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return oliveprice.Snapshot{}, nil, fmt.Errorf("fetch prices page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return oliveprice.Snapshot{}, nil, fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	log.Printf("fetch-prices url=%q status=%q", f.URL, resp.Status)
	return Parse(resp.Body, day, f.Convention)
}

// Parse extracts grade prices from the page HTML.
//
// Prices are read from table rows, list items, paragraphs, headings and
// <strong> elements whose text names a grade and holds a single "€" amount.
// The first price of a grade in document order wins, later ones are
// returned as warnings.
func Parse(r io.Reader, day oliveprice.Date, conv oliveprice.Convention) (oliveprice.Snapshot, []oliveprice.Warning, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return oliveprice.Snapshot{}, nil, fmt.Errorf("parse prices page: %w", err)
	}

	s := oliveprice.Snapshot{Date: day, Prices: make(map[oliveprice.Grade]decimal.Decimal)}
	var warnings []oliveprice.Warning
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && priceHolder(n.DataAtom) {
			txt := text(n)
			// Several amounts: the children hold the statements.
			if strings.Count(txt, "€") == 1 {
				if g, err := oliveprice.Classify(txt); err == nil {
					p, err := oliveprice.NormalizePrice(txt, conv)
					switch {
					case err != nil:
						warnings = append(warnings, oliveprice.Warning{Text: txt, Err: err})
					case hasPrice(s, g):
						warnings = append(warnings, oliveprice.Warning{Text: txt, Err: fmt.Errorf("%s already priced", g)})
					default:
						s.Prices[g] = p
					}
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if len(s.Prices) == 0 {
		return s, warnings, ErrNoPrices
	}
	return s, warnings, nil
}

func hasPrice(s oliveprice.Snapshot, g oliveprice.Grade) bool {
	_, ok := s.Prices[g]
	return ok
}

// priceHolder lists the elements whose whole text is one price statement.
func priceHolder(a atom.Atom) bool {
	switch a {
	case atom.Tr, atom.Li, atom.P, atom.Strong, atom.H2, atom.H3, atom.H4:
		return true
	}
	return false
}

// text returns the text content of n with white space collapsed.
func text(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		if n.Type == html.ElementNode && (n.DataAtom == atom.Script || n.DataAtom == atom.Style) {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}
