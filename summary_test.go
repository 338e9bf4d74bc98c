package oliveprice

import (
	"bytes"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		price string
		want  string
	}{
		{"3.6", "3,600 €/kg"},
		{"2.345", "2,345 €/kg"},
		{"0.001", "0,001 €/kg"},
		{"12.3456", "12,346 €/kg"},
	}
	for _, tt := range tests {
		if got := FormatPrice(D(tt.price)); got != tt.want {
			t.Errorf("FormatPrice(%s) = %q, want %q", tt.price, got, tt.want)
		}
	}
}

// render converts markdown to HTML the way a GitHub page would.
func render(t *testing.T, md string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := goldmark.New(goldmark.WithExtensions(extension.GFM)).Convert([]byte(md), &buf); err != nil {
		t.Fatalf("goldmark.Convert() unexpected error: %v", err)
	}
	return buf.String()
}

func TestSummary(t *testing.T) {
	b, errs := NewBook().Merge(
		obs("2020-01-01", ExtraVirgin, "2.345"),
		obs("2020-01-05", ExtraVirgin, "3"),
		obs("2020-01-03", Virgin, "2.1"),
	).Fill(Date{})
	res := &Result{Book: b, GradeErrors: errs, Observations: 3, Warnings: []Warning{{Line: 4}}}

	html := render(t, Summary(res))

	for _, want := range []string{
		"<h1>Olive oil prices</h1>",
		"<td>Aceite de oliva virgen extra</td>",
		"<td>5</td>",
		"<td>2020-01-01</td>",
		"<td>2020-01-05</td>",
		"<td>3,000 €/kg</td>",
		"<td>2,100 €/kg</td>",
		"<h2>Errors</h2>",
		"<li>lampante: empty series</li>",
		"3 observations read, 1 lines skipped.",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("Summary() HTML does not contain %q:\n%s", want, html)
		}
	}
	if got := strings.Count(html, "<tr>"); got != 4 {
		t.Errorf("Summary() has %d table rows, want 4 (header and 3 grades)", got)
	}
}

func TestSummary_Clean(t *testing.T) {
	b, _ := NewBook().Merge(
		obs("2020-01-01", ExtraVirgin, "2.345"),
		obs("2020-01-01", Virgin, "2.1"),
		obs("2020-01-01", Lampante, "1.9"),
	).Fill(Date{})
	md := Summary(&Result{Book: b})
	if strings.Contains(md, "Errors") || strings.Contains(md, "skipped") {
		t.Errorf("Summary() of a clean run mentions errors:\n%s", md)
	}
}
