package oliveprice

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtract_Block(t *testing.T) {
	log := `01-01-2020
Aceite de oliva virgen extra 2,345
Aceite de oliva virgen 2,100
Aceite de oliva lampante 1,900
05-01-2020
Aceite de oliva virgen extra 3,000
Aceite de oliva virgen 2,800
Aceite de oliva lampante 2,000
`
	got, warnings, err := Extractor{Layout: LayoutBlock, Convention: CommaDecimal}.Extract(strings.NewReader(log))
	if err != nil {
		t.Fatalf("Extract() unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("Extract() warnings = %v, want none", warnings)
	}
	want := []Observation{
		obs("2020-01-01", ExtraVirgin, "2.345"),
		obs("2020-01-01", Virgin, "2.100"),
		obs("2020-01-01", Lampante, "1.900"),
		obs("2020-01-05", ExtraVirgin, "3.000"),
		obs("2020-01-05", Virgin, "2.800"),
		obs("2020-01-05", Lampante, "2.000"),
	}
	if diff := cmp.Diff(want, got, cmpOpts); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}

	// Once filled, extra virgin is daily from the 1st to the 5th.
	filled, errs := NewBook().Merge(got...).Fill(Date{})
	if len(errs) != 0 {
		t.Fatalf("Fill() errors = %v", errs)
	}
	wantEV := []string{
		"2020-01-01=2.345",
		"2020-01-02=2.345",
		"2020-01-03=2.345",
		"2020-01-04=2.345",
		"2020-01-05=3.000",
	}
	if diff := cmp.Diff(wantEV, entries(filled[ExtraVirgin])); diff != "" {
		t.Errorf("filled extra virgin mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_BlockPositional(t *testing.T) {
	log := `2,500 €
02/03/2021
3,100 €
2,900 €/kg
2,450
2,000
31-04-2021
1,000
`
	got, warnings, err := Extractor{Layout: LayoutBlock, Convention: CommaDecimal}.Extract(strings.NewReader(log))
	if err != nil {
		t.Fatalf("Extract() unexpected error: %v", err)
	}
	want := []Observation{
		obs("2021-03-02", ExtraVirgin, "3.100"),
		obs("2021-03-02", Virgin, "2.900"),
		obs("2021-03-02", Lampante, "2.450"),
	}
	if diff := cmp.Diff(want, got, cmpOpts); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}

	// The fourth price, the invalid date and the price following it (still in
	// the 02/03 block) are reported.
	wantErrs := []struct {
		line int
		err  error
	}{
		{6, ErrUnexpectedLine},
		{7, ErrInvalidDate},
		{8, ErrUnexpectedLine},
	}
	if len(warnings) != len(wantErrs) {
		t.Fatalf("Extract() warnings = %v, want %d", warnings, len(wantErrs))
	}
	for i, w := range wantErrs {
		if warnings[i].Line != w.line || !errors.Is(warnings[i], w.err) {
			t.Errorf("warning[%d] = %v, want line %d %v", i, warnings[i], w.line, w.err)
		}
	}
}

func TestExtract_Free(t *testing.T) {
	log := `Precios del aceite en origen

Fecha: 01-01-2020
Aceite de oliva virgen extra: 2,345 €
Aceite de oliva virgen: 2,100 €
Aceite de oliva lampante: Sin cierre de operaciones
02-01-2020
Aceite de oliva lampante 1,950 €
Aceite de oliva virgen extra 25,000 €
Aceite de oliva virgen extra 2,400 €
`
	got, warnings, err := Extractor{Layout: LayoutFree, Convention: CommaDecimal}.Extract(strings.NewReader(log))
	if err != nil {
		t.Fatalf("Extract() unexpected error: %v", err)
	}
	want := []Observation{
		obs("2020-01-01", ExtraVirgin, "2.345"),
		obs("2020-01-01", Virgin, "2.100"),
		obs("2020-01-02", Lampante, "1.950"),
		obs("2020-01-02", ExtraVirgin, "2.400"),
	}
	if diff := cmp.Diff(want, got, cmpOpts); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
	if len(warnings) != 2 {
		t.Fatalf("Extract() warnings = %v, want 2", warnings)
	}
	if !errors.Is(warnings[0], ErrUnclassifiedGrade) || warnings[0].Line != 1 {
		t.Errorf("warning[0] = %v, want line 1 unclassified", warnings[0])
	}
	if !errors.Is(warnings[1], ErrInvalidPrice) || warnings[1].Line != 9 {
		t.Errorf("warning[1] = %v, want line 9 invalid price", warnings[1])
	}
}

// TestExtract_NoClose checks that a day without trading keeps no price and
// does not disturb the next date.
func TestExtract_NoClose(t *testing.T) {
	log := `10-03-2022
Aceite de oliva virgen extra 3,500
Sin cierre de operaciones
Aceite de oliva lampante 3,000
11-03-2022
Aceite de oliva virgen extra 3,550
`
	for _, layout := range []Layout{LayoutBlock, LayoutFree} {
		t.Run(layout.String(), func(t *testing.T) {
			got, warnings, err := Extractor{Layout: layout, Convention: CommaDecimal}.Extract(strings.NewReader(log))
			if err != nil {
				t.Fatalf("Extract() unexpected error: %v", err)
			}
			if len(warnings) != 0 {
				t.Errorf("Extract() warnings = %v, want none", warnings)
			}
			want := []Observation{
				obs("2022-03-10", ExtraVirgin, "3.500"),
				obs("2022-03-10", Lampante, "3.000"),
				obs("2022-03-11", ExtraVirgin, "3.550"),
			}
			if diff := cmp.Diff(want, got, cmpOpts); diff != "" {
				t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestExtract_NoCloseBlockPosition checks that a day without trading takes
// its grade's place in a block of bare prices.
func TestExtract_NoCloseBlockPosition(t *testing.T) {
	log := "01-01-2020\n2,345\nSin cierre de operaciones\n1,900\n"
	got, warnings, err := Extractor{Layout: LayoutBlock, Convention: CommaDecimal}.Extract(strings.NewReader(log))
	if err != nil {
		t.Fatalf("Extract() unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("Extract() warnings = %v, want none", warnings)
	}
	want := []Observation{
		obs("2020-01-01", ExtraVirgin, "2.345"),
		obs("2020-01-01", Lampante, "1.900"),
	}
	if diff := cmp.Diff(want, got, cmpOpts); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_FreeInvalidDate(t *testing.T) {
	log := `01-04-2021
31-04-2021 Aceite de oliva virgen 2,000
Aceite de oliva virgen extra 3,000
`
	got, warnings, err := Extractor{Layout: LayoutFree, Convention: CommaDecimal}.Extract(strings.NewReader(log))
	if err != nil {
		t.Fatalf("Extract() unexpected error: %v", err)
	}
	// The invalid date keeps 01-04 current, the line is read as content.
	want := []Observation{
		obs("2021-04-01", Virgin, "2.000"),
		obs("2021-04-01", ExtraVirgin, "3.000"),
	}
	if diff := cmp.Diff(want, got, cmpOpts); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
	if len(warnings) != 1 || !errors.Is(warnings[0], ErrInvalidDate) {
		t.Errorf("Extract() warnings = %v, want one invalid date", warnings)
	}
}

func TestExtract_Inline(t *testing.T) {
	log := `01-01-2015 Aceite de oliva virgen extra 3.250
01-01-2015 Aceite de oliva virgen 3.050
01-01-2015 Aceite de oliva lampante Sin cierre de operaciones
02-01-2015 Aceite de oliva lampante 2.800
02-01-2015 Aceite de oliva 2.800
`
	got, warnings, err := Extractor{Layout: LayoutInline, Convention: Lenient}.Extract(strings.NewReader(log))
	if err != nil {
		t.Fatalf("Extract() unexpected error: %v", err)
	}
	want := []Observation{
		obs("2015-01-01", ExtraVirgin, "3.250"),
		obs("2015-01-01", Virgin, "3.050"),
		obs("2015-01-02", Lampante, "2.800"),
	}
	if diff := cmp.Diff(want, got, cmpOpts); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
	if len(warnings) != 1 || !errors.Is(warnings[0], ErrUnclassifiedGrade) || warnings[0].Line != 5 {
		t.Errorf("Extract() warnings = %v, want line 5 unclassified", warnings)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestExtract_ReadError(t *testing.T) {
	_, _, err := Extractor{}.Extract(failingReader{})
	if err == nil {
		t.Errorf("Extract() expected a read error")
	}
}

func TestParseLayout(t *testing.T) {
	for _, l := range []Layout{LayoutBlock, LayoutFree, LayoutInline} {
		got, err := ParseLayout(l.String())
		if err != nil || got != l {
			t.Errorf("ParseLayout(%q) = %v, %v, want %v", l.String(), got, err, l)
		}
	}
	if _, err := ParseLayout("csv"); err == nil {
		t.Errorf("ParseLayout(%q) expected an error", "csv")
	}
}
