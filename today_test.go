package oliveprice

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func TestMergeToday(t *testing.T) {
	h := historyOf(t, "2024-02-28", "3.500", "2024-02-29", "3.550", "2024-03-01", "3.500")
	today := MustParseDate("2024-03-01")

	once := h.MergeToday(today, D("3.6"))
	twice := once.MergeToday(today, D("3.6"))

	want := []string{"2024-02-28=3.500", "2024-02-29=3.550", "2024-03-01=3.600"}
	if diff := cmp.Diff(want, entries(once)); diff != "" {
		t.Errorf("MergeToday() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(entries(once), entries(twice)); diff != "" {
		t.Errorf("MergeToday() is not idempotent (-once +twice):\n%s", diff)
	}
	if p, _ := h.Get(today); !p.Equal(D("3.500")) {
		t.Errorf("MergeToday() modified its input: %v", p)
	}
}

func TestMergeToday_Insert(t *testing.T) {
	h := historyOf(t, "2024-03-01", "3.500", "2024-03-03", "3.700")
	got := h.MergeToday(MustParseDate("2024-03-02"), D("3.600"))
	want := []string{"2024-03-01=3.500", "2024-03-02=3.600", "2024-03-03=3.700"}
	if diff := cmp.Diff(want, entries(got)); diff != "" {
		t.Errorf("MergeToday() mismatch (-want +got):\n%s", diff)
	}
}

func TestBook_MergeSnapshot(t *testing.T) {
	b := Book{
		ExtraVirgin: historyOf(t, "2024-02-27", "3.400", "2024-02-28", "3.500"),
		Virgin:      historyOf(t, "2024-02-28", "3.100"),
	}
	s := Snapshot{
		Date: MustParseDate("2024-03-01"),
		Prices: map[Grade]decimal.Decimal{
			ExtraVirgin: D("3.6"),
			Lampante:    D("2.9"),
		},
	}
	got := b.MergeSnapshot(s)

	want := Book{
		ExtraVirgin: historyOf(t,
			"2024-02-27", "3.400",
			"2024-02-28", "3.500",
			"2024-02-29", "3.500",
			"2024-03-01", "3.600",
		),
		Virgin:   historyOf(t, "2024-02-28", "3.100"),
		Lampante: historyOf(t, "2024-03-01", "2.900"),
	}
	if diff := cmp.Diff(want, got, cmpOpts); diff != "" {
		t.Errorf("MergeSnapshot() mismatch (-want +got):\n%s", diff)
	}
	if b[ExtraVirgin].Len() != 2 {
		t.Errorf("MergeSnapshot() modified its input")
	}
	if again := got.MergeSnapshot(s); !cmp.Equal(got, again, cmpOpts) {
		t.Errorf("MergeSnapshot() is not idempotent")
	}
}

func TestBook_MergeSnapshot_BeforeFirstDay(t *testing.T) {
	b := Book{ExtraVirgin: historyOf(t, "2024-03-04", "3.700")}
	s := Snapshot{
		Date:   MustParseDate("2024-03-01"),
		Prices: map[Grade]decimal.Decimal{ExtraVirgin: D("3.6")},
	}
	got := b.MergeSnapshot(s)

	want := historyOf(t,
		"2024-03-01", "3.600",
		"2024-03-02", "3.600",
		"2024-03-03", "3.600",
		"2024-03-04", "3.700",
	)
	if diff := cmp.Diff(want, got[ExtraVirgin], cmpOpts); diff != "" {
		t.Errorf("MergeSnapshot() mismatch (-want +got):\n%s", diff)
	}
}
