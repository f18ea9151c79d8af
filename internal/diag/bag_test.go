package diag

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"vareach/internal/source"
)

func TestBag_LimitAndSeverity(t *testing.T) {
	bag := NewBag(2)
	if !bag.Add(New(SevWarning, VarCommentRelocated, source.Span{Start: 4, End: 8}, "moved")) {
		t.Fatalf("first Add must succeed")
	}
	if bag.HasErrors() || !bag.HasWarnings() {
		t.Fatalf("expected warnings only")
	}
	bag.Add(NewError(VarInvariant, source.Span{Start: 1, End: 2}, "broken"))
	if bag.Add(NewError(LexUnknownChar, source.Span{}, "dropped")) {
		t.Fatalf("Add past the limit must fail")
	}
	if !bag.HasErrors() || bag.Len() != 2 {
		t.Fatalf("HasErrors=%v Len=%d", bag.HasErrors(), bag.Len())
	}
}

func TestBag_SortAndDedup(t *testing.T) {
	bag := NewBag(10)
	bag.Add(New(SevInfo, VarSplit, source.Span{Start: 20, End: 30}, "split"))
	bag.Add(New(SevWarning, VarCommentRelocated, source.Span{Start: 5, End: 9}, "moved"))
	bag.Add(NewError(VarInvariant, source.Span{Start: 5, End: 9}, "broken"))
	bag.Add(New(SevInfo, VarSplit, source.Span{Start: 20, End: 30}, "split again"))

	bag.Sort()
	bag.Dedup()

	got := make([]string, 0, bag.Len())
	for _, d := range bag.Items() {
		got = append(got, d.Code.ID())
	}
	want := []string{"VAR3005", "VAR3004", "VAR3001"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if bag.Count(VarSplit) != 1 {
		t.Fatalf("Count(VarSplit) = %d", bag.Count(VarSplit))
	}
}

func TestBag_Merge(t *testing.T) {
	a := NewBag(1)
	a.Add(New(SevInfo, VarSplit, source.Span{}, "a"))
	b := NewBag(2)
	b.Add(New(SevInfo, VarSplit, source.Span{}, "b"))
	b.Add(New(SevInfo, VarSplit, source.Span{}, "c"))

	a.Merge(b)
	if a.Len() != 3 || a.Cap() < 3 {
		t.Fatalf("Merge: len=%d cap=%d", a.Len(), a.Cap())
	}
}

func TestCode_ID(t *testing.T) {
	cases := map[Code]string{
		LexUnterminatedString: "LEX1002",
		SynUnclosedDelimiter:  "SYN2002",
		VarCommentRelocated:   "VAR3004",
		IOLoadFileError:       "IO4001",
		CfgInvalid:            "CFG5001",
		UnknownCode:           "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Fatalf("%d.ID() = %q, want %q", code, got, want)
		}
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{Start: 1, End: 3}
	r.Report(VarCommentRelocated, SevWarning, sp, "moved", nil)
	r.Report(VarCommentRelocated, SevWarning, sp, "moved", nil)
	ReportWarning(r, VarCommentRelocated, sp, "moved elsewhere").Emit()
	if bag.Len() != 2 {
		t.Fatalf("bag len = %d, want 2", bag.Len())
	}
	if r.Suppressed() != 1 {
		t.Fatalf("Suppressed() = %d, want 1", r.Suppressed())
	}
}

func TestSeverity(t *testing.T) {
	if got := SevWarning.String(); got != "WARNING" {
		t.Fatalf("SevWarning.String() = %q", got)
	}
	if got := Severity(9).String(); got != "UNKNOWN" {
		t.Fatalf("Severity(9).String() = %q", got)
	}
	if !SevError.AtLeast(SevWarning) || SevInfo.AtLeast(SevWarning) || !SevInfo.AtLeast(SevInfo) {
		t.Fatal("AtLeast ordering broken")
	}
}
