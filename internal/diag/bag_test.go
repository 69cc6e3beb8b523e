package diag

import (
	"testing"

	"keel/internal/source"
)

func TestBagLimit(t *testing.T) {
	bag := NewBag(2)

	if !bag.Add(Diagnostic{Severity: SevError, Code: SemaDuplicateName}) {
		t.Fatal("first add should succeed")
	}
	if !bag.Add(Diagnostic{Severity: SevWarning, Code: SynUnexpectedToken}) {
		t.Fatal("second add should succeed")
	}
	if bag.Add(Diagnostic{Severity: SevInfo, Code: UnknownCode}) {
		t.Fatal("third add should be dropped by the limit")
	}
	if bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", bag.Len())
	}
}

func TestBagHasErrors(t *testing.T) {
	bag := NewBag(10)
	bag.Add(Diagnostic{Severity: SevWarning})
	if bag.HasErrors() {
		t.Fatal("warning alone should not count as error")
	}
	if !bag.HasWarnings() {
		t.Fatal("expected HasWarnings to be true")
	}
	bag.Add(Diagnostic{Severity: SevError})
	if !bag.HasErrors() {
		t.Fatal("expected HasErrors after adding an error")
	}
}

func TestBagSortByPosition(t *testing.T) {
	bag := NewBag(10)
	late := Diagnostic{Primary: source.Span{File: 0, Start: 30, End: 31}, Code: SynExpectSemicolon}
	early := Diagnostic{Primary: source.Span{File: 0, Start: 5, End: 6}, Code: SemaDuplicateName}
	bag.Add(late)
	bag.Add(early)

	bag.Sort()
	items := bag.Items()
	if items[0].Primary.Start != 5 || items[1].Primary.Start != 30 {
		t.Fatalf("expected position order, got %v then %v", items[0].Primary, items[1].Primary)
	}
}

func TestReportBuilderEmitOnce(t *testing.T) {
	bag := NewBag(10)
	rep := BagReporter{Bag: bag}

	b := ReportError(rep, SemaDuplicateName, source.Span{Start: 1, End: 2}, "duplicate declaration of 'x'").
		WithNote(source.Span{Start: 0, End: 1}, "previous declaration here")
	b.Emit()
	b.Emit()

	if bag.Len() != 1 {
		t.Fatalf("expected exactly one emission, got %d", bag.Len())
	}
	d := bag.Items()[0]
	if len(d.Notes) != 1 || d.Notes[0].Msg != "previous declaration here" {
		t.Fatalf("expected one note, got %+v", d.Notes)
	}
}

func TestBagDedup(t *testing.T) {
	bag := NewBag(10)
	d := Diagnostic{Code: SemaDuplicateName, Primary: source.Span{Start: 1, End: 2}}
	bag.Add(d)
	bag.Add(d)
	bag.Dedup()
	if bag.Len() != 1 {
		t.Fatalf("expected dedup to drop the repeat, got %d", bag.Len())
	}
}
