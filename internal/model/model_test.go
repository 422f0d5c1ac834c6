package model

import (
	"reflect"
	"testing"
)

func TestEntryEmptyProgram(t *testing.T) {
	var nilProg *Program
	if got := nilProg.Entry(); !reflect.DeepEqual(got, Function{}) {
		t.Fatalf("nil program Entry()=%#v, want zero function", got)
	}
	if got := (&Program{}).Entry(); len(got.Body) != 0 || got.Name != "" {
		t.Fatalf("empty program Entry()=%#v, want zero function", got)
	}
}

func TestEntryIsFirstFunction(t *testing.T) {
	p := &Program{Functions: []Function{
		{Name: "main", Body: []Command{PrintLine{Text: "a"}}},
		{Name: "other", Body: []Command{PrintLine{Text: "b"}, PrintLine{Text: "c"}}},
	}}

	if got := p.Entry().Name; got != "main" {
		t.Fatalf("Entry().Name=%q, want main", got)
	}
	if got := p.CommandCount(); got != 3 {
		t.Fatalf("CommandCount()=%d, want 3", got)
	}
}
