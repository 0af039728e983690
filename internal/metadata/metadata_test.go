package metadata

import (
	"reflect"
	"testing"
)

func TestAppendIsIdempotent(t *testing.T) {
	text := Append("notes", "calgrid_todo", "prep")
	if text != "notes\ncalgrid_todo=prep" {
		t.Fatalf("append = %q", text)
	}
	if again := Append(text, "calgrid_todo", "prep"); again != text {
		t.Fatalf("duplicate marker added: %q", again)
	}
}

func TestExtract(t *testing.T) {
	text := "notes\ncalgrid_todo=prep\nother=x"
	got, ok := Extract(text, "calgrid_todo")
	if !ok || got != "prep" {
		t.Fatalf("extract = %q %v", got, ok)
	}
	if _, ok := Extract(text, "missing"); ok {
		t.Fatalf("missing key should not match")
	}
}

func TestExtractAllKeepsOrder(t *testing.T) {
	text := "calgrid_todo=one\nnoise\ncalgrid_todo=two"
	got := ExtractAll(text, "calgrid_todo")
	if !reflect.DeepEqual(got, []string{"one", "two"}) {
		t.Fatalf("extract all = %v", got)
	}
	if got := ExtractAll("nothing here", "calgrid_todo"); got != nil {
		t.Fatalf("no markers should yield nil, got %v", got)
	}
}
