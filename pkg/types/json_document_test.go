package types

import (
	"encoding/json"
	"testing"
)

func TestJSONDocument_ScanBytesCopies(t *testing.T) {
	src := []byte(`{"type":"fixed"}`)
	var doc JSONDocument
	if err := doc.Scan(src); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	src[0] = 'X'
	if string(doc) != `{"type":"fixed"}` {
		t.Fatalf("expected copied bytes, got %q", string(doc))
	}
}

func TestJSONDocument_ScanString(t *testing.T) {
	var doc JSONDocument
	if err := doc.Scan(`[{"id":"color"}]`); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if string(doc) != `[{"id":"color"}]` {
		t.Fatalf("unexpected document %q", string(doc))
	}
}

func TestJSONDocument_ValueRejectsInvalid(t *testing.T) {
	doc := JSONDocument(`{"broken":`)
	if _, err := doc.Value(); err == nil {
		t.Fatal("expected error for invalid json")
	}
}

func TestJSONDocument_NilRoundTrip(t *testing.T) {
	var doc JSONDocument
	v, err := doc.Value()
	if err != nil {
		t.Fatalf("value failed: %v", err)
	}
	if v != nil {
		t.Fatalf("expected nil driver value, got %v", v)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(out) != "null" {
		t.Fatalf("expected null, got %s", out)
	}
}
