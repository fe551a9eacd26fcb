package jsonast

import (
	"testing"

	"github.com/zenithlang/zenith/parser"
)

const source = `target T1:
key:"k1"
dictionnary:
d1:"root desc"
law L:
start_date:2025-12-25 at 15:45
period:1.5
Event:
A[d1]:"a"
B:"b"
GROUP:(A 30^0 - B 45^15)
end_law
end_target`

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tree, err := parser.Parse(source)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	data, err := Encode(tree)
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}

	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}

	data2, err := Encode(decoded)
	if err != nil {
		t.Fatalf("re-encode error: %v", err)
	}
	if string(data) != string(data2) {
		t.Errorf("round trip mismatch:\n--- first ---\n%s\n--- second ---\n%s", data, data2)
	}
}

func TestDecodeRejectsUnknownRootKind(t *testing.T) {
	_, err := Decode([]byte(`{"kind":"not_a_corpus","roots":[]}`))
	if err == nil {
		t.Fatal("expected an error for a non-corpus root kind")
	}
}

func TestDecodeRejectsUnknownNodeKind(t *testing.T) {
	_, err := Decode([]byte(`{"kind":"corpus","roots":[{"kind":"mystery"}]}`))
	if err == nil {
		t.Fatal("expected an error for an unknown node kind")
	}
}

func TestDecodeRejectsMalformedJSON(t *testing.T) {
	_, err := Decode([]byte(`not json`))
	if err == nil {
		t.Fatal("expected an error for malformed JSON input")
	}
}
