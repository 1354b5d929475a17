package json

import (
	"testing"
)

// TestRoundTrip tests that decoding then encoding gives back the compact
// form of the input
func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty array", "[]", "[]"},
		{"records", "[\n  {\"a\": 1, \"b\": \"x\"},\n  {\"a\": 2}\n]", `[{"a":1,"b":"x"},{"a":2}]`},
		{"escapes kept", `["é\n"]`, `["é\n"]`},
		{"numbers kept verbatim", "[1.50, -0, 1E+2]", "[1.50,-0,1E+2]"},
		{"duplicate keys kept", `{"a":1,"a":2}`, `{"a":1,"a":2}`},
		{"deep nesting", `[[[{"x":[{}]}]]]`, `[[[{"x":[{}]}]]]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := decodeValue(tt.input)
			if err != nil {
				t.Fatalf("decode error: %v", err)
			}
			out, err := AppendValue(nil, v)
			if err != nil {
				t.Fatalf("encode error: %v", err)
			}
			if string(out) != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, out)
			}
			// A second pass is stable
			v2, err := decodeValue(string(out))
			if err != nil {
				t.Fatalf("second decode error: %v", err)
			}
			out2, _ := AppendValue(nil, v2)
			if string(out2) != string(out) {
				t.Errorf("unstable round trip: %s then %s", out, out2)
			}
		})
	}
}

// TestRoundTripRecords tests that records survive AppendObject
func TestRoundTripRecords(t *testing.T) {
	records, err := NewDecoder([]byte(`[{"b":true,"a":"x"},{"c":null}]`)).DecodeRecords()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var out []byte
	for _, r := range records {
		values := make([]any, len(r.Members))
		for i, m := range r.Members {
			values[i] = m.Value
		}
		out, err = AppendObject(out, r.Keys(), values)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	expected := `{"b":true,"a":"x"}{"c":null}`
	if string(out) != expected {
		t.Errorf("expected %s, got %s", expected, out)
	}
}
