package identifier

import (
	"errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		scheme  string
		value   string
		wantErr bool
	}{
		{
			name:   "norwegian organization number",
			scheme: "0192",
			value:  "921605900",
		},
		{
			name:   "GLN",
			scheme: "0088",
			value:  "7315458756324",
		},
		{
			name:    "empty scheme",
			scheme:  "",
			value:   "921605900",
			wantErr: true,
		},
		{
			name:    "empty value",
			scheme:  "0192",
			value:   "",
			wantErr: true,
		},
		{
			name:    "scheme with separator",
			scheme:  "0192:extra",
			value:   "921605900",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.scheme, tt.value)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				if !errors.Is(err, ErrInvalidIdentifier) {
					t.Errorf("error = %v, want ErrInvalidIdentifier", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if p.Scheme != tt.scheme || p.Value != tt.value {
				t.Errorf("participant = %+v, want {%s %s}", p, tt.scheme, tt.value)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantScheme string
		wantValue  string
		wantErr    bool
	}{
		{
			name:       "canonical form",
			input:      "0192:921605900",
			wantScheme: "0192",
			wantValue:  "921605900",
		},
		{
			name:       "value containing colon",
			input:      "9901:urn:example",
			wantScheme: "9901",
			wantValue:  "urn:example",
		},
		{
			name:    "missing separator",
			input:   "921605900",
			wantErr: true,
		},
		{
			name:    "empty scheme",
			input:   ":921605900",
			wantErr: true,
		},
		{
			name:    "empty value",
			input:   "0192:",
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if p.Scheme != tt.wantScheme {
				t.Errorf("scheme = %s, want %s", p.Scheme, tt.wantScheme)
			}
			if p.Value != tt.wantValue {
				t.Errorf("value = %s, want %s", p.Value, tt.wantValue)
			}
		})
	}
}

func TestString(t *testing.T) {
	p, err := New("0192", "921605900")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := p.String(); got != "0192:921605900" {
		t.Errorf("String() = %s, want 0192:921605900", got)
	}

	// Parse and String round-trip
	rt, err := Parse(p.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rt != p {
		t.Errorf("round-trip = %+v, want %+v", rt, p)
	}
}

func TestHash(t *testing.T) {
	tests := []struct {
		name   string
		scheme string
		value  string
		want   string
	}{
		{
			name:   "norwegian organization number",
			scheme: "0192",
			value:  "921605900",
			want:   "e258de9dbe1f34f17b55d5d3cc5e7a66",
		},
		{
			name:   "GLN",
			scheme: "0088",
			value:  "7315458756324",
			want:   "e48b1f734e5248f81b53fce0440724bd",
		},
		{
			name:   "norwegian organization number legacy scheme",
			scheme: "9908",
			value:  "919779446",
			want:   "95ceba87ede35140cea76e546e966de0",
		},
		{
			name:   "danish CVR with letters",
			scheme: "0184",
			value:  "DK87654321",
			want:   "b42cd2a9c0c70be9814d808a005414d2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Participant{Scheme: tt.scheme, Value: tt.value}
			got := p.Hash()
			if got != tt.want {
				t.Errorf("Hash() = %s, want %s", got, tt.want)
			}
			if len(got) != 32 {
				t.Errorf("hash length = %d, want 32", len(got))
			}
			if got != strings.ToLower(got) {
				t.Error("hash must be lowercase hex")
			}
		})
	}
}

func TestHashDeterministic(t *testing.T) {
	p := Participant{Scheme: "0192", Value: "921605900"}
	first := p.Hash()
	for i := 0; i < 3; i++ {
		if got := p.Hash(); got != first {
			t.Fatalf("Hash() = %s on repeat call, want %s", got, first)
		}
	}
}
