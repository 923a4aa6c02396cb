package main

import (
	"strings"
	"testing"

	"github.com/go-test/deep"
)

func TestAssemble(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []byte
		wantErr bool
	}{
		{
			name: "packed words",
			in:   "0200 00E0\tclear\n0202 1200 loop\n",
			want: []byte{0x00, 0xE0, 0x12, 0x00},
		},
		{
			name: "disassembler output",
			in:   "0x04 bytes at pc: 0200\n0200 A2 2A  LD I, $22A\n0202 12 00  JP $200\n",
			want: []byte{0xA2, 0x2A, 0x12, 0x00},
		},
		{
			name: "gap is zero filled",
			in:   "0204 d015\n",
			want: []byte{0x00, 0x00, 0x00, 0x00, 0xD0, 0x15},
		},
		{
			name: "comments skipped",
			in:   "; sprite routine\n\n0200 6001 (*) set V0\n",
			want: []byte{0x60, 0x01},
		},
		{
			name:    "below program start",
			in:      "01FE 00E0\n",
			wantErr: true,
		},
		{
			name:    "past end of RAM",
			in:      "0FFF 00E0\n",
			wantErr: true,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := assemble(strings.NewReader(test.in))
			if test.wantErr {
				if err == nil {
					t.Errorf("didn't get error, got %X", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if diff := deep.Equal(got, test.want); diff != nil {
				t.Errorf("output differs: %v", diff)
			}
		})
	}
}
