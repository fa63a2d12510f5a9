package client

import (
	"reflect"
	"testing"
)

func TestValidateClientInput(t *testing.T) {
	cases := []struct {
		name    string
		input   ClientInput
		wantOK  bool
		wantErr []string
	}{
		{
			name:   "valid",
			input:  ClientInput{PartyName: "Acme", PartyCode: "AC01", City: "Houston"},
			wantOK: true,
		},
		{
			name:    "missing party name",
			input:   ClientInput{PartyName: "", PartyCode: "X", City: "Y"},
			wantErr: []string{"Party name is required"},
		},
		{
			name:    "whitespace only fields",
			input:   ClientInput{PartyName: "  ", PartyCode: "\t", City: " "},
			wantErr: []string{"Party name is required", "Party code is required", "City is required"},
		},
		{
			name:    "missing city",
			input:   ClientInput{PartyName: "Acme", PartyCode: "AC01"},
			wantErr: []string{"City is required"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ValidateClientInput(tc.input)
			if got.IsValid != tc.wantOK {
				t.Fatalf("IsValid = %v, want %v (errors %v)", got.IsValid, tc.wantOK, got.Errors)
			}
			if !tc.wantOK && !reflect.DeepEqual(got.Errors, tc.wantErr) {
				t.Fatalf("Errors = %v, want %v", got.Errors, tc.wantErr)
			}
			if tc.wantOK && len(got.Errors) != 0 {
				t.Fatalf("expected no errors, got %v", got.Errors)
			}
		})
	}
}
