package client

import (
	"fmt"
	"regexp"
	"testing"
	"time"
)

func TestGenerateCredentialsUsername(t *testing.T) {
	cases := []struct {
		name      string
		partyName string
		partyCode string
		want      string
	}{
		{"simple", "Acme Lubricants", "AC01", "acme_lubricants_AC01"},
		{"punctuation stripped", "O'Brien & Sons", "ob 9", "obrien__sons_OB9"},
		{"whitespace runs collapse", "Big   Oil\tCo", "bg1", "big_oil_co_BG1"},
		{"name cleans to empty", "***", "X1", "_X1"},
		{"code lower and spaced", "Delta", "d 42", "delta_D42"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := GenerateCredentials(tc.partyName, tc.partyCode)
			if err != nil {
				t.Fatalf("GenerateCredentials returned error: %v", err)
			}
			if got.Username != tc.want {
				t.Fatalf("username = %q, want %q", got.Username, tc.want)
			}
		})
	}
}

func TestGenerateCredentialsPasswordShape(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	pattern := regexp.MustCompile(fmt.Sprintf(`^VL%d#[A-Z0-9]{6}$`, now.Year()))

	for i := 0; i < 10; i++ {
		got, err := generateCredentialsAt(now, "Acme", "AC01")
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if !pattern.MatchString(got.Password) {
			t.Fatalf("password %q does not match %s", got.Password, pattern)
		}
	}
}

func TestNormalizePartyCode(t *testing.T) {
	if got := NormalizePartyCode("  ac 01 "); got != "AC01" {
		t.Fatalf("NormalizePartyCode = %q, want AC01", got)
	}
}
