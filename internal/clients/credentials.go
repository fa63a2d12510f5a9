package client

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/petrolube/lubedash-backend/pkg/security"
)

var (
	whitespaceRe  = regexp.MustCompile(`\s+`)
	usernameDropRe = regexp.MustCompile(`[^a-z0-9_]`)
)

// Credentials is the generated initial login pair handed to a new party.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// GenerateCredentials derives a username from the party identity and
// synthesizes a throwaway password. The username is the lower-cased name with
// whitespace runs collapsed to underscores and any other punctuation dropped,
// joined to the normalized code: "{cleaned_name}_{CLEANED_CODE}". A name that
// cleans to nothing still yields "_{CODE}".
func GenerateCredentials(partyName, partyCode string) (Credentials, error) {
	return generateCredentialsAt(time.Now(), partyName, partyCode)
}

func generateCredentialsAt(now time.Time, partyName, partyCode string) (Credentials, error) {
	cleanName := strings.ToLower(partyName)
	cleanName = whitespaceRe.ReplaceAllString(cleanName, "_")
	cleanName = usernameDropRe.ReplaceAllString(cleanName, "")

	username := fmt.Sprintf("%s_%s", cleanName, NormalizePartyCode(partyCode))

	random, err := security.RandomBase36(6)
	if err != nil {
		return Credentials{}, fmt.Errorf("generating password suffix: %w", err)
	}
	password := fmt.Sprintf("VL%d#%s", now.Year(), random)

	return Credentials{Username: username, Password: password}, nil
}

// NormalizePartyCode upper-cases the code and strips all whitespace. The
// normalized form is what gets persisted and checked for uniqueness.
func NormalizePartyCode(code string) string {
	return whitespaceRe.ReplaceAllString(strings.ToUpper(code), "")
}
