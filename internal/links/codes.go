package links

import (
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
)

const issueCodeAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
const issueCodeLength = 5

// NewIssueCode mints a short lowercase code tagging one claim attempt
func NewIssueCode() string {
	var sb strings.Builder
	sb.Grow(issueCodeLength)
	for i := 0; i < issueCodeLength; i++ {
		sb.WriteByte(issueCodeAlphabet[rand.IntN(len(issueCodeAlphabet))])
	}
	return sb.String()
}

// NewClaimantCode generates the permanent code assigned to a claimant
// on first contact
func NewClaimantCode() string {
	code, _, _ := strings.Cut(uuid.New().String(), "-")
	return code
}
