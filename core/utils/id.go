package utils

import (
	gonanoid "github.com/matoous/go-nanoid/v2"

	"rite-api/core/constants"
)

// GenerateID returns a short url-safe id for share slugs.
func GenerateID() string {
	id, err := gonanoid.Generate(constants.SubmissionTokenAlphabet, 7)
	if err != nil {
		return ""
	}
	return id
}

// GenerateSubmissionToken mints a bearer token for a timeslot submission
// link. nanoid draws from crypto/rand; the token grants write access to
// guest lists and bank details, so a CSPRNG is required here, not optional.
func GenerateSubmissionToken() (string, error) {
	return gonanoid.Generate(constants.SubmissionTokenAlphabet, constants.SubmissionTokenLength)
}
