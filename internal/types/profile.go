package types

import (
	"fmt"
	"strings"
)

// Profile selects the rewriting style applied to adapted content.
type Profile string

const (
	ProfileADHD          Profile = "ADHD"
	ProfileDyslexia      Profile = "DYSLEXIA"
	ProfileAutisticLogic Profile = "AUTISTIC_LOGIC"
)

// Profiles lists every profile in display order.
var Profiles = []Profile{ProfileADHD, ProfileDyslexia, ProfileAutisticLogic}

// ProfileDetails is the display metadata shown next to a profile.
type ProfileDetails struct {
	ID          Profile
	Name        string
	Description string
}

var profileDetails = map[Profile]ProfileDetails{
	ProfileADHD: {
		ID:          ProfileADHD,
		Name:        "ADHD Focus",
		Description: "Concise summaries, bold key terms, and bulleted lists to maintain engagement.",
	},
	ProfileDyslexia: {
		ID:          ProfileDyslexia,
		Name:        "Dyslexia Friendly",
		Description: "High contrast, clean layouts, and simplified sentence structures for readability.",
	},
	ProfileAutisticLogic: {
		ID:          ProfileAutisticLogic,
		Name:        "Logic & Steps",
		Description: "Sequential step-by-step breakdowns, objective language, and clear context.",
	},
}

func (p Profile) Valid() bool {
	_, ok := profileDetails[p]
	return ok
}

func (p Profile) String() string { return string(p) }

// Details returns the display metadata for p. Unknown profiles yield a zero value.
func (p Profile) Details() ProfileDetails {
	return profileDetails[p]
}

// ParseProfile accepts the canonical names case-insensitively.
func ParseProfile(s string) (Profile, error) {
	p := Profile(strings.ToUpper(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("unknown learning profile %q", s)
	}
	return p, nil
}
