package economy

import (
	"regexp"
	"strings"
)

const (
	MaxCrewMembers         = 50
	crewSynergyPerMember   = 5
	crewSynergyCapPermille = 100
)

var (
	crewNameRE = regexp.MustCompile(`^[A-Za-z0-9 _'-]{3,24}$`)
	crewTagRE  = regexp.MustCompile(`^[A-Z0-9]{2,5}$`)
)

// CrewSynergy is the per-mille income bonus for a crew of the given size:
// 0.5% per member up to 10%.
func CrewSynergy(members int) int64 {
	if members <= 0 {
		return 0
	}
	return min(int64(members)*crewSynergyPerMember, crewSynergyCapPermille)
}

// NormalizeCrew trims and validates a crew name and tag. The tag is upper-cased.
func NormalizeCrew(name, tag string) (string, string, error) {
	name = strings.TrimSpace(name)
	tag = strings.ToUpper(strings.TrimSpace(tag))
	if !crewNameRE.MatchString(name) || !crewTagRE.MatchString(tag) {
		return "", "", ErrInvalidName
	}
	return name, tag, nil
}

func CanJoinCrew(members int, alreadyInCrew bool) error {
	if alreadyInCrew {
		return reject(ErrAlreadyInCrew, 0)
	}
	if members >= MaxCrewMembers {
		return reject(ErrCrewFull, 0)
	}
	return nil
}
