package entities

import "fmt"

// NeedType is a category of care need. It drives the query templates,
// relevance rules and scoring applied to a search.
type NeedType string

const (
	NeedEmergency           NeedType = "emergency"
	NeedRehabilitation      NeedType = "rehabilitation"
	NeedSpeechTherapy       NeedType = "speech-therapy"
	NeedPhysicalTherapy     NeedType = "physical-therapy"
	NeedOccupationalTherapy NeedType = "occupational-therapy"
	NeedSupportGroups       NeedType = "support-groups"
)

// NeedTypeOrder is the canonical evaluation order for relevance rules.
// Filtering stops on the first matching need, so this order decides the
// match reason attached to a candidate.
var NeedTypeOrder = []NeedType{
	NeedEmergency,
	NeedRehabilitation,
	NeedSpeechTherapy,
	NeedPhysicalTherapy,
	NeedOccupationalTherapy,
	NeedSupportGroups,
}

// ParseNeedType validates a raw need type string.
func ParseNeedType(raw string) (NeedType, error) {
	for _, nt := range NeedTypeOrder {
		if string(nt) == raw {
			return nt, nil
		}
	}
	return "", fmt.Errorf("unknown need type: %q", raw)
}

// ContainsNeed reports whether needs includes target.
func ContainsNeed(needs []NeedType, target NeedType) bool {
	for _, n := range needs {
		if n == target {
			return true
		}
	}
	return false
}
