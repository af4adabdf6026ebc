package lifecycle

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MinDescriptionLength is the description length a listing must exceed to
// count as detailed.
const MinDescriptionLength = 20

// Requirement is a single named completeness check.
type Requirement struct {
	Key   string
	Label string
	Met   func(s Snapshot) bool
}

// RuleSet enumerates the requirements for each stage boundary. Live gates
// S0 -> S1; Optimised gates S1 -> S2 and is evaluated on top of Live.
type RuleSet struct {
	Version   string
	Live      []Requirement
	Optimised []Requirement
}

// Rule set versions.
const (
	RuleSetCore   = "v1"
	RuleSetStrict = "v2"
)

var (
	reqBusinessName = Requirement{
		Key:   "name",
		Label: "Business Name",
		Met:   func(s Snapshot) bool { return present(s.Name) },
	}
	reqLocation = Requirement{
		Key:   "location",
		Label: "Location",
		Met:   func(s Snapshot) bool { return present(s.Location) },
	}
	reqCategory = Requirement{
		Key:   "category",
		Label: "Category",
		Met:   func(s Snapshot) bool { return present(s.CategoryID) },
	}
	reqDescription = Requirement{
		Key:   "description",
		Label: "Detailed Description",
		// Length is counted in runes over the stored text as given; only a
		// whitespace-only description is treated as absent.
		Met: func(s Snapshot) bool {
			return present(s.Description) && utf8.RuneCountInString(*s.Description) > MinDescriptionLength
		},
	}
	reqProduct = Requirement{
		Key:   "product",
		Label: "At least one Product",
		Met:   func(s Snapshot) bool { return s.ProductCount >= 1 },
	}
	reqContact = Requirement{
		Key:   "contact",
		Label: "Contact Method (Email or Phone)",
		Met:   func(s Snapshot) bool { return present(s.Phone) || present(s.ContactEmail) },
	}
	reqCategoryConfirmed = Requirement{
		Key:   "category_confirmed",
		Label: "Confirm Business Category",
		Met:   func(s Snapshot) bool { return s.CategoryConfirmed },
	}
	reqPolicyAccepted = Requirement{
		Key:   "policy_accepted",
		Label: "Accept Platform Policy",
		Met:   func(s Snapshot) bool { return s.PolicyAccepted },
	}
)

// CoreRules is the default rule set: data completeness only.
func CoreRules() RuleSet {
	return RuleSet{
		Version:   RuleSetCore,
		Live:      []Requirement{reqBusinessName, reqLocation, reqCategory},
		Optimised: []Requirement{reqDescription, reqProduct, reqContact},
	}
}

// StrictRules extends CoreRules with category confirmation and policy
// acceptance for S2.
func StrictRules() RuleSet {
	return RuleSet{
		Version: RuleSetStrict,
		Live:    []Requirement{reqBusinessName, reqLocation, reqCategory},
		Optimised: []Requirement{
			reqDescription, reqProduct, reqContact,
			reqCategoryConfirmed, reqPolicyAccepted,
		},
	}
}

// RulesForVersion resolves a configured rule set version. An empty version
// selects CoreRules.
func RulesForVersion(version string) (RuleSet, error) {
	switch strings.ToLower(strings.TrimSpace(version)) {
	case "", RuleSetCore:
		return CoreRules(), nil
	case RuleSetStrict:
		return StrictRules(), nil
	default:
		return RuleSet{}, fmt.Errorf("unknown lifecycle rule set %q", version)
	}
}

func present(v *string) bool {
	return v != nil && strings.TrimSpace(*v) != ""
}

func unmet(reqs []Requirement, s Snapshot) []string {
	var missing []string
	for _, r := range reqs {
		if !r.Met(s) {
			missing = append(missing, r.Label)
		}
	}
	return missing
}

func allMet(reqs []Requirement, s Snapshot) bool {
	for _, r := range reqs {
		if !r.Met(s) {
			return false
		}
	}
	return true
}
