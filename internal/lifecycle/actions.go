package lifecycle

import (
	"locali/internal/domain"
)

// NextAction is the single recommendation shown to a creator for a stage.
type NextAction struct {
	Label       string `json:"label"`
	Destination string `json:"destination"`
	Description string `json:"description"`
}

var nextActions = map[domain.LifecycleStage]NextAction{
	domain.StageIncomplete: {
		Label:       "Complete Listing Details",
		Destination: "/studio/listing",
		Description: "Add your business name, location and category to go live in the directory.",
	},
	domain.StageLive: {
		Label:       "Optimise Your Listing",
		Destination: "/studio/products",
		Description: "Add a detailed description, a contact method and your first product.",
	},
	domain.StageOptimised: {
		Label:       "Upgrade to Pro",
		Destination: "/studio/billing",
		Description: "Unlock your mini-site and share kit with a Pro subscription.",
	},
	domain.StagePro: {
		Label:       "Share Mini-site",
		Destination: "/studio/share",
		Description: "Send customers to your mini-site using the share kit.",
	},
}

// GetNextAction returns the fixed recommendation for stage. Unknown stages
// get the S0 recommendation.
func GetNextAction(stage domain.LifecycleStage) NextAction {
	if a, ok := nextActions[stage]; ok {
		return a
	}
	return nextActions[domain.StageIncomplete]
}

// Feature is a stage-gated capability.
type Feature string

const (
	FeatureMiniSite          Feature = "mini_site"
	FeatureShareKit          Feature = "share_kit"
	FeatureFeaturedPlacement Feature = "featured_placement"
)

// featureStages maps each feature to the lowest stage that unlocks it.
var featureStages = map[Feature]domain.LifecycleStage{
	FeatureMiniSite:          domain.StagePro,
	FeatureShareKit:          domain.StagePro,
	FeatureFeaturedPlacement: domain.StageOptimised,
}

// ParseFeature validates a feature name.
func ParseFeature(name string) (Feature, error) {
	f := Feature(name)
	if _, ok := featureStages[f]; !ok {
		return "", domain.ErrUnknownFeature
	}
	return f, nil
}

// RequiredStage returns the lowest stage that unlocks f. Unknown features
// return an empty stage.
func RequiredStage(f Feature) domain.LifecycleStage {
	return featureStages[f]
}
