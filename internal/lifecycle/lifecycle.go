// Package lifecycle derives a listing's completeness stage and the features
// that stage unlocks. Everything here is a pure function of a Snapshot; the
// stage is recomputed on every call and never stored.
package lifecycle

import (
	"github.com/google/uuid"

	"locali/internal/domain"
)

// Snapshot is the caller-supplied view of a listing at decision time.
// ProductCount comes from the products collection, not the listing row.
type Snapshot struct {
	Name              *string
	CategoryID        *string
	Location          *string
	Description       *string
	ContactEmail      *string
	Phone             *string
	Tier              domain.ListingTier
	CategoryConfirmed bool
	PolicyAccepted    bool
	ProductCount      int
}

// SnapshotOf builds a Snapshot from a stored listing and its product count.
func SnapshotOf(l *domain.Listing, productCount int) Snapshot {
	s := Snapshot{
		Name:              l.Name,
		Location:          l.Location,
		Description:       l.Description,
		ContactEmail:      l.ContactEmail,
		Phone:             l.Phone,
		Tier:              l.Tier,
		CategoryConfirmed: l.CategoryConfirmed,
		PolicyAccepted:    l.PolicyAccepted,
		ProductCount:      productCount,
	}
	if l.CategoryID != nil && *l.CategoryID != uuid.Nil {
		id := l.CategoryID.String()
		s.CategoryID = &id
	}
	return s
}

// Progress is the stage plus the unmet requirements blocking the next stage,
// in declared rule order.
type Progress struct {
	Stage      domain.LifecycleStage `json:"stage"`
	Missing    []string              `json:"missing"`
	RuleSet    string                `json:"rule_set"`
	NextAction NextAction            `json:"next_action"`
}

// Calculator evaluates snapshots against one rule set.
type Calculator struct {
	rules RuleSet
}

// NewCalculator creates a Calculator for the given rule set.
func NewCalculator(rules RuleSet) *Calculator {
	return &Calculator{rules: rules}
}

// RuleSet returns the rule set version this calculator evaluates.
func (c *Calculator) RuleSet() string {
	return c.rules.Version
}

// CalculateStage returns the listing's stage. Rules are evaluated top-down
// and the first match wins; a Pro tier is S3 regardless of completeness.
func (c *Calculator) CalculateStage(s Snapshot) domain.LifecycleStage {
	if s.Tier == domain.TierPro {
		return domain.StagePro
	}
	live := allMet(c.rules.Live, s)
	if live && allMet(c.rules.Optimised, s) {
		return domain.StageOptimised
	}
	if live {
		return domain.StageLive
	}
	return domain.StageIncomplete
}

// CalculateLifecycle returns the stage together with the requirements the
// listing is failing at its current boundary.
func (c *Calculator) CalculateLifecycle(s Snapshot) Progress {
	stage := c.CalculateStage(s)

	var missing []string
	switch stage {
	case domain.StageIncomplete:
		missing = unmet(c.rules.Live, s)
	case domain.StageLive:
		missing = unmet(c.rules.Optimised, s)
	}
	if missing == nil {
		missing = []string{}
	}

	return Progress{
		Stage:      stage,
		Missing:    missing,
		RuleSet:    c.rules.Version,
		NextAction: GetNextAction(stage),
	}
}

// IsFeatureUnlocked recomputes the stage and reports whether it grants f.
func (c *Calculator) IsFeatureUnlocked(s Snapshot, f Feature) bool {
	required, ok := featureStages[f]
	if !ok {
		return false
	}
	return c.CalculateStage(s).AtLeast(required)
}

var defaultCalculator = NewCalculator(CoreRules())

// CalculateStage evaluates s against the core rule set.
func CalculateStage(s Snapshot) domain.LifecycleStage {
	return defaultCalculator.CalculateStage(s)
}

// CalculateLifecycle evaluates s against the core rule set.
func CalculateLifecycle(s Snapshot) Progress {
	return defaultCalculator.CalculateLifecycle(s)
}

// IsFeatureUnlocked evaluates s against the core rule set.
func IsFeatureUnlocked(s Snapshot, f Feature) bool {
	return defaultCalculator.IsFeatureUnlocked(s, f)
}
