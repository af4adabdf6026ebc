package domain

// FileType represents the allowed image types for listing media.
type FileType string

const (
	FileTypeJPG  FileType = "jpg"
	FileTypePNG  FileType = "png"
	FileTypeWEBP FileType = "webp"
)

// AllowedContentTypes maps MIME content types to FileType.
var AllowedContentTypes = map[string]FileType{
	"image/jpeg": FileTypeJPG,
	"image/png":  FileTypePNG,
	"image/webp": FileTypeWEBP,
}

// UserRole is the role carried in the access token issued by the auth service.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleCreator UserRole = "creator"
)

// ListingTier is the commercial subscription level of a listing.
type ListingTier string

const (
	TierBasic ListingTier = "basic"
	TierPro   ListingTier = "pro"
)

// ValidTiers is the set of accepted tier values.
var ValidTiers = map[ListingTier]bool{
	TierBasic: true,
	TierPro:   true,
}

// LifecycleStage is the completeness stage of a listing. Stages are ordered:
// S0 < S1 < S2 < S3.
type LifecycleStage string

const (
	StageIncomplete LifecycleStage = "S0"
	StageLive       LifecycleStage = "S1"
	StageOptimised  LifecycleStage = "S2"
	StagePro        LifecycleStage = "S3"
)

var stageRank = map[LifecycleStage]int{
	StageIncomplete: 0,
	StageLive:       1,
	StageOptimised:  2,
	StagePro:        3,
}

// AtLeast reports whether s is ordered at or above other.
func (s LifecycleStage) AtLeast(other LifecycleStage) bool {
	return stageRank[s] >= stageRank[other]
}

// TriageStatus is the outcome of content triage on a listing.
type TriageStatus string

const (
	TriageStatusPending TriageStatus = "pending"
	TriageStatusSafe    TriageStatus = "safe"
	TriageStatusFlagged TriageStatus = "flagged"
)

// ReviewStatus tracks the manual review workflow for flagged listings.
type ReviewStatus string

const (
	ReviewStatusNotRequired ReviewStatus = "not_required"
	ReviewStatusPending     ReviewStatus = "pending"
	ReviewStatusApproved    ReviewStatus = "approved"
	ReviewStatusRejected    ReviewStatus = "rejected"
)
