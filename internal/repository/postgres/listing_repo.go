package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"locali/internal/domain"
	"locali/internal/port"
)

type listingRepo struct {
	db *sqlx.DB
}

// NewListingRepo creates a new PostgreSQL-backed ListingRepository.
func NewListingRepo(db *sqlx.DB) port.ListingRepository {
	return &listingRepo{db: db}
}

func (r *listingRepo) Create(ctx context.Context, l *domain.Listing) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	now := time.Now().UTC()
	l.CreatedAt = now
	l.UpdatedAt = now

	if l.ContentVersion == 0 {
		l.ContentVersion = 1
	}

	query := `INSERT INTO listings (
		id, owner_id, name, category_id, location, description,
		contact_email, phone, logo_key, tier,
		category_confirmed, policy_accepted,
		triage_status, triage_reason, triaged_at, triage_claimed_at,
		content_version, review_status, reviewer_notes,
		created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5, $6,
		$7, $8, $9, $10,
		$11, $12,
		$13, $14, $15, $16,
		$17, $18, $19,
		$20, $21
	)`

	_, err := r.db.ExecContext(ctx, query,
		l.ID, l.OwnerID, l.Name, l.CategoryID, l.Location, l.Description,
		l.ContactEmail, l.Phone, l.LogoKey, l.Tier,
		l.CategoryConfirmed, l.PolicyAccepted,
		l.TriageStatus, l.TriageReason, l.TriagedAt, l.TriageClaimedAt,
		l.ContentVersion, l.ReviewStatus, l.ReviewerNotes,
		l.CreatedAt, l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("listingRepo.Create: %w", err)
	}
	return nil
}

func (r *listingRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	var l domain.Listing
	err := r.db.GetContext(ctx, &l, "SELECT * FROM listings WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("listingRepo.GetByID: %w", err)
	}
	return &l, nil
}

func (r *listingRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]domain.Listing, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM listings WHERE owner_id = $1", ownerID)
	if err != nil {
		return nil, 0, fmt.Errorf("listingRepo.ListByOwner count: %w", err)
	}

	var listings []domain.Listing
	err = r.db.SelectContext(ctx, &listings,
		`SELECT * FROM listings WHERE owner_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		ownerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("listingRepo.ListByOwner: %w", err)
	}
	return listings, total, nil
}

// Update writes the creator-editable fields. Triage and review columns are
// only touched when contentChanged, so a concurrent verdict or review decision
// survives a completeness-only edit. l is refreshed from the stored row.
func (r *listingRepo) Update(ctx context.Context, l *domain.Listing, contentChanged bool) error {
	err := r.db.GetContext(ctx, l,
		`UPDATE listings SET
			name = $1, category_id = $2, location = $3, description = $4,
			contact_email = $5, phone = $6,
			category_confirmed = $7, policy_accepted = $8,
			triage_status = CASE WHEN $9::boolean THEN 'pending' ELSE triage_status END,
			triage_reason = CASE WHEN $9::boolean THEN NULL ELSE triage_reason END,
			triaged_at = CASE WHEN $9::boolean THEN NULL ELSE triaged_at END,
			triage_claimed_at = CASE WHEN $9::boolean THEN NULL ELSE triage_claimed_at END,
			review_status = CASE WHEN $9::boolean THEN 'not_required' ELSE review_status END,
			content_version = content_version + CASE WHEN $9::boolean THEN 1 ELSE 0 END,
			updated_at = $10
		 WHERE id = $11
		 RETURNING *`,
		l.Name, l.CategoryID, l.Location, l.Description,
		l.ContactEmail, l.Phone,
		l.CategoryConfirmed, l.PolicyAccepted,
		contentChanged, time.Now().UTC(),
		l.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrListingNotFound
		}
		return fmt.Errorf("listingRepo.Update: %w", err)
	}
	return nil
}

// UpdateTriage only applies when the row still holds contentVersion. A
// verdict computed from content that has since been edited is rejected with
// domain.ErrTriageSuperseded.
func (r *listingRepo) UpdateTriage(ctx context.Context, id uuid.UUID, contentVersion int, verdict domain.TriageVerdict, review domain.ReviewStatus) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE listings SET
			triage_status = $1, triage_reason = $2, triaged_at = $3,
			triage_claimed_at = NULL, review_status = $4, updated_at = $3
		 WHERE id = $5 AND content_version = $6`,
		verdict.Status, verdict.Reason, now, review, id, contentVersion)
	if err != nil {
		return fmt.Errorf("listingRepo.UpdateTriage: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows > 0 {
		return nil
	}

	var exists bool
	if err := r.db.GetContext(ctx, &exists, "SELECT EXISTS (SELECT 1 FROM listings WHERE id = $1)", id); err != nil {
		return fmt.Errorf("listingRepo.UpdateTriage exists: %w", err)
	}
	if !exists {
		return domain.ErrListingNotFound
	}
	return domain.ErrTriageSuperseded
}

func (r *listingRepo) ClaimPendingTriage(ctx context.Context, limit int, staleAfter time.Duration) ([]domain.Listing, error) {
	var listings []domain.Listing
	err := r.db.SelectContext(ctx, &listings,
		`UPDATE listings SET triage_claimed_at = NOW()
		 WHERE id IN (
			SELECT id FROM listings
			WHERE triage_status = 'pending'
			  AND (triage_claimed_at IS NULL OR triage_claimed_at < NOW() - make_interval(secs => $2))
			ORDER BY updated_at
			LIMIT $1
			FOR UPDATE SKIP LOCKED
		 )
		 RETURNING *`,
		limit, staleAfter.Seconds())
	if err != nil {
		return nil, fmt.Errorf("listingRepo.ClaimPendingTriage: %w", err)
	}
	return listings, nil
}

// buildDirectoryWhere returns the visibility predicate plus optional filters.
func buildDirectoryWhere(filter port.DirectoryFilter) (clause string, args []interface{}) {
	conds := []string{
		"((triage_status = 'safe' AND review_status = 'not_required') OR review_status = 'approved')",
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		conds = append(conds, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if loc := strings.TrimSpace(filter.Location); loc != "" {
		args = append(args, "%"+loc+"%")
		conds = append(conds, fmt.Sprintf("location ILIKE $%d", len(args)))
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

func (r *listingRepo) ListPublic(ctx context.Context, filter port.DirectoryFilter, offset, limit int) ([]domain.Listing, int, error) {
	where, args := buildDirectoryWhere(filter)

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM listings "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("listingRepo.ListPublic count: %w", err)
	}

	dataQuery := fmt.Sprintf(`SELECT * FROM listings %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var listings []domain.Listing
	if err := r.db.SelectContext(ctx, &listings, dataQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("listingRepo.ListPublic: %w", err)
	}
	return listings, total, nil
}

func (r *listingRepo) ListReviewQueue(ctx context.Context, offset, limit int) ([]domain.Listing, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM listings WHERE review_status = 'pending'")
	if err != nil {
		return nil, 0, fmt.Errorf("listingRepo.ListReviewQueue count: %w", err)
	}

	var listings []domain.Listing
	err = r.db.SelectContext(ctx, &listings,
		`SELECT * FROM listings WHERE review_status = 'pending'
		 ORDER BY triaged_at ASC NULLS LAST, created_at ASC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("listingRepo.ListReviewQueue: %w", err)
	}
	return listings, total, nil
}

func (r *listingRepo) SetReview(ctx context.Context, id uuid.UUID, status domain.ReviewStatus, notes string, reviewerID uuid.UUID) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE listings SET
			review_status = $1, reviewer_notes = $2, reviewed_by = $3,
			reviewed_at = $4, updated_at = $4
		 WHERE id = $5 AND review_status = 'pending'`,
		status, notes, reviewerID, now, id)
	if err != nil {
		return fmt.Errorf("listingRepo.SetReview: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotInReviewQueue
	}
	return nil
}

func (r *listingRepo) SetTier(ctx context.Context, id uuid.UUID, tier domain.ListingTier) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE listings SET tier = $1, updated_at = $2 WHERE id = $3",
		tier, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("listingRepo.SetTier: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (r *listingRepo) SetLogo(ctx context.Context, id uuid.UUID, key string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE listings SET logo_key = $1, updated_at = $2 WHERE id = $3",
		key, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("listingRepo.SetLogo: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (r *listingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM listings WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("listingRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}
