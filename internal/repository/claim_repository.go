package repository

import (
	"context"
	"encoding/json"
	"time"

	"valor-assist/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var claimColumns = []string{
	"id", "first_name", "last_name", "email", "phone", "branch", "service_start_date", "service_end_date",
	"discharge_type", "claim_types", "description", "status", "analysis", "user_id", "created_at", "updated_at",
}

type ClaimRepository struct {
	db     DBTX
	logger *zap.Logger
}

func NewClaimRepository(db DBTX, logger *zap.Logger) *ClaimRepository {
	return &ClaimRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ClaimRepository) Create(ctx context.Context, claim *models.Claim) error {
	now := time.Now().UTC()
	claim.CreatedAt = now
	claim.UpdatedAt = now
	if claim.Status == "" {
		claim.Status = models.ClaimStatusSubmitted
	}

	sql, args, err := psql.Insert("claims").
		Columns("first_name", "last_name", "email", "phone", "branch", "service_start_date", "service_end_date",
			"discharge_type", "claim_types", "description", "status", "analysis", "user_id", "created_at", "updated_at").
		Values(claim.FirstName, claim.LastName, claim.Email, claim.Phone, claim.Branch, claim.ServiceStartDate, claim.ServiceEndDate,
			claim.DischargeType, claim.ClaimTypes, claim.Description, claim.Status, nullableJSON(claim.Analysis), claim.UserID,
			claim.CreatedAt, claim.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return err
	}

	return translateError(r.db.QueryRow(ctx, sql, args...).Scan(&claim.ID))
}

func (r *ClaimRepository) GetByID(ctx context.Context, id int64) (*models.Claim, error) {
	sql, args, err := psql.Select(claimColumns...).
		From("claims").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	claim, err := scanClaim(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, translateError(err)
	}
	return claim, nil
}

func (r *ClaimRepository) ListByEmail(ctx context.Context, email string) ([]*models.Claim, error) {
	return r.list(ctx, psql.Select(claimColumns...).
		From("claims").
		Where(squirrel.Eq{"email": email}).
		OrderBy("created_at DESC"))
}

func (r *ClaimRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*models.Claim, error) {
	return r.list(ctx, psql.Select(claimColumns...).
		From("claims").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)))
}

func (r *ClaimRepository) ListRecent(ctx context.Context, limit, offset int) ([]*models.Claim, error) {
	return r.list(ctx, psql.Select(claimColumns...).
		From("claims").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)))
}

// UpdateAnalysis stores the AI analysis output and moves the claim to status.
func (r *ClaimRepository) UpdateAnalysis(ctx context.Context, id int64, analysis json.RawMessage, status string) error {
	sql, args, err := psql.Update("claims").
		Set("analysis", nullableJSON(analysis)).
		Set("status", status).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ClaimRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	sql, args, err := psql.Update("claims").
		Set("status", status).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ClaimRepository) list(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Claim, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	claims := []*models.Claim{}
	for rows.Next() {
		claim, err := scanClaim(rows)
		if err != nil {
			return nil, err
		}
		claims = append(claims, claim)
	}

	return claims, rows.Err()
}

func scanClaim(row pgx.Row) (*models.Claim, error) {
	var claim models.Claim
	err := row.Scan(
		&claim.ID, &claim.FirstName, &claim.LastName, &claim.Email, &claim.Phone, &claim.Branch,
		&claim.ServiceStartDate, &claim.ServiceEndDate, &claim.DischargeType, &claim.ClaimTypes,
		&claim.Description, &claim.Status, &claim.Analysis, &claim.UserID, &claim.CreatedAt, &claim.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &claim, nil
}
