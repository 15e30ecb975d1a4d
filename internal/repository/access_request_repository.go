package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"accessdesk/internal/domain"
)

type AccessRequestFilter struct {
	Status     *domain.RequestStatus
	EmployeeID *uuid.UUID
	SystemID   *uuid.UUID
}

type SystemRequestCount struct {
	SystemID   uuid.UUID `db:"system_id" json:"system_id"`
	SystemName *string   `db:"system_name" json:"system_name"`
	Count      int64     `db:"count" json:"count"`
}

type AccessRequestRepository interface {
	Create(ctx context.Context, req *domain.AccessRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AccessRequest, error)
	List(ctx context.Context, filter AccessRequestFilter, params domain.PaginationParams) ([]domain.AccessRequest, int64, error)
	Update(ctx context.Context, req *domain.AccessRequest) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ApplySupervisorDecision upserts the entry by (approver, role) and
	// recomputes the request status from the full entry set, all inside one
	// transaction holding the request row lock.
	ApplySupervisorDecision(ctx context.Context, requestID uuid.UUID, entry domain.SupervisorApproval) (*domain.AccessRequest, error)

	// ApplyGrants upserts every grant by (approver, access type) and marks the
	// request approved in the same transaction. Callers must have validated
	// the grant list beforehand; nothing is applied piecemeal.
	ApplyGrants(ctx context.Context, requestID uuid.UUID, grants []domain.PermissionGrant) (*domain.AccessRequest, error)

	// RejectByIT clears all grants and sets the request rejected.
	RejectByIT(ctx context.Context, requestID uuid.UUID) (*domain.AccessRequest, error)

	// ExpireDue transitions every temporary, not-yet-expired request whose end
	// date has passed. The is_expired guard makes it idempotent. Returns the
	// transitioned requests so callers can fan out notifications.
	ExpireDue(ctx context.Context, now time.Time) ([]domain.AccessRequest, error)

	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) (map[domain.RequestStatus]int64, error)
	MostRequestedSystems(ctx context.Context, limit int) ([]SystemRequestCount, error)
}

type accessRequestRepository struct {
	db *sqlx.DB
}

func NewAccessRequestRepository(db *sqlx.DB) AccessRequestRepository {
	return &accessRequestRepository{db: db}
}

func (r *accessRequestRepository) Create(ctx context.Context, req *domain.AccessRequest) error {
	query := `
		INSERT INTO access_requests (
			id, employee_id, system_id,
			employee_full_name, employee_email, employee_code, employee_job_title, employee_department,
			system_name, system_type, security_level,
			justification, business_purpose, urgency_level, duration_type,
			requested_start_date, requested_end_date, status, is_expired
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		req.ID, req.EmployeeID, req.SystemID,
		req.EmployeeFullName, req.EmployeeEmail, req.EmployeeCode, req.EmployeeJobTitle, req.EmployeeDepartment,
		req.SystemName, req.SystemType, req.SecurityLevel,
		req.Justification, req.BusinessPurpose, req.UrgencyLevel, req.DurationType,
		req.RequestedStartDate, req.RequestedEndDate, req.Status, req.IsExpired,
	).Scan(&req.CreatedAt, &req.UpdatedAt)
}

func (r *accessRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.AccessRequest, error) {
	var req domain.AccessRequest
	if err := r.db.GetContext(ctx, &req, `SELECT * FROM access_requests WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("access request")
		}
		return nil, err
	}

	if err := r.loadChildren(ctx, r.db, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *accessRequestRepository) loadChildren(ctx context.Context, q sqlx.QueryerContext, req *domain.AccessRequest) error {
	req.SupervisorApprovals = []domain.SupervisorApproval{}
	req.GrantedPermissions = []domain.PermissionGrant{}

	if err := sqlx.SelectContext(ctx, q, &req.SupervisorApprovals,
		`SELECT * FROM supervisor_approvals WHERE request_id = $1 ORDER BY decided_at, id`, req.ID); err != nil {
		return err
	}
	return sqlx.SelectContext(ctx, q, &req.GrantedPermissions,
		`SELECT * FROM permission_grants WHERE request_id = $1 ORDER BY access_granted_date, id`, req.ID)
}

func (r *accessRequestRepository) List(ctx context.Context, filter AccessRequestFilter, params domain.PaginationParams) ([]domain.AccessRequest, int64, error) {
	params.Validate()

	where := " WHERE 1=1"
	args := []interface{}{}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		where += " AND status = $" + itoa(len(args))
	}
	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		where += " AND employee_id = $" + itoa(len(args))
	}
	if filter.SystemID != nil {
		args = append(args, *filter.SystemID)
		where += " AND system_id = $" + itoa(len(args))
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM access_requests`+where, args...); err != nil {
		return nil, 0, err
	}

	args = append(args, params.PageSize, params.Offset())
	query := `SELECT * FROM access_requests` + where +
		` ORDER BY created_at DESC LIMIT $` + itoa(len(args)-1) + ` OFFSET $` + itoa(len(args))

	var requests []domain.AccessRequest
	if err := r.db.SelectContext(ctx, &requests, query, args...); err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

func (r *accessRequestRepository) Update(ctx context.Context, req *domain.AccessRequest) error {
	query := `
		UPDATE access_requests SET
			employee_id = $2, system_id = $3,
			employee_full_name = $4, employee_email = $5, employee_code = $6,
			employee_job_title = $7, employee_department = $8,
			system_name = $9, system_type = $10, security_level = $11,
			justification = $12, business_purpose = $13, urgency_level = $14,
			duration_type = $15, requested_start_date = $16, requested_end_date = $17,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		req.ID, req.EmployeeID, req.SystemID,
		req.EmployeeFullName, req.EmployeeEmail, req.EmployeeCode,
		req.EmployeeJobTitle, req.EmployeeDepartment,
		req.SystemName, req.SystemType, req.SecurityLevel,
		req.Justification, req.BusinessPurpose, req.UrgencyLevel,
		req.DurationType, req.RequestedStartDate, req.RequestedEndDate,
	).Scan(&req.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFoundError("access request")
	}
	return err
}

func (r *accessRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM access_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFoundError("access request")
	}
	return nil
}

func (r *accessRequestRepository) ApplySupervisorDecision(ctx context.Context, requestID uuid.UUID, entry domain.SupervisorApproval) (*domain.AccessRequest, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var req domain.AccessRequest
	if err := tx.GetContext(ctx, &req, `SELECT * FROM access_requests WHERE id = $1 FOR UPDATE`, requestID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("access request")
		}
		return nil, err
	}

	upsert := `
		INSERT INTO supervisor_approvals (id, request_id, approver_id, role, decision, comments, decided_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (request_id, approver_id, role)
		DO UPDATE SET decision = EXCLUDED.decision, comments = EXCLUDED.comments, decided_at = EXCLUDED.decided_at`
	if _, err := tx.ExecContext(ctx, upsert,
		entry.ID, requestID, entry.ApproverID, entry.Role, entry.Decision, entry.Comments, entry.DecidedAt,
	); err != nil {
		return nil, err
	}

	var approvals []domain.SupervisorApproval
	if err := tx.SelectContext(ctx, &approvals,
		`SELECT * FROM supervisor_approvals WHERE request_id = $1 ORDER BY decided_at, id`, requestID); err != nil {
		return nil, err
	}

	status := domain.SupervisorOutcome(approvals)
	if err := tx.GetContext(ctx, &req,
		`UPDATE access_requests SET status = $2, updated_at = NOW() WHERE id = $1 RETURNING *`,
		requestID, status); err != nil {
		return nil, err
	}

	req.SupervisorApprovals = approvals
	req.GrantedPermissions = []domain.PermissionGrant{}
	if err := tx.SelectContext(ctx, &req.GrantedPermissions,
		`SELECT * FROM permission_grants WHERE request_id = $1 ORDER BY access_granted_date, id`, requestID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *accessRequestRepository) ApplyGrants(ctx context.Context, requestID uuid.UUID, grants []domain.PermissionGrant) (*domain.AccessRequest, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var req domain.AccessRequest
	if err := tx.GetContext(ctx, &req, `SELECT * FROM access_requests WHERE id = $1 FOR UPDATE`, requestID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("access request")
		}
		return nil, err
	}

	upsert := `
		INSERT INTO permission_grants (
			id, request_id, approver_id, access_type_id, type_name,
			can_read, can_insert, can_update, can_delete,
			comments, access_granted_date, access_expiry_date, is_access_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (request_id, approver_id, access_type_id)
		DO UPDATE SET
			type_name = EXCLUDED.type_name,
			can_read = EXCLUDED.can_read, can_insert = EXCLUDED.can_insert,
			can_update = EXCLUDED.can_update, can_delete = EXCLUDED.can_delete,
			comments = EXCLUDED.comments,
			access_granted_date = EXCLUDED.access_granted_date,
			access_expiry_date = EXCLUDED.access_expiry_date,
			is_access_active = EXCLUDED.is_access_active`

	for _, g := range grants {
		if _, err := tx.ExecContext(ctx, upsert,
			g.ID, requestID, g.ApproverID, g.AccessTypeID, g.TypeName,
			g.CanRead, g.CanInsert, g.CanUpdate, g.CanDelete,
			g.Comments, g.AccessGrantedDate, g.AccessExpiryDate, g.IsAccessActive,
		); err != nil {
			return nil, err
		}
	}

	if err := tx.GetContext(ctx, &req,
		`UPDATE access_requests SET status = $2, updated_at = NOW() WHERE id = $1 RETURNING *`,
		requestID, domain.StatusApproved); err != nil {
		return nil, err
	}

	if err := r.loadChildrenTx(ctx, tx, &req); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *accessRequestRepository) RejectByIT(ctx context.Context, requestID uuid.UUID) (*domain.AccessRequest, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var req domain.AccessRequest
	if err := tx.GetContext(ctx, &req, `SELECT * FROM access_requests WHERE id = $1 FOR UPDATE`, requestID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("access request")
		}
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM permission_grants WHERE request_id = $1`, requestID); err != nil {
		return nil, err
	}

	if err := tx.GetContext(ctx, &req,
		`UPDATE access_requests SET status = $2, updated_at = NOW() WHERE id = $1 RETURNING *`,
		requestID, domain.StatusRejected); err != nil {
		return nil, err
	}

	if err := r.loadChildrenTx(ctx, tx, &req); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *accessRequestRepository) loadChildrenTx(ctx context.Context, tx *sqlx.Tx, req *domain.AccessRequest) error {
	req.SupervisorApprovals = []domain.SupervisorApproval{}
	req.GrantedPermissions = []domain.PermissionGrant{}

	if err := tx.SelectContext(ctx, &req.SupervisorApprovals,
		`SELECT * FROM supervisor_approvals WHERE request_id = $1 ORDER BY decided_at, id`, req.ID); err != nil {
		return err
	}
	return tx.SelectContext(ctx, &req.GrantedPermissions,
		`SELECT * FROM permission_grants WHERE request_id = $1 ORDER BY access_granted_date, id`, req.ID)
}

func (r *accessRequestRepository) ExpireDue(ctx context.Context, now time.Time) ([]domain.AccessRequest, error) {
	query := `
		UPDATE access_requests
		SET status = $1, is_expired = TRUE, updated_at = NOW()
		WHERE duration_type = $2
		  AND is_expired = FALSE
		  AND requested_end_date IS NOT NULL
		  AND requested_end_date <= $3
		RETURNING *`

	var expired []domain.AccessRequest
	if err := r.db.SelectContext(ctx, &expired, query, domain.StatusExpired, domain.DurationTemporary, now); err != nil {
		return nil, err
	}
	return expired, nil
}

func (r *accessRequestRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM access_requests`)
	return total, err
}

func (r *accessRequestRepository) CountByStatus(ctx context.Context) (map[domain.RequestStatus]int64, error) {
	rows, err := r.db.QueryxContext(ctx, `SELECT status, COUNT(*) FROM access_requests GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.RequestStatus]int64)
	for rows.Next() {
		var status domain.RequestStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (r *accessRequestRepository) MostRequestedSystems(ctx context.Context, limit int) ([]SystemRequestCount, error) {
	if limit < 1 {
		limit = 5
	}
	query := `
		SELECT system_id, MAX(system_name) AS system_name, COUNT(*) AS count
		FROM access_requests
		GROUP BY system_id
		ORDER BY count DESC
		LIMIT $1`

	var out []SystemRequestCount
	if err := r.db.SelectContext(ctx, &out, query, limit); err != nil {
		return nil, err
	}
	return out, nil
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
