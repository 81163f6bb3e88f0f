package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/roomshare/api/internal/entity"
	"github.com/octobees/roomshare/api/internal/search"
)

var ErrRoomRequestNotFound = errors.New("room request not found")

// RoomRequestsRepository describes persistence operations for room requests.
type RoomRequestsRepository interface {
	Create(ctx context.Context, req *entity.RoomRequest) (*entity.RoomRequest, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.RoomRequest, error)
	List(ctx context.Context) ([]entity.RoomRequest, error)
	Search(ctx context.Context, query search.Query) ([]entity.RoomRequest, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

var roomRequestColumns = map[string]string{
	search.FieldLocation: "r.location",
	search.FieldCity:     "r.city",
	search.FieldArea:     "r.area",
	search.FieldName:     "r.name",
	search.FieldGender:   "r.gender",
	search.FieldBudget:   "r.budget",
}

const roomRequestSelect = `r.id, r.user_id, r.name, r.number, r.city, r.area, r.location, r.budget, r.gender, r.photo, r.created_at, r.updated_at`

// PGXRoomRequestsRepository implements RoomRequestsRepository using pgx.
type PGXRoomRequestsRepository struct {
	pool pgxPool
}

// NewPGXRoomRequestsRepository wires a pgx backed repository.
func NewPGXRoomRequestsRepository(pool *pgxpool.Pool) *PGXRoomRequestsRepository {
	return &PGXRoomRequestsRepository{pool: pool}
}

// Create stores a room request.
func (r *PGXRoomRequestsRepository) Create(ctx context.Context, req *entity.RoomRequest) (*entity.RoomRequest, error) {
	if req == nil {
		return nil, fmt.Errorf("room request payload is nil")
	}

	row := r.pool.QueryRow(ctx, `
        INSERT INTO room_requests AS r (user_id, name, number, city, area, location, budget, gender, photo)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING `+roomRequestSelect,
		req.UserID, req.Name, req.Number, req.City, req.Area, req.Location, req.Budget, req.Gender, req.Photo)

	stored, err := scanRoomRequest(row)
	if err != nil {
		return nil, fmt.Errorf("insert room request: %w", err)
	}
	return stored, nil
}

// FindByID retrieves a room request by identifier.
func (r *PGXRoomRequestsRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.RoomRequest, error) {
	stored, err := scanRoomRequest(r.pool.QueryRow(ctx, `SELECT `+roomRequestSelect+` FROM room_requests r WHERE r.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRoomRequestNotFound
		}
		return nil, fmt.Errorf("query room request by id: %w", err)
	}
	return stored, nil
}

// List returns every room request, newest first.
func (r *PGXRoomRequestsRepository) List(ctx context.Context) ([]entity.RoomRequest, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+roomRequestSelect+` FROM room_requests r ORDER BY r.created_at DESC, r.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list room requests: %w", err)
	}
	defer rows.Close()

	return scanRoomRequests(rows)
}

// Search executes a built query against room requests, capped in creation order.
func (r *PGXRoomRequestsRepository) Search(ctx context.Context, query search.Query) ([]entity.RoomRequest, error) {
	if query.Predicate.MatchNone {
		return []entity.RoomRequest{}, nil
	}

	where, args, err := whereClause(query.Predicate, roomRequestColumns, 1)
	if err != nil {
		return nil, err
	}

	sql := strings.Builder{}
	sql.WriteString(`SELECT ` + roomRequestSelect + ` FROM room_requests r`)
	if where != "" {
		sql.WriteString(" WHERE ")
		sql.WriteString(where)
	}
	sql.WriteString(fmt.Sprintf(" ORDER BY r.created_at ASC, r.id ASC LIMIT $%d", len(args)+1))
	args = append(args, query.Cap)

	rows, err := r.pool.Query(ctx, sql.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("search room requests: %w", err)
	}
	defer rows.Close()

	return scanRoomRequests(rows)
}

// Delete removes a room request by id.
func (r *PGXRoomRequestsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM room_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete room request: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrRoomRequestNotFound
	}
	return nil
}

func scanRoomRequest(row scanner) (*entity.RoomRequest, error) {
	var rr entity.RoomRequest
	err := row.Scan(
		&rr.ID,
		&rr.UserID,
		&rr.Name,
		&rr.Number,
		&rr.City,
		&rr.Area,
		&rr.Location,
		&rr.Budget,
		&rr.Gender,
		&rr.Photo,
		&rr.CreatedAt,
		&rr.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rr, nil
}

func scanRoomRequests(rows pgx.Rows) ([]entity.RoomRequest, error) {
	out := make([]entity.RoomRequest, 0)
	for rows.Next() {
		rr, err := scanRoomRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan room request: %w", err)
		}
		out = append(out, *rr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate room requests: %w", err)
	}
	return out, nil
}
