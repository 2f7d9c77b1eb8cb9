package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/kardex-api/internal/domain/entity"
	"github.com/tu-usuario/kardex-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = "id, item_id, direction, quantity, occurred_at, actor_id, counterparty, notes, created_at"

// MovementRepo implementación de MovementRepository sobre PostgreSQL (usable con
// pool o tx). La tabla es append-only: no hay UPDATE ni DELETE.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador del kardex. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta el asiento; id (BIGSERIAL, orden de inserción) y created_at los
// asigna la base y se devuelven en el movimiento.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	query := `
		INSERT INTO stock_movements (item_id, direction, quantity, occurred_at, actor_id, counterparty, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		RETURNING id, created_at`
	err := r.q.QueryRow(context.Background(), query,
		movement.ItemID, movement.Direction, movement.Quantity, movement.OccurredAt,
		movement.ActorID, movement.Counterparty, movement.Notes,
	).Scan(&movement.ID, &movement.CreatedAt)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(id int64) (*entity.Movement, error) {
	var m entity.Movement
	err := r.q.QueryRow(context.Background(),
		`SELECT `+movementColumns+` FROM stock_movements WHERE id = $1`, id).Scan(
		&m.ID, &m.ItemID, &m.Direction, &m.Quantity, &m.OccurredAt,
		&m.ActorID, &m.Counterparty, &m.Notes, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// List lista movimientos con filtros opcionales, ordenados por occurred_at DESC
// con desempate por id DESC (orden de inserción).
func (r *MovementRepo) List(filter repository.MovementFilter) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE 1=1`
	var args []any
	pos := 1
	if filter.ItemID != "" {
		query += fmt.Sprintf(" AND item_id = $%d", pos)
		args = append(args, filter.ItemID)
		pos++
	}
	if filter.Direction != "" {
		query += fmt.Sprintf(" AND direction = $%d", pos)
		args = append(args, filter.Direction)
		pos++
	}
	if filter.ActorID != "" {
		query += fmt.Sprintf(" AND actor_id = $%d", pos)
		args = append(args, filter.ActorID)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND occurred_at >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND occurred_at <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY occurred_at DESC, id DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.ItemID, &m.Direction, &m.Quantity, &m.OccurredAt,
			&m.ActorID, &m.Counterparty, &m.Notes, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// SumByItem pliega el kardex del ítem: sum(entradas) - sum(salidas).
func (r *MovementRepo) SumByItem(itemID string) (int64, error) {
	var sum int64
	err := r.q.QueryRow(context.Background(), `
		SELECT COALESCE(SUM(CASE WHEN direction = 'in' THEN quantity ELSE -quantity END), 0)
		FROM stock_movements WHERE item_id = $1`, itemID).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum movements: %w", err)
	}
	return sum, nil
}
