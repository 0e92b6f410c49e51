package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/domain"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

type Repos struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Repos { return &Repos{db: db} }

// calculationRow mirrors the calculations table. JSON columns stay as text so
// the same row works on Postgres and SQLite.
type calculationRow struct {
	ID        string `db:"id"`
	Kind      string `db:"kind"`
	Request   string `db:"request"`
	Result    string `db:"result"`
	Compliant bool   `db:"compliant"`
	CreatedAt int64  `db:"created_at"`
}

func toRow(c *domain.Calculation) (calculationRow, error) {
	result, err := json.Marshal(c.Result)
	if err != nil {
		return calculationRow{}, fmt.Errorf("encode result: %w", err)
	}
	request := string(c.Request)
	if request == "" {
		request = "{}"
	}
	return calculationRow{
		ID:        c.ID,
		Kind:      string(c.Kind),
		Request:   request,
		Result:    string(result),
		Compliant: c.Result.Compliant,
		CreatedAt: c.CreatedAt.UnixMilli(),
	}, nil
}

func (r calculationRow) toDomain() (domain.Calculation, error) {
	c := domain.Calculation{
		ID:        r.ID,
		Kind:      domain.Kind(r.Kind),
		Request:   json.RawMessage(r.Request),
		CreatedAt: time.UnixMilli(r.CreatedAt).UTC(),
	}
	if err := json.Unmarshal([]byte(r.Result), &c.Result); err != nil {
		return domain.Calculation{}, fmt.Errorf("decode result of %s: %w", r.ID, err)
	}
	return c, nil
}

func (r *Repos) SaveCalculation(ctx context.Context, c *domain.Calculation) error {
	row, err := toRow(c)
	if err != nil {
		return err
	}
	_, err = r.db.NamedExecContext(ctx, `INSERT INTO calculations (id, kind, request, result, compliant, created_at)
		VALUES (:id, :kind, :request, :result, :compliant, :created_at)`, row)
	return err
}

func (r *Repos) GetCalculation(ctx context.Context, id string) (domain.Calculation, error) {
	var row calculationRow
	err := r.db.GetContext(ctx, &row, r.db.Rebind(`SELECT id, kind, request, result, compliant, created_at
		FROM calculations WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Calculation{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Calculation{}, err
	}
	return row.toDomain()
}

// ListCalculations returns the newest calculations first.
func (r *Repos) ListCalculations(ctx context.Context, f domain.ListFilter) ([]domain.Calculation, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	query := `SELECT id, kind, request, result, compliant, created_at FROM calculations`
	args := []any{}
	if f.Kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, string(f.Kind))
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	var rows []calculationRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	out := make([]domain.Calculation, 0, len(rows))
	for _, row := range rows {
		c, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
