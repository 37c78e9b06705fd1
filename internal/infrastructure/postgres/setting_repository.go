package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/factura-pyme/internal/domain/entity"
	"github.com/tu-usuario/factura-pyme/internal/domain/repository"
)

var _ repository.SettingRepository = (*SettingRepo)(nil)

// SettingRepo implementación de SettingRepository (usable con pool o tx).
type SettingRepo struct {
	q Querier
}

// NewSettingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSettingRepository(q Querier) *SettingRepo {
	return &SettingRepo{q: q}
}

// Get devuelve el valor de la clave o def si no existe.
func (r *SettingRepo) Get(key, def string) (string, error) {
	var value string
	err := r.q.QueryRow(context.Background(),
		`SELECT value FROM settings WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return def, nil
		}
		return "", fmt.Errorf("get setting: %w", err)
	}
	return value, nil
}

// Set crea o actualiza la clave (upsert).
func (r *SettingRepo) Set(key, value string) error {
	query := `
		INSERT INTO settings (id, key, value, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query, uuid.New().String(), key, value, time.Now())
	if err != nil {
		return fmt.Errorf("set setting: %w", err)
	}
	return nil
}

// All devuelve todas las claves persistidas.
func (r *SettingRepo) All() ([]*entity.Setting, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, key, value, updated_at FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()
	var list []*entity.Setting
	for rows.Next() {
		var s entity.Setting
		if err := rows.Scan(&s.ID, &s.Key, &s.Value, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
