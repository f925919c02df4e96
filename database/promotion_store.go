package database

import (
	"database/sql"
	"fmt"

	"train-booking/domain"
)

// PostgresPromotionStore persists promotions.
type PostgresPromotionStore struct {
	db *sql.DB
}

func NewPostgresPromotionStore(db *sql.DB) *PostgresPromotionStore {
	return &PostgresPromotionStore{db: db}
}

// SavePromotion inserts a promotion; names are unique at the schema level too.
func (s *PostgresPromotionStore) SavePromotion(p domain.Promotion) error {
	_, err := s.db.Exec(`
		INSERT INTO promotions (id, name, discount_percent, kind)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING
	`, p.ID, p.Name, p.DiscountPercent, string(p.Kind))
	if err != nil {
		return fmt.Errorf("save promotion %q: %w", p.Name, err)
	}
	return nil
}

// LoadPromotions rehydrates every persisted promotion.
func (s *PostgresPromotionStore) LoadPromotions() ([]domain.Promotion, error) {
	rows, err := s.db.Query(`SELECT id, name, discount_percent, kind FROM promotions ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("load promotions: %w", err)
	}
	defer rows.Close()

	var promotions []domain.Promotion
	for rows.Next() {
		var id, name, kind string
		var pct float64
		if err := rows.Scan(&id, &name, &pct, &kind); err != nil {
			return nil, fmt.Errorf("scan promotion: %w", err)
		}
		p, err := domain.RehydratePromotion(id, name, pct, domain.PromotionKind(kind))
		if err != nil {
			return nil, fmt.Errorf("rehydrate promotion %q: %w", name, err)
		}
		promotions = append(promotions, p)
	}
	return promotions, rows.Err()
}
