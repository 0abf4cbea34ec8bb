package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/dafibh/fortuna/portfolio-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BannerRepository implements domain.BannerRepository using PostgreSQL
type BannerRepository struct {
	pool *pgxpool.Pool
}

// NewBannerRepository creates a new BannerRepository
func NewBannerRepository(pool *pgxpool.Pool) *BannerRepository {
	return &BannerRepository{pool: pool}
}

const bannerColumns = `id, priority, dismissable, message_key, status, link_label_key, link_url, icon_path`

// ListActive returns active banners in declaration order
func (r *BannerRepository) ListActive(ctx context.Context) ([]domain.Banner, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+bannerColumns+`
		FROM banners
		WHERE active
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list banners: %w", err)
	}
	defer rows.Close()

	banners := []domain.Banner{}
	for rows.Next() {
		banner, err := scanBanner(rows)
		if err != nil {
			return nil, err
		}
		banners = append(banners, *banner)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list banners: %w", err)
	}
	return banners, nil
}

// GetByID retrieves a banner by ID
func (r *BannerRepository) GetByID(ctx context.Context, id string) (*domain.Banner, error) {
	return scanBanner(r.pool.QueryRow(ctx, `SELECT `+bannerColumns+` FROM banners WHERE id = $1`, id))
}

// UpdateIconPath stores the object path of a banner icon
func (r *BannerRepository) UpdateIconPath(ctx context.Context, id string, iconPath string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE banners SET icon_path = $2 WHERE id = $1`, id, iconPath)
	if err != nil {
		return fmt.Errorf("failed to update banner icon: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBannerNotFound
	}
	return nil
}

func scanBanner(row pgx.Row) (*domain.Banner, error) {
	b := &domain.Banner{}
	var status string
	err := row.Scan(
		&b.ID,
		&b.Priority,
		&b.Dismissable,
		&b.Content.MessageKey,
		&status,
		&b.Content.LinkLabelKey,
		&b.Content.LinkURL,
		&b.Content.IconPath,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrBannerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan banner: %w", err)
	}
	b.Content.Status = domain.BannerStatus(status)
	return b, nil
}
