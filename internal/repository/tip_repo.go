package repository

import (
	"context"
	"fmt"

	"github.com/yusufkecer/fitness-tracker-backend/internal/domain"
)

const tipColumns = `id, title, content, category, icon_name, created_at`

func scanTip(row rowScanner) (*domain.Tip, error) {
	var t domain.Tip
	if err := row.Scan(&t.ID, &t.Title, &t.Content, &t.Category, &t.IconName, timeColumn{&t.CreatedAt}); err != nil {
		return nil, err
	}
	return &t, nil
}

// GetTips loads the matching tips and samples them in process, so every
// engine shares the injected shuffler.
func (s *SQLStore) GetTips(ctx context.Context, category string, limit int) ([]domain.Tip, error) {
	query := `SELECT ` + tipColumns + ` FROM tips`
	var args []interface{}
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY id ASC`

	rows, err := s.query(ctx, s.db, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tips: %w", err)
	}
	defer rows.Close()

	tips := []domain.Tip{}
	for rows.Next() {
		t, err := scanTip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tip: %w", err)
		}
		tips = append(tips, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list tips: %w", err)
	}
	return pickTips(tips, limit, s.opts.shuffle), nil
}

func (s *SQLStore) GetTip(ctx context.Context, id int64) (*domain.Tip, error) {
	t, err := scanTip(s.queryRow(ctx, s.db, `SELECT `+tipColumns+` FROM tips WHERE id = ?`, id))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tip: %w", err)
	}
	return t, nil
}

func (s *SQLStore) CreateTip(ctx context.Context, in domain.NewTip) (*domain.Tip, error) {
	createdAt := s.now()
	id, err := s.insert(ctx, s.db,
		`INSERT INTO tips (title, content, category, icon_name, created_at) VALUES (?, ?, ?, ?, ?)`,
		in.Title, in.Content, in.Category, in.IconName, formatTime(createdAt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tip: %w", err)
	}
	return &domain.Tip{
		ID:        id,
		Title:     in.Title,
		Content:   in.Content,
		Category:  in.Category,
		IconName:  in.IconName,
		CreatedAt: createdAt,
	}, nil
}
