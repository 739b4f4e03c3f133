package repository

import (
	"context"
	"fmt"

	"github.com/yusufkecer/fitness-tracker-backend/internal/domain"
)

const userColumns = `id, username, password, name, email`

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.Password, &u.Name, &u.Email); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *SQLStore) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	u, err := scanUser(s.queryRow(ctx, s.db, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

func (s *SQLStore) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, err := scanUser(s.queryRow(ctx, s.db, `SELECT `+userColumns+` FROM users WHERE username = ?`, username))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

func (s *SQLStore) CreateUser(ctx context.Context, in domain.NewUser) (*domain.User, error) {
	id, err := s.insert(ctx, s.db,
		`INSERT INTO users (username, password, name, email) VALUES (?, ?, ?, ?)`,
		in.Username, in.Password, in.Name, in.Email,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &domain.User{
		ID:       id,
		Username: in.Username,
		Password: in.Password,
		Name:     in.Name,
		Email:    in.Email,
	}, nil
}
