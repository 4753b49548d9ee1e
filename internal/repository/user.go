package repository

import (
	"context"
	"fmt"

	"github.com/duallane/go-shop-api/internal/database"
	"github.com/duallane/go-shop-api/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

type userRepo struct{ db database.Store }

func NewUserRepository(db database.Store) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	res, err := r.db.Execute(ctx,
		`INSERT INTO users (email, password_hash, name) VALUES (?, ?, ?)`,
		user.Email, user.PasswordHash, user.Name,
	)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	user.ID = res.InsertID
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	res, err := r.db.Execute(ctx,
		`SELECT id, email, password_hash, name, created_at FROM users WHERE id = ?`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	if len(res.Rows) == 0 {
		return nil, nil
	}
	return rowToUser(res.Rows[0]), nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	res, err := r.db.Execute(ctx,
		`SELECT id, email, password_hash, name, created_at FROM users WHERE email = ?`, email,
	)
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	if len(res.Rows) == 0 {
		return nil, nil
	}
	return rowToUser(res.Rows[0]), nil
}

func rowToUser(row database.Row) *model.User {
	return &model.User{
		ID:           row.Int64("id"),
		Email:        row.String("email"),
		PasswordHash: row.String("password_hash"),
		Name:         row.String("name"),
		CreatedAt:    row.Time("created_at"),
	}
}
