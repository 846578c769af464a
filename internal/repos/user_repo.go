package repos

import (
	"context"

	"bookstore/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ db *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	out := []domain.User{}
	err := r.db.SelectContext(ctx, &out, `SELECT id, name, role FROM users ORDER BY id`)
	return out, err
}

func (r *UserRepo) ByRole(ctx context.Context, role string) ([]domain.User, error) {
	out := []domain.User{}
	err := r.db.SelectContext(ctx, &out, `SELECT id, name, role FROM users WHERE role = ? ORDER BY id`, role)
	return out, err
}

// ByID returns sql.ErrNoRows when the user does not exist.
func (r *UserRepo) ByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	if err := r.db.GetContext(ctx, &u, `SELECT id, name, role FROM users WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Create(ctx context.Context, name, role string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO users(name, role) VALUES(?, ?)`, name, role)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *UserRepo) Update(ctx context.Context, id int64, name, role string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET name = ?, role = ? WHERE id = ?`, name, role, id)
	return affected(res, err)
}

// Delete removes only the user row; books, carts and orders keep their references.
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	return affected(res, err)
}
