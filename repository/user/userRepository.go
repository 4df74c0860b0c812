package userrepo

import (
	"context"
	"database/sql"

	"github.com/Diba-Dev/leafora-marketplace/model"
)

type Repo interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
	UpdateProfile(ctx context.Context, id int64, fullName, email, phone, address string) error
	List(ctx context.Context) ([]model.User, error)
	RoleByID(ctx context.Context, id int64) (model.Role, error)
	UpdateRole(ctx context.Context, id int64, role model.Role) error
	Delete(ctx context.Context, id int64) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) ByID(ctx context.Context, id int64) (*model.User, error) {
	u := &model.User{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, full_name, email, password_hash, phone, address, role, created_at
		FROM users
		WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.Phone, &u.Address, &u.Role, &u.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func (r *repo) UpdateProfile(ctx context.Context, id int64, fullName, email, phone, address string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET full_name=$2, email=$3, phone=$4, address=$5
		WHERE id=$1`,
		id, fullName, email, phone, address)
	return err
}

func (r *repo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, full_name, email, phone, address, role, created_at
		FROM users
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.FullName, &u.Email, &u.Phone, &u.Address, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *repo) RoleByID(ctx context.Context, id int64) (model.Role, error) {
	const q = `SELECT role FROM users WHERE id = $1`
	var role model.Role
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&role); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return role, nil
}

func (r *repo) UpdateRole(ctx context.Context, id int64, role model.Role) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET role=$2 WHERE id=$1`, id, role)
	return err
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id=$1`, id)
	return err
}
