package pgx

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/rjcastillo/amity/core"
)

const userColumns = `id, name, username, email, password_hash, created_at, updated_at`

func (a *Adapter) CreateUser(user *core.User) error {
	ctx := context.Background()

	query := `INSERT INTO public.users (id, name, username, email, password_hash) VALUES ($1, $2, $3, $4, $5) RETURNING created_at, updated_at`

	id := uuid.NewString()
	var createdAt, updatedAt time.Time
	err := a.pool.QueryRow(ctx, query, id, user.Name, user.Username, user.Email, user.PasswordHash).Scan(&createdAt, &updatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return core.ErrUserExists
		}
		return err
	}

	user.ID = id
	user.CreatedAt = createdAt
	user.UpdatedAt = updatedAt
	return nil
}

func (a *Adapter) GetUserByID(id string) (*core.User, error) {
	q := `SELECT ` + userColumns + ` FROM public.users WHERE id = $1`
	return a.queryUser(q, id)
}

func (a *Adapter) GetUserByUsername(username string) (*core.User, error) {
	q := `SELECT ` + userColumns + ` FROM public.users WHERE username = $1`
	return a.queryUser(q, username)
}

func (a *Adapter) GetUserByLogin(username, email string) (*core.User, error) {
	q := `SELECT ` + userColumns + ` FROM public.users WHERE username = $1 AND email = $2`
	return a.queryUser(q, username, email)
}

func (a *Adapter) GetUserByUsernameOrEmail(username, email string) (*core.User, error) {
	q := `SELECT ` + userColumns + ` FROM public.users WHERE username = $1 OR email = $2 LIMIT 1`
	return a.queryUser(q, username, email)
}

func (a *Adapter) ListUsers() ([]*core.User, error) {
	ctx := context.Background()
	q := `SELECT ` + userColumns + ` FROM public.users ORDER BY username`

	rows, err := a.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*core.User
	for rows.Next() {
		user := &core.User{}
		if err := scanUser(rows, user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (a *Adapter) queryUser(query string, args ...any) (*core.User, error) {
	ctx := context.Background()

	user := &core.User{}
	err := scanUser(a.pool.QueryRow(ctx, query, args...), user)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, core.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func scanUser(row pgx.Row, user *core.User) error {
	return row.Scan(&user.ID, &user.Name, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
}
