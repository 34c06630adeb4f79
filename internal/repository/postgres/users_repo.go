package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/selimacar/exercise-tracker/internal/models"
	"github.com/selimacar/exercise-tracker/internal/repository"
)

type usersRepo struct{ pool *pgxpool.Pool }

func NewUsers(pool *pgxpool.Pool) repository.Users {
	return &usersRepo{pool: pool}
}

func (r *usersRepo) List(ctx context.Context) ([]models.UserRef, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, username FROM users ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.UserRef
	for rows.Next() {
		var u models.UserRef
		if err := rows.Scan(&u.ID, &u.Username); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	return r.getOne(ctx, `SELECT id, username, log, count FROM users WHERE id=$1`, id)
}

func (r *usersRepo) GetByUsername(ctx context.Context, username string) (models.User, error) {
	return r.getOne(ctx, `SELECT id, username, log, count FROM users WHERE username=$1`, username)
}

func (r *usersRepo) getOne(ctx context.Context, q, arg string) (models.User, error) {
	var u models.User
	var rawLog []byte
	err := r.pool.QueryRow(ctx, q, arg).Scan(&u.ID, &u.Username, &rawLog, &u.Count)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, repository.ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	if err := json.Unmarshal(rawLog, &u.Log); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (r *usersRepo) InsertIfAbsent(ctx context.Context, u models.User) (models.User, error) {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users(id, username) VALUES($1,$2) ON CONFLICT (username) DO NOTHING`,
		u.ID, u.Username,
	)
	if err != nil {
		return models.User{}, err
	}
	return r.GetByUsername(ctx, u.Username)
}

func (r *usersRepo) Save(ctx context.Context, u models.User) error {
	b, err := json.Marshal(u.Log)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx,
		`UPDATE users SET log=$2::jsonb, count=$3 WHERE id=$1`,
		u.ID, string(b), u.Count,
	)
	return err
}
