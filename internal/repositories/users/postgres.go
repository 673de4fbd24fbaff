package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adanyl0v/go-task-manager/internal/models"
)

type PostgresRepository struct {
	pgPool *pgxpool.Pool
}

func NewPostgresRepository(pgPool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pgPool: pgPool}
}

func (r *PostgresRepository) Insert(ctx context.Context, user *models.User) error {
	const insertUserQuery = `
INSERT INTO users (id,
                   name,
                   email,
                   password,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
`
	_, err := r.pgPool.Exec(
		ctx,
		insertUserQuery,
		user.ID,
		user.Name,
		user.Email,
		user.Password,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SelectByEmail(ctx context.Context, email string) (*models.User, error) {
	const selectUserByEmailQuery = `
SELECT id,
       name,
       password,
       created_at,
       updated_at
FROM users
WHERE email = $1
`
	user := &models.User{Email: email}
	err := r.pgPool.QueryRow(
		ctx,
		selectUserByEmailQuery,
		user.Email,
	).Scan(
		&user.ID,
		&user.Name,
		&user.Password,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to select user by email: %w", err)
	}
	return user, nil
}

func (r *PostgresRepository) SelectByID(ctx context.Context, id string) (*models.User, error) {
	const selectUserByIDQuery = `
SELECT name,
       email,
       password,
       created_at,
       updated_at
FROM users
WHERE id = $1
`
	user := &models.User{ID: id}
	err := r.pgPool.QueryRow(
		ctx,
		selectUserByIDQuery,
		user.ID,
	).Scan(
		&user.Name,
		&user.Email,
		&user.Password,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to select user by id: %w", err)
	}
	return user, nil
}
