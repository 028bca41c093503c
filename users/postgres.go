package users

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/livrolivre/go-library-server/internal/dbx"
	apperrors "github.com/livrolivre/go-library-server/internal/errors"
)

const userColumns = "id, first_name, last_name, email, phone, password_hash, role, created_at, updated_at"

type PostgresRepo struct {
	db dbx.DBTX
}

var _ UserRepo = (*PostgresRepo)(nil)

func NewPostgresRepo(db dbx.DBTX) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Create(ctx context.Context, user *User) (*User, error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	query :=
		`INSERT INTO users (id, first_name, last_name, email, phone, password_hash, role)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.FirstName, user.LastName, user.Email, user.Phone, user.PasswordHash, user.Role).
		Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		// The unique index on lower(email) closes the duplicate-check race;
		// surface it as the typed condition rather than a raw db error.
		var pgErr *pgconn.PgError
		if apperrors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.ErrDuplicateAccount
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepo) Save(ctx context.Context, user *User) error {
	query :=
		`UPDATE users
		 SET first_name = $2, last_name = $3, email = $4, phone = $5, password_hash = $6, role = $7, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.FirstName, user.LastName, user.Email, user.Phone, user.PasswordHash, user.Role).
		Scan(&user.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepo) GetByEmailAndRole(ctx context.Context, email string, role RoleType) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1) AND role = $2`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email, role))
}

func (r *PostgresRepo) GetByIDs(ctx context.Context, ids []string) ([]*User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id IN (` + strings.Join(placeholders, ", ") + `) ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return scanAll(rows)
}

func (r *PostgresRepo) List(ctx context.Context, filter ListFilter) ([]*User, int, error) {
	var conditions []string
	var args []any

	addCondition := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if filter.Email != "" {
		args = append(args, filter.Email)
		conditions = append(conditions, fmt.Sprintf("lower(email) = lower($%d)", len(args)))
	}
	addCondition("first_name", filter.FirstName)
	addCondition("last_name", filter.LastName)
	addCondition("phone", filter.Phone)

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	perPage := filter.PerPage
	if perPage <= 0 {
		perPage = 10
	}
	offset := 0
	if filter.Page > 0 {
		offset = filter.Page * perPage
	}

	args = append(args, perPage, offset)
	query := fmt.Sprintf(`SELECT %s FROM users%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		userColumns, where, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	items, err := scanAll(rows)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *PostgresRepo) scanOne(row *sql.Row) (*User, error) {
	user := &User{}
	err := row.Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.Phone,
		&user.PasswordHash, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func scanAll(rows *sql.Rows) ([]*User, error) {
	var items []*User
	for rows.Next() {
		user := &User{}
		err := rows.Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.Phone,
			&user.PasswordHash, &user.Role, &user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		items = append(items, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return items, nil
}
