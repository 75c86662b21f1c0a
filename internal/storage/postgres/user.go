package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"news_portal/internal/domain"
)

const userColumns = `id, email, first_name, last_name, profile_image_url,
	is_admin, is_super_admin, created_at, updated_at`

type UserStore struct {
	db *sqlx.DB
}

func NewUserStore(db *sqlx.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Get(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := s.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Upsert inserts the user or, when the id exists, overwrites the supplied
// columns and refreshes updated_at.
func (s *UserStore) Upsert(ctx context.Context, in domain.UserUpsert) (*domain.User, error) {
	assignments := in.Assignments()

	var sb strings.Builder
	sb.WriteString("INSERT INTO users (id")
	for _, a := range assignments {
		sb.WriteString(", ")
		sb.WriteString(a.Column)
	}
	sb.WriteString(") VALUES ($1")

	args := make([]interface{}, 0, len(assignments)+1)
	args = append(args, in.ID)
	for _, a := range assignments {
		args = append(args, a.Value)
		sb.WriteString(", $")
		sb.WriteString(strconv.Itoa(len(args)))
	}
	sb.WriteString(") ON CONFLICT (id) DO UPDATE SET ")
	for _, a := range assignments {
		sb.WriteString(a.Column)
		sb.WriteString(" = EXCLUDED.")
		sb.WriteString(a.Column)
		sb.WriteString(", ")
	}
	sb.WriteString("updated_at = NOW() RETURNING ")
	sb.WriteString(userColumns)

	var user domain.User
	if err := s.db.QueryRowxContext(ctx, sb.String(), args...).StructScan(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) List(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	err := s.db.SelectContext(ctx, &users, `SELECT `+userColumns+` FROM users ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	return users, nil
}

// SetAdmin returns domain.ErrNotFound when the user does not exist.
func (s *UserStore) SetAdmin(ctx context.Context, id string, isAdmin bool) (*domain.User, error) {
	query := `UPDATE users SET is_admin = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + userColumns

	var user domain.User
	err := s.db.QueryRowxContext(ctx, query, isAdmin, id).StructScan(&user)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
