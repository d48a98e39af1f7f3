// Package sqlxrepos implements the core repositories on PostgreSQL via sqlx.
package sqlxrepos

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/szkolix/backend/core/user"
)

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *sql.DB) user.Repository {
	return &userRepository{db: sqlx.NewDb(db, "postgres")}
}

// userRow mirrors the "user" table; Roles needs pq.Array so it cannot live on
// the core struct.
type userRow struct {
	user.User
	Roles pq.StringArray `db:"roles"`
}

func (r userRow) toUser() user.User {
	usr := r.User
	usr.Roles = []string(r.Roles)
	return usr
}

const userColumns = `id, name, username, email, company, is_active, roles, password_hash, created_at, updated_at, last_login`

func (repo *userRepository) CheckUniqueness(ctx context.Context, username, email string, excludedUsers ...user.User) error {
	query := `SELECT username, email FROM "user" WHERE (username = $1 OR email = $2)`
	args := []interface{}{username, email}
	if len(excludedUsers) > 0 {
		ids := make([]string, len(excludedUsers))
		for i, usr := range excludedUsers {
			ids[i] = usr.ID
		}
		query += ` AND NOT (id = ANY($3))`
		args = append(args, pq.Array(ids))
	}

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "querying user uniqueness")
	}
	defer rows.Close()

	for rows.Next() {
		var uname, mail string
		if err := rows.Scan(&uname, &mail); err != nil {
			return errors.Wrap(err, "scanning user uniqueness")
		}
		if uname == username {
			return user.ErrUsernameExists
		}
		if mail == email {
			return user.ErrEmailExists
		}
	}
	return rows.Err()
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	const query = `
		INSERT INTO "user" (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := repo.db.ExecContext(ctx, query,
		usr.ID, usr.Name, usr.Username, usr.Email, usr.Company, usr.Active(),
		pq.Array(usr.Roles), usr.PasswordHash, usr.CreatedAt, usr.UpdatedAt, usr.LastLogin,
	)
	if err != nil {
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return usr, nil
}

func (repo *userRepository) QueryAllUsers(ctx context.Context) ([]user.User, error) {
	const query = `SELECT ` + userColumns + ` FROM "user" ORDER BY created_at`

	var rows []userRow
	if err := repo.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	return toUsers(rows), nil
}

func (repo *userRepository) GetUserByID(ctx context.Context, id string) (user.User, error) {
	const query = `SELECT ` + userColumns + ` FROM "user" WHERE id = $1`

	var row userRow
	if err := repo.db.GetContext(ctx, &row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "querying user by id")
	}
	return row.toUser(), nil
}

func (repo *userRepository) GetUserByUsernameOrEmail(ctx context.Context, uname string) (user.User, error) {
	const query = `SELECT ` + userColumns + ` FROM "user" WHERE username = $1 OR LOWER(email) = LOWER($1)`

	var row userRow
	if err := repo.db.GetContext(ctx, &row, query, uname); err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "querying user by username or email")
	}
	return row.toUser(), nil
}

func (repo *userRepository) FilterUsers(ctx context.Context, filter user.QueryFilter) ([]user.User, error) {
	query := `SELECT ` + userColumns + ` FROM "user" WHERE 1=1`
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.Search != "" {
		p := arg("%" + strings.ToLower(filter.Search) + "%")
		query += ` AND (LOWER(name) LIKE ` + p + ` OR LOWER(username) LIKE ` + p + ` OR LOWER(email) LIKE ` + p + `)`
	}
	if filter.Roles != nil {
		prefixes := make([]string, len(filter.Roles))
		for i, role := range filter.Roles {
			prefixes[i] = role + "%"
		}
		query += ` AND EXISTS (SELECT 1 FROM unnest(roles) r WHERE r LIKE ANY(` + arg(pq.Array(prefixes)) + `))`
	}
	if filter.Company != "" {
		query += ` AND company = ` + arg(filter.Company)
	}
	if filter.IsActive != nil {
		query += ` AND is_active = ` + arg(*filter.IsActive)
	}
	if !filter.CreatedFrom.IsZero() {
		query += ` AND created_at >= ` + arg(filter.CreatedFrom)
	}
	if !filter.CreatedTo.IsZero() {
		query += ` AND created_at <= ` + arg(filter.CreatedTo)
	}
	query += ` ORDER BY created_at`

	var rows []userRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "filtering users")
	}
	return toUsers(rows), nil
}

func (repo *userRepository) UpdateUser(ctx context.Context, usr user.User, isActive *bool) (user.User, error) {
	query := `
		UPDATE "user" SET
			name = COALESCE(NULLIF($2, ''), name),
			username = COALESCE(NULLIF($3, ''), username),
			email = COALESCE(NULLIF($4, ''), email),
			company = COALESCE(NULLIF($5, ''), company),
			roles = COALESCE($6, roles),
			password_hash = COALESCE($7, password_hash),
			updated_at = $8`
	args := []interface{}{
		usr.ID, usr.Name, usr.Username, usr.Email, usr.Company,
		nilIfEmptyRoles(usr.Roles), nilIfEmptyHash(usr.PasswordHash), usr.UpdatedAt,
	}
	if !usr.LastLogin.IsZero() {
		args = append(args, usr.LastLogin)
		query += `, last_login = $` + strconv.Itoa(len(args))
	}
	if isActive != nil {
		args = append(args, *isActive)
		query += `, is_active = $` + strconv.Itoa(len(args))
	}
	query += ` WHERE id = $1 RETURNING ` + userColumns

	var row userRow
	if err := repo.db.GetContext(ctx, &row, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "updating user")
	}
	return row.toUser(), nil
}

func (repo *userRepository) DeleteUsersByID(ctx context.Context, ids ...string) error {
	const query = `DELETE FROM "user" WHERE id = ANY($1)`
	_, err := repo.db.ExecContext(ctx, query, pq.Array(ids))
	return errors.Wrap(err, "deleting users")
}

func toUsers(rows []userRow) []user.User {
	users := make([]user.User, len(rows))
	for i, row := range rows {
		users[i] = row.toUser()
	}
	return users
}

func nilIfEmptyRoles(roles []string) interface{} {
	if roles == nil {
		return nil
	}
	return pq.Array(roles)
}

func nilIfEmptyHash(hash []byte) interface{} {
	if len(hash) == 0 {
		return nil
	}
	return hash
}

