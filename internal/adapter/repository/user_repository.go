package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/erp-estoque/internal/domain/user"
	"github.com/hugohenrick/erp-estoque/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
)

// UserRepository implementa a interface user.Repository usando PostgreSQL.
// Credenciais ficam em users, nome e convite em profiles e papéis em user_roles.
type UserRepository struct {
	db database.DB
}

// NewUserRepository cria uma nova instância de UserRepository
func NewUserRepository(db database.DB) user.Repository {
	return &UserRepository{db: db}
}

const userSelect = `
	SELECT u.id, u.tenant_id, u.email, u.password, COALESCE(p.full_name, ''), p.invited_by,
	       u.created_at, u.updated_at,
	       COALESCE(array_agg(r.role ORDER BY r.role) FILTER (WHERE r.role IS NOT NULL), '{}')
	FROM users u
	LEFT JOIN profiles p ON p.user_id = u.id
	LEFT JOIN user_roles r ON r.user_id = u.id`

const userGroupBy = ` GROUP BY u.id, p.full_name, p.invited_by`

func scanUser(row rowScanner) (*user.User, error) {
	u := &user.User{}
	var roles []string
	err := row.Scan(&u.ID, &u.TenantID, &u.Email, &u.Password, &u.FullName, &u.InvitedBy,
		&u.CreatedAt, &u.UpdatedAt, &roles)
	if err != nil {
		return nil, err
	}
	for _, r := range roles {
		u.Roles = append(u.Roles, user.Role(r))
	}
	return u, nil
}

// insertUser grava usuário, perfil e papéis; usado também na criação do tenant
func insertUser(ctx context.Context, q querier, u *user.User) error {
	_, err := q.Exec(ctx,
		"INSERT INTO users (id, tenant_id, email, password, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)",
		u.ID, u.TenantID, u.Email, u.Password, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err, "") {
			return user.ErrDuplicateEmail
		}
		return fmt.Errorf("falha ao inserir usuário: %w", err)
	}

	_, err = q.Exec(ctx,
		"INSERT INTO profiles (user_id, full_name, invited_by, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)",
		u.ID, u.FullName, u.InvitedBy, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("falha ao inserir perfil: %w", err)
	}

	for _, role := range u.Roles {
		if err := insertRole(ctx, q, u.ID, role); err != nil {
			return err
		}
	}
	return nil
}

func insertRole(ctx context.Context, q querier, userID string, role user.Role) error {
	_, err := q.Exec(ctx,
		"INSERT INTO user_roles (id, user_id, role, created_at) VALUES ($1, $2, $3, $4)",
		uuid.New().String(), userID, string(role), time.Now(),
	)
	if err != nil {
		if database.IsUniqueViolation(err, "") {
			return user.ErrDuplicateRole
		}
		return fmt.Errorf("falha ao atribuir papel: %w", err)
	}
	return nil
}

// Create implementa user.Repository.Create
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	return database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		return insertUser(ctx, tx, u)
	})
}

func (r *UserRepository) findOne(ctx context.Context, where string, arg any) (*user.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, userSelect+" WHERE "+where+userGroupBy, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("falha ao buscar usuário: %w", err)
	}
	return u, nil
}

// FindByID implementa user.Repository.FindByID
func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	return r.findOne(ctx, "u.id = $1", id)
}

// FindByEmail implementa user.Repository.FindByEmail
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.findOne(ctx, "u.email = $1", user.NormalizeEmail(email))
}

// ListInvitedBy implementa user.Repository.ListInvitedBy
func (r *UserRepository) ListInvitedBy(ctx context.Context, tenantID, inviterID string) ([]*user.User, error) {
	rows, err := r.db.Query(ctx,
		userSelect+" WHERE u.tenant_id = $1 AND p.invited_by = $2"+userGroupBy+" ORDER BY u.created_at DESC",
		tenantID, inviterID,
	)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar equipe: %w", err)
	}
	defer rows.Close()

	var users []*user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("falha ao ler usuário: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("falha ao iterar usuários: %w", err)
	}
	return users, nil
}

// CountByTenant implementa user.Repository.CountByTenant
func (r *UserRepository) CountByTenant(ctx context.Context, tenantID string) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM users WHERE tenant_id = $1", tenantID).Scan(&count); err != nil {
		return 0, fmt.Errorf("falha ao contar usuários: %w", err)
	}
	return count, nil
}

// UpdateProfile implementa user.Repository.UpdateProfile
func (r *UserRepository) UpdateProfile(ctx context.Context, u *user.User) error {
	tag, err := r.db.Exec(ctx,
		"UPDATE profiles SET full_name = $1, updated_at = $2 WHERE user_id = $3",
		u.FullName, u.UpdatedAt, u.ID,
	)
	if err != nil {
		return fmt.Errorf("falha ao atualizar perfil: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// UpdatePassword implementa user.Repository.UpdatePassword
func (r *UserRepository) UpdatePassword(ctx context.Context, id, hashedPassword string) error {
	tag, err := r.db.Exec(ctx,
		"UPDATE users SET password = $1, updated_at = $2 WHERE id = $3",
		hashedPassword, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("falha ao atualizar senha: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// Delete implementa user.Repository.Delete; perfil e papéis são removidos em cascata
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("falha ao remover usuário: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// AssignRole implementa user.Repository.AssignRole
func (r *UserRepository) AssignRole(ctx context.Context, userID string, role user.Role) error {
	return insertRole(ctx, r.db, userID, role)
}

// RemoveRole implementa user.Repository.RemoveRole
func (r *UserRepository) RemoveRole(ctx context.Context, userID string, role user.Role) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM user_roles WHERE user_id = $1 AND role = $2", userID, string(role))
	if err != nil {
		return fmt.Errorf("falha ao remover papel: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrRoleNotFound
	}
	return nil
}
