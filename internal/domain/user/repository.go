package user

import (
	"context"
)

// Repository define a interface para operações de repositório de usuários
type Repository interface {
	// Create cria o usuário, seu perfil e os papéis informados
	Create(ctx context.Context, u *User) error

	// FindByID busca um usuário pelo ID, com seus papéis
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail busca um usuário pelo email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// ListInvitedBy lista os usuários convidados por um administrador
	ListInvitedBy(ctx context.Context, tenantID, inviterID string) ([]*User, error)

	// CountByTenant conta quantos usuários existem para um tenant
	CountByTenant(ctx context.Context, tenantID string) (int, error)

	// UpdateProfile atualiza o nome completo do usuário
	UpdateProfile(ctx context.Context, u *User) error

	// UpdatePassword atualiza a senha de um usuário
	UpdatePassword(ctx context.Context, id, hashedPassword string) error

	// Delete remove o usuário, o perfil e os papéis
	Delete(ctx context.Context, id string) error

	// AssignRole atribui um papel ao usuário
	AssignRole(ctx context.Context, userID string, role Role) error

	// RemoveRole remove um papel do usuário
	RemoveRole(ctx context.Context, userID string, role Role) error
}
