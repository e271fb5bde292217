package dto

import (
	"time"

	"github.com/hugohenrick/erp-estoque/internal/domain/user"
)

// UserResponse representa a resposta com dados de um usuário
type UserResponse struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	InvitedBy *string   `json:"invited_by"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserListResponse representa a lista de usuários da equipe
type UserListResponse struct {
	Data       []UserResponse `json:"data"`
	TotalCount int            `json:"total_count"`
}

// UpdateProfileRequest representa a alteração do perfil
type UpdateProfileRequest struct {
	FullName string `json:"full_name" binding:"required,max=100"`
}

// ChangePasswordRequest representa os dados para alteração de senha
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// RoleRequest representa a atribuição ou remoção de um papel
type RoleRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required,oneof=admin staff"`
}

// MyRolesResponse representa os papéis do usuário autenticado
type MyRolesResponse struct {
	Roles   []string `json:"roles"`
	IsAdmin bool     `json:"is_admin"`
}

// InviteStaffRequest representa o convite de um funcionário. As regras de
// preenchimento são validadas no serviço para manter a ordem das mensagens.
type InviteStaffRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// ToUserResponse converte um usuário do domínio para DTO de resposta
func ToUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		TenantID:  u.TenantID,
		Email:     u.Email,
		FullName:  u.FullName,
		InvitedBy: u.InvitedBy,
		Roles:     RoleNames(u.Roles),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// ToUserListResponse converte uma lista de usuários do domínio para DTO de resposta
func ToUserListResponse(users []*user.User) UserListResponse {
	data := make([]UserResponse, len(users))
	for i, u := range users {
		data[i] = ToUserResponse(u)
	}
	return UserListResponse{Data: data, TotalCount: len(data)}
}

// RoleNames converte os papéis para texto
func RoleNames(roles []user.Role) []string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return names
}
