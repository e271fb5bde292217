package user

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role representa o papel do usuário dentro do tenant
type Role string

// Constantes para Role
const (
	RoleAdmin Role = "admin" // Administrador da conta
	RoleStaff Role = "staff" // Funcionário convidado
)

// Regras de senha
const (
	MinPasswordLength      = 8
	MaxPasswordLength      = 128
	MinStaffPasswordLength = 6
	MaxEmailLength         = 255
)

// Erros do domínio de usuários
var (
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrDuplicateEmail     = errors.New("já existe um usuário com este email")
	ErrDuplicateRole      = errors.New("usuário já possui este papel")
	ErrRoleNotFound       = errors.New("usuário não possui este papel")
	ErrInvalidRole        = errors.New("papel inválido")
	ErrWeakPassword       = errors.New("a senha deve ter entre 8 e 128 caracteres, com letra minúscula, letra maiúscula e número")
	ErrInvalidEmail       = errors.New("email inválido")
	ErrInvalidCredentials = errors.New("email ou senha incorretos")
)

// User reúne as credenciais e o perfil de um usuário
type User struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // hash bcrypt, nunca serializado
	FullName  string    `json:"full_name"`
	InvitedBy *string   `json:"invited_by"`
	Roles     []Role    `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser cria um usuário com a senha já convertida em hash
func NewUser(tenantID, email, password, fullName string, invitedBy *string) (*User, error) {
	email = NormalizeEmail(email)
	if email == "" || len(email) > MaxEmailLength || !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}

	now := time.Now()
	u := &User{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Email:     email,
		FullName:  strings.TrimSpace(fullName),
		InvitedBy: invitedBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// NormalizeEmail remove espaços e converte o email para minúsculas
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidRole informa se o papel é conhecido
func ValidRole(r Role) bool {
	return r == RoleAdmin || r == RoleStaff
}

// CheckPasswordStrength aplica a política de senha do cadastro de contas
func CheckPasswordStrength(password string) error {
	if len(password) < MinPasswordLength || len(password) > MaxPasswordLength {
		return ErrWeakPassword
	}
	var lower, upper, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !lower || !upper || !digit {
		return ErrWeakPassword
	}
	return nil
}

// SetPassword configura a senha do usuário com hash
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifica se a senha fornecida é válida
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// HasRole verifica se o usuário possui o papel
func (u *User) HasRole(r Role) bool {
	for _, role := range u.Roles {
		if role == r {
			return true
		}
	}
	return false
}

// IsAdmin verifica se o usuário é um administrador
func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

// PrimaryRole retorna o papel mais alto do usuário
func (u *User) PrimaryRole() Role {
	if u.IsAdmin() {
		return RoleAdmin
	}
	return RoleStaff
}

// WasInvitedBy verifica se o usuário foi convidado pelo administrador informado
func (u *User) WasInvitedBy(adminID string) bool {
	return u.InvitedBy != nil && *u.InvitedBy == adminID
}
