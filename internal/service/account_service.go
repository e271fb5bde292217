package service

import (
	"context"
	"errors"
	"strings"

	"github.com/hugohenrick/erp-estoque/internal/domain/tenant"
	"github.com/hugohenrick/erp-estoque/internal/domain/user"
	"github.com/hugohenrick/erp-estoque/pkg/auth"
	"github.com/hugohenrick/erp-estoque/pkg/logger"
)

// Erros de contas e equipe
var (
	ErrMissingStaffFields  = errors.New("email e senha são obrigatórios")
	ErrStaffPasswordLength = errors.New("a senha deve ter pelo menos 6 caracteres")
	ErrStaffEmailTaken     = errors.New("já existe um usuário com este email")
	ErrMissingStaffID      = errors.New("o ID do funcionário é obrigatório")
	ErrNotInvitedByYou     = errors.New("você só pode remover funcionários que convidou")
	ErrWrongPassword       = errors.New("senha atual incorreta")
	ErrEmptyFullName       = errors.New("nome completo é obrigatório")
)

// Session é o resultado de um login: token e usuário autenticado
type Session struct {
	Token     string
	ExpiresIn int64
	User      *user.User
	Role      user.Role
}

// SignupInput são os dados de criação de uma conta
type SignupInput struct {
	BusinessName string
	FullName     string
	Email        string
	Password     string
}

// AccountService gerencia contas, perfis, papéis e a equipe do tenant
type AccountService struct {
	tenants tenant.Repository
	users   user.Repository
	billing *BillingService
	jwt     *auth.JWTService
	logger  logger.Logger
}

// NewAccountService cria um novo serviço de contas
func NewAccountService(tenants tenant.Repository, users user.Repository, billing *BillingService, jwt *auth.JWTService, log logger.Logger) *AccountService {
	return &AccountService{
		tenants: tenants,
		users:   users,
		billing: billing,
		jwt:     jwt,
		logger:  log,
	}
}

// Signup cria o tenant, o administrador com perfil e papel admin e devolve a sessão
func (s *AccountService) Signup(ctx context.Context, in SignupInput) (*Session, error) {
	if err := user.CheckPasswordStrength(in.Password); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.BusinessName)
	if name == "" {
		name = strings.TrimSpace(in.FullName)
	}
	t, err := tenant.NewTenant(name)
	if err != nil {
		return nil, err
	}
	owner, err := user.NewUser(t.ID, in.Email, in.Password, in.FullName, nil)
	if err != nil {
		return nil, err
	}
	owner.Roles = []user.Role{user.RoleAdmin}

	if err := s.tenants.CreateWithOwner(ctx, t, owner); err != nil {
		return nil, err
	}
	if _, err := s.billing.Current(ctx, t.ID); err != nil {
		s.logger.Warn("Falha ao criar assinatura inicial", "tenant_id", t.ID, "error", err)
	}

	s.logger.Info("Conta criada", "tenant_id", t.ID, "user_id", owner.ID)
	return s.session(owner)
}

// Login valida as credenciais e emite um token
func (s *AccountService) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.users.FindByEmail(ctx, user.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, user.ErrInvalidCredentials
		}
		return nil, err
	}
	if !u.CheckPassword(password) {
		return nil, user.ErrInvalidCredentials
	}
	return s.session(u)
}

// Refresh troca um token válido ou expirado há pouco por um novo, recalculando o papel
func (s *AccountService) Refresh(ctx context.Context, token string) (*Session, error) {
	claims, err := s.jwt.ParseForRefresh(token)
	if err != nil {
		return nil, err
	}
	u, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, auth.ErrInvalidClaims
		}
		return nil, err
	}
	return s.session(u)
}

func (s *AccountService) session(u *user.User) (*Session, error) {
	role := u.PrimaryRole()
	token, err := s.jwt.GenerateToken(u, role)
	if err != nil {
		return nil, err
	}
	return &Session{
		Token:     token,
		ExpiresIn: int64(s.jwt.Expiration().Seconds()),
		User:      u,
		Role:      role,
	}, nil
}

// Profile devolve o usuário autenticado com seus papéis
func (s *AccountService) Profile(ctx context.Context, userID string) (*user.User, error) {
	return s.users.FindByID(ctx, userID)
}

// UpdateProfile altera o nome completo
func (s *AccountService) UpdateProfile(ctx context.Context, userID, fullName string) (*user.User, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, ErrEmptyFullName
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.FullName = fullName
	if err := s.users.UpdateProfile(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ChangePassword troca a senha após conferir a atual
func (s *AccountService) ChangePassword(ctx context.Context, userID, current, next string) error {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !u.CheckPassword(current) {
		return ErrWrongPassword
	}
	if err := user.CheckPasswordStrength(next); err != nil {
		return err
	}
	if err := u.SetPassword(next); err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, u.ID, u.Password)
}

// Roles devolve os papéis do usuário
func (s *AccountService) Roles(ctx context.Context, userID string) ([]user.Role, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.Roles, nil
}

// AssignRole atribui um papel a um usuário do mesmo tenant
func (s *AccountService) AssignRole(ctx context.Context, tenantID, userID string, role user.Role) error {
	if !user.ValidRole(role) {
		return user.ErrInvalidRole
	}
	if _, err := s.memberOf(ctx, tenantID, userID); err != nil {
		return err
	}
	return s.users.AssignRole(ctx, userID, role)
}

// RemoveRole remove um papel de um usuário do mesmo tenant
func (s *AccountService) RemoveRole(ctx context.Context, tenantID, userID string, role user.Role) error {
	if !user.ValidRole(role) {
		return user.ErrInvalidRole
	}
	if _, err := s.memberOf(ctx, tenantID, userID); err != nil {
		return err
	}
	return s.users.RemoveRole(ctx, userID, role)
}

func (s *AccountService) memberOf(ctx context.Context, tenantID, userID string) (*user.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.TenantID != tenantID {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

// InviteStaff cria um funcionário convidado pelo administrador. A ordem das
// validações é: campos obrigatórios, tamanho da senha, email já usado, limite do plano.
func (s *AccountService) InviteStaff(ctx context.Context, admin Actor, email, password, fullName string) (*user.User, error) {
	email = user.NormalizeEmail(email)
	if email == "" || password == "" || admin.UserID == "" {
		return nil, ErrMissingStaffFields
	}
	if len(password) < user.MinStaffPasswordLength {
		return nil, ErrStaffPasswordLength
	}

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil, ErrStaffEmailTaken
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return nil, err
	}

	if err := s.billing.CheckTeamLimit(ctx, admin.TenantID); err != nil {
		return nil, err
	}

	invitedBy := admin.UserID
	staff, err := user.NewUser(admin.TenantID, email, password, fullName, &invitedBy)
	if err != nil {
		return nil, err
	}
	staff.Roles = []user.Role{user.RoleStaff}
	if err := s.users.Create(ctx, staff); err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return nil, ErrStaffEmailTaken
		}
		return nil, err
	}

	s.logger.Info("Funcionário criado", "tenant_id", admin.TenantID, "user_id", staff.ID, "invited_by", admin.UserID)
	return staff, nil
}

// DeleteStaff remove um funcionário; apenas quem convidou pode remover
func (s *AccountService) DeleteStaff(ctx context.Context, admin Actor, staffID string) error {
	if strings.TrimSpace(staffID) == "" || admin.UserID == "" {
		return ErrMissingStaffID
	}
	staff, err := s.users.FindByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return ErrNotInvitedByYou
		}
		return err
	}
	if !staff.WasInvitedBy(admin.UserID) {
		return ErrNotInvitedByYou
	}
	if err := s.users.Delete(ctx, staff.ID); err != nil {
		return err
	}
	s.logger.Info("Funcionário removido", "tenant_id", admin.TenantID, "user_id", staff.ID, "removed_by", admin.UserID)
	return nil
}

// ListStaff lista os funcionários convidados pelo administrador
func (s *AccountService) ListStaff(ctx context.Context, admin Actor) ([]*user.User, error) {
	return s.users.ListInvitedBy(ctx, admin.TenantID, admin.UserID)
}
