package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"lawfirm-cms/config"
	"lawfirm-cms/models"
	"lawfirm-cms/repositories"
)

type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	UpdateRole(ctx context.Context, actor Actor, userID uint, role models.UserRole, meta RequestMeta) (*models.User, error)
	// EnsureAdmin creates the bootstrap administrator unless a user with that
	// email already exists.
	EnsureAdmin(ctx context.Context, username, email, password string) error
}

type authService struct {
	userRepo repositories.UserRepository
	jwt      config.JWTConfig
	audit    AuditService
}

func NewAuthService(userRepo repositories.UserRepository, jwtConfig config.JWTConfig, audit AuditService) AuthService {
	return &authService{
		userRepo: userRepo,
		jwt:      jwtConfig,
		audit:    audit,
	}
}

func (s *authService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	// Check if user already exists
	existingUser, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err == nil && existingUser != nil {
		return nil, models.NewConflictError("user already exists")
	}
	var notFound models.ErrorNotFound
	if err != nil && !errors.As(err, &notFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewPersistenceError("failed to hash password", err)
	}

	// New accounts can read but not sign off anything until an admin assigns a role.
	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     models.RoleFamilyViewer,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token: token,
		User:  *user,
	}, nil
}

func (s *authService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		var notFound models.ErrorNotFound
		if errors.As(err, &notFound) {
			return nil, models.NewUnauthorizedError("invalid credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, models.NewUnauthorizedError("invalid credentials")
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token: token,
		User:  *user,
	}, nil
}

func (s *authService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *authService) UpdateRole(ctx context.Context, actor Actor, userID uint, role models.UserRole, meta RequestMeta) (*models.User, error) {
	if actor.Role != models.RoleAdmin {
		return nil, models.NewForbiddenError("only administrators can assign roles")
	}
	if !role.Valid() {
		return nil, models.NewValidationError("unknown role: "+string(role), nil)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	previous := user.Role

	if err := s.userRepo.UpdateRole(ctx, userID, role); err != nil {
		return nil, err
	}
	user.Role = role

	s.audit.Record(ctx, AuditEvent{
		EntityType: models.EntityUser,
		EntityID:   userID,
		Action:     models.ActionUserRoleChanged,
		ActorID:    actor.UserID,
		Meta:       meta,
		Metadata: map[string]any{
			"from": previous,
			"to":   role,
		},
	})
	return user, nil
}

func (s *authService) EnsureAdmin(ctx context.Context, username, email, password string) error {
	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	var notFound models.ErrorNotFound
	if !errors.As(err, &notFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.userRepo.Create(ctx, &models.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
		Role:     models.RoleAdmin,
	})
}

func (s *authService) generateToken(user *models.User) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      now.Add(s.jwt.Expiration).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString(s.jwt.Secret)
	if err != nil {
		return "", models.NewPersistenceError("failed to sign token", err)
	}

	return signedToken, nil
}
