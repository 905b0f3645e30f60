package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/platewise/platewise-backend/internal/data/repos"
	types "github.com/platewise/platewise-backend/internal/domain"
	"github.com/platewise/platewise-backend/internal/pkg/ctxutil"
	apperr "github.com/platewise/platewise-backend/internal/pkg/errors"
	"github.com/platewise/platewise-backend/internal/pkg/logger"
)

const trialDays = 14

type RegisterInput struct {
	TenantName   string `json:"tenant_name"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
	Address      string `json:"address"`

	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type AuthService interface {
	// Register provisions a tenant with its first admin, a trialing basic
	// subscription and the starter menu categories in one transaction.
	Register(ctx context.Context, input RegisterInput) (*types.User, error)
	Login(ctx context.Context, email, password string) (string, *types.User, error)
	// SetContextFromToken validates a bearer token and attaches the request
	// identity to the returned context.
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	AccessTTL() time.Duration
}

type authService struct {
	db               *gorm.DB
	log              *logger.Logger
	userRepo         repos.UserRepo
	tenantRepo       repos.TenantRepo
	subscriptionRepo repos.SubscriptionRepo
	categoryRepo     repos.CategoryRepo
	jwtSecret        string
	accessTTL        time.Duration
}

func NewAuthService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	tenantRepo repos.TenantRepo,
	subscriptionRepo repos.SubscriptionRepo,
	categoryRepo repos.CategoryRepo,
	jwtSecret string,
	accessTTL time.Duration,
) AuthService {
	return &authService{
		db:               db,
		log:              baseLog.With("service", "auth"),
		userRepo:         userRepo,
		tenantRepo:       tenantRepo,
		subscriptionRepo: subscriptionRepo,
		categoryRepo:     categoryRepo,
		jwtSecret:        jwtSecret,
		accessTTL:        accessTTL,
	}
}

func (s *authService) AccessTTL() time.Duration { return s.accessTTL }

func (s *authService) Register(ctx context.Context, input RegisterInput) (*types.User, error) {
	if strings.TrimSpace(input.TenantName) == "" {
		return nil, fmt.Errorf("tenant name is required: %w", apperr.ErrInvalidArgument)
	}
	if err := validateUserInput(CreateUserInput{
		Email:     input.Email,
		Password:  input.Password,
		FirstName: input.FirstName,
		LastName:  input.LastName,
	}); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	exists, err := s.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("email already in use: %w", apperr.ErrInvalidArgument)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	contactEmail := strings.ToLower(strings.TrimSpace(input.ContactEmail))
	if contactEmail == "" {
		contactEmail = email
	}

	var user *types.User
	txErr := runInTx(ctx, s.db, func(tx *gorm.DB) error {
		tenant, tErr := s.tenantRepo.Create(ctx, tx, &types.Tenant{
			Name:         strings.TrimSpace(input.TenantName),
			ContactEmail: contactEmail,
			ContactPhone: input.ContactPhone,
			Address:      input.Address,
			IsActive:     true,
		})
		if tErr != nil {
			return fmt.Errorf("creating tenant: %w", tErr)
		}

		var uErr error
		user, uErr = s.userRepo.Create(ctx, tx, &types.User{
			TenantID:  tenant.ID,
			Email:     email,
			Password:  string(hash),
			FirstName: strings.TrimSpace(input.FirstName),
			LastName:  strings.TrimSpace(input.LastName),
			Role:      types.RoleAdmin,
			IsActive:  true,
		})
		if uErr != nil {
			return fmt.Errorf("creating user: %w", uErr)
		}

		// Every new tenant starts on a basic trial so the quota gate always
		// has a subscription to consult.
		features, _ := types.PlanFeaturesFor(types.PlanBasic)
		now := time.Now().UTC()
		trialEnd := now.AddDate(0, 0, trialDays)
		_, sErr := s.subscriptionRepo.Create(ctx, tx, &types.Subscription{
			TenantID:    tenant.ID,
			Plan:        types.PlanBasic,
			Status:      types.SubscriptionStatusTrialing,
			StartDate:   now,
			EndDate:     trialEnd,
			TrialEndsAt: &trialEnd,
			Features:    datatypes.NewJSONType(features),
		})
		if sErr != nil {
			return fmt.Errorf("creating trial subscription: %w", sErr)
		}

		categories, cErr := defaultMenuCategories()
		if cErr != nil {
			return cErr
		}
		for i := range categories {
			categories[i].TenantID = tenant.ID
			if _, cErr = s.categoryRepo.Create(ctx, tx, &categories[i]); cErr != nil {
				return fmt.Errorf("seeding category %q: %w", categories[i].Name, cErr)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *types.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, nil, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", nil, fmt.Errorf("invalid credentials: %w", apperr.ErrUnauthorized)
	}
	if !user.IsActive {
		return "", nil, fmt.Errorf("account is deactivated: %w", apperr.ErrUnauthorized)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", nil, fmt.Errorf("invalid credentials: %w", apperr.ErrUnauthorized)
	}
	token, err := s.generateAccessToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("generating access token: %w", err)
	}
	return token, user, nil
}

func (s *authService) generateAccessToken(user *types.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":   user.ID.String(),
		"tenant_id": user.TenantID.String(),
		"role":      user.Role,
		"iat":       now.Unix(),
		"exp":       now.Add(s.accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return ctx, fmt.Errorf("invalid token: %w", apperr.ErrUnauthorized)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx, fmt.Errorf("invalid token claims: %w", apperr.ErrUnauthorized)
	}

	userID, uErr := claimUUID(claims, "user_id")
	tenantID, tErr := claimUUID(claims, "tenant_id")
	if uErr != nil || tErr != nil {
		return ctx, fmt.Errorf("invalid token subject: %w", apperr.ErrUnauthorized)
	}
	role, _ := claims["role"].(string)

	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{
		UserID:   userID,
		TenantID: tenantID,
		Role:     role,
	}), nil
}

func claimUUID(claims jwt.MapClaims, key string) (uuid.UUID, error) {
	raw, _ := claims[key].(string)
	return uuid.Parse(raw)
}
