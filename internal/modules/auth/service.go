package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/fixpointhq/fixpoint-backend/internal/modules/employee"
	"github.com/fixpointhq/fixpoint-backend/internal/modules/store"
	"github.com/fixpointhq/fixpoint-backend/internal/platform/apperror"
	"github.com/fixpointhq/fixpoint-backend/internal/platform/authctx"
)

// Service defines registration and PIN-login business logic.
type Service interface {
	RegisterStore(ctx context.Context, req RegisterRequest) (*Session, error)
	Login(ctx context.Context, req LoginRequest) (*Session, error)
}

type service struct {
	stores    store.Repository
	employees employee.Repository
	secret    []byte
	tokenTTL  time.Duration
	logger    *zap.Logger
}

// NewService creates a new auth service.
func NewService(stores store.Repository, employees employee.Repository, secret string, tokenTTL time.Duration, logger *zap.Logger) Service {
	return &service{
		stores:    stores,
		employees: employees,
		secret:    []byte(secret),
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

func (s *service) RegisterStore(ctx context.Context, req RegisterRequest) (*Session, error) {
	if strings.TrimSpace(req.StoreName) == "" {
		return nil, apperror.Validationf("store_name is required")
	}
	if strings.TrimSpace(req.OwnerName) == "" {
		return nil, apperror.Validationf("owner_name is required")
	}
	if len(req.PIN) < 4 {
		return nil, apperror.Validationf("pin must be at least 4 digits")
	}

	st := &store.Store{
		ID:   uuid.New(),
		Code: generateStoreCode(),
		Name: req.StoreName,
	}
	if err := s.stores.Create(ctx, st); err != nil {
		return nil, apperror.FromDB(err, "store not found")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.PIN), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	owner := &employee.Employee{
		ID:       uuid.New(),
		StoreID:  st.ID,
		Name:     req.OwnerName,
		Role:     authctx.RoleOwner,
		PINHash:  string(hash),
		IsActive: true,
	}
	if err := s.employees.Create(ctx, owner); err != nil {
		return nil, apperror.FromDB(err, "employee not found")
	}

	token, err := s.issueToken(owner)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	s.logger.Info("store registered",
		zap.String("store_id", st.ID.String()),
		zap.String("store_code", st.Code))
	return &Session{Token: token, Store: st, Employee: owner}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	if req.StoreCode == "" || req.PIN == "" {
		return nil, apperror.Validationf("store_code and pin are required")
	}
	st, err := s.stores.GetByCode(ctx, req.StoreCode)
	if err != nil {
		// Same message as a PIN mismatch so store codes cannot be probed.
		return nil, apperror.Deniedf("invalid credentials")
	}
	active, err := s.employees.ListActive(ctx, st.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	for _, e := range active {
		if bcrypt.CompareHashAndPassword([]byte(e.PINHash), []byte(req.PIN)) == nil {
			token, err := s.issueToken(e)
			if err != nil {
				return nil, apperror.Internal(err)
			}
			return &Session{Token: token, Store: st, Employee: e}, nil
		}
	}
	return nil, apperror.Deniedf("invalid credentials")
}

func (s *service) issueToken(e *employee.Employee) (string, error) {
	claims := &Claims{
		StandardClaims: jwt.StandardClaims{
			Subject:   e.ID.String(),
			ExpiresAt: time.Now().Add(s.tokenTTL).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
		TenantID: e.StoreID.String(),
		Role:     string(e.Role),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// generateStoreCode creates a short human-readable store code: FX-XXXXXX.
func generateStoreCode() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
	return fmt.Sprintf("FX-%s", suffix)
}
