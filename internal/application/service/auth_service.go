package service

import (
	"context"

	"github.com/Selvam-T/POS-sub000/internal/domain/entity"
	"github.com/Selvam-T/POS-sub000/internal/domain/repository"
	"github.com/Selvam-T/POS-sub000/pkg/apperror"
	"github.com/Selvam-T/POS-sub000/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

// LoginResult carries the issued token pair and the authenticated cashier.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	Cashier      *entity.Cashier
}

// AuthService authenticates cashiers by name and PIN.
type AuthService struct {
	cashierRepo repository.CashierRepository
	jwtManager  *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(cashierRepo repository.CashierRepository, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{
		cashierRepo: cashierRepo,
		jwtManager:  jwtManager,
	}
}

// Login verifies the PIN and issues a token pair. Unknown names, wrong
// PINs, and deactivated accounts all fail the same way.
func (s *AuthService) Login(ctx context.Context, name, pin string) (*LoginResult, error) {
	cashier, err := s.cashierRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if cashier == nil || !cashier.Active {
		return nil, apperror.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cashier.PINHash), []byte(pin)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(cashier.ID, cashier.Name, cashier.Role)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(cashier.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Cashier:      cashier,
	}, nil
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	cashierID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	cashier, err := s.cashierRepo.GetByID(ctx, cashierID)
	if err != nil {
		return nil, err
	}
	if cashier == nil || !cashier.Active {
		return nil, apperror.ErrInvalidCredentials
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(cashier.ID, cashier.Name, cashier.Role)
	if err != nil {
		return nil, err
	}
	newRefreshToken, err := s.jwtManager.GenerateRefreshToken(cashier.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		Cashier:      cashier,
	}, nil
}
