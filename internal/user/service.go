package user

import (
	"context"
	"time"

	"github.com/glowbook/salon-backend/internal/auth"
)

type UpdateProfileRequest struct {
	Phone        string
	ConsentGiven bool
}

type Service interface {
	// AuthTelegram validates Mini App initData, upserts the user and
	// issues a session token.
	AuthTelegram(ctx context.Context, initData string) (*User, string, error)
	// StaffLogin issues an admin session from the fallback password.
	StaffLogin(ctx context.Context, password string) (string, error)
	GetByID(ctx context.Context, id string) (*User, error)
	UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (*User, error)
}

type service struct {
	repo      Repository
	verifier  *auth.InitDataVerifier
	jwt       *auth.JWTManager
	hasher    auth.PasswordHasher
	staffHash string
	adminIDs  map[int64]bool
}

func NewService(
	repo Repository,
	verifier *auth.InitDataVerifier,
	jwt *auth.JWTManager,
	hasher auth.PasswordHasher,
	staffHash string,
	adminChatIDs []int64,
) Service {
	admins := make(map[int64]bool, len(adminChatIDs))
	for _, id := range adminChatIDs {
		admins[id] = true
	}
	return &service{
		repo:      repo,
		verifier:  verifier,
		jwt:       jwt,
		hasher:    hasher,
		staffHash: staffHash,
		adminIDs:  admins,
	}
}

func (s *service) AuthTelegram(ctx context.Context, initData string) (*User, string, error) {
	tgUser, err := s.verifier.Verify(initData)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	role := RoleClient
	if s.adminIDs[tgUser.ID] {
		role = RoleAdmin
	}

	u := &User{
		TelegramID: tgUser.ID,
		Username:   tgUser.Username,
		FirstName:  tgUser.FirstName,
		Role:       role,
	}
	if err := s.repo.Upsert(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := s.jwt.GenerateAccessToken(u.ID, u.TelegramID, string(u.Role))
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *service) StaffLogin(ctx context.Context, password string) (string, error) {
	if s.staffHash == "" {
		return "", ErrStaffLoginDisabled
	}
	if err := s.hasher.Compare(s.staffHash, password); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.jwt.GenerateAccessToken("", 0, auth.RoleAdmin)
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	u.Phone = req.Phone
	if req.ConsentGiven && !u.ConsentGiven {
		now := time.Now().UTC()
		u.ConsentDate = &now
	}
	u.ConsentGiven = req.ConsentGiven

	if err := s.repo.UpdateProfile(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
