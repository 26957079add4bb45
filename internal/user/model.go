package user

import (
	"net/http"
	"strconv"
	"time"

	"github.com/glowbook/salon-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.NotFound("user not found")
	ErrProfileIncomplete  = apperror.PreconditionFailed("profile must be completed before booking")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid credentials")
	ErrStaffLoginDisabled = apperror.New(http.StatusUnauthorized, "staff login is not configured")
)

type Role string

const (
	RoleClient Role = "client"
	RoleAdmin  Role = "admin"
)

// User is a Telegram-authenticated person. Admins are designated by
// their chat id in configuration; everyone else is a client.
type User struct {
	ID           string
	TelegramID   int64
	Username     string
	FirstName    string
	Phone        string
	Role         Role
	ConsentGiven bool
	ConsentDate  *time.Time
	CreatedAt    time.Time
}

// ProfileComplete reports whether the user may create bookings:
// data-processing consent given and a contact phone on file.
func (u *User) ProfileComplete() bool {
	return u.ConsentGiven && u.Phone != ""
}

// DisplayName picks the friendliest available identifier.
func (u *User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	if u.Username != "" {
		return u.Username
	}
	return strconv.FormatInt(u.TelegramID, 10)
}
