package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cari-takip-backend/internal/logger"
	"cari-takip-backend/internal/models"
	"cari-takip-backend/internal/store"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("kullanıcı adı veya şifre hatalı")
	ErrUserNotFound       = errors.New("kullanıcı bulunamadı")
	ErrWrongPassword      = errors.New("mevcut şifre hatalı")
	ErrUsernameTaken      = errors.New("bu kullanıcı adı zaten mevcut")
	ErrProtectedUser      = errors.New("admin kullanıcısı silinemez")
	ErrInvalidInput       = errors.New("geçersiz kullanıcı bilgisi")
)

type LoginResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Service kimlik doğrulama ve kullanıcı yönetimi.
type Service struct {
	store  store.Store
	secret string
	cost   int
	log    *logger.Logger
}

func NewService(st store.Store, secret string, log *logger.Logger) *Service {
	return &Service{store: st, secret: secret, cost: bcrypt.DefaultCost, log: log}
}

func (s *Service) Login(ctx context.Context, username, password string) (LoginResult, error) {
	user, err := s.store.GetUserByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, store.ErrNotFound) {
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, fmt.Errorf("kullanıcı okunamadı: %w", err)
	}

	if !checkPassword(user.PasswordHash, password) {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := GenerateToken(s.secret, &user)
	if err != nil {
		return LoginResult{}, fmt.Errorf("token oluşturulamadı: %w", err)
	}
	return LoginResult{Token: token, User: user}, nil
}

func (s *Service) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	if newPassword == "" {
		return ErrInvalidInput
	}

	user, err := s.store.GetUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("kullanıcı okunamadı: %w", err)
	}

	if !checkPassword(user.PasswordHash, oldPassword) {
		return ErrWrongPassword
	}

	hash, err := hashPassword(newPassword, s.cost)
	if err != nil {
		return fmt.Errorf("şifre hashlenemedi: %w", err)
	}
	if err := s.store.UpdateUserPassword(ctx, username, hash); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("şifre güncellenemedi: %w", err)
	}
	return nil
}

func (s *Service) ListUsers(ctx context.Context, limit int) ([]models.User, error) {
	return s.store.ListUsers(ctx, limit)
}

func (s *Service) CreateUser(ctx context.Context, username, password string, role models.UserRole) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.User{}, ErrInvalidInput
	}
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		return models.User{}, ErrInvalidInput
	}

	if _, err := s.store.GetUserByUsername(ctx, username); err == nil {
		return models.User{}, ErrUsernameTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return models.User{}, fmt.Errorf("kullanıcı okunamadı: %w", err)
	}

	hash, err := hashPassword(password, s.cost)
	if err != nil {
		return models.User{}, fmt.Errorf("şifre hashlenemedi: %w", err)
	}

	user := models.User{Username: username, PasswordHash: hash, Role: role}
	if err := s.store.CreateUser(ctx, &user); err != nil {
		// kontrol ile kayıt arasında aynı isim eklenmiş olabilir
		if errors.Is(err, store.ErrDuplicate) {
			return models.User{}, ErrUsernameTaken
		}
		return models.User{}, fmt.Errorf("kullanıcı oluşturulamadı: %w", err)
	}
	return user, nil
}

// DeleteUser çağıranın rolünden bağımsız olarak admin hesabını korur.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	user, err := s.store.GetUserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("kullanıcı okunamadı: %w", err)
	}

	if user.Username == models.AdminUsername {
		return ErrProtectedUser
	}

	if err := s.store.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("kullanıcı silinemedi: %w", err)
	}
	return nil
}

// SeedAdmin her açılışta çalışır: admin yoksa oluşturur, varsa dokunmaz.
func (s *Service) SeedAdmin(ctx context.Context, password string) error {
	_, err := s.store.GetUserByUsername(ctx, models.AdminUsername)
	if err == nil {
		s.log.Info("Admin kullanıcısı zaten mevcut")
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("admin kontrol edilemedi: %w", err)
	}

	hash, err := hashPassword(password, s.cost)
	if err != nil {
		return fmt.Errorf("şifre hashlenemedi: %w", err)
	}
	admin := models.User{Username: models.AdminUsername, PasswordHash: hash, Role: models.RoleAdmin}
	if err := s.store.CreateUser(ctx, &admin); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil
		}
		return fmt.Errorf("admin oluşturulamadı: %w", err)
	}
	s.log.Info("Admin kullanıcısı oluşturuldu", "username", admin.Username)
	return nil
}
