package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/Akineyshen/BlogStudentsBUT/config"
	"github.com/Akineyshen/BlogStudentsBUT/internal/model"
	"github.com/Akineyshen/BlogStudentsBUT/internal/ports"
	"github.com/Akineyshen/BlogStudentsBUT/internal/security"
	"github.com/google/uuid"
)

type UserService struct {
	userRepository    ports.UserRepository
	profileRepository ports.ProfileRepository
	jwtService        ports.JWTServiceInterface
	jwtRepository     ports.JWTRepositoryInterface
}

func NewUserService(
	userRepository ports.UserRepository,
	profileRepository ports.ProfileRepository,
	jwtService ports.JWTServiceInterface,
	jwtRepository ports.JWTRepositoryInterface,
) *UserService {
	return &UserService{
		userRepository:    userRepository,
		profileRepository: profileRepository,
		jwtService:        jwtService,
		jwtRepository:     jwtRepository,
	}
}

// Register : регистрация нового пользователя.
// Вместе с учётной записью создаётся пустой профиль, чтобы пользователь
// сразу появлялся в поиске. Возвращает пару токенов, как при входе.
func (s *UserService) Register(ctx context.Context, login string, password string, name string, email string) (*model.TokensPair, error) {
	if len(login) < 8 {
		return nil, fmt.Errorf("[UserService] логин должен быть не меньше 8 символов")
	}
	for _, c := range login {
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) {
			return nil, fmt.Errorf("[UserService] логин должен содержать только латинские буквы и цифры")
		}
	}

	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("[UserService] имя не может быть пустым")
	}

	if err := validatePassword(password); err != nil {
		return nil, fmt.Errorf("[UserService] %w", err)
	}

	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[UserService] database connection не найден в context")
	}

	exists, err := s.userRepository.Exists(ctx, db, login)
	if err != nil {
		return nil, fmt.Errorf("[UserService] ошибка проверки логина: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("[UserService] логин уже занят")
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("[UserService] не удалось создать хэш пароля: %w", err)
	}

	user := &model.User{
		UUID:         uuid.New().String(),
		Login:        login,
		PasswordHash: hash,
	}

	created, err := s.userRepository.CreateUser(ctx, db, user)
	if err != nil {
		return nil, fmt.Errorf("[UserService] ошибка создания пользователя: %w", err)
	}

	profile := &model.Profile{
		UUID:     uuid.New().String(),
		UserUUID: &created.UUID,
		Name:     name,
		Email:    email,
		Username: login,
	}
	if err := s.profileRepository.Create(ctx, db, profile); err != nil {
		return nil, fmt.Errorf("[UserService] ошибка создания профиля: %w", err)
	}

	tokens, refreshToken, err := s.jwtService.GenerateAccessRefreshTokens(created.UUID)
	if err != nil {
		return nil, fmt.Errorf("[UserService] ошибка генерации токенов: %w", err)
	}

	if err := s.jwtRepository.SaveRefreshToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("[UserService] не удалось сохранить refresh токен: %w", err)
	}

	return tokens, nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("пароль должен содержать минимум 8 символов")
	}

	var upperCount, lowerCount, digitCount, specialCount int

	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			upperCount++
		case unicode.IsLower(c):
			lowerCount++
		case unicode.IsDigit(c):
			digitCount++
		case unicode.IsPunct(c) || unicode.IsSymbol(c):
			specialCount++
		}
	}

	if upperCount == 0 || lowerCount == 0 || (upperCount+lowerCount) < 2 {
		return fmt.Errorf("пароль должен содержать минимум 2 буквы в разных регистрах")
	}
	if digitCount < 1 {
		return fmt.Errorf("пароль должен содержать хотя бы одну цифру")
	}
	if specialCount < 1 {
		return fmt.Errorf("пароль должен содержать хотя бы один специальный символ")
	}

	return nil
}

// UpdatePassword : смена пароля текущего пользователя.
// Все выданные refresh токены отзываются, остальные сессии закрываются.
func (s *UserService) UpdatePassword(ctx context.Context, newPassword string) error {
	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		return fmt.Errorf("[UserService] пользователь не авторизован")
	}

	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return fmt.Errorf("[UserService] database connection не найден в context")
	}

	if err := validatePassword(newPassword); err != nil {
		return fmt.Errorf("[UserService] %w", err)
	}

	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("[UserService] не удалось создать хэш пароля: %w", err)
	}

	if err := s.userRepository.UpdatePassword(ctx, db, claims.UserUUID, hash); err != nil {
		return fmt.Errorf("[UserService] ошибка обновления пароля: %w", err)
	}

	if err := s.jwtRepository.RevokeAllForUser(ctx, claims.UserUUID); err != nil {
		return fmt.Errorf("[UserService] не удалось отозвать refresh токены: %w", err)
	}

	return nil
}
