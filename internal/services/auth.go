package services

import (
	"errors"
	"log/slog"
	"regexp"

	"linkmark/internal/models"
	"linkmark/pkg/utils"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const minPasswordLength = 6

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

type identifierKind int

const (
	byEmail identifierKind = iota
	byUsername
)

// Identifier is a tagged login identifier, so callers state explicitly whether
// they are looking a user up by email or by username.
type Identifier struct {
	kind  identifierKind
	value string
}

func ByEmail(email string) Identifier {
	return Identifier{kind: byEmail, value: email}
}

func ByUsername(username string) Identifier {
	return Identifier{kind: byUsername, value: username}
}

// AuthService is the only component that creates or reads user rows.
type AuthService struct {
	db       *gorm.DB
	logger   *slog.Logger
	validate *validator.Validate
}

func NewAuthService(db *gorm.DB, logger *slog.Logger) *AuthService {
	return &AuthService{
		db:       db,
		logger:   logger,
		validate: validator.New(),
	}
}

// Register validates the credentials, hashes the password and persists the new
// user. The insert runs in its own transaction; the unique constraints on
// username and email are the authority when two registrations race.
func (s *AuthService) Register(username, email, password string) (*models.User, error) {
	if len(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}
	if !usernamePattern.MatchString(username) {
		return nil, ErrInvalidUsername
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrUsernameTaken
		}

		// Email syntax is checked after the username-taken check so a request
		// that is wrong on both counts reports the conflict.
		if err := s.validate.Var(email, "required,email"); err != nil {
			return ErrInvalidEmail
		}

		if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailTaken
		}

		return tx.Create(&user).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost a race with a concurrent registration; report the same
		// conflict the pre-check would have.
		return nil, s.classifyUserConflict(username)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "username", username)
	return &user, nil
}

func (s *AuthService) classifyUserConflict(username string) error {
	var count int64
	if err := s.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err == nil && count > 0 {
		return ErrUsernameTaken
	}
	return ErrEmailTaken
}

// Authenticate looks up the user by the tagged identifier and verifies the
// password. Any failure collapses into ErrAuthenticationFailed so callers
// cannot tell which of identifier or password was wrong.
func (s *AuthService) Authenticate(id Identifier, password string) (*models.User, error) {
	column := "email"
	if id.kind == byUsername {
		column = "username"
	}

	var user models.User
	if err := s.db.Where(column+" = ?", id.value).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuthenticationFailed
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrAuthenticationFailed
	}

	return &user, nil
}

// UserByID fetches a user row by its primary key.
func (s *AuthService) UserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
