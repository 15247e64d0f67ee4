package services

import (
	"errors"
	"strings"
	"time"

	"github.com/insaroule/insaroule/entity"
	"github.com/insaroule/insaroule/pkg/logger"
	"github.com/insaroule/insaroule/repository"
	"github.com/insaroule/insaroule/utils"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrVerifyCooldown     = errors.New("verification email recently sent, try again later")
	ErrAlreadyVerified    = errors.New("email already verified")
)

// AuthService handles register/login and the email verification state.
type AuthService struct {
	userRepo      *repository.UserRepository
	jwtSecret     string
	jwtTTL        time.Duration
	verifyCoolOff time.Duration
}

func NewAuthService(repo *repository.UserRepository, secret string, ttl, verifyCoolOff time.Duration) *AuthService {
	return &AuthService{
		userRepo:      repo,
		jwtSecret:     secret,
		jwtTTL:        ttl,
		verifyCoolOff: verifyCoolOff,
	}
}

// Register creates the user with default notification preferences.
func (s *AuthService) Register(email, password, firstName, lastName string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	count, err := s.userRepo.CountByEmail(email)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("hash password failed")
	}

	user := &entity.User{
		Email:     email,
		Password:  string(hashed),
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Role:      "user",
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks credentials and issues a JWT.
func (s *AuthService) Login(email, password string) (string, *entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID, user.Role, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, errors.New("cannot generate token")
	}
	return token, user, nil
}

func (s *AuthService) GetProfile(userID uint) (*entity.User, error) {
	return s.userRepo.FindByID(userID)
}

// ResendVerification honors the cooldown window between emails. Actual
// delivery is out of scope; the send is logged and the timestamp recorded.
func (s *AuthService) ResendVerification(userID uint) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return err
	}
	if user.EmailVerified {
		return ErrAlreadyVerified
	}
	if user.HasVerifyCooldown(s.verifyCoolOff) {
		return ErrVerifyCooldown
	}
	if err := s.userRepo.MarkVerificationSent(userID, time.Now()); err != nil {
		return err
	}
	logger.L().Infow("verification email queued", "userId", userID, "email", user.Email)
	return nil
}

func (s *AuthService) GetPreferences(userID uint) (*entity.NotificationPreferences, error) {
	return s.userRepo.FindPreferences(userID)
}

func (s *AuthService) UpdatePreferences(userID uint, updates map[string]any) (*entity.NotificationPreferences, error) {
	if err := s.userRepo.UpdatePreferences(userID, updates); err != nil {
		return nil, err
	}
	return s.userRepo.FindPreferences(userID)
}
