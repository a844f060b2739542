package user

import (
	"context"
	"errors"
	"fmt"
	"log"

	"smartwallet/internal/models"
	"smartwallet/internal/repositories"
	"smartwallet/internal/services/subscription"
	"smartwallet/internal/services/wallet"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrUsernameTaken      = errors.New("username already exists")
)

// RegisterRequest carries the fields needed to create an account.
type RegisterRequest struct {
	Username string
	Password string
	Country  string
}

// LoginRequest carries login credentials.
type LoginRequest struct {
	Username string
	Password string
}

// EditRequest carries profile fields a user may change.
type EditRequest struct {
	FirstName         string
	LastName          string
	Email             string
	ProfilePictureURL string
}

// PreferenceUpserter pushes notification preferences to the remote
// notification service, best-effort.
type PreferenceUpserter interface {
	UpsertPreference(ctx context.Context, userID uuid.UUID, enabled bool, contactInfo string)
}

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req LoginRequest) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByIDWithRelations(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	EditProfile(ctx context.Context, id uuid.UUID, req EditRequest) (*models.User, error)
}

type service struct {
	repo          repositories.UserRepository
	wallets       wallet.Service
	subscriptions subscription.Service
	preferences   PreferenceUpserter
}

func NewService(repo repositories.UserRepository, wallets wallet.Service, subscriptions subscription.Service, preferences PreferenceUpserter) Service {
	if repo == nil {
		panic("user repository is required")
	}
	return &service{
		repo:          repo,
		wallets:       wallets,
		subscriptions: subscriptions,
		preferences:   preferences,
	}
}

// Register creates the account together with its default wallet and DEFAULT
// subscription.
func (s *service) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	if _, err := s.repo.GetByUsername(req.Username); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrUsernameTaken, req.Username)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: req.Username,
		Password: string(hashed),
		Role:     models.UserRoleUser,
		Country:  req.Country,
		Active:   true,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}

	defaultWallet, err := s.wallets.CreateDefaultWallet(ctx, user)
	if err != nil {
		return nil, err
	}
	defaultSubscription, err := s.subscriptions.CreateDefault(ctx, user)
	if err != nil {
		return nil, err
	}

	user.Wallets = []models.Wallet{*defaultWallet}
	user.Subscriptions = []models.Subscription{*defaultSubscription}

	if s.preferences != nil {
		s.preferences.UpsertPreference(ctx, user.ID, false, "")
	}

	log.Printf("new user profile registered for [%s]", req.Username)
	return user, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*models.User, error) {
	user, err := s.repo.GetByUsername(req.Username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.repo.GetByID(id)
}

func (s *service) GetByIDWithRelations(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.repo.GetByIDWithRelations(id)
}

func (s *service) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.repo.GetByUsername(username)
}

func (s *service) GetAll(ctx context.Context) ([]models.User, error) {
	return s.repo.GetAll()
}

// EditProfile updates the profile and pushes the contact email to the
// notification service, best-effort.
func (s *service) EditProfile(ctx context.Context, id uuid.UUID, req EditRequest) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Email = req.Email
	user.ProfilePicture = req.ProfilePictureURL

	if err := s.repo.Update(user); err != nil {
		return nil, err
	}

	if s.preferences != nil && req.Email != "" {
		s.preferences.UpsertPreference(ctx, user.ID, true, req.Email)
	}
	return user, nil
}
