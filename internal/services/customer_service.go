package services

import (
	"context"
	"errors"
	"fmt"
	"shop-service/internal/domain"
	"shop-service/internal/repository"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrCustomerExists    = errors.New("user already exists")
	ErrCustomerNotFound  = errors.New("user does not exist")
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrInvalidCustomer   = errors.New("invalid customer details")
)

type SignUpInput struct {
	Email     string
	FirstName string
	LastName  string
	Phone     string
	Password  string
}

type CustomerService struct {
	repo   repository.CustomerRepository
	cost   int
	logger *zap.Logger
}

func NewCustomerService(r repository.CustomerRepository, logger *zap.Logger) *CustomerService {
	return &CustomerService{repo: r, cost: bcrypt.DefaultCost, logger: logger}
}

// SetHashCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func (s *CustomerService) SetHashCost(cost int) {
	s.cost = cost
}

func (s *CustomerService) SignUp(ctx context.Context, in SignUpInput) (*domain.Customer, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidCustomer)
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCustomerExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	c := &domain.Customer{
		Email:     email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
		Password:  string(hash),
	}
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Info("customer signed up", zap.Uint64("customer_id", c.ID))
	return c, nil
}

func (s *CustomerService) SignIn(ctx context.Context, email, password string) (*domain.Customer, error) {
	c, err := s.repo.FindByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCustomerNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.Password), []byte(password)); err != nil {
		return nil, ErrIncorrectPassword
	}
	return c, nil
}

func (s *CustomerService) Get(ctx context.Context, id uint64) (*domain.Customer, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCustomerNotFound
	}
	return c, nil
}

func (s *CustomerService) IsAdmin(ctx context.Context, id uint64) (bool, error) {
	c, err := s.Get(ctx, id)
	if errors.Is(err, ErrCustomerNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return c.Admin, nil
}
