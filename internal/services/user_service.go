package services

import (
	"context"

	"bookstore/internal/domain"
	"bookstore/internal/repos"
	"bookstore/internal/validate"
)

type UserService struct {
	Users *repos.UserRepo
}

func NewUserService(users *repos.UserRepo) *UserService {
	return &UserService{Users: users}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.Users.List(ctx)
}

func (s *UserService) ByRole(ctx context.Context, role string) ([]domain.User, error) {
	role, ok := validate.Role(role)
	if !ok {
		return nil, invalid("Invalid role. Must be buyer or seller")
	}
	return s.Users.ByRole(ctx, role)
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.Users.ByID(ctx, id)
	return u, notFound(err)
}

func (s *UserService) Create(ctx context.Context, name, role string) (domain.User, error) {
	u, err := checkUser(name, role)
	if err != nil {
		return domain.User{}, err
	}
	if u.ID, err = s.Users.Create(ctx, u.Name, u.Role); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

func (s *UserService) Update(ctx context.Context, id int64, name, role string) error {
	u, err := checkUser(name, role)
	if err != nil {
		return err
	}
	return notFound(s.Users.Update(ctx, id, u.Name, u.Role))
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	return notFound(s.Users.Delete(ctx, id))
}

func checkUser(name, role string) (domain.User, error) {
	name, okName := validate.Name(name)
	if !okName || role == "" {
		return domain.User{}, invalid("Name and role are required")
	}
	role, ok := validate.Role(role)
	if !ok {
		return domain.User{}, invalid("Role must be buyer or seller")
	}
	return domain.User{Name: name, Role: role}, nil
}
