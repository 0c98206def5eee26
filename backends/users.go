package backends

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-gateway/core"
	"github.com/goliatone/go-gateway/store/memory"
)

// UserService is the in-process user backend.
type UserService struct {
	repo *memory.UserRepository
	now  func() time.Time
}

func NewUserService(repo *memory.UserRepository, options ...UserServiceOption) *UserService {
	if repo == nil {
		repo = memory.NewUserRepository()
	}
	service := &UserService{
		repo: repo,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, option := range options {
		if option == nil {
			continue
		}
		option(service)
	}
	return service
}

type UserServiceOption func(*UserService)

func WithUserClock(now func() time.Time) UserServiceOption {
	return func(s *UserService) {
		s.now = now
	}
}

func (s *UserService) CreateUser(ctx context.Context, req core.CreateUserRequest) (core.User, error) {
	now := s.now()
	return s.repo.Create(ctx, core.User{
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *UserService) GetUser(ctx context.Context, req core.GetUserRequest) (core.User, error) {
	return s.repo.Get(ctx, req.ID)
}

// UpdateUser applies partial updates; empty fields keep the stored value.
func (s *UserService) UpdateUser(ctx context.Context, req core.UpdateUserRequest) (core.User, error) {
	return s.repo.Update(ctx, req.ID, func(user core.User) core.User {
		if name := strings.TrimSpace(req.Name); name != "" {
			user.Name = name
		}
		if email := strings.TrimSpace(req.Email); email != "" {
			user.Email = email
		}
		if phone := strings.TrimSpace(req.Phone); phone != "" {
			user.Phone = phone
		}
		user.UpdatedAt = s.now()
		return user
	})
}

// DeleteUser reports the outcome in the response body; a missing user is a
// success=false reply, not an error.
func (s *UserService) DeleteUser(ctx context.Context, req core.DeleteUserRequest) (core.DeleteUserResponse, error) {
	if s.repo.Delete(ctx, req.ID) {
		return core.DeleteUserResponse{
			Success: true,
			Message: fmt.Sprintf("user %d deleted", req.ID),
		}, nil
	}
	return core.DeleteUserResponse{
		Success: false,
		Message: fmt.Sprintf("user %d not found", req.ID),
	}, nil
}

func (s *UserService) ListUsers(ctx context.Context, req core.ListUsersRequest) (core.ListUsersResponse, error) {
	page := core.PageRequest{Page: req.Page, Limit: req.Limit}.Normalize()
	users, total := s.repo.List(ctx, page)
	return core.ListUsersResponse{
		Users: users,
		Total: total,
		Page:  page.Page,
		Limit: page.Limit,
	}, nil
}

var _ core.UserBackend = (*UserService)(nil)
