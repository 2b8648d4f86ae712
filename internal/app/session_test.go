package app

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/go-task-tracker/internal/domain"
	"github.com/jsamuelsen11/go-task-tracker/internal/domain/user"
	"github.com/jsamuelsen11/go-task-tracker/mocks"
)

var sessionUserID = uuid.MustParse("0b2e1f84-93d8-4792-b2e1-6fbbfb376d74")

func TestBootstrap_CreatesUserOnFirstRun(t *testing.T) {
	t.Parallel()

	svc := mocks.NewMockUserService(t)
	svc.EXPECT().CreateUser(mock.Anything, "Test user", sessionUserID).
		Return(&user.User{ID: sessionUserID, Name: "Test user"}, nil)

	s, err := Bootstrap(context.Background(), svc, sessionUserID, "Test user", discardLogger())
	if err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}
	if s.UserID != sessionUserID || s.UserName != "Test user" {
		t.Errorf("Session = %+v, want id %s and name %q", s, sessionUserID, "Test user")
	}
}

func TestBootstrap_ReusesExistingUser(t *testing.T) {
	t.Parallel()

	svc := mocks.NewMockUserService(t)
	svc.EXPECT().CreateUser(mock.Anything, "Test user", sessionUserID).
		Return(nil, user.ErrAlreadyExists)
	svc.EXPECT().GetUser(mock.Anything, sessionUserID).
		Return(&user.User{ID: sessionUserID, Name: "Renamed"}, true, nil)

	s, err := Bootstrap(context.Background(), svc, sessionUserID, "Test user", nil)
	if err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}
	if s.UserName != "Renamed" {
		t.Errorf("UserName = %q, want the stored name %q", s.UserName, "Renamed")
	}
}

func TestBootstrap_ValidationFailureIsReturned(t *testing.T) {
	t.Parallel()

	svc := mocks.NewMockUserService(t)
	invalid := &domain.ValidationError{Fields: map[string]string{"name": domain.MsgRequired}}
	svc.EXPECT().CreateUser(mock.Anything, "", sessionUserID).Return(nil, invalid)
	svc.EXPECT().GetUser(mock.Anything, sessionUserID).Return(nil, false, nil)

	_, err := Bootstrap(context.Background(), svc, sessionUserID, "", nil)
	if !errors.Is(err, domain.ErrInvalidParameter) {
		t.Errorf("error = %v, want ErrInvalidParameter", err)
	}
}

func TestBootstrap_StorageFailureIsReturned(t *testing.T) {
	t.Parallel()

	svc := mocks.NewMockUserService(t)
	svc.EXPECT().CreateUser(mock.Anything, "Test user", sessionUserID).Return(nil, domain.ErrExternalService)

	_, err := Bootstrap(context.Background(), svc, sessionUserID, "Test user", nil)
	if !errors.Is(err, domain.ErrExternalService) {
		t.Errorf("error = %v, want ErrExternalService", err)
	}
}
