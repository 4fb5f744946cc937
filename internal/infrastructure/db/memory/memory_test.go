package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/scrapeapi/accounts-api/internal/core/domain"
)

func TestUserRepository_CreateFind(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	if err := repo.Create(ctx, &domain.User{Name: "alice", Email: "a@example.com"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.FindByName(ctx, "alice")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Email != "a@example.com" {
		t.Fatalf("unexpected user %+v", got)
	}

	got.Email = "mutated"
	again, _ := repo.FindByName(ctx, "alice")
	if again.Email != "a@example.com" {
		t.Fatalf("stored user was mutated through returned pointer")
	}
}

func TestUserRepository_NotFound(t *testing.T) {
	if _, err := NewUserRepository().FindByName(context.Background(), "ghost"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_Duplicate(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()
	_ = repo.Create(ctx, &domain.User{Name: "bob"})

	err := repo.Create(ctx, &domain.User{Name: "bob"})
	var se *domain.StorageError
	if !errors.As(err, &se) {
		t.Fatalf("expected StorageError, got %v", err)
	}
}

func TestUserRepository_Concurrent(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()
	_ = repo.Create(ctx, &domain.User{Name: "alice"})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.FindByName(ctx, "alice"); err != nil {
				t.Errorf("find: %v", err)
			}
		}()
	}
	wg.Wait()
}
