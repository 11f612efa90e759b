package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/secmon-lab/bcplanner/pkg/domain/interfaces"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
	"github.com/secmon-lab/bcplanner/pkg/repository/firestore"
	"github.com/secmon-lab/bcplanner/pkg/repository/memory"
	"github.com/secmon-lab/bcplanner/pkg/repository/sql"
)

type repoFactory func(t *testing.T) interfaces.Repository

// runAllBackends runs fn against every available backend
func runAllBackends(t *testing.T, fn func(t *testing.T, newRepo repoFactory)) {
	t.Run("Memory", func(t *testing.T) {
		fn(t, newMemoryRepository)
	})
	t.Run("SQLite", func(t *testing.T) {
		fn(t, newSQLiteRepository)
	})
	t.Run("Postgres", func(t *testing.T) {
		fn(t, newPostgresRepository)
	})
	t.Run("Firestore", func(t *testing.T) {
		fn(t, newFirestoreRepository)
	})
}

func newMemoryRepository(t *testing.T) interfaces.Repository {
	t.Helper()
	return memory.New()
}

func newSQLiteRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	repo, err := sql.New(context.Background(), sql.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("failed to create sqlite repository: %v", err)
	}
	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Errorf("failed to close sqlite repository: %v", err)
		}
	})
	return repo
}

func newPostgresRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}

	repo, err := sql.New(context.Background(), sql.DriverPostgres, dsn)
	if err != nil {
		t.Fatalf("failed to create postgres repository: %v", err)
	}
	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Errorf("failed to close postgres repository: %v", err)
		}
	})
	return repo
}

func newFirestoreRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}

	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")
	if databaseID == "" {
		t.Skip("TEST_FIRESTORE_DATABASE_ID not set")
	}

	ctx := context.Background()
	prefix := fmt.Sprintf("test_%d", time.Now().UnixNano())
	repo, err := firestore.New(ctx, projectID, databaseID, firestore.WithCollectionPrefix(prefix))
	if err != nil {
		t.Fatalf("failed to create firestore repository: %v", err)
	}
	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Errorf("failed to close firestore repository: %v", err)
		}
	})
	return repo
}

// newOwner returns an owner ID unique to the test so shared databases do not collide
func newOwner(t *testing.T) model.OwnerID {
	t.Helper()
	return model.OwnerID(fmt.Sprintf("owner-%d", time.Now().UnixNano()))
}
