package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"reflecto-be/internal/entity"
	"reflecto-be/internal/model"
	"reflecto-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestFactory opens an isolated in-memory database and migrates the
// full schema. Each test gets its own database name so shared-cache
// connections from the pool land on the same store without leaking
// state across tests.
func newTestFactory(t *testing.T) unitofwork.RepositoryFactory {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.EmailVerificationToken{},
		&model.PasswordResetToken{},
		&model.UserRefreshToken{},
		&model.UserProvider{},
		&model.Notebook{},
		&model.NotebookTag{},
		&model.Entry{},
		&model.EntryEmbedding{},
		&model.Tag{},
		&model.ChatSession{},
		&model.ChatMessage{},
		&model.ContactMessage{},
		&model.FeedbackMessage{},
		&model.Notification{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	return unitofwork.NewRepositoryFactory(db)
}

// testLogger discards everything. Service log output is not under test.
type testLogger struct{}

func (testLogger) Debug(module, message string, details map[string]interface{}) {}
func (testLogger) Info(module, message string, details map[string]interface{})  {}
func (testLogger) Warn(module, message string, details map[string]interface{})  {}
func (testLogger) Error(module, message string, details map[string]interface{}) {}
func (testLogger) Sync() error                                                  { return nil }

func seedUser(t *testing.T, factory unitofwork.RepositoryFactory) *entity.Identity {
	t.Helper()

	user := &entity.User{
		Id:            uuid.New(),
		Email:         fmt.Sprintf("user-%s@example.com", uuid.NewString()[:8]),
		DisplayName:   "Test User",
		Role:          entity.UserRoleUser,
		Status:        entity.UserStatusActive,
		EmailVerified: true,
		CreatedAt:     time.Now(),
	}
	uow := factory.NewUnitOfWork(context.Background())
	if err := uow.UserRepository().Create(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return &entity.Identity{Id: user.Id, Role: user.Role}
}

func seedUserWithHandle(t *testing.T, factory unitofwork.RepositoryFactory, handle string) *entity.Identity {
	t.Helper()

	user := &entity.User{
		Id:            uuid.New(),
		Email:         fmt.Sprintf("user-%s@example.com", uuid.NewString()[:8]),
		DisplayName:   "Test User",
		PublicHandle:  &handle,
		Role:          entity.UserRoleUser,
		Status:        entity.UserStatusActive,
		EmailVerified: true,
		CreatedAt:     time.Now(),
	}
	uow := factory.NewUnitOfWork(context.Background())
	if err := uow.UserRepository().Create(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return &entity.Identity{Id: user.Id, Role: user.Role}
}

func seedNotebook(t *testing.T, factory unitofwork.RepositoryFactory, owner *entity.Identity, visibility entity.NotebookVisibility) *entity.Notebook {
	t.Helper()

	notebook := &entity.Notebook{
		Id:         uuid.New(),
		Title:      "Morning pages",
		UserId:     owner.Id,
		Visibility: visibility,
		CreatedAt:  time.Now(),
	}
	if visibility == entity.NotebookPublic {
		now := time.Now()
		notebook.PublishedAt = &now
	}
	uow := factory.NewUnitOfWork(context.Background())
	if err := uow.NotebookRepository().Create(context.Background(), notebook); err != nil {
		t.Fatalf("failed to seed notebook: %v", err)
	}
	return notebook
}

func seedEntry(t *testing.T, factory unitofwork.RepositoryFactory, owner *entity.Identity, notebookId uuid.UUID, title string) *entity.Entry {
	t.Helper()

	entry := &entity.Entry{
		Id:         uuid.New(),
		Title:      title,
		Content:    "Wrote three pages before coffee.",
		NotebookId: notebookId,
		UserId:     owner.Id,
		CreatedAt:  time.Now(),
	}
	uow := factory.NewUnitOfWork(context.Background())
	if err := uow.EntryRepository().Create(context.Background(), entry); err != nil {
		t.Fatalf("failed to seed entry: %v", err)
	}
	return entry
}

func seedSession(t *testing.T, factory unitofwork.RepositoryFactory, owner *entity.Identity, status entity.ChatSessionStatus) *entity.ChatSession {
	t.Helper()

	session := &entity.ChatSession{
		Id:        uuid.New(),
		UserId:    owner.Id,
		Title:     defaultSessionTitle,
		Status:    status,
		CreatedAt: time.Now(),
	}
	if status == entity.ChatSessionArchived {
		now := time.Now()
		session.ArchivedAt = &now
	}
	uow := factory.NewUnitOfWork(context.Background())
	if err := uow.ChatSessionRepository().Create(context.Background(), session); err != nil {
		t.Fatalf("failed to seed chat session: %v", err)
	}
	return session
}
