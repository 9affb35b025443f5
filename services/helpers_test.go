package services

import (
	"context"
	"testing"
	"time"

	"github.com/Nikk8744/F-T-T-sub000/models"
	"github.com/Nikk8744/F-T-T-sub000/services/logger"
	"github.com/Nikk8744/F-T-T-sub000/services/notification"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// today is the fixed scan date used across tests
var today = time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)

func day(offset int) *time.Time {
	d := today.AddDate(0, 0, offset)
	return &d
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func createUsers(t *testing.T, db *gorm.DB, n int) []models.User {
	t.Helper()
	users := make([]models.User, n)
	for i := range users {
		users[i] = models.User{Name: "user", Email: "user" + string(rune('a'+i)) + "@example.com"}
	}
	if err := db.Create(&users).Error; err != nil {
		t.Fatalf("create users: %v", err)
	}
	return users
}

func createTask(t *testing.T, db *gorm.DB, subject string, due *time.Time, status string, owner models.User, assignees ...models.User) models.Task {
	t.Helper()
	task := models.Task{
		Subject:   subject,
		DueDate:   due,
		Status:    status,
		OwnerID:   owner.ID,
		Assignees: assignees,
	}
	if err := db.Create(&task).Error; err != nil {
		t.Fatalf("create task: %v", err)
	}
	return task
}

func createProject(t *testing.T, db *gorm.DB, name string, end *time.Time, status string, owner models.User, members ...models.User) models.Project {
	t.Helper()
	project := models.Project{
		Name:    name,
		EndDate: end,
		Status:  status,
		OwnerID: owner.ID,
		Members: members,
	}
	if err := db.Create(&project).Error; err != nil {
		t.Fatalf("create project: %v", err)
	}
	return project
}

type pipelineFixture struct {
	db       *gorm.DB
	dir      *notification.Directory
	service  *NotificationService
	pipeline *DeadlinePipeline
}

func newPipelineFixture(t *testing.T, warningDays int) *pipelineFixture {
	t.Helper()
	db := newTestDB(t)
	dir := notification.NewDirectory()
	svc := NewNotificationService(NotificationServiceOptions{
		DB:     db,
		Broker: notification.NewLocalBroker(dir, logger.Nop{}),
		Logger: logger.Nop{},
	})
	store := NewGormDeadlineStore(db)
	pipeline := NewDeadlinePipeline(DeadlinePipelineOptions{
		Scanner:     NewDeadlineScanner(store, time.UTC),
		Resolver:    NewRecipientResolver(store),
		Dispatcher:  NewNotificationDispatcher(svc, logger.Nop{}),
		WarningDays: warningDays,
		Logger:      logger.Nop{},
	})
	return &pipelineFixture{db: db, dir: dir, service: svc, pipeline: pipeline}
}

func (f *pipelineFixture) notificationsFor(t *testing.T, entityType string, entityID uint) []models.Notification {
	t.Helper()
	ns, err := f.service.ListForEntity(context.Background(), entityType, entityID)
	if err != nil {
		t.Fatalf("ListForEntity: %v", err)
	}
	return ns
}

func recipientsOf(ns []models.Notification) map[uint]int {
	out := make(map[uint]int)
	for _, n := range ns {
		out[n.UserID]++
	}
	return out
}

