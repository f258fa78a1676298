package notificationrepo_test

import (
	"context"
	"testing"
	"time"

	"lastmile/internal/adapters/out/postgres/notificationrepo"
	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/notification"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id any, aggregate any) {
	m.Called(id, aggregate)
}

// NotificationRepositoryIntegrationTestSuite provides integration tests for
// NotificationRepository using PostgreSQL containers.
type NotificationRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *notificationrepo.GormNotificationRepository
	tracker    *MockAggregateTracker
}

func (suite *NotificationRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&notificationrepo.NotificationDTO{}))
}

func (suite *NotificationRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE notifications").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = notificationrepo.NewGormNotificationRepository(suite.db, suite.tracker)
}

func (suite *NotificationRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *NotificationRepositoryIntegrationTestSuite) TestAdd_ValidNotification_Success() {
	ctx := context.Background()

	entry := suite.createTestNotification(time.Now())
	suite.tracker.On("TrackAggregate", entry.ID(), entry).Once()

	err := suite.repository.Add(ctx, entry)
	suite.Require().NoError(err)

	suite.assertNotificationCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *NotificationRepositoryIntegrationTestSuite) TestAdd_UnconstructedAggregate_Fails() {
	ctx := context.Background()

	err := suite.repository.Add(ctx, &notification.Notification{})
	suite.Require().ErrorIs(err, notification.ErrNotificationIsNotConstructed)

	suite.assertNotificationCount(0)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *NotificationRepositoryIntegrationTestSuite) TestGetUndispatched_ReturnsPendingAndFailedOldestFirst() {
	ctx := context.Background()

	base := time.Date(2026, 5, 2, 8, 0, 0, 0, time.UTC)

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(4)

	oldestPending := suite.createTestNotification(base)
	failed := suite.createTestNotification(base.Add(1 * time.Minute))
	suite.Require().NoError(failed.MarkFailed())
	sent := suite.createTestNotification(base.Add(2 * time.Minute))
	suite.Require().NoError(sent.MarkSent("SM-receipt", base.Add(3*time.Minute)))
	newestPending := suite.createTestNotification(base.Add(4 * time.Minute))

	for _, n := range []*notification.Notification{oldestPending, failed, sent, newestPending} {
		suite.Require().NoError(suite.repository.Add(ctx, n))
	}

	undispatched, err := suite.repository.GetUndispatched(ctx, 10)
	suite.Require().NoError(err)

	suite.Require().Len(undispatched, 3)
	suite.True(undispatched[0].ID().IsEqual(oldestPending.ID()))
	suite.True(undispatched[1].ID().IsEqual(failed.ID()))
	suite.True(undispatched[2].ID().IsEqual(newestPending.ID()))

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *NotificationRepositoryIntegrationTestSuite) TestGetUndispatched_RespectsLimit() {
	ctx := context.Background()

	base := time.Date(2026, 5, 2, 8, 0, 0, 0, time.UTC)

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(3)
	for i := range 3 {
		entry := suite.createTestNotification(base.Add(time.Duration(i) * time.Minute))
		suite.Require().NoError(suite.repository.Add(ctx, entry))
	}

	undispatched, err := suite.repository.GetUndispatched(ctx, 2)
	suite.Require().NoError(err)
	suite.Len(undispatched, 2)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *NotificationRepositoryIntegrationTestSuite) TestUpdate_MarkSent_PersistsOutcome() {
	ctx := context.Background()

	entry := suite.createTestNotification(time.Now())
	suite.tracker.On("TrackAggregate", entry.ID(), entry).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, entry))

	sentAt := time.Date(2026, 5, 2, 9, 30, 0, 0, time.UTC)
	suite.Require().NoError(entry.MarkSent("SM-1234", sentAt))
	suite.Require().NoError(suite.repository.Update(ctx, entry))

	retrieved, err := suite.repository.Get(ctx, entry.ID())
	suite.Require().NoError(err)
	suite.Equal(notification.Sent, retrieved.Status())
	suite.Equal(1, retrieved.Attempts())
	suite.Require().NotNil(retrieved.ReceiptID())
	suite.Equal("SM-1234", *retrieved.ReceiptID())
	suite.Require().NotNil(retrieved.SentAt())
	suite.Equal(sentAt, *retrieved.SentAt())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *NotificationRepositoryIntegrationTestSuite) TestUpdate_MarkFailed_StaysRetryable() {
	ctx := context.Background()

	entry := suite.createTestNotification(time.Now())
	suite.tracker.On("TrackAggregate", entry.ID(), entry).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, entry))

	suite.Require().NoError(entry.MarkFailed())
	suite.Require().NoError(suite.repository.Update(ctx, entry))

	undispatched, err := suite.repository.GetUndispatched(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(undispatched, 1)
	suite.Equal(notification.Failed, undispatched[0].Status())
	suite.Equal(1, undispatched[0].Attempts())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *NotificationRepositoryIntegrationTestSuite) TestGet_NonExistentNotification_ReturnsNotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())
	suite.Require().Error(err)
	suite.Contains(err.Error(), "not found")
}

func (suite *NotificationRepositoryIntegrationTestSuite) TestUpdate_NonExistentNotification_ReturnsError() {
	ctx := context.Background()

	entry := suite.createTestNotification(time.Now())

	err := suite.repository.Update(ctx, entry)
	suite.Require().Error(err)
	suite.Contains(err.Error(), "not found")

	suite.tracker.AssertExpectations(suite.T())
}

// createTestNotification creates a pending outbox entry with default values.
func (suite *NotificationRepositoryIntegrationTestSuite) createTestNotification(
	createdAt time.Time,
) *notification.Notification {
	entry, err := notification.NewNotification(
		kernel.NewUUID(),
		delivery.ID(42),
		"+15550123",
		"Your delivery is booked. Confirmation code: 7305",
		createdAt,
	)
	suite.Require().NoError(err)
	return entry
}

// assertNotificationCount verifies the number of notifications in the database.
func (suite *NotificationRepositoryIntegrationTestSuite) assertNotificationCount(expected int) {
	var count int64
	err := suite.db.Model(&notificationrepo.NotificationDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestNotificationRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(NotificationRepositoryIntegrationTestSuite))
}
