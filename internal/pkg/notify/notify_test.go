package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/go-taskboard/taskboard/internal/engine/model"
	"github.com/go-taskboard/taskboard/internal/engine/repo"
)

func TestGatewayDisabled(t *testing.T) {
	gateway := NewGateway(Conf{}, nil)

	// Nothing is sent and nothing panics without a webhook.
	gateway.OtpIssued("alice@example.com", "123456")
	gateway.NotificationCreated(&model.Notification{NotificationId: "n1"})
	gateway.NotificationCreated(nil)
}

func TestOtpIssuedPostsWebhook(t *testing.T) {
	received := make(chan emailPayload, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload emailPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		received <- payload
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	gateway := NewGateway(Conf{Enabled: true, WebhookUrl: server.URL}, nil)
	gateway.OtpIssued("alice@example.com", "123456")

	select {
	case payload := <-received:
		assert.Equal(t, "alice@example.com", payload.To)
		assert.Equal(t, "Verify your email", payload.Subject)
		assert.Contains(t, payload.Body, "123456")
		assert.NotEmpty(t, payload.Id)
	case <-time.After(5 * time.Second):
		t.Fatal("webhook was not called")
	}
}

func TestDigestDisabledWithoutSpec(t *testing.T) {
	digest := NewDigest(NewGateway(Conf{}, nil), nil)
	require.NoError(t, digest.Start())
	digest.Stop()
}

func TestDigestRejectsBadSpec(t *testing.T) {
	digest := NewDigest(NewGateway(Conf{DigestSpec: "not a cron spec"}, nil), nil)
	assert.Error(t, digest.Start())
}

// digestStore backs a digest run; only user listing and notification
// inserts are exercised.
type digestStore struct {
	users         []model.User
	notifications []*model.Notification
}

func (s *digestStore) Users() repo.IUserRepository                 { return s }
func (s *digestStore) Projects() repo.IProjectRepository           { return nil }
func (s *digestStore) Tickets() repo.ITicketRepository             { return nil }
func (s *digestStore) Activities() repo.IActivityRepository        { return nil }
func (s *digestStore) Notifications() repo.INotificationRepository { return s }
func (s *digestStore) Settings() repo.IUserSettingsRepository      { return nil }
func (s *digestStore) OtpCodes() repo.IOtpRepository               { return nil }
func (s *digestStore) Atomic(fn func(repo.Store) error) error      { return fn(s) }

func (s *digestStore) CreateUser(*model.User) error                  { return nil }
func (s *digestStore) GetUserById(string) (*model.User, error)       { return nil, nil }
func (s *digestStore) GetUserByEmail(string) (*model.User, error)    { return nil, nil }
func (s *digestStore) ListUsersByIds([]string) ([]model.User, error) { return nil, nil }
func (s *digestStore) ListUsers() ([]model.User, error)              { return s.users, nil }

func (s *digestStore) CreateNotification(n *model.Notification) error {
	s.notifications = append(s.notifications, n)
	return nil
}
func (s *digestStore) GetNotification(string) (*model.Notification, error) { return nil, nil }
func (s *digestStore) ListByUser(string, bool, int) ([]model.Notification, error) {
	return nil, nil
}
func (s *digestStore) MarkRead(string) error                       { return nil }
func (s *digestStore) MarkAllRead(string) (int64, error)           { return 0, nil }
func (s *digestStore) CountUnread(string) (int64, error)           { return 0, nil }
func (s *digestStore) UpdateMetadata(string, datatypes.JSON) error { return nil }

type stubCounter map[string]int64

func (c stubCounter) CountAccessibleSince(userId string, _ time.Time) (int64, error) {
	return c[userId], nil
}

func TestDigestRunNotifiesActiveUsersOnly(t *testing.T) {
	store := &digestStore{users: []model.User{
		{UserId: "u1", Name: "Alice", Email: "alice@example.com"},
		{UserId: "u2", Name: "Bob", Email: "bob@example.com"},
	}}
	digest := NewDigest(NewGateway(Conf{}, store), stubCounter{"u1": 3})

	digest.run()

	require.Len(t, store.notifications, 1)
	notification := store.notifications[0]
	assert.Equal(t, "u1", notification.UserId)
	assert.Equal(t, model.NotificationActivityDigest, notification.Type)
	assert.Equal(t, "Daily Digest", notification.Title)
	assert.Equal(t, "There were 3 updates across your projects in the last 24 hours", notification.Message)
}
