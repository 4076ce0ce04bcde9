package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-taskboard/taskboard/internal/engine/model"
)

// TestCollaborationLifecycle drives a full collaboration round trip:
// project creation, invitation, ticket work and the resulting feeds
// and inboxes.
func TestCollaborationLifecycle(t *testing.T) {
	store := newFakeStore()
	dispatcher := &recordingDispatcher{}
	projects := NewProjectService(store, dispatcher)
	tickets := NewTicketService(store, dispatcher)
	activities := NewActivityService(store)
	notifications := NewNotificationService(store)

	alice := seedUser(store, "Alice", "alice@example.com")
	bob := seedUser(store, "Bob", "bob@example.com")

	// Alice creates a project and invites Bob.
	project, err := projects.CreateProject(alice.UserId, &model.CreateProjectReq{Name: "Launch", Color: "#123456"})
	require.NoError(t, err)
	require.NoError(t, projects.AddMember(alice.UserId, project.ProjectId, bob.Email))

	count, err := notifications.UnreadCount(bob.UserId)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Bob creates a ticket and assigns it to Alice.
	ticket, err := tickets.CreateTicket(bob.UserId, &model.CreateTicketReq{
		Title:      "Prepare checklist",
		ProjectId:  project.ProjectId,
		AssigneeId: alice.UserId,
		Priority:   model.PriorityHigh,
	})
	require.NoError(t, err)

	inbox, err := notifications.ListNotifications(alice.UserId, true, 0)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, model.NotificationTicketAssigned, inbox[0].Type)
	assert.Equal(t, `You've been assigned to ticket "Prepare checklist"`, inbox[0].Message)

	// Alice starts the work, Bob moves it to done.
	started := model.StatusInProgress
	require.NoError(t, tickets.UpdateTicket(alice.UserId, ticket.TicketId, &model.UpdateTicketReq{Status: &started}))
	done := model.StatusDone
	require.NoError(t, tickets.UpdatePosition(bob.UserId, ticket.TicketId, &model.UpdatePositionReq{NewPosition: 1, NewStatus: &done}))

	// The project feed reflects every step, newest first.
	feed, err := activities.ListByProject(bob.UserId, project.ProjectId, 0)
	require.NoError(t, err)
	require.Len(t, feed, 5)
	assert.Equal(t, `Moved ticket "Prepare checklist" to done`, feed[0].Details)
	assert.Equal(t, `Updated ticket "Prepare checklist": status from "todo" to "in-progress"`, feed[1].Details)
	assert.Equal(t, `Created ticket "Prepare checklist"`, feed[2].Details)
	assert.Equal(t, "Added bob@example.com to the project", feed[3].Details)
	assert.Equal(t, `Created project "Launch"`, feed[4].Details)

	// Both inboxes drain and stay drained.
	updated, err := notifications.MarkAllAsRead(alice.UserId)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)
	updated, err = notifications.MarkAllAsRead(bob.UserId)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)
	count, err = notifications.UnreadCount(alice.UserId)
	require.NoError(t, err)
	assert.Zero(t, count)

	// Every post-commit notification reached the dispatcher once.
	assert.Len(t, dispatcher.notifications, 2)
}
