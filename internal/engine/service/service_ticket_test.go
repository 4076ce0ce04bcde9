package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-taskboard/taskboard/internal/engine/model"
)

func newTicketFixture(t *testing.T) (*fakeStore, *TicketService, *recordingDispatcher, *model.User, *model.User, *model.Project) {
	t.Helper()
	store := newFakeStore()
	dispatcher := &recordingDispatcher{}
	projects := NewProjectService(store, dispatcher)
	tickets := NewTicketService(store, dispatcher)

	owner := seedUser(store, "Alice", "alice@example.com")
	member := seedUser(store, "Bob", "bob@example.com")
	project, err := projects.CreateProject(owner.UserId, &model.CreateProjectReq{Name: "Apollo"})
	require.NoError(t, err)
	require.NoError(t, projects.AddMember(owner.UserId, project.ProjectId, member.Email))
	return store, tickets, dispatcher, owner, member, project
}

func TestCreateTicketPositions(t *testing.T) {
	_, svc, _, owner, member, project := newTicketFixture(t)

	first, err := svc.CreateTicket(owner.UserId, &model.CreateTicketReq{
		Title:     "Set up CI",
		ProjectId: project.ProjectId,
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, first.Position)
	assert.Equal(t, model.StatusTodo, first.Status)
	assert.Equal(t, model.PriorityMedium, first.Priority)
	assert.Equal(t, owner.UserId, first.CreatorId)

	// Members can create tickets too; positions keep growing.
	second, err := svc.CreateTicket(member.UserId, &model.CreateTicketReq{
		Title:     "Write docs",
		ProjectId: project.ProjectId,
	})
	require.NoError(t, err)
	assert.Equal(t, 2.0, second.Position)
}

func TestCreateTicketConcurrentPositionsUnique(t *testing.T) {
	_, svc, _, owner, _, project := newTicketFixture(t)

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	created := make([]*model.Ticket, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			created[i], errs[i] = svc.CreateTicket(owner.UserId, &model.CreateTicketReq{
				Title:     "concurrent",
				ProjectId: project.ProjectId,
			})
		}(i)
	}
	wg.Wait()

	positions := make(map[float64]bool, n)
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.False(t, positions[created[i].Position], "position %v assigned twice", created[i].Position)
		positions[created[i].Position] = true
	}
}

func TestCreateTicketActivityAndAssignment(t *testing.T) {
	store, svc, dispatcher, owner, member, project := newTicketFixture(t)

	ticket, err := svc.CreateTicket(owner.UserId, &model.CreateTicketReq{
		Title:      "Fix login",
		ProjectId:  project.ProjectId,
		AssigneeId: member.UserId,
	})
	require.NoError(t, err)

	last := store.activities[len(store.activities)-1]
	assert.Equal(t, model.ActivityTicketCreated, last.Type)
	assert.Equal(t, `Created ticket "Fix login"`, last.Details)
	assert.Equal(t, ticket.TicketId, last.TicketId)

	notification := store.notifications[len(store.notifications)-1]
	assert.Equal(t, member.UserId, notification.UserId)
	assert.Equal(t, model.NotificationTicketAssigned, notification.Type)
	assert.Equal(t, "Ticket Assigned", notification.Title)
	assert.Equal(t, `You've been assigned to ticket "Fix login"`, notification.Message)
	assert.Equal(t, ticket.TicketId, notification.RelatedTicketId)
	assert.Equal(t, project.ProjectId, notification.RelatedProjectId)
	assert.NotEmpty(t, dispatcher.notifications)
}

func TestCreateTicketSelfAssignNoNotification(t *testing.T) {
	store, svc, _, owner, _, project := newTicketFixture(t)
	before := len(store.notifications)

	_, err := svc.CreateTicket(owner.UserId, &model.CreateTicketReq{
		Title:      "Self assigned",
		ProjectId:  project.ProjectId,
		AssigneeId: owner.UserId,
	})
	require.NoError(t, err)
	assert.Len(t, store.notifications, before)
}

func TestCreateTicketValidation(t *testing.T) {
	store, svc, _, owner, _, project := newTicketFixture(t)
	outsider := seedUser(store, "Carol", "carol@example.com")

	_, err := svc.CreateTicket(owner.UserId, &model.CreateTicketReq{ProjectId: project.ProjectId})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.CreateTicket(owner.UserId, &model.CreateTicketReq{
		Title: "x", ProjectId: project.ProjectId, Status: "blocked",
	})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.CreateTicket(outsider.UserId, &model.CreateTicketReq{
		Title: "x", ProjectId: project.ProjectId,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateTicketDiff(t *testing.T) {
	store, svc, _, owner, member, project := newTicketFixture(t)

	ticket, err := svc.CreateTicket(owner.UserId, &model.CreateTicketReq{
		Title:     "Old title",
		ProjectId: project.ProjectId,
		Priority:  model.PriorityLow,
	})
	require.NoError(t, err)

	newTitle := "New title"
	newStatus := model.StatusInProgress
	newPriority := model.PriorityHigh
	err = svc.UpdateTicket(member.UserId, ticket.TicketId, &model.UpdateTicketReq{
		Title:      &newTitle,
		Status:     &newStatus,
		Priority:   &newPriority,
		AssigneeId: &member.UserId,
	})
	require.NoError(t, err)

	last := store.activities[len(store.activities)-1]
	assert.Equal(t, model.ActivityTicketUpdated, last.Type)
	assert.Equal(t,
		`Updated ticket "Old title": title from "Old title" to "New title", status from "todo" to "in-progress", priority from "low" to "high", assignee`,
		last.Details)

	stored, err := store.GetTicket(ticket.TicketId)
	require.NoError(t, err)
	assert.Equal(t, "New title", stored.Title)
	assert.Equal(t, model.StatusInProgress, stored.Status)
	assert.Equal(t, member.UserId, stored.AssigneeId)
}

func TestUpdateTicketNoOp(t *testing.T) {
	store, svc, _, owner, _, project := newTicketFixture(t)

	ticket, err := svc.CreateTicket(owner.UserId, &model.CreateTicketReq{
		Title:     "Stable",
		ProjectId: project.ProjectId,
	})
	require.NoError(t, err)
	activities := len(store.activities)

	sameTitle := "Stable"
	sameStatus := model.StatusTodo
	err = svc.UpdateTicket(owner.UserId, ticket.TicketId, &model.UpdateTicketReq{
		Title:  &sameTitle,
		Status: &sameStatus,
	})
	require.NoError(t, err)

	// Nothing changed, so no activity was appended.
	assert.Len(t, store.activities, activities)
}

func TestUpdateTicketWritesUndiffedFields(t *testing.T) {
	store, svc, _, owner, _, project := newTicketFixture(t)

	ticket, err := svc.CreateTicket(owner.UserId, &model.CreateTicketReq{
		Title:       "Stable",
		ProjectId:   project.ProjectId,
		Description: "same words",
	})
	require.NoError(t, err)
	activities := len(store.activities)

	// Description, due date and tags are written whenever present,
	// even when unchanged, and never appear among the changes.
	sameDescription := "same words"
	due := int64(1767225600000)
	tags := []string{"infra"}
	err = svc.UpdateTicket(owner.UserId, ticket.TicketId, &model.UpdateTicketReq{
		Description: &sameDescription,
		DueDate:     &due,
		Tags:        &tags,
	})
	require.NoError(t, err)

	require.Len(t, store.activities, activities+1)
	last := store.activities[len(store.activities)-1]
	assert.Equal(t, model.ActivityTicketUpdated, last.Type)
	assert.Equal(t, `Updated ticket "Stable": `, last.Details)

	stored, err := store.GetTicket(ticket.TicketId)
	require.NoError(t, err)
	assert.Equal(t, "same words", stored.Description)
	require.NotNil(t, stored.DueDate)
	assert.Equal(t, due, *stored.DueDate)
	assert.Equal(t, []string{"infra"}, []string(stored.Tags))
}

func TestUpdateTicketAssignmentNotifies(t *testing.T) {
	store, svc, dispatcher, owner, member, project := newTicketFixture(t)

	ticket, err := svc.CreateTicket(owner.UserId, &model.CreateTicketReq{
		Title:     "Handover",
		ProjectId: project.ProjectId,
	})
	require.NoError(t, err)
	before := len(dispatcher.notifications)

	err = svc.UpdateTicket(owner.UserId, ticket.TicketId, &model.UpdateTicketReq{AssigneeId: &member.UserId})
	require.NoError(t, err)

	notification := store.notifications[len(store.notifications)-1]
	assert.Equal(t, member.UserId, notification.UserId)
	assert.Equal(t, `You've been assigned to ticket "Handover"`, notification.Message)
	assert.Len(t, dispatcher.notifications, before+1)

	// Reassigning to the actor themselves notifies nobody.
	err = svc.UpdateTicket(member.UserId, ticket.TicketId, &model.UpdateTicketReq{AssigneeId: &member.UserId})
	require.NoError(t, err)
	assert.Len(t, dispatcher.notifications, before+1)
}

func TestUpdatePosition(t *testing.T) {
	store, svc, _, owner, _, project := newTicketFixture(t)

	ticket, err := svc.CreateTicket(owner.UserId, &model.CreateTicketReq{
		Title:     "Movable",
		ProjectId: project.ProjectId,
	})
	require.NoError(t, err)
	activities := len(store.activities)

	// A reorder within the same column still records the move, just
	// without a target column.
	err = svc.UpdatePosition(owner.UserId, ticket.TicketId, &model.UpdatePositionReq{NewPosition: 2.5})
	require.NoError(t, err)
	require.Len(t, store.activities, activities+1)
	moved := store.activities[len(store.activities)-1]
	assert.Equal(t, model.ActivityTicketMoved, moved.Type)
	assert.Equal(t, `Moved ticket "Movable"`, moved.Details)

	stored, err := store.GetTicket(ticket.TicketId)
	require.NoError(t, err)
	assert.Equal(t, 2.5, stored.Position)

	// Moving across columns names the target column.
	done := model.StatusDone
	err = svc.UpdatePosition(owner.UserId, ticket.TicketId, &model.UpdatePositionReq{NewPosition: 1, NewStatus: &done})
	require.NoError(t, err)

	require.Len(t, store.activities, activities+2)
	last := store.activities[len(store.activities)-1]
	assert.Equal(t, model.ActivityTicketMoved, last.Type)
	assert.Equal(t, `Moved ticket "Movable" to done`, last.Details)

	stored, err = store.GetTicket(ticket.TicketId)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDone, stored.Status)
}

func TestListTicketsOrderAndAccess(t *testing.T) {
	store, svc, _, owner, _, project := newTicketFixture(t)
	outsider := seedUser(store, "Carol", "carol@example.com")

	a, err := svc.CreateTicket(owner.UserId, &model.CreateTicketReq{Title: "a", ProjectId: project.ProjectId})
	require.NoError(t, err)
	b, err := svc.CreateTicket(owner.UserId, &model.CreateTicketReq{Title: "b", ProjectId: project.ProjectId})
	require.NoError(t, err)

	require.NoError(t, svc.UpdatePosition(owner.UserId, b.TicketId, &model.UpdatePositionReq{NewPosition: 0.5}))

	tickets, err := svc.ListTickets(owner.UserId, project.ProjectId)
	require.NoError(t, err)
	require.Len(t, tickets, 2)
	assert.Equal(t, b.TicketId, tickets[0].TicketId)
	assert.Equal(t, a.TicketId, tickets[1].TicketId)

	// Non-members and anonymous callers get an empty board.
	tickets, err = svc.ListTickets(outsider.UserId, project.ProjectId)
	require.NoError(t, err)
	assert.Empty(t, tickets)
	tickets, err = svc.ListTickets("", project.ProjectId)
	require.NoError(t, err)
	assert.Empty(t, tickets)

	ticket, err := svc.GetTicket(outsider.UserId, a.TicketId)
	require.NoError(t, err)
	assert.Nil(t, ticket)
}
