package service

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"gorm.io/datatypes"

	"github.com/go-taskboard/taskboard/internal/engine/model"
	"github.com/go-taskboard/taskboard/internal/engine/repo"
	"github.com/go-taskboard/taskboard/pkg/id"
)

// fakeStore is an in-memory repo.Store. Atomic serializes callers on a
// single mutex, which mirrors the row lock the real store takes on
// position assignment.
type fakeStore struct {
	txMu sync.Mutex
	mu   sync.Mutex
	seq  uint64

	users         []model.User
	settings      []model.UserSettings
	otps          []model.OtpCode
	projects      []model.Project
	members       []model.ProjectMember
	tickets       []model.Ticket
	activities    []model.Activity
	notifications []model.Notification
}

func newFakeStore() *fakeStore {
	return &fakeStore{}
}

func (s *fakeStore) Users() repo.IUserRepository                 { return s }
func (s *fakeStore) Projects() repo.IProjectRepository           { return s }
func (s *fakeStore) Tickets() repo.ITicketRepository             { return s }
func (s *fakeStore) Activities() repo.IActivityRepository        { return s }
func (s *fakeStore) Notifications() repo.INotificationRepository { return s }
func (s *fakeStore) Settings() repo.IUserSettingsRepository      { return s }
func (s *fakeStore) OtpCodes() repo.IOtpRepository               { return s }

func (s *fakeStore) Atomic(fn func(repo.Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(s)
}

func (s *fakeStore) nextId() uint64 {
	s.seq++
	return s.seq
}

// users

func (s *fakeStore) CreateUser(user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.ID = s.nextId()
	s.users = append(s.users, *user)
	return nil
}

func (s *fakeStore) GetUserById(userId string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.UserId == userId {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) GetUserByEmail(email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) ListUsersByIds(userIds []string) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wanted := make(map[string]struct{}, len(userIds))
	for _, uid := range userIds {
		wanted[uid] = struct{}{}
	}
	var users []model.User
	for _, u := range s.users {
		if _, ok := wanted[u.UserId]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

func (s *fakeStore) ListUsers() ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.User(nil), s.users...), nil
}

// settings

func (s *fakeStore) GetByUser(userId string) (*model.UserSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.settings {
		if st.UserId == userId {
			found := st
			return &found, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) CreateSettings(settings *model.UserSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	settings.ID = s.nextId()
	s.settings = append(s.settings, *settings)
	return nil
}

func (s *fakeStore) UpdateSettingsFields(userId string, updates map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.settings {
		if s.settings[i].UserId != userId {
			continue
		}
		for col, v := range updates {
			switch col {
			case "email_notifications":
				s.settings[i].EmailNotifications = v.(bool)
			case "theme":
				s.settings[i].Theme = v.(string)
			case "is_super_user":
				s.settings[i].IsSuperUser = v.(bool)
			case "last_active_at":
				s.settings[i].LastActiveAt = v.(time.Time)
			default:
				return fmt.Errorf("unexpected settings column %s", col)
			}
		}
	}
	return nil
}

// otp codes

func (s *fakeStore) CreateOtp(code *model.OtpCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	code.ID = s.nextId()
	s.otps = append(s.otps, *code)
	return nil
}

func (s *fakeStore) GetValidOtp(email, code string) (*model.OtpCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, otp := range s.otps {
		if otp.Email == email && otp.Code == code && !otp.IsUsed && otp.ExpiresAt.After(time.Now()) {
			found := otp
			return &found, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) MarkOtpUsed(otpId uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.otps {
		if s.otps[i].ID == otpId {
			s.otps[i].IsUsed = true
		}
	}
	return nil
}

// projects

func (s *fakeStore) CreateProject(project *model.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	project.ID = s.nextId()
	s.projects = append(s.projects, *project)
	return nil
}

func (s *fakeStore) GetProject(projectId string) (*model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.projects {
		if p.ProjectId == projectId {
			found := p
			return &found, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) UpdateProjectFields(projectId string, updates map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.projects {
		if s.projects[i].ProjectId != projectId {
			continue
		}
		for col, v := range updates {
			switch col {
			case "name":
				s.projects[i].Name = v.(string)
			case "description":
				s.projects[i].Description = v.(string)
			case "color":
				s.projects[i].Color = v.(string)
			case "is_archived":
				s.projects[i].IsArchived = v.(bool)
			default:
				return fmt.Errorf("unexpected project column %s", col)
			}
		}
	}
	return nil
}

func (s *fakeStore) ListProjectsByOwner(ownerId string) ([]model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var projects []model.Project
	for _, p := range s.projects {
		if p.OwnerId == ownerId {
			projects = append(projects, p)
		}
	}
	return projects, nil
}

func (s *fakeStore) ListProjectsByIds(projectIds []string) ([]model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wanted := make(map[string]struct{}, len(projectIds))
	for _, pid := range projectIds {
		wanted[pid] = struct{}{}
	}
	var projects []model.Project
	for _, p := range s.projects {
		if _, ok := wanted[p.ProjectId]; ok {
			projects = append(projects, p)
		}
	}
	return projects, nil
}

func (s *fakeStore) AddProjectMember(member *model.ProjectMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	member.ID = s.nextId()
	s.members = append(s.members, *member)
	return nil
}

func (s *fakeStore) RemoveProjectMember(projectId, userId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.members[:0]
	for _, m := range s.members {
		if m.ProjectId == projectId && m.UserId == userId {
			continue
		}
		kept = append(kept, m)
	}
	s.members = kept
	return nil
}

func (s *fakeStore) IsProjectMember(projectId, userId string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.members {
		if m.ProjectId == projectId && m.UserId == userId {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) ListProjectMembers(projectId string) ([]model.ProjectMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var members []model.ProjectMember
	for _, m := range s.members {
		if m.ProjectId == projectId {
			members = append(members, m)
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })
	return members, nil
}

func (s *fakeStore) ListMemberProjectIds(userId string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var projectIds []string
	for _, m := range s.members {
		if m.UserId == userId {
			projectIds = append(projectIds, m.ProjectId)
		}
	}
	return projectIds, nil
}

// tickets

func (s *fakeStore) CreateTicket(ticket *model.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ticket.ID = s.nextId()
	s.tickets = append(s.tickets, *ticket)
	return nil
}

func (s *fakeStore) GetTicket(ticketId string) (*model.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tickets {
		if t.TicketId == ticketId {
			found := t
			return &found, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) UpdateTicketFields(ticketId string, updates map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tickets {
		if s.tickets[i].TicketId != ticketId {
			continue
		}
		for col, v := range updates {
			switch col {
			case "title":
				s.tickets[i].Title = v.(string)
			case "description":
				s.tickets[i].Description = v.(string)
			case "status":
				s.tickets[i].Status = v.(string)
			case "priority":
				s.tickets[i].Priority = v.(string)
			case "assignee_id":
				s.tickets[i].AssigneeId = v.(string)
			case "due_date":
				due := v.(int64)
				s.tickets[i].DueDate = &due
			case "tags":
				s.tickets[i].Tags = v.(datatypes.JSONSlice[string])
			case "position":
				s.tickets[i].Position = v.(float64)
			default:
				return fmt.Errorf("unexpected ticket column %s", col)
			}
		}
	}
	return nil
}

func (s *fakeStore) ListTicketsByProject(projectId string) ([]model.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var tickets []model.Ticket
	for _, t := range s.tickets {
		if t.ProjectId == projectId {
			tickets = append(tickets, t)
		}
	}
	sort.Slice(tickets, func(i, j int) bool {
		if tickets[i].Position != tickets[j].Position {
			return tickets[i].Position < tickets[j].Position
		}
		return tickets[i].ID < tickets[j].ID
	})
	return tickets, nil
}

func (s *fakeStore) MaxPosition(projectId string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	maxPos := 0.0
	for _, t := range s.tickets {
		if t.ProjectId == projectId && t.Position > maxPos {
			maxPos = t.Position
		}
	}
	return maxPos, nil
}

// activities

func (s *fakeStore) AppendActivity(activity *model.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	activity.ID = s.nextId()
	activity.CreatedAt = time.Now()
	s.activities = append(s.activities, *activity)
	return nil
}

func (s *fakeStore) ListByProject(projectId string, limit int) ([]model.Activity, error) {
	return s.ListByProjects([]string{projectId}, limit)
}

func (s *fakeStore) ListByProjects(projectIds []string, limit int) ([]model.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wanted := make(map[string]struct{}, len(projectIds))
	for _, pid := range projectIds {
		wanted[pid] = struct{}{}
	}
	var activities []model.Activity
	for _, a := range s.activities {
		if _, ok := wanted[a.ProjectId]; ok {
			activities = append(activities, a)
		}
	}
	sort.Slice(activities, func(i, j int) bool { return activities[i].ActivityId > activities[j].ActivityId })
	if limit > 0 && len(activities) > limit {
		activities = activities[:limit]
	}
	return activities, nil
}

func (s *fakeStore) CountByProjectsSince(projectIds []string, since time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wanted := make(map[string]struct{}, len(projectIds))
	for _, pid := range projectIds {
		wanted[pid] = struct{}{}
	}
	var count int64
	for _, a := range s.activities {
		if _, ok := wanted[a.ProjectId]; ok && !a.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

// notifications

func (s *fakeStore) CreateNotification(notification *model.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	notification.ID = s.nextId()
	s.notifications = append(s.notifications, *notification)
	return nil
}

func (s *fakeStore) GetNotification(notificationId string) (*model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notifications {
		if n.NotificationId == notificationId {
			found := n
			return &found, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) ListByUser(userId string, unreadOnly bool, limit int) ([]model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	notifications := []model.Notification{}
	for _, n := range s.notifications {
		if n.UserId != userId {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		notifications = append(notifications, n)
	}
	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].NotificationId > notifications[j].NotificationId
	})
	if limit > 0 && len(notifications) > limit {
		notifications = notifications[:limit]
	}
	return notifications, nil
}

func (s *fakeStore) MarkRead(notificationId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].NotificationId == notificationId {
			s.notifications[i].IsRead = true
		}
	}
	return nil
}

func (s *fakeStore) MarkAllRead(userId string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var updated int64
	for i := range s.notifications {
		if s.notifications[i].UserId == userId && !s.notifications[i].IsRead {
			s.notifications[i].IsRead = true
			updated++
		}
	}
	return updated, nil
}

func (s *fakeStore) CountUnread(userId string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, n := range s.notifications {
		if n.UserId == userId && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (s *fakeStore) UpdateMetadata(notificationId string, metadata datatypes.JSON) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].NotificationId == notificationId {
			s.notifications[i].Metadata = metadata
		}
	}
	return nil
}

// recordingDispatcher captures post-commit events for assertions.
type recordingDispatcher struct {
	mu            sync.Mutex
	notifications []*model.Notification
	otpEmails     []string
	otpCodes      []string
}

func (d *recordingDispatcher) NotificationCreated(notification *model.Notification) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.notifications = append(d.notifications, notification)
}

func (d *recordingDispatcher) OtpIssued(email, code string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.otpEmails = append(d.otpEmails, email)
	d.otpCodes = append(d.otpCodes, code)
}

func seedUser(store *fakeStore, name, email string) *model.User {
	user := &model.User{
		UserId: id.GetUUID(),
		Name:   name,
		Email:  email,
	}
	if err := store.CreateUser(user); err != nil {
		panic(err)
	}
	return user
}
