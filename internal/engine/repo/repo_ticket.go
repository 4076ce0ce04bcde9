package repo

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/go-taskboard/taskboard/internal/engine/model"
)

type ITicketRepository interface {
	CreateTicket(ticket *model.Ticket) error
	// GetTicket returns (nil, nil) when no such ticket exists.
	GetTicket(ticketId string) (*model.Ticket, error)
	UpdateTicketFields(ticketId string, updates map[string]any) error
	// ListTicketsByProject orders ascending by position, insertion
	// order breaking ties.
	ListTicketsByProject(projectId string) ([]model.Ticket, error)
	// MaxPosition locks the project's ticket rows for the duration of
	// the surrounding transaction, so concurrent creates serialize on
	// position assignment.
	MaxPosition(projectId string) (float64, error)
}

type TicketRepo struct {
	db *gorm.DB
}

func NewTicketRepo(db *gorm.DB) *TicketRepo {
	return &TicketRepo{db: db}
}

func (r *TicketRepo) CreateTicket(ticket *model.Ticket) error {
	return r.db.Create(ticket).Error
}

func (r *TicketRepo) GetTicket(ticketId string) (*model.Ticket, error) {
	var ticket model.Ticket
	return firstOrNil(r.db.Where("ticket_id = ?", ticketId), &ticket)
}

func (r *TicketRepo) UpdateTicketFields(ticketId string, updates map[string]any) error {
	return r.db.Model(&model.Ticket{}).
		Where("ticket_id = ?", ticketId).
		Updates(updates).Error
}

func (r *TicketRepo) ListTicketsByProject(projectId string) ([]model.Ticket, error) {
	var tickets []model.Ticket
	err := r.db.Where("project_id = ?", projectId).
		Order("position ASC, id ASC").
		Find(&tickets).Error
	return tickets, err
}

func (r *TicketRepo) MaxPosition(projectId string) (float64, error) {
	var maxPosition *float64
	err := r.db.Model(&model.Ticket{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("project_id = ?", projectId).
		Select("MAX(position)").
		Scan(&maxPosition).Error
	if err != nil || maxPosition == nil {
		return 0, err
	}
	return *maxPosition, nil
}
