package mappers

import (
	"vetiver/internal/domain/ticket"
	"vetiver/internal/infrastructure/persistence/models"
)

// TicketMapper handles the conversion between ticket domain entities and
// persistence models.
type TicketMapper interface {
	// ToModel converts a ticket domain entity to a persistence model.
	ToModel(t *ticket.Ticket) *models.TicketModel

	// ToEntity converts a ticket persistence model to a domain entity.
	ToEntity(model *models.TicketModel) *ticket.Ticket

	// ToEntities converts multiple persistence models to domain entities.
	ToEntities(models []models.TicketModel) []*ticket.Ticket

	// ToModels converts multiple domain entities to persistence models.
	ToModels(tickets []*ticket.Ticket) []models.TicketModel
}

// ticketMapper is the concrete implementation of TicketMapper.
type ticketMapper struct{}

// NewTicketMapper creates a new ticket mapper.
func NewTicketMapper() TicketMapper {
	return &ticketMapper{}
}

// ToModel converts a ticket domain entity to a persistence model.
func (m *ticketMapper) ToModel(t *ticket.Ticket) *models.TicketModel {
	if t == nil {
		return nil
	}

	return &models.TicketModel{
		ID:         t.ID,
		Date:       t.Date,
		Issue:      t.Issue,
		Department: t.Department,
		Name:       t.Name,
		Solution:   t.Solution,
		Remarks:    t.Remarks,
		Type:       t.Type,
		VersionTS:  t.Version.TS,
		VersionStr: t.Version.Str,
		IsDeleted:  t.IsDeleted,
		DeletedAt:  t.DeletedAt,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

// ToEntity converts a ticket persistence model to a domain entity.
func (m *ticketMapper) ToEntity(model *models.TicketModel) *ticket.Ticket {
	if model == nil {
		return nil
	}

	return &ticket.Ticket{
		ID:         model.ID,
		Date:       model.Date,
		Issue:      model.Issue,
		Department: model.Department,
		Name:       model.Name,
		Solution:   model.Solution,
		Remarks:    model.Remarks,
		Type:       model.Type,
		Version:    ticket.Version{TS: model.VersionTS, Str: model.VersionStr},
		IsDeleted:  model.IsDeleted,
		DeletedAt:  model.DeletedAt,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

// ToEntities converts multiple persistence models to domain entities.
func (m *ticketMapper) ToEntities(rows []models.TicketModel) []*ticket.Ticket {
	tickets := make([]*ticket.Ticket, len(rows))
	for i := range rows {
		tickets[i] = m.ToEntity(&rows[i])
	}
	return tickets
}

// ToModels converts multiple domain entities to persistence models.
func (m *ticketMapper) ToModels(tickets []*ticket.Ticket) []models.TicketModel {
	rows := make([]models.TicketModel, 0, len(tickets))
	for _, t := range tickets {
		if t == nil {
			continue
		}
		rows = append(rows, *m.ToModel(t))
	}
	return rows
}
