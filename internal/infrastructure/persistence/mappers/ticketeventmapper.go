package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"vetiver/internal/domain/ticket"
	"vetiver/internal/infrastructure/persistence/models"
)

// TicketEventMapper handles the conversion between audit events and
// persistence models.
type TicketEventMapper interface {
	// ToModel converts an audit event to a persistence model.
	ToModel(e *ticket.Event) (*models.TicketEventModel, error)

	// ToEntity converts a persistence model to an audit event.
	ToEntity(model *models.TicketEventModel) (*ticket.Event, error)

	// ToEntities converts multiple persistence models to audit events.
	ToEntities(models []models.TicketEventModel) ([]*ticket.Event, error)
}

// ticketEventMapper is the concrete implementation of TicketEventMapper.
type ticketEventMapper struct{}

// NewTicketEventMapper creates a new ticket event mapper.
func NewTicketEventMapper() TicketEventMapper {
	return &ticketEventMapper{}
}

// ToModel converts an audit event to a persistence model.
func (m *ticketEventMapper) ToModel(e *ticket.Event) (*models.TicketEventModel, error) {
	if e == nil {
		return nil, nil
	}

	model := &models.TicketEventModel{
		ID:        e.ID,
		TicketID:  e.TicketID,
		Action:    e.Action,
		CreatedAt: e.CreatedAt,
	}

	if len(e.Detail) > 0 {
		detailJSON, err := json.Marshal(e.Detail)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal event detail: %w", err)
		}
		model.Detail = datatypes.JSON(detailJSON)
	}

	return model, nil
}

// ToEntity converts a persistence model to an audit event.
func (m *ticketEventMapper) ToEntity(model *models.TicketEventModel) (*ticket.Event, error) {
	if model == nil {
		return nil, nil
	}

	event := &ticket.Event{
		ID:        model.ID,
		TicketID:  model.TicketID,
		Action:    model.Action,
		CreatedAt: model.CreatedAt,
	}

	if len(model.Detail) > 0 {
		if err := json.Unmarshal(model.Detail, &event.Detail); err != nil {
			return nil, fmt.Errorf("failed to unmarshal event detail: %w", err)
		}
	}

	return event, nil
}

// ToEntities converts multiple persistence models to audit events.
func (m *ticketEventMapper) ToEntities(rows []models.TicketEventModel) ([]*ticket.Event, error) {
	events := make([]*ticket.Event, 0, len(rows))
	for i := range rows {
		event, err := m.ToEntity(&rows[i])
		if err != nil {
			return nil, fmt.Errorf("failed to map event at index %d (ID %d): %w", i, rows[i].ID, err)
		}
		if event != nil {
			events = append(events, event)
		}
	}
	return events, nil
}
