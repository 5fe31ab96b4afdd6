package migration

import (
	"vetiver/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.TicketModel{},
		&models.TicketEventModel{},
	}
}
