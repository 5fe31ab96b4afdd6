package ticket

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"vetiver/internal/application/ticket/usecases"
	"vetiver/internal/domain/ticket"
	"vetiver/internal/shared/errors"
	"vetiver/internal/shared/utils"
)

type CreateTicketRequest struct {
	Date       string `json:"date" binding:"required,max=32"`
	Issue      string `json:"issue" binding:"required"`
	Department string `json:"department" binding:"omitempty,max=128"`
	Name       string `json:"name" binding:"omitempty,max=128"`
	Solution   string `json:"solution"`
	Remarks    string `json:"remarks"`
	Type       string `json:"type" binding:"omitempty,max=64"`
}

func (r *CreateTicketRequest) ToCommand() usecases.CreateTicketCommand {
	return usecases.CreateTicketCommand{
		Date:       r.Date,
		Issue:      r.Issue,
		Department: r.Department,
		Name:       r.Name,
		Solution:   r.Solution,
		Remarks:    r.Remarks,
		Type:       r.Type,
	}
}

// UpdateTicketRequest carries the full replacement record plus the version
// token the client last saw. Force drops the version check.
type UpdateTicketRequest struct {
	Date       string `json:"date" binding:"required,max=32"`
	Issue      string `json:"issue" binding:"required"`
	Department string `json:"department" binding:"omitempty,max=128"`
	Name       string `json:"name" binding:"omitempty,max=128"`
	Solution   string `json:"solution"`
	Remarks    string `json:"remarks"`
	Type       string `json:"type" binding:"omitempty,max=64"`
	VersionTS  int64  `json:"version_ts"`
	VersionStr string `json:"version_str"`
	Force      bool   `json:"force"`
}

func (r *UpdateTicketRequest) ToCommand(id uint) usecases.UpdateTicketCommand {
	return usecases.UpdateTicketCommand{
		ID:              id,
		Date:            r.Date,
		Issue:           r.Issue,
		Department:      r.Department,
		Name:            r.Name,
		Solution:        r.Solution,
		Remarks:         r.Remarks,
		Type:            r.Type,
		ExpectedVersion: ticket.NewVersion(r.VersionTS, r.VersionStr),
		Force:           r.Force,
	}
}

func parseListTicketsQuery(c *gin.Context) usecases.ListTicketsQuery {
	pagination := utils.ParsePagination(c)
	trash, _ := strconv.ParseBool(c.DefaultQuery("trash", "false"))

	return usecases.ListTicketsQuery{
		Trash:     trash,
		From:      c.Query("from"),
		To:        c.Query("to"),
		Type:      c.Query("type"),
		Search:    c.Query("q"),
		Page:      pagination.Page,
		PageSize:  pagination.PageSize,
		Cursor:    c.Query("cursor"),
		Direction: c.Query("direction"),
	}
}

func parseTicketID(c *gin.Context) (uint, error) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("Invalid ticket ID")
	}
	return uint(id), nil
}
