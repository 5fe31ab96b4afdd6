package ticket

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"vetiver/internal/application/ticket/dto"
	"vetiver/internal/application/ticket/usecases"
	"vetiver/internal/shared/errors"
	"vetiver/internal/shared/logger"
	"vetiver/internal/shared/utils"
)

type TicketHandler struct {
	createTicketUC  usecases.CreateTicketExecutor
	getTicketUC     usecases.GetTicketExecutor
	listTicketsUC   usecases.ListTicketsExecutor
	updateTicketUC  usecases.UpdateTicketExecutor
	deleteTicketUC  usecases.DeleteTicketExecutor
	restoreTicketUC usecases.RestoreTicketExecutor
	purgeTicketUC   usecases.PurgeTicketExecutor
	importTicketsUC usecases.ImportTicketsExecutor
	statsUC         usecases.GetTicketStatsExecutor
	historyUC       usecases.GetTicketHistoryExecutor
	importMax       int
	logger          logger.Interface
}

func NewTicketHandler(
	createTicketUC usecases.CreateTicketExecutor,
	getTicketUC usecases.GetTicketExecutor,
	listTicketsUC usecases.ListTicketsExecutor,
	updateTicketUC usecases.UpdateTicketExecutor,
	deleteTicketUC usecases.DeleteTicketExecutor,
	restoreTicketUC usecases.RestoreTicketExecutor,
	purgeTicketUC usecases.PurgeTicketExecutor,
	importTicketsUC usecases.ImportTicketsExecutor,
	statsUC usecases.GetTicketStatsExecutor,
	historyUC usecases.GetTicketHistoryExecutor,
	importMax int,
) *TicketHandler {
	return &TicketHandler{
		createTicketUC:  createTicketUC,
		getTicketUC:     getTicketUC,
		listTicketsUC:   listTicketsUC,
		updateTicketUC:  updateTicketUC,
		deleteTicketUC:  deleteTicketUC,
		restoreTicketUC: restoreTicketUC,
		purgeTicketUC:   purgeTicketUC,
		importTicketsUC: importTicketsUC,
		statsUC:         statsUC,
		historyUC:       historyUC,
		importMax:       importMax,
		logger:          logger.NewLogger(),
	}
}

// CreateTicket handles POST /tickets
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create ticket", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.createTicketUC.Execute(c.Request.Context(), req.ToCommand())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Ticket created successfully")
}

// GetTicket handles GET /tickets/:id
func (h *TicketHandler) GetTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getTicketUC.Execute(c.Request.Context(), usecases.GetTicketQuery{ID: ticketID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListTickets handles GET /tickets
func (h *TicketHandler) ListTickets(c *gin.Context) {
	query := parseListTicketsQuery(c)

	result, err := h.listTicketsUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	// Page is zero exactly when the request paged by cursor.
	if result.Page == 0 {
		utils.CursorListResponse(c, result.Items, result.Total, result.PageSize, result.NextCursor, result.PrevCursor)
		return
	}
	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.PageSize)
}

// UpdateTicket handles PUT /tickets/:id
func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update ticket", "ticket_id", ticketID, "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.updateTicketUC.Execute(c.Request.Context(), req.ToCommand(ticketID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket updated successfully", result)
}

// DeleteTicket handles DELETE /tickets/:id
func (h *TicketHandler) DeleteTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.deleteTicketUC.Execute(c.Request.Context(), usecases.DeleteTicketCommand{ID: ticketID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket moved to trash", result)
}

// RestoreTicket handles POST /tickets/:id/restore
func (h *TicketHandler) RestoreTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.restoreTicketUC.Execute(c.Request.Context(), usecases.RestoreTicketCommand{ID: ticketID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket restored", result)
}

// PurgeTicket handles DELETE /tickets/:id/purge
func (h *TicketHandler) PurgeTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.purgeTicketUC.Execute(c.Request.Context(), usecases.PurgeTicketCommand{ID: ticketID}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// ImportTickets handles POST /tickets/import. The body is decoded manually
// rather than bound: exports arrive in several shapes and legacy field names,
// and the decoder owns that tolerance.
func (h *TicketHandler) ImportTickets(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "failed to read request body")
		return
	}

	payload, err := dto.DecodeImportPayload(raw)
	if err != nil {
		h.logger.Warnw("rejected malformed import payload", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	if h.importMax > 0 && len(payload.Records) > h.importMax {
		utils.ErrorResponse(c, http.StatusRequestEntityTooLarge,
			"import exceeds the maximum of "+strconv.Itoa(h.importMax)+" records")
		return
	}

	// The query parameter wins over the body flag, so a preview link can be
	// shared without editing the payload.
	if v := c.Query("dry_run"); v != "" {
		dryRun, err := strconv.ParseBool(v)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("invalid dry_run value"))
			return
		}
		payload.DryRun = dryRun
	}

	result, err := h.importTicketsUC.Execute(c.Request.Context(), usecases.ImportTicketsCommand{
		Records: payload.Records,
		DryRun:  payload.DryRun,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	message := "Import applied"
	if result.DryRun {
		message = "Import preview"
	}
	utils.SuccessResponse(c, http.StatusOK, message, result)
}

// GetTicketStats handles GET /tickets/stats
func (h *TicketHandler) GetTicketStats(c *gin.Context) {
	result, err := h.statsUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetTicketHistory handles GET /tickets/:id/history
func (h *TicketHandler) GetTicketHistory(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	result, err := h.historyUC.Execute(c.Request.Context(), usecases.GetTicketHistoryQuery{ID: ticketID, Limit: limit})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
