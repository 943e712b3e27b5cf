package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	drawerapp "github.com/pos/backend/internal/application/drawer"
)

// SessionHandler handles drawer session lifecycle and audit API endpoints
type SessionHandler struct {
	BaseHandler
	sessionService *drawerapp.SessionService
	auditService   *drawerapp.AuditService
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(sessionService *drawerapp.SessionService, auditService *drawerapp.AuditService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		auditService:   auditService,
	}
}

// Open godoc
// @ID           openDrawerSession
//
//	@Summary		Open a drawer session
//	@Description	Open a counting session against a drawer with a counted starting float
//	@Tags			sessions
//	@Accept			json
//	@Produce		json
//	@Param			X-User-ID	header		string							true	"Operator ID"	format(uuid)
//	@Param			id			path		string							true	"Drawer ID"		format(uuid)
//	@Param			request		body		drawerapp.OpenSessionRequest	true	"Counted opening denominations"
//	@Success		201			{object}	APIResponse[drawerapp.SessionResponse]
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		409			{object}	ErrorResponse
//	@Failure		422			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Router			/drawer/drawers/{id}/sessions [post]
func (h *SessionHandler) Open(c *gin.Context) {
	drawerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid drawer ID format")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Operator identity required")
		return
	}

	var req drawerapp.OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.OpenedBy = userID

	session, err := h.sessionService.Open(c.Request.Context(), drawerID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, session)
}

// Record godoc
// @ID           recordSessionTransaction
//
//	@Summary		Record a cash movement
//	@Description	Append a sale, refund, deposit, withdrawal or till payback to an open session's ledger
//	@Tags			sessions
//	@Accept			json
//	@Produce		json
//	@Param			X-User-ID	header		string								true	"Operator ID"	format(uuid)
//	@Param			id			path		string								true	"Session ID"	format(uuid)
//	@Param			request		body		drawerapp.RecordTransactionRequest	true	"Cash movement"
//	@Success		201			{object}	APIResponse[drawerapp.TransactionResponse]
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		409			{object}	ErrorResponse
//	@Failure		422			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Router			/drawer/sessions/{id}/transactions [post]
func (h *SessionHandler) Record(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid session ID format")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Operator identity required")
		return
	}

	var req drawerapp.RecordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.CreatedBy = userID

	tx, err := h.sessionService.Record(c.Request.Context(), sessionID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, tx)
}

// Close godoc
// @ID           closeDrawerSession
//
//	@Summary		Close and reconcile a session
//	@Description	Close a session with a counted ending drawer, computing expected balance, difference and variance
//	@Tags			sessions
//	@Accept			json
//	@Produce		json
//	@Param			X-User-ID	header		string							true	"Operator ID"	format(uuid)
//	@Param			id			path		string							true	"Session ID"	format(uuid)
//	@Param			request		body		drawerapp.CloseSessionRequest	true	"Counted closing denominations"
//	@Success		200			{object}	APIResponse[drawerapp.CloseSessionResponse]
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		409			{object}	ErrorResponse
//	@Failure		422			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Router			/drawer/sessions/{id}/close [post]
func (h *SessionHandler) Close(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid session ID format")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Operator identity required")
		return
	}

	var req drawerapp.CloseSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.ClosedBy = userID

	result, err := h.sessionService.Close(c.Request.Context(), sessionID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Cancel godoc
// @ID           cancelDrawerSession
//
//	@Summary		Cancel a session
//	@Description	Administratively void an open session. Cancelled sessions keep their ledger but are excluded from variance reporting.
//	@Tags			sessions
//	@Accept			json
//	@Produce		json
//	@Param			X-User-ID	header		string							true	"Operator ID"	format(uuid)
//	@Param			id			path		string							true	"Session ID"	format(uuid)
//	@Param			request		body		drawerapp.CancelSessionRequest	true	"Cancellation reason"
//	@Success		200			{object}	APIResponse[drawerapp.SessionResponse]
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		409			{object}	ErrorResponse
//	@Failure		422			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Router			/drawer/sessions/{id}/cancel [post]
func (h *SessionHandler) Cancel(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid session ID format")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Operator identity required")
		return
	}

	var req drawerapp.CancelSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.CancelledBy = userID

	session, err := h.sessionService.Cancel(c.Request.Context(), sessionID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, session)
}

// List godoc
// @ID           listDrawerSessions
//
//	@Summary		List session history
//	@Description	Retrieve paginated session history, newest first, with optional filters
//	@Tags			sessions
//	@Produce		json
//	@Param			drawer_id	query		string	false	"Filter by drawer"	format(uuid)
//	@Param			status		query		string	false	"Session status"	Enums(open, balanced, over, short, cancelled)
//	@Param			from_date	query		string	false	"Opened at or after (RFC 3339 or 2006-01-02)"
//	@Param			to_date		query		string	false	"Opened at or before"
//	@Param			page		query		int		false	"Page number"	default(1)
//	@Param			page_size	query		int		false	"Page size"		default(20)	maximum(100)
//	@Success		200			{object}	APIResponse[[]drawerapp.SessionResponse]
//	@Failure		400			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Router			/drawer/sessions [get]
func (h *SessionHandler) List(c *gin.Context) {
	var req drawerapp.ListSessionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.auditService.ListSessions(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ListOpen godoc
// @ID           listOpenDrawerSessions
//
//	@Summary		List open sessions
//	@Description	Retrieve every open session with its live expected balance computed from the ledger
//	@Tags			sessions
//	@Produce		json
//	@Success		200	{object}	APIResponse[[]drawerapp.OpenSessionStatusResponse]
//	@Failure		500	{object}	ErrorResponse
//	@Router			/drawer/sessions/open [get]
func (h *SessionHandler) ListOpen(c *gin.Context) {
	sessions, err := h.auditService.ListOpenSessions(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sessions)
}

// GetByID godoc
// @ID           getDrawerSessionById
//
//	@Summary		Get session detail
//	@Description	Retrieve a session with its full ledger, variance records and per-type breakdown
//	@Tags			sessions
//	@Produce		json
//	@Param			id	path		string	true	"Session ID"	format(uuid)
//	@Success		200	{object}	APIResponse[drawerapp.SessionDetailResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/drawer/sessions/{id} [get]
func (h *SessionHandler) GetByID(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid session ID format")
		return
	}

	detail, err := h.auditService.GetSessionDetail(c.Request.Context(), sessionID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, detail)
}

// Export godoc
// @ID           exportDrawerSession
//
//	@Summary		Export a session as CSV
//	@Description	Download a session summary with its full ledger as a CSV file
//	@Tags			sessions
//	@Produce		text/csv
//	@Param			id	path		string	true	"Session ID"	format(uuid)
//	@Success		200	{string}	string	"CSV content"
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/drawer/sessions/{id}/export [get]
func (h *SessionHandler) Export(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid session ID format")
		return
	}

	data, err := h.auditService.ExportSession(c.Request.Context(), sessionID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	filename := fmt.Sprintf("session-%s.csv", sessionID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", data)
}
