package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	drawerapp "github.com/pos/backend/internal/application/drawer"
)

// DrawerHandler handles cash drawer registry API endpoints
type DrawerHandler struct {
	BaseHandler
	drawerService *drawerapp.DrawerService
}

// NewDrawerHandler creates a new DrawerHandler
func NewDrawerHandler(drawerService *drawerapp.DrawerService) *DrawerHandler {
	return &DrawerHandler{
		drawerService: drawerService,
	}
}

// Create godoc
// @ID           createDrawer
//
//	@Summary		Register a new cash drawer
//	@Description	Register a physical cash drawer so sessions can be opened against it
//	@Tags			drawers
//	@Accept			json
//	@Produce		json
//	@Param			request	body		drawerapp.CreateDrawerRequest	true	"Drawer registration request"
//	@Success		201		{object}	APIResponse[drawerapp.DrawerResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/drawer/drawers [post]
func (h *DrawerHandler) Create(c *gin.Context) {
	var req drawerapp.CreateDrawerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	drawer, err := h.drawerService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, drawer)
}

// GetByID godoc
// @ID           getDrawerById
//
//	@Summary		Get drawer by ID
//	@Description	Retrieve a cash drawer with its current balance and open-session flag
//	@Tags			drawers
//	@Produce		json
//	@Param			id	path		string	true	"Drawer ID"	format(uuid)
//	@Success		200	{object}	APIResponse[drawerapp.DrawerResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/drawer/drawers/{id} [get]
func (h *DrawerHandler) GetByID(c *gin.Context) {
	drawerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid drawer ID format")
		return
	}

	drawer, err := h.drawerService.Get(c.Request.Context(), drawerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, drawer)
}

// ListActive godoc
// @ID           listActiveDrawers
//
//	@Summary		List active drawers
//	@Description	Retrieve all active cash drawers ordered by code
//	@Tags			drawers
//	@Produce		json
//	@Success		200	{object}	APIResponse[[]drawerapp.DrawerResponse]
//	@Failure		500	{object}	ErrorResponse
//	@Router			/drawer/drawers [get]
func (h *DrawerHandler) ListActive(c *gin.Context) {
	drawers, err := h.drawerService.ListActive(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, drawers)
}

// Activate godoc
// @ID           activateDrawer
//
//	@Summary		Activate a drawer
//	@Description	Make a drawer available for opening sessions
//	@Tags			drawers
//	@Produce		json
//	@Param			id	path		string	true	"Drawer ID"	format(uuid)
//	@Success		200	{object}	APIResponse[drawerapp.DrawerResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		409	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/drawer/drawers/{id}/activate [post]
func (h *DrawerHandler) Activate(c *gin.Context) {
	drawerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid drawer ID format")
		return
	}

	drawer, err := h.drawerService.Activate(c.Request.Context(), drawerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, drawer)
}

// Deactivate godoc
// @ID           deactivateDrawer
//
//	@Summary		Deactivate a drawer
//	@Description	Stop new sessions from being opened against a drawer. An open session is unaffected.
//	@Tags			drawers
//	@Produce		json
//	@Param			id	path		string	true	"Drawer ID"	format(uuid)
//	@Success		200	{object}	APIResponse[drawerapp.DrawerResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		409	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/drawer/drawers/{id}/deactivate [post]
func (h *DrawerHandler) Deactivate(c *gin.Context) {
	drawerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid drawer ID format")
		return
	}

	drawer, err := h.drawerService.Deactivate(c.Request.Context(), drawerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, drawer)
}
