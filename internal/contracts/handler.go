package contracts

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	contracts := rg.Group("/contracts")
	{
		contracts.POST("", h.Create)
		contracts.GET("", h.List)
		contracts.GET("/statuses", h.Statuses)
		contracts.GET("/:id", h.Get)
		contracts.POST("/:id/transition", h.Transition)
		contracts.GET("/:id/progress", h.Progress)
		contracts.GET("/:id/agreement.pdf", h.AgreementPDF)
	}
}

type createContractRequest struct {
	PhotographerID     string     `json:"photographer_id" binding:"required"`
	ClientName         string     `json:"client_name" binding:"required"`
	ClientEmail        string     `json:"client_email" binding:"required,email"`
	Title              string     `json:"title" binding:"required"`
	EventDate          *time.Time `json:"event_date,omitempty"`
	DeliveryWindowDays int        `json:"delivery_window_days"`
}

func (h *Handler) Create(c *gin.Context) {
	var req createContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	photographerID, err := uuid.Parse(req.PhotographerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid photographer_id"})
		return
	}

	contract, err := h.service.CreateContract(c.Request.Context(), CreateRequest{
		PhotographerID:     photographerID,
		ClientName:         req.ClientName,
		ClientEmail:        req.ClientEmail,
		Title:              req.Title,
		EventDate:          req.EventDate,
		DeliveryWindowDays: req.DeliveryWindowDays,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, contract)
}

func (h *Handler) List(c *gin.Context) {
	var photographerID *uuid.UUID
	if raw := c.Query("photographer_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid photographer_id"})
			return
		}
		photographerID = &id
	}

	var status *ContractStatus
	if raw := c.Query("status"); raw != "" {
		parsed, ok := ParseStatus(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status: " + raw})
			return
		}
		status = &parsed
	}

	list, err := h.service.ListContracts(c.Request.Context(), photographerID, status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	contract, err := h.service.GetContract(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, contract)
}

type transitionRequest struct {
	Status             string `json:"status" binding:"required"`
	DeliveryWindowDays int    `json:"delivery_window_days"`
}

func (h *Handler) Transition(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	target, ok := ParseStatus(req.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status: " + req.Status})
		return
	}

	contract, err := h.service.TransitionContract(c.Request.Context(), id, target, TransitionOptions{
		DeliveryWindowDays: req.DeliveryWindowDays,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, contract)
}

func (h *Handler) Progress(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	progress, err := h.service.GetProgress(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

func (h *Handler) AgreementPDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	data, err := h.service.GenerateAgreementPDF(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="agreement.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

func (h *Handler) Statuses(c *gin.Context) {
	c.JSON(http.StatusOK, StatusCatalog())
}

func (h *Handler) renderError(c *gin.Context, err error) {
	var transitionErr *InvalidTransitionError
	switch {
	case errors.As(err, &transitionErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":            transitionErr.Error(),
			"current_status":   transitionErr.Current,
			"attempted_status": transitionErr.Attempted,
			"allowed_statuses": AllowedTransitions(transitionErr.Current),
		})
	case errors.Is(err, ErrStaleContract):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ErrContractNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
