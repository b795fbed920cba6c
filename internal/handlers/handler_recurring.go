package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kakeibo-app/kakeibo_backend/internal/apperrors"
	"github.com/kakeibo-app/kakeibo_backend/internal/core/domain"
	portssvc "github.com/kakeibo-app/kakeibo_backend/internal/core/ports/services"
	"github.com/kakeibo-app/kakeibo_backend/internal/dto"
	"github.com/kakeibo-app/kakeibo_backend/internal/middleware"
)

// recurringHandler handles HTTP requests for recurring templates and the
// recording engine.
type recurringHandler struct {
	recurringService portssvc.RecurringSvcFacade
}

func newRecurringHandler(rs portssvc.RecurringSvcFacade) *recurringHandler {
	return &recurringHandler{
		recurringService: rs,
	}
}

// registerRecurringRoutes registers template CRUD and engine routes.
func registerRecurringRoutes(rg *gin.RouterGroup, recurringService portssvc.RecurringSvcFacade) {
	h := newRecurringHandler(recurringService)

	recurring := rg.Group("/recurring")
	{
		recurring.POST("", h.createTemplate)
		recurring.GET("", h.listTemplates)
		recurring.GET("/due", h.listDue)
		recurring.GET("/undoable", h.listUndoable)
		recurring.POST("/record-batch", h.recordBatch)
		recurring.GET("/:id", h.getTemplate)
		recurring.PUT("/:id", h.updateTemplate)
		recurring.DELETE("/:id", h.deleteTemplate)
		recurring.POST("/:id/record", h.recordOccurrence)
		recurring.POST("/:id/undo", h.undoOccurrence)
		recurring.PUT("/:id/checked", h.setChecked)
	}
}

// parsePeriod reads the periodStart/periodEnd query params as calendar dates.
func parsePeriod(c *gin.Context) (time.Time, time.Time, bool) {
	const layout = "2006-01-02"
	start, err := time.Parse(layout, c.Query("periodStart"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing periodStart (expected YYYY-MM-DD)"})
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse(layout, c.Query("periodEnd"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing periodEnd (expected YYYY-MM-DD)"})
		return time.Time{}, time.Time{}, false
	}
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "periodEnd must not precede periodStart"})
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func (h *recurringHandler) createTemplate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTemplate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	template, err := h.recurringService.CreateTemplate(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating template", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Dependency not found creating template", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create template", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create template"})
		}
		return
	}

	logger.Info("Template created", slog.String("template_id", template.TemplateID))
	c.JSON(http.StatusCreated, dto.ToTemplateResponse(template))
}

func (h *recurringHandler) getTemplate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	template, err := h.recurringService.GetTemplateByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		} else {
			logger.Error("Failed to get template", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve template"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToTemplateResponse(template))
}

func (h *recurringHandler) listTemplates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	templates, err := h.recurringService.ListTemplates(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list templates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list templates"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": dto.ToTemplateResponses(templates)})
}

func (h *recurringHandler) updateTemplate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	template, err := h.recurringService.UpdateTemplate(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update template", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update template"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToTemplateResponse(template))
}

func (h *recurringHandler) deleteTemplate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.recurringService.DeleteTemplate(c.Request.Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		} else {
			logger.Error("Failed to delete template", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete template"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *recurringHandler) recordOccurrence(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	templateID := c.Param("id")
	logger = logger.With(slog.String("template_id", templateID))

	rec, err := h.recurringService.RecordOccurrence(c.Request.Context(), userID, templateID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Info("Occurrence already recorded")
			c.JSON(http.StatusConflict, gin.H{"error": "Occurrence already recorded"})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		} else {
			logger.Error("Failed to record occurrence", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record occurrence"})
		}
		return
	}

	logger.Info("Occurrence recorded", slog.String("entry_id", rec.Entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToRecordedOccurrenceResponse(rec))
}

func (h *recurringHandler) recordBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.recurringService.RecordBatch(c.Request.Context(), userID, req.TemplateIDs)
	if err != nil {
		logger.Error("Failed to record batch", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record batch"})
		return
	}

	logger.Info("Batch recorded",
		slog.Int("succeeded", len(result.Succeeded)),
		slog.Int("failed", len(result.Failed)))
	// 207: the batch itself succeeded even when individual items did not.
	status := http.StatusOK
	if len(result.Failed) > 0 {
		status = http.StatusMultiStatus
	}
	c.JSON(status, result)
}

func (h *recurringHandler) undoOccurrence(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UndoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	templateID := c.Param("id")
	logger = logger.With(slog.String("template_id", templateID))

	action, err := h.recurringService.UndoOccurrence(c.Request.Context(), userID, templateID, req.PeriodStart, req.PeriodEnd)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoOpenAction) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Nothing to undo in this period"})
		} else if errors.Is(err, apperrors.ErrAlreadyUndone) {
			c.JSON(http.StatusConflict, gin.H{"error": "Recording already undone"})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		} else {
			logger.Error("Failed to undo occurrence", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to undo occurrence"})
		}
		return
	}

	logger.Info("Occurrence undone", slog.String("action_id", action.ActionID))
	c.JSON(http.StatusOK, gin.H{
		"actionID":           action.ActionID,
		"templateID":         action.TemplateID,
		"restoredOccurrence": action.PreviousNextOccurrenceDate,
	})
}

func (h *recurringHandler) listDue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	periodStart, periodEnd, ok := parsePeriod(c)
	if !ok {
		return
	}

	seq, err := h.recurringService.OccurrencesDue(c.Request.Context(), userID, periodStart, periodEnd)
	if err != nil {
		logger.Error("Failed to list due templates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list due templates"})
		return
	}

	var due []domain.RecurringTemplate
	for t := range seq {
		due = append(due, t)
	}
	c.JSON(http.StatusOK, gin.H{"due": dto.ToTemplateResponses(due)})
}

func (h *recurringHandler) listUndoable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	periodStart, periodEnd, ok := parsePeriod(c)
	if !ok {
		return
	}

	actions, err := h.recurringService.ListUndoable(c.Request.Context(), userID, periodStart, periodEnd)
	if err != nil {
		logger.Error("Failed to list undoable recordings", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list undoable recordings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"undoable": dto.ToUndoableResponses(actions)})
}

func (h *recurringHandler) setChecked(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req struct {
		Checked bool `json:"checked"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.recurringService.SetTemplateChecked(c.Request.Context(), userID, c.Param("id"), req.Checked); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		} else {
			logger.Error("Failed to update checked flag", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update checked flag"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}
