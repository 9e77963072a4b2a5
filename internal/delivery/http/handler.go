package http

import (
	"errors"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nutriquiz/backend/internal/domain"
	"github.com/nutriquiz/backend/internal/usecase"
)

const pdfFilename = "personalized_plan.pdf"

// Handler holds dependencies for HTTP handlers
type Handler struct {
	quiz   *usecase.QuizService
	admin  *usecase.AdminService
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler. quiz and admin may be nil; their endpoints
// then answer 501 Not Implemented.
func NewHandler(quiz *usecase.QuizService, admin *usecase.AdminService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		quiz:   quiz,
		admin:  admin,
		logger: logger,
	}
}

// slotView pairs a meal slot with its plan so templates can render slots in order
type slotView struct {
	Slot  domain.MealSlot
	Label string
	Plan  domain.SlotPlan
}

func orderedSlots(plan domain.MealPlan) []slotView {
	views := make([]slotView, 0, len(domain.MealSlots))
	for _, slot := range domain.MealSlots {
		views = append(views, slotView{Slot: slot, Label: slot.Label(), Plan: plan[slot]})
	}
	return views
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "nutriquiz-backend",
		"version": "1.0.0",
	})
}

// QuizPage renders the quiz form with the catalog foods
func (h *Handler) QuizPage(c *gin.Context) {
	var foods []domain.FoodEntry
	if h.quiz != nil {
		for _, entry := range h.quiz.Catalog().Foods {
			foods = append(foods, entry)
		}
	}
	sort.Slice(foods, func(i, j int) bool { return foods[i].ID < foods[j].ID })

	c.HTML(http.StatusOK, "quiz.html", gin.H{
		"Slots": orderedSlots(nil),
		"Foods": foods,
	})
}

// ListFoods returns the food catalog
func (h *Handler) ListFoods(c *gin.Context) {
	if !h.quizConfigured(c) {
		return
	}
	c.JSON(http.StatusOK, h.quiz.Catalog())
}

// BuildPlan computes the calorie target and meal plan without storing anything
func (h *Handler) BuildPlan(c *gin.Context) {
	if !h.quizConfigured(c) {
		return
	}

	var submission domain.QuizSubmission
	if err := c.ShouldBindJSON(&submission); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, err := h.quiz.BuildPlan(c.Request.Context(), &submission)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// CreateSession records the submission and returns the id of its results
func (h *Handler) CreateSession(c *gin.Context) {
	if !h.quizConfigured(c) {
		return
	}

	var submission domain.QuizSubmission
	if err := c.ShouldBindJSON(&submission); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.quiz.SaveSession(c.Request.Context(), &submission)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"session_id":  id,
		"results_url": "/results/" + id,
	})
}

// SessionReport returns the full report of a session as JSON
func (h *Handler) SessionReport(c *gin.Context) {
	if !h.quizConfigured(c) {
		return
	}

	report, err := h.quiz.BuildReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// ResultsPage renders the final plan page of a session
func (h *Handler) ResultsPage(c *gin.Context) {
	if !h.quizConfigured(c) {
		return
	}

	report, err := h.quiz.BuildReport(c.Request.Context(), c.Param("id"))
	if errors.Is(err, domain.ErrSessionNotFound) {
		c.HTML(http.StatusNotFound, "expired.html", nil)
		return
	}
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.HTML(http.StatusOK, "results.html", gin.H{
		"Report": report,
		"Slots":  orderedSlots(report.Plan),
	})
}

// ResultsPDF streams the plan of a session as a PDF attachment
func (h *Handler) ResultsPDF(c *gin.Context) {
	if !h.quizConfigured(c) {
		return
	}

	data, documentID, err := h.quiz.RenderPDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	if documentID != "" {
		c.Header("X-Document-ID", documentID)
	}
	c.Header("Content-Disposition", `attachment; filename="`+pdfFilename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// DownloadPDF serves a previously archived PDF, redirecting to the archive when it hands out links
func (h *Handler) DownloadPDF(c *gin.Context) {
	if !h.quizConfigured(c) {
		return
	}
	ctx := c.Request.Context()
	id := c.Param("pdf_id")

	url, err := h.quiz.ArchivedPDFURL(ctx, id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if url != "" {
		c.Redirect(http.StatusFound, url)
		return
	}

	data, err := h.quiz.ArchivedPDF(ctx, id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+pdfFilename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminLogin exchanges admin credentials for a bearer token
func (h *Handler) AdminLogin(c *gin.Context) {
	if h.admin == nil || !h.admin.Enabled() {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "admin API not configured"})
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.admin.Login(req.Username, req.Password)
	if err != nil {
		h.logger.Warn("admin login failed", zap.String("username", req.Username), zap.String("ip", c.ClientIP()))
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// ListLeads exports the lead log
func (h *Handler) ListLeads(c *gin.Context) {
	if !h.quizConfigured(c) {
		return
	}

	leads, err := h.quiz.ListLeads(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(leads),
		"leads": leads,
	})
}

func (h *Handler) quizConfigured(c *gin.Context) bool {
	if h.quiz == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "quiz service not configured"})
		return false
	}
	return true
}

// writeError maps domain errors to HTTP status codes
func (h *Handler) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, domain.ErrInvalidRequest), errors.Is(err, domain.ErrUnknownGoal):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrSessionNotFound):
		status, message = http.StatusNotFound, "session expired or not found"
	case errors.Is(err, domain.ErrDocumentNotFound):
		status, message = http.StatusNotFound, "document not found"
	case errors.Is(err, domain.ErrUnauthorized):
		status, message = http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, domain.ErrNotConfigured):
		status, message = http.StatusNotImplemented, err.Error()
	case errors.Is(err, domain.ErrCacheUnavailable), errors.Is(err, domain.ErrCatalogUnavailable):
		status, message = http.StatusServiceUnavailable, "service temporarily unavailable"
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	c.JSON(status, gin.H{"error": message})
}
