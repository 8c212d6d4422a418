package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"voyagent/models"
	"voyagent/services/search"
	"voyagent/services/summary"
	"voyagent/utils"
)

// Searcher is the pipeline behind the HTTP surface.
type Searcher interface {
	Search(ctx context.Context, req search.Request) (*summary.Report, error)
	Extract(ctx context.Context, text string) (*models.TravelIntent, error)
}

// Pinger reports database health. It is nil when no database is configured.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler serves the /api routes.
type Handler struct {
	searcher Searcher
	db       Pinger
	logger   *zap.Logger
}

// New returns a Handler. db may be nil.
func New(searcher Searcher, db Pinger, logger *zap.Logger) *Handler {
	return &Handler{searcher: searcher, db: db, logger: logger}
}

// Register mounts the routes on r.
func (h *Handler) Register(r gin.IRouter) {
	api := r.Group("/api")
	{
		api.GET("/health", h.HealthHandler)
		api.POST("/search", h.SearchHandler)
		api.POST("/extract", h.ExtractHandler)
		api.POST("/report", h.ReportHandler)
	}
}

type SearchRequest struct {
	Text  string `json:"text" binding:"required"`
	Type  string `json:"type"`
	Limit int    `json:"limit" binding:"gte=0,lte=50"`
}

type SectionResponse struct {
	Kind          models.Kind              `json:"kind"`
	Header        string                   `json:"header"`
	Offers        []models.NormalizedOffer `json:"offers"`
	Error         string                   `json:"error,omitempty"`
	LowConfidence bool                     `json:"low_confidence,omitempty"`
}

type SearchResponse struct {
	SearchID       string               `json:"search_id"`
	Intent         *models.TravelIntent `json:"intent"`
	Sections       []SectionResponse    `json:"sections"`
	Summary        string               `json:"summary"`
	Recommendation string               `json:"recommendation,omitempty"`
	Advice         string               `json:"advice,omitempty"`
	Source         string               `json:"source"` // "live" or "estimated"
}

func (h *Handler) SearchHandler(c *gin.Context) {
	req, ok := h.bindSearch(c)
	if !ok {
		return
	}

	report, err := h.searcher.Search(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewSearchResponse(report))
}

// NewSearchResponse flattens a report for JSON clients. Section errors
// become messages; the request itself still succeeded.
func NewSearchResponse(r *summary.Report) SearchResponse {
	resp := SearchResponse{
		SearchID:       r.ID,
		Intent:         r.Intent,
		Sections:       make([]SectionResponse, 0, len(r.Sections)),
		Summary:        summary.ComposeTrip(r),
		Recommendation: r.Recommendation,
		Advice:         r.Advice,
		Source:         "live",
	}
	if r.Estimated {
		resp.Source = "estimated"
	}
	for _, s := range r.Sections {
		sr := SectionResponse{
			Kind:          s.Kind,
			Header:        summary.Header(r.Intent, s.Kind),
			Offers:        s.Offers,
			LowConfidence: s.LowConfidence,
		}
		if s.Err != nil {
			sr.Error = "No results: " + s.Err.Error()
		}
		if sr.Offers == nil {
			sr.Offers = []models.NormalizedOffer{}
		}
		resp.Sections = append(resp.Sections, sr)
	}
	return resp
}

func (h *Handler) bindSearch(c *gin.Context) (search.Request, bool) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, h.logger, http.StatusBadRequest, "Invalid request", err.Error())
		return search.Request{}, false
	}
	qt, err := models.ParseQueryType(req.Type)
	if err != nil {
		utils.JSONError(c, h.logger, http.StatusBadRequest, "Invalid request", err.Error())
		return search.Request{}, false
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		utils.JSONError(c, h.logger, http.StatusBadRequest, "Invalid request", "text must not be empty")
		return search.Request{}, false
	}
	return search.Request{Text: text, Type: qt, Limit: req.Limit}, true
}

// writeError maps pipeline errors to responses. Incomplete requests are the
// caller's to fix; provider failures only reach here outside a section.
func (h *Handler) writeError(c *gin.Context, err error) {
	var (
		missing    *models.MissingFieldError
		extraction *models.ExtractionError
		upstream   *models.UpstreamError
	)
	switch {
	case errors.As(err, &missing):
		utils.JSONError(c, h.logger, http.StatusUnprocessableEntity, "Missing required field: "+missing.Field, err.Error())
	case errors.As(err, &extraction):
		utils.JSONError(c, h.logger, http.StatusUnprocessableEntity, "Could not understand the request", err.Error())
	case errors.As(err, &upstream):
		utils.JSONError(c, h.logger, http.StatusBadGateway, "Provider unavailable", err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		utils.JSONError(c, h.logger, http.StatusGatewayTimeout, "Request timed out", err.Error())
	default:
		h.logger.Error("search failed", zap.Error(err))
		utils.JSONError(c, h.logger, http.StatusInternalServerError, "Search failed", "")
	}
}
