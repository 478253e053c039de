package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medscan/backend/internal/domain"
)

// unavailableMarker substitutes for catalog columns that are blank for the
// matched record.
const unavailableMarker = "N/A"

// Identifier is the engine contract the handler depends on.
type Identifier interface {
	Identify(ctx context.Context, extraction domain.ExtractionResult) domain.Outcome
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	identifier Identifier
}

// NewHandler creates a new HTTP handler
func NewHandler(identifier Identifier) *Handler {
	return &Handler{identifier: identifier}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "medscan-backend",
		"version": "1.0.0",
	})
}

// medicineData is the resolved catalog record in a success response.
type medicineData struct {
	BrandName    string `json:"brand_name"`
	Composition  string `json:"composition"`
	Manufacturer string `json:"manufacturer"`
	Price        string `json:"price"`
	PackSize     string `json:"pack_size"`
}

// identifyResponse is the wire shape for all three outcomes. Exactly one of
// Data / ClosestMatch / Message is meaningful per status.
type identifyResponse struct {
	Status          string        `json:"status"`
	MatchConfidence *int          `json:"match_confidence,omitempty"`
	Data            *medicineData `json:"data,omitempty"`
	ClosestMatch    *string       `json:"closest_match,omitempty"`
	Message         string        `json:"message,omitempty"`
}

// IdentifyMedicine resolves one extraction payload to a catalog record.
// All three engine outcomes are valid answers and serialize with HTTP 200;
// only an unparseable request body is an HTTP-level error.
func (h *Handler) IdentifyMedicine(c *gin.Context) {
	if h.identifier == nil {
		c.JSON(http.StatusServiceUnavailable, identifyResponse{
			Status:  "error",
			Message: "identification engine not initialized",
		})
		return
	}

	var extraction domain.ExtractionResult
	if err := c.ShouldBindJSON(&extraction); err != nil {
		c.JSON(http.StatusBadRequest, identifyResponse{
			Status:  "error",
			Message: "invalid request body: " + err.Error(),
		})
		return
	}

	outcome := h.identifier.Identify(c.Request.Context(), extraction)

	switch result := outcome.(type) {
	case domain.MatchSuccess:
		c.JSON(http.StatusOK, identifyResponse{
			Status:          "success",
			MatchConfidence: &result.Confidence,
			Data: &medicineData{
				BrandName:    orUnavailable(result.Record.Name),
				Composition:  orUnavailable(result.Record.Composition),
				Manufacturer: orUnavailable(result.Record.Manufacturer),
				Price:        orUnavailable(result.Record.Price),
				PackSize:     orUnavailable(result.Record.PackSize),
			},
		})

	case domain.MatchLowConfidence:
		resp := identifyResponse{
			Status:          "low_confidence",
			MatchConfidence: &result.Confidence,
			Message:         "could not reliably verify the medicine",
		}
		if result.ClosestMatch != "" {
			resp.ClosestMatch = &result.ClosestMatch
		}
		c.JSON(http.StatusOK, resp)

	case domain.MatchFailure:
		c.JSON(http.StatusOK, identifyResponse{
			Status:  "error",
			Message: result.Reason,
		})

	default:
		c.JSON(http.StatusInternalServerError, identifyResponse{
			Status:  "error",
			Message: "unknown outcome type",
		})
	}
}

// orUnavailable returns the value or the explicit unavailable marker.
func orUnavailable(s string) string {
	if s == "" {
		return unavailableMarker
	}
	return s
}
