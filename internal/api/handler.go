// Package api serves the survey statistics over HTTP.
package api

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/BerylCAtieno/product-survey/internal/models"
	"github.com/BerylCAtieno/product-survey/internal/profiler"
	"github.com/BerylCAtieno/product-survey/internal/stats"
	"github.com/BerylCAtieno/product-survey/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

type Handler struct {
	store     store.Store
	describer profiler.Describer
	metrics   *Metrics
}

// NewHandler wires the API to a store. describer may be nil, in which case
// persona descriptions answer 503.
func NewHandler(s store.Store, describer profiler.Describer) *Handler {
	return &Handler{
		store:     s,
		describer: describer,
		metrics:   NewMetrics(),
	}
}

// NewRouter registers every endpoint on a fresh gin engine.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), RequestIDMiddleware(), RequestLoggingMiddleware(), h.metrics.Middleware())

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	router.GET("/metrics", gin.WrapH(h.metrics.Handler()))

	v1 := router.Group("/api/v1")
	v1.GET("/likelihood", h.HandleLikelihood)
	v1.GET("/breakdown/:dimension", h.HandleBreakdown)
	v1.GET("/searches", h.HandleSearches)
	v1.GET("/searches/last", h.HandleLastSearch)
	v1.POST("/records", h.HandleAppendRecord)
	v1.POST("/personas/describe", h.HandleDescribePersona)

	return router
}

// RequestIDMiddleware tags every request with an id, reusing the caller's
// X-Request-ID when present.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestLoggingMiddleware logs all incoming requests
func RequestLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetString(requestIDKey)

		var body []byte
		if c.Request.Body != nil {
			body, _ = io.ReadAll(c.Request.Body)
			// Restore the body for the handler
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
		}

		log.Printf("REQUEST [%s]: %s %s", id, c.Request.Method, c.Request.URL.RequestURI())
		if len(body) > 0 {
			log.Printf("REQUEST [%s] body: %s", id, body)
		}

		c.Next()

		log.Printf("RESPONSE [%s]: status=%d duration=%s", id, c.Writer.Status(), time.Since(start))
	}
}

// HandleLikelihood aggregates over the records matching the query parameters.
// Each parameter accepts either the menu key (M, 1..6, 1..5) or the stored value.
func (h *Handler) HandleLikelihood(c *gin.Context) {
	var f stats.Filter
	var err error
	if f.Gender, err = queryChoice(c, "gender", models.GenderChoices); err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error())
		return
	}
	if f.AgeGroup, err = queryChoice(c, "age_group", models.AgeGroupChoices); err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error())
		return
	}
	if f.IncomeBracket, err = queryChoice(c, "income_bracket", models.IncomeBracketChoices); err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error())
		return
	}

	records, err := h.store.Records(c.Request.Context())
	if err != nil {
		log.Printf("ERROR: Failed to read records: %v", err)
		h.sendError(c, http.StatusInternalServerError, "Failed to read survey data")
		return
	}

	res := stats.Likelihood(records, f)
	h.metrics.observeLookup("likelihood", !res.Empty())
	log.Printf("STATE: likelihood for %+v matched %d record(s)", f, res.Matched)
	c.JSON(http.StatusOK, newLikelihoodResponse(f, res))
}

// HandleBreakdown groups every record by one dimension.
func (h *Handler) HandleBreakdown(c *gin.Context) {
	d, err := stats.ParseDimension(c.Param("dimension"))
	if err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error())
		return
	}

	records, err := h.store.Records(c.Request.Context())
	if err != nil {
		log.Printf("ERROR: Failed to read records: %v", err)
		h.sendError(c, http.StatusInternalServerError, "Failed to read survey data")
		return
	}

	c.JSON(http.StatusOK, newBreakdownResponse(d, stats.Breakdown(records, d)))
}

func (h *Handler) HandleSearches(c *gin.Context) {
	results, err := h.store.SearchResults(c.Request.Context())
	if err != nil {
		log.Printf("ERROR: Failed to read stored searches: %v", err)
		h.sendError(c, http.StatusInternalServerError, "Failed to read stored searches")
		return
	}
	if results == nil {
		results = []models.StoredSearchResult{}
	}
	c.JSON(http.StatusOK, SearchesResponse{Count: len(results), Searches: results})
}

func (h *Handler) HandleLastSearch(c *gin.Context) {
	results, err := h.store.SearchResults(c.Request.Context())
	if err != nil {
		log.Printf("ERROR: Failed to read stored searches: %v", err)
		h.sendError(c, http.StatusInternalServerError, "Failed to read stored searches")
		return
	}
	if len(results) == 0 {
		h.sendError(c, http.StatusNotFound, "No available data")
		return
	}
	c.JSON(http.StatusOK, results[len(results)-1])
}

// HandleAppendRecord stores one survey response after validating it.
func (h *Handler) HandleAppendRecord(c *gin.Context) {
	var req AppendRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("WARN: Failed to decode record: %v", err)
		h.sendError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	record := req.Record()
	if err := record.Validate(); err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.AppendRecord(c.Request.Context(), record); err != nil {
		log.Printf("ERROR: Failed to append record: %v", err)
		h.sendError(c, http.StatusInternalServerError, "Failed to store record")
		return
	}

	log.Printf("STATE: appended record %+v", record)
	c.JSON(http.StatusCreated, record)
}

// HandleDescribePersona looks up a full persona and asks the profiler for a
// typical customer behind it.
func (h *Handler) HandleDescribePersona(c *gin.Context) {
	if h.describer == nil {
		h.sendError(c, http.StatusServiceUnavailable, "Persona profiler is not configured")
		return
	}

	var req DescribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("WARN: Failed to decode describe request: %v", err)
		h.sendError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	persona := req.Persona()
	if err := persona.Validate(); err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error())
		return
	}

	records, err := h.store.Records(c.Request.Context())
	if err != nil {
		log.Printf("ERROR: Failed to read records: %v", err)
		h.sendError(c, http.StatusInternalServerError, "Failed to read survey data")
		return
	}
	res := stats.Likelihood(records, stats.ByPersona(persona))
	h.metrics.observeLookup("persona", !res.Empty())
	if res.Empty() {
		h.sendError(c, http.StatusNotFound, "No data found for the specified combination")
		return
	}

	log.Printf("STATE: Calling profiler for persona: %s", persona)
	profileResp, err := h.describer.DescribePersona(c.Request.Context(), persona, res.Formatted())
	if err != nil {
		log.Printf("ERROR: Failed to describe persona: %v", err)
		h.sendError(c, http.StatusBadGateway, fmt.Sprintf("Failed to describe persona: %v", err))
		return
	}

	c.JSON(http.StatusOK, profileResp)
}

func (h *Handler) sendError(c *gin.Context, status int, message string) {
	if status >= http.StatusInternalServerError {
		log.Printf("ERROR: [%d] %s", status, message)
	} else {
		log.Printf("WARN: [%d] %s", status, message)
	}
	c.JSON(status, ErrorResponse{
		Error:     message,
		RequestID: c.GetString(requestIDKey),
		Timestamp: Timestamp(),
	})
}

// queryChoice resolves an optional enumeration parameter. Keys match
// case-insensitively, as at the menu. An absent parameter yields "" which
// matches every record.
func queryChoice(c *gin.Context, name string, choices models.Choices) (string, error) {
	raw := c.Query(name)
	if raw == "" {
		return "", nil
	}
	if v, ok := choices.Lookup(strings.ToUpper(raw)); ok {
		return v, nil
	}
	if choices.Contains(raw) {
		return raw, nil
	}
	return "", fmt.Errorf("invalid %s %q, want one of: %s", name, raw, strings.Join(choices.Values(), ", "))
}
