package availability

import (
	"net/http"
	"strconv"
	"time"

	"uni-leave-portal/internal/shared/apperror"
	"uni-leave-portal/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CandidateResponse struct {
	FacultyID string `json:"faculty_id"`
	Name      string `json:"name"`
}

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("availability.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("availability.handler")
	}
	return &Handler{service: service, logger: l}
}

// Resolve answers "who can cover (date, slot)?" for the signed-in faculty
// member. The UI may precompute suggestions while the form is open, but this
// endpoint is the answer that counts.
func (h *Handler) Resolve(c *gin.Context) {
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date must be YYYY-MM-DD", nil)
		return
	}

	slot, err := strconv.Atoi(c.Query("slot"))
	if err != nil || slot < 1 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "slot must be a positive integer", nil)
		return
	}

	facultyID := c.GetString("faculty_id")

	candidates, err := h.service.ResolveAvailability(c.Request.Context(), date, slot, facultyID)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("resolve availability failed",
			zap.Int("status", httpErr.Status),
			zap.String("code", httpErr.Code),
		)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	resp := make([]CandidateResponse, len(candidates))
	for i, cand := range candidates {
		resp[i] = CandidateResponse{FacultyID: cand.FacultyID, Name: cand.Name}
	}

	response.Success(c, http.StatusOK, resp, nil)
}
