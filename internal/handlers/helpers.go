package handlers

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "fundit/internal/errors"
	"fundit/internal/middleware"
	"fundit/internal/models"
	"fundit/internal/services"
	"fundit/internal/uuid"
)

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID, exists := c.Get("userID")
	if !exists {
		return "", apperrors.ErrUnauthorized
	}
	id, ok := userID.(string)
	if !ok || id == "" {
		return "", apperrors.ErrUnauthorized
	}
	return id, nil
}

// parsePathID reads a UUID path parameter.
// Returns ErrInvalidInput if the parameter is not a valid UUID.
//
//nolint:unparam // param is intentionally generic for reuse across handlers with different path params
func parsePathID(c *gin.Context, param string) (string, error) {
	id := c.Param(param)
	if !uuid.IsValid(id) {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id, nil
}

// parseGoalKind reads the :kind path parameter.
func parseGoalKind(c *gin.Context) (models.GoalKind, error) {
	kind := models.GoalKind(c.Param("kind"))
	if !kind.Valid() {
		return "", apperrors.ErrInvalidGoalKind
	}
	return kind, nil
}

// parseGoalRef reads the :kind and :id path parameters.
func parseGoalRef(c *gin.Context) (models.TargetRef, error) {
	kind, err := parseGoalKind(c)
	if err != nil {
		return models.TargetRef{}, err
	}
	id, err := parsePathID(c, "id")
	if err != nil {
		return models.TargetRef{}, err
	}
	return models.TargetRef{Kind: kind, ID: id}, nil
}

// parsePeriodFilter reads the optional year and month query parameters.
func parsePeriodFilter(c *gin.Context) (services.PeriodFilter, error) {
	var filter services.PeriodFilter
	if v := c.Query("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil || year < 1 || year > 9999 {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "year must be a four digit number")
		}
		filter.Year = &year
	}
	filter.Month = c.Query("month")
	return filter, nil
}

// bindError converts a binding failure into an InvalidInput error.
// AppErrors raised while decoding a field are returned unchanged.
func bindError(err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	status, body := middleware.ErrorBody(c, err)
	c.JSON(status, body)
}

// looseString accepts a JSON string or a bare JSON number.
type looseString string

// UnmarshalJSON implements json.Unmarshaler.
func (s *looseString) UnmarshalJSON(data []byte) error {
	switch {
	case string(data) == "null":
		*s = ""
	case len(data) > 0 && data[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = looseString(v)
	default:
		*s = looseString(data)
	}
	return nil
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
