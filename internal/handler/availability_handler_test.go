package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/scheduling-api/pkg/response"
)

func trainerAvailabilityRequest(t *testing.T, query string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	handler := NewAvailabilityHandler(nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/trainers/7/availability?"+query, nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "7"}}

	handler.TrainerAvailability(c)
	return w
}

func TestAvailabilityHandlerDayOutOfRange(t *testing.T) {
	w := trainerAvailabilityRequest(t, "term_id=2&day_of_week=7&lesson_period_id=3")
	require.Equal(t, http.StatusBadRequest, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Contains(t, envelope.Error.Message, "between 0 and 6")
}

func TestAvailabilityHandlerDayMissing(t *testing.T) {
	w := trainerAvailabilityRequest(t, "term_id=2&lesson_period_id=3")
	require.Equal(t, http.StatusBadRequest, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Contains(t, envelope.Error.Message, "day_of_week is required")
}

func TestAvailabilityHandlerTermMissing(t *testing.T) {
	w := trainerAvailabilityRequest(t, "day_of_week=1&lesson_period_id=3")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClassSlotsHandlerTermRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAvailabilityHandler(nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/classes/1/timetable-slots", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	handler.ClassSlots(c)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Contains(t, envelope.Error.Message, "term_id is required")
}

func TestAvailabilityHandlerDayZeroAccepted(t *testing.T) {
	// Sunday is day 0; the parser must not treat it as absent. The nil
	// service would panic past binding, so a valid query is exercised at
	// the binding layer only.
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/x?term_id=2&day_of_week=0&lesson_period_id=3", nil)
	c.Request = req

	q, err := bindAvailabilityQuery(c)
	require.NoError(t, err)
	assert.Equal(t, 0, q.DayOfWeek)
	assert.Equal(t, int64(2), q.TermID)
}
