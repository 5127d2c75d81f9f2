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

func TestOfferingHandlerAvailableSubjectsNonNumericID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewOfferingHandler(nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/classes/abc/available-subjects", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	handler.AvailableSubjects(c)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)
	assert.Contains(t, envelope.Error.Message, "positive integer")
}

func TestOfferingHandlerOfferedSubjectsBadTermQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewOfferingHandler(nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/classes/1/offered-subjects?term_id=soon", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	handler.OfferedSubjects(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
