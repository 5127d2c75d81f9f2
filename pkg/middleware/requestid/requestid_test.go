package requestid

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, inbound string) (string, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	var seen string
	r.GET("/", func(c *gin.Context) {
		seen = Value(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	if inbound != "" {
		req.Header.Set(Header, inbound)
	}
	r.ServeHTTP(w, req)
	return seen, w
}

func TestPropagatesInboundID(t *testing.T) {
	seen, w := serve(t, "req-abc-123")
	assert.Equal(t, "req-abc-123", seen)
	assert.Equal(t, "req-abc-123", w.Header().Get(Header))
}

func TestMintsIDWhenAbsent(t *testing.T) {
	seen, w := serve(t, "")
	require.NotEmpty(t, seen)
	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
	assert.Equal(t, seen, w.Header().Get(Header))
}

func TestReplacesOversizedInboundID(t *testing.T) {
	long := strings.Repeat("a", 2*maxInboundLen)
	seen, _ := serve(t, long)
	require.NotEmpty(t, seen)
	assert.NotEqual(t, long, seen)
}
