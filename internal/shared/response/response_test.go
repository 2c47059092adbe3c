package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(t *testing.T, write func(c *gin.Context)) (*httptest.ResponseRecorder, Envelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	write(c)

	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestSuccessEnvelope(t *testing.T) {
	w, env := record(t, func(c *gin.Context) {
		Success(c, http.StatusOK, gin.H{"id": "1"})
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.Nil(t, env.Error)
}

func TestSuccessWithMeta_ComputesTotalPages(t *testing.T) {
	_, env := record(t, func(c *gin.Context) {
		SuccessWithMeta(c, http.StatusOK, []string{}, &Meta{Page: 1, Limit: 20, Total: 41})
	})

	require.NotNil(t, env.Meta)
	assert.Equal(t, 3, env.Meta.TotalPages)
}

func TestErrorEnvelope(t *testing.T) {
	w, env := record(t, func(c *gin.Context) {
		NotFound(c, "Product not found")
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
	assert.Equal(t, "Product not found", env.Error.Message)
}

func TestErrorWithDetails(t *testing.T) {
	_, env := record(t, func(c *gin.Context) {
		ErrorWithDetails(c, http.StatusBadRequest, "DISCOUNT_BELOW_MINIMUM", "Cart total below minimum",
			map[string]string{"min_amount": "500"})
	})

	require.NotNil(t, env.Error)
	details, ok := env.Error.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "500", details["min_amount"])
}
