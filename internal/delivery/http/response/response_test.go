package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-ats-core/internal/delivery/http/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestPaginatedEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Set("RequestID", "req-123")

	response.Paginated(c, http.StatusOK, "Interviews fetched", []string{"a", "b"}, response.Meta{
		Total:    42,
		Page:     2,
		PageSize: 10,
	})

	var body response.Response
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "req-123", body.RequestID)
	if assert.NotNil(t, body.Meta) {
		assert.Equal(t, int64(42), body.Meta.Total)
		assert.Equal(t, 2, body.Meta.Page)
		assert.Equal(t, 10, body.Meta.PageSize)
	}
}

func TestSuccessOmitsMeta(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	response.Success(c, http.StatusOK, "ok", gin.H{"id": 1})

	assert.NotContains(t, rec.Body.String(), `"meta"`)
	assert.NotContains(t, rec.Body.String(), `"request_id"`)
}
