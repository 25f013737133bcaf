package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindChildRequest(t *testing.T, body string) (childRequest, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/children", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req childRequest
	err := c.ShouldBindJSON(&req)
	return req, err
}

func TestChildRequestAcceptsAllGenders(t *testing.T) {
	for _, gender := range []string{"M", "F", "O"} {
		req, err := bindChildRequest(t,
			`{"name":"Aarav","gender":"`+gender+`","date_of_birth":"2024-01-15"}`)
		require.NoError(t, err, "gender %s should bind", gender)

		child, err := req.toModel(1)
		require.NoError(t, err)
		assert.Equal(t, gender, child.Gender)
	}
}

func TestChildRequestRejectsUnknownGender(t *testing.T) {
	_, err := bindChildRequest(t,
		`{"name":"Aarav","gender":"X","date_of_birth":"2024-01-15"}`)
	assert.Error(t, err)
}

func TestChildRequestRejectsFutureDateOfBirth(t *testing.T) {
	future := time.Now().AddDate(0, 0, 2).Format("2006-01-02")
	req, err := bindChildRequest(t,
		`{"name":"Aarav","gender":"F","date_of_birth":"`+future+`"}`)
	require.NoError(t, err)

	_, err = req.toModel(1)
	assert.Error(t, err)
}
