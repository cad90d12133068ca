package identity

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-sweeper/infrastruture/token"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthoriz(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ts := token.NewJwtService("secret", "test")

	router := gin.New()
	router.GET("/games/:ID", Authoriz(ts), func(c *gin.Context) {
		c.String(http.StatusOK, c.MustGet(ContextSessionID).(uuid.UUID).String())
	})

	sessionID := uuid.New()
	valid, err := ts.Generate(sessionID, time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name   string
		target string
		header string
		want   int
	}{
		{name: "missing header", target: sessionID.String(), header: "", want: http.StatusUnauthorized},
		{name: "wrong scheme", target: sessionID.String(), header: "Basic " + valid, want: http.StatusUnauthorized},
		{name: "garbage token", target: sessionID.String(), header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "other session", target: uuid.New().String(), header: "Bearer " + valid, want: http.StatusForbidden},
		{name: "malformed id", target: "not-a-uuid", header: "Bearer " + valid, want: http.StatusBadRequest},
		{name: "valid", target: sessionID.String(), header: "bearer " + valid, want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/games/"+tt.target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusOK {
				assert.Equal(t, sessionID.String(), rec.Body.String())
			}
		})
	}
}
