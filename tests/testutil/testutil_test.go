package testutil

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTestUUID(t *testing.T) {
	a := NewTestUUID("project-a")
	assert.Equal(t, a, NewTestUUID("project-a"))
	assert.NotEqual(t, a, NewTestUUID("project-b"))
}

func TestContextWithTimeout(t *testing.T) {
	ctx := ContextWithTimeout(t, time.Minute)
	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.True(t, deadline.After(time.Now()))
}

func TestAssertEventually(t *testing.T) {
	calls := 0
	AssertEventually(t, func() bool {
		calls++
		return calls >= 3
	}, time.Second, time.Millisecond)
	assert.Equal(t, 3, calls)
}

func newEchoEngine() *gin.Engine {
	engine := gin.New()
	engine.POST("/echo", func(c *gin.Context) {
		var body map[string]any
		_ = c.ShouldBindJSON(&body)
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": gin.H{
			"body":     body,
			"language": c.GetHeader("Accept-Language"),
		}})
	})
	engine.GET("/missing", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": gin.H{"code": "ERR_NOT_FOUND", "message": "nope"}})
	})
	return engine
}

func TestAPIClient_Post(t *testing.T) {
	client := NewAPIClient(newEchoEngine())
	client.Headers["Accept-Language"] = "zh-CN"

	resp := client.Post(t, "/echo", map[string]any{"name": "P"})

	data := DataAs[struct {
		Body     map[string]any `json:"body"`
		Language string         `json:"language"`
	}](t, resp, http.StatusCreated)
	assert.Equal(t, "P", data.Body["name"])
	assert.Equal(t, "zh-CN", data.Language)
}

func TestAssertErrorResponse(t *testing.T) {
	client := NewAPIClient(newEchoEngine())
	resp := client.Get(t, "/missing")
	AssertErrorResponse(t, resp, http.StatusNotFound, "ERR_NOT_FOUND")
}
