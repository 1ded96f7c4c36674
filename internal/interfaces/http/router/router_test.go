package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/erp/projectlink/internal/interfaces/http/handler"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
}

func TestRouterWithAPIVersion(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v2"))

	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterRegister(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	group := NewDomainGroup("test", "/test")
	r.Register(group)

	assert.Len(t, r.registrars, 1)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v1"))

	group := NewDomainGroup("test", "/test")
	group.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	r.Register(group)
	r.Setup()

	// Test the route was registered
	req := httptest.NewRequest("GET", "/api/v1/test/ping", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestDomainGroup(t *testing.T) {
	t.Run("creates group with name and prefix", func(t *testing.T) {
		g := NewDomainGroup("purchase", "/purchase")
		assert.Equal(t, "purchase", g.Name())
		assert.Equal(t, "/purchase", g.Prefix())
	})

	t.Run("registers GET route", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("test", "/test")
		g.GET("/items", func(c *gin.Context) {
			c.String(http.StatusOK, "items")
		})

		api := engine.Group("/api/v1")
		g.RegisterRoutes(api)

		req := httptest.NewRequest("GET", "/api/v1/test/items", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("registers POST route", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("test", "/test")
		g.POST("/items", func(c *gin.Context) {
			c.String(http.StatusCreated, "created")
		})

		api := engine.Group("/api/v1")
		g.RegisterRoutes(api)

		req := httptest.NewRequest("POST", "/api/v1/test/items", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("applies middleware", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("test", "/test")

		// Add middleware that sets a header
		g.Use(func(c *gin.Context) {
			c.Header("X-Test-Middleware", "applied")
			c.Next()
		})

		g.GET("/items", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})

		api := engine.Group("/api/v1")
		g.RegisterRoutes(api)

		req := httptest.NewRequest("GET", "/api/v1/test/items", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, "applied", w.Header().Get("X-Test-Middleware"))
	})

	t.Run("creates subgroups", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("purchase", "/purchase")

		orders := g.Group("orders", "/orders")
		orders.GET("", func(c *gin.Context) {
			c.String(http.StatusOK, "orders list")
		})

		lines := g.Group("lines", "/lines")
		lines.GET("", func(c *gin.Context) {
			c.String(http.StatusOK, "lines list")
		})

		api := engine.Group("/api/v1")
		g.RegisterRoutes(api)

		// Test orders route
		req1 := httptest.NewRequest("GET", "/api/v1/purchase/orders", nil)
		w1 := httptest.NewRecorder()
		engine.ServeHTTP(w1, req1)
		assert.Equal(t, http.StatusOK, w1.Code)
		assert.Equal(t, "orders list", w1.Body.String())

		// Test lines route
		req2 := httptest.NewRequest("GET", "/api/v1/purchase/lines", nil)
		w2 := httptest.NewRecorder()
		engine.ServeHTTP(w2, req2)
		assert.Equal(t, http.StatusOK, w2.Code)
		assert.Equal(t, "lines list", w2.Body.String())
	})
}

func TestMultipleDomainGroups(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	purchase := NewDomainGroup("purchase", "/purchase")
	purchase.GET("/orders", func(c *gin.Context) {
		c.String(http.StatusOK, "purchase orders")
	})

	sale := NewDomainGroup("sale", "/sale")
	sale.GET("/orders", func(c *gin.Context) {
		c.String(http.StatusOK, "sale orders")
	})

	r.Register(purchase).Register(sale)
	r.Setup()

	// Test purchase route
	req1 := httptest.NewRequest("GET", "/api/v1/purchase/orders", nil)
	w1 := httptest.NewRecorder()
	engine.ServeHTTP(w1, req1)
	assert.Equal(t, http.StatusOK, w1.Code)
	assert.Equal(t, "purchase orders", w1.Body.String())

	// Test sale route
	req2 := httptest.NewRequest("GET", "/api/v1/sale/orders", nil)
	w2 := httptest.NewRecorder()
	engine.ServeHTTP(w2, req2)
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Equal(t, "sale orders", w2.Body.String())
}

func TestChainedMethodCalls(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	g := NewDomainGroup("test", "/test")
	g.GET("/a", func(c *gin.Context) { c.String(http.StatusOK, "a") }).
		POST("/b", func(c *gin.Context) { c.String(http.StatusOK, "b") })

	r.Register(g).Setup()

	// All routes should be registered
	tests := []struct {
		method string
		path   string
	}{
		{"GET", "/api/v1/test/a"},
		{"POST", "/api/v1/test/b"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "Route %s %s should work", tt.method, tt.path)
	}
}

func TestRouterUse(t *testing.T) {
	engine := gin.New()
	engine.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	g := NewDomainGroup("test", "/test")
	g.GET("/items", func(c *gin.Context) { c.String(http.StatusOK, "items") })

	NewRouter(engine).
		Use(func(c *gin.Context) {
			c.Header("X-API", "v1")
			c.Next()
		}).
		Register(g).
		Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/test/items", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "v1", w.Header().Get("X-API"))

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-API"), "API middleware must not leak outside the versioned group")
}

func TestRegisterAll(t *testing.T) {
	engine := gin.New()
	NewRouter(engine).RegisterAll(Handlers{
		Project:       &handler.ProjectHandler{},
		PurchaseOrder: &handler.PurchaseOrderHandler{},
		AccountMove:   &handler.AccountMoveHandler{},
		SaleOrder:     &handler.SaleOrderHandler{},
	}).Setup()

	registered := make(map[string]bool)
	for _, route := range engine.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"POST /api/v1/projects",
		"GET /api/v1/projects",
		"GET /api/v1/projects/:id",
		"GET /api/v1/projects/purchase-info",
		"GET /api/v1/projects/purchase-invoice-info",
		"GET /api/v1/projects/sale-info",
		"POST /api/v1/projects/actions/:action",
		"POST /api/v1/purchase/orders",
		"GET /api/v1/purchase/orders/:id",
		"POST /api/v1/purchase/orders/:id/confirm",
		"POST /api/v1/purchase/orders/:id/cancel",
		"POST /api/v1/accounting/moves",
		"GET /api/v1/accounting/moves/:id",
		"POST /api/v1/accounting/moves/:id/post",
		"POST /api/v1/accounting/moves/:id/cancel",
		"POST /api/v1/sale/advance-payment",
		"POST /api/v1/sale/orders",
		"GET /api/v1/sale/orders/:id",
		"POST /api/v1/sale/orders/:id/confirm",
		"POST /api/v1/sale/orders/:id/cancel",
	}
	for _, route := range expected {
		assert.True(t, registered[route], "route %s should be registered", route)
	}
	assert.Len(t, engine.Routes(), len(expected))
}
