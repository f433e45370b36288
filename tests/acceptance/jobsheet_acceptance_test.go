package acceptance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vtech-solutions/garage-api/config"
	"github.com/vtech-solutions/garage-api/controllers"
	"github.com/vtech-solutions/garage-api/middleware"
	"github.com/vtech-solutions/garage-api/models"
	"github.com/vtech-solutions/garage-api/tests/testutil"
)

// DashboardAcceptanceTestSuite walks the whole dashboard workflow the
// way the front end drives it: sign up, log in, set up the catalog,
// receive stock, open a job against a product, and inspect the results.
type DashboardAcceptanceTestSuite struct {
	suite.Suite
	router *gin.Engine
	cfg    *config.Config
	db     *gorm.DB
	token  string
}

func (suite *DashboardAcceptanceTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.cfg = &config.Config{
		JWTSecret: testutil.TestJWTSecret,
		GoEnv:     "test",
		Port:      "8080",
	}
	config.SetConfig(suite.cfg)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.NoError(err)
	suite.NoError(db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Mechanic{},
		&models.Service{},
		&models.Product{},
		&models.StockLog{},
		&models.JobSheet{},
	))
	suite.db = db
	config.SetDB(db)

	suite.router = gin.New()
	api := suite.router.Group("/api")
	auth := api.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}
	protected := api.Group("")
	protected.Use(middleware.RequireAuth(suite.cfg))
	{
		protected.POST("/clients", controllers.CreateClient)
		protected.POST("/mechanics", controllers.CreateMechanic)
		protected.POST("/services", controllers.CreateService)
		protected.POST("/products", controllers.CreateProduct)
		protected.POST("/inventory/update-stock", controllers.UpdateStock)
		protected.GET("/inventory/logs", controllers.ListStockLogs)
		protected.POST("/jobsheets", controllers.CreateJobSheet)
		protected.GET("/jobsheets", controllers.ListJobSheets)
	}

	// Sign up and log in once per test
	suite.postJSON("/api/auth/register", map[string]interface{}{
		"name": "Front Desk", "email": "desk@shop.com", "password": "p1secret",
	})
	w := suite.postJSON("/api/auth/login", map[string]interface{}{
		"email": "desk@shop.com", "password": "p1secret",
	})
	suite.Equal(http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.token = response["data"].(map[string]interface{})["token"].(string)
}

func (suite *DashboardAcceptanceTestSuite) postJSON(path string, body map[string]interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	if suite.token != "" {
		req.Header.Set("Authorization", "Bearer "+suite.token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *DashboardAcceptanceTestSuite) getJSON(path string) (map[string]interface{}, int) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+suite.token)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	return response, w.Code
}

func (suite *DashboardAcceptanceTestSuite) createdID(w *httptest.ResponseRecorder) uint {
	suite.Equal(http.StatusCreated, w.Code, fmt.Sprintf("unexpected response: %s", w.Body.String()))

	var response map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	return uint(response["data"].(map[string]interface{})["id"].(float64))
}

// TestFullRepairWorkflow covers intake to job listing
func (suite *DashboardAcceptanceTestSuite) TestFullRepairWorkflow() {
	t := suite.T()

	clientID := suite.createdID(suite.postJSON("/api/clients", map[string]interface{}{
		"firstname": "Ali", "lastname": "Raza", "contact": "0300-1234567", "address": "12 Canal Road",
	}))
	mechanicID := suite.createdID(suite.postJSON("/api/mechanics", map[string]interface{}{
		"name": "Usman", "contact": "0321-1234567",
	}))
	serviceID := suite.createdID(suite.postJSON("/api/services", map[string]interface{}{
		"name": "Screen Replacement", "cost": 1200,
	}))
	productID := suite.createdID(suite.postJSON("/api/products", map[string]interface{}{
		"name": "iPhone 11 Screen", "purchase_price": 800, "sell_price": 1000,
	}))

	// Receive stock
	w := suite.postJSON("/api/inventory/update-stock", map[string]interface{}{
		"productId": productID, "quantity": 5, "direction": "IN", "remarks": "opening stock",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// Open a job that consumes one screen
	w = suite.postJSON("/api/jobsheets", map[string]interface{}{
		"client":      clientID,
		"mechanic":    mechanicID,
		"service":     serviceID,
		"product":     productID,
		"deviceModel": "iPhone 11",
		"fault":       "cracked screen",
		"amount":      2200,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var jobResponse map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &jobResponse))
	jobData := jobResponse["data"].(map[string]interface{})
	trackingCode := jobData["tracking_code"].(string)
	assert.NotEmpty(t, trackingCode)
	assert.Equal(t, "Pending", jobData["status"])

	// The product now shows four remaining
	productData := jobData["product"].(map[string]interface{})
	assert.Equal(t, float64(4), productData["current_stock"])

	// The job listing resolves every reference for display
	listing, code := suite.getJSON("/api/jobsheets")
	assert.Equal(t, http.StatusOK, code)
	jobs := listing["data"].([]interface{})
	assert.Len(t, jobs, 1)
	job := jobs[0].(map[string]interface{})
	assert.Equal(t, "Ali", job["client"].(map[string]interface{})["firstname"])
	assert.Equal(t, "Usman", job["mechanic"].(map[string]interface{})["name"])
	assert.Equal(t, "Screen Replacement", job["service"].(map[string]interface{})["name"])

	// The ledger shows the opening stock and the job's consumption
	logsResponse, code := suite.getJSON("/api/inventory/logs")
	assert.Equal(t, http.StatusOK, code)
	logs := logsResponse["data"].([]interface{})
	assert.Len(t, logs, 2)
	newest := logs[0].(map[string]interface{})
	assert.Equal(t, "OUT", newest["direction"])
	assert.Contains(t, newest["remarks"], trackingCode)
}

// TestWorkflowRequiresAuthentication ensures no dashboard operation
// works without a token
func (suite *DashboardAcceptanceTestSuite) TestWorkflowRequiresAuthentication() {
	token := suite.token
	suite.token = ""
	defer func() { suite.token = token }()

	w := suite.postJSON("/api/clients", map[string]interface{}{
		"firstname": "Ali", "lastname": "Raza", "contact": "0300-1234567",
	})
	suite.Equal(http.StatusUnauthorized, w.Code)
}

// TestDashboardAcceptanceTestSuite runs the test suite
func TestDashboardAcceptanceTestSuite(t *testing.T) {
	suite.Run(t, new(DashboardAcceptanceTestSuite))
}
