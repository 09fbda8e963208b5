package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/AbdullahHad/WaadFinal/internal/constants"
	"github.com/AbdullahHad/WaadFinal/internal/dto"
	"github.com/AbdullahHad/WaadFinal/internal/models"
	"github.com/AbdullahHad/WaadFinal/internal/notify"
	"github.com/AbdullahHad/WaadFinal/internal/repository"
	"github.com/AbdullahHad/WaadFinal/internal/services"
	"github.com/AbdullahHad/WaadFinal/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// HandlersTestSuite drives the whole API through the router
type HandlersTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
	owner  *models.Employee
	other  *models.Employee
	admin  *models.Employee
	due    time.Time
}

// SetupTest runs before each test
func (suite *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	log := zerolog.Nop()

	suite.db = testutil.NewDB(suite.T())
	employeeRepo := repository.NewEmployeeRepository(suite.db)
	commitmentRepo := repository.NewCommitmentRepository(suite.db)
	alertRepo := repository.NewAlertRepository(suite.db)

	commitments := services.NewCommitmentService(commitmentRepo, alertRepo)
	employees := services.NewEmployeeService(employeeRepo)
	alerts := services.NewAlertService(alertRepo, commitmentRepo)
	admin := services.NewAdminService(commitmentRepo, commitments, employees)

	suite.router = gin.New()
	Routes{
		Employees:     employeeRepo,
		Commitments:   commitmentRepo,
		Health:        NewHealthHandler(suite.db),
		Commitment:    NewCommitmentHandler(commitments, log),
		Alert:         NewAlertHandler(alerts, log),
		Admin:         NewAdminHandler(admin, log),
		Notifications: NewNotificationHandler(notify.NewHub(4, log), time.Minute),
	}.Register(suite.router)

	suite.owner = testutil.CreateEmployee(suite.T(), suite.db, "owner@example.com", models.RoleEmployee)
	suite.other = testutil.CreateEmployee(suite.T(), suite.db, "other@example.com", models.RoleEmployee)
	suite.admin = testutil.CreateEmployee(suite.T(), suite.db, "admin@example.com", models.RoleAdmin)
	suite.due = time.Date(2030, 3, 10, 9, 0, 0, 0, time.UTC)
}

// Helper function to send a request as an employee
func (suite *HandlersTestSuite) request(method, url string, body interface{}, as *models.Employee) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		req = httptest.NewRequest(method, url, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	if as != nil {
		req.Header.Set(constants.HeaderEmployeeID, strconv.FormatUint(as.ID, 10))
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlersTestSuite) decode(w *httptest.ResponseRecorder, v interface{}) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), v))
}

func commitmentURL(id uint64) string {
	return "/api/commitments/" + strconv.FormatUint(id, 10)
}

func (suite *HandlersTestSuite) TestHealth() {
	w := suite.request(http.MethodGet, "/health", nil, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), `"status":"ok"`)
}

func (suite *HandlersTestSuite) TestAPI_RequiresEmployee() {
	w := suite.request(http.MethodGet, "/api/commitments", nil, nil)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *HandlersTestSuite) TestCreateCommitment_Success() {
	w := suite.request(http.MethodPost, "/api/commitments", gin.H{
		"title":             "Send proposal",
		"organization_name": "Acme Corp",
		"contact_person":    "Jane Roe",
		"due_date":          suite.due.Format(time.RFC3339),
	}, suite.owner)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var created dto.CommitmentDTO
	suite.decode(w, &created)
	assert.Equal(suite.T(), "Send proposal", created.Title)
	assert.Equal(suite.T(), models.CommitmentStatusPending, created.Status)
	suite.Require().NotNil(created.OwnerID)
	assert.Equal(suite.T(), suite.owner.ID, *created.OwnerID)

	var alerts []models.Alert
	suite.Require().NoError(suite.db.Where("commitment_id = ?", created.ID).Find(&alerts).Error)
	suite.Require().Len(alerts, 1)
	assert.Equal(suite.T(), "New follow-up created for Acme Corp: Send proposal", alerts[0].Message)
}

func (suite *HandlersTestSuite) TestCreateCommitment_InvalidBody() {
	w := suite.request(http.MethodPost, "/api/commitments", gin.H{
		"organization_name": "Acme Corp",
		"due_date":          suite.due.Format(time.RFC3339),
	}, suite.owner)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodPost, "/api/commitments", gin.H{
		"title":             "Send proposal",
		"organization_name": "Acme Corp",
		"due_date":          suite.due.Format(time.RFC3339),
		"status":            "SOMEDAY",
	}, suite.owner)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestListCommitments_OwnOnly() {
	testutil.CreateCommitment(suite.T(), suite.db, "Mine", suite.due, models.CommitmentStatusPending, &suite.owner.ID)
	testutil.CreateCommitment(suite.T(), suite.db, "Mine too", suite.due.Add(time.Hour), models.CommitmentStatusOverdue, &suite.owner.ID)
	testutil.CreateCommitment(suite.T(), suite.db, "Theirs", suite.due, models.CommitmentStatusPending, &suite.other.ID)

	w := suite.request(http.MethodGet, "/api/commitments?page=1&limit=10", nil, suite.owner)
	suite.Require().Equal(http.StatusOK, w.Code)

	var list dto.CommitmentListResponse
	suite.decode(w, &list)
	assert.Equal(suite.T(), int64(2), list.TotalCount)
	assert.Equal(suite.T(), 1, list.TotalPages)
	suite.Require().Len(list.Commitments, 2)
	assert.Equal(suite.T(), "Mine too", list.Commitments[0].Title)

	w = suite.request(http.MethodGet, "/api/commitments?status=overdue", nil, suite.owner)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.decode(w, &list)
	assert.Equal(suite.T(), int64(1), list.TotalCount)

	w = suite.request(http.MethodGet, "/api/commitments?status=late", nil, suite.owner)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestGetCommitment_Access() {
	commitment := testutil.CreateCommitment(suite.T(), suite.db, "Mine", suite.due, models.CommitmentStatusPending, &suite.owner.ID)

	w := suite.request(http.MethodGet, commitmentURL(commitment.ID), nil, suite.owner)
	suite.Require().Equal(http.StatusOK, w.Code)
	var got dto.CommitmentDTO
	suite.decode(w, &got)
	assert.Equal(suite.T(), "Mine", got.Title)
	suite.Require().NotNil(got.Owner)
	assert.Equal(suite.T(), "owner@example.com", got.Owner.Email)

	assert.Equal(suite.T(), http.StatusNotFound, suite.request(http.MethodGet, commitmentURL(commitment.ID), nil, suite.other).Code)
	assert.Equal(suite.T(), http.StatusOK, suite.request(http.MethodGet, commitmentURL(commitment.ID), nil, suite.admin).Code)
}

func (suite *HandlersTestSuite) TestUpdateCommitment_MarkOverdue() {
	commitment := testutil.CreateCommitment(suite.T(), suite.db, "Renew contract", suite.due, models.CommitmentStatusPending, &suite.owner.ID)

	w := suite.request(http.MethodPatch, commitmentURL(commitment.ID), gin.H{"status": "OVERDUE"}, suite.owner)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var updated dto.CommitmentDTO
	suite.decode(w, &updated)
	assert.Equal(suite.T(), models.CommitmentStatusOverdue, updated.Status)
	assert.Equal(suite.T(), "Renew contract", updated.Title)

	var alerts []models.Alert
	suite.Require().NoError(suite.db.Where("commitment_id = ?", commitment.ID).Find(&alerts).Error)
	suite.Require().Len(alerts, 1)
	assert.Equal(suite.T(), "CRITICAL: Follow-up 'Renew contract' is now marked as OVERDUE.", alerts[0].Message)
}

func (suite *HandlersTestSuite) TestCommitment_DueDateWithOffsetStoredInUTC() {
	w := suite.request(http.MethodPost, "/api/commitments", gin.H{
		"title":             "Call Osaka office",
		"organization_name": "Acme Corp",
		"due_date":          "2030-01-01T10:00:00+09:00",
	}, suite.owner)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(suite.T(), w.Body.String(), `"due_date":"2030-01-01T01:00:00Z"`)

	var created dto.CommitmentDTO
	suite.decode(w, &created)

	w = suite.request(http.MethodPatch, commitmentURL(created.ID), gin.H{"due_date": "2030-01-01T10:00:00-05:00"}, suite.owner)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	assert.Contains(suite.T(), w.Body.String(), `"due_date":"2030-01-01T15:00:00Z"`)

	commitmentRepo := repository.NewCommitmentRepository(suite.db)
	candidates, err := commitmentRepo.FindOverdueCandidates(context.Background(), time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)
	assert.Empty(suite.T(), candidates)
}

func (suite *HandlersTestSuite) TestListCommitmentAlerts() {
	commitment := testutil.CreateCommitment(suite.T(), suite.db, "Renew contract", suite.due, models.CommitmentStatusPending, &suite.owner.ID)
	suite.Require().Equal(http.StatusOK, suite.request(http.MethodPatch, commitmentURL(commitment.ID), gin.H{"status": "OVERDUE"}, suite.owner).Code)

	var body struct {
		Alerts []dto.AlertDTO `json:"alerts"`
	}
	w := suite.request(http.MethodGet, commitmentURL(commitment.ID)+"/alerts", nil, suite.owner)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.decode(w, &body)
	suite.Require().Len(body.Alerts, 1)
	assert.Equal(suite.T(), commitment.ID, body.Alerts[0].CommitmentID)
	assert.Equal(suite.T(), models.AlertStatusNew, body.Alerts[0].Status)

	assert.Equal(suite.T(), http.StatusNotFound, suite.request(http.MethodGet, commitmentURL(commitment.ID)+"/alerts", nil, suite.other).Code)
	assert.Equal(suite.T(), http.StatusOK, suite.request(http.MethodGet, commitmentURL(commitment.ID)+"/alerts", nil, suite.admin).Code)
}

func (suite *HandlersTestSuite) TestUpdateCommitment_Validation() {
	commitment := testutil.CreateCommitment(suite.T(), suite.db, "Renew contract", suite.due, models.CommitmentStatusPending, &suite.owner.ID)

	w := suite.request(http.MethodPatch, commitmentURL(commitment.ID), gin.H{"title": "  "}, suite.owner)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodPatch, commitmentURL(commitment.ID), gin.H{"status": "DONE"}, suite.owner)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestDeleteCommitment() {
	commitment := testutil.CreateCommitment(suite.T(), suite.db, "Renew contract", suite.due, models.CommitmentStatusPending, &suite.owner.ID)

	assert.Equal(suite.T(), http.StatusNotFound, suite.request(http.MethodDelete, commitmentURL(commitment.ID), nil, suite.other).Code)
	assert.Equal(suite.T(), http.StatusNoContent, suite.request(http.MethodDelete, commitmentURL(commitment.ID), nil, suite.owner).Code)
	assert.Equal(suite.T(), http.StatusNotFound, suite.request(http.MethodGet, commitmentURL(commitment.ID), nil, suite.owner).Code)
}

func (suite *HandlersTestSuite) TestDashboard() {
	testutil.CreateCommitment(suite.T(), suite.db, "Pending", suite.due, models.CommitmentStatusPending, &suite.owner.ID)
	overdue := testutil.CreateCommitment(suite.T(), suite.db, "Overdue", suite.due, models.CommitmentStatusOverdue, &suite.owner.ID)
	suite.Require().NoError(suite.db.Create(&models.Alert{
		CommitmentID: overdue.ID,
		Message:      "SYSTEM: Commitment 'Overdue' is now OVERDUE.",
		Status:       models.AlertStatusNew,
		CreatedAt:    suite.due,
	}).Error)

	w := suite.request(http.MethodGet, "/api/dashboard", nil, suite.owner)
	suite.Require().Equal(http.StatusOK, w.Code)

	var dashboard dto.DashboardDTO
	suite.decode(w, &dashboard)
	assert.Equal(suite.T(), int64(1), dashboard.PendingCount)
	assert.Equal(suite.T(), int64(1), dashboard.OverdueCount)
	assert.Equal(suite.T(), int64(0), dashboard.CompletedCount)
	assert.Equal(suite.T(), int64(1), dashboard.NewAlertsCount)
	assert.Len(suite.T(), dashboard.RecentCommitments, 2)
	suite.Require().Len(dashboard.RecentAlerts, 1)
	assert.Equal(suite.T(), "SYSTEM: Commitment 'Overdue' is now OVERDUE.", dashboard.RecentAlerts[0].Message)
}

func (suite *HandlersTestSuite) TestAlerts_ListAndAcknowledge() {
	commitment := testutil.CreateCommitment(suite.T(), suite.db, "Overdue", suite.due, models.CommitmentStatusOverdue, &suite.owner.ID)
	alert := &models.Alert{CommitmentID: commitment.ID, Message: "overdue", Status: models.AlertStatusNew, CreatedAt: suite.due}
	resolved := &models.Alert{CommitmentID: commitment.ID, Message: "resolved", Status: models.AlertStatusResolved, CreatedAt: suite.due.Add(time.Minute)}
	suite.Require().NoError(suite.db.Create(alert).Error)
	suite.Require().NoError(suite.db.Create(resolved).Error)

	w := suite.request(http.MethodGet, "/api/alerts", nil, suite.owner)
	suite.Require().Equal(http.StatusOK, w.Code)
	var list dto.AlertListResponse
	suite.decode(w, &list)
	assert.Equal(suite.T(), int64(2), list.TotalCount)
	suite.Require().Len(list.Alerts, 2)
	assert.Equal(suite.T(), "resolved", list.Alerts[0].Message)

	w = suite.request(http.MethodGet, "/api/alerts", nil, suite.other)
	suite.decode(w, &list)
	assert.Equal(suite.T(), int64(0), list.TotalCount)

	ackURL := "/api/alerts/" + strconv.FormatUint(alert.ID, 10) + "/acknowledge"
	assert.Equal(suite.T(), http.StatusNotFound, suite.request(http.MethodPost, ackURL, nil, suite.other).Code)

	w = suite.request(http.MethodPost, ackURL, nil, suite.owner)
	suite.Require().Equal(http.StatusOK, w.Code)
	var acked dto.AlertDTO
	suite.decode(w, &acked)
	assert.Equal(suite.T(), models.AlertStatusAcknowledged, acked.Status)

	resolvedURL := "/api/alerts/" + strconv.FormatUint(resolved.ID, 10) + "/acknowledge"
	assert.Equal(suite.T(), http.StatusUnprocessableEntity, suite.request(http.MethodPost, resolvedURL, nil, suite.owner).Code)
	assert.Equal(suite.T(), http.StatusBadRequest, suite.request(http.MethodPost, "/api/alerts/x/acknowledge", nil, suite.owner).Code)
}

func (suite *HandlersTestSuite) TestAdmin_RequiresAdminRole() {
	for _, url := range []string{"/api/admin/commitments", "/api/admin/employees"} {
		assert.Equal(suite.T(), http.StatusForbidden, suite.request(http.MethodGet, url, nil, suite.owner).Code, url)
	}
}

func (suite *HandlersTestSuite) TestAdmin_Views() {
	testutil.CreateCommitment(suite.T(), suite.db, "Owner's", suite.due, models.CommitmentStatusPending, &suite.owner.ID)
	testutil.CreateCommitment(suite.T(), suite.db, "Other's", suite.due.Add(time.Hour), models.CommitmentStatusPending, &suite.other.ID)

	w := suite.request(http.MethodGet, "/api/admin/commitments", nil, suite.admin)
	suite.Require().Equal(http.StatusOK, w.Code)
	var list dto.CommitmentListResponse
	suite.decode(w, &list)
	assert.Equal(suite.T(), int64(2), list.TotalCount)
	suite.Require().NotNil(list.Commitments[0].Owner)
	assert.Equal(suite.T(), "other@example.com", list.Commitments[0].Owner.Email)

	w = suite.request(http.MethodGet, "/api/admin/employees", nil, suite.admin)
	suite.Require().Equal(http.StatusOK, w.Code)
	var employees struct {
		Employees []dto.EmployeeDTO `json:"employees"`
	}
	suite.decode(w, &employees)
	assert.Len(suite.T(), employees.Employees, 3)

	w = suite.request(http.MethodGet, "/api/admin/employees/"+strconv.FormatUint(suite.owner.ID, 10)+"/commitments", nil, suite.admin)
	suite.Require().Equal(http.StatusOK, w.Code)
	var detail struct {
		Employee    dto.EmployeeDTO     `json:"employee"`
		Commitments []dto.CommitmentDTO `json:"commitments"`
	}
	suite.decode(w, &detail)
	assert.Equal(suite.T(), "owner@example.com", detail.Employee.Email)
	suite.Require().Len(detail.Commitments, 1)
	assert.Equal(suite.T(), "Owner's", detail.Commitments[0].Title)

	assert.Equal(suite.T(), http.StatusNotFound, suite.request(http.MethodGet, "/api/admin/employees/9999/commitments", nil, suite.admin).Code)
}

func (suite *HandlersTestSuite) TestAdmin_OverrideStatus() {
	commitment := testutil.CreateCommitment(suite.T(), suite.db, "Renew contract", suite.due, models.CommitmentStatusPending, &suite.owner.ID)
	url := "/api/admin/commitments/" + strconv.FormatUint(commitment.ID, 10) + "/status"

	w := suite.request(http.MethodPatch, url, gin.H{"status": "COMPLETED"}, suite.admin)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var updated dto.CommitmentDTO
	suite.decode(w, &updated)
	assert.Equal(suite.T(), models.CommitmentStatusCompleted, updated.Status)

	assert.Equal(suite.T(), http.StatusBadRequest, suite.request(http.MethodPatch, url, gin.H{"status": "LOST"}, suite.admin).Code)
	assert.Equal(suite.T(), http.StatusBadRequest, suite.request(http.MethodPatch, url, gin.H{}, suite.admin).Code)
	assert.Equal(suite.T(), http.StatusNotFound, suite.request(http.MethodPatch, "/api/admin/commitments/9999/status", gin.H{"status": "COMPLETED"}, suite.admin).Code)
	assert.Equal(suite.T(), http.StatusForbidden, suite.request(http.MethodPatch, url, gin.H{"status": "COMPLETED"}, suite.owner).Code)
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
