package routes_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barbershop-attendance/application/serviceimpl"
	"barbershop-attendance/domain/models"
	"barbershop-attendance/infrastructure/locking"
	"barbershop-attendance/infrastructure/postgres"
	websocketManager "barbershop-attendance/infrastructure/websocket"
	"barbershop-attendance/interfaces/api/handlers"
	"barbershop-attendance/interfaces/api/middleware"
	"barbershop-attendance/interfaces/api/routes"
	"barbershop-attendance/pkg/config"
	"barbershop-attendance/pkg/scheduler"
	"barbershop-attendance/pkg/testutil"
	"barbershop-attendance/pkg/utils"
)

const testSecret = "test-secret"

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type testApp struct {
	app    *fiber.App
	clock  *testutil.FakeClock
	branch *models.Branch
	barber *models.Barber
	kiosk  string
	admin  string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.NewTestDB(t)
	fx := testutil.NewFixtures(t, db)
	clock := testutil.NewFakeClock(time.Date(2024, 3, 5, 1, 0, 0, 0, time.UTC))

	identity := serviceimpl.NewIdentityResolver(postgres.NewIdentityRepository(db))
	transactor := postgres.NewTransactor(db)
	configs := serviceimpl.NewAttendanceConfigService(postgres.NewAttendanceConfigRepository(db))
	activities := serviceimpl.NewAttendanceActivityService(postgres.NewAttendanceActivityRepository(db), clock.Now)
	websockets := websocketManager.NewWebSocketManager()
	locker := locking.NewLocalLocker()

	svc := &handlers.Services{
		AttendanceService: serviceimpl.NewAttendanceService(
			transactor,
			postgres.NewShiftRepository(db),
			configs,
			identity,
			locker,
			time.Second,
			websockets,
			activities,
			clock.Now,
		),
		AttendanceConfigService: configs,
		AttendanceActivity:      activities,
		EnrollmentService:       serviceimpl.NewEnrollmentService(transactor, postgres.NewFaceEnrollmentRepository(db), identity, nil, locker, time.Second, clock.Now),
		DeviceService:           serviceimpl.NewDeviceService(postgres.NewAttendanceDeviceRepository(db), clock.Now),
	}
	health := handlers.NewHealthHandler(db, nil, nil, scheduler.NewEventScheduler(time.UTC), websockets)

	cfg := &config.Config{
		App: config.AppConfig{Name: "test", Env: "test"},
		JWT: config.JWTConfig{Secret: testSecret},
	}

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	routes.SetupRoutes(app, handlers.NewHandlers(svc, health), cfg)

	branch := fx.Branch("Makati")
	return &testApp{
		app:    app,
		clock:  clock,
		branch: branch,
		barber: fx.Barber(branch, "Juan Dela Cruz"),
		kiosk:  token(t, "staff", &branch.ID),
		admin:  token(t, "branch_admin", &branch.ID),
	}
}

func token(t *testing.T, role string, branchID *uuid.UUID) string {
	t.Helper()
	tok, err := utils.GenerateToken(utils.UserContext{
		ID:       uuid.New(),
		Username: role,
		Email:    role + "@example.com",
		Role:     role,
		BranchID: branchID,
	}, testSecret, time.Hour)
	require.NoError(t, err)
	return tok
}

func (a *testApp) do(t *testing.T, method, path, bearer string, body interface{}) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func (a *testApp) clockInBody(score float64) map[string]interface{} {
	return map[string]interface{}{
		"barber_id":        a.barber.ID.String(),
		"branch_id":        a.branch.ID.String(),
		"confidence_score": score,
		"photo_storage_id": "photo-in",
		"liveness_passed":  true,
	}
}

func TestFRClockIn_RequiresToken(t *testing.T) {
	a := newTestApp(t)

	status, env := a.do(t, http.MethodPost, "/api/v1/attendance/fr/clock-in", "", a.clockInBody(0.9))
	assert.Equal(t, fiber.StatusUnauthorized, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
}

func TestFRClockInAndOut(t *testing.T) {
	a := newTestApp(t)

	status, env := a.do(t, http.MethodPost, "/api/v1/attendance/fr/clock-in", a.kiosk, a.clockInBody(0.9))
	require.Equal(t, fiber.StatusCreated, status)
	assert.True(t, env.Success)

	var in struct {
		ShiftID      uuid.UUID `json:"shift_id"`
		Status       string    `json:"status"`
		AutoApproved bool      `json:"auto_approved"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &in))
	assert.Equal(t, "approved_in", in.Status)
	assert.True(t, in.AutoApproved)

	status, env = a.do(t, http.MethodPost, "/api/v1/attendance/fr/clock-in", a.kiosk, a.clockInBody(0.9))
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "ALREADY_CLOCKED_IN", env.Error.Code)

	status, env = a.do(t, http.MethodGet, "/api/v1/attendance/status?barber_id="+a.barber.ID.String(), a.kiosk, nil)
	require.Equal(t, fiber.StatusOK, status)
	var st struct {
		IsClockedIn bool `json:"is_clocked_in"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &st))
	assert.True(t, st.IsClockedIn)

	a.clock.Advance(8 * time.Hour)
	status, env = a.do(t, http.MethodPost, "/api/v1/attendance/fr/clock-out", a.kiosk, map[string]interface{}{
		"barber_id":        a.barber.ID.String(),
		"confidence_score": 0.8,
		"photo_storage_id": "photo-out",
	})
	require.Equal(t, fiber.StatusOK, status)
	var out struct {
		ShiftID         uuid.UUID `json:"shift_id"`
		Status          string    `json:"status"`
		ShiftDurationMs int64     `json:"shift_duration_ms"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, in.ShiftID, out.ShiftID)
	assert.Equal(t, "approved_out", out.Status)
	assert.Equal(t, (8 * time.Hour).Milliseconds(), out.ShiftDurationMs)

	status, env = a.do(t, http.MethodGet, "/api/v1/attendance/history?barber_id="+a.barber.ID.String()+"&limit=10", a.kiosk, nil)
	require.Equal(t, fiber.StatusOK, status)
	var history []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &history))
	assert.Len(t, history, 1)
}

func TestFRClockIn_ErrorCodes(t *testing.T) {
	a := newTestApp(t)

	tests := []struct {
		name   string
		body   map[string]interface{}
		status int
		code   string
	}{
		{
			name:   "low confidence",
			body:   a.clockInBody(0.3),
			status: fiber.StatusUnprocessableEntity,
			code:   "LOW_CONFIDENCE",
		},
		{
			name: "missing id",
			body: map[string]interface{}{
				"branch_id":        a.branch.ID.String(),
				"confidence_score": 0.9,
				"photo_storage_id": "p",
			},
			status: fiber.StatusBadRequest,
			code:   "MISSING_ID",
		},
		{
			name: "confidence out of range",
			body: func() map[string]interface{} {
				b := a.clockInBody(0.9)
				b["confidence_score"] = 1.5
				return b
			}(),
			status: fiber.StatusBadRequest,
			code:   "VALIDATION_ERROR",
		},
		{
			name: "unknown barber",
			body: func() map[string]interface{} {
				b := a.clockInBody(0.9)
				b["barber_id"] = uuid.NewString()
				return b
			}(),
			status: fiber.StatusNotFound,
			code:   "BARBER_NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := a.do(t, http.MethodPost, "/api/v1/attendance/fr/clock-in", a.kiosk, tt.body)
			assert.Equal(t, tt.status, status)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}
}

func TestFRClockOut_NotClockedIn(t *testing.T) {
	a := newTestApp(t)

	status, env := a.do(t, http.MethodPost, "/api/v1/attendance/fr/clock-out", a.kiosk, map[string]interface{}{
		"barber_id":        a.barber.ID.String(),
		"confidence_score": 0.9,
		"photo_storage_id": "photo-out",
	})
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "NOT_CLOCKED_IN", env.Error.Code)
}

func TestManualClockIn_IsPending(t *testing.T) {
	a := newTestApp(t)

	status, env := a.do(t, http.MethodPost, "/api/v1/attendance/manual/clock-in", a.kiosk, map[string]interface{}{
		"barber_id": a.barber.ID.String(),
		"branch_id": a.branch.ID.String(),
	})
	require.Equal(t, fiber.StatusCreated, status)
	var in struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &in))
	assert.Equal(t, "pending_in", in.Status)
}

func TestHistory_InvalidTime(t *testing.T) {
	a := newTestApp(t)

	status, env := a.do(t, http.MethodGet, "/api/v1/attendance/history?barber_id="+a.barber.ID.String()+"&start=yesterday", a.kiosk, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestBranchBoard_AdminOnly(t *testing.T) {
	a := newTestApp(t)
	path := "/api/v1/attendance/branches/" + a.branch.ID.String() + "/board"

	status, env := a.do(t, http.MethodGet, path, a.kiosk, nil)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)

	_, _ = a.do(t, http.MethodPost, "/api/v1/attendance/fr/clock-in", a.kiosk, a.clockInBody(0.9))

	status, env = a.do(t, http.MethodGet, path, a.admin, nil)
	require.Equal(t, fiber.StatusOK, status)
	var board []struct {
		BarberName  string `json:"barber_name"`
		IsClockedIn bool   `json:"is_clocked_in"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &board))
	require.Len(t, board, 1)
	assert.Equal(t, "Juan Dela Cruz", board[0].BarberName)
	assert.True(t, board[0].IsClockedIn)

	status, env = a.do(t, http.MethodGet, "/api/v1/attendance/branches/"+a.branch.ID.String()+"/activities", a.admin, nil)
	require.Equal(t, fiber.StatusOK, status)
	var activities struct {
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &activities))
	assert.Equal(t, int64(1), activities.Total)
}

func TestWebSocket_AdminOnly(t *testing.T) {
	a := newTestApp(t)
	path := "/ws?branch_id=" + a.branch.ID.String()

	status, env := a.do(t, http.MethodGet, path, "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)

	status, env = a.do(t, http.MethodGet, path, a.kiosk, nil)
	assert.Equal(t, fiber.StatusForbidden, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)

	status, _ = a.do(t, http.MethodGet, path+"&token="+a.kiosk, "", nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	// Authorized, but not a websocket handshake
	status, _ = a.do(t, http.MethodGet, path+"&token="+a.admin, "", nil)
	assert.Equal(t, fiber.StatusUpgradeRequired, status)
}

func TestAttendanceConfig_SaveAndGet(t *testing.T) {
	a := newTestApp(t)
	path := "/api/v1/attendance-config/" + a.branch.ID.String()

	status, _ := a.do(t, http.MethodPut, path, a.kiosk, map[string]interface{}{"fr_enabled": true})
	assert.Equal(t, fiber.StatusForbidden, status)

	status, env := a.do(t, http.MethodPut, path, a.admin, map[string]interface{}{
		"fr_enabled":             true,
		"auto_approve_threshold": 0.9,
	})
	require.Equal(t, fiber.StatusOK, status, env.Message)

	status, env = a.do(t, http.MethodGet, path, a.kiosk, nil)
	require.Equal(t, fiber.StatusOK, status)
	var cfg struct {
		FREnabled            bool    `json:"fr_enabled"`
		AutoApproveThreshold float64 `json:"auto_approve_threshold"`
		AdminReviewThreshold float64 `json:"admin_review_threshold"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &cfg))
	assert.True(t, cfg.FREnabled)
	assert.InDelta(t, 0.9, cfg.AutoApproveThreshold, 1e-9)
	assert.InDelta(t, models.DefaultAdminReviewThreshold, cfg.AdminReviewThreshold, 1e-9)

	status, env = a.do(t, http.MethodPut, path, a.admin, map[string]interface{}{
		"fr_enabled":             true,
		"auto_approve_threshold": 0.4,
		"admin_review_threshold": 0.6,
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	// 0.8 is below the raised auto-approve threshold
	status, env = a.do(t, http.MethodPost, "/api/v1/attendance/fr/clock-in", a.kiosk, a.clockInBody(0.8))
	require.Equal(t, fiber.StatusCreated, status)
	var in struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &in))
	assert.Equal(t, "pending_in", in.Status)
}

func TestDevices_RegisterAndCheck(t *testing.T) {
	a := newTestApp(t)
	branchPath := "/api/v1/devices/branches/" + a.branch.ID.String()
	checkPath := "/api/v1/devices/check?branch_id=" + a.branch.ID.String() + "&device_fingerprint=fp-1"

	status, env := a.do(t, http.MethodGet, checkPath, a.kiosk, nil)
	require.Equal(t, fiber.StatusOK, status)
	var check struct {
		Registered bool `json:"registered"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &check))
	assert.False(t, check.Registered)

	status, env = a.do(t, http.MethodPost, branchPath, a.admin, map[string]interface{}{
		"device_fingerprint": "fp-1",
		"device_name":        "Front desk tablet",
	})
	require.Equal(t, fiber.StatusCreated, status)
	var registered struct {
		DeviceID uuid.UUID `json:"device_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &registered))

	status, env = a.do(t, http.MethodGet, checkPath, a.kiosk, nil)
	require.Equal(t, fiber.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &check))
	assert.True(t, check.Registered)

	status, _ = a.do(t, http.MethodPost, "/api/v1/devices/"+registered.DeviceID.String()+"/deactivate", a.admin, nil)
	require.Equal(t, fiber.StatusOK, status)

	status, env = a.do(t, http.MethodPost, "/api/v1/devices/"+uuid.NewString()+"/deactivate", a.admin, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "DEVICE_NOT_FOUND", env.Error.Code)

	status, env = a.do(t, http.MethodGet, "/api/v1/devices/check?branch_id=nope&device_fingerprint=fp-1", a.kiosk, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestEnrollments(t *testing.T) {
	a := newTestApp(t)
	descriptor := make([]float32, models.FaceDescriptorDimensions)
	for i := range descriptor {
		descriptor[i] = float32(i) / 128
	}
	body := map[string]interface{}{
		"barber_id":     a.barber.ID.String(),
		"branch_id":     a.branch.ID.String(),
		"embeddings":    [][]float32{descriptor},
		"consent_given": false,
	}

	status, env := a.do(t, http.MethodPost, "/api/v1/enrollments", a.admin, body)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "CONSENT_REQUIRED", env.Error.Code)

	body["consent_given"] = true
	status, _ = a.do(t, http.MethodPost, "/api/v1/enrollments", a.kiosk, body)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, env = a.do(t, http.MethodPost, "/api/v1/enrollments", a.admin, body)
	require.Equal(t, fiber.StatusCreated, status, env.Message)

	query := "?barber_id=" + a.barber.ID.String()
	status, env = a.do(t, http.MethodGet, "/api/v1/enrollments/status"+query, a.kiosk, nil)
	require.Equal(t, fiber.StatusOK, status)
	var st struct {
		IsEnrolled bool `json:"is_enrolled"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &st))
	assert.True(t, st.IsEnrolled)

	status, env = a.do(t, http.MethodGet, "/api/v1/enrollments/branches/"+a.branch.ID.String(), a.kiosk, nil)
	require.Equal(t, fiber.StatusOK, status)
	var faces []struct {
		Name       string      `json:"name"`
		Embeddings [][]float32 `json:"embeddings"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &faces))
	require.Len(t, faces, 1)
	assert.Equal(t, "Juan Dela Cruz", faces[0].Name)
	assert.Len(t, faces[0].Embeddings[0], models.FaceDescriptorDimensions)

	status, _ = a.do(t, http.MethodDelete, "/api/v1/enrollments"+query, a.admin, nil)
	require.Equal(t, fiber.StatusOK, status)

	status, env = a.do(t, http.MethodGet, "/api/v1/enrollments/active"+query, a.kiosk, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NOT_ENROLLED", env.Error.Code)
}

func TestHealth(t *testing.T) {
	a := newTestApp(t)

	status, _ := a.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, fiber.StatusOK, status)

	req := httptest.NewRequest(http.MethodGet, "/health/detailed", nil)
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var health handlers.DetailedHealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "ok", health.Components["database"].Status)
	assert.Equal(t, "unavailable", health.Components["redis"].Status)
}
