package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"shiftHire/domain"
	"shiftHire/internal/repository/memory"
	openaiRepo "shiftHire/internal/repository/openai"
	"shiftHire/pkg/database"
	"shiftHire/pkg/metrics"
	"shiftHire/pkg/utils"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// fakeGateway stands in for Stripe. Status lookups always fail so reads
// exercise the local fallback.
type fakeGateway struct {
	sessions int
}

func (f *fakeGateway) CreateCheckoutSession(ctx context.Context, req domain.CheckoutRequest, productName string) (domain.CheckoutSession, error) {
	f.sessions++
	id := fmt.Sprintf("cs_test_%d", f.sessions)
	return domain.CheckoutSession{URL: "https://checkout.test/" + id, SessionID: id}, nil
}

func (f *fakeGateway) GetCheckoutStatus(ctx context.Context, sessionID string) (domain.GatewayStatus, error) {
	return domain.GatewayStatus{}, fmt.Errorf("%w: gateway offline", domain.ErrExternalService)
}

func (f *fakeGateway) ParseWebhook(payload []byte, signature string) (domain.WebhookEvent, error) {
	if signature != "valid" {
		return domain.WebhookEvent{}, domain.ErrWebhookVerification
	}
	return domain.WebhookEvent{
		Type:          "checkout.session.completed",
		SessionID:     strings.TrimSpace(string(payload)),
		PaymentStatus: domain.PaymentPaid,
	}, nil
}

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	tokens, err := utils.NewJWTManager("test-secret", "HS256", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}

	registry := prometheus.NewRegistry()

	return NewServer(Dependencies{
		DB:          db,
		Tokens:      tokens,
		OTPStore:    memory.NewOTPRepository(),
		OTPTTL:      5 * time.Minute,
		Notifier:    nil,
		LLM:         openaiRepo.NewOpenAIRepository(openaiRepo.OpenAIConfig{}),
		Gateway:     &fakeGateway{},
		Currency:    "inr",
		Metrics:     metrics.NewCollector(registry),
		Gatherer:    registry,
		CORSOrigins: []string{"*"},
	})
}

func do(t *testing.T, e *echo.Echo, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, want, rec.Body.String())
	}
}

func register(t *testing.T, e *echo.Echo, phone, role, name string) domain.TokenResponse {
	t.Helper()

	rec := do(t, e, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"phone":    phone,
		"password": "secret123",
		"role":     role,
		"name":     name,
	})
	expectStatus(t, rec, http.StatusCreated)

	var token domain.TokenResponse
	decode(t, rec, &token)
	return token
}

func setupRestaurant(t *testing.T, e *echo.Echo, phone string) (string, domain.Job) {
	t.Helper()

	restaurant := register(t, e, phone, domain.RoleRestaurant, "Chai Co Owner")
	expectStatus(t, do(t, e, http.MethodPost, "/api/v1/restaurants/profile", restaurant.AccessToken, map[string]any{
		"company_name":      "Chai Co",
		"number_of_outlets": 2,
		"location_cities":   []string{"Mumbai"},
	}), http.StatusCreated)

	rec := do(t, e, http.MethodPost, "/api/v1/jobs", restaurant.AccessToken, map[string]any{
		"title":         "Barista",
		"role":          "barista",
		"location_city": "Mumbai",
		"shift_timing":  "morning",
		"wage_min":      15000,
		"wage_max":      20000,
	})
	expectStatus(t, rec, http.StatusCreated)

	var job domain.Job
	decode(t, rec, &job)
	return restaurant.AccessToken, job
}

func setupWorker(t *testing.T, e *echo.Echo, phone string) domain.TokenResponse {
	t.Helper()

	worker := register(t, e, phone, domain.RoleWorker, "Asha")
	expectStatus(t, do(t, e, http.MethodPost, "/api/v1/workers/profile", worker.AccessToken, map[string]any{
		"location_city":    "Mumbai",
		"experience_years": 2,
		"preferred_roles":  []string{"barista"},
		"availability":     "immediate",
	}), http.StatusCreated)

	return worker
}

func TestAuthFlow(t *testing.T) {
	e := newTestServer(t)

	token := register(t, e, "+919800000001", domain.RoleWorker, "Asha")
	if token.TokenType != "bearer" || token.UserID == "" || token.Role != domain.RoleWorker {
		t.Errorf("token = %+v", token)
	}

	rec := do(t, e, http.MethodPost, "/api/v1/auth/login", "", map[string]any{"phone": "+919800000001", "password": "secret123"})
	expectStatus(t, rec, http.StatusOK)
	var login domain.TokenResponse
	decode(t, rec, &login)
	if login.UserID != token.UserID {
		t.Errorf("login user = %q, want %q", login.UserID, token.UserID)
	}

	rec = do(t, e, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"phone": "+919800000001", "password": "another1", "role": "restaurant", "name": "Dup",
	})
	expectStatus(t, rec, http.StatusBadRequest)

	for _, password := range []string{strings.Repeat("a", 73), strings.Repeat("é", 40)} {
		rec = do(t, e, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
			"phone": "+919800000009", "password": password, "role": "worker", "name": "Long",
		})
		expectStatus(t, rec, http.StatusBadRequest)
		var body map[string]string
		decode(t, rec, &body)
		if !strings.Contains(strings.ToLower(body["message"]), "password must be") {
			t.Errorf("message = %q", body["message"])
		}
	}

	rec = do(t, e, http.MethodPost, "/api/v1/auth/login", "", map[string]any{"phone": "+919800000001", "password": "wrong-pass"})
	expectStatus(t, rec, http.StatusUnauthorized)

	expectStatus(t, do(t, e, http.MethodGet, "/api/v1/workers/profile", "", nil), http.StatusUnauthorized)
	expectStatus(t, do(t, e, http.MethodGet, "/api/v1/workers/profile", "not-a-token", nil), http.StatusUnauthorized)
	expectStatus(t, do(t, e, http.MethodGet, "/api/v1/workers/profile", login.AccessToken, nil), http.StatusNotFound)
}

func TestOTPFlow(t *testing.T) {
	e := newTestServer(t)

	rec := do(t, e, http.MethodPost, "/api/v1/auth/send-otp", "", map[string]any{"phone": "+919800000009"})
	expectStatus(t, rec, http.StatusOK)
	var sent struct {
		OTP string `json:"otp"`
	}
	decode(t, rec, &sent)
	if len(sent.OTP) != 6 {
		t.Fatalf("otp = %q, want six digits", sent.OTP)
	}

	expectStatus(t, do(t, e, http.MethodPost, "/api/v1/auth/verify-otp", "", map[string]any{"phone": "+919800000009", "otp": "000000"}), http.StatusBadRequest)
	expectStatus(t, do(t, e, http.MethodPost, "/api/v1/auth/verify-otp", "", map[string]any{"phone": "+919800000009", "otp": sent.OTP}), http.StatusOK)
	expectStatus(t, do(t, e, http.MethodPost, "/api/v1/auth/verify-otp", "", map[string]any{"phone": "+919800000009", "otp": sent.OTP}), http.StatusBadRequest)
}

func TestRoleGuardBlocksWithoutMutation(t *testing.T) {
	e := newTestServer(t)
	worker := setupWorker(t, e, "+919800000002")

	rec := do(t, e, http.MethodPost, "/api/v1/jobs", worker.AccessToken, map[string]any{
		"title": "Sneaky", "role": "barista", "location_city": "Mumbai", "wage_min": 1, "wage_max": 2,
	})
	expectStatus(t, rec, http.StatusForbidden)
	var body map[string]string
	decode(t, rec, &body)
	if body["message"] != "Access denied" {
		t.Errorf("message = %q", body["message"])
	}

	rec = do(t, e, http.MethodGet, "/api/v1/jobs", "", nil)
	expectStatus(t, rec, http.StatusOK)
	var jobs []domain.Job
	decode(t, rec, &jobs)
	if len(jobs) != 0 {
		t.Errorf("jobs = %v, want none after forbidden create", jobs)
	}

	expectStatus(t, do(t, e, http.MethodGet, "/api/v1/restaurants/analytics", worker.AccessToken, nil), http.StatusForbidden)
	expectStatus(t, do(t, e, http.MethodPost, "/api/v1/payments/create-checkout", worker.AccessToken, map[string]any{"origin_url": "https://app.test"}), http.StatusForbidden)
}

func TestJobRequiresRestaurantProfile(t *testing.T) {
	e := newTestServer(t)
	restaurant := register(t, e, "+919800000003", domain.RoleRestaurant, "Owner")

	rec := do(t, e, http.MethodPost, "/api/v1/jobs", restaurant.AccessToken, map[string]any{
		"title": "Barista", "role": "barista", "location_city": "Mumbai", "wage_min": 1, "wage_max": 2,
	})
	expectStatus(t, rec, http.StatusBadRequest)
}

func TestHiringFlow(t *testing.T) {
	e := newTestServer(t)
	restaurantToken, job := setupRestaurant(t, e, "+919800000010")
	worker := setupWorker(t, e, "+919800000011")

	if job.RestaurantName != "Chai Co" || !job.IsActive {
		t.Errorf("job = %+v", job)
	}

	path := "/api/v1/applications/" + job.ID
	rec := do(t, e, http.MethodPost, path, worker.AccessToken, nil)
	expectStatus(t, rec, http.StatusCreated)
	var application domain.Application
	decode(t, rec, &application)
	if application.Status != domain.ApplicationApplied || application.WorkerName != "Asha" {
		t.Errorf("application = %+v", application)
	}

	expectStatus(t, do(t, e, http.MethodPost, path, worker.AccessToken, nil), http.StatusBadRequest)
	expectStatus(t, do(t, e, http.MethodPost, "/api/v1/applications/missing", worker.AccessToken, nil), http.StatusNotFound)

	rec = do(t, e, http.MethodGet, "/api/v1/restaurants/applications/"+job.ID, restaurantToken, nil)
	expectStatus(t, rec, http.StatusOK)
	var received []domain.JobApplication
	decode(t, rec, &received)
	if len(received) != 1 || received[0].WorkerProfile == nil {
		t.Fatalf("received = %+v, want one enriched application", received)
	}

	expectStatus(t, do(t, e, http.MethodPut, "/api/v1/restaurants/applications/"+application.ID, restaurantToken,
		map[string]any{"status": "hired"}), http.StatusBadRequest)
	expectStatus(t, do(t, e, http.MethodPut, "/api/v1/restaurants/applications/"+application.ID, restaurantToken,
		map[string]any{"status": domain.ApplicationShortlisted}), http.StatusOK)

	rec = do(t, e, http.MethodGet, "/api/v1/workers/applications", worker.AccessToken, nil)
	expectStatus(t, rec, http.StatusOK)
	var mine []domain.WorkerApplication
	decode(t, rec, &mine)
	if len(mine) != 1 || mine[0].Status != domain.ApplicationShortlisted || mine[0].JobDetails == nil {
		t.Fatalf("mine = %+v", mine)
	}

	rec = do(t, e, http.MethodGet, "/api/v1/restaurants/analytics", restaurantToken, nil)
	expectStatus(t, rec, http.StatusOK)
	var analytics domain.RestaurantAnalytics
	decode(t, rec, &analytics)
	if analytics.TotalJobs != 1 || analytics.TotalApplications != 1 || analytics.ApplicationsByStatus[domain.ApplicationShortlisted] != 1 {
		t.Errorf("analytics = %+v", analytics)
	}

	otherToken, _ := setupRestaurant(t, e, "+919800000012")
	expectStatus(t, do(t, e, http.MethodGet, "/api/v1/restaurants/applications/"+job.ID, otherToken, nil), http.StatusNotFound)
	expectStatus(t, do(t, e, http.MethodPut, "/api/v1/restaurants/applications/"+application.ID, otherToken,
		map[string]any{"status": domain.ApplicationRejected}), http.StatusForbidden)
}

func TestJobUpdateAndDeactivation(t *testing.T) {
	e := newTestServer(t)
	restaurantToken, job := setupRestaurant(t, e, "+919800000020")
	worker := setupWorker(t, e, "+919800000021")

	rec := do(t, e, http.MethodPut, "/api/v1/jobs/"+job.ID, restaurantToken, map[string]any{
		"title": "Head Barista", "role": "barista", "location_city": "Mumbai",
		"wage_min": 18000, "wage_max": 22000, "is_active": false,
	})
	expectStatus(t, rec, http.StatusOK)

	rec = do(t, e, http.MethodGet, "/api/v1/jobs?role=barista", "", nil)
	expectStatus(t, rec, http.StatusOK)
	var jobs []domain.Job
	decode(t, rec, &jobs)
	if len(jobs) != 0 {
		t.Errorf("public listing = %v, want inactive job hidden", jobs)
	}

	rec = do(t, e, http.MethodGet, "/api/v1/jobs/"+job.ID, "", nil)
	expectStatus(t, rec, http.StatusOK)
	var got domain.Job
	decode(t, rec, &got)
	if got.Title != "Head Barista" || got.IsActive {
		t.Errorf("job = %+v", got)
	}

	expectStatus(t, do(t, e, http.MethodPost, "/api/v1/applications/"+job.ID, worker.AccessToken, nil), http.StatusBadRequest)
}

func TestAnalyticsForEmptyRestaurant(t *testing.T) {
	e := newTestServer(t)
	restaurant := register(t, e, "+919800000030", domain.RoleRestaurant, "Owner")

	rec := do(t, e, http.MethodGet, "/api/v1/restaurants/analytics", restaurant.AccessToken, nil)
	expectStatus(t, rec, http.StatusOK)

	var body map[string]any
	decode(t, rec, &body)
	for _, key := range []string{"total_jobs", "total_applications", "average_rating", "total_reviews"} {
		if body[key] != float64(0) {
			t.Errorf("%s = %v, want 0", key, body[key])
		}
	}
	if byStatus, ok := body["applications_by_status"].(map[string]any); !ok || len(byStatus) != 0 {
		t.Errorf("applications_by_status = %v, want {}", body["applications_by_status"])
	}
}

func TestReviewAverages(t *testing.T) {
	e := newTestServer(t)
	restaurant := register(t, e, "+919800000040", domain.RoleRestaurant, "Owner")
	worker := register(t, e, "+919800000041", domain.RoleWorker, "Asha")

	for _, overall := range []int{4, 5, 3} {
		expectStatus(t, do(t, e, http.MethodPost, "/api/v1/reviews", worker.AccessToken, map[string]any{
			"restaurant_id":    restaurant.UserID,
			"overall_rating":   overall,
			"wage_accuracy":    4,
			"work_environment": 4,
			"career_growth":    4,
			"compliance":       4,
		}), http.StatusCreated)
	}

	expectStatus(t, do(t, e, http.MethodPost, "/api/v1/reviews", worker.AccessToken, map[string]any{
		"restaurant_id": worker.UserID, "overall_rating": 4, "wage_accuracy": 4,
		"work_environment": 4, "career_growth": 4, "compliance": 4,
	}), http.StatusBadRequest)

	rec := do(t, e, http.MethodGet, "/api/v1/reviews/"+restaurant.UserID, "", nil)
	expectStatus(t, rec, http.StatusOK)
	var reviews domain.RestaurantReviews
	decode(t, rec, &reviews)
	if reviews.TotalReviews != 3 || reviews.Averages.Overall != 4.0 {
		t.Errorf("reviews total %d overall %v, want 3 and 4.0", reviews.TotalReviews, reviews.Averages.Overall)
	}

	rec = do(t, e, http.MethodGet, "/api/v1/restaurants/analytics", restaurant.AccessToken, nil)
	expectStatus(t, rec, http.StatusOK)
	var analytics domain.RestaurantAnalytics
	decode(t, rec, &analytics)
	if analytics.AverageRating != 4.0 || analytics.TotalReviews != 3 {
		t.Errorf("analytics = %+v", analytics)
	}
}

func TestRecommendationFallback(t *testing.T) {
	e := newTestServer(t)
	_, job := setupRestaurant(t, e, "+919800000050")
	worker := setupWorker(t, e, "+919800000051")

	rec := do(t, e, http.MethodGet, "/api/v1/workers/job-recommendations", worker.AccessToken, nil)
	expectStatus(t, rec, http.StatusOK)

	var got domain.JobRecommendations
	decode(t, rec, &got)
	if got.Source != metrics.SourceFallback {
		t.Errorf("source = %q, want fallback", got.Source)
	}
	found := false
	for _, j := range got.Jobs {
		if j.ID == job.ID {
			found = true
		}
	}
	if !found {
		t.Errorf("fallback jobs %v do not include the Mumbai barista job %s", got.Jobs, job.ID)
	}

	bare := register(t, e, "+919800000052", domain.RoleWorker, "No Profile")
	expectStatus(t, do(t, e, http.MethodGet, "/api/v1/workers/job-recommendations", bare.AccessToken, nil), http.StatusBadRequest)
}

func TestPaymentFlow(t *testing.T) {
	e := newTestServer(t)
	restaurant := register(t, e, "+919800000060", domain.RoleRestaurant, "Owner")

	expectStatus(t, do(t, e, http.MethodPost, "/api/v1/payments/create-checkout", restaurant.AccessToken,
		map[string]any{"package_id": "lifetime", "origin_url": "https://app.test"}), http.StatusBadRequest)

	rec := do(t, e, http.MethodPost, "/api/v1/payments/create-checkout", restaurant.AccessToken,
		map[string]any{"package_id": "commission", "origin_url": "https://app.test"})
	expectStatus(t, rec, http.StatusOK)
	var session domain.CheckoutSession
	decode(t, rec, &session)
	if session.SessionID == "" || session.URL == "" {
		t.Fatalf("session = %+v", session)
	}

	statusPath := "/api/v1/payments/status/" + session.SessionID
	rec = do(t, e, http.MethodGet, statusPath, restaurant.AccessToken, nil)
	expectStatus(t, rec, http.StatusOK)
	var status domain.PaymentStatus
	decode(t, rec, &status)
	if status.PaymentStatus != domain.PaymentPending || status.Amount != 1500 {
		t.Fatalf("status = %+v, want pending 1500", status)
	}

	expectStatus(t, do(t, e, http.MethodPost, "/api/v1/webhook/stripe", "", session.SessionID), http.StatusBadRequest)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/webhook/stripe", strings.NewReader(session.SessionID))
		req.Header.Set("Stripe-Signature", "valid")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		expectStatus(t, rec, http.StatusOK)
	}

	rec = do(t, e, http.MethodGet, statusPath, restaurant.AccessToken, nil)
	expectStatus(t, rec, http.StatusOK)
	decode(t, rec, &status)
	if status.PaymentStatus != domain.PaymentPaid {
		t.Errorf("payment_status = %q, want paid", status.PaymentStatus)
	}

	expectStatus(t, do(t, e, http.MethodGet, "/api/v1/payments/status/cs_missing", restaurant.AccessToken, nil), http.StatusNotFound)
	expectStatus(t, do(t, e, http.MethodGet, statusPath, "", nil), http.StatusUnauthorized)
}

func TestHealthAndMetrics(t *testing.T) {
	e := newTestServer(t)

	expectStatus(t, do(t, e, http.MethodGet, "/health", "", nil), http.StatusOK)
	expectStatus(t, do(t, e, http.MethodGet, "/api/v1/nowhere", "", nil), http.StatusNotFound)

	rec := do(t, e, http.MethodGet, "/metrics", "", nil)
	expectStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "http_requests_total") {
		t.Errorf("metrics output missing http_requests_total:\n%s", rec.Body.String())
	}
}
