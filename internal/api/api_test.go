package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stylesense/backend/internal/config"
	"github.com/stylesense/backend/internal/domain"
	"github.com/stylesense/backend/internal/repository"
	"github.com/stylesense/backend/internal/service"
)

type stubSalesRepo struct {
	records []domain.DailySalesRecord
}

func (s *stubSalesRepo) DailySalesSince(context.Context, time.Time) ([]domain.DailySalesRecord, error) {
	return s.records, nil
}

type stubProductRepo struct {
	products []domain.Product
}

func (s *stubProductRepo) List(context.Context, domain.ProductFilter) ([]domain.Product, error) {
	return s.products, nil
}

func (s *stubProductRepo) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *stubProductRepo) Create(_ context.Context, p *domain.Product) error {
	p.ID = int64(len(s.products) + 1)
	s.products = append(s.products, *p)
	return nil
}

func (s *stubProductRepo) Update(context.Context, *domain.Product) error { return nil }
func (s *stubProductRepo) Delete(context.Context, int64) error           { return nil }

type stubOrderRepo struct{}

func (stubOrderRepo) Create(context.Context, *domain.Order) error   { return nil }
func (stubOrderRepo) List(context.Context) ([]domain.Order, error)  { return nil, nil }
func (stubOrderRepo) UpdateStatus(context.Context, int64, int) (*domain.Order, error) {
	return nil, repository.ErrNotFound
}
func (stubOrderRepo) GetStoreStats(context.Context) (*domain.StoreStats, error) {
	return &domain.StoreStats{}, nil
}

type stubUserRepo struct {
	users []domain.User
}

func (s *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = int64(len(s.users) + 1)
	s.users = append(s.users, *user)
	return nil
}

func (s *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for i := range s.users {
		if s.users[i].Email == email {
			return &s.users[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *stubUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for i := range s.users {
		if s.users[i].ID == id {
			return &s.users[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *stubUserRepo) UpdateProfile(context.Context, *domain.User) error   { return nil }
func (s *stubUserRepo) UpdatePassword(context.Context, int64, string) error { return nil }

func rampSales(days int) []domain.DailySalesRecord {
	start := time.Now().AddDate(0, 0, -(days - 1))
	records := make([]domain.DailySalesRecord, 0, days)
	for i := 0; i < days; i++ {
		records = append(records, domain.DailySalesRecord{
			Date:                  start.AddDate(0, 0, i),
			TotalRevenue:          float64(1000 + 100*i),
			TopSellingSubCategory: "Jeans",
		})
	}
	return records
}

func newTestRouter(t *testing.T, sales repository.SalesRepository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	products := &stubProductRepo{products: []domain.Product{
		{ID: 1, Name: "Slim Fit Jeans", Price: 4999, Category: "Men", SubCategory: "Jeans", Stock: 5, IsTrending: true},
	}}
	users := &stubUserRepo{}

	services := &Services{
		AnalyticsService: service.NewAnalyticsService(sales, products, stubOrderRepo{}, nil),
		ProductService:   service.NewProductService(products),
		OrderService:     service.NewOrderService(stubOrderRepo{}),
		AuthService: service.NewAuthService(users, config.AuthConfig{
			JWTSecret: "test-secret",
			TokenTTL:  time.Hour,
		}),
	}

	return NewRouter(services, nil)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, &stubSalesRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestGetPredictionsEndpoint(t *testing.T) {
	router := newTestRouter(t, &stubSalesRepo{records: rampSales(30)})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/predict", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var report domain.AnalyticsReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Len(t, report.Predictions, 7)
	assert.Equal(t, "Jeans", report.TrendAlert)
	require.Len(t, report.StockRisks, 1)
	assert.Equal(t, int64(1), report.StockRisks[0].ProductID)
}

func TestGetPredictionsNotEnoughData(t *testing.T) {
	router := newTestRouter(t, &stubSalesRepo{records: rampSales(1)})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/predict", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Not enough data for prediction"}`, w.Body.String())
}

func TestListProductsEndpoint(t *testing.T) {
	router := newTestRouter(t, &stubSalesRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var products []domain.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Slim Fit Jeans", products[0].Name)
}

func TestCreateProductRequiresAuth(t *testing.T) {
	router := newTestRouter(t, &stubSalesRepo{})

	body := `{"name":"Bomber Jacket","price":8999,"category":"Men","subCategory":"Jackets","stock":10}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOrdersRequireAuth(t *testing.T) {
	router := newTestRouter(t, &stubSalesRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{"items":[]}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterThenCreateOrder(t *testing.T) {
	router := newTestRouter(t, &stubSalesRepo{})

	registerBody := `{"name":"Ada","email":"ada@example.com","password":"hunter22"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(registerBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var registered struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))
	require.NotEmpty(t, registered.Token)

	orderBody := `{"items":[{"product_id":1,"quantity":2,"price":4999}]}`
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(orderBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+registered.Token)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var order domain.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Equal(t, 9998.0, order.Total)
	assert.Equal(t, "Pending", order.StatusLabel)
}
