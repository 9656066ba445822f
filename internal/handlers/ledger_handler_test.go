package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fundit/internal/errors"
	"fundit/internal/models"
	"fundit/internal/pagination"
	"fundit/internal/services"
)

const testEntryID = "0190a0c8-2a2b-7c3d-9e4f-50617283a4b5"

type mockLedgerService[T any] struct {
	createFn func(userID string, entry *T) (*T, error)
	listFn   func(userID string, filter services.PeriodFilter, page pagination.PageRequest) (*pagination.PageResponse[T], error)
	getFn    func(userID, id string) (*T, error)
	updateFn func(userID, id string, entry *T) (*T, error)
	deleteFn func(userID, id string) error
}

var _ services.LedgerServicer[models.Income] = (*mockLedgerService[models.Income])(nil)

func (m *mockLedgerService[T]) Create(userID string, entry *T) (*T, error) {
	if m.createFn != nil {
		return m.createFn(userID, entry)
	}
	return entry, nil
}

func (m *mockLedgerService[T]) List(userID string, filter services.PeriodFilter, page pagination.PageRequest) (*pagination.PageResponse[T], error) {
	if m.listFn != nil {
		return m.listFn(userID, filter, page)
	}
	resp := pagination.NewPageResponse[T](nil, 1, 20, 0)
	return &resp, nil
}

func (m *mockLedgerService[T]) Get(userID, id string) (*T, error) {
	if m.getFn != nil {
		return m.getFn(userID, id)
	}
	return new(T), nil
}

func (m *mockLedgerService[T]) Update(userID, id string, entry *T) (*T, error) {
	if m.updateFn != nil {
		return m.updateFn(userID, id, entry)
	}
	return entry, nil
}

func (m *mockLedgerService[T]) Delete(userID, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(userID, id)
	}
	return nil
}

func setupIncomeRouter(handler *LedgerHandler[models.Income, *models.Income]) *gin.Engine {
	r := gin.New()
	g := r.Group("/income", injectUserID(testUserID))
	g.POST("", handler.Create)
	g.GET("", handler.List)
	g.GET("/:id", handler.Get)
	g.PUT("/:id", handler.Update)
	g.DELETE("/:id", handler.Delete)
	return r
}

func TestLedgerHandler_Create(t *testing.T) {
	t.Run("returns 201 with the income entry", func(t *testing.T) {
		var got *models.Income
		svc := &mockLedgerService[models.Income]{
			createFn: func(userID string, entry *models.Income) (*models.Income, error) {
				got = entry
				entry.ID = testEntryID
				entry.UserID = userID
				return entry, nil
			},
		}
		audit := &mockAuditService{}
		r := setupIncomeRouter(NewIncomeHandler(svc, audit))

		rec := doRequest(r, "POST", "/income",
			`{"amount":"2500.00","date":"2026-01-01","category":"salary","recurring_monthly":true}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Amount.String() != "2500.00" || !got.RecurringMonthly {
			t.Errorf("unexpected entry passed to service: %+v", got)
		}
		income := parseJSON(t, rec)["income"].(map[string]interface{})
		if income["amount"] != "2500.00" {
			t.Errorf("expected amount 2500.00, got %v", income["amount"])
		}
		if len(audit.actions) != 1 || audit.actions[0] != "CREATE" {
			t.Errorf("expected one CREATE audit entry, got %v", audit.actions)
		}
	})

	t.Run("accepts month shorthand for the date", func(t *testing.T) {
		var got *models.Income
		svc := &mockLedgerService[models.Income]{
			createFn: func(_ string, entry *models.Income) (*models.Income, error) {
				got = entry
				return entry, nil
			},
		}
		r := setupIncomeRouter(NewIncomeHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/income", `{"amount":10,"date":"2026-02","category":"other"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Date.String() != "2026-02-15" {
			t.Errorf("expected 2026-02-15, got %s", got.Date)
		}
	})

	t.Run("returns 400 without amount", func(t *testing.T) {
		r := setupIncomeRouter(NewIncomeHandler(&mockLedgerService[models.Income]{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/income", `{"date":"2026-01-01","category":"salary"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 with field errors from validation", func(t *testing.T) {
		svc := &mockLedgerService[models.Income]{
			createFn: func(_ string, entry *models.Income) (*models.Income, error) {
				return nil, entry.Validate()
			},
		}
		r := setupIncomeRouter(NewIncomeHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/income", `{"amount":"5","date":"2026-01-01","category":"custom"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		assertErrorCode(t, result, "VALIDATION_ERROR")
		fields := result["error"].(map[string]interface{})["fields"].(map[string]interface{})
		if fields["custom_category"] == nil {
			t.Errorf("expected custom_category error, got %v", fields)
		}
	})
}

func TestLedgerHandler_List(t *testing.T) {
	t.Run("passes year, month and page", func(t *testing.T) {
		var gotFilter services.PeriodFilter
		var gotPage pagination.PageRequest
		svc := &mockLedgerService[models.Income]{
			listFn: func(_ string, filter services.PeriodFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Income], error) {
				gotFilter, gotPage = filter, page
				resp := pagination.NewPageResponse([]models.Income{{Amount: models.MustMoney("1")}}, 2, 5, 6)
				return &resp, nil
			},
		}
		r := setupIncomeRouter(NewIncomeHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/income?year=2026&month=2026-03&page=2&page_size=5", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotFilter.Year == nil || *gotFilter.Year != 2026 || gotFilter.Month != "2026-03" {
			t.Errorf("unexpected filter: %+v", gotFilter)
		}
		if gotPage.Page != 2 || gotPage.PageSize != 5 {
			t.Errorf("unexpected page: %+v", gotPage)
		}
		result := parseJSON(t, rec)
		if result["total_pages"] != float64(2) {
			t.Errorf("expected 2 total pages, got %v", result["total_pages"])
		}
	})

	t.Run("returns 400 on non-numeric year", func(t *testing.T) {
		r := setupIncomeRouter(NewIncomeHandler(&mockLedgerService[models.Income]{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/income?year=last", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on oversized page", func(t *testing.T) {
		r := setupIncomeRouter(NewIncomeHandler(&mockLedgerService[models.Income]{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/income?page_size=500", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestLedgerHandler_GetUpdateDelete(t *testing.T) {
	t.Run("returns 404 for another user's entry", func(t *testing.T) {
		svc := &mockLedgerService[models.Income]{
			getFn: func(_, _ string) (*models.Income, error) { return nil, apperrors.ErrIncomeNotFound },
		}
		r := setupIncomeRouter(NewIncomeHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/income/"+testEntryID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INCOME_NOT_FOUND")
	})

	t.Run("returns 400 on malformed id", func(t *testing.T) {
		r := setupIncomeRouter(NewIncomeHandler(&mockLedgerService[models.Income]{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/income/42", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("update passes the path id", func(t *testing.T) {
		var gotID string
		svc := &mockLedgerService[models.Income]{
			updateFn: func(_, id string, entry *models.Income) (*models.Income, error) {
				gotID = id
				return entry, nil
			},
		}
		r := setupIncomeRouter(NewIncomeHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/income/"+testEntryID, `{"amount":"1","date":"2026-01-01","category":"pension"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotID != testEntryID {
			t.Errorf("expected id %s, got %s", testEntryID, gotID)
		}
	})

	t.Run("delete returns 200", func(t *testing.T) {
		audit := &mockAuditService{}
		r := setupIncomeRouter(NewIncomeHandler(&mockLedgerService[models.Income]{}, audit))

		rec := doRequest(r, "DELETE", "/income/"+testEntryID, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if len(audit.actions) != 1 || audit.actions[0] != "DELETE" {
			t.Errorf("expected DELETE audit entry, got %v", audit.actions)
		}
	})
}

func TestBudgetHandler_Create(t *testing.T) {
	t.Run("undated recurring budget is accepted", func(t *testing.T) {
		var got *models.Budget
		svc := &mockLedgerService[models.Budget]{
			createFn: func(_ string, entry *models.Budget) (*models.Budget, error) {
				got = entry
				return entry, entry.Validate()
			},
		}
		r := gin.New()
		r.POST("/budgets", injectUserID(testUserID), NewBudgetHandler(svc, &mockAuditService{}).Create)

		rec := doRequest(r, "POST", "/budgets", `{"amount":"300","category":"food","recurring_monthly":true}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Date != nil {
			t.Errorf("expected nil date, got %v", got.Date)
		}
		if _, ok := parseJSON(t, rec)["budget"]; !ok {
			t.Error("expected budget key in response")
		}
	})

	t.Run("one-off budget without date fails validation", func(t *testing.T) {
		svc := &mockLedgerService[models.Budget]{
			createFn: func(_ string, entry *models.Budget) (*models.Budget, error) {
				return nil, entry.Validate()
			},
		}
		r := gin.New()
		r.POST("/budgets", injectUserID(testUserID), NewBudgetHandler(svc, &mockAuditService{}).Create)

		rec := doRequest(r, "POST", "/budgets", `{"amount":"300","category":"food"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "VALIDATION_ERROR")
	})
}

func TestExpenseHandler_Create(t *testing.T) {
	t.Run("returns 201 under the expense key", func(t *testing.T) {
		r := gin.New()
		r.POST("/expenses", injectUserID(testUserID),
			NewExpenseHandler(&mockLedgerService[models.Expense]{}, &mockAuditService{}).Create)

		rec := doRequest(r, "POST", "/expenses", `{"amount":"12.5","date":"2026-01-04","category":"food"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		expense := parseJSON(t, rec)["expense"].(map[string]interface{})
		if expense["amount"] != "12.50" {
			t.Errorf("expected 12.50, got %v", expense["amount"])
		}
		if expense["date"] != time.Date(2026, 1, 4, 0, 0, 0, 0, time.UTC).Format("2006-01-02") {
			t.Errorf("unexpected date %v", expense["date"])
		}
	})
}
