package category_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/frahmantamala/family-ledger/internal"
	"github.com/frahmantamala/family-ledger/internal/category"
	categoryPostgres "github.com/frahmantamala/family-ledger/internal/category/postgres"
	"github.com/frahmantamala/family-ledger/internal/core/datamodel"
	"github.com/frahmantamala/family-ledger/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func withScope(req *http.Request, familyID int64) *http.Request {
	ctx := internal.ContextWithScope(req.Context(), internal.Scope{FamilyID: familyID, AccountID: familyID})
	return req.WithContext(ctx)
}

func withID(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

var _ = Describe("Category Handler Integration", func() {
	var (
		db      *gorm.DB
		repo    category.RepositoryAPI
		service *category.Service
		handler *category.Handler
		slogger *slog.Logger
	)

	BeforeEach(func() {
		var err error
		slogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Silent),
			TranslateError: true,
		})
		Expect(err).NotTo(HaveOccurred())
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)

		err = db.AutoMigrate(datamodel.Models()...)
		Expect(err).NotTo(HaveOccurred())

		repo = categoryPostgres.NewCategoryRepository(db)
		service = category.NewService(repo, nil, slogger)
		handler = category.NewHandler(transport.NewBaseHandler(slogger), service)

		for _, in := range []category.Input{
			{Name: "Salary", Type: category.TypeIncome},
			{Name: "Groceries", Type: category.TypeExpense},
		} {
			normalized, vErr := in.Normalize()
			Expect(vErr).To(BeNil())
			Expect(repo.Create(context.Background(), category.ToDataModel(category.NewCategory(nil, normalized)))).To(Succeed())
		}
	})

	It("should handle GET /categories request successfully", func() {
		req := withScope(httptest.NewRequest(http.MethodGet, "/categories", nil), 1)
		w := httptest.NewRecorder()

		handler.GetCategories(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

		var response category.CategoriesResponse
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response.Categories).To(HaveLen(2))

		names := make([]string, len(response.Categories))
		for i, cat := range response.Categories {
			names[i] = cat.Name
			Expect(cat.Global).To(BeTrue())
		}
		Expect(names).To(ConsistOf("Salary", "Groceries"))
	})

	It("should create a family category and reject a duplicate", func() {
		body := `{"name":"Pets","type":"expense","color":"#123456"}`
		req := withScope(httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(body)), 1)
		w := httptest.NewRecorder()

		handler.CreateCategory(w, req)

		Expect(w.Code).To(Equal(http.StatusCreated))
		var created category.CategoryResponse
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
		Expect(created.Name).To(Equal("Pets"))
		Expect(created.Global).To(BeFalse())

		req = withScope(httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(`{"name":"pets"}`)), 1)
		w = httptest.NewRecorder()
		handler.CreateCategory(w, req)
		Expect(w.Code).To(Equal(http.StatusConflict))
	})

	It("should reject a missing body", func() {
		req := withScope(httptest.NewRequest(http.MethodPost, "/categories", nil), 1)
		w := httptest.NewRecorder()

		handler.CreateCategory(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should forbid updating a global category", func() {
		req := withScope(httptest.NewRequest(http.MethodPut, "/categories/1", strings.NewReader(`{"name":"Wages","type":"income"}`)), 1)
		req = withID(req, "1")
		w := httptest.NewRecorder()

		handler.UpdateCategory(w, req)

		Expect(w.Code).To(Equal(http.StatusForbidden))

		var envelope map[string]map[string]interface{}
		Expect(json.NewDecoder(w.Body).Decode(&envelope)).To(Succeed())
		Expect(envelope["error"]["code"]).To(Equal(string(internal.ErrCodeCategoryNotOwned)))
	})

	It("should hide a global category on delete", func() {
		req := withID(withScope(httptest.NewRequest(http.MethodDelete, "/categories/2", nil), 1), "2")
		w := httptest.NewRecorder()

		handler.DeleteCategory(w, req)
		Expect(w.Code).To(Equal(http.StatusNoContent))

		req = withScope(httptest.NewRequest(http.MethodGet, "/categories", nil), 1)
		w = httptest.NewRecorder()
		handler.GetCategories(w, req)

		var response category.CategoriesResponse
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response.Categories).To(HaveLen(1))
		Expect(response.Categories[0].Name).To(Equal("Salary"))
	})

	It("should reject a non-numeric id", func() {
		req := withID(withScope(httptest.NewRequest(http.MethodDelete, "/categories/abc", nil), 1), "abc")
		w := httptest.NewRecorder()

		handler.DeleteCategory(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should return not found without a family scope", func() {
		req := httptest.NewRequest(http.MethodGet, "/categories", nil)
		w := httptest.NewRecorder()

		handler.GetCategories(w, req)

		Expect(w.Code).To(Equal(http.StatusNotFound))
	})
})
