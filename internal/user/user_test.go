package user_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/frahmantamala/family-ledger/internal"
	"github.com/frahmantamala/family-ledger/internal/transport"
	"github.com/frahmantamala/family-ledger/internal/user"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestUser(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Suite")
}

type MockRepository struct {
	profiles   map[int64]*user.Profile
	shouldFail bool
	failError  error
}

func (m *MockRepository) GetProfile(ctx context.Context, userID int64) (*user.Profile, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	return m.profiles[userID], nil
}

var _ = Describe("User Service", func() {
	var (
		repo    *MockRepository
		service *user.Service
		handler *user.Handler
	)

	BeforeEach(func() {
		repo = &MockRepository{profiles: map[int64]*user.Profile{
			1: {ID: 1, Email: "ana@example.com", Name: "Ana"},
		}}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = user.NewService(repo, logger)
		handler = user.NewHandler(transport.NewBaseHandler(logger), service)
	})

	It("should return the profile", func() {
		p, err := service.GetProfile(context.Background(), 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Email).To(Equal("ana@example.com"))
	})

	It("should report an unknown user", func() {
		_, err := service.GetProfile(context.Background(), 2)
		Expect(errors.Is(err, internal.ErrUserNotFound)).To(BeTrue())
	})

	It("should wrap storage failures", func() {
		repo.shouldFail = true
		repo.failError = errors.New("db down")
		_, err := service.GetProfile(context.Background(), 1)
		Expect(internal.IsType(err, internal.ErrorTypeStorage)).To(BeTrue())
	})

	Describe("GetCurrentUser", func() {
		It("should render the caller's profile", func() {
			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			req = req.WithContext(internal.ContextWithUserID(req.Context(), 1))
			w := httptest.NewRecorder()

			handler.GetCurrentUser(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			var p user.Profile
			Expect(json.NewDecoder(w.Body).Decode(&p)).To(Succeed())
			Expect(p.Name).To(Equal("Ana"))
			Expect(p.FamilyID).To(BeNil())
		})

		It("should reject anonymous callers", func() {
			w := httptest.NewRecorder()
			handler.GetCurrentUser(w, httptest.NewRequest(http.MethodGet, "/users/me", nil))
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("should answer 404 for a deleted user", func() {
			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			req = req.WithContext(internal.ContextWithUserID(req.Context(), 9))
			w := httptest.NewRecorder()

			handler.GetCurrentUser(w, req)
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})
})
