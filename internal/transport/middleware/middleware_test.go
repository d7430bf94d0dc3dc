package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/frahmantamala/family-ledger/internal/transport/middleware"
	"github.com/frahmantamala/family-ledger/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestMiddleware(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Middleware Suite")
}

var _ = Describe("LoggingMiddleware", func() {
	var (
		buf bytes.Buffer
		lg  *slog.Logger
	)

	BeforeEach(func() {
		buf.Reset()
		lg = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	})

	It("should mask credentials in bodies and headers", func() {
		h := middleware.LoggingMiddleware(lg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"message":"bad"},"refresh_token":"r-123"}`))
		}))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
			strings.NewReader(`{"email":"ana@example.com","password":"hunter22"}`))
		req.Header.Set("Authorization", "Bearer abc.def")
		h.ServeHTTP(httptest.NewRecorder(), req)

		out := buf.String()
		Expect(out).To(ContainSubstring("ana@example.com"))
		Expect(out).NotTo(ContainSubstring("hunter22"))
		Expect(out).NotTo(ContainSubstring("abc.def"))
		Expect(out).NotTo(ContainSubstring("r-123"))
		Expect(out).To(ContainSubstring("status_code=401"))
		Expect(out).To(ContainSubstring("level=WARN"))
	})

	It("should leave the request body readable downstream", func() {
		var seen string
		h := middleware.LoggingMiddleware(lg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var b bytes.Buffer
			_, _ = b.ReadFrom(r.Body)
			seen = b.String()
		}))

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(`{"amount":"12.50"}`)))
		Expect(seen).To(Equal(`{"amount":"12.50"}`))
	})

	It("should log server errors at error level", func() {
		h := middleware.LoggingMiddleware(lg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil))
		Expect(buf.String()).To(ContainSubstring("level=ERROR"))
	})
})

var _ = Describe("RecoveryMiddleware", func() {
	It("should turn a panic into a 500 envelope", func() {
		h := middleware.RecoveryMiddleware(logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}))

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(w.Body.String()).To(ContainSubstring("INTERNAL_ERROR"))
		Expect(w.Body.String()).NotTo(ContainSubstring("boom"))
	})
})

var _ = Describe("RequestID", func() {
	It("should reuse the caller's trace id", func() {
		var fromCtx *slog.Logger
		h := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fromCtx = logger.From(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.TraceHeader, "trace-1")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		Expect(w.Header().Get(middleware.TraceHeader)).To(Equal("trace-1"))
		Expect(fromCtx).NotTo(BeNil())
	})

	It("should mint a trace id when none is sent", func() {
		w := httptest.NewRecorder()
		middleware.RequestID(http.NotFoundHandler()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		Expect(w.Header().Get(middleware.TraceHeader)).To(HaveLen(36))
	})
})

var _ = Describe("CORS", func() {
	preflight := func(origin string) *http.Request {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/categories", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		return req
	}

	It("should answer preflight for an allowed origin", func() {
		w := httptest.NewRecorder()
		middleware.CORS("http://localhost:3000")(http.NotFoundHandler()).ServeHTTP(w, preflight("http://localhost:3000"))

		Expect(w.Code).To(Equal(http.StatusNoContent))
		Expect(w.Header().Get("Access-Control-Allow-Origin")).To(Equal("http://localhost:3000"))
	})

	It("should not grant other origins", func() {
		w := httptest.NewRecorder()
		middleware.CORS("http://localhost:3000")(http.NotFoundHandler()).ServeHTTP(w, preflight("http://evil.test"))
		Expect(w.Header().Get("Access-Control-Allow-Origin")).To(BeEmpty())
	})

	It("should allow any origin by default", func() {
		w := httptest.NewRecorder()
		middleware.CORS("")(http.NotFoundHandler()).ServeHTTP(w, preflight("http://evil.test"))
		Expect(w.Header().Get("Access-Control-Allow-Origin")).To(Equal("*"))
	})
})
