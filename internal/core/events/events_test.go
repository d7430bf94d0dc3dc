package events_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/frahmantamala/family-ledger/internal/core/events"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestEvents(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Events Suite")
}

var _ = Describe("EventBus", func() {
	var (
		bus *events.EventBus
		ctx context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		bus = events.NewEventBus(slog.New(slog.NewTextHandler(GinkgoWriter, nil)))
	})

	It("should deliver to every subscriber of the type", func() {
		var calls int32
		handler := func(ctx context.Context, e events.Event) error {
			atomic.AddInt32(&calls, 1)
			return nil
		}
		bus.Subscribe(events.EventTypeFamilyReset, handler)
		bus.Subscribe(events.EventTypeFamilyReset, handler)
		bus.Subscribe(events.EventTypeCategoryDeleted, handler)

		Expect(bus.PublishSync(ctx, events.NewFamilyResetEvent(7))).To(Succeed())
		Expect(atomic.LoadInt32(&calls)).To(Equal(int32(2)))
	})

	It("should ignore events nobody listens to", func() {
		Expect(bus.Publish(ctx, events.NewFamilyResetEvent(7))).To(Succeed())
		Expect(bus.PublishSync(ctx, events.NewFamilyResetEvent(7))).To(Succeed())
	})

	It("should run every handler and join their errors when publishing synchronously", func() {
		var second bool
		bus.Subscribe(events.EventTypeFamilyReset, func(ctx context.Context, e events.Event) error {
			return errors.New("boom")
		})
		bus.Subscribe(events.EventTypeFamilyReset, func(ctx context.Context, e events.Event) error {
			second = true
			panic("kaboom")
		})

		err := bus.PublishSync(ctx, events.NewFamilyResetEvent(7))
		Expect(err).To(MatchError(ContainSubstring("boom")))
		Expect(err).To(MatchError(ContainSubstring("handler panicked: kaboom")))
		Expect(second).To(BeTrue())
	})

	It("should drain asynchronous deliveries", func() {
		release := make(chan struct{})
		var done int32
		bus.Subscribe(events.EventTypeFamilyReset, func(ctx context.Context, e events.Event) error {
			<-release
			atomic.StoreInt32(&done, 1)
			return nil
		})
		Expect(bus.Publish(ctx, events.NewFamilyResetEvent(7))).To(Succeed())

		short, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()
		Expect(bus.Drain(short)).To(MatchError(context.DeadlineExceeded))

		close(release)
		Expect(bus.Drain(ctx)).To(Succeed())
		Expect(atomic.LoadInt32(&done)).To(Equal(int32(1)))
	})

	It("should run handlers after the publishing context is cancelled", func() {
		received := make(chan events.Event, 1)
		bus.Subscribe(events.EventTypeTransactionRecorded, func(hctx context.Context, e events.Event) error {
			Expect(hctx.Err()).NotTo(HaveOccurred())
			received <- e
			return nil
		})

		cctx, cancel := context.WithCancel(ctx)
		Expect(bus.Publish(cctx, events.NewTransactionRecordedEvent(1, 2, 3, "-12.50"))).To(Succeed())
		cancel()

		var got events.Event
		Eventually(received).Should(Receive(&got))
		Expect(got.EventType()).To(Equal(events.EventTypeTransactionRecorded))
	})

	It("should subscribe one handler to many types", func() {
		var calls int32
		bus.SubscribeMany(events.LedgerEventTypes, func(ctx context.Context, e events.Event) error {
			atomic.AddInt32(&calls, 1)
			return nil
		})

		Expect(bus.PublishSync(ctx, events.NewUserRegisteredEvent(1, 2))).To(Succeed())
		Expect(bus.PublishSync(ctx, events.NewCategoryDeletedEvent(2, 3, true))).To(Succeed())
		Expect(atomic.LoadInt32(&calls)).To(Equal(int32(2)))
	})
})

var _ = Describe("Ledger events", func() {
	It("should carry identity and payload", func() {
		e := events.NewCategoryDeletedEvent(4, 9, false)
		Expect(e.EventID()).NotTo(BeEmpty())
		Expect(e.OccurredAt()).NotTo(BeZero())
		Expect(e.Payload()).To(HaveKeyWithValue("category_id", int64(9)))
		Expect(e.Payload()).To(HaveKeyWithValue("hidden", false))
	})

	It("should write audited events to the log", func() {
		var buf bytes.Buffer
		audit := events.AuditHandler(slog.New(slog.NewTextHandler(&buf, nil)))

		Expect(audit(context.Background(), events.NewFamilyResetEvent(3))).To(Succeed())
		Expect(buf.String()).To(ContainSubstring("event_type=family.reset"))
	})
})
