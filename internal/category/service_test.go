package category_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"

	appErrors "github.com/frahmantamala/family-ledger/internal"
	"github.com/frahmantamala/family-ledger/internal/category"
	categoryDatamodel "github.com/frahmantamala/family-ledger/internal/core/datamodel/category"
	"github.com/frahmantamala/family-ledger/internal/core/events"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestCategoryService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Category Service Suite")
}

// MockRepository implements category.RepositoryAPI for testing
type MockRepository struct {
	categories map[int64]*categoryDatamodel.Category
	nextID     int64
	shouldFail bool
	failError  error

	createErr error
	updateErr error
	deleteErr error
	hidden    bool
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		categories: make(map[int64]*categoryDatamodel.Category),
		nextID:     1,
	}
}

func (m *MockRepository) ListVisible(ctx context.Context, familyID int64) ([]*categoryDatamodel.Category, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*categoryDatamodel.Category
	for id := int64(1); id < m.nextID; id++ {
		cat, ok := m.categories[id]
		if !ok {
			continue
		}
		if cat.FamilyID == nil || *cat.FamilyID == familyID {
			result = append(result, cat)
		}
	}
	return result, nil
}

func (m *MockRepository) GetVisible(ctx context.Context, familyID, id int64) (*categoryDatamodel.Category, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	cat, ok := m.categories[id]
	if !ok || (cat.FamilyID != nil && *cat.FamilyID != familyID) {
		return nil, nil
	}
	return cat, nil
}

func (m *MockRepository) Create(ctx context.Context, cat *categoryDatamodel.Category) error {
	if m.shouldFail {
		return m.failError
	}
	if m.createErr != nil {
		return m.createErr
	}
	cat.ID = m.nextID
	m.nextID++
	m.categories[cat.ID] = cat
	return nil
}

func (m *MockRepository) Update(ctx context.Context, familyID int64, cat *categoryDatamodel.Category) error {
	if m.shouldFail {
		return m.failError
	}
	if m.updateErr != nil {
		return m.updateErr
	}
	if existing, ok := m.categories[cat.ID]; ok && cat.Type == "" {
		cat.Type = existing.Type
	}
	m.categories[cat.ID] = cat
	return nil
}

func (m *MockRepository) DeleteOrHide(ctx context.Context, familyID, id int64) (bool, error) {
	if m.shouldFail {
		return false, m.failError
	}
	if m.deleteErr != nil {
		return false, m.deleteErr
	}
	delete(m.categories, id)
	return m.hidden, nil
}

// Helper methods for testing
func (m *MockRepository) SetShouldFail(shouldFail bool, err error) {
	m.shouldFail = shouldFail
	m.failError = err
}

func (m *MockRepository) AddCategory(cat *category.Category) {
	row := category.ToDataModel(cat)
	row.ID = m.nextID
	m.nextID++
	m.categories[row.ID] = row
}

// RecordingPublisher captures published events.
type RecordingPublisher struct {
	mu      sync.Mutex
	events  []events.Event
	failError error
}

func (p *RecordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failError != nil {
		return p.failError
	}
	p.events = append(p.events, event)
	return nil
}

func (p *RecordingPublisher) Events() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event(nil), p.events...)
}

func familyPtr(id int64) *int64 { return &id }

var _ = Describe("Category Service", func() {
	var (
		mockRepo  *MockRepository
		publisher *RecordingPublisher
		service   *category.Service
		logger    *slog.Logger
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		publisher = &RecordingPublisher{}
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = category.NewService(mockRepo, publisher, logger)
	})

	Describe("ListVisible", func() {
		Context("when repository has categories", func() {
			BeforeEach(func() {
				mockRepo.AddCategory(&category.Category{Name: "Salary", Type: category.TypeIncome})
				mockRepo.AddCategory(&category.Category{FamilyID: familyPtr(1), Name: "Pets", Type: category.TypeExpense})
				mockRepo.AddCategory(&category.Category{FamilyID: familyPtr(2), Name: "Boat", Type: category.TypeExpense})
			})

			It("should return globals and the family's own categories", func() {
				categories, err := service.ListVisible(context.Background(), 1)
				Expect(err).NotTo(HaveOccurred())

				names := make([]string, len(categories))
				for i, cat := range categories {
					names[i] = cat.Name
				}
				Expect(names).To(Equal([]string{"Salary", "Pets"}))
				Expect(categories[0].IsGlobal()).To(BeTrue())
				Expect(categories[1].OwnedBy(1)).To(BeTrue())
			})
		})

		Context("when repository returns error", func() {
			BeforeEach(func() {
				mockRepo.SetShouldFail(true, errors.New("database error"))
			})

			It("should return a storage error", func() {
				categories, err := service.ListVisible(context.Background(), 1)
				Expect(categories).To(BeNil())
				Expect(appErrors.IsType(err, appErrors.ErrorTypeStorage)).To(BeTrue())
			})
		})
	})

	Describe("Get", func() {
		It("should return not found for another family's category", func() {
			mockRepo.AddCategory(&category.Category{FamilyID: familyPtr(2), Name: "Boat"})

			cat, err := service.Get(context.Background(), 1, 1)
			Expect(cat).To(BeNil())
			Expect(errors.Is(err, appErrors.ErrCategoryNotFound)).To(BeTrue())
		})

		It("should return a visible category", func() {
			mockRepo.AddCategory(&category.Category{Name: "Groceries", Type: category.TypeExpense})

			cat, err := service.Get(context.Background(), 1, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(cat.Name).To(Equal("Groceries"))
		})
	})

	Describe("Create", func() {
		It("should normalize input and apply defaults", func() {
			cat, err := service.Create(context.Background(), 7, category.Input{Name: "  Pets  "})
			Expect(err).NotTo(HaveOccurred())
			Expect(cat.ID).To(BeNumerically(">", 0))
			Expect(cat.Name).To(Equal("Pets"))
			Expect(cat.Type).To(Equal(category.TypeExpense))
			Expect(cat.Color).To(Equal(category.DefaultColor))
			Expect(cat.Icon).To(Equal(category.DefaultIcon))
			Expect(cat.OwnedBy(7)).To(BeTrue())
		})

		It("should keep the income type", func() {
			cat, err := service.Create(context.Background(), 7, category.Input{Name: "Bonus", Type: "income", Color: "#00ff00"})
			Expect(err).NotTo(HaveOccurred())
			Expect(cat.Type).To(Equal(category.TypeIncome))
			Expect(cat.Color).To(Equal("#00ff00"))
		})

		It("should reject an unknown type", func() {
			cat, err := service.Create(context.Background(), 7, category.Input{Name: "Pets", Type: "savings"})
			Expect(cat).To(BeNil())
			Expect(appErrors.IsType(err, appErrors.ErrorTypeValidation)).To(BeTrue())
			Expect(mockRepo.categories).To(BeEmpty())
		})

		It("should reject an empty name", func() {
			cat, err := service.Create(context.Background(), 7, category.Input{Name: "   "})
			Expect(cat).To(BeNil())
			Expect(appErrors.IsType(err, appErrors.ErrorTypeValidation)).To(BeTrue())
		})

		It("should map duplicates to a conflict", func() {
			mockRepo.createErr = category.ErrDuplicate

			_, err := service.Create(context.Background(), 7, category.Input{Name: "Pets"})
			Expect(appErrors.IsType(err, appErrors.ErrorTypeConflict)).To(BeTrue())
		})

		It("should wrap other repository failures as storage errors", func() {
			mockRepo.createErr = errors.New("disk full")

			_, err := service.Create(context.Background(), 7, category.Input{Name: "Pets"})
			Expect(appErrors.IsType(err, appErrors.ErrorTypeStorage)).To(BeTrue())
		})
	})

	Describe("Update", func() {
		It("should return forbidden for a global category", func() {
			mockRepo.updateErr = category.ErrNotOwned

			_, err := service.Update(context.Background(), 7, 1, category.Input{Name: "Food"})
			Expect(errors.Is(err, appErrors.ErrCategoryNotOwned)).To(BeTrue())
		})

		It("should return not found for a missing category", func() {
			mockRepo.updateErr = category.ErrNotFound

			_, err := service.Update(context.Background(), 7, 99, category.Input{Name: "Food"})
			Expect(errors.Is(err, appErrors.ErrCategoryNotFound)).To(BeTrue())
		})

		It("should return the updated category", func() {
			mockRepo.AddCategory(&category.Category{FamilyID: familyPtr(7), Name: "Pets", Type: category.TypeExpense})

			cat, err := service.Update(context.Background(), 7, 1, category.Input{Name: "Animals", Type: "income"})
			Expect(err).NotTo(HaveOccurred())
			Expect(cat.ID).To(Equal(int64(1)))
			Expect(cat.Name).To(Equal("Animals"))
			Expect(cat.Type).To(Equal(category.TypeIncome))
		})

		It("should keep the stored type when none is sent", func() {
			mockRepo.AddCategory(&category.Category{FamilyID: familyPtr(7), Name: "Salary", Type: category.TypeIncome})

			cat, err := service.Update(context.Background(), 7, 1, category.Input{Name: "Wages"})
			Expect(err).NotTo(HaveOccurred())
			Expect(cat.Name).To(Equal("Wages"))
			Expect(cat.Type).To(Equal(category.TypeIncome))
		})
	})

	Describe("Delete", func() {
		It("should publish a category deleted event", func() {
			mockRepo.AddCategory(&category.Category{Name: "Transport"})
			mockRepo.hidden = true

			Expect(service.Delete(context.Background(), 7, 1)).To(Succeed())

			published := publisher.Events()
			Expect(published).To(HaveLen(1))
			Expect(published[0].EventType()).To(Equal(events.EventTypeCategoryDeleted))
		})

		It("should still delete when the event cannot be published", func() {
			mockRepo.AddCategory(&category.Category{FamilyID: familyPtr(7), Name: "Transport"})
			publisher.failError = errors.New("broker down")

			Expect(service.Delete(context.Background(), 7, 1)).To(Succeed())
			Expect(publisher.Events()).To(BeEmpty())
		})

		It("should return not found for a missing category", func() {
			mockRepo.deleteErr = category.ErrNotFound

			err := service.Delete(context.Background(), 7, 42)
			Expect(errors.Is(err, appErrors.ErrCategoryNotFound)).To(BeTrue())
			Expect(publisher.Events()).To(BeEmpty())
		})
	})
})
