package usecase

import (
	"context"
	"listings-service/internal/core/domain"

	"github.com/google/uuid"
)

// Фейковые реализации портов хранилищ для тестов use case.
// Каждый метод делегирует в одноименную функцию-поле, чтобы тест
// подменял только то, что ему нужно.

type fakeListingStorage struct {
	CreateFn          func(ctx context.Context, listing *domain.Listing) error
	UpdateFn          func(ctx context.Context, listing *domain.Listing) (*domain.Listing, error)
	GetByIDFn         func(ctx context.Context, listingID uuid.UUID) (*domain.Listing, error)
	FindWithFiltersFn func(ctx context.Context, filters domain.ListingFilters, limit, offset int) (*domain.PaginatedListings, error)
	IDsByOwnerFn      func(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error)
	CountAllFn        func(ctx context.Context) (int64, error)
	CountByAgentFn    func(ctx context.Context, agentID uuid.UUID) (int64, error)
	CountByOwnerFn    func(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

func (f *fakeListingStorage) Create(ctx context.Context, listing *domain.Listing) error {
	return f.CreateFn(ctx, listing)
}

func (f *fakeListingStorage) Update(ctx context.Context, listing *domain.Listing) (*domain.Listing, error) {
	return f.UpdateFn(ctx, listing)
}

func (f *fakeListingStorage) GetByID(ctx context.Context, listingID uuid.UUID) (*domain.Listing, error) {
	return f.GetByIDFn(ctx, listingID)
}

func (f *fakeListingStorage) FindWithFilters(ctx context.Context, filters domain.ListingFilters, limit, offset int) (*domain.PaginatedListings, error) {
	return f.FindWithFiltersFn(ctx, filters, limit, offset)
}

func (f *fakeListingStorage) IDsByOwner(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	return f.IDsByOwnerFn(ctx, ownerID)
}

func (f *fakeListingStorage) CountAll(ctx context.Context) (int64, error) {
	return f.CountAllFn(ctx)
}

func (f *fakeListingStorage) CountByAgent(ctx context.Context, agentID uuid.UUID) (int64, error) {
	return f.CountByAgentFn(ctx, agentID)
}

func (f *fakeListingStorage) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	return f.CountByOwnerFn(ctx, ownerID)
}

type fakeInquiryStorage struct {
	CreateFn              func(ctx context.Context, inquiry *domain.Inquiry) error
	GetByIDFn             func(ctx context.Context, inquiryID uuid.UUID) (*domain.Inquiry, error)
	FindAllFn             func(ctx context.Context) ([]domain.InquiryWithListing, error)
	FindByListingOwnerFn  func(ctx context.Context, ownerID uuid.UUID) ([]domain.InquiryWithListing, error)
	FindByListingAgentFn  func(ctx context.Context, agentID uuid.UUID) ([]domain.InquiryWithListing, error)
	UpdateStatusFn        func(ctx context.Context, inquiryID uuid.UUID, status domain.InquiryStatus) (*domain.Inquiry, error)
	CountAllFn            func(ctx context.Context) (int64, error)
	CountByListingOwnerFn func(ctx context.Context, ownerID uuid.UUID) (int64, error)
	CountByListingAgentFn func(ctx context.Context, agentID uuid.UUID) (int64, error)
}

func (f *fakeInquiryStorage) Create(ctx context.Context, inquiry *domain.Inquiry) error {
	return f.CreateFn(ctx, inquiry)
}

func (f *fakeInquiryStorage) GetByID(ctx context.Context, inquiryID uuid.UUID) (*domain.Inquiry, error) {
	return f.GetByIDFn(ctx, inquiryID)
}

func (f *fakeInquiryStorage) FindAll(ctx context.Context) ([]domain.InquiryWithListing, error) {
	return f.FindAllFn(ctx)
}

func (f *fakeInquiryStorage) FindByListingOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.InquiryWithListing, error) {
	return f.FindByListingOwnerFn(ctx, ownerID)
}

func (f *fakeInquiryStorage) FindByListingAgent(ctx context.Context, agentID uuid.UUID) ([]domain.InquiryWithListing, error) {
	return f.FindByListingAgentFn(ctx, agentID)
}

func (f *fakeInquiryStorage) UpdateStatus(ctx context.Context, inquiryID uuid.UUID, status domain.InquiryStatus) (*domain.Inquiry, error) {
	return f.UpdateStatusFn(ctx, inquiryID, status)
}

func (f *fakeInquiryStorage) CountAll(ctx context.Context) (int64, error) {
	return f.CountAllFn(ctx)
}

func (f *fakeInquiryStorage) CountByListingOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	return f.CountByListingOwnerFn(ctx, ownerID)
}

func (f *fakeInquiryStorage) CountByListingAgent(ctx context.Context, agentID uuid.UUID) (int64, error) {
	return f.CountByListingAgentFn(ctx, agentID)
}

type fakeProfileStorage struct {
	GetByIDFn  func(ctx context.Context, profileID uuid.UUID) (*domain.Profile, error)
	UpdateFn   func(ctx context.Context, profile *domain.Profile) (*domain.Profile, error)
	CountAllFn func(ctx context.Context) (int64, error)
}

func (f *fakeProfileStorage) GetByID(ctx context.Context, profileID uuid.UUID) (*domain.Profile, error) {
	return f.GetByIDFn(ctx, profileID)
}

func (f *fakeProfileStorage) Update(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	return f.UpdateFn(ctx, profile)
}

func (f *fakeProfileStorage) CountAll(ctx context.Context) (int64, error) {
	return f.CountAllFn(ctx)
}

type fakeViewEventStorage struct {
	RecordFn           func(ctx context.Context, event *domain.ViewEvent) error
	CountForListingsFn func(ctx context.Context, listingIDs []uuid.UUID) (int64, error)
	CountByViewerFn    func(ctx context.Context, viewerID uuid.UUID) (int64, error)
}

func (f *fakeViewEventStorage) Record(ctx context.Context, event *domain.ViewEvent) error {
	return f.RecordFn(ctx, event)
}

func (f *fakeViewEventStorage) CountForListings(ctx context.Context, listingIDs []uuid.UUID) (int64, error) {
	return f.CountForListingsFn(ctx, listingIDs)
}

func (f *fakeViewEventStorage) CountByViewer(ctx context.Context, viewerID uuid.UUID) (int64, error) {
	return f.CountByViewerFn(ctx, viewerID)
}

// fakeEventQueue запоминает опубликованные события изменений.
type fakeEventQueue struct {
	published []domain.ChangeEvent
}

func (f *fakeEventQueue) Publish(_ context.Context, event domain.ChangeEvent) error {
	f.published = append(f.published, event)
	return nil
}
