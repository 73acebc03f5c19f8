package packages

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BackofficeService/internal/domain"
	packageRepo "github.com/m04kA/SMC-BackofficeService/internal/infra/storage/servicepackage"
	"github.com/m04kA/SMC-BackofficeService/internal/service/packages/models"
	"github.com/m04kA/SMC-BackofficeService/pkg/ptr"
)

type fakePackageRepo struct {
	packages map[int64]*domain.ServicePackage
	tiers    map[int64][]domain.PriceTier
	nextID   int64
}

func newFakePackageRepo(packages ...*domain.ServicePackage) *fakePackageRepo {
	repo := &fakePackageRepo{
		packages: make(map[int64]*domain.ServicePackage),
		tiers:    make(map[int64][]domain.PriceTier),
		nextID:   100,
	}
	for _, p := range packages {
		repo.packages[p.ID] = p
		repo.tiers[p.ID] = p.Tiers
	}
	return repo
}

func (f *fakePackageRepo) Create(_ context.Context, pkg *domain.ServicePackage) (*domain.ServicePackage, error) {
	f.nextID++
	pkg.ID = f.nextID
	f.packages[pkg.ID] = pkg
	return pkg, nil
}

func (f *fakePackageRepo) GetByID(_ context.Context, id int64) (*domain.ServicePackage, error) {
	p, ok := f.packages[id]
	if !ok {
		return nil, packageRepo.ErrPackageNotFound
	}
	clone := *p
	clone.Tiers = f.tiers[id]
	return &clone, nil
}

func (f *fakePackageRepo) List(_ context.Context, filter domain.PackageFilter) ([]*domain.ServicePackage, error) {
	result := make([]*domain.ServicePackage, 0)
	for _, p := range f.packages {
		if filter.Version != nil && p.Version != *filter.Version {
			continue
		}
		if filter.ActiveOnly && !p.IsActive {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

func (f *fakePackageRepo) Update(_ context.Context, pkg *domain.ServicePackage) error {
	if _, ok := f.packages[pkg.ID]; !ok {
		return packageRepo.ErrPackageNotFound
	}
	clone := *pkg
	f.packages[pkg.ID] = &clone
	return nil
}

func (f *fakePackageRepo) Deactivate(_ context.Context, id int64) error {
	p, ok := f.packages[id]
	if !ok {
		return packageRepo.ErrPackageNotFound
	}
	p.IsActive = false
	return nil
}

func (f *fakePackageRepo) ReplaceTiers(_ context.Context, packageID int64, tiers []domain.PriceTier) error {
	f.tiers[packageID] = tiers
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func tieredPackage(id int64) *domain.ServicePackage {
	return &domain.ServicePackage{
		ID:          id,
		Name:        "Deep cleaning",
		ServiceType: domain.ServiceCleaning,
		Version:     domain.PackageV2,
		BasePrice:   200,
		IsActive:    true,
		Tiers: []domain.PriceTier{
			{ID: 1, PackageID: id, AreaMin: 0, AreaMax: 50, Frequency: domain.FrequencyWeekly, Price: 80},
			{ID: 2, PackageID: id, AreaMin: 50, AreaMax: 120, Frequency: domain.FrequencyWeekly, Price: 140},
		},
	}
}

func TestService_Create_V1(t *testing.T) {
	svc := NewService(newFakePackageRepo(), fakeTxManager{}, nopLogger{})

	resp, err := svc.Create(context.Background(), &models.CreatePackageRequest{
		Name:        "Basic",
		ServiceType: "cleaning",
		Version:     "v1",
		BasePrice:   100,
	})

	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.Equal(t, "v1", resp.Version)
	assert.Equal(t, domain.DefaultDurationMinutes, resp.DurationMinutes)
	assert.Empty(t, resp.Tiers)
}

func TestService_Create_V2WithTiers(t *testing.T) {
	repo := newFakePackageRepo()
	svc := NewService(repo, fakeTxManager{}, nopLogger{})

	resp, err := svc.Create(context.Background(), &models.CreatePackageRequest{
		Name:        "Deep",
		ServiceType: "cleaning",
		Version:     "v2",
		BasePrice:   200,
		Tiers: []models.TierPayload{
			{AreaMin: 0, AreaMax: 50, Frequency: "weekly", Price: 80},
			{AreaMin: 50, AreaMax: 120, Frequency: "weekly", Price: 140},
		},
	})

	require.NoError(t, err)
	assert.Len(t, resp.Tiers, 2)
	assert.Len(t, repo.tiers[resp.ID], 2)
}

func TestService_Create_OverlappingTiersRejected(t *testing.T) {
	svc := NewService(newFakePackageRepo(), fakeTxManager{}, nopLogger{})

	_, err := svc.Create(context.Background(), &models.CreatePackageRequest{
		Name:        "Deep",
		ServiceType: "cleaning",
		Version:     "v2",
		BasePrice:   200,
		Tiers: []models.TierPayload{
			{AreaMin: 0, AreaMax: 60, Frequency: "weekly", Price: 80},
			{AreaMin: 50, AreaMax: 120, Frequency: "weekly", Price: 140},
		},
	})

	assert.ErrorIs(t, err, ErrInvalidTiers)
}

func TestService_Create_TiersOnV1Rejected(t *testing.T) {
	svc := NewService(newFakePackageRepo(), fakeTxManager{}, nopLogger{})

	_, err := svc.Create(context.Background(), &models.CreatePackageRequest{
		Name:        "Basic",
		ServiceType: "cleaning",
		Version:     "v1",
		BasePrice:   100,
		Tiers:       []models.TierPayload{{AreaMin: 0, AreaMax: 50, Frequency: "weekly", Price: 80}},
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Update_ReplacesTiers(t *testing.T) {
	repo := newFakePackageRepo(tieredPackage(1))
	svc := NewService(repo, fakeTxManager{}, nopLogger{})

	resp, err := svc.Update(context.Background(), 1, &models.UpdatePackageRequest{
		Tiers: &[]models.TierPayload{
			{AreaMin: 0, AreaMax: 100, Frequency: "monthly", Price: 90},
		},
	})

	require.NoError(t, err)
	require.Len(t, resp.Tiers, 1)
	assert.Equal(t, "monthly", resp.Tiers[0].Frequency)
	assert.Len(t, repo.tiers[int64(1)], 1)
}

func TestService_Quote_MatchingTier(t *testing.T) {
	svc := NewService(newFakePackageRepo(tieredPackage(1)), fakeTxManager{}, nopLogger{})

	resp, err := svc.Quote(context.Background(), 1, &models.QuoteRequest{
		Area:      ptr.Ptr(75.0),
		Frequency: ptr.Ptr("weekly"),
	})

	require.NoError(t, err)
	assert.Equal(t, 140.0, resp.Price)
	assert.True(t, resp.Matched)
	require.NotNil(t, resp.Tier)
	assert.Equal(t, 50.0, resp.Tier.AreaMin)
}

func TestService_Quote_BoundaryBelongsToUpperTier(t *testing.T) {
	// Диапазоны полуоткрытые: площадь 50 попадает в тариф [50, 120)
	svc := NewService(newFakePackageRepo(tieredPackage(1)), fakeTxManager{}, nopLogger{})

	resp, err := svc.Quote(context.Background(), 1, &models.QuoteRequest{
		Area:      ptr.Ptr(50.0),
		Frequency: ptr.Ptr("weekly"),
	})

	require.NoError(t, err)
	assert.Equal(t, 140.0, resp.Price)
}

func TestService_Quote_NoMatchFallsBackToBasePrice(t *testing.T) {
	svc := NewService(newFakePackageRepo(tieredPackage(1)), fakeTxManager{}, nopLogger{})

	resp, err := svc.Quote(context.Background(), 1, &models.QuoteRequest{
		Area:      ptr.Ptr(500.0),
		Frequency: ptr.Ptr("weekly"),
	})

	require.NoError(t, err)
	assert.Equal(t, 200.0, resp.Price)
	assert.False(t, resp.Matched)
}

func TestService_Quote_V1IgnoresAreaAndFrequency(t *testing.T) {
	v1 := &domain.ServicePackage{
		ID: 2, Name: "Basic", ServiceType: domain.ServiceCleaning,
		Version: domain.PackageV1, BasePrice: 100, IsActive: true,
	}
	svc := NewService(newFakePackageRepo(v1), fakeTxManager{}, nopLogger{})

	resp, err := svc.Quote(context.Background(), 2, &models.QuoteRequest{
		Area:      ptr.Ptr(75.0),
		Frequency: ptr.Ptr("weekly"),
	})

	require.NoError(t, err)
	assert.Equal(t, 100.0, resp.Price)
	assert.False(t, resp.Matched)
}

func TestService_Quote_NotFound(t *testing.T) {
	svc := NewService(newFakePackageRepo(), fakeTxManager{}, nopLogger{})

	_, err := svc.Quote(context.Background(), 404, &models.QuoteRequest{})

	assert.ErrorIs(t, err, ErrPackageNotFound)
}
