package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tornado/portal/internal/domain/catalog"
	"github.com/tornado/portal/internal/domain/identity"
	"github.com/tornado/portal/internal/domain/partner"
	"github.com/tornado/portal/internal/domain/shared"
	"github.com/tornado/portal/internal/domain/shared/valueobject"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindDependencyID(ctx context.Context, productID uuid.UUID) (*uuid.UUID, bool, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*uuid.UUID), args.Bool(1), args.Error(2)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCode(ctx context.Context, code string) (*catalog.Product, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllActive(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) CountDependents(ctx context.Context, productID uuid.UUID) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountReferences(ctx context.Context, productID uuid.UUID) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPartnerPriceRepository is a mock implementation of PartnerPriceRepository
type MockPartnerPriceRepository struct {
	mock.Mock
}

func (m *MockPartnerPriceRepository) FindByPartnerAndProduct(ctx context.Context, partnerID, productID uuid.UUID) (*partner.PartnerPrice, error) {
	args := m.Called(ctx, partnerID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.PartnerPrice), args.Error(1)
}

func (m *MockPartnerPriceRepository) FindByPartner(ctx context.Context, partnerID uuid.UUID) ([]partner.PartnerPrice, error) {
	args := m.Called(ctx, partnerID)
	return args.Get(0).([]partner.PartnerPrice), args.Error(1)
}

func (m *MockPartnerPriceRepository) Upsert(ctx context.Context, price *partner.PartnerPrice) error {
	args := m.Called(ctx, price)
	return args.Error(0)
}

func (m *MockPartnerPriceRepository) DeleteByProduct(ctx context.Context, productID uuid.UUID) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

// MockPartnerRepository is a mock implementation of PartnerRepository
type MockPartnerRepository struct {
	mock.Mock
}

func (m *MockPartnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Partner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Partner), args.Error(1)
}

func (m *MockPartnerRepository) FindByCode(ctx context.Context, code string) (*partner.Partner, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Partner), args.Error(1)
}

func (m *MockPartnerRepository) FindAllActive(ctx context.Context, filter shared.Filter) ([]partner.Partner, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Partner), args.Error(1)
}

func (m *MockPartnerRepository) FirstActive(ctx context.Context) (*partner.Partner, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Partner), args.Error(1)
}

func (m *MockPartnerRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockPartnerRepository) Save(ctx context.Context, p *partner.Partner) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func newService() (*ProductService, *MockProductRepository, *MockPartnerPriceRepository, *MockPartnerRepository) {
	productRepo := new(MockProductRepository)
	priceRepo := new(MockPartnerPriceRepository)
	partnerRepo := new(MockPartnerRepository)
	return NewProductService(productRepo, priceRepo, partnerRepo), productRepo, priceRepo, partnerRepo
}

func providerActor() identity.Actor {
	return identity.Actor{UserID: uuid.New(), Role: identity.RoleProviderUser}
}

func newProduct(t *testing.T, price float64) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct("Firewall", "FW-01", "Perimeter firewall", "security", valueobject.NewMoneyUSDFromFloat(price))
	require.NoError(t, err)
	return p
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates product", func(t *testing.T) {
		service, productRepo, _, _ := newService()
		productRepo.On("ExistsByCode", ctx, "FW-01").Return(false, nil)
		productRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		resp, err := service.Create(ctx, providerActor(), CreateProductRequest{
			Name:        "Firewall",
			Code:        "FW-01",
			Description: "Perimeter firewall",
			Category:    "security",
			BasePrice:   decimal.NewFromInt(100),
		})
		require.NoError(t, err)
		assert.Equal(t, "FW-01", resp.Code)
	})

	t.Run("rejects duplicate code", func(t *testing.T) {
		service, productRepo, _, _ := newService()
		productRepo.On("ExistsByCode", ctx, "FW-01").Return(true, nil)

		_, err := service.Create(ctx, providerActor(), CreateProductRequest{
			Name:        "Firewall",
			Code:        "FW-01",
			Description: "Perimeter firewall",
			Category:    "security",
			BasePrice:   decimal.NewFromInt(100),
		})
		assert.Error(t, err)
	})

	t.Run("partner staff cannot manage products", func(t *testing.T) {
		service, _, _, _ := newService()
		partnerID := uuid.New()
		actor := identity.Actor{UserID: uuid.New(), Role: identity.RolePartnerAdmin, PartnerID: &partnerID}

		_, err := service.Create(ctx, actor, CreateProductRequest{
			Name: "Firewall", Code: "FW-01", Description: "d", Category: "c",
			BasePrice: decimal.NewFromInt(100),
		})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestProductService_SetDependency(t *testing.T) {
	ctx := context.Background()

	t.Run("closing a two product loop is rejected", func(t *testing.T) {
		service, productRepo, _, _ := newService()
		productA := newProduct(t, 100)
		productB := newProduct(t, 50)
		// B already depends on A
		require.NoError(t, productB.SetDependency(&productA.ID))

		productRepo.On("FindByID", ctx, productA.ID).Return(productA, nil)
		productRepo.On("FindByID", ctx, productB.ID).Return(productB, nil)
		productRepo.On("FindDependencyID", ctx, productB.ID).Return(&productA.ID, true, nil)

		_, err := service.SetDependency(ctx, providerActor(), productA.ID, SetDependencyRequest{DependencyID: &productB.ID})
		assert.ErrorIs(t, err, shared.ErrCircularDependency)
	})

	t.Run("acyclic dependency is accepted", func(t *testing.T) {
		service, productRepo, _, _ := newService()
		productA := newProduct(t, 100)
		productB := newProduct(t, 50)

		productRepo.On("FindByID", ctx, productA.ID).Return(productA, nil)
		productRepo.On("FindByID", ctx, productB.ID).Return(productB, nil)
		productRepo.On("FindDependencyID", ctx, productB.ID).Return(nil, true, nil)
		productRepo.On("Save", ctx, productA).Return(nil)

		resp, err := service.SetDependency(ctx, providerActor(), productA.ID, SetDependencyRequest{DependencyID: &productB.ID})
		require.NoError(t, err)
		assert.Equal(t, productB.ID, *resp.DependencyID)
	})

	t.Run("inactive dependency is rejected", func(t *testing.T) {
		service, productRepo, _, _ := newService()
		productA := newProduct(t, 100)
		productB := newProduct(t, 50)
		productB.Deactivate()

		productRepo.On("FindByID", ctx, productA.ID).Return(productA, nil)
		productRepo.On("FindByID", ctx, productB.ID).Return(productB, nil)

		_, err := service.SetDependency(ctx, providerActor(), productA.ID, SetDependencyRequest{DependencyID: &productB.ID})
		assert.Error(t, err)
	})

	t.Run("clearing a dependency skips the walk", func(t *testing.T) {
		service, productRepo, _, _ := newService()
		productA := newProduct(t, 100)
		other := uuid.New()
		require.NoError(t, productA.SetDependency(&other))

		productRepo.On("FindByID", ctx, productA.ID).Return(productA, nil)
		productRepo.On("Save", ctx, productA).Return(nil)

		resp, err := service.SetDependency(ctx, providerActor(), productA.ID, SetDependencyRequest{})
		require.NoError(t, err)
		assert.Nil(t, resp.DependencyID)
	})
}

func TestProductService_HardDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("rejected while other products depend on it", func(t *testing.T) {
		service, productRepo, _, _ := newService()
		product := newProduct(t, 100)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		productRepo.On("CountDependents", ctx, product.ID).Return(int64(1), nil)

		err := service.HardDelete(ctx, providerActor(), product.ID)
		assert.Error(t, err)
	})

	t.Run("rejected while quotes reference it", func(t *testing.T) {
		service, productRepo, _, _ := newService()
		product := newProduct(t, 100)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		productRepo.On("CountDependents", ctx, product.ID).Return(int64(0), nil)
		productRepo.On("CountReferences", ctx, product.ID).Return(int64(3), nil)

		err := service.HardDelete(ctx, providerActor(), product.ID)
		assert.Error(t, err)
	})

	t.Run("removes product and its price overrides", func(t *testing.T) {
		service, productRepo, priceRepo, _ := newService()
		product := newProduct(t, 100)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		productRepo.On("CountDependents", ctx, product.ID).Return(int64(0), nil)
		productRepo.On("CountReferences", ctx, product.ID).Return(int64(0), nil)
		priceRepo.On("DeleteByProduct", ctx, product.ID).Return(nil)
		productRepo.On("HardDelete", ctx, product.ID).Return(nil)

		require.NoError(t, service.HardDelete(ctx, providerActor(), product.ID))
		productRepo.AssertExpectations(t)
		priceRepo.AssertExpectations(t)
	})
}

func TestProductService_GetPartnerPrice(t *testing.T) {
	ctx := context.Background()
	partnerID := uuid.New()

	partnerActor := identity.Actor{UserID: uuid.New(), Role: identity.RolePartnerUser, PartnerID: &partnerID}

	t.Run("override wins", func(t *testing.T) {
		service, productRepo, priceRepo, _ := newService()
		product := newProduct(t, 100)
		override, err := partner.NewPartnerPrice(partnerID, product.ID, valueobject.NewMoneyUSDFromFloat(85))
		require.NoError(t, err)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		priceRepo.On("FindByPartnerAndProduct", ctx, partnerID, product.ID).Return(override, nil)

		resp, err := service.GetPartnerPrice(ctx, partnerActor, nil, product.ID)
		require.NoError(t, err)
		assert.True(t, resp.Price.Equal(decimal.NewFromInt(85)))
		assert.True(t, resp.IsOverride)
	})

	t.Run("falls back to ten percent off base", func(t *testing.T) {
		service, productRepo, priceRepo, _ := newService()
		product := newProduct(t, 100)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		priceRepo.On("FindByPartnerAndProduct", ctx, partnerID, product.ID).Return(nil, shared.ErrNotFound)

		resp, err := service.GetPartnerPrice(ctx, partnerActor, nil, product.ID)
		require.NoError(t, err)
		assert.True(t, resp.Price.Equal(decimal.NewFromInt(90)))
		assert.False(t, resp.IsOverride)
	})

	t.Run("partner actor cannot read another partner's price", func(t *testing.T) {
		service, _, _, _ := newService()
		otherPartner := uuid.New()

		_, err := service.GetPartnerPrice(ctx, partnerActor, &otherPartner, uuid.New())
		assert.ErrorIs(t, err, shared.ErrPartnerScope)
	})
}

func TestProductService_SetPartnerPrice(t *testing.T) {
	ctx := context.Background()
	partnerID := uuid.New()

	t.Run("upserts override", func(t *testing.T) {
		service, productRepo, priceRepo, partnerRepo := newService()
		product := newProduct(t, 100)
		p, err := partner.NewPartner("Acme", "ACME")
		require.NoError(t, err)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		partnerRepo.On("FindByID", ctx, partnerID).Return(p, nil)
		priceRepo.On("Upsert", ctx, mock.AnythingOfType("*partner.PartnerPrice")).Return(nil)

		resp, err := service.SetPartnerPrice(ctx, providerActor(), product.ID, SetPartnerPriceRequest{
			PartnerID: partnerID,
			Price:     decimal.NewFromInt(85),
		})
		require.NoError(t, err)
		assert.True(t, resp.IsOverride)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		service, productRepo, _, partnerRepo := newService()
		product := newProduct(t, 100)
		p, err := partner.NewPartner("Acme", "ACME")
		require.NoError(t, err)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		partnerRepo.On("FindByID", ctx, partnerID).Return(p, nil)

		_, err = service.SetPartnerPrice(ctx, providerActor(), product.ID, SetPartnerPriceRequest{
			PartnerID: partnerID,
			Price:     decimal.NewFromInt(-1),
		})
		assert.Error(t, err)
	})
}
