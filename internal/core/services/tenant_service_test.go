package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ledgerline/invoicing_app/internal/apperrors"
	"github.com/ledgerline/invoicing_app/internal/core/domain"
	portssvc "github.com/ledgerline/invoicing_app/internal/core/ports/services"
	"github.com/ledgerline/invoicing_app/internal/core/services"
	"github.com/ledgerline/invoicing_app/internal/dto"
	"github.com/ledgerline/invoicing_app/internal/utils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TenantRepository ---
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindTenantByDomain(ctx context.Context, domainSlug string) (*domain.Tenant, error) {
	args := m.Called(ctx, domainSlug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *MockTenantRepository) SaveTenantWithAdmin(ctx context.Context, tenant domain.Tenant, admin domain.User) error {
	args := m.Called(ctx, tenant, admin)
	return args.Error(0)
}

func (m *MockTenantRepository) UpdateTenant(ctx context.Context, tenant domain.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) MarkTenantDeleted(ctx context.Context, tenantID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, tenantID, deletedAt, deletedBy)
	return args.Error(0)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, tenantID string, email string) (*domain.User, error) {
	args := m.Called(ctx, tenantID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsersByTenant(ctx context.Context, tenantID string, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash *string, expiryTime *time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, expiryTime)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, userID, deletedAt, deletedBy)
	return args.Error(0)
}

// --- Test Suite ---

type TenantServiceTestSuite struct {
	suite.Suite
	mockTenantRepo *MockTenantRepository
	mockUserRepo   *MockUserRepository
	service        portssvc.TenantSvcFacade
}

func (suite *TenantServiceTestSuite) SetupTest() {
	suite.mockTenantRepo = new(MockTenantRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewTenantService(suite.mockTenantRepo, suite.mockUserRepo)
}

func (suite *TenantServiceTestSuite) registerRequest() dto.RegisterRequest {
	return dto.RegisterRequest{
		TenantName:   "Acme Corp",
		TenantDomain: "acme.example.com",
		Email:        "owner@acme.example.com",
		Password:     "s3cret-enough",
		FirstName:    "Ada",
		LastName:     "Lovelace",
	}
}

func (suite *TenantServiceTestSuite) TestRegisterTenant_AtomicSingleCall() {
	ctx := context.Background()
	req := suite.registerRequest()

	var savedTenant domain.Tenant
	var savedAdmin domain.User
	suite.mockTenantRepo.On("SaveTenantWithAdmin", ctx, mock.AnythingOfType("domain.Tenant"), mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) {
			savedTenant = args.Get(1).(domain.Tenant)
			savedAdmin = args.Get(2).(domain.User)
		}).
		Return(nil).Once()

	tenant, admin, err := suite.service.RegisterTenant(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(tenant)
	suite.Require().NotNil(admin)

	suite.Equal(req.TenantName, savedTenant.Name)
	suite.Equal(req.TenantDomain, savedTenant.Domain)
	suite.Equal("USD", savedTenant.DefaultCurrency)
	suite.Equal(savedTenant.TenantID, savedAdmin.TenantID)
	suite.Equal(domain.RoleAdmin, savedAdmin.Role)
	suite.Equal(req.Email, savedAdmin.Email)
	suite.True(utils.CheckPasswordHash(req.Password, savedAdmin.PasswordHash))

	// Both rows go through the one transactional call; there is no separate
	// tenant insert that could survive a user-insert failure.
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser")
	suite.mockTenantRepo.AssertExpectations(suite.T())
}

func (suite *TenantServiceTestSuite) TestRegisterTenant_DuplicateDomainPropagates() {
	ctx := context.Background()
	req := suite.registerRequest()

	suite.mockTenantRepo.On("SaveTenantWithAdmin", ctx, mock.AnythingOfType("domain.Tenant"), mock.AnythingOfType("domain.User")).
		Return(fmt.Errorf("tenant domain %s already taken: %w", req.TenantDomain, apperrors.ErrDuplicate)).Once()

	tenant, admin, err := suite.service.RegisterTenant(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(tenant)
	suite.Nil(admin)
}

func (suite *TenantServiceTestSuite) TestRegisterTenant_RepoFailureLeavesNoTenant() {
	ctx := context.Background()
	req := suite.registerRequest()

	suite.mockTenantRepo.On("SaveTenantWithAdmin", ctx, mock.AnythingOfType("domain.Tenant"), mock.AnythingOfType("domain.User")).
		Return(fmt.Errorf("failed to save admin user: connection reset")).Once()

	tenant, admin, err := suite.service.RegisterTenant(ctx, req)

	suite.Require().Error(err)
	suite.Nil(tenant)
	suite.Nil(admin)

	// No non-transactional write runs during registration, so a
	// mid-registration failure cannot orphan a tenant row.
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser")
	suite.mockTenantRepo.AssertNumberOfCalls(suite.T(), "SaveTenantWithAdmin", 1)
}

func (suite *TenantServiceTestSuite) TestRegisterTenant_KeepsRequestedCurrency() {
	ctx := context.Background()
	req := suite.registerRequest()
	req.DefaultCurrency = "EUR"

	var savedTenant domain.Tenant
	suite.mockTenantRepo.On("SaveTenantWithAdmin", ctx, mock.AnythingOfType("domain.Tenant"), mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) {
			savedTenant = args.Get(1).(domain.Tenant)
		}).
		Return(nil).Once()

	_, _, err := suite.service.RegisterTenant(ctx, req)

	suite.Require().NoError(err)
	suite.Equal("EUR", savedTenant.DefaultCurrency)
}

func TestTenantServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TenantServiceTestSuite))
}
