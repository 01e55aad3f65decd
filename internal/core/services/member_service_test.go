package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/choralbase/choir_backend/internal/apperrors"
	"github.com/choralbase/choir_backend/internal/core/domain"
	portssvc "github.com/choralbase/choir_backend/internal/core/ports/services"
	"github.com/choralbase/choir_backend/internal/core/services"
	"github.com/choralbase/choir_backend/internal/dto"
	"github.com/choralbase/choir_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock MemberRepository (based on MemberRepositoryFacade usage) ---
type MockMemberRepository struct {
	mock.Mock
	FindMemberByIDFn    func(ctx context.Context, memberID string) (*domain.Member, error)
	FindMemberByEmailFn func(ctx context.Context, email string) (*domain.Member, error)
	FindMembersFn       func(ctx context.Context, limit, offset int) ([]domain.Member, error)
	ListActiveMembersFn func(ctx context.Context) ([]domain.Member, error)
	SaveMemberFn        func(ctx context.Context, member domain.Member) error
	UpdateMemberFn      func(ctx context.Context, member domain.Member) error
	MarkMemberDeletedFn func(ctx context.Context, memberID string, deletedAt time.Time, deletedBy string) error
}

func (m *MockMemberRepository) FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	if m.FindMemberByIDFn != nil {
		return m.FindMemberByIDFn(ctx, memberID)
	}
	args := m.Called(ctx, memberID)
	var member *domain.Member
	if args.Get(0) != nil {
		member = args.Get(0).(*domain.Member)
	}
	return member, args.Error(1)
}

func (m *MockMemberRepository) FindMemberByEmail(ctx context.Context, email string) (*domain.Member, error) {
	if m.FindMemberByEmailFn != nil {
		return m.FindMemberByEmailFn(ctx, email)
	}
	args := m.Called(ctx, email)
	var member *domain.Member
	if args.Get(0) != nil {
		member = args.Get(0).(*domain.Member)
	}
	return member, args.Error(1)
}

func (m *MockMemberRepository) FindMembers(ctx context.Context, limit, offset int) ([]domain.Member, error) {
	if m.FindMembersFn != nil {
		return m.FindMembersFn(ctx, limit, offset)
	}
	args := m.Called(ctx, limit, offset)
	var members []domain.Member
	if args.Get(0) != nil {
		members = args.Get(0).([]domain.Member)
	}
	return members, args.Error(1)
}

func (m *MockMemberRepository) ListActiveMembers(ctx context.Context) ([]domain.Member, error) {
	if m.ListActiveMembersFn != nil {
		return m.ListActiveMembersFn(ctx)
	}
	args := m.Called(ctx)
	var members []domain.Member
	if args.Get(0) != nil {
		members = args.Get(0).([]domain.Member)
	}
	return members, args.Error(1)
}

func (m *MockMemberRepository) SaveMember(ctx context.Context, member domain.Member) error {
	if m.SaveMemberFn != nil {
		return m.SaveMemberFn(ctx, member)
	}
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) UpdateMember(ctx context.Context, member domain.Member) error {
	if m.UpdateMemberFn != nil {
		return m.UpdateMemberFn(ctx, member)
	}
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) MarkMemberDeleted(ctx context.Context, memberID string, deletedAt time.Time, deletedBy string) error {
	if m.MarkMemberDeletedFn != nil {
		return m.MarkMemberDeletedFn(ctx, memberID, deletedAt, deletedBy)
	}
	args := m.Called(ctx, memberID, deletedAt, deletedBy)
	return args.Error(0)
}

// --- Test Suite ---
type MemberServiceTestSuite struct {
	suite.Suite
	mockMemberRepo *MockMemberRepository
	service        portssvc.MemberSvcFacade
}

func (suite *MemberServiceTestSuite) SetupTest() {
	suite.mockMemberRepo = new(MockMemberRepository)
	suite.service = services.NewMemberService(suite.mockMemberRepo)
}

func registrationRequest() dto.RegisterMemberRequest {
	return dto.RegisterMemberRequest{
		Name:         "Grace Achieng",
		Parish:       "St. Cecilia",
		PartYouSing:  "alto",
		PhoneNumber:  "0712345678",
		WhereYouLive: "Kawangware",
		Email:        "grace@example.com",
		Password:     "password123",
	}
}

// --- RegisterMember Tests ---
func (suite *MemberServiceTestSuite) TestRegisterMember_Success() {
	ctx := context.Background()
	req := registrationRequest()

	suite.mockMemberRepo.On("FindMemberByEmail", ctx, req.Email).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockMemberRepo.On("SaveMember", ctx, mock.MatchedBy(func(member domain.Member) bool {
		return member.Email == req.Email &&
			member.Name == req.Name &&
			member.Role == domain.RoleMember &&
			member.PasswordHash != "" &&
			member.PasswordHash != req.Password
	})).Return(nil).Once()

	member, err := suite.service.RegisterMember(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(member)
	suite.Equal(req.Name, member.Name)
	suite.Equal(req.PartYouSing, member.PartYouSing)
	suite.NotEmpty(member.MemberID)
	suite.Equal(member.MemberID, member.CreatedBy) // Self-registration
	suite.True(utils.CheckPasswordHash(req.Password, member.PasswordHash))
	suite.mockMemberRepo.AssertExpectations(suite.T())
}

func (suite *MemberServiceTestSuite) TestRegisterMember_DuplicateEmail() {
	ctx := context.Background()
	req := registrationRequest()
	existing := &domain.Member{MemberID: uuid.NewString(), Email: req.Email}

	suite.mockMemberRepo.On("FindMemberByEmail", ctx, req.Email).Return(existing, nil).Once()

	member, err := suite.service.RegisterMember(ctx, req)

	suite.Require().Error(err)
	suite.Nil(member)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockMemberRepo.AssertNotCalled(suite.T(), "SaveMember", mock.Anything, mock.Anything)
	suite.mockMemberRepo.AssertExpectations(suite.T())
}

func (suite *MemberServiceTestSuite) TestRegisterMember_SaveError() {
	ctx := context.Background()
	req := registrationRequest()
	expectedErr := assert.AnError

	suite.mockMemberRepo.On("FindMemberByEmail", ctx, req.Email).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockMemberRepo.On("SaveMember", ctx, mock.AnythingOfType("domain.Member")).Return(expectedErr).Once()

	member, err := suite.service.RegisterMember(ctx, req)

	suite.Require().Error(err)
	suite.Nil(member)
	suite.ErrorIs(err, expectedErr)
	suite.mockMemberRepo.AssertExpectations(suite.T())
}

// --- AuthenticateMember Tests ---
func (suite *MemberServiceTestSuite) TestAuthenticateMember_Success() {
	ctx := context.Background()
	password := "password123"
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)
	member := &domain.Member{MemberID: uuid.NewString(), Email: "grace@example.com", PasswordHash: hash}

	suite.mockMemberRepo.On("FindMemberByEmail", ctx, member.Email).Return(member, nil).Once()

	authenticated, err := suite.service.AuthenticateMember(ctx, member.Email, password)

	suite.Require().NoError(err)
	suite.Equal(member.MemberID, authenticated.MemberID)
	suite.mockMemberRepo.AssertExpectations(suite.T())
}

func (suite *MemberServiceTestSuite) TestAuthenticateMember_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-password")
	suite.Require().NoError(err)
	member := &domain.Member{MemberID: uuid.NewString(), Email: "grace@example.com", PasswordHash: hash}

	suite.mockMemberRepo.On("FindMemberByEmail", ctx, member.Email).Return(member, nil).Once()

	authenticated, err := suite.service.AuthenticateMember(ctx, member.Email, "wrong-password")

	suite.Require().Error(err)
	suite.Nil(authenticated)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockMemberRepo.AssertExpectations(suite.T())
}

func (suite *MemberServiceTestSuite) TestAuthenticateMember_UnknownEmail() {
	ctx := context.Background()

	suite.mockMemberRepo.On("FindMemberByEmail", ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()

	authenticated, err := suite.service.AuthenticateMember(ctx, "nobody@example.com", "password123")

	suite.Require().Error(err)
	suite.Nil(authenticated)
	// Unknown email and bad password look identical to the caller
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockMemberRepo.AssertExpectations(suite.T())
}

// --- PromoteMember Tests ---
func (suite *MemberServiceTestSuite) TestPromoteMember_Success() {
	ctx := context.Background()
	adminID := uuid.NewString()
	targetID := uuid.NewString()
	admin := &domain.Member{MemberID: adminID, Role: domain.RoleAdmin}
	target := &domain.Member{MemberID: targetID, Role: domain.RoleMember}

	suite.mockMemberRepo.On("FindMemberByID", ctx, adminID).Return(admin, nil).Once()
	suite.mockMemberRepo.On("FindMemberByID", ctx, targetID).Return(target, nil).Once()
	suite.mockMemberRepo.On("UpdateMember", ctx, mock.MatchedBy(func(member domain.Member) bool {
		return member.MemberID == targetID && member.Role == domain.RoleAdmin && member.LastUpdatedBy == adminID
	})).Return(nil).Once()

	promoted, err := suite.service.PromoteMember(ctx, targetID, adminID)

	suite.Require().NoError(err)
	suite.True(promoted.IsAdmin())
	suite.mockMemberRepo.AssertExpectations(suite.T())
}

func (suite *MemberServiceTestSuite) TestPromoteMember_ForbiddenForNonAdmin() {
	ctx := context.Background()
	requesterID := uuid.NewString()
	targetID := uuid.NewString()
	requester := &domain.Member{MemberID: requesterID, Role: domain.RoleMember}

	suite.mockMemberRepo.On("FindMemberByID", ctx, requesterID).Return(requester, nil).Once()

	promoted, err := suite.service.PromoteMember(ctx, targetID, requesterID)

	suite.Require().Error(err)
	suite.Nil(promoted)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockMemberRepo.AssertNotCalled(suite.T(), "UpdateMember", mock.Anything, mock.Anything)
	suite.mockMemberRepo.AssertExpectations(suite.T())
}

func (suite *MemberServiceTestSuite) TestPromoteMember_AlreadyAdminIsNoOp() {
	ctx := context.Background()
	adminID := uuid.NewString()
	targetID := uuid.NewString()
	admin := &domain.Member{MemberID: adminID, Role: domain.RoleAdmin}
	target := &domain.Member{MemberID: targetID, Role: domain.RoleAdmin}

	suite.mockMemberRepo.On("FindMemberByID", ctx, adminID).Return(admin, nil).Once()
	suite.mockMemberRepo.On("FindMemberByID", ctx, targetID).Return(target, nil).Once()

	promoted, err := suite.service.PromoteMember(ctx, targetID, adminID)

	suite.Require().NoError(err)
	suite.True(promoted.IsAdmin())
	suite.mockMemberRepo.AssertNotCalled(suite.T(), "UpdateMember", mock.Anything, mock.Anything)
	suite.mockMemberRepo.AssertExpectations(suite.T())
}

// --- UpdateMember Tests ---
func (suite *MemberServiceTestSuite) TestUpdateMember_SelfUpdate() {
	ctx := context.Background()
	memberID := uuid.NewString()
	member := &domain.Member{MemberID: memberID, Name: "Old Name", Role: domain.RoleMember}
	newName := "New Name"

	suite.mockMemberRepo.On("FindMemberByID", ctx, memberID).Return(member, nil).Once()
	suite.mockMemberRepo.On("UpdateMember", ctx, mock.MatchedBy(func(m domain.Member) bool {
		return m.MemberID == memberID && m.Name == newName
	})).Return(nil).Once()

	updated, err := suite.service.UpdateMember(ctx, memberID, dto.UpdateMemberRequest{Name: &newName}, memberID)

	suite.Require().NoError(err)
	suite.Equal(newName, updated.Name)
	suite.mockMemberRepo.AssertExpectations(suite.T())
}

func (suite *MemberServiceTestSuite) TestUpdateMember_OtherMemberForbidden() {
	ctx := context.Background()
	requesterID := uuid.NewString()
	targetID := uuid.NewString()
	requester := &domain.Member{MemberID: requesterID, Role: domain.RoleMember}
	newName := "New Name"

	suite.mockMemberRepo.On("FindMemberByID", ctx, requesterID).Return(requester, nil).Once()

	updated, err := suite.service.UpdateMember(ctx, targetID, dto.UpdateMemberRequest{Name: &newName}, requesterID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockMemberRepo.AssertExpectations(suite.T())
}

// --- DeleteMember Tests ---
func (suite *MemberServiceTestSuite) TestDeleteMember_Self() {
	ctx := context.Background()
	memberID := uuid.NewString()

	suite.mockMemberRepo.On("MarkMemberDeleted", ctx, memberID, mock.AnythingOfType("time.Time"), memberID).Return(nil).Once()

	err := suite.service.DeleteMember(ctx, memberID, memberID)

	suite.Require().NoError(err)
	suite.mockMemberRepo.AssertExpectations(suite.T())
}

func (suite *MemberServiceTestSuite) TestDeleteMember_NotFound() {
	ctx := context.Background()
	memberID := uuid.NewString()

	suite.mockMemberRepo.On("MarkMemberDeleted", ctx, memberID, mock.AnythingOfType("time.Time"), memberID).Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeleteMember(ctx, memberID, memberID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockMemberRepo.AssertExpectations(suite.T())
}

func TestMemberServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MemberServiceTestSuite))
}
