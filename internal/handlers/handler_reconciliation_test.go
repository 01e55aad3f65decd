package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/choralbase/choir_backend/internal/apperrors"
	"github.com/choralbase/choir_backend/internal/core/domain"
	portssvc "github.com/choralbase/choir_backend/internal/core/ports/services"
	"github.com/choralbase/choir_backend/internal/dto"
	"github.com/choralbase/choir_backend/internal/handlers"
	"github.com/choralbase/choir_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ReconciliationService ---
type MockReconciliationService struct {
	mock.Mock
}

func (m *MockReconciliationService) MemberView(ctx context.Context, memberID string) (*domain.MemberReconciliation, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MemberReconciliation), args.Error(1)
}

func (m *MockReconciliationService) CampaignView(ctx context.Context) (*domain.CampaignReconciliation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CampaignReconciliation), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.ReconciliationService = (*MockReconciliationService)(nil)

// --- Test Suite ---
type ReconciliationHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockReconciliationService
	jwtSecret   string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *ReconciliationHandlerTestSuite) generateTestToken(memberID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "choir-test",
		Subject:   memberID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signedToken
}

func (suite *ReconciliationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	// Use the actual AuthMiddleware
	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockService = new(MockReconciliationService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterReconciliationRoutes(v1, suite.mockService)
}

// --- Test Cases ---

func (suite *ReconciliationHandlerTestSuite) TestGetMemberView_Success() {
	memberID := uuid.NewString()
	requestingMemberID := uuid.NewString()
	paidOn := time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC)

	expectedView := &domain.MemberReconciliation{
		Member: domain.Member{MemberID: memberID, Name: "Grace Achieng", Role: domain.RoleMember},
		Contributions: []domain.ContributionBalance{
			{
				ContributionID: uuid.NewString(),
				Title:          "Harambee Fund",
				TargetAmount:   decimal.NewFromInt(1000),
				PaidAmount:     decimal.NewFromInt(500),
				Remaining:      decimal.NewFromInt(500),
				LastPaidOn:     &paidOn,
				Status:         domain.StatusPending,
			},
		},
		TotalOwed: decimal.NewFromInt(500),
	}

	suite.mockService.On("MemberView", mock.Anything, memberID).Return(expectedView, nil).Once()

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/reconciliation/members/%s", memberID), nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(requestingMemberID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.MemberReconciliationResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	suite.Require().NoError(err)
	suite.Equal(memberID, resp.Member.MemberID)
	suite.Require().Len(resp.Contributions, 1)
	suite.True(resp.Contributions[0].PaidAmount.Equal(decimal.NewFromInt(500)))
	suite.True(resp.TotalOwed.Equal(decimal.NewFromInt(500)))
	suite.Equal(string(domain.StatusPending), resp.Contributions[0].Status)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ReconciliationHandlerTestSuite) TestGetMemberView_NotFound() {
	memberID := uuid.NewString()

	suite.mockService.On("MemberView", mock.Anything, memberID).Return(nil, apperrors.ErrNotFound).Once()

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/reconciliation/members/%s", memberID), nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(uuid.NewString()))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ReconciliationHandlerTestSuite) TestGetMemberView_Unauthorized() {
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/reconciliation/members/%s", uuid.NewString()), nil)
	// No Authorization header
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "MemberView", mock.Anything, mock.Anything)
}

func (suite *ReconciliationHandlerTestSuite) TestGetCampaignView_Success() {
	grace := domain.Member{MemberID: uuid.NewString(), Name: "Grace Achieng"}
	contributionID := uuid.NewString()

	expectedView := &domain.CampaignReconciliation{
		Members: []domain.MemberCampaignRow{
			{
				Member: grace,
				Contributions: []domain.CampaignBreakdown{
					{
						ContributionBalance: domain.ContributionBalance{
							ContributionID: contributionID,
							Title:          "Harambee Fund",
							TargetAmount:   decimal.NewFromInt(1000),
							PaidAmount:     decimal.NewFromInt(1000),
							Remaining:      decimal.Zero,
							Status:         domain.StatusPaid,
						},
						PaidMembers: []domain.PayerEntry{
							{MemberID: grace.MemberID, Name: grace.Name, Amount: decimal.NewFromInt(1000)},
						},
					},
				},
				TotalOwed: decimal.Zero,
			},
		},
	}

	suite.mockService.On("CampaignView", mock.Anything).Return(expectedView, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reconciliation/campaigns", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(uuid.NewString()))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.CampaignReconciliationResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	suite.Require().NoError(err)
	suite.Require().Len(resp.Members, 1)
	suite.Equal(grace.MemberID, resp.Members[0].Member.MemberID)
	suite.Require().Len(resp.Members[0].Contributions, 1)
	breakdown := resp.Members[0].Contributions[0]
	suite.Equal(string(domain.StatusPaid), breakdown.Status)
	suite.Require().Len(breakdown.PaidMembers, 1)
	suite.True(breakdown.PaidMembers[0].Amount.Equal(decimal.NewFromInt(1000)))
	suite.Empty(breakdown.UnpaidMembers)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ReconciliationHandlerTestSuite) TestGetCampaignView_ServiceError() {
	suite.mockService.On("CampaignView", mock.Anything).Return(nil, fmt.Errorf("database unavailable")).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reconciliation/campaigns", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(uuid.NewString()))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func TestReconciliationHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ReconciliationHandlerTestSuite))
}
