//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"coupon-service/internal/handler/api"
	resdto "coupon-service/internal/handler/dto/response"
	"coupon-service/internal/infra/repository"
	"coupon-service/internal/infra/stream"
	"coupon-service/internal/pkg/errs"
	"coupon-service/internal/usecase/queries"
	"coupon-service/tests/common/httptest"
	commandsmock "coupon-service/tests/mock/commands"
	queriesmock "coupon-service/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type stubTopicInspector struct {
	info []stream.PartitionInfo
	err  error
}

func (s *stubTopicInspector) TopicInfo(string) ([]stream.PartitionInfo, error) {
	return s.info, s.err
}

type AdminHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockCampaignCommands
	mockQueries  *queriesmock.MockCampaignQueries
	topics       *stubTopicInspector
	handler      *api.AdminHandler
}

func (s *AdminHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockCampaignCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockCampaignQueries(s.mockCtrl)
	s.topics = &stubTopicInspector{}
	s.handler = api.NewAdminHandler(s.mockCommands, s.mockQueries, s.topics)

	s.router.POST("/admin/campaigns", s.handler.CreateCampaign)
	s.router.GET("/admin/campaigns", s.handler.ListCampaigns)
	s.router.GET("/admin/campaigns/:code", s.handler.GetCampaign)
	s.router.GET("/admin/topics/:name", s.handler.TopicInfo)
}

func (s *AdminHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAdminHandlerSuite(t *testing.T) {
	suite.Run(t, new(AdminHandlerTestSuite))
}

func campaignRequestBody(now time.Time) map[string]any {
	return map[string]any{
		"name":             "spring sale",
		"total_quantity":   100,
		"expiration_date":  now.AddDate(0, 1, 0).Format(time.RFC3339),
		"issue_start_time": now.Format(time.RFC3339),
		"issue_end_time":   now.Add(24 * time.Hour).Format(time.RFC3339),
	}
}

func campaignView(code string) *queries.CampaignView {
	now := time.Now().UTC().Truncate(time.Second)
	return &queries.CampaignView{
		ID:                uuid.New(),
		Code:              code,
		Name:              "spring sale",
		TotalQuantity:     100,
		RemainingQuantity: 42,
		ExpirationDate:    now.AddDate(0, 1, 0),
		IssueStartTime:    now,
		IssueEndTime:      now.Add(24 * time.Hour),
	}
}

// ================================================================================
// TestCreateCampaign
// ================================================================================

func (s *AdminHandlerTestSuite) TestCreateCampaign() {
	url := "/admin/campaigns"
	now := time.Now().UTC().Truncate(time.Second)
	reqBody := campaignRequestBody(now)

	s.Run("success: returns 201 Created with the generated code", func() {
		row := &repository.CampaignRow{
			ID:                uuid.New(),
			Code:              "ABCD-EFGH-IJKL",
			Name:              "spring sale",
			TotalQuantity:     100,
			RemainingQuantity: 100,
			ExpirationDate:    now.AddDate(0, 1, 0),
			IssueStartTime:    now,
			IssueEndTime:      now.Add(24 * time.Hour),
		}
		s.mockCommands.EXPECT().CreateCampaign(gomock.Any(), gomock.Any()).
			Return(row, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)

		var response resdto.CampaignResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal("ABCD-EFGH-IJKL", response.Code)
		s.Equal(int32(100), response.RemainingQuantity)
	})

	s.Run("error: 400 Bad Request on missing fields", func() {
		for _, field := range []string{"name", "total_quantity", "expiration_date", "issue_start_time", "issue_end_time"} {
			s.Run("missing "+field, func() {
				body := campaignRequestBody(now)
				delete(body, field)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "duplicate campaign",
				commandsError:  errs.ErrCampaignExists,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "already exists",
			},
			{
				name:           "validation failure",
				commandsError:  errs.ErrCampaignValidation,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid campaign parameters",
			},
			{
				name:           "validation failure marked onto its cause",
				commandsError:  errs.Mark(errors.New("issue window end precedes start"), errs.ErrCampaignValidation),
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid campaign parameters",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateCampaign(gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestListCampaigns
// ================================================================================

func (s *AdminHandlerTestSuite) TestListCampaigns() {
	url := "/admin/campaigns"

	s.Run("success: returns all campaigns", func() {
		views := []*queries.CampaignView{
			campaignView("AAAA-BBBB-CCCC"),
			campaignView("DDDD-EEEE-FFFF"),
		}
		s.mockQueries.EXPECT().List(gomock.Any()).Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil)

		var response map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		campaigns, ok := response["campaigns"].([]any)
		s.True(ok)
		s.Len(campaigns, 2)
	})

	s.Run("error: 500 Internal Server Error on query failure", func() {
		s.mockQueries.EXPECT().List(gomock.Any()).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal error")
	})
}

// ================================================================================
// TestGetCampaign
// ================================================================================

func (s *AdminHandlerTestSuite) TestGetCampaign() {
	s.Run("success: returns 200 OK with the campaign", func() {
		view := campaignView("AAAA-BBBB-CCCC")
		s.mockQueries.EXPECT().GetByCode(gomock.Any(), "AAAA-BBBB-CCCC").
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/campaigns/AAAA-BBBB-CCCC", nil)

		var response resdto.CampaignResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(view.ID, response.ID)
		s.Equal(int32(42), response.RemainingQuantity)
	})

	s.Run("error: 404 Not Found for unknown code", func() {
		s.mockQueries.EXPECT().GetByCode(gomock.Any(), "ZZZZ-ZZZZ-ZZZZ").
			Return(nil, errs.ErrCampaignNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/campaigns/ZZZZ-ZZZZ-ZZZZ", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "not found")
	})
}

// ================================================================================
// TestTopicInfo
// ================================================================================

func (s *AdminHandlerTestSuite) TestTopicInfo() {
	url := "/admin/topics/issuance-requests"

	s.Run("success: returns partition layout", func() {
		s.topics.info = []stream.PartitionInfo{
			{Partition: 0, Leader: "broker-1", Replicas: []string{"broker-1"}},
			{Partition: 1, Leader: "broker-2", Replicas: []string{"broker-2"}},
			{Partition: 2, Leader: "broker-1", Replicas: []string{"broker-1"}},
		}
		s.topics.err = nil

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil)

		var response map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		partitions, ok := response["partitions"].([]any)
		s.True(ok)
		s.Len(partitions, 3)
	})

	s.Run("error: 500 Internal Server Error when the broker is unreachable", func() {
		s.topics.info = nil
		s.topics.err = errors.New("dial tcp: connection refused")

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Failed to describe topic")
	})
}
