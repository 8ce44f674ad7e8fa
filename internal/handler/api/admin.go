package api

import (
	"net/http"

	reqdto "coupon-service/internal/handler/dto/request"
	resdto "coupon-service/internal/handler/dto/response"
	"coupon-service/internal/handler/httperr"
	"coupon-service/internal/infra/stream"
	"coupon-service/internal/usecase/commands"
	"coupon-service/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// TopicInspector exposes queue partition layout for operators.
type TopicInspector interface {
	TopicInfo(topic string) ([]stream.PartitionInfo, error)
}

type AdminHandler struct {
	cmds   commands.CampaignCommands
	q      queries.CampaignQueries
	topics TopicInspector
}

func NewAdminHandler(cmds commands.CampaignCommands, q queries.CampaignQueries, topics TopicInspector) *AdminHandler {
	return &AdminHandler{cmds: cmds, q: q, topics: topics}
}

// @Summary Create campaign
// @Description Create a new coupon campaign with a generated code
// @Tags admin
// @Accept json
// @Produce json
// @Param request body reqdto.CreateCampaignRequest true "Create campaign request"
// @Success 201 {object} resdto.CampaignResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/campaigns [post]
func (h *AdminHandler) CreateCampaign(c *gin.Context) {
	var req reqdto.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	row, err := h.cmds.CreateCampaign(c.Request.Context(), req.ToInput())
	if err != nil {
		abortDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromCampaignRow(row))
}

// @Summary List campaigns
// @Description List all campaigns, most recent issuance window first
// @Tags admin
// @Produce json
// @Success 200 {array} resdto.CampaignResponse
// @Failure 500 {object} map[string]string
// @Router /admin/campaigns [get]
func (h *AdminHandler) ListCampaigns(c *gin.Context) {
	views, err := h.q.List(c.Request.Context())
	if err != nil {
		abortDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"campaigns": resdto.FromCampaignViews(views)})
}

// @Summary Get campaign
// @Description Get one campaign by code
// @Tags admin
// @Produce json
// @Param code path string true "Campaign code"
// @Success 200 {object} resdto.CampaignResponse
// @Failure 404 {object} map[string]string
// @Router /admin/campaigns/{code} [get]
func (h *AdminHandler) GetCampaign(c *gin.Context) {
	view, err := h.q.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		abortDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCampaignView(view))
}

// @Summary Topic info
// @Description Describe the partition layout of a pipeline topic
// @Tags admin
// @Produce json
// @Param name path string true "Topic name"
// @Success 200 {array} stream.PartitionInfo
// @Failure 500 {object} map[string]string
// @Router /admin/topics/{name} [get]
func (h *AdminHandler) TopicInfo(c *gin.Context) {
	info, err := h.topics.TopicInfo(c.Param("name"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to describe topic", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"partitions": info})
}
