package campaign

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domaincampaign "github.com/alanyang/leadflow/internal/domain/campaign"
	"github.com/alanyang/leadflow/internal/domain/lead"
	campaignsvc "github.com/alanyang/leadflow/internal/service/campaign"
	"github.com/alanyang/leadflow/internal/service/distribution"
)

func Register(rg *gin.RouterGroup, svc *campaignsvc.Service, dist *distribution.Service) {
	rg.POST("/", createCampaign(svc))
	rg.GET("/", listCampaigns(svc))
	rg.GET("/:id", getCampaign(svc))
	rg.PATCH("/:id", updateCampaignStatus(svc))
	rg.POST("/:id/senders", addSender(svc))
	rg.GET("/:id/senders/status", senderWorkStatus(dist))
	rg.POST("/:id/leads", enrolLeads(svc))
	rg.GET("/:id/leads", listLeads(svc))
	rg.POST("/:id/leads/:leadId/work", markLeadWorked(dist))
	rg.POST("/:id/assign", assignLeads(dist))
	rg.POST("/:id/process", processCampaign(svc))
}

// statusFor maps an engine result code onto the HTTP status returned with it.
func statusFor(code distribution.Code) int {
	switch code {
	case distribution.CodeNoSenders:
		return http.StatusConflict
	case distribution.CodeInvalidOutcome:
		return http.StatusBadRequest
	case distribution.CodePersistenceFailure:
		return http.StatusInternalServerError
	default:
		return http.StatusOK
	}
}

func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + param})
		return uuid.Nil, false
	}
	return id, true
}

func notFoundOr500(c *gin.Context, err error) {
	if errors.Is(err, domaincampaign.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

type createCampaignReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	LeadsPerDay *int   `json:"leads_per_day" binding:"omitempty,min=1"`
	// WindowStart and WindowEnd are "HH:MM" in UTC.
	WindowStart string `json:"window_start" binding:"omitempty,datetime=15:04"`
	WindowEnd   string `json:"window_end" binding:"omitempty,datetime=15:04"`
}

func clockOffset(v string) *time.Duration {
	if v == "" {
		return nil
	}
	t, err := time.Parse("15:04", v)
	if err != nil {
		return nil
	}
	d := time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute
	return &d
}

func createCampaign(svc *campaignsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createCampaignReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		camp := domaincampaign.New(req.Name)
		camp.Description = req.Description
		camp.LeadsPerDay = req.LeadsPerDay
		camp.WindowStart = clockOffset(req.WindowStart)
		camp.WindowEnd = clockOffset(req.WindowEnd)

		created, err := svc.Create(c.Request.Context(), camp)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func listCampaigns(svc *campaignsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var filters domaincampaign.ListFilters
		if v := c.Query("status"); v != "" {
			s := domaincampaign.Status(v)
			filters.Status = &s
		}

		cs, err := svc.List(c.Request.Context(), filters)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if cs == nil {
			cs = []domaincampaign.Campaign{}
		}
		c.JSON(http.StatusOK, cs)
	}
}

func getCampaign(svc *campaignsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}

		camp, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			notFoundOr500(c, err)
			return
		}
		c.JSON(http.StatusOK, camp)
	}
}

type updateStatusReq struct {
	Status domaincampaign.Status `json:"status" binding:"required,campaign_status"`
}

func updateCampaignStatus(svc *campaignsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}

		var req updateStatusReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := svc.SetStatus(c.Request.Context(), id, req.Status); err != nil {
			notFoundOr500(c, err)
			return
		}

		camp, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, camp)
	}
}

type addSenderReq struct {
	SenderID uuid.UUID `json:"sender_id" binding:"required"`
}

func addSender(svc *campaignsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}

		var req addSenderReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := svc.AddSender(c.Request.Context(), id, req.SenderID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func senderWorkStatus(dist *distribution.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}

		rows, err := dist.GetCampaignSenderWorkStatus(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if rows == nil {
			rows = []distribution.SenderWorkStatus{}
		}
		c.JSON(http.StatusOK, rows)
	}
}

type leadIDsReq struct {
	LeadIDs []uuid.UUID `json:"lead_ids" binding:"required"`
}

func enrolLeads(svc *campaignsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}

		var req leadIDsReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		n, err := svc.EnrolLeads(c.Request.Context(), id, req.LeadIDs)
		if err != nil {
			notFoundOr500(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"added": n})
	}
}

func listLeads(svc *campaignsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}

		filters := lead.ListFilters{CampaignID: id}
		if v := c.Query("status"); v != "" {
			s := lead.Status(v)
			if !s.IsValid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
				return
			}
			filters.Status = &s
		}
		if v := c.Query("sender_id"); v != "" {
			senderID, err := uuid.Parse(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sender_id"})
				return
			}
			filters.SenderID = &senderID
		}
		if v := c.Query("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
				return
			}
			filters.Limit = n
		}
		filters.OldestFirst = c.Query("order") == "oldest"

		leads, err := svc.ListLeads(c.Request.Context(), filters)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if leads == nil {
			leads = []lead.CampaignLead{}
		}
		c.JSON(http.StatusOK, leads)
	}
}

type markWorkedReq struct {
	SenderID     uuid.UUID   `json:"sender_id" binding:"required"`
	Status       lead.Status `json:"status" binding:"required,lead_outcome"`
	EmailSent    bool        `json:"email_sent"`
	EmailOpened  bool        `json:"email_opened"`
	EmailClicked bool        `json:"email_clicked"`
	EmailReplied bool        `json:"email_replied"`
	Notes        string      `json:"notes" binding:"max=2000"`
}

func markLeadWorked(dist *distribution.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		leadID, ok := parseID(c, "leadId")
		if !ok {
			return
		}

		var req markWorkedReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		res := dist.MarkLeadWorkedAndGetNext(c.Request.Context(), id, leadID, req.SenderID, lead.Outcome{
			Status:       req.Status,
			EmailSent:    req.EmailSent,
			EmailOpened:  req.EmailOpened,
			EmailClicked: req.EmailClicked,
			EmailReplied: req.EmailReplied,
			Notes:        req.Notes,
		})
		c.JSON(statusFor(res.Code), res)
	}
}

func assignLeads(dist *distribution.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}

		var req leadIDsReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		res := dist.AssignLeadsToCampaignSenders(c.Request.Context(), id, req.LeadIDs)
		c.JSON(statusFor(res.Code), res)
	}
}

func processCampaign(svc *campaignsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}

		run, err := svc.ProcessCampaign(c.Request.Context(), id, time.Now().UTC())
		switch {
		case errors.Is(err, campaignsvc.ErrNotActive):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case err != nil:
			notFoundOr500(c, err)
		default:
			c.JSON(http.StatusOK, run)
		}
	}
}
