package sender

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainsender "github.com/alanyang/leadflow/internal/domain/sender"
	sendersvc "github.com/alanyang/leadflow/internal/service/sender"
)

func Register(rg *gin.RouterGroup, svc *sendersvc.Service) {
	rg.POST("/", registerSender(svc))
	rg.GET("/:id", getSender(svc))
}

type registerSenderReq struct {
	Email      string `json:"email" binding:"required,email"`
	Name       string `json:"name"`
	DailyQuota int    `json:"daily_quota" binding:"min=0"`
}

func registerSender(svc *sendersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerSenderReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		snd, err := svc.Register(c.Request.Context(), req.Email, req.Name, req.DailyQuota)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, snd)
	}
}

func getSender(svc *sendersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		snd, err := svc.Get(c.Request.Context(), id)
		if errors.Is(err, domainsender.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, snd)
	}
}
