package transport

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/alanyang/leadflow/internal/domain/campaign"
	"github.com/alanyang/leadflow/internal/domain/lead"
)

// RegisterValidators adds the domain tags to gin's binding validator:
// lead_outcome accepts the terminal work statuses and campaign_status the
// campaign lifecycle states.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding engine %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation("lead_outcome", func(fl validator.FieldLevel) bool {
		return lead.Status(fl.Field().String()).IsWorkOutcome()
	}); err != nil {
		return fmt.Errorf("register lead_outcome: %w", err)
	}
	if err := v.RegisterValidation("campaign_status", func(fl validator.FieldLevel) bool {
		switch campaign.Status(fl.Field().String()) {
		case campaign.StatusDraft, campaign.StatusActive, campaign.StatusPaused, campaign.StatusCompleted:
			return true
		}
		return false
	}); err != nil {
		return fmt.Errorf("register campaign_status: %w", err)
	}
	return nil
}
