package event

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeLeadAssigned       Type = "lead_assigned"
	TypeLeadWorked         Type = "lead_worked"
	TypeSenderQuotaReached Type = "sender_quota_reached"
	TypeSenderQuotaReset   Type = "sender_quota_reset"
	TypeCampaignProcessed  Type = "campaign_processed"
)

// Channel is a domain-scoped Postgres NOTIFY channel.
// All event types within a domain share one LISTEN connection.
type Channel string

const (
	ChannelLead     Channel = "lead"
	ChannelSender   Channel = "sender"
	ChannelCampaign Channel = "campaign"
)

var typeToChannel = map[Type]Channel{
	TypeLeadAssigned:       ChannelLead,
	TypeLeadWorked:         ChannelLead,
	TypeSenderQuotaReached: ChannelSender,
	TypeSenderQuotaReset:   ChannelSender,
	TypeCampaignProcessed:  ChannelCampaign,
}

func ChannelFor(t Type) Channel { return typeToChannel[t] }

// Channels lists every channel an event can be published on.
func Channels() []Channel {
	return []Channel{ChannelLead, ChannelSender, ChannelCampaign}
}

// Event carries identifiers only. Subscribers that need state read it from
// the repositories. CampaignID is uuid.Nil for events outside a campaign.
type Event struct {
	Type       Type      `json:"type"`
	EntityID   uuid.UUID `json:"entity_id"`
	CampaignID uuid.UUID `json:"campaign_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

func New(eventType Type, entityID, campaignID uuid.UUID) Event {
	return Event{
		Type:       eventType,
		EntityID:   entityID,
		CampaignID: campaignID,
		Timestamp:  time.Now().UTC(),
	}
}
