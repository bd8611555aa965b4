// Package allocation deals campaign leads out to senders.
//
// Both operations are pure: they read a snapshot supplied by the caller and
// return values. Persisting the result and re-validating capacity against live
// records are the caller's job.
package allocation

import (
	"github.com/google/uuid"

	"github.com/alanyang/leadflow/internal/domain/sender"
)

// SenderCapacity is a sender annotated with how many more leads it may take
// today. Defaults for missing quota fields have already been applied.
type SenderCapacity struct {
	SenderID  uuid.UUID `json:"sender_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Available int       `json:"available_capacity"`
}

// Assignment groups the leads dealt to one sender in one pass.
type Assignment struct {
	SenderID    uuid.UUID   `json:"sender_id"`
	SenderEmail string      `json:"sender_email"`
	LeadIDs     []uuid.UUID `json:"lead_ids"`
}

// CapacityOf reports a single sender's remaining capacity, exhausted or not.
func CapacityOf(s sender.Sender) SenderCapacity {
	return SenderCapacity{
		SenderID:  s.ID,
		Email:     s.Email,
		Name:      s.Name,
		Available: s.Capacity(),
	}
}

// ResolveCapacity annotates senders with their remaining capacity and drops
// the exhausted ones. Input order is preserved.
func ResolveCapacity(senders []sender.Sender) []SenderCapacity {
	out := make([]SenderCapacity, 0, len(senders))
	for _, s := range senders {
		c := CapacityOf(s)
		if c.Available > 0 {
			out = append(out, c)
		}
	}
	return out
}

// Placement is one lead of a pass together with the sender it was dealt to.
type Placement struct {
	LeadID   uuid.UUID
	SenderID uuid.UUID
}

// Deal runs one round-robin pass and returns the placements in input order.
// The i-th lead is offered to sender i mod N first, then to the following
// senders in cyclic order. The pass halts at the first lead no sender has room
// for, so the placed leads are always a prefix of leadIDs.
func Deal(leadIDs []uuid.UUID, senders []SenderCapacity) []Placement {
	n := len(senders)
	if n == 0 || len(leadIDs) == 0 {
		return nil
	}

	used := make([]int, n)
	out := make([]Placement, 0, min(len(leadIDs), totalCapacity(senders)))
	for i, id := range leadIDs {
		target := -1
		for k := 0; k < n; k++ {
			if j := (i + k) % n; used[j] < max(0, senders[j].Available) {
				target = j
				break
			}
		}
		if target < 0 {
			break
		}
		used[target]++
		out = append(out, Placement{LeadID: id, SenderID: senders[target].SenderID})
	}
	return out
}

// Assign deals leadIDs across senders and groups the result per sender, in
// sender order. Senders that received no lead are omitted.
func Assign(leadIDs []uuid.UUID, senders []SenderCapacity) []Assignment {
	return Group(Deal(leadIDs, senders), senders)
}

// Group collects placements into per-sender assignments. Each assignment keeps
// the relative order its leads were placed in.
func Group(placements []Placement, senders []SenderCapacity) []Assignment {
	if len(placements) == 0 {
		return nil
	}
	byID := make(map[uuid.UUID][]uuid.UUID, len(senders))
	for _, p := range placements {
		byID[p.SenderID] = append(byID[p.SenderID], p.LeadID)
	}

	var out []Assignment
	seen := make(map[uuid.UUID]bool, len(senders))
	for _, s := range senders {
		leads := byID[s.SenderID]
		if len(leads) == 0 || seen[s.SenderID] {
			continue
		}
		seen[s.SenderID] = true
		out = append(out, Assignment{
			SenderID:    s.SenderID,
			SenderEmail: s.Email,
			LeadIDs:     leads,
		})
	}
	return out
}

// Assigned counts the leads placed by a pass.
func Assigned(assignments []Assignment) int {
	total := 0
	for _, a := range assignments {
		total += len(a.LeadIDs)
	}
	return total
}

func totalCapacity(senders []SenderCapacity) int {
	total := 0
	for _, s := range senders {
		total += max(0, s.Available)
	}
	return total
}
