package distribution_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"

	"github.com/alanyang/leadflow/internal/adapter/memory"
	"github.com/alanyang/leadflow/internal/domain/event"
	"github.com/alanyang/leadflow/internal/domain/sender"
	"github.com/alanyang/leadflow/internal/mocks"
	"github.com/alanyang/leadflow/internal/service/distribution"
)

type svcDeps struct {
	senders   *mocks.MockSenderRepository
	leads     *mocks.MockLeadRepository
	campaigns *mocks.MockCampaignRepository
	bus       *mocks.MockEventBus
	notifier  *mocks.MockSenderNotifier
	locker    *mocks.MockAdvisoryLocker
	cache     *memory.Cache
}

func newSvc(t *testing.T) (*distribution.Service, svcDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)
	d := svcDeps{
		senders:   mocks.NewMockSenderRepository(ctrl),
		leads:     mocks.NewMockLeadRepository(ctrl),
		campaigns: mocks.NewMockCampaignRepository(ctrl),
		bus:       mocks.NewMockEventBus(ctrl),
		notifier:  mocks.NewMockSenderNotifier(ctrl),
		locker:    mocks.NewMockAdvisoryLocker(ctrl),
		cache:     memory.NewCache(),
	}
	svc := distribution.NewService(d.senders, d.leads, d.campaigns, d.bus, d.notifier, d.locker, d.cache, time.Minute)
	return svc, d
}

// syncLocker runs the WithLock callback inline.
func syncLocker(d svcDeps) {
	d.locker.EXPECT().WithLock(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ int64, fn func(context.Context) error) error {
			return fn(ctx)
		}).AnyTimes()
}

// allowSideEffects accepts any event publication and session notification.
func allowSideEffects(d svcDeps) {
	d.bus.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	d.notifier.EXPECT().NotifySender(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func newSender(quota, sent int) sender.Sender {
	s := sender.New(uuid.New().String()[:8]+"@example.com", "Sender", quota)
	s.EmailsSentToday = &sent
	return s
}

func newLeadIDs(n int) []uuid.UUID {
	out := make([]uuid.UUID, n)
	for i := range out {
		out[i] = uuid.New()
	}
	return out
}

func matchEventType(et event.Type) gomock.Matcher {
	return eventTypeMatcher{et}
}

type eventTypeMatcher struct{ want event.Type }

func (m eventTypeMatcher) Matches(x any) bool {
	e, ok := x.(event.Event)
	return ok && e.Type == m.want
}
func (m eventTypeMatcher) String() string { return "event.Type=" + string(m.want) }
