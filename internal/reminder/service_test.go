package reminder_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/hamzaalie/spotlight-circle-sub000/internal/notify"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/party"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/referral"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/reminder"
)

type deps struct {
	referrals  *reminder.MockReferralSource
	directory  *reminder.MockDirectory
	dispatcher *notify.MockDispatcher
}

func newService(t *testing.T) (*reminder.Service, deps) {
	t.Helper()

	ctrl := gomock.NewController(t)
	d := deps{
		referrals:  reminder.NewMockReferralSource(ctrl),
		directory:  reminder.NewMockDirectory(ctrl),
		dispatcher: notify.NewMockDispatcher(ctrl),
	}

	mailer := notify.NewMailer("SpotlightCircle", "http://localhost:3000")
	svc := reminder.NewService(d.referrals, d.directory, d.dispatcher, mailer)

	return svc, d
}

func staleReferral(age time.Duration, status referral.Status) *referral.Referral {
	return &referral.Referral{
		ID:         uuid.New(),
		SenderID:   uuid.New(),
		ReceiverID: uuid.New(),
		ClientName: "Carol Client",
		Status:     status,
		CreatedAt:  time.Now().Add(-age),
	}
}

func TestService_Scan_FiltersByStatusAndAge(t *testing.T) {
	svc, d := newService(t)

	stale := staleReferral(8*24*time.Hour, referral.StatusContacted)

	d.referrals.EXPECT().
		List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter referral.ListFilter) ([]*referral.Referral, error) {
			assert.Equal(t, referral.StaleStatuses, filter.Statuses)
			require.NotNil(t, filter.CreatedBefore)
			assert.WithinDuration(t, time.Now().UTC().Add(-7*24*time.Hour), *filter.CreatedBefore, time.Minute)
			return []*referral.Referral{stale}, nil
		})

	got, err := svc.Scan(context.Background(), 7*24*time.Hour)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, stale.ID, got[0].ID)
}

func TestService_Notify_BothSides(t *testing.T) {
	svc, d := newService(t)

	r := staleReferral(8*24*time.Hour, referral.StatusNew)

	d.directory.EXPECT().
		Get(gomock.Any(), r.SenderID).
		Return(&party.Party{ID: r.SenderID, Email: "sender@example.com"}, nil)
	d.directory.EXPECT().
		Get(gomock.Any(), r.ReceiverID).
		Return(&party.Party{ID: r.ReceiverID, Email: "receiver@example.com"}, nil)

	var recipients []string
	d.dispatcher.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		Times(2).
		DoAndReturn(func(_ context.Context, msg notify.Message) (notify.Result, error) {
			recipients = append(recipients, msg.To)
			return notify.Result{ID: uuid.NewString()}, nil
		})

	out := svc.Notify(context.Background(), []*referral.Referral{r})

	assert.Equal(t, 1, out.Scanned)
	assert.Equal(t, 2, out.Sent)
	assert.Equal(t, 0, out.Failed)
	assert.ElementsMatch(t, []string{"sender@example.com", "receiver@example.com"}, recipients)
}

func TestService_Notify_RepeatRunsSendAgain(t *testing.T) {
	svc, d := newService(t)

	r := staleReferral(9*24*time.Hour, referral.StatusContacted)

	d.directory.EXPECT().Get(gomock.Any(), gomock.Any()).
		Return(&party.Party{Email: "someone@example.com"}, nil).
		Times(4)
	d.dispatcher.EXPECT().Send(gomock.Any(), gomock.Any()).
		Return(notify.Result{ID: uuid.NewString()}, nil).
		Times(4)

	first := svc.Notify(context.Background(), []*referral.Referral{r})
	second := svc.Notify(context.Background(), []*referral.Referral{r})

	assert.Equal(t, 2, first.Sent)
	assert.Equal(t, 2, second.Sent)
}

func TestService_Notify_DispatchFailureCountsAndContinues(t *testing.T) {
	svc, d := newService(t)

	r := staleReferral(8*24*time.Hour, referral.StatusNew)

	d.directory.EXPECT().
		Get(gomock.Any(), r.SenderID).
		Return(&party.Party{ID: r.SenderID, Email: "sender@example.com"}, nil)
	d.directory.EXPECT().
		Get(gomock.Any(), r.ReceiverID).
		Return(&party.Party{ID: r.ReceiverID, Email: "receiver@example.com"}, nil)

	gomock.InOrder(
		d.dispatcher.EXPECT().Send(gomock.Any(), gomock.Any()).
			Return(notify.Result{}, errors.New("smtp unavailable")),
		d.dispatcher.EXPECT().Send(gomock.Any(), gomock.Any()).
			Return(notify.Result{ID: uuid.NewString()}, nil),
	)

	out := svc.Notify(context.Background(), []*referral.Referral{r})

	assert.Equal(t, 1, out.Sent)
	assert.Equal(t, 1, out.Failed)
}

func TestService_Run(t *testing.T) {
	svc, d := newService(t)

	d.referrals.EXPECT().
		List(gomock.Any(), gomock.Any()).
		Return(nil, nil)

	out, err := svc.Run(context.Background(), 7*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, reminder.Outcome{}, out)
}
