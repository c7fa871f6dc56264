package referral_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/hamzaalie/spotlight-circle-sub000/internal/identity"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/notify"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/party"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/referral"
)

type deps struct {
	repo       *referral.MockRepository
	stx        *referral.MockSendTx
	directory  *referral.MockDirectory
	dispatcher *notify.MockDispatcher
}

func newService(t *testing.T) (*referral.Service, deps) {
	t.Helper()

	ctrl := gomock.NewController(t)
	d := deps{
		repo:       referral.NewMockRepository(ctrl),
		stx:        referral.NewMockSendTx(ctrl),
		directory:  referral.NewMockDirectory(ctrl),
		dispatcher: notify.NewMockDispatcher(ctrl),
	}

	mailer := notify.NewMailer("SpotlightCircle", "http://localhost:3000")
	svc := referral.NewService(d.repo, d.directory, d.dispatcher, mailer)

	return svc, d
}

func testClient() referral.Client {
	return referral.Client{
		Name:  "Carol Client",
		Email: "carol@client.example",
		Phone: "555-0101",
		Notes: "Needs estate planning advice",
	}
}

func TestService_Send_FanOut(t *testing.T) {
	svc, d := newService(t)

	sender := identity.Actor{ID: uuid.New(), Email: "alice@example.com"}
	bob := uuid.New()
	carl := uuid.New()

	d.repo.EXPECT().
		BeginSend(gomock.Any(), sender.ID, []uuid.UUID{bob, carl}).
		Return(d.stx, nil)
	d.stx.EXPECT().MissingPartners(gomock.Any()).Return(nil, nil)
	d.stx.EXPECT().
		CreateReferrals(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, refs []*referral.Referral) error {
			for _, r := range refs {
				r.ID = uuid.New()
			}
			return nil
		})
	d.stx.EXPECT().Commit().Return(nil)
	d.stx.EXPECT().Rollback().Return(nil)

	d.directory.EXPECT().
		Get(gomock.Any(), sender.ID).
		Return(&party.Party{ID: sender.ID, Email: sender.Email}, nil)
	d.directory.EXPECT().
		Get(gomock.Any(), bob).
		Return(&party.Party{ID: bob, Email: "bob@example.com"}, nil)
	d.directory.EXPECT().
		Get(gomock.Any(), carl).
		Return(&party.Party{ID: carl, Email: "carl@example.com"}, nil)
	d.dispatcher.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		Return(notify.Result{}, nil).
		Times(2)

	refs, err := svc.Send(context.Background(), sender, testClient(), []uuid.UUID{bob, carl})
	require.NoError(t, err)
	require.Len(t, refs, 2)

	assert.NotEqual(t, refs[0].ID, refs[1].ID)

	for _, r := range refs {
		assert.Equal(t, sender.ID, r.SenderID)
		assert.Equal(t, "Carol Client", r.ClientName)
		assert.Equal(t, "carol@client.example", r.ClientEmail)
		assert.Equal(t, referral.StatusNew, r.Status)
	}

	assert.Equal(t, bob, refs[0].ReceiverID)
	assert.Equal(t, carl, refs[1].ReceiverID)
}

func TestService_Send_AllOrNothing(t *testing.T) {
	svc, d := newService(t)

	sender := identity.Actor{ID: uuid.New(), Email: "alice@example.com"}
	bob := uuid.New()
	stranger := uuid.New()
	dan := uuid.New()

	d.repo.EXPECT().
		BeginSend(gomock.Any(), sender.ID, []uuid.UUID{bob, stranger, dan}).
		Return(d.stx, nil)
	d.stx.EXPECT().MissingPartners(gomock.Any()).Return([]uuid.UUID{stranger}, nil)
	d.stx.EXPECT().Rollback().Return(nil)

	// CreateReferrals and Commit are never reached: one bad receiver fails
	// the whole fan-out and zero rows are written.
	refs, err := svc.Send(context.Background(), sender, testClient(), []uuid.UUID{bob, stranger, dan})
	assert.ErrorIs(t, err, referral.ErrNotPartnered)
	assert.Contains(t, err.Error(), stranger.String())
	assert.Nil(t, refs)
}

func TestService_Send_Validation(t *testing.T) {
	type testCase struct {
		name      string
		client    referral.Client
		receivers func(sender uuid.UUID) []uuid.UUID
		wantErr   error
	}

	partner := uuid.New()

	tests := []testCase{
		{
			name:      "MissingName",
			client:    referral.Client{Email: "carol@client.example"},
			receivers: func(uuid.UUID) []uuid.UUID { return []uuid.UUID{partner} },
			wantErr:   referral.ErrMissingClient,
		},
		{
			name:      "MissingEmail",
			client:    referral.Client{Name: "Carol Client"},
			receivers: func(uuid.UUID) []uuid.UUID { return []uuid.UUID{partner} },
			wantErr:   referral.ErrMissingClient,
		},
		{
			name:      "NoReceivers",
			client:    testClient(),
			receivers: func(uuid.UUID) []uuid.UUID { return nil },
			wantErr:   referral.ErrNoReceivers,
		},
		{
			name:      "SelfReferral",
			client:    testClient(),
			receivers: func(sender uuid.UUID) []uuid.UUID { return []uuid.UUID{sender} },
			wantErr:   referral.ErrSelfReferral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService(t)
			sender := identity.Actor{ID: uuid.New(), Email: "alice@example.com"}

			refs, err := svc.Send(context.Background(), sender, tt.client, tt.receivers(sender.ID))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, refs)
		})
	}
}

func TestService_Send_DedupesReceivers(t *testing.T) {
	svc, d := newService(t)

	sender := identity.Actor{ID: uuid.New(), Email: "alice@example.com"}
	bob := uuid.New()

	d.repo.EXPECT().
		BeginSend(gomock.Any(), sender.ID, []uuid.UUID{bob}).
		Return(d.stx, nil)
	d.stx.EXPECT().MissingPartners(gomock.Any()).Return(nil, nil)
	d.stx.EXPECT().CreateReferrals(gomock.Any(), gomock.Any()).Return(nil)
	d.stx.EXPECT().Commit().Return(nil)
	d.stx.EXPECT().Rollback().Return(nil)

	d.directory.EXPECT().
		Get(gomock.Any(), sender.ID).
		Return(&party.Party{ID: sender.ID, Email: sender.Email}, nil)
	d.directory.EXPECT().
		Get(gomock.Any(), bob).
		Return(&party.Party{ID: bob, Email: "bob@example.com"}, nil)
	d.dispatcher.EXPECT().Send(gomock.Any(), gomock.Any()).Return(notify.Result{}, nil)

	refs, err := svc.Send(context.Background(), sender, testClient(), []uuid.UUID{bob, bob, bob})
	require.NoError(t, err)
	assert.Len(t, refs, 1)
}

func TestService_Send_NotificationFailureKeepsRows(t *testing.T) {
	svc, d := newService(t)

	sender := identity.Actor{ID: uuid.New(), Email: "alice@example.com"}
	bob := uuid.New()

	d.repo.EXPECT().
		BeginSend(gomock.Any(), sender.ID, []uuid.UUID{bob}).
		Return(d.stx, nil)
	d.stx.EXPECT().MissingPartners(gomock.Any()).Return(nil, nil)
	d.stx.EXPECT().CreateReferrals(gomock.Any(), gomock.Any()).Return(nil)
	d.stx.EXPECT().Commit().Return(nil)
	d.stx.EXPECT().Rollback().Return(nil)

	d.directory.EXPECT().
		Get(gomock.Any(), sender.ID).
		Return(&party.Party{ID: sender.ID, Email: sender.Email}, nil)
	d.directory.EXPECT().
		Get(gomock.Any(), bob).
		Return(&party.Party{ID: bob, Email: "bob@example.com"}, nil)
	d.dispatcher.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		Return(notify.Result{}, errors.New("smtp down"))

	refs, err := svc.Send(context.Background(), sender, testClient(), []uuid.UUID{bob})
	require.NoError(t, err)
	assert.Len(t, refs, 1)
}

func TestService_UpdateStatus(t *testing.T) {
	type testCase struct {
		name      string
		status    referral.Status
		actorIs   string
		setupMock func(d deps, r *referral.Referral)
		wantErr   error
	}

	tests := []testCase{
		{
			name:    "SenderMovesToContacted",
			status:  referral.StatusContacted,
			actorIs: "sender",
			setupMock: func(d deps, r *referral.Referral) {
				d.repo.EXPECT().GetReferral(gomock.Any(), r.ID).Return(r, nil)
				d.repo.EXPECT().
					UpdateStatus(gomock.Any(), r.ID, referral.StatusContacted).
					Return(r, nil)
			},
		},
		{
			name:    "CompletedCanReopen",
			status:  referral.StatusNew,
			actorIs: "receiver",
			setupMock: func(d deps, r *referral.Referral) {
				r.Status = referral.StatusCompleted
				d.repo.EXPECT().GetReferral(gomock.Any(), r.ID).Return(r, nil)
				d.repo.EXPECT().
					UpdateStatus(gomock.Any(), r.ID, referral.StatusNew).
					Return(r, nil)
			},
		},
		{
			name:    "Stranger",
			status:  referral.StatusContacted,
			actorIs: "stranger",
			setupMock: func(d deps, r *referral.Referral) {
				d.repo.EXPECT().GetReferral(gomock.Any(), r.ID).Return(r, nil)
			},
			wantErr: referral.ErrNotParticipant,
		},
		{
			name:    "UnknownStatus",
			status:  referral.Status("archived"),
			actorIs: "sender",
			wantErr: referral.ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := newService(t)

			r := &referral.Referral{
				ID:         uuid.New(),
				SenderID:   uuid.New(),
				ReceiverID: uuid.New(),
				Status:     referral.StatusNew,
			}

			var actor identity.Actor
			switch tt.actorIs {
			case "sender":
				actor = identity.Actor{ID: r.SenderID}
			case "receiver":
				actor = identity.Actor{ID: r.ReceiverID}
			default:
				actor = identity.Actor{ID: uuid.New()}
			}

			if tt.setupMock != nil {
				tt.setupMock(d, r)
			}

			got, err := svc.UpdateStatus(context.Background(), actor, r.ID, tt.status)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotNil(t, got)
		})
	}
}
