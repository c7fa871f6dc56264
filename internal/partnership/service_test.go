package partnership_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/hamzaalie/spotlight-circle-sub000/internal/identity"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/notify"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/partnership"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/party"
)

type deps struct {
	repo       *partnership.MockRepository
	itx        *partnership.MockInviteTx
	directory  *partnership.MockDirectory
	dispatcher *notify.MockDispatcher
}

func newService(t *testing.T) (*partnership.Service, deps) {
	t.Helper()

	ctrl := gomock.NewController(t)
	d := deps{
		repo:       partnership.NewMockRepository(ctrl),
		itx:        partnership.NewMockInviteTx(ctrl),
		directory:  partnership.NewMockDirectory(ctrl),
		dispatcher: notify.NewMockDispatcher(ctrl),
	}

	mailer := notify.NewMailer("SpotlightCircle", "http://localhost:3000")
	svc := partnership.NewService(d.repo, d.directory, d.dispatcher, mailer)

	return svc, d
}

func knownParty(id uuid.UUID, email string) *party.Party {
	return &party.Party{
		ID:    id,
		Email: email,
		Profile: &party.Profile{
			FirstName:  "Jane",
			LastName:   "Doe",
			Profession: "Accountant",
		},
	}
}

func TestService_Invite_FreshPairKnownTarget(t *testing.T) {
	svc, d := newService(t)

	initiator := identity.Actor{ID: uuid.New(), Email: "alice@example.com"}
	receiver := knownParty(uuid.New(), "bob@example.com")

	d.directory.EXPECT().
		FindByEmail(gomock.Any(), "bob@example.com").
		Return(receiver, nil)

	d.repo.EXPECT().
		BeginInvite(gomock.Any(), initiator.ID, partnership.KnownParty(receiver.ID)).
		Return(d.itx, nil)

	d.itx.EXPECT().FindForPair(gomock.Any()).Return(nil, nil)
	d.itx.EXPECT().
		CreatePartnership(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *partnership.Partnership) error {
			p.ID = uuid.New()
			p.CreatedAt = time.Now()
			return nil
		})
	d.itx.EXPECT().Commit().Return(nil)
	d.itx.EXPECT().Rollback().Return(nil)

	d.directory.EXPECT().
		Get(gomock.Any(), initiator.ID).
		Return(knownParty(initiator.ID, initiator.Email), nil)
	d.dispatcher.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg notify.Message) (notify.Result, error) {
			assert.Equal(t, "bob@example.com", msg.To)
			return notify.Result{ID: "msg-1"}, nil
		})

	res, err := svc.Invite(context.Background(), initiator, partnership.InviteParams{
		TargetEmail: " Bob@Example.com ",
		Category:    "Legal",
	})
	require.NoError(t, err)

	assert.True(t, res.KnownParty)
	assert.Equal(t, partnership.StatusPending, res.Partnership.Status)
	assert.Equal(t, initiator.ID, res.Partnership.InitiatorID)
	require.NotNil(t, res.Partnership.ReceiverID)
	assert.Equal(t, receiver.ID, *res.Partnership.ReceiverID)
	assert.Empty(t, res.Partnership.InvitedEmail)
}

func TestService_Invite_UnregisteredTarget(t *testing.T) {
	svc, d := newService(t)

	initiator := identity.Actor{ID: uuid.New(), Email: "alice@example.com"}

	d.directory.EXPECT().
		FindByEmail(gomock.Any(), "x@unregistered.example").
		Return(nil, party.ErrNotFound)

	d.repo.EXPECT().
		BeginInvite(gomock.Any(), initiator.ID, partnership.PendingEmail("x@unregistered.example")).
		Return(d.itx, nil)

	d.itx.EXPECT().FindForPair(gomock.Any()).Return(nil, nil)
	d.itx.EXPECT().
		CreatePartnership(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *partnership.Partnership) error {
			p.ID = uuid.New()
			return nil
		})
	d.itx.EXPECT().Commit().Return(nil)
	d.itx.EXPECT().Rollback().Return(nil)

	d.directory.EXPECT().
		Get(gomock.Any(), initiator.ID).
		Return(knownParty(initiator.ID, initiator.Email), nil)
	d.dispatcher.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg notify.Message) (notify.Result, error) {
			assert.Equal(t, "x@unregistered.example", msg.To)
			assert.Contains(t, msg.HTML, initiator.ID.String())
			return notify.Result{}, nil
		})

	res, err := svc.Invite(context.Background(), initiator, partnership.InviteParams{
		TargetEmail: "x@unregistered.example",
		Category:    "Legal",
	})
	require.NoError(t, err)

	assert.False(t, res.KnownParty)
	assert.Nil(t, res.Partnership.ReceiverID)
	assert.Equal(t, "x@unregistered.example", res.Partnership.InvitedEmail)
	assert.Equal(t, partnership.StatusPending, res.Partnership.Status)
}

func TestService_Invite_Duplicates(t *testing.T) {
	type testCase struct {
		name     string
		existing partnership.Status
		wantErr  error
	}

	tests := []testCase{
		{name: "PendingPair", existing: partnership.StatusPending, wantErr: partnership.ErrDuplicatePending},
		{name: "ActivePair", existing: partnership.StatusAccepted, wantErr: partnership.ErrDuplicateActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := newService(t)

			initiator := identity.Actor{ID: uuid.New(), Email: "alice@example.com"}
			receiver := knownParty(uuid.New(), "bob@example.com")

			d.directory.EXPECT().
				FindByEmail(gomock.Any(), "bob@example.com").
				Return(receiver, nil)
			d.repo.EXPECT().
				BeginInvite(gomock.Any(), initiator.ID, partnership.KnownParty(receiver.ID)).
				Return(d.itx, nil)

			receiverID := receiver.ID
			d.itx.EXPECT().FindForPair(gomock.Any()).Return(&partnership.Partnership{
				ID:          uuid.New(),
				InitiatorID: initiator.ID,
				ReceiverID:  &receiverID,
				Status:      tt.existing,
			}, nil)
			d.itx.EXPECT().Rollback().Return(nil)

			res, err := svc.Invite(context.Background(), initiator, partnership.InviteParams{
				TargetEmail: "bob@example.com",
				Category:    "Legal",
			})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, res)
		})
	}
}

func TestService_Invite_ReusesDeclinedRow(t *testing.T) {
	svc, d := newService(t)

	// Bob declined Alice's invite once; now Bob invites Alice back. The
	// declined row is reset in place with the roles swapped.
	alice := knownParty(uuid.New(), "alice@example.com")
	bob := identity.Actor{ID: uuid.New(), Email: "bob@example.com"}
	bobID := bob.ID

	declined := &partnership.Partnership{
		ID:          uuid.New(),
		InitiatorID: alice.ID,
		ReceiverID:  &bobID,
		Category:    "Legal",
		Status:      partnership.StatusDeclined,
		CreatedAt:   time.Now().Add(-48 * time.Hour),
	}

	d.directory.EXPECT().
		FindByEmail(gomock.Any(), "alice@example.com").
		Return(alice, nil)
	d.repo.EXPECT().
		BeginInvite(gomock.Any(), bob.ID, partnership.KnownParty(alice.ID)).
		Return(d.itx, nil)
	d.itx.EXPECT().FindForPair(gomock.Any()).Return(declined, nil)
	d.itx.EXPECT().Reinvite(gomock.Any(), declined).Return(nil)
	d.itx.EXPECT().Commit().Return(nil)
	d.itx.EXPECT().Rollback().Return(nil)

	d.directory.EXPECT().
		Get(gomock.Any(), bob.ID).
		Return(knownParty(bob.ID, bob.Email), nil)
	d.dispatcher.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		Return(notify.Result{}, nil)

	res, err := svc.Invite(context.Background(), bob, partnership.InviteParams{
		TargetEmail: "alice@example.com",
		Category:    "Tax",
	})
	require.NoError(t, err)

	assert.Equal(t, declined.ID, res.Partnership.ID)
	assert.Equal(t, partnership.StatusPending, res.Partnership.Status)
	assert.Equal(t, bob.ID, res.Partnership.InitiatorID)
	require.NotNil(t, res.Partnership.ReceiverID)
	assert.Equal(t, alice.ID, *res.Partnership.ReceiverID)
	assert.Equal(t, "Tax", res.Partnership.Category)
	assert.Nil(t, res.Partnership.AcceptedAt)
}

func TestService_Invite_Validation(t *testing.T) {
	type testCase struct {
		name      string
		email     string
		setupMock func(d deps, actor identity.Actor)
		wantErr   error
	}

	actorEmail := "alice@example.com"

	tests := []testCase{
		{
			name:    "EmptyEmail",
			email:   "   ",
			wantErr: partnership.ErrInvalidEmail,
		},
		{
			name:    "MalformedEmail",
			email:   "not-an-email",
			wantErr: partnership.ErrInvalidEmail,
		},
		{
			name:    "OwnEmail",
			email:   " Alice@Example.COM ",
			wantErr: partnership.ErrSelfInvite,
		},
		{
			name:  "OwnAccountViaAlternateCasing",
			email: "alias@example.com",
			setupMock: func(d deps, actor identity.Actor) {
				// The address resolves to the actor's own account.
				d.directory.EXPECT().
					FindByEmail(gomock.Any(), "alias@example.com").
					Return(&party.Party{ID: actor.ID, Email: "alias@example.com"}, nil)
			},
			wantErr: partnership.ErrSelfInvite,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := newService(t)
			actor := identity.Actor{ID: uuid.New(), Email: actorEmail}

			if tt.setupMock != nil {
				tt.setupMock(d, actor)
			}

			res, err := svc.Invite(context.Background(), actor, partnership.InviteParams{
				TargetEmail: tt.email,
				Category:    "Legal",
			})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, res)
		})
	}
}

func TestService_Respond_Accept(t *testing.T) {
	svc, d := newService(t)

	initiatorID := uuid.New()
	receiver := identity.Actor{ID: uuid.New(), Email: "bob@example.com"}
	receiverID := receiver.ID

	p := &partnership.Partnership{
		ID:          uuid.New(),
		InitiatorID: initiatorID,
		ReceiverID:  &receiverID,
		Status:      partnership.StatusPending,
	}

	d.repo.EXPECT().GetPartnership(gomock.Any(), p.ID).Return(p, nil)
	d.repo.EXPECT().UpdatePartnership(gomock.Any(), p, partnership.StatusPending).Return(nil)

	d.directory.EXPECT().
		Get(gomock.Any(), initiatorID).
		Return(knownParty(initiatorID, "alice@example.com"), nil)
	d.directory.EXPECT().
		Get(gomock.Any(), receiver.ID).
		Return(knownParty(receiver.ID, receiver.Email), nil)
	d.dispatcher.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		Return(notify.Result{}, nil)

	got, err := svc.Respond(context.Background(), receiver, p.ID, partnership.StatusAccepted)
	require.NoError(t, err)

	assert.Equal(t, partnership.StatusAccepted, got.Status)
	require.NotNil(t, got.AcceptedAt)
}

func TestService_Respond_SecondAcceptConflicts(t *testing.T) {
	svc, d := newService(t)

	receiver := identity.Actor{ID: uuid.New(), Email: "bob@example.com"}
	receiverID := receiver.ID
	acceptedAt := time.Now().Add(-time.Hour)

	p := &partnership.Partnership{
		ID:          uuid.New(),
		InitiatorID: uuid.New(),
		ReceiverID:  &receiverID,
		Status:      partnership.StatusAccepted,
		AcceptedAt:  &acceptedAt,
	}

	d.repo.EXPECT().GetPartnership(gomock.Any(), p.ID).Return(p, nil)

	got, err := svc.Respond(context.Background(), receiver, p.ID, partnership.StatusAccepted)
	assert.ErrorIs(t, err, partnership.ErrConflict)
	assert.Nil(t, got)
	assert.Equal(t, acceptedAt, *p.AcceptedAt)
}

// A response that reads pending but loses the write race to a concurrent
// response must surface the conflict, not overwrite the earlier decision.
func TestService_Respond_LostWriteRaceConflicts(t *testing.T) {
	svc, d := newService(t)

	receiver := identity.Actor{ID: uuid.New(), Email: "bob@example.com"}
	receiverID := receiver.ID

	p := &partnership.Partnership{
		ID:          uuid.New(),
		InitiatorID: uuid.New(),
		ReceiverID:  &receiverID,
		Status:      partnership.StatusPending,
	}

	d.repo.EXPECT().GetPartnership(gomock.Any(), p.ID).Return(p, nil)
	d.repo.EXPECT().
		UpdatePartnership(gomock.Any(), p, partnership.StatusPending).
		Return(partnership.ErrConflict)

	got, err := svc.Respond(context.Background(), receiver, p.ID, partnership.StatusDeclined)
	assert.ErrorIs(t, err, partnership.ErrConflict)
	assert.Nil(t, got)
}

func TestService_Respond_Authorization(t *testing.T) {
	svc, d := newService(t)

	stranger := identity.Actor{ID: uuid.New(), Email: "mallory@example.com"}
	receiverID := uuid.New()

	p := &partnership.Partnership{
		ID:          uuid.New(),
		InitiatorID: uuid.New(),
		ReceiverID:  &receiverID,
		Status:      partnership.StatusPending,
	}

	d.repo.EXPECT().GetPartnership(gomock.Any(), p.ID).Return(p, nil)

	got, err := svc.Respond(context.Background(), stranger, p.ID, partnership.StatusDeclined)
	assert.ErrorIs(t, err, partnership.ErrNotParticipant)
	assert.Nil(t, got)
}

func TestService_Respond_EmailInviteeClaimsRow(t *testing.T) {
	svc, d := newService(t)

	initiatorID := uuid.New()
	invitee := identity.Actor{ID: uuid.New(), Email: "x@unregistered.example"}

	p := &partnership.Partnership{
		ID:           uuid.New(),
		InitiatorID:  initiatorID,
		InvitedEmail: "x@unregistered.example",
		Status:       partnership.StatusPending,
	}

	d.repo.EXPECT().GetPartnership(gomock.Any(), p.ID).Return(p, nil)
	d.repo.EXPECT().UpdatePartnership(gomock.Any(), p, partnership.StatusPending).Return(nil)

	d.directory.EXPECT().
		Get(gomock.Any(), initiatorID).
		Return(knownParty(initiatorID, "alice@example.com"), nil)
	d.directory.EXPECT().
		Get(gomock.Any(), invitee.ID).
		Return(knownParty(invitee.ID, invitee.Email), nil)
	d.dispatcher.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		Return(notify.Result{}, nil)

	got, err := svc.Respond(context.Background(), invitee, p.ID, partnership.StatusAccepted)
	require.NoError(t, err)

	require.NotNil(t, got.ReceiverID)
	assert.Equal(t, invitee.ID, *got.ReceiverID)
	assert.Empty(t, got.InvitedEmail)
	assert.Equal(t, partnership.StatusAccepted, got.Status)
}

func TestService_Respond_DispatchFailureDoesNotFail(t *testing.T) {
	svc, d := newService(t)

	initiatorID := uuid.New()
	receiver := identity.Actor{ID: uuid.New(), Email: "bob@example.com"}
	receiverID := receiver.ID

	p := &partnership.Partnership{
		ID:          uuid.New(),
		InitiatorID: initiatorID,
		ReceiverID:  &receiverID,
		Status:      partnership.StatusPending,
	}

	d.repo.EXPECT().GetPartnership(gomock.Any(), p.ID).Return(p, nil)
	d.repo.EXPECT().UpdatePartnership(gomock.Any(), p, partnership.StatusPending).Return(nil)

	d.directory.EXPECT().
		Get(gomock.Any(), initiatorID).
		Return(knownParty(initiatorID, "alice@example.com"), nil)
	d.directory.EXPECT().
		Get(gomock.Any(), receiver.ID).
		Return(knownParty(receiver.ID, receiver.Email), nil)
	d.dispatcher.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		Return(notify.Result{}, errors.New("smtp down"))

	got, err := svc.Respond(context.Background(), receiver, p.ID, partnership.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, partnership.StatusAccepted, got.Status)
}

func TestService_Pending_UnknownDirection(t *testing.T) {
	svc, _ := newService(t)

	actor := identity.Actor{ID: uuid.New(), Email: "alice@example.com"}

	_, err := svc.Pending(context.Background(), actor, partnership.Direction("sideways"))
	assert.Error(t, err)
}
