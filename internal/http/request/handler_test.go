package request_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	requesthttp "github.com/hamzaalie/spotlight-circle-sub000/internal/http/request"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/identity"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/notify"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/referral"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/request"
)

type handlerDeps struct {
	repo   *request.MockRepository
	sender *request.MockReferralSender
}

func newHandlerRouter(t *testing.T) (chi.Router, handlerDeps) {
	t.Helper()

	ctrl := gomock.NewController(t)
	d := handlerDeps{
		repo:   request.NewMockRepository(ctrl),
		sender: request.NewMockReferralSender(ctrl),
	}

	svc := request.NewService(
		d.repo,
		d.sender,
		request.NewMockDirectory(ctrl),
		notify.NewMockDispatcher(ctrl),
		notify.NewMailer("SpotlightCircle", "http://localhost:3000"),
	)

	r := chi.NewRouter()
	requesthttp.NewHandler(svc).Routes(r)

	return r, d
}

// A visitor can name any account as the partner when submitting a request,
// so the routing layer is what catches a forward to someone the owner never
// partnered with. That must come back as a client error, not a 500.
func TestHandler_Forward_UnpartneredReceiver(t *testing.T) {
	router, d := newHandlerRouter(t)

	owner := identity.Actor{ID: uuid.New(), Email: "owner@example.com"}
	strangerID := uuid.New()

	rr := &request.ReferralRequest{
		ID:             uuid.New(),
		ProfileOwnerID: owner.ID,
		PartnerUserID:  strangerID,
		RequesterName:  "Carol Visitor",
		RequesterEmail: "carol@example.com",
		Status:         request.StatusPending,
		CreatedAt:      time.Now().Add(-time.Hour),
	}

	d.repo.EXPECT().GetRequest(gomock.Any(), rr.ID).Return(rr, nil)
	d.sender.EXPECT().
		Send(gomock.Any(), owner, gomock.Any(), []uuid.UUID{strangerID}).
		Return(nil, fmt.Errorf("%w: %s", referral.ErrNotPartnered, strangerID))

	req := httptest.NewRequest(http.MethodPost, "/"+rr.ID.String()+"/forward", nil)
	req = req.WithContext(identity.WithActor(req.Context(), owner))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, request.StatusPending, rr.Status)
}

func TestHandler_Forward_NotOwner(t *testing.T) {
	router, d := newHandlerRouter(t)

	stranger := identity.Actor{ID: uuid.New(), Email: "mallory@example.com"}

	rr := &request.ReferralRequest{
		ID:             uuid.New(),
		ProfileOwnerID: uuid.New(),
		PartnerUserID:  uuid.New(),
		Status:         request.StatusPending,
	}

	d.repo.EXPECT().GetRequest(gomock.Any(), rr.ID).Return(rr, nil)

	req := httptest.NewRequest(http.MethodPost, "/"+rr.ID.String()+"/forward", nil)
	req = req.WithContext(identity.WithActor(req.Context(), stranger))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
