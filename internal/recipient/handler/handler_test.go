package handler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"prefsync/internal/recipient/handler/mocks"
	"prefsync/internal/recipient/models"
	"prefsync/internal/recipient/service"
	dErrors "prefsync/pkg/domain-errors"
	"prefsync/pkg/testutil"
)

const (
	alice      models.Address = "+15550001"
	adminToken                = "s3cret"
)

type RecipientHandlerSuite struct {
	suite.Suite
	svc     *mocks.MockService
	handler *Handler
	router  *chi.Mux
}

func (s *RecipientHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.svc = mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.handler = New(s.svc, logger, adminToken)
	s.router = chi.NewRouter()
	s.handler.Register(s.router)
}

func TestRecipientHandlerSuite(t *testing.T) {
	suite.Run(t, new(RecipientHandlerSuite))
}

func (s *RecipientHandlerSuite) do(method, path, body string) *httptest.ResponseRecorder {
	req := testutil.NewRawRequest(s.T(), method, path, body)
	req.Header.Set("X-Admin-Token", adminToken)
	return testutil.DoRequest(s.router, req)
}

func (s *RecipientHandlerSuite) TestGetSettings() {
	s.svc.EXPECT().Settings(gomock.Any(), alice).Return(service.View{
		Address:         alice,
		Ringtone:        "default",
		RingtoneSummary: "default",
		Vibrate:         "enabled",
		VibrateIndex:    1,
		Color:           "teal",
	}, nil)

	w := s.do(http.MethodGet, "/recipients/+15550001/", "")

	s.Equal(http.StatusOK, w.Code)
	view := testutil.UnmarshalResponse[service.View](s.T(), w)
	s.Equal("teal", view.Color)
	s.Equal(1, view.VibrateIndex)
	s.NotEmpty(w.Header().Get("X-Request-ID"))
}

func (s *RecipientHandlerSuite) TestMuteForDuration() {
	s.svc.EXPECT().
		MuteUntil(gomock.Any(), alice, gomock.Any()).
		DoAndReturn(func(_ any, _ models.Address, until time.Time) error {
			s.WithinDuration(time.Now().Add(time.Hour), until, 5*time.Second)
			return nil
		})

	w := s.do(http.MethodPut, "/recipients/+15550001/mute", `{"duration_seconds":3600}`)
	s.Equal(http.StatusAccepted, w.Code)
}

func (s *RecipientHandlerSuite) TestMuteDurationCountsFromRequestTime() {
	requestTime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.svc.EXPECT().MuteUntil(gomock.Any(), alice, requestTime.Add(2*time.Hour)).Return(nil)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("address", string(alice))
	req := testutil.NewJSONRequest(s.T(), http.MethodPut, "/recipients/+15550001/mute", MuteRequest{DurationSeconds: 7200})
	req = testutil.WithContextValue(req, chi.RouteCtxKey, rctx)
	req = testutil.WithRequestTime(req, requestTime)

	w := httptest.NewRecorder()
	s.handler.handleMute(w, req)
	s.Equal(http.StatusAccepted, w.Code)
}

func (s *RecipientHandlerSuite) TestMuteDurationBounds() {
	s.Run("longest representable duration mutes into the future", func() {
		requestTime := time.Now()
		s.svc.EXPECT().
			MuteUntil(gomock.Any(), alice, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ models.Address, until time.Time) error {
				s.True(until.After(requestTime), "until %s must be after the request", until)
				return nil
			})

		w := s.do(http.MethodPut, "/recipients/+15550001/mute", fmt.Sprintf(`{"duration_seconds": %d}`, maxMuteSeconds))
		s.Equal(http.StatusAccepted, w.Code)
	})

	s.Run("overflowing duration is rejected before the service", func() {
		w := s.do(http.MethodPut, "/recipients/+15550001/mute", `{"duration_seconds": 9300000000}`)
		testutil.AssertStatusAndError(s.T(), w, http.StatusBadRequest, string(dErrors.CodeBadRequest))
	})
}

func (s *RecipientHandlerSuite) TestMuteUntilDeadline() {
	deadline := time.UnixMilli(1_900_000_000_000)
	s.svc.EXPECT().MuteUntil(gomock.Any(), alice, deadline).Return(nil)

	w := s.do(http.MethodPut, "/recipients/+15550001/mute", `{"until_ms":1900000000000}`)
	s.Equal(http.StatusAccepted, w.Code)
}

func (s *RecipientHandlerSuite) TestMuteRequiresDeadline() {
	w := s.do(http.MethodPut, "/recipients/+15550001/mute", `{}`)
	testutil.AssertStatusAndError(s.T(), w, http.StatusBadRequest, string(dErrors.CodeBadRequest))
}

func (s *RecipientHandlerSuite) TestUnmute() {
	s.svc.EXPECT().Unmute(gomock.Any(), alice).Return(nil)
	w := s.do(http.MethodDelete, "/recipients/+15550001/mute", "")
	s.Equal(http.StatusAccepted, w.Code)
}

func (s *RecipientHandlerSuite) TestSetRingtone() {
	s.Run("custom tone", func() {
		s.svc.EXPECT().
			SetMessageRingtone(gomock.Any(), alice, gomock.Any()).
			DoAndReturn(func(_ any, _ models.Address, uri *string) error {
				s.Require().NotNil(uri)
				s.Equal("content://media/internal/audio/12", *uri)
				return nil
			})
		w := s.do(http.MethodPut, "/recipients/+15550001/ringtone", `{"uri":"content://media/internal/audio/12"}`)
		s.Equal(http.StatusAccepted, w.Code)
	})

	s.Run("null is silence", func() {
		s.svc.EXPECT().
			SetMessageRingtone(gomock.Any(), alice, gomock.Nil()).
			Return(nil)
		w := s.do(http.MethodPut, "/recipients/+15550001/ringtone", `{"uri":null}`)
		s.Equal(http.StatusAccepted, w.Code)
	})

	s.Run("reset", func() {
		s.svc.EXPECT().ResetMessageRingtone(gomock.Any(), alice).Return(nil)
		w := s.do(http.MethodDelete, "/recipients/+15550001/ringtone", "")
		s.Equal(http.StatusAccepted, w.Code)
	})
}

func (s *RecipientHandlerSuite) TestSetVibrate() {
	s.svc.EXPECT().SetMessageVibrate(gomock.Any(), alice, models.VibrateDisabled).Return(nil)
	w := s.do(http.MethodPut, "/recipients/+15550001/vibrate", `{"state":2}`)
	s.Equal(http.StatusAccepted, w.Code)
}

func (s *RecipientHandlerSuite) TestSetColorValidationError() {
	s.svc.EXPECT().
		SetColor(gomock.Any(), alice, models.MaterialColor("chartreuse")).
		Return(dErrors.New(dErrors.CodeValidation, `unknown color "chartreuse"`))

	req := testutil.NewJSONRequest(s.T(), http.MethodPut, "/recipients/+15550001/color", ColorRequest{Color: "chartreuse"})
	w := testutil.DoRequest(s.router, req)
	testutil.AssertStatusAndError(s.T(), w, http.StatusBadRequest, string(dErrors.CodeValidation))
}

func (s *RecipientHandlerSuite) TestInvalidBody() {
	w := s.do(http.MethodPut, "/recipients/+15550001/color", `{"color":`)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RecipientHandlerSuite) TestSetCustomNotifications() {
	s.svc.EXPECT().SetCustomNotifications(gomock.Any(), alice, true).Return(nil)
	w := s.do(http.MethodPut, "/recipients/+15550001/custom-notifications", `{"enabled":true}`)
	s.Equal(http.StatusAccepted, w.Code)
}

func (s *RecipientHandlerSuite) TestOpenSettingsUnavailable() {
	s.svc.EXPECT().
		OpenSettings(gomock.Any(), alice).
		Return(dErrors.New(dErrors.CodeUnavailable, "coordinator is closed"))

	w := s.do(http.MethodPost, "/recipients/+15550001/settings/open", "")
	s.Equal(http.StatusServiceUnavailable, w.Code)
}

func (s *RecipientHandlerSuite) TestGetIdentity() {
	s.svc.EXPECT().IdentityAffordance(gomock.Any(), alice).Return(service.Affordance{
		Visible: true,
		Record:  &models.IdentityRecord{Address: alice, VerifiedStatus: models.Verified, FirstUse: true},
	}, nil)

	w := s.do(http.MethodGet, "/recipients/+15550001/identity", "")
	s.Equal(http.StatusOK, w.Code)
	resp := testutil.UnmarshalResponse[IdentityResponse](s.T(), w)
	s.Equal(IdentityResponse{Visible: true, VerifiedStatus: "verified", FirstUse: true}, *resp)
}

func (s *RecipientHandlerSuite) TestEnsureConsistency() {
	s.svc.EXPECT().EnsureConsistency(gomock.Any()).Return(3, nil)

	w := s.do(http.MethodPost, "/maintenance/consistency", "")
	s.Equal(http.StatusAccepted, w.Code)
	resp := testutil.UnmarshalResponse[map[string]int](s.T(), w)
	s.Equal(3, (*resp)["scheduled"])
}

func (s *RecipientHandlerSuite) TestInternalErrorsHideDetail() {
	s.svc.EXPECT().
		EnsureConsistency(gomock.Any()).
		Return(0, dErrors.New(dErrors.CodeInternal, "postgres: connection refused"))

	w := s.do(http.MethodPost, "/maintenance/consistency", "")
	s.Equal(http.StatusInternalServerError, w.Code)
	s.NotContains(w.Body.String(), "postgres")
}

func (s *RecipientHandlerSuite) TestMaintenanceRequiresAdminToken() {
	req := httptest.NewRequest(http.MethodPost, "/maintenance/consistency", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusUnauthorized, w.Code)
}
