package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"blog_server/internal/service/mocks"
)

type SubscribeServiceTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	store   *mocks.MockSubscriberStore
	service *SubscribeService
}

func (s *SubscribeServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = mocks.NewMockSubscriberStore(s.ctrl)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	s.service = NewSubscribeService(s.store, logger)
}

func (s *SubscribeServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestSubscribeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SubscribeServiceTestSuite))
}

func (s *SubscribeServiceTestSuite) TestSubscribe_EmptyEmailRejected() {
	err := s.service.Subscribe(context.Background(), "   ")

	s.ErrorIs(err, ErrEmailRequired)
}

func (s *SubscribeServiceTestSuite) TestSubscribe_StoresEmail() {
	ctx := context.Background()

	s.store.EXPECT().Add(ctx, "reader@example.com").Return(nil)

	s.NoError(s.service.Subscribe(ctx, "reader@example.com"))
}

func (s *SubscribeServiceTestSuite) TestSubscribe_StoreFailureStillSucceeds() {
	ctx := context.Background()

	s.store.EXPECT().Add(ctx, "reader@example.com").Return(errors.New("db down"))

	s.NoError(s.service.Subscribe(ctx, "reader@example.com"))
}
