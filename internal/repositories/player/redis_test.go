package player

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	repo   Repository
	ctx    context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	// Create a new miniredis server for each test
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	// Create a Redis client connected to the miniredis server
	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	// Create the repository
	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetPaymentID() {
	err := s.repo.SavePaymentID(s.ctx, &SavePaymentIDInput{
		Name:      "Alice",
		PaymentID: " 0812345678 ",
	})
	s.Require().NoError(err)

	// Lookup ignores case
	profile, err := s.repo.GetProfile(s.ctx, &GetProfileInput{Name: "alice"})
	s.Require().NoError(err)
	s.Equal("Alice", profile.Name)
	s.Equal("0812345678", profile.PaymentID)
	s.False(profile.QuickAdd)
}

func (s *RedisRepositoryTestSuite) TestGetProfileNotFound() {
	_, err := s.repo.GetProfile(s.ctx, &GetProfileInput{Name: "nobody"})
	s.ErrorIs(err, ErrProfileNotFound)

	_, err = s.repo.GetProfile(s.ctx, &GetProfileInput{Name: "  "})
	s.Error(err)
}

func (s *RedisRepositoryTestSuite) TestToggleQuickAdd() {
	out, err := s.repo.ToggleQuickAdd(s.ctx, &ToggleQuickAddInput{Name: "Bob"})
	s.Require().NoError(err)
	s.True(out.QuickAdd)

	_, err = s.repo.ToggleQuickAdd(s.ctx, &ToggleQuickAddInput{Name: "alice"})
	s.Require().NoError(err)

	list, err := s.repo.ListQuickAdd(s.ctx, &ListQuickAddInput{})
	s.Require().NoError(err)
	s.Equal([]string{"alice", "Bob"}, list.Names)

	// Toggling keeps the payment ID
	s.Require().NoError(s.repo.SavePaymentID(s.ctx, &SavePaymentIDInput{Name: "Bob", PaymentID: "123"}))
	out, err = s.repo.ToggleQuickAdd(s.ctx, &ToggleQuickAddInput{Name: "Bob"})
	s.Require().NoError(err)
	s.False(out.QuickAdd)

	profile, err := s.repo.GetProfile(s.ctx, &GetProfileInput{Name: "Bob"})
	s.Require().NoError(err)
	s.Equal("123", profile.PaymentID)
	s.False(profile.QuickAdd)

	list, err = s.repo.ListQuickAdd(s.ctx, &ListQuickAddInput{})
	s.Require().NoError(err)
	s.Equal([]string{"alice"}, list.Names)
}
