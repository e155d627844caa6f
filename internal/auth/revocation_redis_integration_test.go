//go:build integration

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"simwarga/internal/auth"
	"simwarga/pkg/testutil/containers"
)

type RedisTRLSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	trl   *auth.RedisTRL
}

func TestRedisTRLSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisTRLSuite))
}

func (s *RedisTRLSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.trl = auth.NewRedisTRL(s.redis.Client)
}

func (s *RedisTRLSuite) TearDownSuite() {
	_ = s.redis.Client.Close()
	_ = s.redis.Container.Terminate(context.Background())
}

func (s *RedisTRLSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisTRLSuite) TestRevokeAndCheck() {
	ctx := context.Background()

	revoked, err := s.trl.IsRevoked(ctx, "jti-1")
	s.Require().NoError(err)
	s.False(revoked)

	s.Require().NoError(s.trl.Revoke(ctx, "jti-1", time.Minute))

	revoked, err = s.trl.IsRevoked(ctx, "jti-1")
	s.Require().NoError(err)
	s.True(revoked)

	// Other tokens are unaffected.
	revoked, err = s.trl.IsRevoked(ctx, "jti-2")
	s.Require().NoError(err)
	s.False(revoked)
}

func (s *RedisTRLSuite) TestRevocationExpiresWithTTL() {
	ctx := context.Background()

	s.Require().NoError(s.trl.Revoke(ctx, "jti-short", 500*time.Millisecond))

	revoked, err := s.trl.IsRevoked(ctx, "jti-short")
	s.Require().NoError(err)
	s.True(revoked)

	time.Sleep(time.Second)

	revoked, err = s.trl.IsRevoked(ctx, "jti-short")
	s.Require().NoError(err)
	s.False(revoked)
}

func (s *RedisTRLSuite) TestEmptyJTIIsNoop() {
	ctx := context.Background()

	s.Require().NoError(s.trl.Revoke(ctx, "", time.Minute))
	revoked, err := s.trl.IsRevoked(ctx, "")
	s.Require().NoError(err)
	s.False(revoked)
}
