package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"wgdash/internal/app/status"
	"wgdash/internal/app/user"
	"wgdash/internal/pkg/auth/jwt"
	"wgdash/internal/pkg/logx"
)

// SessionResolver yields the signed-in account, refreshing its token when due.
type SessionResolver interface {
	Resolve(ctx context.Context) (*jwt.Payload, error)
}

// Backend is the part of the VPN manager API the home view reads.
type Backend interface {
	Peers(ctx context.Context) ([]user.UserWithConnection, error)
	ConnectionConfig(ctx context.Context) (string, error)
}

// StatusFeed is the live status channel.
type StatusFeed interface {
	Start(ctx context.Context) bool
	Snapshot() status.StatusMap
}

// Service loads the home view.
type Service struct {
	session     SessionResolver
	backend     Backend
	feed        StatusFeed
	installLink string

	// statusCtx bounds the status channel started by Load.
	statusCtx context.Context

	now    func() time.Time
	logger zerolog.Logger
}

// NewService wires the home view to its sources. The status channel started on the
// first Load lives until statusCtx is cancelled.
func NewService(statusCtx context.Context, session SessionResolver, backend Backend, feed StatusFeed, installLink string) *Service {
	return &Service{
		session:     session,
		backend:     backend,
		feed:        feed,
		installLink: installLink,
		statusCtx:   statusCtx,
		now:         time.Now,
		logger:      logx.Component("dashboard"),
	}
}

// SetClock replaces the time source.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Load resolves the session and builds the view. Only a session failure is returned;
// a failed roster or config fetch leaves that part empty.
func (s *Service) Load(ctx context.Context) (*View, error) {
	payload, err := s.session.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	var (
		wg     sync.WaitGroup
		peers  []user.UserWithConnection
		config string
	)

	wg.Add(2)

	go func() {
		defer wg.Done()

		var err error
		if peers, err = s.backend.Peers(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to fetch peers")
			peers = nil
		}
	}()

	go func() {
		defer wg.Done()

		var err error
		if config, err = s.backend.ConnectionConfig(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to fetch connection config")
			config = ""
		}
	}()

	wg.Wait()

	if s.feed.Start(s.statusCtx) {
		s.logger.Debug().Msg("Status channel started")
	}

	v := Build(payload.UserData, peers, s.feed.Snapshot(), config, s.installLink, s.now())
	return &v, nil
}
