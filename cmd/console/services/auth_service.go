package services

import (
	"context"
	"errors"
	"time"

	"locker-console/cmd/console/clients/lockerclient"
	"locker-console/cmd/console/dto"
	"locker-console/cmd/console/session"
	"locker-console/internal/logger"
)

// AuthService logs the operator in and out against the backend and keeps the session.
type AuthService struct {
	client   *lockerclient.Client
	sessions *session.Manager
	pages    *PageRegistry
	now      func() time.Time
}

func NewAuthService(client *lockerclient.Client, sessions *session.Manager, pages *PageRegistry) *AuthService {
	return &AuthService{client: client, sessions: sessions, pages: pages, now: time.Now}
}

// Login exchanges credentials for a backend token and persists it.
func (s *AuthService) Login(ctx context.Context, accountName, password string) (dto.SessionDTO, error) {
	res, err := s.client.Login(ctx, accountName, password)
	if err != nil {
		return dto.SessionDTO{}, err
	}
	if res.Token == "" {
		return dto.SessionDTO{}, session.ErrEmptyToken
	}

	sess := session.Session{
		Token: res.Token,
		User: session.User{
			ID:          res.User.ID,
			AccountName: res.User.AccountName,
			NickName:    res.User.NickName,
			RoleType:    res.User.RoleType,
			Phone:       res.User.Phone,
			Email:       res.User.Email,
		},
	}
	if sess.User.AccountName == "" {
		sess.User.AccountName = accountName
	}
	if err := s.sessions.Set(ctx, sess); err != nil {
		return dto.SessionDTO{}, err
	}
	// 이전 운영자의 목록이 남지 않도록 초기화한다.
	s.pages.ResetAll()

	logger.InfoWithFields("operator logged in", logger.Fields{
		"user_id":      sess.User.ID,
		"account_name": sess.User.AccountName,
	})
	return s.view(sess), nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.sessions.Clear(ctx); err != nil {
		return err
	}
	s.pages.ResetAll()
	logger.Log.Info("operator logged out")
	return nil
}

// Current returns the session or session.ErrNoSession.
func (s *AuthService) Current() (dto.SessionDTO, error) {
	sess, err := s.sessions.Get()
	if err != nil {
		return dto.SessionDTO{}, err
	}
	return s.view(sess), nil
}

func (s *AuthService) view(sess session.Session) dto.SessionDTO {
	out := dto.SessionDTO{
		User: dto.SessionUserDTO{
			ID:          sess.User.ID,
			AccountName: sess.User.AccountName,
			NickName:    sess.User.NickName,
			RoleType:    sess.User.RoleType,
		},
	}
	info, err := session.InspectToken(sess.Token, s.now())
	switch {
	case err == nil:
		out.TokenExpiresAt = info.ExpiresAt
		out.TokenExpired = info.Expired
	case !errors.Is(err, session.ErrEmptyToken):
		// 불투명 토큰일 수 있다. 만료 정보 없이 반환한다.
		logger.DebugWithFields("token claims unreadable", logger.Fields{"error": err.Error()})
	}
	return out
}
