// Package auth resolves, opens and closes the dashboard session against the backend.
package auth

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/jrsteele09/boutik-admin/client"
	"github.com/jrsteele09/boutik-admin/internal/config"
	"github.com/jrsteele09/boutik-admin/internal/errors"
	"github.com/jrsteele09/boutik-admin/navigation"
	"github.com/jrsteele09/boutik-admin/session"
	"github.com/jrsteele09/boutik-admin/users"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const (
	TokenPath = "/auth/token"
	MePath    = "/users/me"
)

// Service owns the session lifecycle: startup resolution, login and logout.
type Service struct {
	client  *client.Client
	session *session.Session
	nav     navigation.Navigator
	paths   config.PathsConfig
	oauth   *oauth2.Config

	initOnce sync.Once
	initErr  error
}

func NewService(c *client.Client, sess *session.Session, nav navigation.Navigator, paths config.PathsConfig) *Service {
	return &Service{
		client:  c,
		session: sess,
		nav:     nav,
		paths:   paths,
		oauth: &oauth2.Config{
			Endpoint: oauth2.Endpoint{
				TokenURL:  c.URL(TokenPath),
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
	}
}

// Initialise resolves the session from stored credentials. It runs once; later and
// concurrent calls wait for and return the first outcome. The session ends up
// initialized whatever happens.
func (s *Service) Initialise(ctx context.Context) error {
	s.initOnce.Do(func() {
		defer s.session.MarkInitialized()

		creds := s.client.Credentials()
		if creds.AccessToken() == "" {
			log.Debug().Msg("no stored access token, starting signed out")
			return
		}
		if exp, ok := creds.AccessTokenExpiry(); ok {
			log.Debug().Time("exp", exp).Bool("expired", !exp.After(time.Now())).Msg("resolving stored session")
		}

		me, err := s.Me(ctx)
		if err != nil {
			log.Err(err).Msg("resolving session")
			s.session.SignOut()
			s.initErr = err
			return
		}
		s.session.SignIn(me)
		log.Info().Int("user_id", me.ID).Msg("session resolved")
	})
	return s.initErr
}

// Me fetches the signed in user
func (s *Service) Me(ctx context.Context) (*users.User, error) {
	return client.Get[*users.User](ctx, s.client, MePath, nil)
}

// Login exchanges the credentials for tokens, signs the user in and opens the dashboard home.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*users.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	tok, err := s.exchange(ctx, req)
	if err != nil {
		return nil, err
	}
	creds := s.client.Credentials()
	if err := creds.Save(tok); err != nil {
		return nil, &errors.UnknownError{Err: errors.Wrapf(err, "[Auth Login] storing tokens")}
	}

	me, err := s.Me(ctx)
	if err != nil {
		if clearErr := creds.Clear(); clearErr != nil {
			log.Err(clearErr).Msg("clearing credentials after failed login")
		}
		return nil, err
	}

	s.session.SignIn(me)
	s.session.MarkInitialized()
	log.Info().Int("user_id", me.ID).Str("email", me.Email).Msg("signed in")
	s.nav.Navigate(navigation.Location{Path: s.paths.GetDashboardHome()}, navigation.Push)
	return me, nil
}

// Logout forgets the tokens and the user and returns to the login screen
func (s *Service) Logout(ctx context.Context) error {
	err := s.client.Credentials().Clear()
	if err != nil {
		log.Err(err).Msg("clearing credentials on logout")
	}
	s.session.SignOut()
	s.nav.Navigate(navigation.Location{Path: s.paths.GetLoginPath()}, navigation.Replace)
	return err
}

// exchange runs the OAuth2 password grant through the client's transport
func (s *Service) exchange(ctx context.Context, req LoginRequest) (*oauth2.Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.client.HTTPClient())
	tok, err := s.oauth.PasswordCredentialsToken(ctx, req.Username, req.Password)
	if err == nil {
		return tok, nil
	}

	var re *oauth2.RetrieveError
	if errors.As(err, &re) && re.Response != nil {
		return nil, client.ErrorFromResponse(re.Response.StatusCode, re.Body)
	}
	return nil, &errors.NetworkError{Op: http.MethodPost, URL: TokenPath, Err: err}
}
