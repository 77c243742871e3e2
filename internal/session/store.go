// Package session owns the authenticated-user identity: restoring it from
// local persistence at startup, sign-up/sign-in/sign-out against the backend,
// and change notifications for dependent stores.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/mkaleva/ornata/internal/challenge"
	"github.com/mkaleva/ornata/internal/common"
	"github.com/mkaleva/ornata/internal/creds"
	"github.com/mkaleva/ornata/internal/gateway"
	"github.com/mkaleva/ornata/internal/logging"
	"github.com/mkaleva/ornata/internal/models"
)

// State is the session store's lifecycle phase.
type State int

const (
	Uninitialized State = iota
	Restoring
	Anonymous
	Authenticated
)

type signUpRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	ChallengeToken string `json:"recaptchaToken,omitempty"`
}

type signInRequest struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	ChallengeToken string `json:"recaptchaToken,omitempty"`
}

// Store holds the current Session. A nil user means anonymous. All sign-up /
// sign-in / sign-out transitions are persisted before subscribers are
// notified.
type Store struct {
	gw        gateway.Caller
	creds     creds.Repository
	challenge challenge.Provider
	log       logging.Logger

	mu    sync.Mutex
	state State
	user  *models.User

	subMu   sync.Mutex
	subs    map[int]func(Event)
	nextSub int
}

func NewStore(gw gateway.Caller, repo creds.Repository, ch challenge.Provider, log logging.Logger) *Store {
	return &Store{
		gw:        gw,
		creds:     repo,
		challenge: ch,
		log:       log,
		state:     Uninitialized,
		subs:      make(map[int]func(Event)),
	}
}

// Subscribe registers fn for session events and returns its unsubscribe
// function. Events fire synchronously after the state change is persisted.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) broadcast(ev Event) {
	s.subMu.Lock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// User returns a copy of the current identity, or nil when anonymous.
func (s *Store) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// State returns the store's current lifecycle phase.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Loading reports whether the store has not yet settled into Anonymous or
// Authenticated.
func (s *Store) Loading() bool {
	st := s.State()
	return st == Uninitialized || st == Restoring
}

// Restore loads a persisted session, if any. Corrupted persisted state is
// erased silently and the store settles into Anonymous; only storage-level
// failures are returned.
func (s *Store) Restore(ctx context.Context) error {
	s.setState(Restoring, nil)

	token, err := s.creds.Get(ctx, creds.KeyToken)
	if err != nil {
		return fmt.Errorf("read credential: %w", err)
	}
	raw, err := s.creds.Get(ctx, creds.KeyUser)
	if err != nil {
		return fmt.Errorf("read identity: %w", err)
	}

	if token == "" || raw == "" {
		s.setState(Anonymous, nil)
		return nil
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil || user == (models.User{}) {
		s.log.Warn(ctx, "corrupted session data, clearing local credentials")
		if err := s.creds.Clear(ctx); err != nil {
			return fmt.Errorf("clear corrupted credentials: %w", err)
		}
		s.setState(Anonymous, nil)
		return nil
	}

	s.setState(Authenticated, &user)
	s.log.Debug(ctx, "session restored", "email", user.Email)
	return nil
}

// SignUp creates an account and establishes a session. The name is required;
// the challenge token is attached when the provider yields one.
func (s *Store) SignUp(ctx context.Context, name, email, password string) error {
	if strings.TrimSpace(name) == "" {
		return common.NewValidationError("name is required")
	}

	payload := signUpRequest{Name: name, Email: email, Password: password}
	payload.ChallengeToken = s.challenge.Token(ctx, "signup")

	var resp models.WireAuth
	if err := s.gw.Call(ctx, http.MethodPost, "/auth/signup", payload, &resp); err != nil {
		return err
	}
	if resp.Token == "" {
		return common.NewAuthError("Invalid response from server")
	}

	var user models.User
	switch {
	case resp.User != nil:
		user = resp.User.Normalize()
	case resp.UserID != "":
		// Backend returned only an identifier; synthesize the rest from the
		// submitted form.
		user = models.User{ID: resp.UserID, Name: name, Email: email, Role: models.RoleUser}
	default:
		return common.NewAuthError("Invalid response from server")
	}

	return s.establish(ctx, resp.Token, user)
}

// SignIn authenticates and establishes a session. When the response carries
// no identity, a follow-up profile fetch runs with the fresh credential; if
// that also fails, a minimal identity is synthesized from the email.
func (s *Store) SignIn(ctx context.Context, email, password string) error {
	payload := signInRequest{Email: email, Password: password}
	payload.ChallengeToken = s.challenge.Token(ctx, "signin")

	var resp models.WireAuth
	if err := s.gw.Call(ctx, http.MethodPost, "/auth/signin", payload, &resp); err != nil {
		return err
	}
	if resp.Token == "" {
		return common.NewAuthError("Invalid response from server")
	}

	if resp.User != nil {
		return s.establish(ctx, resp.Token, resp.User.Normalize())
	}

	// Persist the credential first so the profile fetch is authenticated.
	if err := s.creds.Set(ctx, creds.KeyToken, resp.Token); err != nil {
		return fmt.Errorf("persist credential: %w", err)
	}

	user, err := s.profile(ctx)
	if err != nil {
		s.log.Warn(ctx, "profile fetch failed, using minimal identity", "error", err)
		local, _, _ := strings.Cut(email, "@")
		user = models.User{Name: local, Email: email, Role: models.RoleUser}
	}

	return s.establish(ctx, resp.Token, user)
}

// SignOut erases the persisted credential and identity and notifies
// subscribers. It never contacts the backend.
func (s *Store) SignOut(ctx context.Context) error {
	if err := s.creds.Clear(ctx); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	s.setState(Anonymous, nil)
	s.broadcast(SignedOut)
	return nil
}

// establish persists the credential and identity atomically, flips the store
// to Authenticated, and notifies subscribers.
func (s *Store) establish(ctx context.Context, token string, user models.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}

	err = s.creds.SetMany(ctx, map[string]string{
		creds.KeyToken: token,
		creds.KeyUser:  string(raw),
	})
	if err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	s.setState(Authenticated, &user)
	s.broadcast(SignedIn)
	return nil
}

func (s *Store) profile(ctx context.Context) (models.User, error) {
	var resp models.WireProfile
	if err := s.gw.Call(ctx, http.MethodGet, "/auth/profile", nil, &resp); err != nil {
		return models.User{}, err
	}
	return resp.Normalize(), nil
}

func (s *Store) setState(state State, user *models.User) {
	s.mu.Lock()
	s.state = state
	s.user = user
	s.mu.Unlock()
}
