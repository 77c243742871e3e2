package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkaleva/ornata/internal/challenge"
	"github.com/mkaleva/ornata/internal/common"
	"github.com/mkaleva/ornata/internal/creds"
	"github.com/mkaleva/ornata/internal/gateway"
	"github.com/mkaleva/ornata/internal/logging"
	"github.com/mkaleva/ornata/internal/models"

	_ "modernc.org/sqlite"
)

// ---- helpers ----

func setupCreds(t *testing.T) *creds.SQLiteRepository {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE credentials (key TEXT PRIMARY KEY, value TEXT NOT NULL)`)
	require.NoError(t, err)
	return creds.NewSQLiteRepository(db)
}

func getCred(t *testing.T, repo creds.Repository, key string) string {
	t.Helper()
	v, err := repo.Get(context.Background(), key)
	require.NoError(t, err)
	return v
}

// ---- fake gateway ----

type gwCall struct {
	method   string
	endpoint string
	body     any
}

type fakeGateway struct {
	calls   []gwCall
	handler func(method, endpoint string, body any, out any) error
}

func (f *fakeGateway) Call(ctx context.Context, method, endpoint string, body any, out any) error {
	f.calls = append(f.calls, gwCall{method, endpoint, body})
	if f.handler == nil {
		return nil
	}
	return f.handler(method, endpoint, body, out)
}

// respond fills out with the decoded raw JSON, mimicking the real gateway.
func respond(t *testing.T, out any, raw string) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(raw), out))
}

type staticChallenge string

func (s staticChallenge) Token(ctx context.Context, action string) string { return string(s) }

func newStore(t *testing.T, gw gateway.Caller, repo creds.Repository, ch challenge.Provider) *Store {
	t.Helper()
	if ch == nil {
		ch = challenge.Disabled{}
	}
	return NewStore(gw, repo, ch, logging.NopLogger{})
}

// ---- restore ----

func TestRestore_NothingPersisted(t *testing.T) {
	s := newStore(t, &fakeGateway{}, setupCreds(t), nil)

	require.True(t, s.Loading())
	require.NoError(t, s.Restore(context.Background()))
	require.Equal(t, Anonymous, s.State())
	require.Nil(t, s.User())
	require.False(t, s.Loading())
}

func TestRestore_ValidPersistedSession(t *testing.T) {
	repo := setupCreds(t)
	ctx := context.Background()
	require.NoError(t, repo.Set(ctx, creds.KeyToken, "T1"))
	require.NoError(t, repo.Set(ctx, creds.KeyUser, `{"id":"u1","name":"Alice","email":"alice@shop.io","role":"user"}`))

	s := newStore(t, &fakeGateway{}, repo, nil)
	require.NoError(t, s.Restore(ctx))

	require.Equal(t, Authenticated, s.State())
	u := s.User()
	require.NotNil(t, u)
	require.Equal(t, "alice@shop.io", u.Email)
}

func TestRestore_CorruptedIdentityErasesStorage(t *testing.T) {
	repo := setupCreds(t)
	ctx := context.Background()
	require.NoError(t, repo.Set(ctx, creds.KeyToken, "T1"))
	require.NoError(t, repo.Set(ctx, creds.KeyUser, "not-json"))

	s := newStore(t, &fakeGateway{}, repo, nil)
	require.NoError(t, s.Restore(ctx))

	require.Equal(t, Anonymous, s.State())
	require.Nil(t, s.User())
	require.Equal(t, "", getCred(t, repo, creds.KeyToken))
	require.Equal(t, "", getCred(t, repo, creds.KeyUser))
}

func TestRestore_EmptyObjectIdentityTreatedAsCorrupted(t *testing.T) {
	repo := setupCreds(t)
	ctx := context.Background()
	require.NoError(t, repo.Set(ctx, creds.KeyToken, "T1"))
	require.NoError(t, repo.Set(ctx, creds.KeyUser, `null`))

	s := newStore(t, &fakeGateway{}, repo, nil)
	require.NoError(t, s.Restore(ctx))

	require.Equal(t, Anonymous, s.State())
	require.Equal(t, "", getCred(t, repo, creds.KeyToken))
}

// ---- sign-up ----

func TestSignUp_RequiresName(t *testing.T) {
	gw := &fakeGateway{}
	s := newStore(t, gw, setupCreds(t), nil)

	err := s.SignUp(context.Background(), "  ", "a@b.com", "secret1")

	var ve *common.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Empty(t, gw.calls, "no network call before validation passes")
}

func TestSignUp_FullUserInResponse(t *testing.T) {
	repo := setupCreds(t)
	gw := &fakeGateway{handler: func(method, endpoint string, body, out any) error {
		respond(t, out, `{"token":"T1","user":{"_id":"u1","name":"Alice","email":"alice@shop.io","role":"admin"}}`)
		return nil
	}}
	s := newStore(t, gw, repo, nil)

	var events []Event
	s.Subscribe(func(ev Event) { events = append(events, ev) })

	require.NoError(t, s.SignUp(context.Background(), "Alice", "alice@shop.io", "secret1"))

	require.Equal(t, Authenticated, s.State())
	require.True(t, s.User().IsAdmin())
	require.Equal(t, "T1", getCred(t, repo, creds.KeyToken))
	require.Equal(t, []Event{SignedIn}, events)
}

func TestSignUp_UserIDOnlySynthesizesIdentity(t *testing.T) {
	repo := setupCreds(t)
	gw := &fakeGateway{handler: func(method, endpoint string, body, out any) error {
		respond(t, out, `{"token":"T1","userId":"u7"}`)
		return nil
	}}
	s := newStore(t, gw, repo, nil)

	require.NoError(t, s.SignUp(context.Background(), "Bob", "bob@shop.io", "secret1"))

	u := s.User()
	require.Equal(t, "u7", u.ID)
	require.Equal(t, "Bob", u.Name)
	require.Equal(t, "bob@shop.io", u.Email)
	require.Equal(t, models.RoleUser, u.Role)

	var persisted models.User
	require.NoError(t, json.Unmarshal([]byte(getCred(t, repo, creds.KeyUser)), &persisted))
	require.Equal(t, "u7", persisted.ID)
}

func TestSignUp_MissingTokenOrIdentityFails(t *testing.T) {
	for name, raw := range map[string]string{
		"no token":    `{"userId":"u1"}`,
		"only token":  `{"token":"T1"}`,
		"empty token": `{"token":"","user":{"id":"u1"}}`,
	} {
		t.Run(name, func(t *testing.T) {
			gw := &fakeGateway{handler: func(method, endpoint string, body, out any) error {
				respond(t, out, raw)
				return nil
			}}
			s := newStore(t, gw, setupCreds(t), nil)

			err := s.SignUp(context.Background(), "Alice", "a@b.com", "secret1")

			var ae *common.AuthError
			require.ErrorAs(t, err, &ae)
			require.Equal(t, "Invalid response from server", ae.Message)
			require.Equal(t, Uninitialized, s.State())
		})
	}
}

func TestSignUp_IncludesChallengeToken(t *testing.T) {
	var sent []byte
	gw := &fakeGateway{handler: func(method, endpoint string, body, out any) error {
		var err error
		sent, err = json.Marshal(body)
		require.NoError(t, err)
		respond(t, out, `{"token":"T1","userId":"u1"}`)
		return nil
	}}
	s := newStore(t, gw, setupCreds(t), staticChallenge("proof-1"))

	require.NoError(t, s.SignUp(context.Background(), "Alice", "a@b.com", "secret1"))
	require.Contains(t, string(sent), `"recaptchaToken":"proof-1"`)
}

// ---- sign-in ----

func TestSignIn_FullUserInResponse(t *testing.T) {
	repo := setupCreds(t)
	gw := &fakeGateway{handler: func(method, endpoint string, body, out any) error {
		require.Equal(t, "/auth/signin", endpoint)
		respond(t, out, `{"token":"T1","user":{"id":"u1","name":"Alice","email":"alice@shop.io"}}`)
		return nil
	}}
	s := newStore(t, gw, repo, nil)

	require.NoError(t, s.SignIn(context.Background(), "alice@shop.io", "secret1"))
	require.Equal(t, "u1", s.User().ID)
	require.Len(t, gw.calls, 1, "no profile fetch needed")
}

func TestSignIn_ProfileFallback(t *testing.T) {
	repo := setupCreds(t)
	gw := &fakeGateway{handler: func(method, endpoint string, body, out any) error {
		switch endpoint {
		case "/auth/signin":
			respond(t, out, `{"token":"T1"}`)
			return nil
		case "/auth/profile":
			respond(t, out, `{"user":{"_id":"u1","name":"Alice","email":"alice@shop.io"}}`)
			return nil
		}
		t.Fatalf("unexpected endpoint %s", endpoint)
		return nil
	}}
	s := newStore(t, gw, repo, nil)

	require.NoError(t, s.SignIn(context.Background(), "alice@shop.io", "secret1"))
	require.Equal(t, "u1", s.User().ID)
	require.Equal(t, "T1", getCred(t, repo, creds.KeyToken))
}

func TestSignIn_MinimalIdentityWhenProfileFails(t *testing.T) {
	repo := setupCreds(t)
	gw := &fakeGateway{handler: func(method, endpoint string, body, out any) error {
		switch endpoint {
		case "/auth/signin":
			respond(t, out, `{"token":"T1"}`)
			return nil
		case "/auth/profile":
			return &gateway.RequestError{Status: http.StatusInternalServerError, Message: "Something went wrong"}
		}
		return nil
	}}
	s := newStore(t, gw, repo, nil)

	require.NoError(t, s.SignIn(context.Background(), "a@b.com", "secret1"))

	u := s.User()
	require.Equal(t, "a", u.Name, "display name is the email local part")
	require.Equal(t, "a@b.com", u.Email)
	require.Equal(t, "T1", getCred(t, repo, creds.KeyToken))
}

func TestSignIn_NoTokenFails(t *testing.T) {
	gw := &fakeGateway{handler: func(method, endpoint string, body, out any) error {
		respond(t, out, `{}`)
		return nil
	}}
	s := newStore(t, gw, setupCreds(t), nil)

	var ae *common.AuthError
	require.ErrorAs(t, s.SignIn(context.Background(), "a@b.com", "secret1"), &ae)
}

func TestSignIn_GatewayErrorPropagates(t *testing.T) {
	gw := &fakeGateway{handler: func(method, endpoint string, body, out any) error {
		return &gateway.RequestError{Status: http.StatusUnauthorized, Message: "Invalid credentials"}
	}}
	s := newStore(t, gw, setupCreds(t), nil)

	err := s.SignIn(context.Background(), "a@b.com", "wrong")

	var re *gateway.RequestError
	require.ErrorAs(t, err, &re)
	require.Equal(t, "Invalid credentials", re.Message)
}

// ---- sign-out ----

func TestSignOut_ClearsEverythingWithoutBackend(t *testing.T) {
	repo := setupCreds(t)
	ctx := context.Background()
	require.NoError(t, repo.Set(ctx, creds.KeyToken, "T1"))
	require.NoError(t, repo.Set(ctx, creds.KeyUser, `{"id":"u1","name":"Alice"}`))

	gw := &fakeGateway{}
	s := newStore(t, gw, repo, nil)
	require.NoError(t, s.Restore(ctx))

	var events []Event
	s.Subscribe(func(ev Event) { events = append(events, ev) })

	require.NoError(t, s.SignOut(ctx))

	require.Equal(t, Anonymous, s.State())
	require.Nil(t, s.User())
	require.Equal(t, "", getCred(t, repo, creds.KeyToken))
	require.Equal(t, "", getCred(t, repo, creds.KeyUser))
	require.Empty(t, gw.calls, "sign-out never contacts the backend")
	require.Equal(t, []Event{SignedOut}, events)
}

// ---- subscriptions ----

func TestSubscribe_UnsubscribeStopsEvents(t *testing.T) {
	gw := &fakeGateway{handler: func(method, endpoint string, body, out any) error {
		respond(t, out, `{"token":"T1","userId":"u1"}`)
		return nil
	}}
	s := newStore(t, gw, setupCreds(t), nil)

	var count int
	unsubscribe := s.Subscribe(func(Event) { count++ })

	require.NoError(t, s.SignUp(context.Background(), "Alice", "a@b.com", "secret1"))
	require.Equal(t, 1, count)

	unsubscribe()
	require.NoError(t, s.SignOut(context.Background()))
	require.Equal(t, 1, count)
}
