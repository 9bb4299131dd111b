package session

import (
	"context"
	"net/http"
	"testing"

	"github.com/dverenev/priceadmin/internal/client/api"
	"github.com/dverenev/priceadmin/internal/client/models"
	"github.com/dverenev/priceadmin/internal/client/notify"
	"github.com/dverenev/priceadmin/internal/client/repositories/settings"
	"github.com/dverenev/priceadmin/internal/client/transport"
	"github.com/dverenev/priceadmin/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuth implements AuthAPI for unit tests.
type fakeAuth struct {
	sendMsg  string
	sendErr  error
	sendN    int
	lastSend string

	verifyRes  *api.VerifyResult
	verifyErr  error
	verifyN    int
	lastVerify [2]string

	profileUser *models.User
	profileErr  error
	profileN    int

	logoutErr error
	logoutN   int

	refreshTok string
	refreshErr error
}

func (f *fakeAuth) SendVerificationCode(ctx context.Context, email string) (string, error) {
	f.sendN++
	f.lastSend = email
	return f.sendMsg, f.sendErr
}

func (f *fakeAuth) VerifyCode(ctx context.Context, email, code string) (*api.VerifyResult, error) {
	f.verifyN++
	f.lastVerify = [2]string{email, code}
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return f.verifyRes, nil
}

func (f *fakeAuth) Profile(ctx context.Context) (*models.User, error) {
	f.profileN++
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	return f.profileUser, nil
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.logoutN++
	return f.logoutErr
}

func (f *fakeAuth) Refresh(ctx context.Context) (string, error) {
	return f.refreshTok, f.refreshErr
}

func newManager(t *testing.T, auth *fakeAuth) (*Manager, *settings.TokenStore, *notify.Center) {
	t.Helper()
	tokens := settings.NewTokenStore(settings.NewMemoryRepository())
	notes := notify.NewCenter()
	return New(auth, tokens, notes, nil), tokens, notes
}

func lastToast(t *testing.T, notes *notify.Center) notify.Toast {
	t.Helper()
	feed := notes.Recent()
	require.NotEmpty(t, feed)
	return feed[len(feed)-1]
}

func unauthorized() error {
	return &transport.Error{Kind: transport.KindHTTP, Status: http.StatusUnauthorized, Message: "Your session has expired. Please log in again."}
}

func TestRequestCode_RejectsBadEmailBeforeNetwork(t *testing.T) {
	auth := &fakeAuth{}
	m, _, _ := newManager(t, auth)

	for _, email := range []string{"", "plain", "no@tld", "a b@c.de", "@x.com"} {
		err := m.RequestCode(context.Background(), email)
		require.ErrorIs(t, err, common.ErrorValidation, "email %q", email)
	}
	assert.Zero(t, auth.sendN, "no network call for invalid emails")
}

func TestRequestCode_SuccessEmitsVerificationToast(t *testing.T) {
	auth := &fakeAuth{sendMsg: "Verification code sent! Check your email."}
	m, _, notes := newManager(t, auth)

	require.NoError(t, m.RequestCode(context.Background(), "user@example.com"))

	assert.Equal(t, "user@example.com", auth.lastSend)
	assert.Equal(t, "user@example.com", m.PendingEmail())

	snap := m.Snapshot()
	assert.False(t, snap.IsAuthenticated, "sending a code must not authenticate")

	toast := lastToast(t, notes)
	assert.Equal(t, notify.Success, toast.Variant)
	assert.Contains(t, toast.Message, "Verification")
}

func TestRequestCode_FailureLeavesSessionUnchanged(t *testing.T) {
	auth := &fakeAuth{sendErr: &transport.Error{Kind: transport.KindHTTP, Status: 429, Message: "Too many requests. Please try again later."}}
	m, _, notes := newManager(t, auth)

	err := m.RequestCode(context.Background(), "user@example.com")
	require.Error(t, err)

	assert.False(t, m.Snapshot().IsAuthenticated)
	assert.Empty(t, m.PendingEmail())

	toast := lastToast(t, notes)
	assert.Equal(t, notify.Error, toast.Variant)
	assert.Contains(t, toast.Message, "Too many requests")
}

func TestRedeemCode_RejectsBadCodeBeforeNetwork(t *testing.T) {
	auth := &fakeAuth{}
	m, _, _ := newManager(t, auth)

	for _, code := range []string{"", "12345", "abcdef", "12 34"} {
		err := m.RedeemCode(context.Background(), "user@example.com", code)
		require.ErrorIs(t, err, common.ErrorValidation, "code %q", code)
	}
	assert.Zero(t, auth.verifyN)
}

func TestRedeemCode_NormalizesTypedCode(t *testing.T) {
	auth := &fakeAuth{verifyRes: &api.VerifyResult{
		User:  models.User{ID: "u-1", Email: "user@example.com"},
		Token: "tok",
	}}
	m, _, _ := newManager(t, auth)

	// Non-digits stripped, truncated to six characters.
	require.NoError(t, m.RedeemCode(context.Background(), "user@example.com", "12-34-56-78"))
	assert.Equal(t, "123456", auth.lastVerify[1])
}

func TestRedeemCode_SuccessAuthenticatesAndPersistsToken(t *testing.T) {
	auth := &fakeAuth{verifyRes: &api.VerifyResult{
		User:  models.User{ID: "u-1", Email: "user@example.com", IsVerified: true},
		Token: "tok-abc",
	}}
	m, tokens, notes := newManager(t, auth)

	require.NoError(t, m.RedeemCode(context.Background(), "user@example.com", "123456"))

	snap := m.Snapshot()
	assert.True(t, snap.IsAuthenticated)
	require.NotNil(t, snap.User)
	assert.Equal(t, "user@example.com", snap.User.Email)

	tok, err := tokens.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", tok)

	toast := lastToast(t, notes)
	assert.Equal(t, notify.Success, toast.Variant)
	assert.Contains(t, toast.Message, "Login successful")
}

func TestRedeemCode_FailureStaysUnauthenticated(t *testing.T) {
	auth := &fakeAuth{verifyErr: unauthorized()}
	m, tokens, notes := newManager(t, auth)

	err := m.RedeemCode(context.Background(), "user@example.com", "000000")
	require.Error(t, err)

	assert.False(t, m.Snapshot().IsAuthenticated)
	tok, _ := tokens.Token(context.Background())
	assert.Empty(t, tok)
	assert.Equal(t, notify.Error, lastToast(t, notes).Variant)
}

func TestCheckStatus_NoTokenMeansUnauthenticated(t *testing.T) {
	auth := &fakeAuth{}
	m, _, _ := newManager(t, auth)

	require.NoError(t, m.CheckStatus(context.Background()))

	snap := m.Snapshot()
	assert.True(t, snap.IsInitialized)
	assert.False(t, snap.IsAuthenticated)
	assert.Zero(t, auth.profileN, "no profile fetch without a token")
}

func TestCheckStatus_ValidTokenAuthenticates(t *testing.T) {
	auth := &fakeAuth{profileUser: &models.User{ID: "u-1", Email: "user@example.com"}}
	m, tokens, _ := newManager(t, auth)
	require.NoError(t, tokens.SetToken(context.Background(), "stored-tok"))

	require.NoError(t, m.CheckStatus(context.Background()))

	snap := m.Snapshot()
	assert.True(t, snap.IsAuthenticated)
	require.NotNil(t, snap.User)
	assert.Equal(t, "u-1", snap.User.ID)
}

func TestCheckStatus_RejectedTokenIsCleared(t *testing.T) {
	auth := &fakeAuth{profileErr: unauthorized()}
	m, tokens, _ := newManager(t, auth)
	require.NoError(t, tokens.SetToken(context.Background(), "stale-tok"))

	require.NoError(t, m.CheckStatus(context.Background()))

	assert.False(t, m.Snapshot().IsAuthenticated)
	tok, _ := tokens.Token(context.Background())
	assert.Empty(t, tok)
}

func TestCheckStatus_Idempotent(t *testing.T) {
	auth := &fakeAuth{profileUser: &models.User{ID: "u-1"}}
	m, tokens, _ := newManager(t, auth)
	require.NoError(t, tokens.SetToken(context.Background(), "tok"))

	require.NoError(t, m.CheckStatus(context.Background()))
	first := m.Snapshot().IsAuthenticated
	require.NoError(t, m.CheckStatus(context.Background()))
	second := m.Snapshot().IsAuthenticated

	assert.Equal(t, first, second)
	assert.True(t, first)
}

func TestLogout_AlwaysClearsLocalState(t *testing.T) {
	t.Run("remote success", func(t *testing.T) {
		auth := &fakeAuth{verifyRes: &api.VerifyResult{User: models.User{ID: "u"}, Token: "tok"}}
		m, tokens, notes := newManager(t, auth)
		require.NoError(t, m.RedeemCode(context.Background(), "user@example.com", "123456"))

		require.NoError(t, m.Logout(context.Background()))

		assert.False(t, m.Snapshot().IsAuthenticated)
		tok, _ := tokens.Token(context.Background())
		assert.Empty(t, tok)
		assert.Equal(t, notify.Info, lastToast(t, notes).Variant)
	})

	t.Run("remote failure still clears locally", func(t *testing.T) {
		auth := &fakeAuth{
			verifyRes: &api.VerifyResult{User: models.User{ID: "u"}, Token: "tok"},
			logoutErr: &transport.Error{Kind: transport.KindNetwork, Message: "Network error"},
		}
		m, tokens, notes := newManager(t, auth)
		require.NoError(t, m.RedeemCode(context.Background(), "user@example.com", "123456"))

		require.NoError(t, m.Logout(context.Background()))

		assert.False(t, m.Snapshot().IsAuthenticated)
		tok, _ := tokens.Token(context.Background())
		assert.Empty(t, tok)
		assert.Equal(t, notify.Warning, lastToast(t, notes).Variant)
	})
}

func TestRefreshProfile_UnauthorizedForcesLogout(t *testing.T) {
	auth := &fakeAuth{verifyRes: &api.VerifyResult{User: models.User{ID: "u"}, Token: "tok"}}
	m, tokens, _ := newManager(t, auth)
	require.NoError(t, m.RedeemCode(context.Background(), "user@example.com", "123456"))

	auth.profileErr = unauthorized()
	require.NoError(t, m.RefreshProfile(context.Background()))

	assert.False(t, m.Snapshot().IsAuthenticated)
	tok, _ := tokens.Token(context.Background())
	assert.Empty(t, tok)
	assert.Equal(t, 1, auth.logoutN, "forced logout goes through Logout")
}

func TestRefreshProfile_NoopWhileUnauthenticated(t *testing.T) {
	auth := &fakeAuth{}
	m, _, _ := newManager(t, auth)

	require.NoError(t, m.RefreshProfile(context.Background()))
	assert.Zero(t, auth.profileN)
}

func TestRefresh_SingleAttemptFailureClearsSession(t *testing.T) {
	auth := &fakeAuth{
		verifyRes:  &api.VerifyResult{User: models.User{ID: "u"}, Token: "tok"},
		refreshErr: unauthorized(),
	}
	m, tokens, notes := newManager(t, auth)
	require.NoError(t, m.RedeemCode(context.Background(), "user@example.com", "123456"))

	err := m.Refresh(context.Background())
	require.Error(t, err)

	assert.False(t, m.Snapshot().IsAuthenticated)
	tok, _ := tokens.Token(context.Background())
	assert.Empty(t, tok)
	assert.Equal(t, notify.Error, lastToast(t, notes).Variant)
}

func TestRefresh_SuccessStoresNewToken(t *testing.T) {
	auth := &fakeAuth{
		verifyRes:  &api.VerifyResult{User: models.User{ID: "u"}, Token: "tok-1"},
		refreshTok: "tok-2",
	}
	m, tokens, _ := newManager(t, auth)
	require.NoError(t, m.RedeemCode(context.Background(), "user@example.com", "123456"))

	require.NoError(t, m.Refresh(context.Background()))

	tok, err := tokens.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-2", tok)
	assert.True(t, m.Snapshot().IsAuthenticated)
}

func TestInit_RunsCheckOnlyOnce(t *testing.T) {
	auth := &fakeAuth{profileUser: &models.User{ID: "u"}}
	m, tokens, _ := newManager(t, auth)
	require.NoError(t, tokens.SetToken(context.Background(), "tok"))

	m.Init(context.Background())
	m.Init(context.Background())

	assert.Equal(t, 1, auth.profileN)
	assert.True(t, m.Snapshot().IsInitialized)
}
