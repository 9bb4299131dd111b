package common

// AuthorizationHeaderName is the HTTP header used to carry the session token
// on outbound requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token value in the Authorization header.
const BearerPrefix = "Bearer "

// Settings keys for durable client-side storage.
const (
	SettingAuthToken = "auth_token"
	SettingTheme     = "theme"
)
