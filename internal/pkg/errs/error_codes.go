/*
Package errs provides custom error types and application-level error code constants.

The codes identify why a session, login or backend call failed, both in CLI output and in
the dashboard's JSON responses.
*/
package errs

// 1xxx: Dashboard request handling errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body is not valid JSON.
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates trailing data after the JSON document.
	ErrExtraContentInBody = 1004

	// ErrFormParseFailed indicates that the submitted form could not be parsed.
	ErrFormParseFailed = 1005

	// ErrRequestEntityTooLarge indicates a request body over the accepted size.
	ErrRequestEntityTooLarge = 1006

	// ErrRateLimitExceeded indicates too many login attempts from one address.
	ErrRateLimitExceeded = 1007

	// ErrOriginNotAllowed indicates a state-changing request sent from another site.
	ErrOriginNotAllowed = 1008
)

// 2xxx: Session and login errors. All of them send the user back to the login view.
const (
	// ErrSessionMissing indicates that no token pair is stored locally.
	ErrSessionMissing = 2001

	// ErrSessionInvalid indicates that the stored access token cannot be decoded.
	ErrSessionInvalid = 2002

	// ErrSessionExpired indicates that the stored access token is past its expiry.
	ErrSessionExpired = 2003

	// ErrRefreshFailed indicates that the refresh endpoint rejected or failed the request.
	ErrRefreshFailed = 2004

	// ErrCodeMissing indicates a login submit without an authorization code.
	ErrCodeMissing = 2101

	// ErrAuthorizeFailed indicates that the authorization code was rejected.
	ErrAuthorizeFailed = 2102

	// ErrJoinKeyWrong indicates a first login with a missing or wrong join key.
	ErrJoinKeyWrong = 2103
)

// 3xxx: Backend API errors
const (
	// ErrUnauthorized indicates that the API rejected the bearer token.
	ErrUnauthorized = 3001

	// ErrAPIUnavailable indicates a transport failure or an unexpected API status.
	ErrAPIUnavailable = 3002

	// ErrInvalidResponse indicates an API response body that could not be decoded.
	ErrInvalidResponse = 3003

	// ErrNoConnection indicates that the API has no WireGuard connection for this user.
	ErrNoConnection = 3004

	// ErrPeerNotFound indicates that no peer matches the requested identity.
	ErrPeerNotFound = 3005
)

// 4xxx: Local environment errors
const (
	// ErrStorageFailed indicates that local storage could not be read or written.
	ErrStorageFailed = 4001

	// ErrClipboardFailed indicates that the system clipboard is not available.
	ErrClipboardFailed = 4002
)

// 5xxx: Internal errors
const (
	// ErrUnknown represents an unclassified error.
	ErrUnknown = 5000
)
