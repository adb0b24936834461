/*
Package errs provides custom error types and application-level error code constants.

This file maps every code to its user-facing message and HTTP status.
*/
package errs

import "net/http"

// errorMap holds the template CustomError for every application error code.
var errorMap = map[int]CustomError{
	// 1xxx
	ErrInvalidParams:         {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusBadRequest},
	ErrUnsupportedMediaType:  {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusUnsupportedMediaType},
	ErrInvalidJSONFormat:     {Code: ErrInvalidJSONFormat, Message: "Unsupported request format.", Status: http.StatusBadRequest},
	ErrExtraContentInBody:    {Code: ErrExtraContentInBody, Message: "Request contains unexpected data.", Status: http.StatusBadRequest},
	ErrFormParseFailed:       {Code: ErrFormParseFailed, Message: "Invalid form submission.", Status: http.StatusBadRequest},
	ErrRequestEntityTooLarge: {Code: ErrRequestEntityTooLarge, Message: "Request body is too large.", Status: http.StatusRequestEntityTooLarge},
	ErrRateLimitExceeded:     {Code: ErrRateLimitExceeded, Message: "Too many attempts. Please try again later.", Status: http.StatusTooManyRequests},
	ErrOriginNotAllowed:      {Code: ErrOriginNotAllowed, Message: "Request origin is not allowed.", Status: http.StatusForbidden},

	// 2xxx
	ErrSessionMissing:  {Code: ErrSessionMissing, Message: "Please sign in to continue.", Status: http.StatusUnauthorized},
	ErrSessionInvalid:  {Code: ErrSessionInvalid, Message: "Stored session is invalid. Please sign in again.", Status: http.StatusUnauthorized},
	ErrSessionExpired:  {Code: ErrSessionExpired, Message: "Token expired. Please sign in again.", Status: http.StatusUnauthorized},
	ErrRefreshFailed:   {Code: ErrRefreshFailed, Message: "Could not refresh the session. Please sign in again.", Status: http.StatusUnauthorized},
	ErrCodeMissing:     {Code: ErrCodeMissing, Message: "Authorization code is missing. Please authorize again.", Status: http.StatusBadRequest},
	ErrAuthorizeFailed: {Code: ErrAuthorizeFailed, Message: "Authorize failed.", Status: http.StatusBadRequest},
	ErrJoinKeyWrong:    {Code: ErrJoinKeyWrong, Message: "The join key is wrong.", Status: http.StatusForbidden},

	// 3xxx
	ErrUnauthorized:    {Code: ErrUnauthorized, Message: "Invalid authentication credentials.", Status: http.StatusUnauthorized},
	ErrAPIUnavailable:  {Code: ErrAPIUnavailable, Message: "The VPN manager API is unavailable.", Status: http.StatusBadGateway},
	ErrInvalidResponse: {Code: ErrInvalidResponse, Message: "The VPN manager API sent an unexpected response.", Status: http.StatusBadGateway},
	ErrNoConnection:    {Code: ErrNoConnection, Message: "No VPN connection is assigned to this account.", Status: http.StatusNotFound},
	ErrPeerNotFound:    {Code: ErrPeerNotFound, Message: "Peer %s not found.", Status: http.StatusNotFound},

	// 4xxx
	ErrStorageFailed:   {Code: ErrStorageFailed, Message: "Local storage is not accessible."},
	ErrClipboardFailed: {Code: ErrClipboardFailed, Message: "Clipboard is not available."},

	// 5xxx
	ErrUnknown: {Code: ErrUnknown, Message: "Something went wrong. Please try again."},
}
