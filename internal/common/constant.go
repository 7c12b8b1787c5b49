// Package common contains shared constants and sentinel errors used across
// blogerz components.
package common

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "blogerz_session"

// AuthorizationHeaderName is the fallback header for API clients that do not
// use cookies.
const AuthorizationHeaderName = "Authorization"
