package domain

import "errors"

// Authentication failure conditions. All of them collapse to a Deny decision,
// but ErrSigningKeyNotFound is surfaced separately because it may indicate
// key-rotation skew between the authority and its published key set.
var (
	// ErrMalformedCredential indicates the bearer credential could not be split
	// into scheme and token or the token itself could not be decoded.
	ErrMalformedCredential = errors.New("malformed credential")

	// ErrSigningKeyNotFound indicates the requested kid is absent from the
	// authority's published key set.
	ErrSigningKeyNotFound = errors.New("no signing key found for kid")

	// ErrKeySetUnavailable indicates the authority's key set endpoint could not
	// be fetched; treated as "no key available" rather than a transport fault.
	ErrKeySetUnavailable = errors.New("key set unavailable")

	// ErrMissingRequiredClaims indicates a token with a valid signature that
	// lacks the subject or tenant claim.
	ErrMissingRequiredClaims = errors.New("missing required claims")
)
