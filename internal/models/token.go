package models

import "time"

// TokenPair is the credential set held while a session is active.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func (p TokenPair) IsZero() bool {
	return p.AccessToken == "" && p.RefreshToken == ""
}

// DecodedToken is the inspected payload of an access token. Times are seconds
// since the epoch; zero means the claim was absent.
type DecodedToken struct {
	SubjectID string
	Email     string
	Role      Role
	IssuedAt  int64
	ExpiresAt int64
}

func (d *DecodedToken) HasExpiry() bool {
	return d.ExpiresAt != 0
}

// ExpiredAt reports whether the token is past its expiry at now.
// A token without an expiry is treated as expired.
func (d *DecodedToken) ExpiredAt(now time.Time) bool {
	if !d.HasExpiry() {
		return true
	}
	return d.ExpiresAt < now.Unix()
}
