package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims is the payload segment of an access token as issued by the backend.
// The subject has been sent as "sub", "user_id" or "userId" depending on the API version.
type TokenClaims struct {
	Subject   UserID           `json:"sub"`
	UserID    UserID           `json:"user_id"`
	UserIDAlt UserID           `json:"userId"`
	Email     string           `json:"email,omitempty"`
	Role      Role             `json:"role,omitempty"`
	TokenType string           `json:"type,omitempty"`
	IssuedAt  *jwt.NumericDate `json:"iat,omitempty"`
	ExpiresAt *jwt.NumericDate `json:"exp,omitempty"`
}

// SubjectID returns the first identifier present.
func (c *TokenClaims) SubjectID() string {
	for _, id := range []UserID{c.Subject, c.UserID, c.UserIDAlt} {
		if !id.IsZero() {
			return id.String()
		}
	}
	return ""
}

// Decoded flattens the claims into a DecodedToken.
func (c *TokenClaims) Decoded() *DecodedToken {
	decoded := &DecodedToken{
		SubjectID: c.SubjectID(),
		Email:     c.Email,
		Role:      c.Role,
	}
	if c.IssuedAt != nil {
		decoded.IssuedAt = c.IssuedAt.Unix()
	}
	if c.ExpiresAt != nil {
		decoded.ExpiresAt = c.ExpiresAt.Unix()
	}
	return decoded
}
