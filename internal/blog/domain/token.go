package domain

// TokenPair is what login and register hand back: a short lived access token
// and a refresh token that can only be used to mint new tokens.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
