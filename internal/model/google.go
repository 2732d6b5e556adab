package model

// GoogleUserInfo is the subset of Google's userinfo endpoint payload the
// login flow needs.
type GoogleUserInfo struct {
	GID        string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
}
