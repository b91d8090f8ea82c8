package types

// Identity is the authenticated user as asserted by the auth provider.
type Identity struct {
	Subject  string `json:"sub"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// DisplayName returns the name used on generated documents.
// Empty means the caller should use its own placeholder.
func (i *Identity) DisplayName() string {
	if i == nil {
		return ""
	}
	return i.Name
}
