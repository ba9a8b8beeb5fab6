package domain

// RawLaunchURL is the single launch argument handed to the bridge by the protocol handler.
type RawLaunchURL string

type LaunchURL struct {
	Schema string
	Path   string
	Query  map[string]string
}

// Get returns the query value for key, or an empty string when absent.
func (u *LaunchURL) Get(key string) string {
	if u == nil {
		return ""
	}
	return u.Query[key]
}
