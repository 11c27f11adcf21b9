package launch

import (
	"os"
	"os/user"
)

// Identity names the account a run is prepared for. It is resolved once and
// passed down explicitly so that parameter derivation depends only on its
// inputs.
type Identity struct {
	User string
	Home string
}

// CurrentIdentity resolves the calling user. Some cluster login nodes run
// without a complete user database, so environment variables serve as a
// fallback for both fields.
func CurrentIdentity() (Identity, error) {
	var id Identity

	if u, err := user.Current(); err == nil {
		id.User = u.Username
		id.Home = u.HomeDir
	}
	if id.User == "" {
		id.User = os.Getenv("USER")
	}
	if id.User == "" {
		id.User = os.Getenv("LOGNAME")
	}
	if id.Home == "" {
		if home, err := os.UserHomeDir(); err == nil {
			id.Home = home
		}
	}

	if id.User == "" {
		return Identity{}, NewConfigurationError("user", "", "cannot determine the current user name")
	}
	if id.Home == "" {
		return Identity{}, NewConfigurationError("home", "", "cannot determine the home directory")
	}
	return id, nil
}
