package session

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/mysqlstore"
	"github.com/alexedwards/scs/v2"
)

// New creates a session manager backed by the sessions table. Sessions
// carry non-auth state for the public site (flash messages, form
// redisplay); admin API authentication uses bearer tokens instead.
func New(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := scs.New()
	sm.Store = mysqlstore.New(db)

	sm.Lifetime = 24 * time.Hour
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = !isDev
	sm.Cookie.SameSite = http.SameSiteStrictMode
	if isDev {
		sm.Cookie.SameSite = http.SameSiteLaxMode
	}

	return sm
}
