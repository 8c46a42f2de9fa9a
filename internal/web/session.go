package web

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

const (
	sessionName   = "agentes_panel"
	filterPrefix  = "filtro:"
	flashSuccess  = "success"
	flashError    = "error"
	flashSplitter = "|"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Kind    string
	Message string
}

func newSessionStore(secret, path string, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options.Path = path
	store.Options.HttpOnly = true
	store.Options.Secure = secure
	store.Options.SameSite = http.SameSiteLaxMode
	store.Options.MaxAge = 7 * 24 * 60 * 60
	return store
}

func (h *Handler) session(c *gin.Context) *sessions.Session {
	// A cookie that no longer decodes yields a fresh session.
	sess, _ := h.store.Get(c.Request, sessionName)
	return sess
}

func (h *Handler) addFlash(c *gin.Context, kind, message string) {
	sess := h.session(c)
	sess.AddFlash(kind + flashSplitter + message)
	h.saveSession(c, sess)
}

func (h *Handler) popFlashes(sess *sessions.Session) []Flash {
	raw := sess.Flashes()
	flashes := make([]Flash, 0, len(raw))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			continue
		}
		kind, message, found := strings.Cut(s, flashSplitter)
		if !found {
			kind, message = flashSuccess, s
		}
		flashes = append(flashes, Flash{Kind: kind, Message: message})
	}
	return flashes
}

func (h *Handler) saveSession(c *gin.Context, sess *sessions.Session) {
	if err := sess.Save(c.Request, c.Writer); err != nil {
		h.logger.Sugar().Warnw("session save failed", "error", err)
	}
}

// pageQuery returns the filter selections for page. Explicit query
// parameters win and are remembered; an empty query restores the last
// selections; reset=1 forgets them.
func (h *Handler) pageQuery(c *gin.Context, sess *sessions.Session, page string) url.Values {
	key := filterPrefix + page
	if c.Query("reset") != "" {
		delete(sess.Values, key)
		return url.Values{}
	}
	if c.Request.URL.RawQuery != "" {
		query := c.Request.URL.Query()
		sess.Values[key] = query.Encode()
		return query
	}
	if saved, ok := sess.Values[key].(string); ok {
		if query, err := url.ParseQuery(saved); err == nil {
			return query
		}
	}
	return url.Values{}
}
