package store

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
)

const sessionCookie = "swag_session"

// CheckoutInfo is the customer data collected on the checkout info form.
type CheckoutInfo struct {
	FirstName  string
	LastName   string
	PostalCode string
}

// cartLine preserves insertion order so the cart renders deterministically.
type cartLine struct {
	Slug     string
	Quantity int
}

// session is one shopper's server-side state.
type session struct {
	ID       string
	User     string
	Cart     []cartLine
	Checkout CheckoutInfo
}

func (s *session) addToCart(slug string) {
	for i := range s.Cart {
		if s.Cart[i].Slug == slug {
			s.Cart[i].Quantity++
			return
		}
	}
	s.Cart = append(s.Cart, cartLine{Slug: slug, Quantity: 1})
}

func (s *session) removeFromCart(slug string) {
	for i := range s.Cart {
		if s.Cart[i].Slug == slug {
			s.Cart = append(s.Cart[:i], s.Cart[i+1:]...)
			return
		}
	}
}

func (s *session) cartCount() int {
	var count int
	for _, line := range s.Cart {
		count += line.Quantity
	}
	return count
}

// sessionStore keeps all live sessions in memory.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[string]*session)}
}

// get returns the request's session, or nil if there is none.
func (st *sessionStore) get(r *http.Request) *session {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return nil
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.sessions[cookie.Value]
}

// create starts a fresh session for a logged-in user and sets its cookie.
func (st *sessionStore) create(w http.ResponseWriter, user string) *session {
	s := &session{ID: uuid.New().String(), User: user}
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    s.ID,
		Path:     "/",
		HttpOnly: true,
	})
	return s
}

// drop removes the request's session, if any.
func (st *sessionStore) drop(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return
	}
	st.mu.Lock()
	delete(st.sessions, cookie.Value)
	st.mu.Unlock()

	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1})
}
