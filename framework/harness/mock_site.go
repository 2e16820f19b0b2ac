package harness

import (
	"fmt"
	"html/template"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/sitetest/browser-test-harness/framework"
)

// DemoSite is a small self-contained web application the harness can run when
// no external site URL is configured. It exposes the flows the bundled test
// suites exercise (login, search, checkout) with stable element IDs, so the
// harness can be tried out or tested end to end without any deployment.
type DemoSite struct {
	server   *http.Server
	listener net.Listener
	logger   framework.Logger

	lock      sync.Mutex
	lastOrder int
}

// demoUsers are the accounts the demo login accepts.
var demoUsers = map[string]string{
	"demo":  "secret123",
	"admin": "hunter2",
}

// demoCatalog backs the search page.
var demoCatalog = []string{
	"Aluminum water bottle",
	"Canvas messenger bag",
	"Ceramic coffee mug",
	"Mechanical keyboard",
	"Merino wool beanie",
	"Stainless steel thermos",
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.Title}}</title></head>
<body>
<nav>
<a id="nav-home" href="/">Home</a>
<a id="nav-login" href="/login">Login</a>
<a id="nav-search" href="/search">Search</a>
<a id="nav-checkout" href="/checkout">Checkout</a>
</nav>
{{.Body}}
</body>
</html>`))

// StartDemoSite starts the demo application on an ephemeral localhost port.
func StartDemoSite(logger framework.Logger) (*DemoSite, error) {
	if logger == nil {
		logger = framework.NullLogger()
	}
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("could not start demo site listener: %w", err)
	}
	s := &DemoSite{listener: listener, logger: logger}
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Printf("Demo site server error: %s", err)
		}
	}()
	logger.Printf("Demo site listening at %s", s.BaseURL())
	return s, nil
}

// BaseURL returns the root URL of the running demo site.
func (s *DemoSite) BaseURL() string {
	return "http://" + s.listener.Addr().String()
}

// Close shuts the demo site down.
func (s *DemoSite) Close() {
	_ = s.server.Close()
}

// Handler returns the demo site's routes without starting a server, so tests
// can mount it on an httptest server.
func (s *DemoSite) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleHome).Methods("GET")
	r.HandleFunc("/login", s.handleLoginForm).Methods("GET")
	r.HandleFunc("/login", s.handleLoginSubmit).Methods("POST")
	r.HandleFunc("/logout", s.handleLogout).Methods("GET")
	r.HandleFunc("/account", s.handleAccount).Methods("GET")
	r.HandleFunc("/search", s.handleSearch).Methods("GET")
	r.HandleFunc("/checkout", s.handleCheckoutForm).Methods("GET")
	r.HandleFunc("/checkout", s.handleCheckoutSubmit).Methods("POST")
	r.HandleFunc("/slow", s.handleSlow).Methods("GET")
	return r
}

func (s *DemoSite) renderPage(w http.ResponseWriter, title string, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := pageTemplate.Execute(w, struct {
		Title string
		Body  template.HTML
	}{Title: title, Body: template.HTML(body)})
	if err != nil {
		s.logger.Printf("Demo site template error: %s", err)
	}
}

func (s *DemoSite) handleHome(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, "Demo Shop", `<h1 id="welcome">Welcome to the demo shop</h1>`)
}

const loginFormBody = `<h1>Sign in</h1>
<form id="login-form" method="POST" action="/login">
<input id="username" name="username" type="text" placeholder="Username">
<input id="password" name="password" type="password" placeholder="Password">
<button id="login-submit" type="submit">Sign in</button>
</form>`

func (s *DemoSite) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, "Sign in", loginFormBody)
}

func (s *DemoSite) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if expected, ok := demoUsers[username]; !ok || expected != password {
		w.WriteHeader(http.StatusUnauthorized)
		s.renderPage(w, "Sign in",
			loginFormBody+`<p class="error-message">Invalid username or password</p>`)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: "session", Value: username, Path: "/"})
	http.Redirect(w, r, "/account", http.StatusSeeOther)
}

func (s *DemoSite) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{Name: "session", Value: "", Path: "/", MaxAge: -1})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *DemoSite) handleAccount(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("session")
	if err != nil || cookie.Value == "" {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	s.renderPage(w, "Account", fmt.Sprintf(
		`<h1 id="account-greeting">Welcome, %s</h1><a id="logout-link" href="/logout">Sign out</a>`,
		template.HTMLEscapeString(cookie.Value)))
}

func (s *DemoSite) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	var items strings.Builder
	count := 0
	if query != "" {
		for _, product := range demoCatalog {
			if strings.Contains(strings.ToLower(product), strings.ToLower(query)) {
				items.WriteString(fmt.Sprintf(`<li class="result-item">%s</li>`,
					template.HTMLEscapeString(product)))
				count++
			}
		}
	}
	body := fmt.Sprintf(`<h1>Search</h1>
<form id="search-form" method="GET" action="/search">
<input id="search-input" name="q" type="text" value="%s">
<button id="search-submit" type="submit">Search</button>
</form>
<p id="result-count">%d results</p>
<ul id="results">%s</ul>`,
		template.HTMLEscapeString(query), count, items.String())
	s.renderPage(w, "Search", body)
}

const checkoutFormBody = `<h1>Checkout</h1>
<form id="checkout-form" method="POST" action="/checkout">
<input id="item" name="item" type="text" placeholder="Item">
<input id="quantity" name="quantity" type="number" value="1">
<button id="checkout-submit" type="submit">Place order</button>
</form>`

func (s *DemoSite) handleCheckoutForm(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, "Checkout", checkoutFormBody)
}

func (s *DemoSite) handleCheckoutSubmit(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	item := r.PostFormValue("item")
	quantity, err := strconv.Atoi(r.PostFormValue("quantity"))
	if item == "" || err != nil || quantity < 1 {
		w.WriteHeader(http.StatusBadRequest)
		s.renderPage(w, "Checkout",
			checkoutFormBody+`<p class="error-message">Enter an item and a positive quantity</p>`)
		return
	}
	s.lock.Lock()
	s.lastOrder++
	orderNumber := s.lastOrder
	s.lock.Unlock()
	s.renderPage(w, "Order placed", fmt.Sprintf(
		`<h1 id="order-confirmation">Order #%d placed</h1><p id="order-summary">%d x %s</p>`,
		orderNumber, quantity, template.HTMLEscapeString(item)))
}

// handleSlow responds after a caller-chosen delay, which the wait and timeout
// tests rely on.
func (s *DemoSite) handleSlow(w http.ResponseWriter, r *http.Request) {
	delay, err := time.ParseDuration(r.URL.Query().Get("delay"))
	if err != nil || delay < 0 || delay > 30*time.Second {
		delay = time.Second
	}
	time.Sleep(delay)
	s.renderPage(w, "Slow page", `<h1 id="slow-content">Finally loaded</h1>`)
}
