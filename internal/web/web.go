package web

import (
	"errors"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html"
	"github.com/sirupsen/logrus"

	embedded "memberserver"
	"memberserver/auth/guard"
	authservice "memberserver/auth/service"
	"memberserver/auth/session"
	"memberserver/auth/users"
	"memberserver/internal/config"
	"memberserver/internal/web/webpath"
)

type Server struct {
	auth       *authservice.Service
	sessions   *session.Manager
	guard      guard.Guard
	app        *fiber.App
	cfg        config.Server
	sessionTTL time.Duration
	log        *logrus.Entry
}

func New(l *logrus.Logger, cfg config.Server, authService *authservice.Service, sessions *session.Manager) (*Server, error) {
	sessionTTL, err := time.ParseDuration(cfg.Session.Expiration)
	if err != nil {
		return nil, err
	}
	server := Server{
		auth:       authService,
		sessions:   sessions,
		guard:      guard.New(webpath.Login, webpath.Home),
		cfg:        cfg,
		sessionTTL: sessionTTL,
		log:        l.WithField("from", "web"),
	}

	fsFS, err := fs.Sub(embedded.Views, "views")
	if err != nil {
		return nil, err
	}
	engine := html.NewFileSystem(http.FS(fsFS), ".html")
	engine.Reload(cfg.Debug)
	engine.Debug(cfg.Debug)

	app := fiber.New(fiber.Config{
		Views: engine,
	})
	app.Use(server.withUser)

	app.Get(webpath.Home, server.handleHome)
	app.Get(webpath.Signup, server.gate(guard.RequireGuest), server.handleGetSignup)
	app.Post(webpath.Signup, server.gate(guard.RequireGuest), server.handlePostSignup)
	app.Get(webpath.Login, server.gate(guard.RequireGuest), server.handleGetLogin)
	app.Post(webpath.Login, server.gate(guard.RequireGuest), server.handlePostLogin)
	app.Get(webpath.Logout, server.handleLogout)
	app.Get(webpath.Secret, server.gate(guard.RequireAuth), server.handleSecret)

	server.app = app
	return &server, nil
}

func (s *Server) Serve() error {
	return s.app.Listen(s.cfg.Host + ":" + strconv.Itoa(s.cfg.Port))
}

const userKey = "user"

// withUser reconstitutes the user from the session cookie into the
// request context. A request with no valid session stays anonymous.
func (s *Server) withUser(ctx *fiber.Ctx) error {
	key := ctx.Cookies(s.cfg.Session.Cookie)
	user, ok, err := s.sessions.Reconstitute(ctx.Context(), key)
	if err != nil {
		return err
	}
	if ok {
		ctx.Context().SetUserValue(userKey, user)
	}
	return ctx.Next()
}

func currentUser(ctx *fiber.Ctx) users.User {
	user, _ := ctx.Context().UserValue(userKey).(users.User)
	return user
}

func (s *Server) gate(policy guard.Policy) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		decision := s.guard.Check(currentUser(ctx), policy)
		if decision.Allow {
			return ctx.Next()
		}
		setFlash(ctx, "error", decision.Flash)
		return ctx.Redirect(decision.RedirectTo)
	}
}

func (s *Server) handleHome(ctx *fiber.Ctx) error {
	d := newData("Home").WithUser(currentUser(ctx))
	if f, ok := popFlash(ctx); ok {
		d = d.WithFlash(f)
	}
	return ctx.Render("index", d, "layouts/main")
}

func (s *Server) handleGetSignup(ctx *fiber.Ctx) error {
	d := newData("Sign up")
	if f, ok := popFlash(ctx); ok {
		d = d.WithFlash(f)
	}
	return ctx.Render("signup", d, "layouts/main")
}

func (s *Server) handlePostSignup(ctx *fiber.Ctx) error {
	creds, err := parseCredentials(ctx)
	if err != nil {
		return ctx.Render("signup", newData("Sign up").WithErrors(err), "layouts/main")
	}
	user, err := s.auth.SignUp(ctx.Context(), creds.email, creds.password)
	if err != nil {
		if errors.Is(err, authservice.ErrEmailTaken) {
			setFlash(ctx, "error", "This email is already in use!")
			return ctx.Redirect(webpath.Signup)
		}
		return err
	}
	return s.establish(ctx, user)
}

func (s *Server) handleGetLogin(ctx *fiber.Ctx) error {
	d := newData("Log in")
	if f, ok := popFlash(ctx); ok {
		d = d.WithFlash(f)
	}
	return ctx.Render("login", d, "layouts/main")
}

func (s *Server) handlePostLogin(ctx *fiber.Ctx) error {
	creds, err := parseCredentials(ctx)
	if err != nil {
		return ctx.Render("login", newData("Log in").WithErrors(err), "layouts/main")
	}
	user, err := s.auth.Login(ctx.Context(), creds.email, creds.password)
	if err != nil {
		switch {
		case errors.Is(err, authservice.ErrNoUser):
			setFlash(ctx, "error", "No user found.")
		case errors.Is(err, authservice.ErrWrongPassword):
			setFlash(ctx, "error", "Oops, wrong password!")
		default:
			return err
		}
		return ctx.Redirect(webpath.Login)
	}
	return s.establish(ctx, user)
}

func (s *Server) handleLogout(ctx *fiber.Ctx) error {
	key := ctx.Cookies(s.cfg.Session.Cookie)
	if err := s.sessions.Terminate(ctx.Context(), key); err != nil {
		return err
	}
	clearCookie(ctx, s.cfg.Session.Cookie)
	return ctx.Redirect(webpath.Home)
}

func (s *Server) handleSecret(ctx *fiber.Ctx) error {
	d := newData("Secret").WithUser(currentUser(ctx))
	if f, ok := popFlash(ctx); ok {
		d = d.WithFlash(f)
	}
	return ctx.Render("secret", d, "layouts/main")
}

func (s *Server) establish(ctx *fiber.Ctx, user users.User) error {
	key, err := s.sessions.Establish(ctx.Context(), user)
	if err != nil {
		return err
	}
	ctx.Cookie(&fiber.Cookie{
		Name:     s.cfg.Session.Cookie,
		Value:    key,
		Path:     "/",
		Expires:  time.Now().Add(s.sessionTTL),
		HTTPOnly: true,
	})
	s.log.WithField("user", user.ID).Info("session established")
	return ctx.Redirect(webpath.Secret)
}
