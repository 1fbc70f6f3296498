package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"github.com/AdamBeresnev/tournament-hub/internal/db"
	"github.com/AdamBeresnev/tournament-hub/internal/httputil"
	"github.com/AdamBeresnev/tournament-hub/internal/league"
	"github.com/AdamBeresnev/tournament-hub/internal/middleware"
	"github.com/AdamBeresnev/tournament-hub/internal/service"
	"github.com/AdamBeresnev/tournament-hub/internal/store"
	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/markbates/goth/gothic"
)

type tournamentRequest struct {
	Name   string      `json:"name"`
	GameID int64       `json:"gameID"`
	Date   league.Date `json:"date"`
}

type rosterRequest struct {
	TeamCode string `json:"teamCode"`
	Username string `json:"username"`
}

type resultRequest struct {
	WinnerUsername string `json:"winnerUsername"`
	Points         int    `json:"points"`
}

type credentialsRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		httputil.BadRequest(w, "Invalid request body", err)
		return false
	}
	return true
}

// handleServiceError maps service sentinels onto HTTP statuses. Anything
// unrecognized is a storage or programming failure and becomes a 500.
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		httputil.NotFound(w, err.Error(), nil)
	case errors.Is(err, service.ErrDuplicateGameID),
		errors.Is(err, service.ErrAlreadyScheduled),
		errors.Is(err, service.ErrAlreadyCompleted),
		errors.Is(err, service.ErrDuplicateUsername),
		errors.Is(err, service.ErrDuplicateRosterEntry),
		errors.Is(err, service.ErrMatchAlreadyDecided):
		httputil.Conflict(w, err.Error())
	case errors.Is(err, service.ErrInsufficientTeams),
		errors.Is(err, service.ErrNoNewMatches):
		httputil.UnprocessableEntity(w, err.Error())
	case errors.Is(err, service.ErrInvalidFilter),
		errors.Is(err, service.ErrPlayerNotInMatch):
		httputil.BadRequest(w, err.Error(), nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		httputil.Unauthorized(w, err.Error())
	case errors.Is(err, service.ErrForbidden):
		httputil.Forbidden(w, err.Error())
	default:
		httputil.InternalServerError(w, "Unexpected error", err)
	}
}

func requesterUsername(ctx context.Context) string {
	if user := middleware.GetAuthenticatedUser(ctx); user != nil {
		return user.Username
	}
	return ""
}

func newRouter(sessionManager *scs.SessionManager) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendOrigin()},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(sessionManager.LoadAndSave)
	r.Use(middleware.LoadAuthenticatedUser(sessionManager, store.NewUserStore(db.GetDB())))

	r.Post("/signup", func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.Username == "" || req.Password == "" {
			httputil.BadRequest(w, "Username and password are required", nil)
			return
		}

		userService := service.NewUserService(db.GetDB(), store.NewUserStore(db.GetDB()))
		user, err := userService.Signup(r.Context(), req.Username, req.Email, req.Password)
		if err != nil {
			handleServiceError(w, err)
			return
		}

		sessionManager.Put(r.Context(), "userID", user.ID.String())
		httputil.WriteJSON(w, http.StatusCreated, user)
	})

	r.Post("/login", func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		userService := service.NewUserService(db.GetDB(), store.NewUserStore(db.GetDB()))
		user, err := userService.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			handleServiceError(w, err)
			return
		}

		sessionManager.Put(r.Context(), "userID", user.ID.String())
		httputil.WriteJSON(w, http.StatusOK, user)
	})

	r.Post("/logout", func(w http.ResponseWriter, r *http.Request) {
		sessionManager.Destroy(r.Context())
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
	})

	r.Get("/auth/{provider}", func(w http.ResponseWriter, r *http.Request) {
		provider := chi.URLParam(r, "provider")
		r = r.WithContext(context.WithValue(r.Context(), "provider", provider))

		gothic.BeginAuthHandler(w, r)
	})

	r.Get("/auth/{provider}/callback", func(w http.ResponseWriter, r *http.Request) {
		provider := chi.URLParam(r, "provider")
		r = r.WithContext(context.WithValue(r.Context(), "provider", provider))

		gothUser, err := gothic.CompleteUserAuth(w, r)
		if err != nil {
			httputil.BadRequest(w, "Authentication failure", err)
			return
		}

		userService := service.NewUserService(db.GetDB(), store.NewUserStore(db.GetDB()))
		user, err := userService.FindOrCreateUserByProvider(r.Context(), gothUser)
		if err != nil {
			handleServiceError(w, err)
			return
		}

		sessionManager.Put(r.Context(), "userID", user.ID.String())
		http.Redirect(w, r, frontendOrigin(), http.StatusFound)
	})

	r.Post("/auth/guest", func(w http.ResponseWriter, r *http.Request) {
		userService := service.NewUserService(db.GetDB(), store.NewUserStore(db.GetDB()))
		user, err := userService.EnsureGuestUser(r.Context())
		if err != nil {
			httputil.InternalServerError(w, "Failed to login as guest", err)
			return
		}

		sessionManager.Put(r.Context(), "userID", user.ID.String())
		httputil.WriteJSON(w, http.StatusOK, user)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Post("/tournaments", func(w http.ResponseWriter, r *http.Request) {
			var req tournamentRequest
			if !decodeJSON(w, r, &req) {
				return
			}
			if req.Name == "" || req.Date.IsZero() {
				httputil.BadRequest(w, "Name and date are required", nil)
				return
			}

			tournamentService := service.NewTournamentService(db.GetDB(), store.NewTournamentStore(db.GetDB()))
			input := service.TournamentInput{Name: req.Name, GameID: req.GameID, Date: req.Date}
			tournament, err := tournamentService.CreateTournament(r.Context(), input, requesterUsername(r.Context()))
			if err != nil {
				handleServiceError(w, err)
				return
			}
			httputil.WriteJSON(w, http.StatusCreated, tournament)
		})

		r.Get("/tournaments", func(w http.ResponseWriter, r *http.Request) {
			tournamentService := service.NewTournamentService(db.GetDB(), store.NewTournamentStore(db.GetDB()))
			tournaments, err := tournamentService.ListTournaments(r.Context(), r.URL.Query().Get("searchBy"), r.URL.Query().Get("search"))
			if err != nil {
				handleServiceError(w, err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, tournaments)
		})

		r.Get("/tournaments/{id}", func(w http.ResponseWriter, r *http.Request) {
			tournamentService := service.NewTournamentService(db.GetDB(), store.NewTournamentStore(db.GetDB()))
			tournament, err := tournamentService.GetTournament(r.Context(), chi.URLParam(r, "id"))
			if err != nil {
				handleServiceError(w, err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, tournament)
		})

		r.Put("/tournaments/{id}", func(w http.ResponseWriter, r *http.Request) {
			var req tournamentRequest
			if !decodeJSON(w, r, &req) {
				return
			}

			tournamentService := service.NewTournamentService(db.GetDB(), store.NewTournamentStore(db.GetDB()))
			input := service.TournamentInput{Name: req.Name, GameID: req.GameID, Date: req.Date}
			tournament, err := tournamentService.UpdateTournament(r.Context(), chi.URLParam(r, "id"), input, requesterUsername(r.Context()))
			if err != nil {
				handleServiceError(w, err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, tournament)
		})

		r.Delete("/tournaments/{id}", func(w http.ResponseWriter, r *http.Request) {
			tournamentService := service.NewTournamentService(db.GetDB(), store.NewTournamentStore(db.GetDB()))
			if err := tournamentService.DeleteTournament(r.Context(), chi.URLParam(r, "id"), requesterUsername(r.Context())); err != nil {
				handleServiceError(w, err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Tournament deleted successfully!"})
		})

		r.Post("/tournaments/{id}/complete", func(w http.ResponseWriter, r *http.Request) {
			tournamentService := service.NewTournamentService(db.GetDB(), store.NewTournamentStore(db.GetDB()))
			tournament, err := tournamentService.CompleteTournament(r.Context(), chi.URLParam(r, "id"), requesterUsername(r.Context()))
			if err != nil {
				handleServiceError(w, err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, tournament)
		})

		r.Post("/tournaments/{id}/schedule", func(w http.ResponseWriter, r *http.Request) {
			scheduleService := service.NewScheduleService(db.GetDB(), store.NewTournamentStore(db.GetDB()))
			matches, err := scheduleService.ScheduleMatches(r.Context(), chi.URLParam(r, "id"))
			if err != nil {
				handleServiceError(w, err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
				"message": "Matches scheduled successfully",
				"matches": matches,
			})
		})

		r.Get("/tournaments/{id}/matches", func(w http.ResponseWriter, r *http.Request) {
			matchService := service.NewMatchService(db.GetDB(), store.NewTournamentStore(db.GetDB()))
			matches, err := matchService.ListMatches(r.Context(), chi.URLParam(r, "id"))
			if err != nil {
				handleServiceError(w, err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{"matches": matches})
		})

		r.Get("/tournaments/{id}/standings", func(w http.ResponseWriter, r *http.Request) {
			standingsService := service.NewStandingsService(db.GetDB(), store.NewTournamentStore(db.GetDB()))
			standings, err := standingsService.Standings(r.Context(), chi.URLParam(r, "id"))
			if err != nil {
				handleServiceError(w, err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{"teams": standings})
		})

		r.Post("/tournaments/{id}/roster", func(w http.ResponseWriter, r *http.Request) {
			var req rosterRequest
			if !decodeJSON(w, r, &req) {
				return
			}
			if req.TeamCode == "" || req.Username == "" {
				httputil.BadRequest(w, "Team code and username are required", nil)
				return
			}

			rosterService := service.NewRosterService(db.GetDB(), store.NewTournamentStore(db.GetDB()))
			entry, err := rosterService.AddPlayer(r.Context(), chi.URLParam(r, "id"), req.TeamCode, req.Username)
			if err != nil {
				handleServiceError(w, err)
				return
			}
			httputil.WriteJSON(w, http.StatusCreated, entry)
		})

		r.Get("/tournaments/{id}/roster", func(w http.ResponseWriter, r *http.Request) {
			rosterService := service.NewRosterService(db.GetDB(), store.NewTournamentStore(db.GetDB()))
			entries, err := rosterService.ListRoster(r.Context(), chi.URLParam(r, "id"))
			if err != nil {
				handleServiceError(w, err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{"roster": entries})
		})

		r.Post("/matches/{id}/result", func(w http.ResponseWriter, r *http.Request) {
			var req resultRequest
			if !decodeJSON(w, r, &req) {
				return
			}
			if req.WinnerUsername == "" {
				httputil.BadRequest(w, "Winner username is required", nil)
				return
			}
			if req.Points < 0 {
				httputil.BadRequest(w, "Points must not be negative", nil)
				return
			}

			matchService := service.NewMatchService(db.GetDB(), store.NewTournamentStore(db.GetDB()))
			match, err := matchService.RecordResult(r.Context(), chi.URLParam(r, "id"), req.WinnerUsername, req.Points)
			if err != nil {
				handleServiceError(w, err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, match)
		})
	})

	return r
}

func frontendOrigin() string {
	if origin := os.Getenv("FRONTEND_ORIGIN"); origin != "" {
		return origin
	}
	return "http://localhost:3000"
}
