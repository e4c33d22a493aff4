package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/authgate/internal/common"
)

// Response messages are part of the external contract and must match
// byte-for-byte; clients and the reference test-suite assert on them.
const (
	msgCredentialsRequired = "username and password required"
	msgUsernameTaken       = "username taken"
	msgInvalidCredentials  = "invalid credentials"
	msgTokenRequired       = "token required"
	msgTokenInvalid        = "token invalid"
	msgInternalError       = "internal error"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type joke struct {
	ID   string `json:"id"`
	Joke string `json:"joke"`
}

var jokes = []joke{
	{ID: "0189hNRf2g", Joke: "I'm tired of following my dreams. I'm just going to ask them where they are going and meet up with them later."},
	{ID: "08EQZ8EQukb", Joke: "Did you hear about the guy whose whole left side was cut off? He's all right now."},
	{ID: "08xHQCdx5Ed", Joke: "Why didn't the skeleton cross the road? Because he had no guts."},
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

// decodeCredentials parses the request body and checks field presence. A body
// that cannot be parsed is treated the same as one with missing fields; in
// both cases the request never reaches the store.
func decodeCredentials(r *http.Request) (*credentials, bool) {
	creds := &credentials{}
	if err := json.NewDecoder(r.Body).Decode(creds); err != nil {
		return nil, false
	}
	if creds.Username == "" || creds.Password == "" {
		return nil, false
	}
	return creds, true
}

func (s *Server) registerUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	creds, ok := decodeCredentials(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, msgCredentialsRequired)
		return
	}

	user, err := s.users.Register(ctx, creds.Username, creds.Password)
	if err != nil {
		if errors.Is(err, common.ErrorDuplicate) {
			writeMessage(w, http.StatusConflict, msgUsernameTaken)
			return
		}
		s.logger.Error(ctx, err.Error())
		writeMessage(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	s.logger.Info(ctx, "Registered", "username", user.Username)
	writeJSON(w, http.StatusCreated, userResponse{ID: user.ID, Username: user.Username, Password: user.Password})
}

func (s *Server) loginUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	creds, ok := decodeCredentials(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, msgCredentialsRequired)
		return
	}

	user, token, err := s.users.Login(ctx, creds.Username, creds.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeMessage(w, http.StatusUnauthorized, msgInvalidCredentials)
			return
		}
		s.logger.Error(ctx, err.Error())
		writeMessage(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Message: fmt.Sprintf("welcome, %s", user.Username),
		Token:   token,
	})
}

func (s *Server) listJokes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, jokes)
}
