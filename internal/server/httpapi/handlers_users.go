package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/labstack/echo/v4"
)

type registerRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleRegister creates the account and returns it with a fresh access
// token. A duplicate email is reported in the envelope with a 200 status;
// the web client switches on the error flag, not the status code.
func (s *Server) handleRegister(c echo.Context) error {

	req := &registerRequest{}
	if err := c.Bind(req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body!")
	}

	if req.FullName == "" {
		return fail(c, http.StatusBadRequest, "Full name is required!")
	}
	if req.Email == "" {
		return fail(c, http.StatusBadRequest, "Email is required!")
	}
	if req.Password == "" {
		return fail(c, http.StatusBadRequest, "Password is required!")
	}

	ctx := c.Request().Context()

	user, token, err := s.users.Register(ctx, req.FullName, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return fail(c, http.StatusOK, "User already exist")
		}
		s.logger.Error(ctx, "registration failed", "email", req.Email, "error", err.Error())
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}

	s.logger.Info(ctx, "user registered", "userId", user.ID)

	return ok(c, http.StatusOK, "Registration Successful", echo.Map{
		"newUser":     user,
		"accessToken": token,
	})
}

func (s *Server) handleLogin(c echo.Context) error {

	req := &loginRequest{}
	if err := c.Bind(req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body!")
	}

	if req.Email == "" {
		return fail(c, http.StatusBadRequest, "Email is required!")
	}
	if req.Password == "" {
		return fail(c, http.StatusBadRequest, "Password is required!")
	}

	ctx := c.Request().Context()

	token, err := s.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			return fail(c, http.StatusOK, "User not found!")
		case errors.Is(err, common.ErrorUnauthorized):
			return fail(c, http.StatusBadRequest, "Invalid Credentials")
		default:
			s.logger.Error(ctx, "login failed", "email", req.Email, "error", err.Error())
			return fail(c, http.StatusInternalServerError, "Internal server error")
		}
	}

	return ok(c, http.StatusOK, "Login Successful", echo.Map{
		"email":       req.Email,
		"accessToken": token,
	})
}

// handleGetUser returns profile data for the token's identity. If the
// account no longer exists the token is useless and the client must
// re-authenticate, hence 401 rather than 404.
func (s *Server) handleGetUser(c echo.Context) error {

	ctx := c.Request().Context()

	user, err := s.users.GetProfile(ctx, callerID(c))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return fail(c, http.StatusUnauthorized, "User not found!")
		}
		s.logger.Error(ctx, "profile lookup failed", "userId", callerID(c), "error", err.Error())
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}

	return ok(c, http.StatusOK, "", echo.Map{"user": user})
}
