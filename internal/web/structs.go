package web

import (
	"errors"
	"regexp"

	"github.com/gofiber/fiber/v2"
)

type credentials struct {
	email    string
	password string
}

var emailRegexp = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func parseCredentials(ctx *fiber.Ctx) (credentials, error) {
	var err error
	email := ctx.FormValue("email", "")
	err = errors.Join(err, validateEmail(email))
	password := ctx.FormValue("password", "")
	err = errors.Join(err, validatePassword(password))
	if err != nil {
		return credentials{}, err
	}
	return credentials{
		email:    email,
		password: password,
	}, nil
}

func validateEmail(email string) error {
	if email == "" {
		return errors.New("email must not be empty")
	}
	if !emailRegexp.MatchString(email) {
		return errors.New("email address is not valid")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return errors.New("password must not be empty")
	}
	return nil
}
