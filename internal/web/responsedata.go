package web

import (
	"errors"

	"memberserver/auth/users"
	"memberserver/internal/web/webpath"
)

type data struct {
	Title  string
	Path   map[string]string
	User   users.User
	Flash  flash
	Errors []string
}

func newData(title string) data {
	return data{
		Title: title,
		Path:  webpath.Path(),
	}
}

func (m data) WithUser(user users.User) data {
	m.User = user
	return m
}

func (m data) WithFlash(f flash) data {
	m.Flash = f
	return m
}

type multierr interface {
	Unwrap() []error
}

func unwrap(err error) []error {
	var merr multierr
	if errors.As(err, &merr) {
		var errs []error
		for _, err := range merr.Unwrap() {
			errs = append(errs, unwrap(err)...)
		}
		return errs
	}
	return []error{err}
}

func (m data) WithErrors(err error) data {
	for _, err := range unwrap(err) {
		m.Errors = append(m.Errors, err.Error())
	}
	return m
}
