package main

import (
	"errors"

	perrors "github.com/odvcencio/persistui/pkg/errors"
)

const (
	exitFailure = 1
	exitConfig  = 2
	exitNoTTY   = 3
)

type exitCoder interface {
	ExitCode() int
}

type exitError struct {
	code int
	err  error
}

func (e exitError) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e exitError) Unwrap() error {
	return e.err
}

func (e exitError) ExitCode() int {
	if e.code == 0 {
		return exitFailure
	}
	return e.code
}

func withExitCode(err error, code int) error {
	if err == nil {
		return nil
	}
	return exitError{code: code, err: err}
}

func exitCodeForError(err error) int {
	if err == nil {
		return 0
	}
	var coded exitCoder
	if errors.As(err, &coded) {
		return coded.ExitCode()
	}
	switch perrors.GetCode(err) {
	case perrors.ErrCodeConfigLoad, perrors.ErrCodeConfigParse, perrors.ErrCodeConfigInvalid:
		return exitConfig
	}
	return exitFailure
}
