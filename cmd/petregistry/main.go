// Package main provides the petregistry binary: HTTP server and query CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"pet-registry/internal/domain/errs"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode separa errores del usuario (input, no encontrado, integridad) de fallas del sistema.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, errs.ErrValidation), errors.Is(err, errs.ErrNotFound):
		return exitUserError
	default:
		return exitSysError
	}
}
