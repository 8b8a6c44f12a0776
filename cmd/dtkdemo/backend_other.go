//go:build !unix

package main

import (
	apperrors "github.com/dcrosta/dtk-sub000/pkg/errors"
	"github.com/dcrosta/dtk-sub000/pkg/ui/backend"
)

func newTTYBackend() (backend.Backend, error) {
	return nil, apperrors.New(apperrors.ErrCodeBackendInit, "the tty backend needs a unix terminal")
}
