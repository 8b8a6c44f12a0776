//go:build unix

package main

import (
	"github.com/dcrosta/dtk-sub000/pkg/ui/backend"
	"github.com/dcrosta/dtk-sub000/pkg/ui/backend/tty"
)

func newTTYBackend() (backend.Backend, error) {
	return tty.NewStd(), nil
}
