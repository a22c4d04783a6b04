package errors

import "fmt"

var (
	ErrWorkerPanic      = fmt.Errorf("worker panic")
	ErrInvalidPayload   = fmt.Errorf("invalid payload")
	ErrSessionClosed    = fmt.Errorf("session closed")
	ErrTransportClosed  = fmt.Errorf("transport closed")
	ErrIdentityNotFound = fmt.Errorf("no identity has been stored")
	ErrEmptyName        = fmt.Errorf("name must not be empty")
)
