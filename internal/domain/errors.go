package domain

import "errors"

// Sentinel errors for the failure taxonomy. Handlers classify with errors.Is
// and map to HTTP statuses; services wrap these with context via fmt.Errorf.
var (
	// ErrUnauthorized means the request carried no valid credential.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrServerConfig means the deployment is missing configuration
	// (bot token, target group, API key). Retrying cannot help.
	ErrServerConfig = errors.New("server configuration incomplete")

	// ErrDispatch means the messaging platform rejected the delivery or the
	// network call failed. The send is not retried.
	ErrDispatch = errors.New("dispatch failed")

	// ErrEmptyRoster means the duty computation was asked to rotate over an
	// empty staff list.
	ErrEmptyRoster = errors.New("staff roster is empty")
)
