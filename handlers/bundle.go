// File: handlers/bundle.go
package handlers

// HandlerBundle groups the assembled handlers for route registration.
type HandlerBundle struct {
	Chat      *ChatHandler
	Bookings  *BookingHandler
	Resources *ResourceHandler
}
