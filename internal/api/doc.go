// Package api handles incoming HTTP requests for the letter service: the admin
// endpoints, the storefront webhook, the read-only engine endpoints and the
// dashboard. Handlers decode and validate requests, call the service layer
// and translate its errors into safe HTTP responses.
package api
