// Package auth issues and validates admin JWTs, checks the admin password
// with bcrypt and verifies storefront webhook signatures.
package auth
