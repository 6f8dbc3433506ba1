// Package http contains the HTTP/JSON surface of the server: the chi
// route tree, request middleware (auth, logging, trace ids), and the
// handlers for auth, users, profiles, approvers, recipients and notes.
package http
