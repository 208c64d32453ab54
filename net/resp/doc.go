// Package resp writes JSON responses.
//
// Success bodies are the payload itself, or {"message": ...} when the payload
// is a string. Failure bodies always look like:
//
//	{"code": -402, "message": "Missing required fields", "errors": {...}}
//
// Constructors such as BadRequest and UnAuthorized build an *Exception with
// the matching HTTP status and ecode; Exception also satisfies error.
package resp
