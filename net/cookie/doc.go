// Package cookie writes and reads the admin session cookie.
//
// Session cookies are always HttpOnly with SameSite=Lax and path "/".
// Secure is taken from configuration so local development over plain HTTP
// still works.
//
//	cookie.SetSession(w, token, expires, cookie.Options{Name: cfg.Name, Secure: cfg.Secure})
//	token := cookie.GetSession(r, opts)
//	cookie.ClearSession(w, opts)
package cookie
