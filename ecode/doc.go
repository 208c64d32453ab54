// Package ecode defines the business codes carried in API error responses.
//
//	-101..-199  authentication
//	-400..-499  request and resource errors
//	-500+       server and delivery errors
//
// Text returns the human readable message for a code and ToHTTPStatus the
// status a handler should answer with:
//
//	resp.Fail(w, &resp.Exception{
//	    Status:  ecode.ToHTTPStatus(ecode.NoLogin),
//	    Code:    ecode.NoLogin,
//	    Message: ecode.Text(ecode.NoLogin),
//	})
package ecode
