// Package ctxutil carries request-scoped values through context.Context.
//
// Values set on a context that wraps a *gin.Context are also visible through
// the gin keys, so handlers and services read the same trace id and admin
// identity:
//
//	ctx := ctxutil.WithGinContext(c.Request.Context(), c)
//	ctx = ctxutil.SetAdmin(ctx, admin.ID, admin.Username)
//	id := ctxutil.GetAdminID(ctx)
//
// WithAsyncContext detaches work such as an email blast from the request
// lifetime while keeping its values.
package ctxutil
