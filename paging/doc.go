// Package paging implements keyset pagination with opaque cursors.
//
//	res, err := paging.Paginate(params, repo.ListAfter, func(c *structs.Contact) string {
//	    return paging.EncodeCursor(c.CreatedAt, c.ID)
//	})
package paging
