// Package carousel implements responsive carousel pagination and navigation.
//
// A carousel shows an ordered list of items a page at a time. The page size is
// derived from the viewport width, which callers pass in explicitly:
//
//	pages := carousel.PartitionForWidth(awards, width) // 1, 2 or 3 items per page
//	ctrl := carousel.NewController(len(pages))
//
// Manual navigation clamps at both ends:
//
//	ctrl.Next()     // stops at the last page
//	ctrl.Previous() // stops at page 0
//
// Auto-advance wraps from the last page back to the first. The timer that drives
// it is owned by an AutoAdvancer and must be stopped with the component:
//
//	aa := carousel.NewAutoAdvancer(ctrl, carousel.DefaultPeriod)
//	aa.Start(ctx)
//	defer aa.Stop()
//
// When the page count changes, call Reset so the running timer is replaced
// instead of advancing over a stale page count.
package carousel
