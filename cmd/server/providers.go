// File: cmd/server/providers.go
package main

import (
	"skillmarket_backend/internal/comment"
	"skillmarket_backend/internal/order"
	"skillmarket_backend/internal/product"
	"skillmarket_backend/internal/tutorial"
)

// provideOrderPurger narrows the order repository to the purge interface the
// product service consumes.
func provideOrderPurger(r order.Repository) product.OrderPurger {
	return r
}

// provideCommentPurger narrows the comment repository to the purge interface
// the tutorial service consumes.
func provideCommentPurger(r comment.Repository) tutorial.CommentPurger {
	return r
}
