// Package product provides the catalog aggregate for the marketplace.
//
// The Product aggregate holds the only inventory figure in the system and the
// two derived rating fields (average rating, total reviews). Stock is
// decremented exclusively through Reserve during order placement; restocking
// is out of scope. Rating fields are recomputed by the feedback aggregation
// flow and written through UpdateRating, never directly.
//
// Key business rules:
//   - stock never goes negative; a reservation for more units than available
//     fails with InsufficientStockError and leaves the stock untouched
//   - price is a non-negative decimal; order items snapshot it at placement
//   - averageRating always equals the mean of the feedback rows currently
//     attached to the product (0 when none), totalReviews their count
package product
