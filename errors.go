package stockfolio

import "errors"

// Sentinel errors returned by portfolio and analysis operations. Callers
// match them with errors.Is; messages carry the specific context.
var (
	// ErrInvalidName rejects empty portfolio names.
	ErrInvalidName = errors.New("portfolio name cannot be empty")
	// ErrPortfolioExists rejects a duplicate portfolio name (case-insensitive).
	ErrPortfolioExists = errors.New("portfolio already exists")
	// ErrPortfolioNotFound reports a lookup of an unknown portfolio.
	ErrPortfolioNotFound = errors.New("portfolio not found")
	// ErrSymbolNotFound reports a sale of a symbol the portfolio never held.
	ErrSymbolNotFound = errors.New("symbol not found in portfolio")
	// ErrInvalidQuantity rejects non-positive transaction quantities.
	ErrInvalidQuantity = errors.New("quantity must be positive")
	// ErrFutureDate rejects transactions dated after today.
	ErrFutureDate = errors.New("date cannot be in the future")
	// ErrNonWeekday rejects purchase dates falling on a weekend.
	ErrNonWeekday = errors.New("purchase date must be a weekday")
	// ErrDuplicateTransaction rejects a second buy of the same symbol on the same date.
	ErrDuplicateTransaction = errors.New("duplicate transaction")
	// ErrInsufficientQuantity rejects a sale larger than the position on that date.
	ErrInsufficientQuantity = errors.New("insufficient quantity to sell")
	// ErrPriceUnavailable reports that the price source has no data for the
	// symbol or could not be reached. It is not retried internally.
	ErrPriceUnavailable = errors.New("price unavailable")
	// ErrNoQuote is returned by a PriceSource when it knows the symbol but has
	// no quote for the requested day. The cache walks back to a prior close.
	ErrNoQuote = errors.New("no quote for date")
	// ErrInvalidPeriod rejects misconfigured analysis windows.
	ErrInvalidPeriod = errors.New("invalid analysis period")
)
