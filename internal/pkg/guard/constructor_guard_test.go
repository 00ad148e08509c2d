package guard_test

import (
	"errors"
	"testing"

	"marketplace/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("creates_properly_constructed_guard", func(t *testing.T) {
		// When
		g := guard.NewConstructorGuard()

		// Then
		assert.NotNil(t, g)

		customError := errors.New("test object not constructed")
		require.NoError(t, g.Validate(customError))
		require.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()
		customError := errors.New("not constructed")

		// When
		err := g.Validate(customError)

		// Then
		require.NoError(t, err)
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard // zero value
		expectedError := errors.New("entity not constructed")

		// When
		err := g.Validate(expectedError)

		// Then
		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard // zero value

		// When
		err := g.Validate(nil)

		// Then
		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

// TestConstructorGuardUsageExample demonstrates how ConstructorGuard is used
// in a domain object to enforce constructor usage.
func TestConstructorGuardUsageExample(t *testing.T) {
	// A sample value object modeled on the catalog's price fields
	type Price struct {
		amount int
		unit   string
		guard  guard.ConstructorGuard
	}

	var errPriceNotConstructed = errors.New("Price must be created via NewPrice")

	newPrice := func(amount int, unit string) (Price, error) {
		if amount < 0 {
			return Price{}, errors.New("amount cannot be negative")
		}
		if unit == "" {
			return Price{}, errors.New("unit is required")
		}
		return Price{
			amount: amount,
			unit:   unit,
			guard:  guard.NewConstructorGuard(),
		}, nil
	}

	validatePrice := func(p Price) error {
		return p.guard.Validate(errPriceNotConstructed)
	}

	t.Run("valid_construction_through_constructor", func(t *testing.T) {
		// When
		price, err := newPrice(50, "kg")

		// Then
		require.NoError(t, err)
		require.NoError(t, validatePrice(price))
		assert.Equal(t, 50, price.amount)
		assert.Equal(t, "kg", price.unit)
	})

	t.Run("zero_value_construction_validation", func(t *testing.T) {
		// Given
		var price Price // zero value

		// When
		err := validatePrice(price)

		// Then
		// Zero value Price has a zero value guard which returns the error we pass
		require.Error(t, err)
		assert.Equal(t, errPriceNotConstructed, err)
	})

	t.Run("constructor_validates_business_rules", func(t *testing.T) {
		_, err := newPrice(-50, "kg")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "amount cannot be negative")

		_, err = newPrice(50, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unit is required")
	})
}

// TestConstructorGuardEmbeddedExample shows the embedded-base-type pattern
// the aggregates in this module follow.
func TestConstructorGuardEmbeddedExample(t *testing.T) {
	var errListingNotConstructed = errors.New("Listing must be created via NewListing")

	type guardedListing struct {
		guard guard.ConstructorGuard
	}

	newGuardedListing := func() guardedListing {
		return guardedListing{
			guard: guard.NewConstructorGuard(),
		}
	}

	validateGuardedListing := func(g guardedListing) error {
		return g.guard.Validate(errListingNotConstructed)
	}

	type Listing struct {
		guardedListing
		id    string
		name  string
		stock int
	}

	newListing := func(id, name string, stock int) (Listing, error) {
		if id == "" {
			return Listing{}, errors.New("listing ID is required")
		}
		if name == "" {
			return Listing{}, errors.New("listing name is required")
		}
		if stock < 0 {
			return Listing{}, errors.New("listing stock cannot be negative")
		}
		return Listing{
			guardedListing: newGuardedListing(),
			id:             id,
			name:           name,
			stock:          stock,
		}, nil
	}

	t.Run("valid_listing_construction", func(t *testing.T) {
		// When
		listing, err := newListing("123", "Heirloom Tomatoes", 10)

		// Then
		require.NoError(t, err)
		require.NoError(t, validateGuardedListing(listing.guardedListing))
		assert.Equal(t, "123", listing.id)
		assert.Equal(t, "Heirloom Tomatoes", listing.name)
		assert.Equal(t, 10, listing.stock)
	})

	t.Run("zero_value_listing_fails_validation", func(t *testing.T) {
		// Given
		var listing Listing // zero value

		// When
		err := validateGuardedListing(listing.guardedListing)

		// Then
		require.Error(t, err)
		assert.Equal(t, errListingNotConstructed, err)
	})
}

// TestConstructorGuardWithMultipleErrors demonstrates using ConstructorGuard
// with the per-aggregate error values the module defines.
func TestConstructorGuardWithMultipleErrors(t *testing.T) {
	testCases := []struct {
		name          string
		expectedError error
	}{
		{
			name:          "order_not_constructed_error",
			expectedError: errors.New("Order must be created via NewOrder"),
		},
		{
			name:          "product_not_constructed_error",
			expectedError: errors.New("Product must be created via NewProduct"),
		},
		{
			name:          "feedback_not_constructed_error",
			expectedError: errors.New("Feedback must be created via NewFeedback"),
		},
		{
			name:          "nil_error_uses_default",
			expectedError: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Given
			g := guard.NewConstructorGuard()

			// When
			err := g.Validate(tc.expectedError)

			// Then
			require.NoError(t, err, "Properly constructed guard should not return error")
		})
	}
}

// TestConstructorGuardDefaultError verifies the default error behavior.
func TestConstructorGuardDefaultError(t *testing.T) {
	t.Run("nil_error_uses_default_for_zero_value", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard // zero value

		// When
		err := g.Validate(nil)

		// Then
		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})

	t.Run("default_error_constant_has_meaningful_message", func(t *testing.T) {
		// Then
		require.Error(t, guard.ErrDefaultConstructorGuard)
		assert.Contains(t, guard.ErrDefaultConstructorGuard.Error(), "constructor")
		assert.Equal(t, "object must be created via its constructor", guard.ErrDefaultConstructorGuard.Error())
	})
}

// TestConstructorGuardConcurrency verifies that ConstructorGuard is safe for concurrent use.
func TestConstructorGuardConcurrency(t *testing.T) {
	g := guard.NewConstructorGuard()
	validationError := errors.New("not constructed")

	done := make(chan bool)
	for range 100 {
		go func() {
			for range 1000 {
				err := g.Validate(validationError)
				assert.NoError(t, err)
			}
			done <- true
		}()
	}

	for range 100 {
		<-done
	}
}

// TestConstructorGuardCopySemantics verifies that a guard passed by value
// keeps validating, since aggregates embed it as a plain struct field.
func TestConstructorGuardCopySemantics(t *testing.T) {
	g := guard.NewConstructorGuard()
	testError := errors.New("test error")

	guardCopy := g

	require.NoError(t, g.Validate(testError))
	require.NoError(t, guardCopy.Validate(testError))
}
