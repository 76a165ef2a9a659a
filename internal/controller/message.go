package controller

import (
	"errors"
	"fmt"

	"github.com/me/prodview/internal/catalog"
)

// Message reduces a fetch failure to the single line shown to the user.
func Message(err error) string {
	var (
		statusErr *catalog.HTTPStatusError
		netErr    *catalog.NetworkError
		decodeErr *catalog.DecodeError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &statusErr):
		return fmt.Sprintf("HTTP error! status: %d", statusErr.Status)
	case errors.As(err, &netErr):
		return "Network error: could not reach the catalog service"
	case errors.As(err, &decodeErr):
		return "Unexpected response from the catalog service"
	default:
		return "An error occurred"
	}
}
