package get_available_times

import "fmt"

func validateRequest(req *Request) error {
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: businessId must be positive, got %d", ErrInvalidInput, req.BusinessID)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceId must be positive, got %d", ErrInvalidInput, req.ServiceID)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}
