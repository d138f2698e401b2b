package get_free_slots

import "fmt"

// validateRequest валидирует входные данные запроса.
// Некорректная дата/таймзона не считаются ошибкой валидации — они
// деградируют в пустой список на этапе резолва дня.
func validateRequest(req *Request) error {
	if req.ServiceID == nil && req.DurationMinutes == nil {
		return fmt.Errorf("%w: either serviceID or durationMinutes is required", ErrInvalidInput)
	}

	if req.ServiceID != nil && *req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.DurationMinutes != nil && *req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: durationMinutes must be positive", ErrInvalidInput)
	}

	if req.MasterID != nil && *req.MasterID <= 0 {
		return fmt.Errorf("%w: masterID must be positive", ErrInvalidInput)
	}

	if req.Date == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}
