package generate_availabilities

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if req.PractitionerID <= 0 {
		return fmt.Errorf("%w: practitionerID must be positive", ErrInvalidInput)
	}

	return nil
}

// validateOptions проверяет параметры нарезки
func validateOptions(opts Options) error {
	if opts.SlotDuration <= 0 {
		return fmt.Errorf("%w: slot duration must be positive", ErrInvalidInput)
	}

	if opts.MaxExtension < 0 || opts.MaxExtension >= opts.SlotDuration {
		return fmt.Errorf("%w: max extension must be in [0, slot duration)", ErrInvalidInput)
	}

	return nil
}
