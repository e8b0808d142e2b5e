package reservation

type Status string

const (
	StatusCreated  Status = "CREATED"
	StatusCanceled Status = "CANCELED"
	StatusDone     Status = "DONE"
)

// InactiveStatuses are excluded from availability checks.
var InactiveStatuses = []Status{StatusCanceled, StatusDone}

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusCreated, StatusCanceled, StatusDone:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusCanceled || s == StatusDone
}
