package model

// IfStatus is the operational state of a line, channel or link. Zero is unset.
type IfStatus int

const (
	IfUp IfStatus = iota + 1
	IfDown
	IfUnknown
	IfDormant
	IfNotPresent
	IfLowerLayerDown
	IfError
)

func (s IfStatus) String() string {
	switch s {
	case IfUp:
		return "Up"
	case IfDown:
		return "Down"
	case IfUnknown:
		return "Unknown"
	case IfDormant:
		return "Dormant"
	case IfNotPresent:
		return "NotPresent"
	case IfLowerLayerDown:
		return "LowerLayerDown"
	case IfError:
		return "Error"
	}
	return ""
}

// DiagState is the state of a diagnostic test. Unlike the status enums it starts at zero.
type DiagState int

const (
	DiagNone DiagState = iota
	DiagRequested
	DiagCanceled
	DiagComplete
	DiagError
	DiagErrorInternal
	DiagErrorOther
)

func (s DiagState) String() string {
	switch s {
	case DiagNone:
		return "None"
	case DiagRequested:
		return "Requested"
	case DiagCanceled:
		return "Canceled"
	case DiagComplete:
		return "Complete"
	case DiagError:
		return "Error"
	case DiagErrorInternal:
		return "Error_Internal"
	case DiagErrorOther:
		return "Error_Other"
	}
	return ""
}

// UpDown holds a value measured in both directions.
type UpDown[T any] struct {
	US T `json:"us"`
	DS T `json:"ds"`
}

// MaxBands is the capacity of per-band sequences.
const MaxBands = 24

// Bands copies at most MaxBands values. Excess values are dropped.
func Bands[T any](values []T) []T {
	n := len(values)
	if n > MaxBands {
		n = MaxBands
	}
	out := make([]T, n)
	copy(out, values[:n])
	return out
}

// InvalidCounter marks an interval counter that is not available for the window.
const InvalidCounter uint32 = 0xFFFFFFFF
