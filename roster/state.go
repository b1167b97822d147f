package roster

import (
	"errors"

	"roster-app-go/models"
)

const (
	// MessageInvalidFormat is shown for any payload that fails validation
	MessageInvalidFormat = "Format data tidak valid atau kosong."
	// MessageNetwork is shown when the request never produced a response
	MessageNetwork = "Terjadi kesalahan jaringan atau server tidak merespons."
)

// Phase names a State variant
type Phase string

const (
	PhaseLoading Phase = "loading"
	PhaseError   Phase = "error"
	PhaseSuccess Phase = "success"
)

// State is the view state of the roster screen. It is one of Loading, Failed or Loaded.
type State interface {
	Phase() Phase
}

// Loading is the initial state
type Loading struct{}

// Failed is terminal and carries the message shown to the user
type Failed struct {
	Message string
}

// Loaded is terminal and carries the sampled records
type Loaded struct {
	Records []models.RosterRecord
}

func (Loading) Phase() Phase { return PhaseLoading }
func (Failed) Phase() Phase  { return PhaseError }
func (Loaded) Phase() Phase  { return PhaseSuccess }

// Terminal reports whether no further transition can happen
func Terminal(s State) bool {
	return s != nil && s.Phase() != PhaseLoading
}

// Resolve turns the outcome of a load into a terminal state
func Resolve(records []models.RosterRecord, err error) State {
	if err != nil {
		return Failed{Message: Message(err)}
	}
	return Loaded{Records: records}
}

// Message converts a load error into user-facing text
func Message(err error) string {
	var statusErr *StatusError
	switch {
	case errors.As(err, &statusErr):
		return statusErr.Error()
	case errors.Is(err, ErrInvalidFormat):
		return MessageInvalidFormat
	default:
		return MessageNetwork
	}
}

// RecordView is a record as rendered, with the points placeholder applied
type RecordView struct {
	ID     string `json:"id"`
	NIM    string `json:"nim"`
	Nama   string `json:"nama"`
	Kelas  string `json:"kelas"`
	Points string `json:"points"`
}

// Snapshot is the wire form of a State
type Snapshot struct {
	State   Phase        `json:"state"`
	Message string       `json:"message,omitempty"`
	Records []RecordView `json:"records,omitempty"`
}

// SnapshotOf flattens a State for JSON and templates
func SnapshotOf(s State) Snapshot {
	switch v := s.(type) {
	case Failed:
		return Snapshot{State: PhaseError, Message: v.Message}
	case Loaded:
		views := make([]RecordView, 0, len(v.Records))
		for _, r := range v.Records {
			views = append(views, RecordView{
				ID:     r.ID,
				NIM:    r.NIM,
				Nama:   r.Nama,
				Kelas:  r.Kelas,
				Points: r.Points.Display(),
			})
		}
		return Snapshot{State: PhaseSuccess, Records: views}
	default:
		return Snapshot{State: PhaseLoading}
	}
}
