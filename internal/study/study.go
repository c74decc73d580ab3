// Package study defines the study aggregate the orchestrator operates on and
// the persistence contract it needs from the document store.
//
// The orchestrator never mutates a study in place: it takes an immutable
// snapshot, performs its cloud work, and emits a targeted merge patch with a
// revision precondition. The document store behind the Store interface is an
// external collaborator; MemoryStore exists for composition and tests.
package study

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// ParamValue wraps a single personal-parameter value. The document layer
// stores every parameter as a {value} object, so the wrapper survives here.
type ParamValue struct {
	Value string `json:"value" yaml:"value"`
}

// Int parses the value as an integer, falling back to def when it is empty
// or malformed.
func (p ParamValue) Int(def int) int {
	if p.Value == "" {
		return def
	}
	n, err := strconv.Atoi(p.Value)
	if err != nil {
		return def
	}
	return n
}

// PersonalParams holds one participant's per-study parameters.
type PersonalParams struct {
	GCPProject    ParamValue `json:"GCP_PROJECT"`
	PublicKey     ParamValue `json:"PUBLIC_KEY"`
	IPAddress     ParamValue `json:"IP_ADDRESS"`
	AuthKey       ParamValue `json:"AUTH_KEY"`
	NumCPUs       ParamValue `json:"NUM_CPUS"`
	BootDiskSize  ParamValue `json:"BOOT_DISK_SIZE"`
	DataValidated ParamValue `json:"DATA_VALIDATED"`
}

// Participant status values written back by the orchestrator.
const (
	StatusInitial      = ""
	StatusReadyToBegin = "ready to begin protocol"
	StatusProvisioning = "provisioning instances"
	StatusRunning      = "running protocol"
	StatusSetupFailed  = "setup failed"
)

// Study is a read snapshot of one study document.
//
// Participants are ordered; the coordinating server is role 0 and the
// participant at index i holds role i+1.
type Study struct {
	ID             string                     `json:"study_id"`
	Title          string                     `json:"title"`
	StudyType      string                     `json:"study_type"`
	Owner          string                     `json:"owner"`
	Participants   []string                   `json:"participants"`
	PersonalParams map[string]*PersonalParams `json:"personal_parameters"`
	Status         map[string]string          `json:"status"`
	Created        time.Time                  `json:"created"`

	// Revision is bumped by the store on every applied patch and used as
	// the optimistic-concurrency precondition.
	Revision int64 `json:"revision"`
}

// NewID generates a fresh study identifier.
func NewID() string {
	return uuid.NewString()
}

// New builds a study record with a generated ID and an empty parameter slot
// for each participant.
func New(title, studyType, owner string, participants []string) *Study {
	s := &Study{
		ID:             NewID(),
		Title:          title,
		StudyType:      studyType,
		Owner:          owner,
		Participants:   participants,
		PersonalParams: make(map[string]*PersonalParams, len(participants)),
		Status:         make(map[string]string, len(participants)),
		Created:        time.Now(),
	}
	for _, participant := range participants {
		s.PersonalParams[participant] = &PersonalParams{}
		s.Status[participant] = StatusInitial
	}
	return s
}

// Role returns the role index of a participant, or -1 if the participant is
// not part of the study. The coordinating server holds role 0, so the first
// listed participant holds role 1.
func (s *Study) Role(participantID string) int {
	for i, p := range s.Participants {
		if p == participantID {
			return i + 1
		}
	}
	return -1
}

// Params returns the personal parameters for a participant, never nil.
func (s *Study) Params(participantID string) *PersonalParams {
	if p, ok := s.PersonalParams[participantID]; ok && p != nil {
		return p
	}
	return &PersonalParams{}
}

// ProjectList assembles the ordered cloud-project list for the study: the
// coordinating server's project first, then each participant's target
// project in participant order. A project's position in this list is the
// role whose address range it claims.
func (s *Study) ProjectList(serverProject string) []string {
	projects := make([]string, 0, len(s.Participants)+1)
	projects = append(projects, serverProject)
	for _, participant := range s.Participants {
		projects = append(projects, s.Params(participant).GCPProject.Value)
	}
	return projects
}

// Clone returns a deep copy of the study snapshot.
func (s *Study) Clone() *Study {
	clone := *s
	clone.Participants = append([]string(nil), s.Participants...)
	clone.PersonalParams = make(map[string]*PersonalParams, len(s.PersonalParams))
	for id, params := range s.PersonalParams {
		if params == nil {
			clone.PersonalParams[id] = nil
			continue
		}
		p := *params
		clone.PersonalParams[id] = &p
	}
	clone.Status = make(map[string]string, len(s.Status))
	for id, status := range s.Status {
		clone.Status[id] = status
	}
	return &clone
}
