package view

import "github.com/tonhe/storewatch/internal/api"

// ModalState is the lifecycle state of the detail view.
type ModalState int

const (
	ModalClosed ModalState = iota
	ModalOpen
)

// Ticket identifies one detail request. A response is rendered only if
// its ticket is still the current one when it arrives.
type Ticket struct {
	Store string
	Seq   uint64
}

// DetailSession is the detail modal state machine. The zero value is a
// closed session.
type DetailSession struct {
	state  ModalState
	seq    uint64
	store  string
	detail Detail
}

// Open moves to the open state for store, shows the loading placeholder,
// clears all regions and returns the ticket for the detail request. Any
// request issued for an earlier selection becomes stale.
func (s *DetailSession) Open(store string) Ticket {
	s.seq++
	s.state = ModalOpen
	s.store = store
	s.detail = LoadingDetail(store)
	return Ticket{Store: store, Seq: s.seq}
}

// Resolve applies the outcome of the request identified by t. It returns
// false and leaves the session untouched when the modal is closed or t
// belongs to an earlier selection.
func (s *DetailSession) Resolve(t Ticket, d api.StoreDetail, err error) bool {
	if !s.Current(t) {
		return false
	}
	if err != nil {
		s.detail = FailedDetail(t.Store, err)
		return true
	}
	s.detail = BuildDetail(t.Store, d)
	return true
}

// Current reports whether t belongs to the open selection.
func (s *DetailSession) Current(t Ticket) bool {
	return s.state == ModalOpen && t.Seq == s.seq && t.Store == s.store
}

// Close moves to the closed state. It reports whether anything changed;
// closing a closed session is a no-op.
func (s *DetailSession) Close() bool {
	if s.state == ModalClosed {
		return false
	}
	s.state = ModalClosed
	s.seq++
	return true
}

// IsOpen reports whether the modal is visible.
func (s *DetailSession) IsOpen() bool {
	return s.state == ModalOpen
}

// State returns the lifecycle state.
func (s *DetailSession) State() ModalState {
	return s.state
}

// Title returns the selected store, which is the modal title.
func (s *DetailSession) Title() string {
	return s.store
}

// Detail returns the current content.
func (s *DetailSession) Detail() Detail {
	return s.detail
}
