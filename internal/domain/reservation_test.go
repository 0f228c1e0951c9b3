package domain

import "testing"

func TestReservationStatus_Transition(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		from    ReservationStatus
		to      ReservationStatus
		wantErr error
	}{
		{"pendente to confirmada", StatusPendente, StatusConfirmada, nil},
		{"pendente to rejeitada", StatusPendente, StatusRejeitada, nil},
		{"pendente to cancelada", StatusPendente, StatusCancelada, nil},
		{"confirmada to cancelada", StatusConfirmada, StatusCancelada, nil},
		{"confirmada to confirmada", StatusConfirmada, StatusConfirmada, ErrAlreadyApproved},
		{"rejeitada to rejeitada", StatusRejeitada, StatusRejeitada, ErrAlreadyRejected},
		{"cancelada to cancelada", StatusCancelada, StatusCancelada, ErrAlreadyCancelled},
		{"confirmada to rejeitada", StatusConfirmada, StatusRejeitada, ErrInvalidTransition},
		{"rejeitada to confirmada", StatusRejeitada, StatusConfirmada, ErrInvalidTransition},
		{"rejeitada to cancelada", StatusRejeitada, StatusCancelada, ErrInvalidTransition},
		{"cancelada to confirmada", StatusCancelada, StatusConfirmada, ErrInvalidTransition},
		{"pendente to em_andamento", StatusPendente, StatusEmAndamento, ErrInvalidTransition},
		{"confirmada to concluida", StatusConfirmada, StatusConcluida, ErrInvalidTransition},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.from.Transition(tc.to); err != tc.wantErr {
				t.Fatalf("Transition(%s -> %s) = %v, want %v", tc.from, tc.to, err, tc.wantErr)
			}
		})
	}
}

func TestReservationStatus_HoldsCapacity(t *testing.T) {
	t.Parallel()

	holding := []ReservationStatus{StatusPendente, StatusConfirmada}
	for _, s := range holding {
		if !s.HoldsCapacity() {
			t.Fatalf("expected %s to hold capacity", s)
		}
	}

	free := []ReservationStatus{StatusRejeitada, StatusCancelada, StatusEmAndamento, StatusConcluida}
	for _, s := range free {
		if s.HoldsCapacity() {
			t.Fatalf("expected %s not to hold capacity", s)
		}
	}
}

func TestReservationStatus_IsTerminal(t *testing.T) {
	t.Parallel()

	if !StatusRejeitada.IsTerminal() || !StatusCancelada.IsTerminal() {
		t.Fatalf("expected rejeitada and cancelada to be terminal")
	}
	if StatusPendente.IsTerminal() || StatusConfirmada.IsTerminal() {
		t.Fatalf("expected pendente and confirmada not to be terminal")
	}
}
