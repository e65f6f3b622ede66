package delivery

import "slices"

// StateOf devolve o estado de um cliente; sem registro conta como pendente.
func StateOf(states map[string]TrackingStatus, clientID string) TrackingStatus {
	if st, ok := states[clientID]; ok && st != "" {
		return st
	}
	return TrackingPending
}

// NextActive procura, na ordem de exibição e a partir do cliente logo após current,
// o primeiro cliente que não está concluído nem cancelado.
// Não volta para clientes anteriores a current.
func NextActive(order []string, states map[string]TrackingStatus, current string) (string, bool) {
	idx := slices.Index(order, current)
	if idx < 0 {
		return "", false
	}

	for _, id := range order[idx+1:] {
		if !StateOf(states, id).IsTerminal() {
			return id, true
		}
	}
	return "", false
}

// FirstPending devolve o primeiro cliente pendente na ordem de exibição.
func FirstPending(order []string, states map[string]TrackingStatus) (string, bool) {
	for _, id := range order {
		if StateOf(states, id) == TrackingPending {
			return id, true
		}
	}
	return "", false
}

// ActiveOf devolve o cliente ativo, se houver.
func ActiveOf(order []string, states map[string]TrackingStatus) (string, bool) {
	for _, id := range order {
		if StateOf(states, id) == TrackingActive {
			return id, true
		}
	}
	return "", false
}
