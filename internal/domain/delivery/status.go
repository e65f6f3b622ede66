package delivery

import (
	"strings"

	"github.com/BruksfildServices01/ice-routes/internal/httperr"
)

// ===============================
// Tracking Status
// ===============================

type TrackingStatus string

const (
	TrackingPending   TrackingStatus = "pendiente"
	TrackingActive    TrackingStatus = "activo"
	TrackingCompleted TrackingStatus = "completado"
	TrackingCancelled TrackingStatus = "cancelado"
)

func ParseTrackingStatus(s string) (TrackingStatus, error) {
	switch st := TrackingStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case TrackingPending, TrackingActive, TrackingCompleted, TrackingCancelled:
		return st, nil
	}
	return "", httperr.ErrBusiness("invalid_status")
}

func (s TrackingStatus) IsTerminal() bool {
	return s == TrackingCompleted || s == TrackingCancelled
}

// ===============================
// Order Status
// ===============================

type OrderStatus string

const (
	OrderPending   OrderStatus = ""
	OrderCompleted OrderStatus = "completado"
	OrderCancelled OrderStatus = "cancelado"
)

func (s OrderStatus) IsTerminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

// Tracking devolve o estado de acompanhamento que espelha o estado do pedido.
func (s OrderStatus) Tracking() TrackingStatus {
	switch s {
	case OrderCompleted:
		return TrackingCompleted
	case OrderCancelled:
		return TrackingCancelled
	}
	return TrackingPending
}

// ===============================
// Validations
// ===============================

// CanTrack define se o acompanhamento pode ir de current para next.
// Estados terminais só mudam pelo fechamento do dia.
func CanTrack(current, next TrackingStatus) error {
	if current == next {
		return nil
	}
	if current.IsTerminal() {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanActivate define se o cliente pode virar o cliente ativo da rota
func CanActivate(current TrackingStatus) error {
	return CanTrack(current, TrackingActive)
}

// CanClose define se um pedido pode ser concluído ou cancelado
func CanClose(current OrderStatus) error {
	if current.IsTerminal() {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanEditItems define se as quantidades planejadas podem ser alteradas
func CanEditItems(current OrderStatus) error {
	return CanClose(current)
}
