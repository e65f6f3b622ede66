package httperr

var messages = map[string]string{
	// validação
	"invalid_request":  "Faltan datos requeridos.",
	"invalid_status":   "Estado no válido.",
	"invalid_weekday":  "Día de la semana no válido.",
	"invalid_date":     "Fecha no válida.",
	"invalid_product":  "Producto no válido.",
	"invalid_quantity": "Las cantidades deben ser números enteros no negativos.",
	"invalid_price":    "El precio debe ser un número positivo.",
	"invalid_amount":   "El monto debe ser mayor a cero.",
	"reason_required":  "Se requiere un motivo de cancelación.",
	"missing_routes":   "El cliente debe tener al menos una ruta.",
	"term_required":    "Se requiere un término de búsqueda.",

	// pré-condições
	"invalid_state":            "El estado actual no permite esta operación.",
	"route_not_dispatched":     "La ruta no ha sido asignada a un rutero hoy.",
	"route_already_dispatched": "La ruta ya fue asignada hoy.",
	"client_not_due":           "El cliente no está programado en esta ruta hoy.",
	"client_already_scheduled": "El cliente ya tiene entrega programada hoy.",
	"client_inactive":          "El cliente está inactivo.",
	"driver_inactive":          "El rutero está inactivo.",
	"amount_exceeds_available": "El monto excede el crédito disponible.",
	"amount_exceeds_used":      "El pago excede el crédito utilizado.",
	"limit_below_used":         "El límite no puede ser menor al crédito utilizado.",
	"concurrent_update":        "Otro usuario modificó la ruta al mismo tiempo. Intente de nuevo.",

	// não encontrado
	"client_not_found":     "Cliente no encontrado.",
	"route_not_found":      "Ruta no encontrada.",
	"driver_not_found":     "Rutero no encontrado.",
	"product_not_found":    "Producto no encontrado.",
	"order_not_found":      "Pedido no encontrado.",
	"assignment_not_found": "No hay asignación para esta ruta hoy.",
	"user_not_found":       "Usuario no encontrado.",

	// auth
	"invalid_credentials": "Credenciales inválidas.",
}

func MessageFor(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return "Solicitud no válida."
}
