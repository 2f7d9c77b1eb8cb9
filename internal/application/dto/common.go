package dto

// ErrorResponse respuesta de error uniforme de la API.
// Available solo se llena en INSUFFICIENT_STOCK (stock disponible al momento del rechazo).
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Available *int64 `json:"available,omitempty"`
}

// PageResponse metadatos de paginación limit/offset.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
